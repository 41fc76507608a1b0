package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bingusala/rosy-glow/internal/checkout"
	"github.com/Bingusala/rosy-glow/internal/domain"
	"github.com/Bingusala/rosy-glow/internal/orders"
)

// --- mocks ---

type CheckoutMock struct {
	Order *domain.Order
	Err   error
}

func (m *CheckoutMock) CreateOrder(ctx context.Context, userID int64, shippingAddress string) (*domain.Order, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Order, nil
}

func (m *CheckoutMock) UpdateStatus(ctx context.Context, orderID uuid.UUID, newStatus domain.OrderStatus, trackingNumber string) (*domain.Order, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Order, nil
}

type QueriesMock struct {
	Order  *domain.Order
	Orders []*domain.Order
	Err    error
}

func (m *QueriesMock) ByUser(ctx context.Context, userID int64, page orders.Page) (*orders.OrderPage, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return &orders.OrderPage{Orders: m.Orders, Number: page.Number, Size: page.Limit(), Total: int64(len(m.Orders))}, nil
}

func (m *QueriesMock) ByID(ctx context.Context, orderID uuid.UUID, requesterID int64) (*domain.Order, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Order, nil
}

func (m *QueriesMock) ByStatus(ctx context.Context, status domain.OrderStatus) ([]*domain.Order, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Orders, nil
}

func (m *QueriesMock) All(ctx context.Context, page orders.Page) (*orders.OrderPage, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return &orders.OrderPage{Orders: m.Orders, Number: page.Number, Size: page.Limit(), Total: int64(len(m.Orders))}, nil
}

// --- helpers ---

func withUser(r *http.Request, userID int64) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), userIDKey, userID))
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func sampleOrder() *domain.Order {
	return &domain.Order{
		ID:              uuid.New(),
		UserID:          100,
		Status:          domain.OrderStatusPending,
		TotalAmount:     decimal.RequireFromString("45.00"),
		ShippingAddress: "12 Rue de Rivoli, Paris",
		Items: []domain.OrderItem{
			{
				ID:          uuid.NewString(),
				ProductID:   1,
				ProductName: "Rose Petal Lip Balm",
				Quantity:    2,
				UnitPrice:   decimal.RequireFromString("10.00"),
				Subtotal:    decimal.RequireFromString("20.00"),
			},
			{
				ID:          uuid.NewString(),
				ProductID:   2,
				ProductName: "Hydrating Face Serum",
				Quantity:    1,
				UnitPrice:   decimal.RequireFromString("25.00"),
				Subtotal:    decimal.RequireFromString("25.00"),
			},
		},
		CreatedAt: time.Now(),
	}
}

// --- CreateOrder ---

func TestCreateOrder_Success(t *testing.T) {
	order := sampleOrder()
	handler := NewOrdersHandler(&CheckoutMock{Order: order}, &QueriesMock{}, 5*time.Second)

	body := strings.NewReader(`{"shipping_address": "12 Rue de Rivoli, Paris"}`)
	request := withUser(httptest.NewRequest("POST", "/api/v1/orders", body), 100)
	recorder := httptest.NewRecorder()

	handler.CreateOrder(recorder, request)

	require.Equal(t, http.StatusCreated, recorder.Code)

	var response OrderResponseDTO
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&response))
	assert.Equal(t, order.ID.String(), response.ID)
	assert.Equal(t, "PENDING", response.Status)
	assert.True(t, response.TotalAmount.Equal(decimal.RequireFromString("45.00")))
	assert.Len(t, response.Items, 2)
}

func TestCreateOrder_MissingUser(t *testing.T) {
	handler := NewOrdersHandler(&CheckoutMock{}, &QueriesMock{}, 5*time.Second)

	body := strings.NewReader(`{"shipping_address": "somewhere"}`)
	request := httptest.NewRequest("POST", "/api/v1/orders", body)
	recorder := httptest.NewRecorder()

	handler.CreateOrder(recorder, request)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestCreateOrder_BlankShippingAddress(t *testing.T) {
	handler := NewOrdersHandler(&CheckoutMock{}, &QueriesMock{}, 5*time.Second)

	body := strings.NewReader(`{"shipping_address": "   "}`)
	request := withUser(httptest.NewRequest("POST", "/api/v1/orders", body), 100)
	recorder := httptest.NewRecorder()

	handler.CreateOrder(recorder, request)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestCreateOrder_EmptyCart(t *testing.T) {
	handler := NewOrdersHandler(&CheckoutMock{Err: checkout.ErrEmptyCart}, &QueriesMock{}, 5*time.Second)

	body := strings.NewReader(`{"shipping_address": "somewhere"}`)
	request := withUser(httptest.NewRequest("POST", "/api/v1/orders", body), 100)
	recorder := httptest.NewRecorder()

	handler.CreateOrder(recorder, request)

	require.Equal(t, http.StatusBadRequest, recorder.Code)

	var response ErrorResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&response))
	assert.Equal(t, "empty_cart", response.Code)
}

// --- GetOrder ---

func TestGetOrder_Success(t *testing.T) {
	order := sampleOrder()
	handler := NewOrdersHandler(&CheckoutMock{}, &QueriesMock{Order: order}, 5*time.Second)

	request := withUser(httptest.NewRequest("GET", "/api/v1/orders/"+order.ID.String(), nil), 100)
	request = withURLParam(request, "id", order.ID.String())
	recorder := httptest.NewRecorder()

	handler.GetOrder(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)

	var response OrderResponseDTO
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&response))
	assert.Equal(t, order.ID.String(), response.ID)
}

func TestGetOrder_BadID(t *testing.T) {
	handler := NewOrdersHandler(&CheckoutMock{}, &QueriesMock{}, 5*time.Second)

	request := withUser(httptest.NewRequest("GET", "/api/v1/orders/not-a-uuid", nil), 100)
	request = withURLParam(request, "id", "not-a-uuid")
	recorder := httptest.NewRecorder()

	handler.GetOrder(recorder, request)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestGetOrder_Forbidden(t *testing.T) {
	handler := NewOrdersHandler(&CheckoutMock{}, &QueriesMock{Err: orders.ErrForbidden}, 5*time.Second)

	id := uuid.NewString()
	request := withUser(httptest.NewRequest("GET", "/api/v1/orders/"+id, nil), 200)
	request = withURLParam(request, "id", id)
	recorder := httptest.NewRecorder()

	handler.GetOrder(recorder, request)

	assert.Equal(t, http.StatusForbidden, recorder.Code)
}

func TestGetOrder_NotFound(t *testing.T) {
	handler := NewOrdersHandler(&CheckoutMock{}, &QueriesMock{Err: orders.ErrOrderNotFound}, 5*time.Second)

	id := uuid.NewString()
	request := withUser(httptest.NewRequest("GET", "/api/v1/orders/"+id, nil), 100)
	request = withURLParam(request, "id", id)
	recorder := httptest.NewRecorder()

	handler.GetOrder(recorder, request)

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

// --- ListOrders ---

func TestListOrders_Success(t *testing.T) {
	order := sampleOrder()
	handler := NewOrdersHandler(&CheckoutMock{}, &QueriesMock{Orders: []*domain.Order{order}}, 5*time.Second)

	request := withUser(httptest.NewRequest("GET", "/api/v1/orders?page=1&size=5", nil), 100)
	recorder := httptest.NewRecorder()

	handler.ListOrders(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)

	var response OrderPageDTO
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&response))
	require.Len(t, response.Orders, 1)
	assert.Equal(t, order.ID.String(), response.Orders[0].ID)
	assert.Equal(t, 1, response.Page)
	assert.Equal(t, 5, response.Size)
	assert.Equal(t, int64(1), response.Total)
}

// --- admin endpoints ---

func TestListAllOrders_StatusFilter(t *testing.T) {
	order := sampleOrder()
	order.Status = domain.OrderStatusShipped
	handler := NewOrdersHandler(&CheckoutMock{}, &QueriesMock{Orders: []*domain.Order{order}}, 5*time.Second)

	request := withUser(httptest.NewRequest("GET", "/api/v1/admin/orders?status=shipped", nil), 1)
	recorder := httptest.NewRecorder()

	handler.ListAllOrders(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)

	var response []OrderResponseDTO
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&response))
	require.Len(t, response, 1)
	assert.Equal(t, "SHIPPED", response[0].Status)
}

func TestListAllOrders_UnknownStatus(t *testing.T) {
	handler := NewOrdersHandler(&CheckoutMock{}, &QueriesMock{}, 5*time.Second)

	request := withUser(httptest.NewRequest("GET", "/api/v1/admin/orders?status=TELEPORTED", nil), 1)
	recorder := httptest.NewRecorder()

	handler.ListAllOrders(recorder, request)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestUpdateStatus_Success(t *testing.T) {
	order := sampleOrder()
	order.Status = domain.OrderStatusShipped
	order.TrackingNumber = "TRACK-123"
	handler := NewOrdersHandler(&CheckoutMock{Order: order}, &QueriesMock{}, 5*time.Second)

	body := strings.NewReader(`{"status": "shipped", "tracking_number": "TRACK-123"}`)
	request := withUser(httptest.NewRequest("PUT", "/api/v1/admin/orders/"+order.ID.String()+"/status", body), 1)
	request = withURLParam(request, "id", order.ID.String())
	recorder := httptest.NewRecorder()

	handler.UpdateStatus(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)

	var response OrderResponseDTO
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&response))
	assert.Equal(t, "SHIPPED", response.Status)
	assert.Equal(t, "TRACK-123", response.TrackingNumber)
}

func TestUpdateStatus_IllegalTransition(t *testing.T) {
	mock := &CheckoutMock{Err: checkout.ErrIllegalTransition}
	handler := NewOrdersHandler(mock, &QueriesMock{}, 5*time.Second)

	id := uuid.NewString()
	body := strings.NewReader(`{"status": "DELIVERED"}`)
	request := withUser(httptest.NewRequest("PUT", "/api/v1/admin/orders/"+id+"/status", body), 1)
	request = withURLParam(request, "id", id)
	recorder := httptest.NewRecorder()

	handler.UpdateStatus(recorder, request)

	require.Equal(t, http.StatusConflict, recorder.Code)

	var response ErrorResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&response))
	assert.Equal(t, "illegal_transition", response.Code)
}
