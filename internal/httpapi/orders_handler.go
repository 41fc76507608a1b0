package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Bingusala/rosy-glow/internal/domain"
	"github.com/Bingusala/rosy-glow/internal/orders"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CheckoutService is the write side the HTTP layer consumes.
type CheckoutService interface {
	CreateOrder(ctx context.Context, userID int64, shippingAddress string) (*domain.Order, error)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, newStatus domain.OrderStatus, trackingNumber string) (*domain.Order, error)
}

// OrderQueries is the read side the HTTP layer consumes.
type OrderQueries interface {
	ByUser(ctx context.Context, userID int64, page orders.Page) (*orders.OrderPage, error)
	ByID(ctx context.Context, orderID uuid.UUID, requesterID int64) (*domain.Order, error)
	ByStatus(ctx context.Context, status domain.OrderStatus) ([]*domain.Order, error)
	All(ctx context.Context, page orders.Page) (*orders.OrderPage, error)
}

type OrdersHandler struct {
	checkout CheckoutService
	queries  OrderQueries
	timeout  time.Duration
}

func NewOrdersHandler(checkout CheckoutService, queries OrderQueries, timeout time.Duration) *OrdersHandler {
	return &OrdersHandler{
		checkout: checkout,
		queries:  queries,
		timeout:  timeout,
	}
}

type CreateOrderRequestDTO struct {
	ShippingAddress string `json:"shipping_address"`
}

type UpdateStatusRequestDTO struct {
	Status         string `json:"status"`
	TrackingNumber string `json:"tracking_number,omitempty"`
}

type OrderItemDTO struct {
	ID          string          `json:"id"`
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int32           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

type OrderResponseDTO struct {
	ID              string          `json:"id"`
	UserID          int64           `json:"user_id"`
	Status          string          `json:"status"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	ShippingAddress string          `json:"shipping_address"`
	TrackingNumber  string          `json:"tracking_number,omitempty"`
	Items           []OrderItemDTO  `json:"items"`
	CreatedAt       time.Time       `json:"created_at"`
}

type OrderPageDTO struct {
	Orders []OrderResponseDTO `json:"orders"`
	Page   int                `json:"page"`
	Size   int                `json:"size"`
	Total  int64              `json:"total"`
}

func orderToDTO(order *domain.Order) OrderResponseDTO {
	dto := OrderResponseDTO{
		ID:              order.ID.String(),
		UserID:          order.UserID,
		Status:          string(order.Status),
		TotalAmount:     order.TotalAmount,
		ShippingAddress: order.ShippingAddress,
		TrackingNumber:  order.TrackingNumber,
		Items:           make([]OrderItemDTO, 0, len(order.Items)),
		CreatedAt:       order.CreatedAt,
	}
	for _, item := range order.Items {
		dto.Items = append(dto.Items, OrderItemDTO{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Subtotal:    item.Subtotal,
		})
	}
	return dto
}

func pageFromQuery(r *http.Request) orders.Page {
	page := orders.Page{}
	if n, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && n > 0 {
		page.Number = n
	}
	if s, err := strconv.Atoi(r.URL.Query().Get("size")); err == nil && s > 0 {
		page.Size = s
	}
	return page
}

// POST /api/v1/orders
func (h *OrdersHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := getUserIDFromContext(r.Context())
	if userID == 0 {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	var req CreateOrderRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.ShippingAddress) == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "shipping_address is required")
		return
	}

	order, err := h.checkout.CreateOrder(ctx, userID, req.ShippingAddress)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, orderToDTO(order))
}

// GET /api/v1/orders
func (h *OrdersHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := getUserIDFromContext(r.Context())
	if userID == 0 {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	page, err := h.queries.ByUser(ctx, userID, pageFromQuery(r))
	if err != nil {
		handleDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, pageToDTO(page))
}

// GET /api/v1/orders/{id}
func (h *OrdersHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := getUserIDFromContext(r.Context())
	if userID == 0 {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_order_id", "order id must be a UUID")
		return
	}

	order, err := h.queries.ByID(ctx, orderID, userID)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, orderToDTO(order))
}

// GET /api/v1/admin/orders
func (h *OrdersHandler) ListAllOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if statusParam := r.URL.Query().Get("status"); statusParam != "" {
		status := domain.OrderStatus(strings.ToUpper(statusParam))
		if !status.IsValid() {
			respondError(w, http.StatusBadRequest, "invalid_status", "unknown order status")
			return
		}
		matched, err := h.queries.ByStatus(ctx, status)
		if err != nil {
			handleDomainError(w, err)
			return
		}
		dtos := make([]OrderResponseDTO, 0, len(matched))
		for _, order := range matched {
			dtos = append(dtos, orderToDTO(order))
		}
		respondJSON(w, http.StatusOK, dtos)
		return
	}

	page, err := h.queries.All(ctx, pageFromQuery(r))
	if err != nil {
		handleDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, pageToDTO(page))
}

// PUT /api/v1/admin/orders/{id}/status
func (h *OrdersHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_order_id", "order id must be a UUID")
		return
	}

	var req UpdateStatusRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	status := domain.OrderStatus(strings.ToUpper(req.Status))
	order, err := h.checkout.UpdateStatus(ctx, orderID, status, req.TrackingNumber)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, orderToDTO(order))
}

func pageToDTO(page *orders.OrderPage) OrderPageDTO {
	dto := OrderPageDTO{
		Orders: make([]OrderResponseDTO, 0, len(page.Orders)),
		Page:   page.Number,
		Size:   page.Size,
		Total:  page.Total,
	}
	for _, order := range page.Orders {
		dto.Orders = append(dto.Orders, orderToDTO(order))
	}
	return dto
}
