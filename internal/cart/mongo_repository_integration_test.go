package cart

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"

	"github.com/Bingusala/rosy-glow/internal/domain"
)

func setupTestMongo(t *testing.T) (*MongoRepository, func()) {
	t.Helper()
	if os.Getenv("INTEGRATION_TEST") == "" {
		t.Skip("set INTEGRATION_TEST to run container-backed tests")
	}

	ctx := context.Background()

	mongoContainer, err := mongodb.Run(ctx, "mongo:7")
	require.NoError(t, err)

	uri, err := mongoContainer.ConnectionString(ctx)
	require.NoError(t, err)

	db, err := ConnectMongoDB(ctx, uri, "testdb")
	require.NoError(t, err)

	repo := NewMongoRepository(db)
	require.NoError(t, repo.CreateIndexes(ctx))

	cleanup := func() {
		if err := mongoContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	}

	return repo, cleanup
}

func storedCart(userID int64) *domain.Cart {
	cart := &domain.Cart{
		ID:     uuid.NewString(),
		UserID: userID,
		Items: []domain.CartItem{
			{
				ID:          uuid.NewString(),
				ProductID:   1,
				ProductName: "Rose Petal Lip Balm",
				Quantity:    2,
				UnitPrice:   decimal.RequireFromString("10.00"),
				Subtotal:    decimal.RequireFromString("20.00"),
				AddedAt:     time.Now().UTC().Truncate(time.Millisecond),
			},
		},
	}
	cart.RecalculateTotal()
	return cart
}

func TestMongoRepository_GetMissing(t *testing.T) {
	repo, cleanup := setupTestMongo(t)
	defer cleanup()

	_, err := repo.GetByUserID(context.Background(), 404)
	assert.ErrorIs(t, err, ErrCartNotFound)
}

func TestMongoRepository_SaveRoundTrip(t *testing.T) {
	repo, cleanup := setupTestMongo(t)
	defer cleanup()

	ctx := context.Background()
	cart := storedCart(100)
	require.NoError(t, repo.Save(ctx, cart))

	fetched, err := repo.GetByUserID(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, cart.ID, fetched.ID)
	assert.Equal(t, int64(100), fetched.UserID)
	require.Len(t, fetched.Items, 1)
	assert.Equal(t, "Rose Petal Lip Balm", fetched.Items[0].ProductName)
	assert.True(t, fetched.Items[0].UnitPrice.Equal(decimal.RequireFromString("10.00")))
	assert.True(t, fetched.TotalAmount.Equal(decimal.RequireFromString("20.00")))
}

func TestMongoRepository_SaveIsUpsertPerUser(t *testing.T) {
	repo, cleanup := setupTestMongo(t)
	defer cleanup()

	ctx := context.Background()
	cart := storedCart(100)
	require.NoError(t, repo.Save(ctx, cart))

	cart.Items[0].Quantity = 5
	cart.Items[0].Subtotal = decimal.RequireFromString("50.00")
	cart.RecalculateTotal()
	require.NoError(t, repo.Save(ctx, cart))

	fetched, err := repo.GetByUserID(ctx, 100)
	require.NoError(t, err)
	require.Len(t, fetched.Items, 1)
	assert.Equal(t, int32(5), fetched.Items[0].Quantity)
	assert.True(t, fetched.TotalAmount.Equal(decimal.RequireFromString("50.00")))
}
