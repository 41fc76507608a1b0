package cart

import (
	"context"
	"errors"
	"time"

	"github.com/Bingusala/rosy-glow/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

var (
	ErrInvalidQuantity   = errors.New("quantity must be greater than zero")
	ErrInsufficientStock = errors.New("not enough stock available")
)

// ProductReader is the slice of the catalog this service needs: price capture
// at add-time and the advisory stock pre-check. The pre-check is not
// authoritative; the inventory ledger re-checks at checkout.
type ProductReader interface {
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
}

// UserReader is the slice of the user directory this service needs.
type UserReader interface {
	GetUser(ctx context.Context, id int64) (*domain.User, error)
}

type Service struct {
	repo     CartRepository
	cache    CartCache
	products ProductReader
	users    UserReader
	logger   *zap.Logger
	sfg      singleflight.Group // Prevents cache stampede
}

func NewService(repo CartRepository, cache CartCache, products ProductReader, users UserReader, logger *zap.Logger) *Service {
	return &Service{
		repo:     repo,
		cache:    cache,
		products: products,
		users:    users,
		logger:   logger,
	}
}

// GetOrCreate returns the user's cart, creating an empty one on first access.
// Reads go through the cache; the repository stays authoritative.
func (s *Service) GetOrCreate(ctx context.Context, userID int64) (*domain.Cart, error) {
	v, err, _ := s.sfg.Do(cacheKey(userID), func() (interface{}, error) {
		cached, err := s.cache.Get(ctx, userID)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, ErrCacheMiss) {
			s.logger.Warn("cart cache get failed", zap.Int64("user_id", userID), zap.Error(err))
		}

		cart, err := s.loadOrCreate(ctx, userID)
		if err != nil {
			return nil, err
		}

		// set before returning; a detached write could land after a later
		// mutation's invalidation and pin a stale cart for the full TTL
		if errSet := s.cache.Set(ctx, userID, cart); errSet != nil {
			s.logger.Warn("cart cache set failed", zap.Int64("user_id", userID), zap.Error(errSet))
		}

		return cart, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*domain.Cart), nil
}

// AddItem puts quantity units of a product into the user's cart, merging into
// an existing line for the same product. The line keeps the unit price
// captured when the product was first added.
func (s *Service) AddItem(ctx context.Context, userID, productID int64, quantity int32) (*domain.Cart, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	if _, err := s.users.GetUser(ctx, userID); err != nil {
		return nil, err
	}

	product, err := s.products.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	cart, err := s.loadOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	existing := cart.ItemForProduct(productID)
	wanted := quantity
	if existing != nil {
		wanted += existing.Quantity
	}
	if product.StockQuantity < wanted {
		return nil, ErrInsufficientStock
	}

	if existing != nil {
		existing.Quantity = wanted
		existing.Subtotal = existing.UnitPrice.Mul(decimal.NewFromInt(int64(wanted)))
	} else {
		cart.Items = append(cart.Items, domain.CartItem{
			ID:          uuid.NewString(),
			CartID:      cart.ID,
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    quantity,
			UnitPrice:   product.Price,
			Subtotal:    product.Price.Mul(decimal.NewFromInt(int64(quantity))),
			AddedAt:     time.Now(),
		})
	}

	return s.persist(ctx, cart)
}

// UpdateItem sets the quantity of an existing line. A line id that is not in
// the caller's cart is rejected, never silently ignored, so one user cannot
// touch another user's lines.
func (s *Service) UpdateItem(ctx context.Context, userID int64, itemID string, quantity int32) (*domain.Cart, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	cart, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	item := cart.ItemByID(itemID)
	if item == nil {
		return nil, ErrItemNotFound
	}

	product, err := s.products.GetProduct(ctx, item.ProductID)
	if err != nil {
		return nil, err
	}
	if product.StockQuantity < quantity {
		return nil, ErrInsufficientStock
	}

	item.Quantity = quantity
	item.Subtotal = item.UnitPrice.Mul(decimal.NewFromInt(int64(quantity)))

	return s.persist(ctx, cart)
}

// RemoveItem drops a line from the caller's cart, with the same ownership
// rule as UpdateItem.
func (s *Service) RemoveItem(ctx context.Context, userID int64, itemID string) (*domain.Cart, error) {
	cart, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	found := false
	items := cart.Items[:0]
	for _, item := range cart.Items {
		if item.ID == itemID {
			found = true
			continue
		}
		items = append(items, item)
	}
	if !found {
		return nil, ErrItemNotFound
	}
	cart.Items = items

	return s.persist(ctx, cart)
}

// Clear empties the cart but keeps the cart itself, preserving a stable
// reference for the owning user.
func (s *Service) Clear(ctx context.Context, userID int64) error {
	cart, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}

	cart.Items = nil
	_, err = s.persist(ctx, cart)
	return err
}

func (s *Service) loadOrCreate(ctx context.Context, userID int64) (*domain.Cart, error) {
	if _, err := s.users.GetUser(ctx, userID); err != nil {
		return nil, err
	}

	cart, err := s.repo.GetByUserID(ctx, userID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, ErrCartNotFound) {
		return nil, err
	}

	cart = &domain.Cart{
		ID:          uuid.NewString(),
		UserID:      userID,
		TotalAmount: decimal.Zero,
	}
	if err := s.repo.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// persist recomputes the derived total, saves and invalidates the cache.
func (s *Service) persist(ctx context.Context, cart *domain.Cart) (*domain.Cart, error) {
	cart.RecalculateTotal()
	if err := s.repo.Save(ctx, cart); err != nil {
		return nil, err
	}
	s.invalidateCache(cart.UserID)
	return cart, nil
}

func (s *Service) invalidateCache(userID int64) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.cache.Delete(ctx, userID); err != nil {
		s.logger.Warn("cart cache invalidate failed", zap.Int64("user_id", userID), zap.Error(err))
	}
}
