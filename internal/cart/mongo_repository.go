package cart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Bingusala/rosy-glow/internal/domain"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// cartDoc is the persisted shape of a cart. Money fields are stored as
// decimal strings so the BSON codec never sees decimal.Decimal internals.
type cartDoc struct {
	ID          string        `bson:"_id,omitempty"`
	UserID      int64         `bson:"user_id"`
	Items       []cartItemDoc `bson:"items"`
	TotalAmount string        `bson:"total_amount"`
	CreatedAt   time.Time     `bson:"created_at"`
	UpdatedAt   time.Time     `bson:"updated_at"`
}

type cartItemDoc struct {
	ID          string    `bson:"id"`
	ProductID   int64     `bson:"product_id"`
	ProductName string    `bson:"product_name"`
	Quantity    int32     `bson:"quantity"`
	UnitPrice   string    `bson:"unit_price"`
	Subtotal    string    `bson:"subtotal"`
	AddedAt     time.Time `bson:"added_at"`
}

type MongoRepository struct {
	collection *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{
		collection: db.Collection("carts"),
	}
}

func ConnectMongoDB(ctx context.Context, uri, database string) (*mongo.Database, error) {
	clientOpts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(10 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(100).
		SetMinPoolSize(10)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return client.Database(database), nil
}

func (m *MongoRepository) GetByUserID(ctx context.Context, userID int64) (*domain.Cart, error) {
	var doc cartDoc

	filter := bson.M{"user_id": userID}
	err := m.collection.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCartNotFound
		}
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	return docToCart(&doc)
}

func (m *MongoRepository) Save(ctx context.Context, cart *domain.Cart) error {
	now := time.Now()
	if cart.CreatedAt.IsZero() {
		cart.CreatedAt = now
	}
	cart.UpdatedAt = now

	doc := cartToDoc(cart)

	filter := bson.M{"user_id": cart.UserID}
	update := bson.M{"$set": doc}
	opts := options.Update().SetUpsert(true)

	_, err := m.collection.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		return fmt.Errorf("failed to upsert cart: %w", err)
	}

	return nil
}

// CreateIndexes enforces the one-cart-per-user invariant at the storage layer.
func (m *MongoRepository) CreateIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := m.collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	return nil
}

func cartToDoc(cart *domain.Cart) *cartDoc {
	doc := &cartDoc{
		ID:          cart.ID,
		UserID:      cart.UserID,
		Items:       make([]cartItemDoc, 0, len(cart.Items)),
		TotalAmount: cart.TotalAmount.String(),
		CreatedAt:   cart.CreatedAt,
		UpdatedAt:   cart.UpdatedAt,
	}
	for _, item := range cart.Items {
		doc.Items = append(doc.Items, cartItemDoc{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice.String(),
			Subtotal:    item.Subtotal.String(),
			AddedAt:     item.AddedAt,
		})
	}
	return doc
}

func docToCart(doc *cartDoc) (*domain.Cart, error) {
	total, err := decimal.NewFromString(doc.TotalAmount)
	if err != nil {
		return nil, fmt.Errorf("parse cart total: %w", err)
	}

	cart := &domain.Cart{
		ID:          doc.ID,
		UserID:      doc.UserID,
		Items:       make([]domain.CartItem, 0, len(doc.Items)),
		TotalAmount: total,
		CreatedAt:   doc.CreatedAt,
		UpdatedAt:   doc.UpdatedAt,
	}
	for _, item := range doc.Items {
		unitPrice, err := decimal.NewFromString(item.UnitPrice)
		if err != nil {
			return nil, fmt.Errorf("parse item unit price: %w", err)
		}
		subtotal, err := decimal.NewFromString(item.Subtotal)
		if err != nil {
			return nil, fmt.Errorf("parse item subtotal: %w", err)
		}
		cart.Items = append(cart.Items, domain.CartItem{
			ID:          item.ID,
			CartID:      doc.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   unitPrice,
			Subtotal:    subtotal,
			AddedAt:     item.AddedAt,
		})
	}
	return cart, nil
}
