package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/swiftkart/storefront/internal/domain"
)

// UserRepository defines user data access methods
type UserRepository interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	GetByAPIKeyLookup(ctx context.Context, lookup string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
	UpdateCart(ctx context.Context, id primitive.ObjectID, cart map[string]int) error
}

// ProductRepository defines product data access methods
type ProductRepository interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Product, error)
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*domain.Product, error)
	List(ctx context.Context) ([]*domain.Product, error)
	ListIDsBySellerID(ctx context.Context, sellerID primitive.ObjectID) ([]primitive.ObjectID, error)
	Create(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// AddressRepository defines address data access methods
type AddressRepository interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Address, error)
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*domain.Address, error)
	ListByUserID(ctx context.Context, userID primitive.ObjectID) ([]*domain.Address, error)
	Create(ctx context.Context, address *domain.Address) error
}

// OrderUpdate carries the partial field set of a seller order
// mutation. Nil fields are left untouched.
type OrderUpdate struct {
	Status             *domain.OrderStatus
	PaymentStatus      *domain.PaymentStatus
	CancellationReason *string
	RefundReason       *string
	RefundedAt         *time.Time
}

// OrderRepository defines order data access methods
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Order, error)
	// ListByUserID returns the buyer's orders newest first.
	ListByUserID(ctx context.Context, userID primitive.ObjectID) ([]*domain.Order, error)
	// ListByProductIDs returns orders containing at least one of the
	// given products, newest first.
	ListByProductIDs(ctx context.Context, productIDs []primitive.ObjectID) ([]*domain.Order, error)
	// ListByProductIDsInRange is ListByProductIDs restricted to orders
	// dated in [from, to). Zero bounds are open.
	ListByProductIDsInRange(ctx context.Context, productIDs []primitive.ObjectID, from, to time.Time) ([]*domain.Order, error)
	// ApplyUpdate applies the non-nil fields of upd in a single write
	// and returns the updated order.
	ApplyUpdate(ctx context.Context, id primitive.ObjectID, upd OrderUpdate) (*domain.Order, error)
}

// Repositories aggregates all repositories
type Repositories struct {
	User    UserRepository
	Product ProductRepository
	Address AddressRepository
	Order   OrderRepository
}
