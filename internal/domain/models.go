package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a storefront account. Sellers are users whose role
// is RoleSeller; there is no separate seller record.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"name"`
	Email        string             `bson:"email"`
	Role         UserRole           `bson:"role"`
	APIKeyHash   string             `bson:"apiKeyHash"`
	APIKeyLookup string             `bson:"apiKeyLookup"` // SHA256(apiKey) hex for fast lookup
	Cart         map[string]int     `bson:"cart"`         // productID hex -> quantity
	CreatedAt    time.Time          `bson:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt"`
}

// Product represents a catalog product owned by a seller
type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	SellerID    primitive.ObjectID `bson:"sellerId"`
	Name        string             `bson:"name"`
	Description string             `bson:"description"`
	Brand       string             `bson:"brand"`
	Category    string             `bson:"category"`
	Subcategory string             `bson:"subcategory,omitempty"`
	Price       float64            `bson:"price"`
	OfferPrice  float64            `bson:"offerPrice"`
	Stock       int                `bson:"stock"`
	Images      []string           `bson:"images"`
	Videos      []string           `bson:"videos,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

// Address is a shipping address captured at checkout. Immutable once
// created; orders reference it and never embed it.
type Address struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	UserID      primitive.ObjectID `bson:"userId"`
	FullName    string             `bson:"fullName"`
	PhoneNumber string             `bson:"phoneNumber"`
	Area        string             `bson:"area"`
	City        string             `bson:"city"`
	State       string             `bson:"state"`
	Pincode     string             `bson:"pincode"`
	CreatedAt   time.Time          `bson:"createdAt"`
}

// OrderItem is a (product reference, quantity) pair. No price
// snapshot is kept on the item; the order's Amount is captured at
// checkout time instead.
type OrderItem struct {
	ProductID primitive.ObjectID `bson:"product"`
	Quantity  int                `bson:"quantity"`
}

// Order represents a buyer's order
type Order struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty"`
	UserID             primitive.ObjectID `bson:"userId"`
	Items              []OrderItem        `bson:"items"`
	Amount             float64            `bson:"amount"` // total captured at order time
	AddressID          primitive.ObjectID `bson:"address"`
	Status             OrderStatus        `bson:"status"`
	PaymentStatus      PaymentStatus      `bson:"paymentStatus"`
	CancellationReason *string            `bson:"cancellationReason,omitempty"`
	RefundReason       *string            `bson:"refundReason,omitempty"`
	RefundedAt         *time.Time         `bson:"refundedAt,omitempty"`
	Date               time.Time          `bson:"date"`
}
