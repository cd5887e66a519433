package service

import (
	"time"

	"github.com/swiftkart/storefront/internal/domain"
)

// CheckoutRequest represents the checkout payload
type CheckoutRequest struct {
	AddressID string         `json:"addressId" binding:"required"`
	Items     []CheckoutItem `json:"items" binding:"required,min=1"`
}

type CheckoutItem struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

// OrderUpdateRequest represents the seller order mutation payload.
// Absent fields are left untouched on the order.
type OrderUpdateRequest struct {
	OrderID            string  `json:"orderId" binding:"required"`
	Status             *string `json:"status,omitempty"`
	PaymentStatus      *string `json:"paymentStatus,omitempty"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
	RefundReason       *string `json:"refundReason,omitempty"`
}

// ProductView is the display-safe product subset embedded in order
// responses.
type ProductView struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Image      []string `json:"image"`
	OfferPrice float64  `json:"offerPrice"`
}

// AddressView is the resolved shipping address on an order
type AddressView struct {
	ID          string `json:"id"`
	FullName    string `json:"fullName"`
	PhoneNumber string `json:"phoneNumber"`
	Area        string `json:"area"`
	City        string `json:"city"`
	State       string `json:"state"`
	Pincode     string `json:"pincode"`
}

// ShippingAddressView is the reshaped address inside the synthesized
// customer object on seller responses.
type ShippingAddressView struct {
	AddressLine1 string `json:"addressLine1"`
	City         string `json:"city"`
	State        string `json:"state"`
	Pincode      string `json:"pincode"`
	Country      string `json:"country"`
}

// CustomerView is derived from the order's address, not the buyer
// record. Sellers see shipping contact only, never buyer identity.
type CustomerView struct {
	FullName        string               `json:"fullName"`
	PhoneNumber     string               `json:"phoneNumber"`
	ShippingAddress *ShippingAddressView `json:"shippingAddress"`
}

type OrderItemView struct {
	// Product is nil when the referenced product no longer exists, or
	// on seller listings when the item belongs to another seller.
	Product  *ProductView `json:"product"`
	Quantity int          `json:"quantity"`
}

// OrderView is an order with its references resolved for display
type OrderView struct {
	ID                 string               `json:"id"`
	Items              []OrderItemView      `json:"items"`
	Amount             float64              `json:"amount"`
	Address            *AddressView         `json:"address"`
	Status             domain.OrderStatus   `json:"status"`
	PaymentStatus      domain.PaymentStatus `json:"paymentStatus"`
	CancellationReason *string              `json:"cancellationReason,omitempty"`
	RefundReason       *string              `json:"refundReason,omitempty"`
	RefundedAt         *time.Time           `json:"refundedAt,omitempty"`
	Date               time.Time            `json:"date"`
	Customer           *CustomerView        `json:"customer,omitempty"`
}
