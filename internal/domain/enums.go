package domain

// OrderStatus represents the fulfillment status of an order
type OrderStatus string

const (
	// PLACED - new order, just created at checkout
	OrderStatusPlaced OrderStatus = "placed"
	// PENDING - acknowledged by the seller, awaiting confirmation
	OrderStatusPending OrderStatus = "pending"
	// CONFIRMED - confirmed by the seller, awaiting shipment
	OrderStatusConfirmed OrderStatus = "confirmed"
	// SHIPPED - handed to the carrier
	OrderStatusShipped OrderStatus = "shipped"
	// DELIVERED - received by the buyer
	OrderStatusDelivered OrderStatus = "delivered"
	// CANCELLED - terminally cancelled; orders are never deleted
	OrderStatusCancelled OrderStatus = "cancelled"
)

// IsValid checks if the order status is valid
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPlaced,
		OrderStatusPending,
		OrderStatusConfirmed,
		OrderStatusShipped,
		OrderStatusDelivered,
		OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// CanTransitionTo checks if a status transition is valid
func (s OrderStatus) CanTransitionTo(newStatus OrderStatus) bool {
	switch s {
	case OrderStatusPlaced:
		return newStatus == OrderStatusPending ||
			newStatus == OrderStatusConfirmed ||
			newStatus == OrderStatusCancelled
	case OrderStatusPending:
		return newStatus == OrderStatusConfirmed ||
			newStatus == OrderStatusCancelled
	case OrderStatusConfirmed:
		return newStatus == OrderStatusShipped ||
			newStatus == OrderStatusCancelled
	case OrderStatusShipped:
		return newStatus == OrderStatusDelivered
	case OrderStatusDelivered, OrderStatusCancelled:
		return false // Terminal states
	default:
		return false
	}
}

// PaymentStatus represents the payment state of an order
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// IsValid checks if the payment status is valid
func (p PaymentStatus) IsValid() bool {
	switch p {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusFailed, PaymentStatusRefunded:
		return true
	default:
		return false
	}
}

// CanTransitionTo checks if a payment status transition is valid.
// A failed payment may return to pending when the buyer retries.
func (p PaymentStatus) CanTransitionTo(newStatus PaymentStatus) bool {
	switch p {
	case PaymentStatusPending:
		return newStatus == PaymentStatusPaid || newStatus == PaymentStatusFailed
	case PaymentStatusFailed:
		return newStatus == PaymentStatusPending
	case PaymentStatusPaid:
		return newStatus == PaymentStatusRefunded
	case PaymentStatusRefunded:
		return false // Terminal state
	default:
		return false
	}
}

// CountsAsRevenue reports whether an order in this payment state
// contributes to revenue totals. Refunded orders were paid once, so
// they stay in the revenue series.
func (p PaymentStatus) CountsAsRevenue() bool {
	return p == PaymentStatusPaid || p == PaymentStatusRefunded
}

// UserRole distinguishes buyers from sellers
type UserRole string

const (
	RoleBuyer  UserRole = "buyer"
	RoleSeller UserRole = "seller"
)

// IsValid checks if the role is valid
func (r UserRole) IsValid() bool {
	return r == RoleBuyer || r == RoleSeller
}
