package service

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/swiftkart/storefront/internal/domain"
	"github.com/swiftkart/storefront/internal/repository"
	"github.com/swiftkart/storefront/pkg/errors"
)

type orderService struct {
	repos  *repository.Repositories
	logger *zap.Logger
}

// NewOrderService creates a new order service
func NewOrderService(repos *repository.Repositories, logger *zap.Logger) *orderService {
	return &orderService{
		repos:  repos,
		logger: logger,
	}
}

// ListBuyerOrders returns all of the buyer's orders newest first,
// with addresses and line-item products resolved.
func (s *orderService) ListBuyerOrders(ctx context.Context, userID primitive.ObjectID) ([]OrderView, error) {
	orders, err := s.repos.Order.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.resolveOrders(ctx, orders, resolveOptions{})
}

// ListSellerOrders returns orders containing at least one of the
// seller's products. Every line item is included, but products
// resolve only for items the seller owns; the rest stay null. Each
// order carries a customer object synthesized from its address.
func (s *orderService) ListSellerOrders(ctx context.Context, sellerID primitive.ObjectID) ([]OrderView, error) {
	productIDs, err := s.repos.Product.ListIDsBySellerID(ctx, sellerID)
	if err != nil {
		return nil, err
	}

	orders, err := s.repos.Order.ListByProductIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}

	return s.resolveOrders(ctx, orders, resolveOptions{
		onlySeller:   sellerID,
		withCustomer: true,
	})
}

// UpdateSellerOrder applies a partial status/payment update to one
// order on behalf of a seller. The seller must own at least one
// product in the order. Illegal lifecycle transitions are rejected,
// and reason fields are only accepted alongside the state they
// describe.
func (s *orderService) UpdateSellerOrder(ctx context.Context, sellerID primitive.ObjectID, req OrderUpdateRequest) (*OrderView, error) {
	orderID, err := primitive.ObjectIDFromHex(req.OrderID)
	if err != nil {
		return nil, &errors.ErrNotFound{Resource: "order", ID: req.OrderID}
	}

	order, err := s.repos.Order.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	owns, err := s.sellerOwnsItem(ctx, sellerID, order)
	if err != nil {
		return nil, err
	}
	if !owns {
		return nil, &errors.ErrForbidden{Message: "not authorized to update this order"}
	}

	upd, err := buildOrderUpdate(order, req)
	if err != nil {
		return nil, err
	}

	updated, err := s.repos.Order.ApplyUpdate(ctx, orderID, upd)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Order updated by seller",
		zap.String("order_id", orderID.Hex()),
		zap.String("seller_id", sellerID.Hex()),
		zap.String("status", string(updated.Status)),
		zap.String("payment_status", string(updated.PaymentStatus)),
	)

	views, err := s.resolveOrders(ctx, []*domain.Order{updated}, resolveOptions{withCustomer: true})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// PlaceOrder creates an order from the checkout payload. The amount
// is captured from current offer prices at order time. Carts spanning
// more than one seller are rejected so that every order has exactly
// one seller responsible for its lifecycle.
func (s *orderService) PlaceOrder(ctx context.Context, user *domain.User, req CheckoutRequest) (*OrderView, error) {
	addressID, err := primitive.ObjectIDFromHex(req.AddressID)
	if err != nil {
		return nil, &errors.ErrValidation{Message: "invalid address ID"}
	}

	address, err := s.repos.Address.GetByID(ctx, addressID)
	if err != nil {
		return nil, err
	}
	if address.UserID != user.ID {
		return nil, &errors.ErrForbidden{Message: "address does not belong to this buyer"}
	}

	items := make([]domain.OrderItem, 0, len(req.Items))
	productIDs := make([]primitive.ObjectID, 0, len(req.Items))
	for _, it := range req.Items {
		pid, err := primitive.ObjectIDFromHex(it.ProductID)
		if err != nil {
			return nil, &errors.ErrValidation{Message: "invalid product ID: " + it.ProductID}
		}
		items = append(items, domain.OrderItem{ProductID: pid, Quantity: it.Quantity})
		productIDs = append(productIDs, pid)
	}

	products, err := s.repos.Product.GetByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[primitive.ObjectID]*domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	var amount float64
	var sellerID primitive.ObjectID
	for _, item := range items {
		product, ok := byID[item.ProductID]
		if !ok {
			return nil, &errors.ErrNotFound{Resource: "product", ID: item.ProductID.Hex()}
		}
		if sellerID.IsZero() {
			sellerID = product.SellerID
		} else if product.SellerID != sellerID {
			return nil, &errors.ErrValidation{Message: "order cannot contain products from multiple sellers"}
		}
		amount += product.OfferPrice * float64(item.Quantity)
	}

	order := &domain.Order{
		UserID:        user.ID,
		Items:         items,
		Amount:        amount,
		AddressID:     addressID,
		Status:        domain.OrderStatusPlaced,
		PaymentStatus: domain.PaymentStatusPending,
		Date:          time.Now(),
	}

	if err := s.repos.Order.Create(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Info("Order placed",
		zap.String("order_id", order.ID.Hex()),
		zap.String("user_id", user.ID.Hex()),
		zap.Float64("amount", amount),
		zap.Int("item_count", len(items)),
	)

	// Checkout consumes the cart
	if err := s.repos.User.UpdateCart(ctx, user.ID, map[string]int{}); err != nil {
		s.logger.Warn("Failed to clear cart after checkout", zap.Error(err))
	}

	views, err := s.resolveOrders(ctx, []*domain.Order{order}, resolveOptions{})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// sellerOwnsItem reports whether at least one line item's product
// belongs to the seller.
func (s *orderService) sellerOwnsItem(ctx context.Context, sellerID primitive.ObjectID, order *domain.Order) (bool, error) {
	ids := make([]primitive.ObjectID, len(order.Items))
	for i, item := range order.Items {
		ids[i] = item.ProductID
	}
	products, err := s.repos.Product.GetByIDs(ctx, ids)
	if err != nil {
		return false, err
	}
	for _, p := range products {
		if p.SellerID == sellerID {
			return true, nil
		}
	}
	return false, nil
}

// buildOrderUpdate validates the requested transitions against the
// order's current state and produces the partial update. Same-state
// requests are idempotent no-ops for that field.
func buildOrderUpdate(order *domain.Order, req OrderUpdateRequest) (repository.OrderUpdate, error) {
	var upd repository.OrderUpdate

	targetStatus := order.Status
	if req.Status != nil {
		st := domain.OrderStatus(*req.Status)
		if !st.IsValid() {
			return upd, &errors.ErrValidation{Message: "invalid status: " + *req.Status}
		}
		if st != order.Status {
			if !order.Status.CanTransitionTo(st) {
				return upd, &errors.ErrInvalidStateTransition{
					Field: "status",
					From:  string(order.Status),
					To:    string(st),
				}
			}
			upd.Status = &st
		}
		targetStatus = st
	}

	targetPayment := order.PaymentStatus
	if req.PaymentStatus != nil {
		ps := domain.PaymentStatus(*req.PaymentStatus)
		if !ps.IsValid() {
			return upd, &errors.ErrValidation{Message: "invalid payment status: " + *req.PaymentStatus}
		}
		if ps != order.PaymentStatus {
			if !order.PaymentStatus.CanTransitionTo(ps) {
				return upd, &errors.ErrInvalidStateTransition{
					Field: "payment status",
					From:  string(order.PaymentStatus),
					To:    string(ps),
				}
			}
			upd.PaymentStatus = &ps
			if ps == domain.PaymentStatusRefunded {
				now := time.Now()
				upd.RefundedAt = &now
			}
		}
		targetPayment = ps
	}

	if req.CancellationReason != nil && targetStatus != domain.OrderStatusCancelled {
		return upd, &errors.ErrValidation{Message: "cancellation reason requires a cancelled order"}
	}
	if req.RefundReason != nil && targetPayment != domain.PaymentStatusRefunded {
		return upd, &errors.ErrValidation{Message: "refund reason requires a refunded payment"}
	}
	upd.CancellationReason = req.CancellationReason
	upd.RefundReason = req.RefundReason

	return upd, nil
}

type resolveOptions struct {
	// onlySeller restricts product resolution to this seller's items;
	// other items keep a null product.
	onlySeller primitive.ObjectID
	// withCustomer attaches the customer object synthesized from the
	// order's address.
	withCustomer bool
}

// resolveOrders joins orders with their addresses and products. The
// distinct referenced IDs are collected across all orders and fetched
// in one query per collection, then assembled through lookup maps.
func (s *orderService) resolveOrders(ctx context.Context, orders []*domain.Order, opts resolveOptions) ([]OrderView, error) {
	productIDSet := make(map[primitive.ObjectID]bool)
	addressIDSet := make(map[primitive.ObjectID]bool)
	for _, order := range orders {
		addressIDSet[order.AddressID] = true
		for _, item := range order.Items {
			productIDSet[item.ProductID] = true
		}
	}

	products, err := s.repos.Product.GetByIDs(ctx, setToSlice(productIDSet))
	if err != nil {
		return nil, err
	}
	productsByID := make(map[primitive.ObjectID]*domain.Product, len(products))
	for _, p := range products {
		productsByID[p.ID] = p
	}

	addresses, err := s.repos.Address.GetByIDs(ctx, setToSlice(addressIDSet))
	if err != nil {
		return nil, err
	}
	addressesByID := make(map[primitive.ObjectID]*domain.Address, len(addresses))
	for _, a := range addresses {
		addressesByID[a.ID] = a
	}

	views := make([]OrderView, len(orders))
	for i, order := range orders {
		view := OrderView{
			ID:                 order.ID.Hex(),
			Amount:             order.Amount,
			Status:             order.Status,
			PaymentStatus:      order.PaymentStatus,
			CancellationReason: order.CancellationReason,
			RefundReason:       order.RefundReason,
			RefundedAt:         order.RefundedAt,
			Date:               order.Date,
			Items:              make([]OrderItemView, len(order.Items)),
		}

		for j, item := range order.Items {
			itemView := OrderItemView{Quantity: item.Quantity}
			if product, ok := productsByID[item.ProductID]; ok {
				if opts.onlySeller.IsZero() || product.SellerID == opts.onlySeller {
					itemView.Product = &ProductView{
						ID:         product.ID.Hex(),
						Name:       product.Name,
						Image:      product.Images,
						OfferPrice: product.OfferPrice,
					}
				}
			}
			view.Items[j] = itemView
		}

		address := addressesByID[order.AddressID]
		if address != nil {
			view.Address = &AddressView{
				ID:          address.ID.Hex(),
				FullName:    address.FullName,
				PhoneNumber: address.PhoneNumber,
				Area:        address.Area,
				City:        address.City,
				State:       address.State,
				Pincode:     address.Pincode,
			}
		}

		if opts.withCustomer {
			view.Customer = customerFromAddress(address)
		}

		views[i] = view
	}

	return views, nil
}

// customerFromAddress derives the seller-facing customer object from
// the shipping address. The buyer record is never consulted.
func customerFromAddress(address *domain.Address) *CustomerView {
	if address == nil {
		return &CustomerView{FullName: "N/A", PhoneNumber: "N/A"}
	}
	return &CustomerView{
		FullName:    address.FullName,
		PhoneNumber: address.PhoneNumber,
		ShippingAddress: &ShippingAddressView{
			AddressLine1: address.Area,
			City:         address.City,
			State:        address.State,
			Pincode:      address.Pincode,
			Country:      "",
		},
	}
}

func setToSlice(set map[primitive.ObjectID]bool) []primitive.ObjectID {
	out := make([]primitive.ObjectID, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	return out
}
