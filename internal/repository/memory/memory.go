// Package memory provides in-memory repository implementations used
// by tests. Behavior mirrors the mongodb package, including sort
// order and typed not-found errors.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/swiftkart/storefront/internal/domain"
	"github.com/swiftkart/storefront/internal/repository"
	"github.com/swiftkart/storefront/pkg/errors"
)

// Store holds all collections behind one lock.
type Store struct {
	mu        sync.RWMutex
	users     map[primitive.ObjectID]domain.User
	products  map[primitive.ObjectID]domain.Product
	addresses map[primitive.ObjectID]domain.Address
	orders    map[primitive.ObjectID]domain.Order
}

func NewStore() *Store {
	return &Store{
		users:     make(map[primitive.ObjectID]domain.User),
		products:  make(map[primitive.ObjectID]domain.Product),
		addresses: make(map[primitive.ObjectID]domain.Address),
		orders:    make(map[primitive.ObjectID]domain.Order),
	}
}

// NewRepositories wires the store into the repository aggregate.
func NewRepositories(s *Store) *repository.Repositories {
	return &repository.Repositories{
		User:    &userRepo{s},
		Product: &productRepo{s},
		Address: &addressRepo{s},
		Order:   &orderRepo{s},
	}
}

type userRepo struct{ s *Store }

var _ repository.UserRepository = (*userRepo)(nil)

func (r *userRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, &errors.ErrNotFound{Resource: "user", ID: id.Hex()}
	}
	return &u, nil
}

func (r *userRepo) GetByAPIKeyLookup(ctx context.Context, lookup string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if u.APIKeyLookup == lookup {
			u := u
			return &u, nil
		}
	}
	return nil, &errors.ErrNotFound{Resource: "user", ID: "api key"}
}

func (r *userRepo) Create(ctx context.Context, user *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	if user.UpdatedAt.IsZero() {
		user.UpdatedAt = now
	}
	if user.Cart == nil {
		user.Cart = map[string]int{}
	}
	r.s.users[user.ID] = *user
	return nil
}

func (r *userRepo) UpdateCart(ctx context.Context, id primitive.ObjectID, cart map[string]int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return &errors.ErrNotFound{Resource: "user", ID: id.Hex()}
	}
	if cart == nil {
		cart = map[string]int{}
	}
	u.Cart = cart
	u.UpdatedAt = time.Now()
	r.s.users[id] = u
	return nil
}

type productRepo struct{ s *Store }

var _ repository.ProductRepository = (*productRepo)(nil)

func (r *productRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, &errors.ErrNotFound{Resource: "product", ID: id.Hex()}
	}
	return &p, nil
}

func (r *productRepo) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*domain.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*domain.Product
	for _, id := range ids {
		if p, ok := r.s.products[id]; ok {
			p := p
			out = append(out, &p)
		}
	}
	return out, nil
}

func (r *productRepo) List(ctx context.Context) ([]*domain.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*domain.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		p := p
		out = append(out, &p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *productRepo) ListIDsBySellerID(ctx context.Context, sellerID primitive.ObjectID) ([]primitive.ObjectID, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var ids []primitive.ObjectID
	for _, p := range r.s.products {
		if p.SellerID == sellerID {
			ids = append(ids, p.ID)
		}
	}
	return ids, nil
}

func (r *productRepo) Create(ctx context.Context, product *domain.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if product.ID.IsZero() {
		product.ID = primitive.NewObjectID()
	}
	now := time.Now()
	if product.CreatedAt.IsZero() {
		product.CreatedAt = now
	}
	if product.UpdatedAt.IsZero() {
		product.UpdatedAt = now
	}
	r.s.products[product.ID] = *product
	return nil
}

func (r *productRepo) Update(ctx context.Context, product *domain.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[product.ID]; !ok {
		return &errors.ErrNotFound{Resource: "product", ID: product.ID.Hex()}
	}
	product.UpdatedAt = time.Now()
	r.s.products[product.ID] = *product
	return nil
}

func (r *productRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[id]; !ok {
		return &errors.ErrNotFound{Resource: "product", ID: id.Hex()}
	}
	delete(r.s.products, id)
	return nil
}

type addressRepo struct{ s *Store }

var _ repository.AddressRepository = (*addressRepo)(nil)

func (r *addressRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Address, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	a, ok := r.s.addresses[id]
	if !ok {
		return nil, &errors.ErrNotFound{Resource: "address", ID: id.Hex()}
	}
	return &a, nil
}

func (r *addressRepo) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*domain.Address, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*domain.Address
	for _, id := range ids {
		if a, ok := r.s.addresses[id]; ok {
			a := a
			out = append(out, &a)
		}
	}
	return out, nil
}

func (r *addressRepo) ListByUserID(ctx context.Context, userID primitive.ObjectID) ([]*domain.Address, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*domain.Address
	for _, a := range r.s.addresses {
		if a.UserID == userID {
			a := a
			out = append(out, &a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *addressRepo) Create(ctx context.Context, address *domain.Address) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if address.ID.IsZero() {
		address.ID = primitive.NewObjectID()
	}
	if address.CreatedAt.IsZero() {
		address.CreatedAt = time.Now()
	}
	r.s.addresses[address.ID] = *address
	return nil
}

type orderRepo struct{ s *Store }

var _ repository.OrderRepository = (*orderRepo)(nil)

func (r *orderRepo) Create(ctx context.Context, order *domain.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	if order.Date.IsZero() {
		order.Date = time.Now()
	}
	r.s.orders[order.ID] = *order
	return nil
}

func (r *orderRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	o, ok := r.s.orders[id]
	if !ok {
		return nil, &errors.ErrNotFound{Resource: "order", ID: id.Hex()}
	}
	return &o, nil
}

func (r *orderRepo) ListByUserID(ctx context.Context, userID primitive.ObjectID) ([]*domain.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*domain.Order
	for _, o := range r.s.orders {
		if o.UserID == userID {
			o := o
			out = append(out, &o)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (r *orderRepo) ListByProductIDs(ctx context.Context, productIDs []primitive.ObjectID) ([]*domain.Order, error) {
	return r.ListByProductIDsInRange(ctx, productIDs, time.Time{}, time.Time{})
}

func (r *orderRepo) ListByProductIDsInRange(ctx context.Context, productIDs []primitive.ObjectID, from, to time.Time) ([]*domain.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	wanted := make(map[primitive.ObjectID]bool, len(productIDs))
	for _, id := range productIDs {
		wanted[id] = true
	}
	var out []*domain.Order
	for _, o := range r.s.orders {
		if !from.IsZero() && o.Date.Before(from) {
			continue
		}
		if !to.IsZero() && !o.Date.Before(to) {
			continue
		}
		for _, item := range o.Items {
			if wanted[item.ProductID] {
				o := o
				out = append(out, &o)
				break
			}
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (r *orderRepo) ApplyUpdate(ctx context.Context, id primitive.ObjectID, upd repository.OrderUpdate) (*domain.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.orders[id]
	if !ok {
		return nil, &errors.ErrNotFound{Resource: "order", ID: id.Hex()}
	}
	if upd.Status != nil {
		o.Status = *upd.Status
	}
	if upd.PaymentStatus != nil {
		o.PaymentStatus = *upd.PaymentStatus
	}
	if upd.CancellationReason != nil {
		o.CancellationReason = upd.CancellationReason
	}
	if upd.RefundReason != nil {
		o.RefundReason = upd.RefundReason
	}
	if upd.RefundedAt != nil {
		o.RefundedAt = upd.RefundedAt
	}
	r.s.orders[id] = o
	return &o, nil
}

func sortNewestFirst(orders []*domain.Order) {
	sort.Slice(orders, func(i, j int) bool { return orders[i].Date.After(orders[j].Date) })
}
