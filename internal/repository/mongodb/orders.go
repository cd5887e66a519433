package mongodb

import (
	"context"
	stderrors "errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/swiftkart/storefront/internal/domain"
	"github.com/swiftkart/storefront/internal/repository"
	"github.com/swiftkart/storefront/pkg/errors"
)

type orderRepository struct {
	coll   *mongo.Collection
	logger *zap.Logger
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *mongo.Database, logger *zap.Logger) *orderRepository {
	return &orderRepository{
		coll:   db.Collection("orders"),
		logger: logger,
	}
}

func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	if order.Date.IsZero() {
		order.Date = time.Now()
	}

	if _, err := r.coll.InsertOne(ctx, order); err != nil {
		r.logger.Error("Failed to create order", zap.Error(err))
		return err
	}
	return nil
}

func (r *orderRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Order, error) {
	var order domain.Order
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if err != nil {
		if stderrors.Is(err, mongo.ErrNoDocuments) {
			return nil, &errors.ErrNotFound{Resource: "order", ID: id.Hex()}
		}
		r.logger.Error("Failed to get order by ID", zap.Error(err))
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) ListByUserID(ctx context.Context, userID primitive.ObjectID) ([]*domain.Order, error) {
	return r.list(ctx, bson.M{"userId": userID})
}

func (r *orderRepository) ListByProductIDs(ctx context.Context, productIDs []primitive.ObjectID) ([]*domain.Order, error) {
	if len(productIDs) == 0 {
		return nil, nil
	}
	return r.list(ctx, bson.M{"items.product": bson.M{"$in": productIDs}})
}

func (r *orderRepository) ListByProductIDsInRange(ctx context.Context, productIDs []primitive.ObjectID, from, to time.Time) ([]*domain.Order, error) {
	if len(productIDs) == 0 {
		return nil, nil
	}

	filter := bson.M{"items.product": bson.M{"$in": productIDs}}
	dateFilter := bson.M{}
	if !from.IsZero() {
		dateFilter["$gte"] = from
	}
	if !to.IsZero() {
		dateFilter["$lt"] = to
	}
	if len(dateFilter) > 0 {
		filter["date"] = dateFilter
	}

	return r.list(ctx, filter)
}

func (r *orderRepository) list(ctx context.Context, filter bson.M) ([]*domain.Order, error) {
	cursor, err := r.coll.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "date", Value: -1}}))
	if err != nil {
		r.logger.Error("Failed to list orders", zap.Error(err))
		return nil, err
	}
	defer cursor.Close(ctx)

	var orders []*domain.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// ApplyUpdate sets the non-nil fields of upd in one write. The
// service layer has already validated transitions; this method only
// persists.
func (r *orderRepository) ApplyUpdate(ctx context.Context, id primitive.ObjectID, upd repository.OrderUpdate) (*domain.Order, error) {
	set := bson.M{}
	if upd.Status != nil {
		set["status"] = *upd.Status
	}
	if upd.PaymentStatus != nil {
		set["paymentStatus"] = *upd.PaymentStatus
	}
	if upd.CancellationReason != nil {
		set["cancellationReason"] = *upd.CancellationReason
	}
	if upd.RefundReason != nil {
		set["refundReason"] = *upd.RefundReason
	}
	if upd.RefundedAt != nil {
		set["refundedAt"] = *upd.RefundedAt
	}

	if len(set) == 0 {
		return r.GetByID(ctx, id)
	}

	var order domain.Order
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&order)
	if err != nil {
		if stderrors.Is(err, mongo.ErrNoDocuments) {
			return nil, &errors.ErrNotFound{Resource: "order", ID: id.Hex()}
		}
		r.logger.Error("Failed to apply order update", zap.Error(err))
		return nil, err
	}
	return &order, nil
}
