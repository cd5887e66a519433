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
	"github.com/swiftkart/storefront/pkg/errors"
)

type addressRepository struct {
	coll   *mongo.Collection
	logger *zap.Logger
}

// NewAddressRepository creates a new address repository
func NewAddressRepository(db *mongo.Database, logger *zap.Logger) *addressRepository {
	return &addressRepository{
		coll:   db.Collection("addresses"),
		logger: logger,
	}
}

func (r *addressRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Address, error) {
	var address domain.Address
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&address)
	if err != nil {
		if stderrors.Is(err, mongo.ErrNoDocuments) {
			return nil, &errors.ErrNotFound{Resource: "address", ID: id.Hex()}
		}
		r.logger.Error("Failed to get address by ID", zap.Error(err))
		return nil, err
	}
	return &address, nil
}

func (r *addressRepository) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*domain.Address, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	cursor, err := r.coll.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		r.logger.Error("Failed to get addresses by IDs", zap.Error(err))
		return nil, err
	}
	defer cursor.Close(ctx)

	var addresses []*domain.Address
	if err := cursor.All(ctx, &addresses); err != nil {
		return nil, err
	}
	return addresses, nil
}

func (r *addressRepository) ListByUserID(ctx context.Context, userID primitive.ObjectID) ([]*domain.Address, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"userId": userID},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		r.logger.Error("Failed to list addresses by user", zap.Error(err))
		return nil, err
	}
	defer cursor.Close(ctx)

	var addresses []*domain.Address
	if err := cursor.All(ctx, &addresses); err != nil {
		return nil, err
	}
	return addresses, nil
}

func (r *addressRepository) Create(ctx context.Context, address *domain.Address) error {
	if address.ID.IsZero() {
		address.ID = primitive.NewObjectID()
	}
	if address.CreatedAt.IsZero() {
		address.CreatedAt = time.Now()
	}

	if _, err := r.coll.InsertOne(ctx, address); err != nil {
		r.logger.Error("Failed to create address", zap.Error(err))
		return err
	}
	return nil
}
