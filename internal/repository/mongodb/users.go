package mongodb

import (
	"context"
	stderrors "errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/swiftkart/storefront/internal/domain"
	"github.com/swiftkart/storefront/pkg/errors"
)

type userRepository struct {
	coll   *mongo.Collection
	logger *zap.Logger
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *mongo.Database, logger *zap.Logger) *userRepository {
	return &userRepository{
		coll:   db.Collection("users"),
		logger: logger,
	}
}

func (r *userRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	var user domain.User
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if stderrors.Is(err, mongo.ErrNoDocuments) {
			return nil, &errors.ErrNotFound{Resource: "user", ID: id.Hex()}
		}
		r.logger.Error("Failed to get user by ID", zap.Error(err))
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByAPIKeyLookup(ctx context.Context, lookup string) (*domain.User, error) {
	var user domain.User
	err := r.coll.FindOne(ctx, bson.M{"apiKeyLookup": lookup}).Decode(&user)
	if err != nil {
		if stderrors.Is(err, mongo.ErrNoDocuments) {
			return nil, &errors.ErrNotFound{Resource: "user", ID: "api key"}
		}
		r.logger.Error("Failed to get user by API key lookup", zap.Error(err))
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	now := time.Now()
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	if user.UpdatedAt.IsZero() {
		user.UpdatedAt = now
	}
	if user.Cart == nil {
		user.Cart = map[string]int{}
	}

	if _, err := r.coll.InsertOne(ctx, user); err != nil {
		r.logger.Error("Failed to create user", zap.Error(err))
		return err
	}
	return nil
}

func (r *userRepository) UpdateCart(ctx context.Context, id primitive.ObjectID, cart map[string]int) error {
	if cart == nil {
		cart = map[string]int{}
	}
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"cart": cart, "updatedAt": time.Now()}},
	)
	if err != nil {
		r.logger.Error("Failed to update cart", zap.Error(err))
		return err
	}
	if res.MatchedCount == 0 {
		return &errors.ErrNotFound{Resource: "user", ID: id.Hex()}
	}
	return nil
}
