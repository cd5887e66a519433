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

type productRepository struct {
	coll   *mongo.Collection
	logger *zap.Logger
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *mongo.Database, logger *zap.Logger) *productRepository {
	return &productRepository{
		coll:   db.Collection("products"),
		logger: logger,
	}
}

func (r *productRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Product, error) {
	var product domain.Product
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err != nil {
		if stderrors.Is(err, mongo.ErrNoDocuments) {
			return nil, &errors.ErrNotFound{Resource: "product", ID: id.Hex()}
		}
		r.logger.Error("Failed to get product by ID", zap.Error(err))
		return nil, err
	}
	return &product, nil
}

// GetByIDs fetches all referenced products in one query. Missing IDs
// are simply absent from the result; callers treat them as deleted
// products.
func (r *productRepository) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*domain.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	cursor, err := r.coll.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		r.logger.Error("Failed to get products by IDs", zap.Error(err))
		return nil, err
	}
	defer cursor.Close(ctx)

	var products []*domain.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepository) List(ctx context.Context) ([]*domain.Product, error) {
	cursor, err := r.coll.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		r.logger.Error("Failed to list products", zap.Error(err))
		return nil, err
	}
	defer cursor.Close(ctx)

	var products []*domain.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepository) ListIDsBySellerID(ctx context.Context, sellerID primitive.ObjectID) ([]primitive.ObjectID, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"sellerId": sellerID},
		options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		r.logger.Error("Failed to list product IDs by seller", zap.Error(err))
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	ids := make([]primitive.ObjectID, len(docs))
	for i, d := range docs {
		ids[i] = d.ID
	}
	return ids, nil
}

func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	now := time.Now()
	if product.ID.IsZero() {
		product.ID = primitive.NewObjectID()
	}
	if product.CreatedAt.IsZero() {
		product.CreatedAt = now
	}
	if product.UpdatedAt.IsZero() {
		product.UpdatedAt = now
	}

	if _, err := r.coll.InsertOne(ctx, product); err != nil {
		r.logger.Error("Failed to create product", zap.Error(err))
		return err
	}
	return nil
}

func (r *productRepository) Update(ctx context.Context, product *domain.Product) error {
	product.UpdatedAt = time.Now()
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": product.ID}, product)
	if err != nil {
		r.logger.Error("Failed to update product", zap.Error(err))
		return err
	}
	if res.MatchedCount == 0 {
		return &errors.ErrNotFound{Resource: "product", ID: product.ID.Hex()}
	}
	return nil
}

func (r *productRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		r.logger.Error("Failed to delete product", zap.Error(err))
		return err
	}
	if res.DeletedCount == 0 {
		return &errors.ErrNotFound{Resource: "product", ID: id.Hex()}
	}
	return nil
}
