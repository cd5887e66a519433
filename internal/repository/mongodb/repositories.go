package mongodb

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/swiftkart/storefront/internal/repository"
)

// NewRepositories creates a new set of repositories
func NewRepositories(db *mongo.Database, logger *zap.Logger) *repository.Repositories {
	return &repository.Repositories{
		User:    NewUserRepository(db, logger),
		Product: NewProductRepository(db, logger),
		Address: NewAddressRepository(db, logger),
		Order:   NewOrderRepository(db, logger),
	}
}
