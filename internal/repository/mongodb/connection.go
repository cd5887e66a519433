package mongodb

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/swiftkart/storefront/internal/config"
)

// Conn is an explicitly owned MongoDB handle. The client is built on
// first use and shared for the life of the process; there is no
// teardown contract for this workload beyond process exit.
type Conn struct {
	cfg config.MongoConfig

	once   sync.Once
	client *mongo.Client
	err    error
}

// NewConn creates a lazy connection handle. No I/O happens until the
// first Database call.
func NewConn(cfg config.MongoConfig) *Conn {
	return &Conn{cfg: cfg}
}

// Database returns the configured database, connecting on first use.
func (c *Conn) Database(ctx context.Context) (*mongo.Database, error) {
	c.once.Do(func() {
		opts := options.Client().
			ApplyURI(c.cfg.URI).
			SetMaxPoolSize(5).
			SetConnectTimeout(30 * time.Second).
			SetServerSelectionTimeout(15 * time.Second)

		client, err := mongo.Connect(ctx, opts)
		if err != nil {
			c.err = fmt.Errorf("failed to connect to mongodb: %w", err)
			return
		}

		// Test connection
		if err := client.Ping(ctx, nil); err != nil {
			c.err = fmt.Errorf("failed to ping mongodb: %w", err)
			return
		}

		c.client = client
	})

	if c.err != nil {
		return nil, c.err
	}
	return c.client.Database(c.cfg.Database), nil
}
