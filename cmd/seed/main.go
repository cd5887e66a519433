package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/swiftkart/storefront/internal/api/middleware"
	"github.com/swiftkart/storefront/internal/config"
	"github.com/swiftkart/storefront/internal/domain"
	"github.com/swiftkart/storefront/internal/repository/mongodb"
)

// Seeds a seller, a buyer, and a handful of demo products so the API
// is usable right after a fresh database comes up. API keys are
// printed once; only their hashes are stored.
func main() {
	sellerKey := flag.String("seller-key", "", "API key for the demo seller (generated if empty)")
	buyerKey := flag.String("buyer-key", "", "API key for the demo buyer (generated if empty)")
	flag.Parse()

	// .env is optional; real env vars win either way
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	conn := mongodb.NewConn(cfg.Mongo)
	db, err := conn.Database(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	repos := mongodb.NewRepositories(db, logger)

	if *sellerKey == "" {
		*sellerKey = fmt.Sprintf("seller-%d", time.Now().UnixNano())
	}
	if *buyerKey == "" {
		*buyerKey = fmt.Sprintf("buyer-%d", time.Now().UnixNano())
	}

	seller := &domain.User{
		Name:         "Demo Seller",
		Email:        "seller@example.com",
		Role:         domain.RoleSeller,
		APIKeyHash:   middleware.HashAPIKey(*sellerKey),
		APIKeyLookup: middleware.LookupDigest(*sellerKey),
	}
	if err := repos.User.Create(ctx, seller); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create seller: %v\n", err)
		os.Exit(1)
	}

	buyer := &domain.User{
		Name:         "Demo Buyer",
		Email:        "buyer@example.com",
		Role:         domain.RoleBuyer,
		APIKeyHash:   middleware.HashAPIKey(*buyerKey),
		APIKeyLookup: middleware.LookupDigest(*buyerKey),
	}
	if err := repos.User.Create(ctx, buyer); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create buyer: %v\n", err)
		os.Exit(1)
	}

	products := []*domain.Product{
		{
			SellerID:    seller.ID,
			Name:        "Wireless Earbuds Pro",
			Description: "True wireless earbuds with noise cancellation",
			Brand:       "Boat",
			Category:    "Earbuds",
			Subcategory: "True Wireless Earbuds",
			Price:       2999,
			OfferPrice:  1999,
			Stock:       50,
			Images:      []string{"https://cdn.example.com/earbuds-pro.jpg"},
		},
		{
			SellerID:    seller.ID,
			Name:        "Fast Car Charger 45W",
			Description: "Dual-port fast car charger",
			Brand:       "Samsung",
			Category:    "Car Chargers",
			Price:       1499,
			OfferPrice:  999,
			Stock:       120,
			Images:      []string{"https://cdn.example.com/car-charger.jpg"},
		},
		{
			SellerID:    seller.ID,
			Name:        "Braided Type-C Cable",
			Description: "1.5m braided fast-charging cable",
			Brand:       "Mi",
			Category:    "Cables and Chargers",
			Price:       499,
			OfferPrice:  299,
			Stock:       300,
			Images:      []string{"https://cdn.example.com/type-c-cable.jpg"},
		},
	}
	for _, p := range products {
		if err := repos.Product.Create(ctx, p); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create product %q: %v\n", p.Name, err)
			os.Exit(1)
		}
	}

	fmt.Println("Seed complete.")
	fmt.Printf("  Seller ID:      %s\n", seller.ID.Hex())
	fmt.Printf("  Seller API key: %s\n", *sellerKey)
	fmt.Printf("  Buyer ID:       %s\n", buyer.ID.Hex())
	fmt.Printf("  Buyer API key:  %s\n", *buyerKey)
	fmt.Printf("  Products:       %d\n", len(products))
	fmt.Println("Save the API keys; they cannot be recovered later.")
}
