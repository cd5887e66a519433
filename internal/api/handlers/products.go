package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/swiftkart/storefront/internal/api/middleware"
	"github.com/swiftkart/storefront/internal/domain"
	"github.com/swiftkart/storefront/internal/repository"
	"github.com/swiftkart/storefront/pkg/errors"
)

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID          string   `json:"id"`
	SellerID    string   `json:"sellerId"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Brand       string   `json:"brand"`
	Category    string   `json:"category"`
	Subcategory string   `json:"subcategory,omitempty"`
	Price       float64  `json:"price"`
	OfferPrice  float64  `json:"offerPrice"`
	Stock       int      `json:"stock"`
	Image       []string `json:"image"`
	Video       []string `json:"video,omitempty"`
	CreatedAt   string   `json:"createdAt"`
}

// CreateProductRequest represents the product creation payload
type CreateProductRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description" binding:"required"`
	Brand       string   `json:"brand" binding:"required"`
	Category    string   `json:"category" binding:"required"`
	Subcategory string   `json:"subcategory"`
	Price       float64  `json:"price" binding:"required,gt=0"`
	OfferPrice  float64  `json:"offerPrice" binding:"required,gt=0"`
	Stock       int      `json:"stock" binding:"min=0"`
	Image       []string `json:"image"`
	Video       []string `json:"video"`
}

// UpdateProductRequest carries the mutable product fields. Pointers
// distinguish absent fields from zero values.
type UpdateProductRequest struct {
	Name        *string   `json:"name,omitempty"`
	Description *string   `json:"description,omitempty"`
	Brand       *string   `json:"brand,omitempty"`
	Category    *string   `json:"category,omitempty"`
	Subcategory *string   `json:"subcategory,omitempty"`
	Price       *float64  `json:"price,omitempty"`
	OfferPrice  *float64  `json:"offerPrice,omitempty"`
	Stock       *int      `json:"stock,omitempty"`
	Image       *[]string `json:"image,omitempty"`
	Video       *[]string `json:"video,omitempty"`
}

func toProductResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID.Hex(),
		SellerID:    p.SellerID.Hex(),
		Name:        p.Name,
		Description: p.Description,
		Brand:       p.Brand,
		Category:    p.Category,
		Subcategory: p.Subcategory,
		Price:       p.Price,
		OfferPrice:  p.OfferPrice,
		Stock:       p.Stock,
		Image:       p.Images,
		Video:       p.Videos,
		CreatedAt:   p.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// HandleListProducts handles GET /api/products
//
// Public, unfiltered catalog listing, marked non-cacheable.
func HandleListProducts(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		noStore(c)

		products, err := repos.Product.List(c.Request.Context())
		if err != nil {
			logger.Error("Failed to list products", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "internal server error"})
			return
		}

		responses := make([]ProductResponse, len(products))
		for i, p := range products {
			responses[i] = toProductResponse(p)
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "products": responses})
	}
}

// HandleCreateProduct handles POST /api/seller/products
func HandleCreateProduct(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.GetUserFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "not authenticated"})
			return
		}

		var req CreateProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid product payload: " + err.Error()})
			return
		}

		product := &domain.Product{
			SellerID:    user.ID,
			Name:        req.Name,
			Description: req.Description,
			Brand:       req.Brand,
			Category:    req.Category,
			Subcategory: req.Subcategory,
			Price:       req.Price,
			OfferPrice:  req.OfferPrice,
			Stock:       req.Stock,
			Images:      req.Image,
			Videos:      req.Video,
		}

		if err := repos.Product.Create(c.Request.Context(), product); err != nil {
			writeError(c, logger, err)
			return
		}

		logger.Info("Product created",
			zap.String("product_id", product.ID.Hex()),
			zap.String("seller_id", user.ID.Hex()),
		)

		c.JSON(http.StatusCreated, gin.H{"success": true, "product": toProductResponse(product)})
	}
}

// HandleUpdateProduct handles PUT /api/seller/products/:id
//
// Only the owning seller may mutate a product.
func HandleUpdateProduct(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.GetUserFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "not authenticated"})
			return
		}

		product, done := loadOwnedProduct(c, repos, logger, user.ID)
		if done {
			return
		}

		var req UpdateProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid product payload: " + err.Error()})
			return
		}

		if req.Name != nil {
			product.Name = *req.Name
		}
		if req.Description != nil {
			product.Description = *req.Description
		}
		if req.Brand != nil {
			product.Brand = *req.Brand
		}
		if req.Category != nil {
			product.Category = *req.Category
		}
		if req.Subcategory != nil {
			product.Subcategory = *req.Subcategory
		}
		if req.Price != nil {
			product.Price = *req.Price
		}
		if req.OfferPrice != nil {
			product.OfferPrice = *req.OfferPrice
		}
		if req.Stock != nil {
			product.Stock = *req.Stock
		}
		if req.Image != nil {
			product.Images = *req.Image
		}
		if req.Video != nil {
			product.Videos = *req.Video
		}

		if err := repos.Product.Update(c.Request.Context(), product); err != nil {
			writeError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "product": toProductResponse(product)})
	}
}

// HandleDeleteProduct handles DELETE /api/seller/products/:id
func HandleDeleteProduct(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.GetUserFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "not authenticated"})
			return
		}

		product, done := loadOwnedProduct(c, repos, logger, user.ID)
		if done {
			return
		}

		if err := repos.Product.Delete(c.Request.Context(), product.ID); err != nil {
			writeError(c, logger, err)
			return
		}

		logger.Info("Product deleted",
			zap.String("product_id", product.ID.Hex()),
			zap.String("seller_id", user.ID.Hex()),
		)

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "product deleted"})
	}
}

// loadOwnedProduct resolves the :id path param and enforces the
// ownership check. It writes the response itself on failure and
// reports completion through the second return value.
func loadOwnedProduct(c *gin.Context, repos *repository.Repositories, logger *zap.Logger, sellerID primitive.ObjectID) (*domain.Product, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "product not found"})
		return nil, true
	}

	product, err := repos.Product.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, logger, err)
		return nil, true
	}

	if product.SellerID != sellerID {
		writeError(c, logger, &errors.ErrForbidden{Message: "not authorized to manage this product"})
		return nil, true
	}

	return product, false
}
