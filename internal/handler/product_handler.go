package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/shoplane/shoplane-api/internal/service"
	"github.com/shoplane/shoplane-api/internal/utils"
)

// ProductHandler handles catalog HTTP endpoints.
type ProductHandler struct {
	productService *service.ProductService
}

// NewProductHandler constructs a ProductHandler.
func NewProductHandler(productService *service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// GetProducts handles GET /api/products. All filtering, sorting, and
// pagination parameters are parsed by the query builder; malformed values
// degrade instead of erroring.
func (h *ProductHandler) GetProducts(c *gin.Context) {
	q := service.ParseProductQuery(c.Request.URL.Query())

	result, err := h.productService.List(c.Request.Context(), q)
	if err != nil {
		abortWithError(c, 0, err)
		return
	}

	c.JSON(200, result)
}

// GetProductByID handles GET /api/products/:id
func (h *ProductHandler) GetProductByID(c *gin.Context) {
	product, err := h.productService.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, utils.ErrProductNotFound) {
			abortWithError(c, 404, err)
			return
		}
		abortWithError(c, 0, err)
		return
	}

	c.JSON(200, product)
}

// CreateProduct handles POST /api/products
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req service.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, 400, errInvalidBody)
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, utils.ErrSKUExists) {
			abortWithError(c, 400, err)
			return
		}
		abortWithError(c, 0, err)
		return
	}

	c.JSON(201, product)
}

// UpdateProduct handles PUT /api/products/:id
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	var req service.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, 400, errInvalidBody)
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		if errors.Is(err, utils.ErrProductNotFound) {
			abortWithError(c, 404, err)
			return
		}
		abortWithError(c, 0, err)
		return
	}

	c.JSON(200, product)
}

// DeleteProduct handles DELETE /api/products/:id. The response confirms the
// removal; it does not echo the deleted record.
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	if err := h.productService.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, utils.ErrProductNotFound) {
			abortWithError(c, 404, err)
			return
		}
		abortWithError(c, 0, err)
		return
	}

	c.JSON(200, gin.H{"message": "Product removed"})
}

// GetFeaturedProducts handles GET /api/products/featured
func (h *ProductHandler) GetFeaturedProducts(c *gin.Context) {
	products, err := h.productService.FeaturedProducts(c.Request.Context(), highlightLimit(c))
	if err != nil {
		abortWithError(c, 0, err)
		return
	}
	c.JSON(200, products)
}

// GetOnSaleProducts handles GET /api/products/on-sale
func (h *ProductHandler) GetOnSaleProducts(c *gin.Context) {
	products, err := h.productService.OnSaleProducts(c.Request.Context(), highlightLimit(c))
	if err != nil {
		abortWithError(c, 0, err)
		return
	}
	c.JSON(200, products)
}

// highlightLimit parses the limit query param for the featured/on-sale
// listings; anything unusable means the service default.
func highlightLimit(c *gin.Context) int {
	n, err := strconv.Atoi(c.Query("limit"))
	if err != nil {
		return 0
	}
	return n
}
