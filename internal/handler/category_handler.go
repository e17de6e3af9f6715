package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/shoplane/shoplane-api/internal/service"
	"github.com/shoplane/shoplane-api/internal/utils"
)

// CategoryHandler handles category HTTP endpoints.
type CategoryHandler struct {
	categoryService *service.CategoryService
}

// NewCategoryHandler constructs a CategoryHandler.
func NewCategoryHandler(categoryService *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// GetCategories handles GET /api/categories
func (h *CategoryHandler) GetCategories(c *gin.Context) {
	categories, err := h.categoryService.ListCategories(c.Request.Context())
	if err != nil {
		abortWithError(c, 0, err)
		return
	}
	c.JSON(200, categories)
}

// GetCategoryByID handles GET /api/categories/:id
func (h *CategoryHandler) GetCategoryByID(c *gin.Context) {
	category, err := h.categoryService.GetCategory(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, utils.ErrCategoryNotFound) {
			abortWithError(c, 404, err)
			return
		}
		abortWithError(c, 0, err)
		return
	}
	c.JSON(200, category)
}

// CreateCategory handles POST /api/categories
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req service.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, 400, errInvalidBody)
		return
	}

	category, err := h.categoryService.CreateCategory(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, utils.ErrSlugExists) {
			abortWithError(c, 400, err)
			return
		}
		if errors.Is(err, utils.ErrCategoryNotFound) {
			abortWithError(c, 404, err)
			return
		}
		abortWithError(c, 0, err)
		return
	}

	c.JSON(201, category)
}

// UpdateCategory handles PUT /api/categories/:id
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	var req service.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, 400, errInvalidBody)
		return
	}

	category, err := h.categoryService.UpdateCategory(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		if errors.Is(err, utils.ErrCategoryNotFound) {
			abortWithError(c, 404, err)
			return
		}
		if errors.Is(err, utils.ErrSlugExists) {
			abortWithError(c, 400, err)
			return
		}
		abortWithError(c, 0, err)
		return
	}

	c.JSON(200, category)
}

// DeleteCategory handles DELETE /api/categories/:id. Deleting a category
// still referenced by products is refused rather than cascaded.
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	if err := h.categoryService.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, utils.ErrCategoryNotFound) {
			abortWithError(c, 404, err)
			return
		}
		if errors.Is(err, utils.ErrCategoryInUse) {
			abortWithError(c, 400, err)
			return
		}
		abortWithError(c, 0, err)
		return
	}

	c.JSON(200, gin.H{"message": "Category removed"})
}
