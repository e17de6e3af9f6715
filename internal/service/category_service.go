package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/shoplane/shoplane-api/internal/models"
	"github.com/shoplane/shoplane-api/internal/repository"
	"github.com/shoplane/shoplane-api/internal/utils"
)

// CategoryService provides category tree business logic.
type CategoryService struct {
	categoryRepo repository.CategoryRepository
}

// NewCategoryService constructs a CategoryService.
func NewCategoryService(categoryRepo repository.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// ListCategories returns active categories in display order.
func (s *CategoryService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.categoryRepo.ListActive(ctx)
}

// GetCategory resolves a category by id.
func (s *CategoryService) GetCategory(ctx context.Context, id string) (*models.Category, error) {
	c, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrCategoryNotFound
		}
		return nil, err
	}
	return c, nil
}

// CreateCategoryRequest carries the fields accepted on category creation.
type CreateCategoryRequest struct {
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description string  `json:"description"`
	ImageURL    string  `json:"imageUrl"`
	ParentID    *string `json:"parentCategory"`
	Active      *bool   `json:"active"`
	SortOrder   int     `json:"order"`
}

// CreateCategory persists a new category. Slugs are lowercased; a duplicate
// slug is a conflict. A parent reference, if present, must resolve, but the
// check is not transactional with the insert.
func (s *CategoryService) CreateCategory(ctx context.Context, req *CreateCategoryRequest) (*models.Category, error) {
	if req.Name == "" {
		return nil, errors.New("category validation failed: name is required")
	}
	if req.Slug == "" {
		return nil, errors.New("category validation failed: slug is required")
	}

	if req.ParentID != nil {
		if _, err := s.GetCategory(ctx, *req.ParentID); err != nil {
			return nil, err
		}
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}
	c := &models.Category{
		Name:        req.Name,
		Slug:        strings.ToLower(req.Slug),
		Description: req.Description,
		ImageURL:    req.ImageURL,
		ParentID:    req.ParentID,
		Active:      active,
		SortOrder:   req.SortOrder,
	}
	if err := s.categoryRepo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// UpdateCategoryRequest carries a partial field merge for categories.
type UpdateCategoryRequest struct {
	Name        *string `json:"name"`
	Slug        *string `json:"slug"`
	Description *string `json:"description"`
	ImageURL    *string `json:"imageUrl"`
	ParentID    *string `json:"parentCategory"`
	Active      *bool   `json:"active"`
	SortOrder   *int    `json:"order"`
}

// UpdateCategory applies a partial merge and persists it.
func (s *CategoryService) UpdateCategory(ctx context.Context, id string, req *UpdateCategoryRequest) (*models.Category, error) {
	c, err := s.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.Slug != nil {
		c.Slug = strings.ToLower(*req.Slug)
	}
	if req.Description != nil {
		c.Description = *req.Description
	}
	if req.ImageURL != nil {
		c.ImageURL = *req.ImageURL
	}
	if req.ParentID != nil {
		if _, err := s.GetCategory(ctx, *req.ParentID); err != nil {
			return nil, err
		}
		c.ParentID = req.ParentID
	}
	if req.Active != nil {
		c.Active = *req.Active
	}
	if req.SortOrder != nil {
		c.SortOrder = *req.SortOrder
	}

	if err := s.categoryRepo.Update(ctx, c); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrCategoryNotFound
		}
		return nil, err
	}
	return c, nil
}

// DeleteCategory removes a category. The schema restricts deletion while
// products still reference it; that surfaces as ErrCategoryInUse rather than
// cascading.
func (s *CategoryService) DeleteCategory(ctx context.Context, id string) error {
	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return utils.ErrCategoryNotFound
		}
		return err
	}
	return nil
}
