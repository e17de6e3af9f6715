package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shoplane/shoplane-api/internal/models"
	"github.com/shoplane/shoplane-api/internal/service"
	"github.com/shoplane/shoplane-api/internal/utils"
)

func strPtr(s string) *string { return &s }

func TestCreateCategory_LowercasesSlug(t *testing.T) {
	repo := newMemCategoryRepo()
	svc := service.NewCategoryService(repo)

	c, err := svc.CreateCategory(context.Background(), &service.CreateCategoryRequest{
		Name: "Home Office", Slug: "Home-OFFICE",
	})
	require.NoError(t, err)
	assert.Equal(t, "home-office", c.Slug)
	assert.True(t, c.Active, "active defaults to true")
}

func TestCreateCategory_DuplicateSlug(t *testing.T) {
	repo := newMemCategoryRepo()
	svc := service.NewCategoryService(repo)
	ctx := context.Background()

	_, err := svc.CreateCategory(ctx, &service.CreateCategoryRequest{Name: "A", Slug: "shared"})
	require.NoError(t, err)

	_, err = svc.CreateCategory(ctx, &service.CreateCategoryRequest{Name: "B", Slug: "SHARED"})
	assert.ErrorIs(t, err, utils.ErrSlugExists)
}

func TestCreateCategory_ParentMustResolve(t *testing.T) {
	repo := newMemCategoryRepo()
	svc := service.NewCategoryService(repo)
	ctx := context.Background()

	_, err := svc.CreateCategory(ctx, &service.CreateCategoryRequest{
		Name: "Child", Slug: "child", ParentID: strPtr("missing"),
	})
	assert.ErrorIs(t, err, utils.ErrCategoryNotFound)

	parent := repo.seed(models.Category{Name: "Parent", Slug: "parent", Active: true})
	child, err := svc.CreateCategory(ctx, &service.CreateCategoryRequest{
		Name: "Child", Slug: "child", ParentID: &parent.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, child.ParentID)
	assert.Equal(t, parent.ID, *child.ParentID)
}

func TestUpdateCategory_PartialMerge(t *testing.T) {
	repo := newMemCategoryRepo()
	svc := service.NewCategoryService(repo)
	c := repo.seed(models.Category{Name: "Old", Slug: "old", Active: true, SortOrder: 1})

	updated, err := svc.UpdateCategory(context.Background(), c.ID, &service.UpdateCategoryRequest{
		Slug: strPtr("NEW-Slug"),
	})
	require.NoError(t, err)
	assert.Equal(t, "new-slug", updated.Slug)
	assert.Equal(t, "Old", updated.Name)
	assert.Equal(t, 1, updated.SortOrder)
}

func TestUpdateCategory_NotFound(t *testing.T) {
	svc := service.NewCategoryService(newMemCategoryRepo())
	_, err := svc.UpdateCategory(context.Background(), "missing", &service.UpdateCategoryRequest{})
	assert.ErrorIs(t, err, utils.ErrCategoryNotFound)
}

func TestListCategories_ActiveInDisplayOrder(t *testing.T) {
	repo := newMemCategoryRepo()
	svc := service.NewCategoryService(repo)
	repo.seed(models.Category{Name: "Second", Slug: "second", Active: true, SortOrder: 2})
	repo.seed(models.Category{Name: "First", Slug: "first", Active: true, SortOrder: 1})
	repo.seed(models.Category{Name: "Hidden", Slug: "hidden", Active: false, SortOrder: 0})

	categories, err := svc.ListCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "First", categories[0].Name)
	assert.Equal(t, "Second", categories[1].Name)
}

// inUseCategoryRepo simulates the referential restriction the schema enforces
// when products still point at a category.
type inUseCategoryRepo struct {
	*memCategoryRepo
}

func (r inUseCategoryRepo) Delete(_ context.Context, _ string) error {
	return utils.ErrCategoryInUse
}

func TestDeleteCategory(t *testing.T) {
	repo := newMemCategoryRepo()
	svc := service.NewCategoryService(repo)
	ctx := context.Background()

	c := repo.seed(models.Category{Name: "Gone", Slug: "gone", Active: true})
	require.NoError(t, svc.DeleteCategory(ctx, c.ID))
	_, err := svc.GetCategory(ctx, c.ID)
	assert.ErrorIs(t, err, utils.ErrCategoryNotFound)

	assert.ErrorIs(t, svc.DeleteCategory(ctx, c.ID), utils.ErrCategoryNotFound)

	referenced := service.NewCategoryService(inUseCategoryRepo{repo})
	assert.ErrorIs(t, referenced.DeleteCategory(ctx, "any"), utils.ErrCategoryInUse)
}
