package usecase

import (
	"context"
	"testing"

	"reviews-api/internal/dto/request"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCategory(t *testing.T) {
	repo, store := newTestRepository()
	service := NewCategoryService(repo.Category, testLogger())

	resp, err := service.CreateCategory(context.Background(), &request.CategoryRequest{
		Name: "Movies",
		Slug: "movies",
	})

	require.NoError(t, err)
	assert.Equal(t, "Movies", resp.Name)
	assert.Equal(t, "movies", resp.Slug)
	assert.Len(t, store.categories, 1)
}

func TestCreateCategory_DuplicateSlug(t *testing.T) {
	repo, store := newTestRepository()
	service := NewCategoryService(repo.Category, testLogger())
	createTestCategory(store, "Movies", "movies")

	_, err := service.CreateCategory(context.Background(), &request.CategoryRequest{
		Name: "Films",
		Slug: "movies",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")
}

func TestCreateCategory_InvalidSlug(t *testing.T) {
	repo, _ := newTestRepository()
	service := NewCategoryService(repo.Category, testLogger())

	_, err := service.CreateCategory(context.Background(), &request.CategoryRequest{
		Name: "Movies",
		Slug: "mov ies!",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestGetCategories_Search(t *testing.T) {
	repo, store := newTestRepository()
	service := NewCategoryService(repo.Category, testLogger())
	createTestCategory(store, "Movies", "movies")
	createTestCategory(store, "Books", "books")

	resp, err := service.GetCategories(context.Background(), &request.PaginatedRequest{Page: 1, PerPage: 10}, "Mov")

	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Pagination.Total)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "movies", resp.Data[0].Slug)
}

func TestDeleteCategory(t *testing.T) {
	repo, store := newTestRepository()
	service := NewCategoryService(repo.Category, testLogger())
	createTestCategory(store, "Movies", "movies")

	require.NoError(t, service.DeleteCategory(context.Background(), "movies"))
	assert.Empty(t, store.categories)

	err := service.DeleteCategory(context.Background(), "movies")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
