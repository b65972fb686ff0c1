package usecase

import (
	"context"
	"testing"
	"time"

	"reviews-api/internal/data/entity"
	"reviews-api/internal/data/repository"
	"reviews-api/internal/dto/request"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTitleService(t *testing.T) (TitleService, *memStore) {
	t.Helper()
	repo, store := newTestRepository()
	return NewTitleService(repo, testLogger()), store
}

func TestCreateTitle_WithCategoryAndGenres(t *testing.T) {
	service, store := newTitleService(t)
	createTestCategory(store, "Movies", "movies")
	createTestGenre(store, "Drama", "drama")
	createTestGenre(store, "Comedy", "comedy")

	resp, err := service.CreateTitle(context.Background(), &request.TitleRequest{
		Name:     "The Big Film",
		Year:     1999,
		Category: strPtr("movies"),
		Genres:   []string{"drama", "comedy"},
	})

	require.NoError(t, err)
	assert.Equal(t, "The Big Film", resp.Name)
	assert.Equal(t, 1999, resp.Year)
	require.NotNil(t, resp.Category)
	assert.Equal(t, "movies", resp.Category.Slug)
	assert.Len(t, resp.Genres, 2)
	assert.Nil(t, resp.Rating)
	assert.Len(t, store.titleGenre, 2)
}

func TestCreateTitle_FutureYear(t *testing.T) {
	service, _ := newTitleService(t)

	_, err := service.CreateTitle(context.Background(), &request.TitleRequest{
		Name: "From the Future",
		Year: time.Now().Year() + 1,
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot be in the future")
}

func TestCreateTitle_UnknownCategory(t *testing.T) {
	service, _ := newTitleService(t)

	_, err := service.CreateTitle(context.Background(), &request.TitleRequest{
		Name:     "Lost",
		Year:     2004,
		Category: strPtr("series"),
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown category")
}

func TestCreateTitle_UnknownGenre(t *testing.T) {
	service, store := newTitleService(t)

	_, err := service.CreateTitle(context.Background(), &request.TitleRequest{
		Name:   "Lost",
		Year:   2004,
		Genres: []string{"mystery"},
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown genre")
	assert.Empty(t, store.titles)
}

func TestGetTitle_RatingIsMeanOfScores(t *testing.T) {
	service, store := newTitleService(t)
	title := createTestTitle(store, "Rated", 2001)
	alice := createTestUser(store, "alice", entity.RoleUser)
	bob := createTestUser(store, "bob", entity.RoleUser)
	createTestReview(store, title.ID, alice.ID, 7)
	createTestReview(store, title.ID, bob.ID, 9)

	resp, err := service.GetTitleByID(context.Background(), title.ID.String())

	require.NoError(t, err)
	require.NotNil(t, resp.Rating)
	assert.InDelta(t, 8.0, *resp.Rating, 0.001)
}

func TestGetTitle_RatingNullWithoutReviews(t *testing.T) {
	service, store := newTitleService(t)
	title := createTestTitle(store, "Unrated", 2001)

	resp, err := service.GetTitleByID(context.Background(), title.ID.String())

	require.NoError(t, err)
	assert.Nil(t, resp.Rating)
}

func TestGetTitle_NotFound(t *testing.T) {
	service, _ := newTitleService(t)

	_, err := service.GetTitleByID(context.Background(), "not-a-uuid")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestGetTitles_FilterByGenre(t *testing.T) {
	service, store := newTitleService(t)
	drama := createTestGenre(store, "Drama", "drama")
	withGenre := createTestTitle(store, "Dramatic", 2000)
	createTestTitle(store, "Plain", 2000)
	store.titleGenre = append(store.titleGenre, &entity.TitleGenre{
		TitleID: withGenre.ID,
		GenreID: drama.ID,
	})

	resp, err := service.GetTitles(context.Background(),
		&request.PaginatedRequest{Page: 1, PerPage: 10},
		repository.TitleFilter{GenreSlug: "drama"})

	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Pagination.Total)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "Dramatic", resp.Data[0].Name)
}

func TestGetTitles_FilterByYear(t *testing.T) {
	service, store := newTitleService(t)
	createTestTitle(store, "Old", 1980)
	createTestTitle(store, "New", 2020)

	resp, err := service.GetTitles(context.Background(),
		&request.PaginatedRequest{Page: 1, PerPage: 10},
		repository.TitleFilter{Year: intPtr(1980)})

	require.NoError(t, err)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "Old", resp.Data[0].Name)
}

func TestUpdateTitle_ReplacesGenres(t *testing.T) {
	service, store := newTitleService(t)
	drama := createTestGenre(store, "Drama", "drama")
	createTestGenre(store, "Comedy", "comedy")
	title := createTestTitle(store, "Shifting", 2000)
	store.titleGenre = append(store.titleGenre, &entity.TitleGenre{
		TitleID: title.ID,
		GenreID: drama.ID,
	})

	resp, err := service.UpdateTitle(context.Background(), title.ID.String(), &request.TitleUpdateRequest{
		Genres: []string{"comedy"},
	})

	require.NoError(t, err)
	require.Len(t, resp.Genres, 1)
	assert.Equal(t, "comedy", resp.Genres[0].Slug)
	require.Len(t, store.titleGenre, 1)
}

func TestUpdateTitle_PartialPatch(t *testing.T) {
	service, store := newTitleService(t)
	title := createTestTitle(store, "Original", 2000)

	resp, err := service.UpdateTitle(context.Background(), title.ID.String(), &request.TitleUpdateRequest{
		Name: strPtr("Renamed"),
	})

	require.NoError(t, err)
	assert.Equal(t, "Renamed", resp.Name)
	assert.Equal(t, 2000, resp.Year)
}

func TestDeleteTitle_CascadesReviews(t *testing.T) {
	service, store := newTitleService(t)
	title := createTestTitle(store, "Doomed", 2000)
	alice := createTestUser(store, "alice", entity.RoleUser)
	createTestReview(store, title.ID, alice.ID, 5)

	err := service.DeleteTitle(context.Background(), title.ID.String())

	require.NoError(t, err)
	assert.Empty(t, store.titles)
	assert.Empty(t, store.reviews)
}
