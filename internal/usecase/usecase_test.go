package usecase

import (
	"context"
	"strings"
	"time"

	"reviews-api/internal/data/entity"
	"reviews-api/internal/data/repository"
	"reviews-api/pkg/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// errDuplicate mimics the unique violation the postgres driver reports
var errDuplicate = &pgconn.PgError{Code: "23505"}

// memStore is the shared backing store for the in-memory repository fakes
type memStore struct {
	users      []*entity.User
	categories []*entity.Category
	genres     []*entity.Genre
	titles     []*entity.Title
	titleGenre []*entity.TitleGenre
	reviews    []*entity.Review
	comments   []*entity.Comment
}

func newTestRepository() (*repository.Repository, *memStore) {
	store := &memStore{}
	return &repository.Repository{
		User:       &memUserRepo{store},
		Category:   &memCategoryRepo{store},
		Genre:      &memGenreRepo{store},
		Title:      &memTitleRepo{store},
		TitleGenre: &memTitleGenreRepo{store},
		Review:     &memReviewRepo{store},
		Comment:    &memCommentRepo{store},
	}, store
}

func testConfig() *utils.Config {
	return &utils.Config{
		JWT:  utils.JWTConfig{Secret: "test-secret", ExpiryHours: 1},
		Code: utils.CodeConfig{Length: 6},
	}
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}

// fakeSender records the last confirmation code instead of emailing it
type fakeSender struct {
	lastTo   string
	lastCode string
	fail     bool
}

func (f *fakeSender) SendConfirmationCode(to, username, code string) error {
	if f.fail {
		return context.DeadlineExceeded
	}
	f.lastTo = to
	f.lastCode = code
	return nil
}

// ==================== FIXTURES ====================

func createTestUser(store *memStore, username string, role entity.UserRole) *entity.User {
	now := time.Now()
	user := &entity.User{
		Base:     entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Username: username,
		Email:    username + "@example.com",
		Role:     role,
	}
	store.users = append(store.users, user)
	return user
}

func createTestCategory(store *memStore, name, slug string) *entity.Category {
	category := &entity.Category{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		Name:       name,
		Slug:       slug,
	}
	store.categories = append(store.categories, category)
	return category
}

func createTestGenre(store *memStore, name, slug string) *entity.Genre {
	genre := &entity.Genre{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		Name:       name,
		Slug:       slug,
	}
	store.genres = append(store.genres, genre)
	return genre
}

func createTestTitle(store *memStore, name string, year int) *entity.Title {
	now := time.Now()
	title := &entity.Title{
		Base: entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Name: name,
		Year: year,
	}
	store.titles = append(store.titles, title)
	return title
}

func createTestReview(store *memStore, titleID, authorID uuid.UUID, score int) *entity.Review {
	review := &entity.Review{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		TitleID:    titleID,
		AuthorID:   authorID,
		Text:       "test review",
		Score:      score,
	}
	store.reviews = append(store.reviews, review)
	return review
}

func createTestComment(store *memStore, reviewID, authorID uuid.UUID) *entity.Comment {
	comment := &entity.Comment{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		ReviewID:   reviewID,
		AuthorID:   authorID,
		Text:       "test comment",
	}
	store.comments = append(store.comments, comment)
	return comment
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

// ==================== USER REPO ====================

type memUserRepo struct{ store *memStore }

func (m *memUserRepo) Create(_ context.Context, user *entity.User) error {
	m.store.users = append(m.store.users, user)
	return nil
}

func (m *memUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	for _, u := range m.store.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (m *memUserRepo) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	for _, u := range m.store.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (m *memUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range m.store.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (m *memUserRepo) FindAll(_ context.Context, search string, limit, offset int) ([]*entity.User, error) {
	var matched []*entity.User
	for _, u := range m.store.users {
		if search == "" || strings.Contains(u.Username, search) {
			matched = append(matched, u)
		}
	}
	return paginate(matched, limit, offset), nil
}

func (m *memUserRepo) CountAll(_ context.Context, search string) (int64, error) {
	var count int64
	for _, u := range m.store.users {
		if search == "" || strings.Contains(u.Username, search) {
			count++
		}
	}
	return count, nil
}

func (m *memUserRepo) Update(_ context.Context, user *entity.User) error {
	for i, u := range m.store.users {
		if u.ID == user.ID {
			m.store.users[i] = user
			return nil
		}
	}
	return nil
}

func (m *memUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, u := range m.store.users {
		if u.ID == id {
			m.store.users = append(m.store.users[:i], m.store.users[i+1:]...)
			return nil
		}
	}
	return nil
}

// ==================== CATEGORY REPO ====================

type memCategoryRepo struct{ store *memStore }

func (m *memCategoryRepo) Create(_ context.Context, category *entity.Category) error {
	for _, c := range m.store.categories {
		if c.Slug == category.Slug {
			return errDuplicate
		}
	}
	m.store.categories = append(m.store.categories, category)
	return nil
}

func (m *memCategoryRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Category, error) {
	for _, c := range m.store.categories {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

func (m *memCategoryRepo) FindBySlug(_ context.Context, slug string) (*entity.Category, error) {
	for _, c := range m.store.categories {
		if c.Slug == slug {
			return c, nil
		}
	}
	return nil, nil
}

func (m *memCategoryRepo) FindAll(_ context.Context, search string, limit, offset int) ([]*entity.Category, error) {
	var matched []*entity.Category
	for _, c := range m.store.categories {
		if search == "" || strings.Contains(c.Name, search) {
			matched = append(matched, c)
		}
	}
	return paginate(matched, limit, offset), nil
}

func (m *memCategoryRepo) CountAll(_ context.Context, search string) (int64, error) {
	items, _ := m.FindAll(context.Background(), search, len(m.store.categories)+1, 0)
	return int64(len(items)), nil
}

func (m *memCategoryRepo) DeleteBySlug(_ context.Context, slug string) (bool, error) {
	for i, c := range m.store.categories {
		if c.Slug == slug {
			// SET NULL semantics for titles that referenced the category
			for _, t := range m.store.titles {
				if t.CategoryID != nil && *t.CategoryID == c.ID {
					t.CategoryID = nil
				}
			}
			m.store.categories = append(m.store.categories[:i], m.store.categories[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// ==================== GENRE REPO ====================

type memGenreRepo struct{ store *memStore }

func (m *memGenreRepo) Create(_ context.Context, genre *entity.Genre) error {
	for _, g := range m.store.genres {
		if g.Slug == genre.Slug {
			return errDuplicate
		}
	}
	m.store.genres = append(m.store.genres, genre)
	return nil
}

func (m *memGenreRepo) FindBySlug(_ context.Context, slug string) (*entity.Genre, error) {
	for _, g := range m.store.genres {
		if g.Slug == slug {
			return g, nil
		}
	}
	return nil, nil
}

func (m *memGenreRepo) FindAll(_ context.Context, search string, limit, offset int) ([]*entity.Genre, error) {
	var matched []*entity.Genre
	for _, g := range m.store.genres {
		if search == "" || strings.Contains(g.Name, search) {
			matched = append(matched, g)
		}
	}
	return paginate(matched, limit, offset), nil
}

func (m *memGenreRepo) FindByTitleID(_ context.Context, titleID uuid.UUID) ([]*entity.Genre, error) {
	var genres []*entity.Genre
	for _, link := range m.store.titleGenre {
		if link.TitleID != titleID {
			continue
		}
		for _, g := range m.store.genres {
			if g.ID == link.GenreID {
				genres = append(genres, g)
			}
		}
	}
	return genres, nil
}

func (m *memGenreRepo) CountAll(_ context.Context, search string) (int64, error) {
	items, _ := m.FindAll(context.Background(), search, len(m.store.genres)+1, 0)
	return int64(len(items)), nil
}

func (m *memGenreRepo) DeleteBySlug(_ context.Context, slug string) (bool, error) {
	for i, g := range m.store.genres {
		if g.Slug == slug {
			m.store.genres = append(m.store.genres[:i], m.store.genres[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// ==================== TITLE REPO ====================

type memTitleRepo struct{ store *memStore }

func (m *memTitleRepo) Create(_ context.Context, title *entity.Title) error {
	m.store.titles = append(m.store.titles, title)
	return nil
}

func (m *memTitleRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Title, error) {
	for _, t := range m.store.titles {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, nil
}

func (m *memTitleRepo) matches(t *entity.Title, filter repository.TitleFilter) bool {
	if filter.Name != "" && !strings.Contains(t.Name, filter.Name) {
		return false
	}
	if filter.Year != nil && t.Year != *filter.Year {
		return false
	}
	if filter.CategorySlug != "" {
		if t.CategoryID == nil {
			return false
		}
		found := false
		for _, c := range m.store.categories {
			if c.ID == *t.CategoryID && c.Slug == filter.CategorySlug {
				found = true
			}
		}
		if !found {
			return false
		}
	}
	if filter.GenreSlug != "" {
		found := false
		for _, link := range m.store.titleGenre {
			if link.TitleID != t.ID {
				continue
			}
			for _, g := range m.store.genres {
				if g.ID == link.GenreID && g.Slug == filter.GenreSlug {
					found = true
				}
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func (m *memTitleRepo) FindAll(_ context.Context, filter repository.TitleFilter, limit, offset int) ([]*entity.Title, error) {
	var matched []*entity.Title
	for _, t := range m.store.titles {
		if m.matches(t, filter) {
			matched = append(matched, t)
		}
	}
	return paginate(matched, limit, offset), nil
}

func (m *memTitleRepo) CountAll(_ context.Context, filter repository.TitleFilter) (int64, error) {
	var count int64
	for _, t := range m.store.titles {
		if m.matches(t, filter) {
			count++
		}
	}
	return count, nil
}

func (m *memTitleRepo) Update(_ context.Context, title *entity.Title) error {
	for i, t := range m.store.titles {
		if t.ID == title.ID {
			m.store.titles[i] = title
			return nil
		}
	}
	return nil
}

func (m *memTitleRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, t := range m.store.titles {
		if t.ID == id {
			m.store.titles = append(m.store.titles[:i], m.store.titles[i+1:]...)
			break
		}
	}
	// Cascade like the database does
	var reviews []*entity.Review
	for _, r := range m.store.reviews {
		if r.TitleID != id {
			reviews = append(reviews, r)
		}
	}
	m.store.reviews = reviews

	var links []*entity.TitleGenre
	for _, l := range m.store.titleGenre {
		if l.TitleID != id {
			links = append(links, l)
		}
	}
	m.store.titleGenre = links
	return nil
}

// ==================== TITLE GENRE REPO ====================

type memTitleGenreRepo struct{ store *memStore }

func (m *memTitleGenreRepo) CreateBatch(_ context.Context, links []*entity.TitleGenre) error {
	m.store.titleGenre = append(m.store.titleGenre, links...)
	return nil
}

func (m *memTitleGenreRepo) DeleteByTitleID(_ context.Context, titleID uuid.UUID) error {
	var kept []*entity.TitleGenre
	for _, l := range m.store.titleGenre {
		if l.TitleID != titleID {
			kept = append(kept, l)
		}
	}
	m.store.titleGenre = kept
	return nil
}

// ==================== REVIEW REPO ====================

type memReviewRepo struct{ store *memStore }

func (m *memReviewRepo) Create(_ context.Context, review *entity.Review) error {
	for _, r := range m.store.reviews {
		if r.AuthorID == review.AuthorID && r.TitleID == review.TitleID {
			return errDuplicate
		}
	}
	m.store.reviews = append(m.store.reviews, review)
	return nil
}

func (m *memReviewRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Review, error) {
	for _, r := range m.store.reviews {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, nil
}

func (m *memReviewRepo) FindByAuthorAndTitle(_ context.Context, authorID, titleID uuid.UUID) (*entity.Review, error) {
	for _, r := range m.store.reviews {
		if r.AuthorID == authorID && r.TitleID == titleID {
			return r, nil
		}
	}
	return nil, nil
}

func (m *memReviewRepo) FindByTitleID(_ context.Context, titleID uuid.UUID, limit, offset int) ([]*entity.Review, error) {
	var matched []*entity.Review
	for _, r := range m.store.reviews {
		if r.TitleID == titleID {
			matched = append(matched, r)
		}
	}
	return paginate(matched, limit, offset), nil
}

func (m *memReviewRepo) CountByTitleID(_ context.Context, titleID uuid.UUID) (int64, error) {
	var count int64
	for _, r := range m.store.reviews {
		if r.TitleID == titleID {
			count++
		}
	}
	return count, nil
}

func (m *memReviewRepo) GetTitleRating(_ context.Context, titleID uuid.UUID) (*float64, error) {
	var sum, count float64
	for _, r := range m.store.reviews {
		if r.TitleID == titleID {
			sum += float64(r.Score)
			count++
		}
	}
	if count == 0 {
		return nil, nil
	}
	avg := sum / count
	return &avg, nil
}

func (m *memReviewRepo) Update(_ context.Context, review *entity.Review) error {
	for i, r := range m.store.reviews {
		if r.ID == review.ID {
			m.store.reviews[i] = review
			return nil
		}
	}
	return nil
}

func (m *memReviewRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, r := range m.store.reviews {
		if r.ID == id {
			m.store.reviews = append(m.store.reviews[:i], m.store.reviews[i+1:]...)
			break
		}
	}
	var kept []*entity.Comment
	for _, c := range m.store.comments {
		if c.ReviewID != id {
			kept = append(kept, c)
		}
	}
	m.store.comments = kept
	return nil
}

// ==================== COMMENT REPO ====================

type memCommentRepo struct{ store *memStore }

func (m *memCommentRepo) Create(_ context.Context, comment *entity.Comment) error {
	m.store.comments = append(m.store.comments, comment)
	return nil
}

func (m *memCommentRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Comment, error) {
	for _, c := range m.store.comments {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

func (m *memCommentRepo) FindByReviewID(_ context.Context, reviewID uuid.UUID, limit, offset int) ([]*entity.Comment, error) {
	var matched []*entity.Comment
	for _, c := range m.store.comments {
		if c.ReviewID == reviewID {
			matched = append(matched, c)
		}
	}
	return paginate(matched, limit, offset), nil
}

func (m *memCommentRepo) CountByReviewID(_ context.Context, reviewID uuid.UUID) (int64, error) {
	var count int64
	for _, c := range m.store.comments {
		if c.ReviewID == reviewID {
			count++
		}
	}
	return count, nil
}

func (m *memCommentRepo) Update(_ context.Context, comment *entity.Comment) error {
	for i, c := range m.store.comments {
		if c.ID == comment.ID {
			m.store.comments[i] = comment
			return nil
		}
	}
	return nil
}

func (m *memCommentRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, c := range m.store.comments {
		if c.ID == id {
			m.store.comments = append(m.store.comments[:i], m.store.comments[i+1:]...)
			return nil
		}
	}
	return nil
}
