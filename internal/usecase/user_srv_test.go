package usecase

import (
	"context"
	"testing"

	"reviews-api/internal/data/entity"
	"reviews-api/internal/dto/request"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserService(t *testing.T) (UserService, *memStore) {
	t.Helper()
	repo, store := newTestRepository()
	return NewUserService(repo.User, testLogger()), store
}

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func TestCreateUser_DefaultRole(t *testing.T) {
	service, store := newUserService(t)

	resp, err := service.CreateUser(context.Background(), &request.CreateUserRequest{
		Username: "bob",
		Email:    "bob@example.com",
	})

	require.NoError(t, err)
	assert.Equal(t, "user", resp.Role)
	require.Len(t, store.users, 1)
	assert.Equal(t, entity.RoleUser, store.users[0].Role)
}

func TestCreateUser_WithRole(t *testing.T) {
	service, _ := newUserService(t)

	resp, err := service.CreateUser(context.Background(), &request.CreateUserRequest{
		Username: "mod",
		Email:    "mod@example.com",
		Role:     strPtr("moderator"),
	})

	require.NoError(t, err)
	assert.Equal(t, "moderator", resp.Role)
}

func TestCreateUser_ReservedUsername(t *testing.T) {
	service, _ := newUserService(t)

	_, err := service.CreateUser(context.Background(), &request.CreateUserRequest{
		Username: "me",
		Email:    "me@example.com",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "reserved")
}

func TestCreateUser_DuplicateUsername(t *testing.T) {
	service, store := newUserService(t)
	createTestUser(store, "bob", entity.RoleUser)

	_, err := service.CreateUser(context.Background(), &request.CreateUserRequest{
		Username: "bob",
		Email:    "new@example.com",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "already taken")
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	service, store := newUserService(t)
	createTestUser(store, "bob", entity.RoleUser) // bob@example.com

	_, err := service.CreateUser(context.Background(), &request.CreateUserRequest{
		Username: "robert",
		Email:    "bob@example.com",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")
}

func TestGetUser_NotFound(t *testing.T) {
	service, _ := newUserService(t)

	_, err := service.GetUser(context.Background(), "ghost")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestGetUsers_Search(t *testing.T) {
	service, store := newUserService(t)
	createTestUser(store, "alice", entity.RoleUser)
	createTestUser(store, "alicia", entity.RoleUser)
	createTestUser(store, "bob", entity.RoleUser)

	resp, err := service.GetUsers(context.Background(), &request.PaginatedRequest{Page: 1, PerPage: 10}, "alic")

	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.Pagination.Total)
	assert.Len(t, resp.Data, 2)
}

func TestUpdateUser_RoleChange(t *testing.T) {
	service, store := newUserService(t)
	createTestUser(store, "bob", entity.RoleUser)

	resp, err := service.UpdateUser(context.Background(), "bob", &request.UpdateUserRequest{
		Role: strPtr("admin"),
	})

	require.NoError(t, err)
	assert.Equal(t, "admin", resp.Role)
	assert.Equal(t, entity.RoleAdmin, store.users[0].Role)
}

func TestUpdateMe_KeepsRole(t *testing.T) {
	service, store := newUserService(t)
	createTestUser(store, "mod", entity.RoleModerator)

	resp, err := service.UpdateMe(context.Background(), "mod", &request.UpdateMeRequest{
		FirstName: strPtr("Maud"),
		Bio:       strPtr("reviews things"),
	})

	require.NoError(t, err)
	assert.Equal(t, "Maud", resp.FirstName)
	assert.Equal(t, "reviews things", resp.Bio)
	// Role is not part of the self-service patch
	assert.Equal(t, "moderator", resp.Role)
	assert.Equal(t, entity.RoleModerator, store.users[0].Role)
}

func TestDeleteUser(t *testing.T) {
	service, store := newUserService(t)
	createTestUser(store, "bob", entity.RoleUser)

	err := service.DeleteUser(context.Background(), "bob")

	require.NoError(t, err)
	assert.Empty(t, store.users)

	err = service.DeleteUser(context.Background(), "bob")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
