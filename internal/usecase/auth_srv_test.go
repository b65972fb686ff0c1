package usecase

import (
	"context"
	"testing"

	"reviews-api/internal/data/entity"
	"reviews-api/internal/dto/request"
	"reviews-api/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(t *testing.T) (AuthService, *memStore, *fakeSender) {
	t.Helper()
	repo, store := newTestRepository()
	sender := &fakeSender{}
	service := NewAuthService(repo, sender, testConfig(), testLogger())
	return service, store, sender
}

func TestSignUp_NewUser(t *testing.T) {
	service, store, sender := newAuthService(t)

	resp, err := service.SignUp(context.Background(), &request.SignUpRequest{
		Username: "alice",
		Email:    "alice@example.com",
	})

	require.NoError(t, err)
	assert.Equal(t, "alice", resp.Username)
	assert.Equal(t, "alice@example.com", resp.Email)

	require.Len(t, store.users, 1)
	user := store.users[0]
	assert.Equal(t, entity.RoleUser, user.Role)

	// The code goes out by email; only its hash is stored
	assert.Equal(t, "alice@example.com", sender.lastTo)
	assert.NotEmpty(t, sender.lastCode)
	require.NotNil(t, user.ConfirmationCode)
	assert.NotEqual(t, sender.lastCode, *user.ConfirmationCode)
}

func TestSignUp_ReservedUsername(t *testing.T) {
	service, store, _ := newAuthService(t)

	_, err := service.SignUp(context.Background(), &request.SignUpRequest{
		Username: "me",
		Email:    "me@example.com",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "reserved")
	assert.Empty(t, store.users)

	// The check is case-insensitive
	_, err = service.SignUp(context.Background(), &request.SignUpRequest{
		Username: "Me",
		Email:    "me@example.com",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reserved")
}

func TestSignUp_RepeatRotatesCode(t *testing.T) {
	service, store, sender := newAuthService(t)

	_, err := service.SignUp(context.Background(), &request.SignUpRequest{
		Username: "alice",
		Email:    "alice@example.com",
	})
	require.NoError(t, err)
	firstHash := *store.users[0].ConfirmationCode

	// Same username/email pair is accepted again and re-issues a code
	_, err = service.SignUp(context.Background(), &request.SignUpRequest{
		Username: "alice",
		Email:    "alice@example.com",
	})
	require.NoError(t, err)

	assert.Len(t, store.users, 1)
	assert.NotEmpty(t, sender.lastCode)
	assert.NotEqual(t, firstHash, *store.users[0].ConfirmationCode)
}

func TestSignUp_EmailMismatch(t *testing.T) {
	service, _, _ := newAuthService(t)

	_, err := service.SignUp(context.Background(), &request.SignUpRequest{
		Username: "alice",
		Email:    "alice@example.com",
	})
	require.NoError(t, err)

	_, err = service.SignUp(context.Background(), &request.SignUpRequest{
		Username: "alice",
		Email:    "other@example.com",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not match")
}

func TestSignUp_EmailTakenByAnotherUser(t *testing.T) {
	service, _, _ := newAuthService(t)

	_, err := service.SignUp(context.Background(), &request.SignUpRequest{
		Username: "alice",
		Email:    "alice@example.com",
	})
	require.NoError(t, err)

	_, err = service.SignUp(context.Background(), &request.SignUpRequest{
		Username: "bob",
		Email:    "alice@example.com",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")
}

func TestSignUp_SenderFailure(t *testing.T) {
	service, _, sender := newAuthService(t)
	sender.fail = true

	_, err := service.SignUp(context.Background(), &request.SignUpRequest{
		Username: "alice",
		Email:    "alice@example.com",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to send")
}

func TestToken_UnknownUser(t *testing.T) {
	service, _, _ := newAuthService(t)

	_, err := service.Token(context.Background(), &request.TokenRequest{
		Username:         "ghost",
		ConfirmationCode: "123456",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestToken_WrongCode(t *testing.T) {
	service, _, _ := newAuthService(t)

	_, err := service.SignUp(context.Background(), &request.SignUpRequest{
		Username: "alice",
		Email:    "alice@example.com",
	})
	require.NoError(t, err)

	_, err = service.Token(context.Background(), &request.TokenRequest{
		Username:         "alice",
		ConfirmationCode: "000000",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "forbidden")
}

func TestToken_WithoutSignUp(t *testing.T) {
	service, store, _ := newAuthService(t)
	createTestUser(store, "alice", entity.RoleUser)

	_, err := service.Token(context.Background(), &request.TokenRequest{
		Username:         "alice",
		ConfirmationCode: "123456",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "forbidden")
}

func TestToken_Success(t *testing.T) {
	service, store, sender := newAuthService(t)

	_, err := service.SignUp(context.Background(), &request.SignUpRequest{
		Username: "alice",
		Email:    "alice@example.com",
	})
	require.NoError(t, err)

	resp, err := service.Token(context.Background(), &request.TokenRequest{
		Username:         "alice",
		ConfirmationCode: sender.lastCode,
	})

	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)

	claims, err := utils.ParseToken("test-secret", resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, string(entity.RoleUser), claims.Role)
	assert.Equal(t, store.users[0].ID.String(), claims.UserID)
}

func TestToken_CodeStaysValidUntilReplaced(t *testing.T) {
	service, _, sender := newAuthService(t)

	_, err := service.SignUp(context.Background(), &request.SignUpRequest{
		Username: "alice",
		Email:    "alice@example.com",
	})
	require.NoError(t, err)
	code := sender.lastCode

	_, err = service.Token(context.Background(), &request.TokenRequest{
		Username: "alice", ConfirmationCode: code,
	})
	require.NoError(t, err)

	// A second exchange with the same code still works
	_, err = service.Token(context.Background(), &request.TokenRequest{
		Username: "alice", ConfirmationCode: code,
	})
	require.NoError(t, err)
}
