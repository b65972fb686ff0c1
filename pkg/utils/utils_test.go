package utils

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateConfirmationCode(t *testing.T) {
	code := GenerateConfirmationCode(6)
	assert.Len(t, code, 6)
	for _, r := range code {
		assert.True(t, r >= '0' && r <= '9')
	}

	// Non-positive lengths fall back to the default
	assert.Len(t, GenerateConfirmationCode(0), 6)
	assert.Len(t, GenerateConfirmationCode(-3), 6)
}

func TestParseInt(t *testing.T) {
	assert.Equal(t, 5, ParseInt("5", 1))
	assert.Equal(t, 1, ParseInt("", 1))
	assert.Equal(t, 1, ParseInt("abc", 1))
	assert.Equal(t, 1, ParseInt("0", 1))
	assert.Equal(t, 1, ParseInt("-2", 1))
}

func TestCalculateTotalPages(t *testing.T) {
	assert.Equal(t, 0, CalculateTotalPages(0, 10))
	assert.Equal(t, 1, CalculateTotalPages(10, 10))
	assert.Equal(t, 2, CalculateTotalPages(11, 10))
	assert.Equal(t, 0, CalculateTotalPages(11, 0))
}

func TestCalculateOffset(t *testing.T) {
	assert.Equal(t, 0, CalculateOffset(0, 10))
	assert.Equal(t, 0, CalculateOffset(1, 10))
	assert.Equal(t, 20, CalculateOffset(3, 10))
}

func TestTokenRoundTrip(t *testing.T) {
	userID := uuid.New()

	token, err := GenerateToken("secret", 1, userID, "alice", "moderator")
	require.NoError(t, err)

	claims, err := ParseToken("secret", token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "moderator", claims.Role)
}

func TestParseToken_WrongSecret(t *testing.T) {
	token, err := GenerateToken("secret", 1, uuid.New(), "alice", "user")
	require.NoError(t, err)

	_, err = ParseToken("other-secret", token)
	assert.Error(t, err)
}

func TestSlugValidation(t *testing.T) {
	type payload struct {
		Slug string `validate:"required,slug"`
	}

	assert.Nil(t, ValidateStruct(payload{Slug: "valid-slug_01"}))
	assert.NotNil(t, ValidateStruct(payload{Slug: "no spaces"}))
	assert.NotNil(t, ValidateStruct(payload{Slug: "no/slash"}))
	assert.NotNil(t, ValidateStruct(payload{Slug: ""}))
}

func TestUserContextRoundTrip(t *testing.T) {
	userID := uuid.New()
	ctx := SetUserContext(context.Background(), userID, "alice", "admin")

	gotID, ok := GetUserIDFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, userID, gotID)

	username, ok := GetUsernameFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, "alice", username)

	role, ok := GetRoleFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, "admin", role)
}
