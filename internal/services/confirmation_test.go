package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oguzhanyilmaz/reviewdb/internal/models"
)

func testUser() *models.User {
	return &models.User{
		ID:         7,
		Username:   "foo",
		Email:      "foo@bar.com",
		Role:       models.RoleUser,
		Credential: "$2a$10$abcdefghijklmnopqrstuv",
		UpdatedAt:  time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestCodeRoundTrip(t *testing.T) {
	issuer := NewCodeIssuer("secret", 15*time.Minute)
	user := testUser()
	now := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)

	code := issuer.Generate(user, now)
	require.Len(t, code, codeLength)
	assert.True(t, issuer.Verify(user, code, now))
}

func TestCodeSurvivesBucketBoundary(t *testing.T) {
	issuer := NewCodeIssuer("secret", 15*time.Minute)
	user := testUser()
	now := time.Date(2026, 8, 28, 10, 14, 59, 0, time.UTC)

	code := issuer.Generate(user, now)
	// Still valid a moment into the next bucket.
	assert.True(t, issuer.Verify(user, code, now.Add(2*time.Minute)))
	// Two buckets later it is gone.
	assert.False(t, issuer.Verify(user, code, now.Add(31*time.Minute)))
}

func TestCodeRejectsWrongCode(t *testing.T) {
	issuer := NewCodeIssuer("secret", 15*time.Minute)
	user := testUser()
	now := time.Now()

	assert.False(t, issuer.Verify(user, "AAAAAAAA", now))
	assert.False(t, issuer.Verify(user, "", now))
}

func TestCodeBoundToUserState(t *testing.T) {
	issuer := NewCodeIssuer("secret", 15*time.Minute)
	user := testUser()
	now := time.Now()

	code := issuer.Generate(user, now)

	// Any change to the user record invalidates outstanding codes.
	changed := *user
	changed.UpdatedAt = changed.UpdatedAt.Add(time.Second)
	assert.False(t, issuer.Verify(&changed, code, now))

	rotated := *user
	rotated.Credential = "$2a$10$differentcredentialxxx"
	assert.False(t, issuer.Verify(&rotated, code, now))
}

func TestCodeBoundToSecret(t *testing.T) {
	user := testUser()
	now := time.Now()

	code := NewCodeIssuer("secret-a", 15*time.Minute).Generate(user, now)
	assert.False(t, NewCodeIssuer("secret-b", 15*time.Minute).Verify(user, code, now))
}

func TestUsernameFromEmail(t *testing.T) {
	assert.Equal(t, "foo", UsernameFromEmail("foo@bar.com"))
	assert.Equal(t, "first.last", UsernameFromEmail("first.last@example.org"))
	// Degenerate input still yields something storable.
	assert.Equal(t, "nodomain", UsernameFromEmail("nodomain"))
}
