package auth_test

import (
	"testing"
	"time"

	"taskflow/internal/adapter/auth"
	"taskflow/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_RoundTrip(t *testing.T) {
	hasher := auth.NewBcryptHasher(bcrypt.MinCost)

	hash, err := hasher.Hash("12345")
	require.NoError(t, err)
	assert.NotEqual(t, "12345", hash)
	assert.NoError(t, hasher.Compare(hash, "12345"))
	assert.Error(t, hasher.Compare(hash, "54321"))
}

func TestJWTIssuer_IssueAndParse(t *testing.T) {
	now := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	issuer, err := auth.NewJWTIssuer("secret", 30*time.Minute, "taskflow")
	require.NoError(t, err)
	issuer.WithClock(func() time.Time { return now })

	token, err := issuer.Issue(domain.Principal{ID: 42, Email: "u@test.com", Role: domain.RoleUser})
	require.NoError(t, err)
	assert.Equal(t, auth.TokenTypeBearer, token.TokenType)
	assert.Equal(t, now.Add(30*time.Minute), token.ExpiresAt)

	claims, err := issuer.Parse(token.Token)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), claims.PrincipalID)
	assert.Equal(t, "u@test.com", claims.Email)
	assert.Equal(t, domain.RoleUser, claims.Role)
}

func TestJWTIssuer_RejectsExpiredToken(t *testing.T) {
	now := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	issuer, err := auth.NewJWTIssuer("secret", time.Minute, "taskflow")
	require.NoError(t, err)
	issuer.WithClock(func() time.Time { return now })

	token, err := issuer.Issue(domain.Principal{ID: 1, Role: domain.RoleAdmin})
	require.NoError(t, err)

	issuer.WithClock(func() time.Time { return now.Add(2 * time.Minute) })
	_, err = issuer.Parse(token.Token)
	require.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestJWTIssuer_RejectsForeignSignature(t *testing.T) {
	signer, err := auth.NewJWTIssuer("one", time.Hour, "taskflow")
	require.NoError(t, err)
	verifier, err := auth.NewJWTIssuer("two", time.Hour, "taskflow")
	require.NoError(t, err)

	token, err := signer.Issue(domain.Principal{ID: 1, Role: domain.RoleAdmin})
	require.NoError(t, err)

	_, err = verifier.Parse(token.Token)
	require.ErrorIs(t, err, domain.ErrUnauthenticated)

	_, err = verifier.Parse("not-a-token")
	require.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestNewJWTIssuer_RequiresSecret(t *testing.T) {
	_, err := auth.NewJWTIssuer("", time.Hour, "taskflow")
	require.Error(t, err)
}
