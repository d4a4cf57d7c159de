package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/shenikar/raynet_coordinator/internal/apperr"
	"github.com/shenikar/raynet_coordinator/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestResolver(t *testing.T) *JWTResolver {
	t.Helper()
	r, err := NewJWTResolver("test-secret", "raynet", 0)
	require.NoError(t, err)
	return r
}

func TestJWTResolver_RoundTrip(t *testing.T) {
	// Подготовка
	r := newTestResolver(t)
	token, err := r.Issue(models.Principal{ID: "op-1", Callsign: "VK2ABC", Role: models.RoleAdmin}, time.Hour)
	require.NoError(t, err)

	// Действие
	p, err := r.Resolve(context.Background(), token)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, "op-1", p.ID)
	assert.Equal(t, "VK2ABC", p.Callsign)
	assert.True(t, p.IsAdmin())
}

func TestJWTResolver_UnknownRoleIsOperator(t *testing.T) {
	r := newTestResolver(t)
	token, err := r.Issue(models.Principal{ID: "op-1", Role: "superuser"}, time.Hour)
	require.NoError(t, err)

	p, err := r.Resolve(context.Background(), token)

	require.NoError(t, err)
	assert.Equal(t, models.RoleOperator, p.Role)
}

func TestJWTResolver_Rejects(t *testing.T) {
	r := newTestResolver(t)
	expired, err := r.Issue(models.Principal{ID: "op-1"}, -time.Hour)
	require.NoError(t, err)
	noSubject, err := r.Issue(models.Principal{}, time.Hour)
	require.NoError(t, err)

	other, err := NewJWTResolver("other-secret", "raynet", 0)
	require.NoError(t, err)
	foreign, err := other.Issue(models.Principal{ID: "op-1"}, time.Hour)
	require.NoError(t, err)

	wrongIssuer, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "op-1",
			Issuer:    "elsewhere",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	testCases := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "garbage", token: "not-a-jwt"},
		{name: "expired", token: expired},
		{name: "no subject", token: noSubject},
		{name: "foreign secret", token: foreign},
		{name: "wrong issuer", token: wrongIssuer},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := r.Resolve(context.Background(), tc.token)
			assert.True(t, apperr.Is(err, apperr.KindUnauthenticated), "got %v", err)
		})
	}
}

func TestNewJWTResolver_RequiresSecret(t *testing.T) {
	_, err := NewJWTResolver("  ", "", time.Second)
	assert.Error(t, err)
}

func TestPrincipalContext(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)

	ctx := WithPrincipal(context.Background(), models.Principal{ID: "op-1"})
	p, ok := FromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, "op-1", p.ID)
}
