// Package auth разрешает учетные данные запроса в аутентифицированного principal.
package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/shenikar/raynet_coordinator/internal/apperr"
	"github.com/shenikar/raynet_coordinator/internal/models"
)

// Resolver - по учетным данным возвращает principal или Unauthenticated
type Resolver interface {
	Resolve(ctx context.Context, credential string) (models.Principal, error)
}

// Claims - полезная нагрузка токена, выданного внешним сервисом входа
type Claims struct {
	Callsign string      `json:"callsign"`
	Role     models.Role `json:"role"`
	jwt.RegisteredClaims
}

// JWTResolver проверяет HS256-токены общим секретом
type JWTResolver struct {
	secret []byte
	issuer string
	parser *jwt.Parser
}

func NewJWTResolver(secret, issuer string, leeway time.Duration) (*JWTResolver, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("jwt secret is required")
	}
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(leeway),
		jwt.WithExpirationRequired(),
	}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}
	return &JWTResolver{
		secret: []byte(secret),
		issuer: issuer,
		parser: jwt.NewParser(opts...),
	}, nil
}

func (r *JWTResolver) Resolve(_ context.Context, credential string) (models.Principal, error) {
	credential = strings.TrimSpace(credential)
	if credential == "" {
		return models.Principal{}, apperr.Unauthenticated("missing credential")
	}

	claims := &Claims{}
	_, err := r.parser.ParseWithClaims(credential, claims, func(*jwt.Token) (any, error) {
		return r.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return models.Principal{}, apperr.Unauthenticated("token expired")
		}
		return models.Principal{}, apperr.Unauthenticated("invalid token")
	}

	subject := strings.TrimSpace(claims.Subject)
	if subject == "" {
		return models.Principal{}, apperr.Unauthenticated("token has no subject")
	}

	role := claims.Role
	if role != models.RoleAdmin {
		role = models.RoleOperator
	}
	return models.Principal{
		ID:       subject,
		Callsign: strings.TrimSpace(claims.Callsign),
		Role:     role,
	}, nil
}

// Issue подписывает токен для principal. Используется тестами и локальными утилитами.
func (r *JWTResolver) Issue(p models.Principal, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Callsign: p.Callsign,
		Role:     p.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.ID,
			Issuer:    r.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(r.secret)
}

type contextKey struct{}

func WithPrincipal(ctx context.Context, p models.Principal) context.Context {
	return context.WithValue(ctx, contextKey{}, p)
}

func FromContext(ctx context.Context) (models.Principal, bool) {
	if v := ctx.Value(contextKey{}); v != nil {
		if p, ok := v.(models.Principal); ok {
			return p, true
		}
	}
	return models.Principal{}, false
}
