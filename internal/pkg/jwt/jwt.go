package jwt

import (
	"errors"
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

// Service verifies access tokens issued by the AniLink backend. Both sides
// share the HS256 secret. GenerateToken exists for tests and local tooling.
type Service struct {
	secret []byte
	ttl    time.Duration
}

type Claims struct {
	Role string `json:"role"`
	jwtlib.RegisteredClaims
}

// UserID is the token subject.
func (c *Claims) UserID() string { return c.Subject }

func New(secret string, ttl time.Duration) *Service {
	return &Service{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

func (s *Service) GenerateToken(userID string, role string) (string, error) {
	return s.generate(userID, role, time.Now().Add(s.ttl))
}

func (s *Service) generate(userID, role string, expiresAt time.Time) (string, error) {
	claims := Claims{
		Role: role,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwtlib.NewNumericDate(expiresAt),
			IssuedAt:  jwtlib.NewNumericDate(time.Now()),
		},
	}

	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ValidateToken checks signature and expiry. A correctly signed token that
// has only expired returns its claims together with ErrExpiredToken, so the
// caller can decide whether a refresh is possible.
func (s *Service) ValidateToken(tokenStr string) (*Claims, error) {
	// Expiry is checked below, after the signature is known to be good.
	token, err := jwtlib.ParseWithClaims(strings.TrimSpace(tokenStr), &Claims{}, func(t *jwtlib.Token) (any, error) {
		return s.secret, nil
	},
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithoutClaimsValidation(),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || claims.Subject == "" || claims.ExpiresAt == nil {
		return nil, ErrInvalidToken
	}
	if !time.Now().Before(claims.ExpiresAt.Time) {
		return claims, ErrExpiredToken
	}

	return claims, nil
}
