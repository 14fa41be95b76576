package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/RafaelMelo23/expensetracker/internal/core/domain"
)

const defaultTokenLifetime = 14 * 24 * time.Hour

// tokenClaims is the wire shape of an issued token. EMAIL and ROLE keep the
// upper-case claim keys the existing clients expect.
type tokenClaims struct {
	Email string `json:"EMAIL"`
	Role  string `json:"ROLE"`
	jwt.RegisteredClaims
}

// TokenService signs and verifies HMAC-SHA256 claim tokens.
type TokenService struct {
	secret   []byte
	issuer   string
	lifetime time.Duration
	now      func() time.Time
}

func NewTokenService(secret, issuer string, lifetime time.Duration) *TokenService {
	if lifetime <= 0 {
		lifetime = defaultTokenLifetime
	}
	return &TokenService{
		secret:   []byte(secret),
		issuer:   issuer,
		lifetime: lifetime,
		now:      time.Now,
	}
}

// Issue signs a token carrying the subject's email and role, expiring
// lifetime after now.
func (s *TokenService) Issue(email, role string, now time.Time) (string, error) {
	claims := tokenClaims{
		Email: email,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.lifetime)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// Verify checks signature integrity and issuer match and returns the embedded
// claims. Expiry is deliberately not checked here so callers can distinguish
// a forged token from a stale one. Every failure collapses to
// domain.ErrTokenInvalid.
func (s *TokenService) Verify(token string) (domain.Claims, error) {
	tc, err := s.parse(token)
	if err != nil {
		return domain.Claims{}, err
	}
	return domain.Claims{Email: tc.Email, Role: tc.Role}, nil
}

// IsExpired reports whether the token's expiry is in the past. A token that
// fails verification for any reason counts as expired.
func (s *TokenService) IsExpired(token string) bool {
	tc, err := s.parse(token)
	if err != nil || tc.ExpiresAt == nil {
		return true
	}
	return tc.ExpiresAt.Time.Before(s.now())
}

// Lifetime returns the configured validity window for issued tokens.
func (s *TokenService) Lifetime() time.Duration {
	return s.lifetime
}

func (s *TokenService) parse(token string) (*tokenClaims, error) {
	tc := &tokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, tc, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithoutClaimsValidation())
	if err != nil || !parsed.Valid || tc.Issuer != s.issuer {
		return nil, domain.ErrTokenInvalid
	}
	return tc, nil
}
