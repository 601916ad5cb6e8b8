package services

import (
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
)

// TokenService issues and verifies signed, time-bound bearer tokens carrying
// a single identity claim. The signing key is loaded once from configuration
// and immutable for the process lifetime. Tokens are stateless: there is no
// session table and no revocation before natural expiry.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService creates a new TokenService.
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Issue produces a signed token whose payload is the identity subject plus
// issued-at and expiry timestamps.
func (s *TokenService) Issue(identity string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": identity,
		"iat": now.Unix(),
		"exp": now.Add(s.ttl).Unix(),
	})

	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// Verify recomputes and checks the signature, parses the payload, and checks
// expiry. Validity requires now to be strictly before the expiry. On success
// it returns the subject claim. No other claim is trusted for authorization:
// roles and account state are derived freshly from the store per request.
func (s *TokenService) Verify(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Validate the alg is what we expect:
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		if ve, ok := err.(*jwt.ValidationError); ok && ve.Errors&jwt.ValidationErrorExpired != 0 {
			return "", ErrTokenExpired
		}
		return "", fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", ErrTokenInvalid
	}

	exp, ok := claims["exp"].(float64)
	if !ok || !time.Now().Before(time.Unix(int64(exp), 0)) {
		return "", ErrTokenExpired
	}

	subject, ok := claims["sub"].(string)
	if !ok || subject == "" {
		return "", ErrTokenInvalid
	}
	return subject, nil
}

// MatchesIdentity combines Verify with an equality check against an expected
// identity, defending against a stale or foreign token.
func (s *TokenService) MatchesIdentity(tokenString, expectedIdentity string) bool {
	subject, err := s.Verify(tokenString)
	if err != nil {
		return false
	}
	return subject == expectedIdentity
}
