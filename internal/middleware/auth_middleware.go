package middleware

import (
	"log"
	"strings"

	"resumebuilder/internal/models"
	"resumebuilder/internal/repositories"

	"github.com/gofiber/fiber/v2"
)

const principalKey = "principal"

// TokenVerifier resolves a bearer token to its identity subject.
// *services.TokenService satisfies this interface.
type TokenVerifier interface {
	Verify(tokenString string) (string, error)
	MatchesIdentity(tokenString, expectedIdentity string) bool
}

// Authenticate is the per-request authentication gate. It never rejects a
// request itself: on any failure it passes the request through
// unauthenticated and leaves the rejection to RequireAuth on protected
// routes. This keeps public endpoints on the same middleware chain.
func Authenticate(userRepo repositories.UserRepository, tokens TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Next()
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return c.Next()
		}
		tokenString := parts[1]

		subject, err := tokens.Verify(tokenString)
		if err != nil || subject == "" {
			return c.Next()
		}

		// Idempotence guard: the gate is safe to invoke more than once per
		// request, the first resolved principal wins.
		if c.Locals(principalKey) != nil {
			return c.Next()
		}

		// Fail closed: an account that cannot be loaded, is locked, or is
		// unverified is disabled for authentication purposes, regardless of
		// the token the caller holds.
		user, err := userRepo.GetByEmail(subject)
		if err != nil {
			log.Printf("Authentication lookup failed for %s: %v", subject, err)
			return c.Next()
		}
		if user.IsLocked || !user.IsActive || !user.IsEmailVerified {
			return c.Next()
		}

		// Re-validate subject and expiry against the freshly loaded account.
		if !tokens.MatchesIdentity(tokenString, user.Email) {
			return c.Next()
		}

		c.Locals(principalKey, &models.Principal{
			UserID:      user.ID,
			Email:       user.Email,
			FirstName:   user.FirstName,
			IsPremium:   user.IsPremium,
			Authorities: []string{"ROLE_USER"},
		})
		return c.Next()
	}
}

// RequireAuth rejects requests that carry no authenticated principal.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := PrincipalFromCtx(c); !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Missing or invalid credentials",
			})
		}
		return c.Next()
	}
}

// PrincipalFromCtx returns the authenticated principal attached by
// Authenticate, if any.
func PrincipalFromCtx(c *fiber.Ctx) (*models.Principal, bool) {
	principal, ok := c.Locals(principalKey).(*models.Principal)
	if !ok || principal == nil {
		return nil, false
	}
	return principal, true
}
