package services

import "errors"

// Typed business failures raised at the service boundary. Handlers translate
// them to HTTP statuses with errors.Is.
var (
	// ErrInvalidCredentials covers both unknown email and password mismatch,
	// so a caller cannot probe which accounts exist.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrAccountLocked is returned after too many failed login attempts.
	// Only a successful password reset clears the lock.
	ErrAccountLocked = errors.New("account is locked due to multiple failed login attempts")

	// ErrAccountDisabled is returned for deactivated accounts.
	ErrAccountDisabled = errors.New("account is deactivated")

	// ErrEmailNotVerified is returned when login is attempted before the
	// verification link has been followed.
	ErrEmailNotVerified = errors.New("please verify your email first")

	// ErrTokenInvalid is returned for verification, reset, or bearer tokens
	// that cannot be resolved to an account.
	ErrTokenInvalid = errors.New("token is invalid")

	// ErrTokenExpired is returned when a token resolved but its expiry has
	// passed. Expiry comparisons are strict: equality counts as expired.
	ErrTokenExpired = errors.New("token has expired")

	// ErrEmailTaken is returned when registering an email that already exists.
	ErrEmailTaken = errors.New("email already registered")

	// ErrAlreadyVerified is returned when re-requesting verification for a
	// verified account.
	ErrAlreadyVerified = errors.New("email is already verified")

	// ErrNotFound is returned for auth lookups where absence is not secret
	// (e.g. resending verification).
	ErrNotFound = errors.New("user not found")

	// ErrNotFoundOrForbidden deliberately conflates a missing resume with a
	// resume owned by someone else, preventing existence leakage.
	ErrNotFoundOrForbidden = errors.New("resume not found or you don't have permission to access it")
)
