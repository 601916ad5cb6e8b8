package models

// Principal is the authenticated identity resolved by the authentication
// middleware and threaded explicitly to downstream handlers. Authorities are
// derived freshly from the stored account on every request, never from the
// bearer token payload.
type Principal struct {
	UserID      string
	Email       string
	FirstName   string
	IsPremium   bool
	Authorities []string
}
