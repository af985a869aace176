package domain

import "time"

// AuthEventKind names an account lifecycle event written to the audit trail.
type AuthEventKind string

const (
	EventSignup         AuthEventKind = "signup"
	EventLogin          AuthEventKind = "login"
	EventLoginFailed    AuthEventKind = "login_failed"
	EventRememberLogin  AuthEventKind = "remember_login"
	EventLogout         AuthEventKind = "logout"
	EventProfileUpdated AuthEventKind = "profile_updated"
)

// AuthEvent is a single audit record. UserID is empty when the account could
// not be resolved (e.g. a failed login for an unknown email).
type AuthEvent struct {
	Kind       AuthEventKind
	UserID     string
	Email      string
	OccurredAt time.Time
}
