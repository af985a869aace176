package ports

import "context"

// LoginThrottle counts failed logins per normalized email.
type LoginThrottle interface {
	// Failures returns the current failure count inside the throttle window.
	Failures(ctx context.Context, email string) (int, error)
	// RecordFailure increments the count and returns the new value.
	RecordFailure(ctx context.Context, email string) (int, error)
	Reset(ctx context.Context, email string) error
}
