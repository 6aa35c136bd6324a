package usecase

import "context"

// OrganiserVerifier checks an organiser PIN. Implementations return
// ErrUnauthorized for a wrong PIN and ErrDependencyUnavailable when the
// check cannot be performed at all.
type OrganiserVerifier interface {
	Verify(ctx context.Context, pin string) error
}
