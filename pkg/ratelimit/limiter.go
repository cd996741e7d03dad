// Package ratelimit provides per-identifier request admission over a fixed
// window. Two interchangeable backends exist: an in-process counter for
// single-instance deployments and a Redis-backed atomic counter for
// multi-instance deployments. Callers depend only on the Limiter interface.
package ratelimit

import (
	"context"
	"time"
)

// Decision is the outcome of a single admission check.
type Decision struct {
	Admitted  bool
	Count     int
	Remaining int
	ResetAt   time.Time
}

// Limiter admits or rejects a request attempt for an identifier
// (normally the client IP).
type Limiter interface {
	Check(ctx context.Context, identifier string) (Decision, error)
}
