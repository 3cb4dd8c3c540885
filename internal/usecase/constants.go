package usecase

import "time"

const (
	// DefaultTransactionTimeout bounds a single unit of work so a stalled
	// commit cannot hold account locks indefinitely.
	DefaultTransactionTimeout = 10 * time.Second

	// IdempotencyKeyTTL is how long idempotency keys are cached.
	IdempotencyKeyTTL = 24 * time.Hour
)
