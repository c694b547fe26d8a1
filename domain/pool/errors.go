package pool

import "errors"

// Failure taxonomy. Every operation validates before mutating, so a
// returned error means state is untouched.
var (
	// Validation.
	ErrAmountZero       = errors.New("amount must be greater than zero")
	ErrAmountOutOfRange = errors.New("order amount outside pool limits")
	ErrTokenNotSupported = errors.New("token not supported by this pool")

	// Permission.
	ErrNotOrderOwner = errors.New("not order owner")

	// State.
	ErrOrderNotActive  = errors.New("order not active")
	ErrNotMatchingPool = errors.New("operation only valid in matching pool mode")

	// Not-found.
	ErrOrderNotFound = errors.New("order not found")
)
