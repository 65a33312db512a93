// Package errorspkg provides common app errors.
package errorspkg

import "errors"

// ErrInternal indicates internal server error.
var ErrInternal = errors.New("internal")

// ErrUnavailable indicates transient store contention or timeout.
// The operation had no effect and is safe to retry.
var ErrUnavailable = errors.New("unavailable")
