// Package domain provides shared domain-level sentinel errors.
package domain

import "errors"

// ErrNotFound indicates the requested entity does not exist.
var ErrNotFound = errors.New("not found")

// ErrConflict indicates the reservation window overlaps an existing
// reservation, or a concurrent attempt won the same window.
var ErrConflict = errors.New("conflict: overlapping reservation")

// ErrValidation indicates a request failed domain validation.
var ErrValidation = errors.New("validation failed")

// ErrNotDisclosed is the uniform verdict for an asset that is not visible
// on a portal. It deliberately carries no cause: a missing listing, a
// paused listing, a private listing, and a retired asset all surface as
// this same error so public callers cannot probe which one it was.
var ErrNotDisclosed = errors.New("not disclosed")

// ErrTransient indicates the underlying store was unavailable or timed
// out. It must never be collapsed into ErrNotDisclosed; callers decide
// their own retry policy.
var ErrTransient = errors.New("transient store failure")

// ErrDuplicateListing indicates an attempt to create a second listing for
// the same (portal, asset) pair. Operator-facing only.
var ErrDuplicateListing = errors.New("listing already exists for portal and asset")

// NotDisclosedError wraps ErrNotDisclosed with the internal cause of the
// denial. The cause feeds the operator audit channel; nothing else may
// read it. errors.Is(err, ErrNotDisclosed) stays the only public check.
type NotDisclosedError struct {
	Cause string
}

func (e *NotDisclosedError) Error() string { return "not disclosed" }

func (e *NotDisclosedError) Unwrap() error { return ErrNotDisclosed }
