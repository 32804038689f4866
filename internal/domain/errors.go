package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database. It is also returned for
// owner-gated operations attempted by a non-owner, so callers cannot
// distinguish "missing" from "not yours".
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. bad interval, unavailable item, invalid state
// transition, unknown query state, malformed pagination).
// Handlers should map this to HTTP 400.
var ErrValidation = errors.New("validation error")

// ErrConflict is returned when a reservation intersects an already confirmed
// booking, or when a storage-level uniqueness or exclusion constraint
// rejects a write.
// Handlers should map this to HTTP 409.
var ErrConflict = errors.New("conflict")
