// Package repository defines error types that are reused across multiple
// repositories.  These sentinel values allow handlers to distinguish
// failure scenarios: ErrForbidden means the caller does not own the
// resource, ErrConflict means the operation cannot proceed because of
// existing state (a ticket already resolved, attendance already marked),
// and the per-entity not-found errors map to HTTP 404.
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own.  Handlers translate this into HTTP 403.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when an update cannot be performed because of
// conflicting state, such as resolving a ticket that is no longer
// pending.  Handlers translate this into HTTP 409.
var ErrConflict = errors.New("conflict")

// ErrTicketNotFound is returned when a referenced ticket does not exist.
var ErrTicketNotFound = errors.New("ticket not found")

// ErrUserNotFound is returned when a referenced user does not exist.
var ErrUserNotFound = errors.New("user not found")

// ErrTaskNotFound is returned when a referenced task does not exist.
var ErrTaskNotFound = errors.New("task not found")

// ErrResumeNotFound is returned when a user has no stored resume.
var ErrResumeNotFound = errors.New("resume not found")
