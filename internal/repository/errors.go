// Package repository implements data access over MySQL. This file
// defines sentinel error values reused across repositories so handlers
// can map failure modes onto HTTP statuses without inspecting SQL
// errors: ErrForbidden marks ownership violations, the NotFound
// sentinels mark absent rows, and ErrEmailExists (user_repository.go)
// marks an email-uniqueness conflict.
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation on a
// resource owned by a different identity. It is distinct from a failed
// role check; handlers translate both into HTTP 403 but with different
// messages.
var ErrForbidden = errors.New("forbidden")

// ErrArtistNotFound is returned when no artist row matches the lookup.
var ErrArtistNotFound = errors.New("artist not found")

// ErrMusicNotFound is returned when no music row matches the lookup.
var ErrMusicNotFound = errors.New("music not found")
