// Package repository defines the storage contracts for the catalog and
// the error kinds shared by every backend. Two implementations exist:
// an in-memory one (package memory) used for tests and single-process
// runs, and a MySQL one (package mysql) used in production. Both must
// satisfy the same behavioral contract so they can be swapped through
// configuration without callers noticing.
package repository

import "errors"

// ErrNotFound is returned when a referenced entity (film, user, genre,
// rating, like or friend edge) does not exist for the requested
// operation. Handlers should translate this into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned on an idempotency violation, such as liking
// an already-liked film or re-adding an existing friend edge. Handlers
// should translate this into an HTTP 400 response.
var ErrConflict = errors.New("conflict")
