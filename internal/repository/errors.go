// Package repository defines error values shared across the
// individual repositories. Sentinel errors let handlers map failure
// modes to HTTP statuses with errors.Is instead of matching on
// driver strings. Per-entity not-found errors live next to their
// repositories.
package repository

import (
	"errors"
	"strings"
)

// ErrSeatTaken is returned when inserting a ticket trips the unique
// (journey_id, cargo, seat) key: the seat was sold, possibly by a
// concurrent order. The constraint is the only concurrency control
// around ticket sales, so the losing request gets this error and the
// handler reports it as a validation failure (400), matching how an
// out-of-range seat is reported.
var ErrSeatTaken = errors.New("seat already taken for this journey")

// isDupKey reports whether err is a MySQL duplicate-entry error
// (code 1062).
func isDupKey(err error) bool {
	return err != nil && strings.Contains(err.Error(), "1062")
}

// isFKRestrict reports whether err is a MySQL cannot-delete-parent
// error (code 1451), raised by ON DELETE RESTRICT.
func isFKRestrict(err error) bool {
	return err != nil && strings.Contains(err.Error(), "1451")
}

// isFKMissing reports whether err is a MySQL cannot-add-child error
// (code 1452), raised when inserting a reference to a row that does
// not exist.
func isFKMissing(err error) bool {
	return err != nil && strings.Contains(err.Error(), "1452")
}
