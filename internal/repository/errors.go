package repository

import "errors"

// ErrNotFound is returned when a query matches no row. Callers compare
// with errors.Is so wrapped variants still match.
var ErrNotFound = errors.New("record not found")
