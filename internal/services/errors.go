// internal/services/errors.go
package services

import "errors"

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrInsufficientStock is returned when a stock exit asks for more
	// than the product currently holds.
	ErrInsufficientStock = errors.New("insufficient stock quantity")

	// ErrEmptyReport is returned when a report has no rows to render.
	ErrEmptyReport = errors.New("report has no rows")
)
