package core

import "errors"

// Error kinds surfaced to the presentation layer. Services wrap these with
// fmt.Errorf("...: %w", ...) so callers can match with errors.Is while still
// getting a message that names the offending record or field.
var (
	// ErrNotFound is returned when a referenced vendor, office, category, or
	// stock item id does not exist.
	ErrNotFound = errors.New("not found")

	// ErrValidation is returned for malformed input: non-positive quantities,
	// missing required fields, a receipt without a voucher number.
	ErrValidation = errors.New("validation failed")

	// ErrInsufficientStock is returned when an issue would exceed the item's
	// available quantity. The ledger is left unmutated.
	ErrInsufficientStock = errors.New("insufficient stock")
)
