package model

import "errors"

// Error kinds returned by the lifecycle managers, the ledger, and the shift
// registry. Each reflects a business-rule violation requiring a different
// caller decision; none are retried automatically. The HTTP boundary maps
// them to status codes with errors.Is, so operations wrap them with
// fmt.Errorf("%w: ...") to attach detail.
var (
	ErrValidation        = errors.New("validation_error")
	ErrNotFound          = errors.New("not_found")
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidTransition = errors.New("invalid_transition")
	ErrInsufficientStock = errors.New("insufficient_stock")
	ErrProductNotFound   = errors.New("product_not_found")
	ErrDuplicateShift    = errors.New("duplicate_shift")
	ErrTooLate           = errors.New("too_late")
	ErrAlreadyCheckedIn  = errors.New("already_checked_in")
	ErrAlreadyCheckedOut = errors.New("already_checked_out")
	ErrNotCheckedIn      = errors.New("not_checked_in")
	ErrWrongDay          = errors.New("wrong_day")
)
