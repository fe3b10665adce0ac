package payfast

import "errors"

// Payment-integrity failures. These are logged with audit context but the
// webhook response never reveals which check failed.
var (
	ErrInvalidSignature = errors.New("itn signature mismatch")
	ErrInvalidSource    = errors.New("itn source ip not allowed")
	ErrMerchantMismatch = errors.New("itn merchant id mismatch")
	ErrMissingReference = errors.New("itn missing booking reference")
	ErrBookingNotFound  = errors.New("itn booking not found")
	ErrAmountMismatch   = errors.New("itn amount mismatch")
	ErrValidationFailed = errors.New("itn upstream validation failed")

	// ErrNotConfigured is returned when merchant credentials are missing.
	ErrNotConfigured = errors.New("payfast settings not configured")

	// ErrDispatchFailed wraps a confirmation email failure after the payment
	// state has already been committed.
	ErrDispatchFailed = errors.New("confirmation email dispatch failed")
)
