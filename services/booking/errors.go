package booking

import "errors"

var (
	// ErrEmailRequired is returned when a quote request has no usable email.
	ErrEmailRequired = errors.New("email is required")
	// ErrNoBookings is returned when a magic link is requested for an email
	// with no booking history.
	ErrNoBookings = errors.New("no bookings found for this email")
	// ErrNotAuthorized is returned when an admin link is requested for an
	// email outside the allow-list.
	ErrNotAuthorized = errors.New("email not authorized for admin access")

	// ErrDispatchFailed wraps an email delivery failure. State persisted
	// before the dispatch is not rolled back.
	ErrDispatchFailed = errors.New("email dispatch failed")
)
