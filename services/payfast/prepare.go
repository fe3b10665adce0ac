package payfast

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"kleanzilla/database/repository"
	"kleanzilla/utils"
)

// Process endpoints. Sandbox mode redirects to PayFast's test environment.
const (
	processURL        = "https://www.payfast.co.za/eng/process"
	sandboxProcessURL = "https://sandbox.payfast.co.za/eng/process"
)

// Checkout is a prepared, signed PayFast redirect for one booking.
type Checkout struct {
	ProcessURL string            `json:"payfastUrl"`
	Fields     map[string]string `json:"fields"`
}

// PrepareCheckout builds the signed field set the client posts to PayFast to
// pay for a booking. The amount prefers an explicitly agreed payment amount,
// falling back to the quote's upper then lower bound.
func (r *Reconciler) PrepareCheckout(ctx context.Context, email, bookingID string) (*Checkout, error) {
	if r.Cfg.MerchantID == "" || r.Cfg.MerchantKey == "" {
		return nil, ErrNotConfigured
	}

	booking, err := r.Bookings.Get(ctx, email, bookingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("fetch booking: %w", err)
	}

	amount := booking.PaymentAmount
	if amount == 0 {
		amount = booking.TotalMax
	}
	if amount == 0 {
		amount = booking.TotalMin
	}

	service := booking.CleanType
	if service == "" {
		service = "service"
	}
	description := strings.TrimSpace(fmt.Sprintf("%s %s %s",
		booking.Address, booking.BookingDate, booking.BookingTime))

	var firstName, lastName string
	if r.Customers != nil {
		if customer, err := r.Customers.GetByEmail(ctx, email); err == nil {
			firstName = customer.FirstName
			lastName = customer.LastName
		}
	}

	fields := map[string]string{
		"merchant_id":      r.Cfg.MerchantID,
		"merchant_key":     r.Cfg.MerchantKey,
		"return_url":       r.Cfg.ReturnURL,
		"cancel_url":       r.Cfg.CancelURL,
		"notify_url":       r.Cfg.NotifyURL,
		"m_payment_id":     bookingID,
		"amount":           utils.FormatAmount(amount),
		"item_name":        fmt.Sprintf("KleanZilla cleaning (%s)", service),
		"item_description": description,
		"name_first":       firstName,
		"name_last":        lastName,
		"email_address":    booking.Email,
		"custom_str1":      booking.Email,
	}
	fields["signature"] = BuildSignature(fields, r.Cfg.Passphrase)

	checkout := &Checkout{ProcessURL: processURL, Fields: fields}
	if r.Cfg.Sandbox {
		checkout.ProcessURL = sandboxProcessURL
	}
	return checkout, nil
}
