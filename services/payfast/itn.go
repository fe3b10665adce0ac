package payfast

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"

	"kleanzilla/database/repository"
	bookingRepo "kleanzilla/database/repository/booking"
	customerRepo "kleanzilla/database/repository/customer"
	"kleanzilla/models"
	"kleanzilla/services/notification"
	"kleanzilla/utils"

	"go.uber.org/zap"
)

// PaymentStatusComplete is the literal status PayFast reports for a settled
// payment. Only this value moves a booking to paid.
const PaymentStatusComplete = "COMPLETE"

// amountTolerance absorbs floating rounding between the gateway's gross
// amount and the booking's expected amount.
const amountTolerance = 0.01

// Config holds the gateway settings the reconciler verifies against.
type Config struct {
	MerchantID  string
	MerchantKey string
	Passphrase  string
	ValidateURL string
	IPWhitelist []string
	Sandbox     bool
	ReturnURL   string
	CancelURL   string
	NotifyURL   string
}

// Reconciler verifies an inbound instant transaction notification and applies
// the resulting booking transition exactly once. Replays are safe: the final
// update is an unconditional merge-set, so a duplicate COMPLETE notification
// writes the same values again.
type Reconciler struct {
	Cfg       Config
	Bookings  bookingRepo.Repository
	Customers customerRepo.Repository
	Mailer    notification.Mailer
	Client    *http.Client
	Logger    *zap.Logger

	// NotifyEmail receives a copy of payment confirmations.
	NotifyEmail string
}

// Process runs the full verification chain over one notification payload and
// applies the status transition. data is the parsed form payload; clientIP is
// the caller's address derived from forwarding headers.
func (r *Reconciler) Process(ctx context.Context, data map[string]string, clientIP string) error {
	if r.Cfg.MerchantID == "" {
		return ErrNotConfigured
	}

	signature := data["signature"]
	payload := make(map[string]string, len(data))
	for k, v := range data {
		if k != "signature" {
			payload[k] = v
		}
	}

	// The channel itself is unauthenticated; the signature is the primary
	// authenticity guarantee.
	computed := BuildSignature(payload, r.Cfg.Passphrase)
	if signature == "" || computed != signature {
		r.Logger.Warn("payfast itn signature mismatch",
			zap.String("paymentId", data["pf_payment_id"]), zap.String("ip", clientIP))
		return ErrInvalidSignature
	}

	if len(r.Cfg.IPWhitelist) > 0 && clientIP != "" && !contains(r.Cfg.IPWhitelist, clientIP) {
		r.Logger.Warn("payfast itn from unlisted ip", zap.String("ip", clientIP))
		return ErrInvalidSource
	}

	if data["merchant_id"] != r.Cfg.MerchantID {
		r.Logger.Warn("payfast itn merchant id mismatch",
			zap.String("merchantId", data["merchant_id"]))
		return ErrMerchantMismatch
	}

	bookingID := strings.TrimSpace(data["m_payment_id"])
	email := utils.NormalizeEmail(data["custom_str1"])
	if email == "" {
		email = utils.NormalizeEmail(data["email_address"])
	}
	if bookingID == "" || email == "" {
		return ErrMissingReference
	}

	booking, err := r.Bookings.Get(ctx, email, bookingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			r.Logger.Warn("payfast itn booking not found",
				zap.String("email", email), zap.String("bookingId", bookingID))
			return ErrBookingNotFound
		}
		return fmt.Errorf("fetch booking: %w", err)
	}

	gross := parseAmount(data["amount_gross"])
	if gross == 0 {
		gross = parseAmount(data["amount"])
	}
	expected := booking.PaymentAmount
	if expected == 0 {
		expected = booking.TotalMax
	}
	if expected > 0 && gross > 0 && math.Abs(gross-expected) > amountTolerance {
		r.Logger.Warn("payfast itn amount mismatch",
			zap.Float64("gross", gross), zap.Float64("expected", expected),
			zap.String("bookingId", bookingID))
		return ErrAmountMismatch
	}

	if err := r.validateUpstream(ctx, BuildParamString(payload)); err != nil {
		r.Logger.Warn("payfast itn upstream validation failed", zap.Error(err),
			zap.String("bookingId", bookingID))
		return ErrValidationFailed
	}

	paymentStatus := strings.ToUpper(strings.TrimSpace(data["payment_status"]))
	now := utils.NowISO()

	// Merge-set: a COMPLETE notification sets the paid state; anything else
	// records the gateway's status and ids for audit without regressing the
	// booking status.
	fields := map[string]interface{}{
		"payfastPaymentId": data["pf_payment_id"],
		"payfastStatus":    paymentStatus,
		"updatedAt":        now,
	}
	if paymentStatus == PaymentStatusComplete {
		fields["status"] = models.BookingStatusPaid
		fields["paidAt"] = now
	}
	if err := r.Bookings.MergeUpdate(ctx, email, bookingID, fields); err != nil {
		return fmt.Errorf("apply payment transition: %w", err)
	}

	if paymentStatus == PaymentStatusComplete {
		msg := notification.PaymentConfirmationMessage(*booking, expected,
			[]string{r.NotifyEmail, email})
		if err := r.Mailer.Send(ctx, msg); err != nil {
			r.Logger.Error("payment confirmation email failed", zap.Error(err),
				zap.String("bookingId", bookingID))
			return fmt.Errorf("%w: %v", ErrDispatchFailed, err)
		}
		r.Logger.Info("booking paid", zap.String("bookingId", bookingID),
			zap.String("paymentId", data["pf_payment_id"]))
	}
	return nil
}

// validateUpstream posts the canonical payload back to the gateway, which
// must echo the literal "VALID". An unset validate URL skips the check; this
// escape hatch exists for sandbox environments only.
func (r *Reconciler) validateUpstream(ctx context.Context, paramString string) error {
	if r.Cfg.ValidateURL == "" {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.Cfg.ValidateURL,
		strings.NewReader(paramString))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	client := r.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1024))
	if err != nil {
		return err
	}
	if strings.TrimSpace(string(body)) != "VALID" {
		return fmt.Errorf("unexpected validation response %q", strings.TrimSpace(string(body)))
	}
	return nil
}

func parseAmount(value string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0
	}
	return f
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
