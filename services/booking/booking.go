package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	bookingRepo "kleanzilla/database/repository/booking"
	customerRepo "kleanzilla/database/repository/customer"
	"kleanzilla/models"
	"kleanzilla/services/notification"
	"kleanzilla/services/token"
	"kleanzilla/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service manages the booking lifecycle: quote creation, magic/admin link
// issuance, and dispute submission.
type Service interface {
	CreateQuote(ctx context.Context, input models.QuoteInput) (string, error)
	SubmitDispute(ctx context.Context, tokenValue, notes string, files []string) error
	RequestMagicLink(ctx context.Context, email string) error
	RequestAdminLink(ctx context.Context, email string) error
}

// Links carries the base URLs used to construct emailed links.
type Links struct {
	MagicBaseURL string
	AdminBaseURL string
}

// DefaultBookingService is the production implementation.
type DefaultBookingService struct {
	Customers customerRepo.Repository
	Bookings  bookingRepo.Repository
	Tokens    token.Service
	Mailer    notification.Mailer
	Logger    *zap.Logger

	Links       Links
	TokenTTL    time.Duration
	NotifyEmail string
	AdminEmails []string
}

// CreateQuote validates the input, upserts the customer, creates a booking in
// the quote state, issues a gallery token bound to it, and emails the quote
// summary with the magic link. The four side effects run in sequence; a
// failed email dispatch does not roll back already-persisted state.
func (s *DefaultBookingService) CreateQuote(ctx context.Context, input models.QuoteInput) (string, error) {
	email := utils.NormalizeEmail(input.Email)
	if email == "" {
		return "", ErrEmailRequired
	}

	bookingID := uuid.New().String()
	now := utils.NowISO()

	customer := models.Customer{
		Email:     email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Phone:     input.Phone,
	}
	if err := s.Customers.Upsert(ctx, customer); err != nil {
		return "", fmt.Errorf("upsert customer: %w", err)
	}

	addOns, err := json.Marshal(input.AddOns)
	if err != nil {
		return "", fmt.Errorf("serialize add-ons: %w", err)
	}
	record := models.Booking{
		Email:         email,
		BookingID:     bookingID,
		Address:       input.Address,
		CleanType:     input.CleanType,
		PropertyType:  input.PropertyType,
		Bedrooms:      input.Bedrooms,
		Bathrooms:     input.Bathrooms,
		Occupancy:     input.Occupancy,
		AddOns:        string(addOns),
		BasePrice:     input.BasePrice,
		AddOnTotal:    input.AddOnTotal,
		TotalMin:      input.TotalMin,
		TotalMax:      input.TotalMax,
		BookingDate:   input.BookingDate,
		BookingTime:   input.BookingTime,
		PaymentMethod: input.PaymentMethod,
		Status:        models.BookingStatusQuote,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.Bookings.Create(ctx, record); err != nil {
		return "", fmt.Errorf("create booking: %w", err)
	}

	tokenValue, err := s.Tokens.Issue(ctx, email, bookingID, token.ScopeGallery, s.TokenTTL)
	if err != nil {
		return "", fmt.Errorf("issue gallery token: %w", err)
	}

	input.Email = email
	msg := notification.QuoteMessage(input, s.magicLink(tokenValue),
		[]string{s.NotifyEmail, email})
	if err := s.Mailer.Send(ctx, msg); err != nil {
		s.Logger.Error("quote email failed", zap.Error(err),
			zap.String("bookingId", bookingID))
		return bookingID, fmt.Errorf("%w: %v", ErrDispatchFailed, err)
	}

	s.Logger.Info("quote created", zap.String("bookingId", bookingID),
		zap.String("email", email))
	return bookingID, nil
}

// SubmitDispute validates the token (any scope; gallery tokens are the usual
// case), loads the linked booking, and dispatches a dispute notification.
// Booking status is left untouched: disputes are informational.
func (s *DefaultBookingService) SubmitDispute(ctx context.Context, tokenValue, notes string, files []string) error {
	record, err := s.Tokens.Validate(ctx, tokenValue, token.ScopeAny)
	if err != nil {
		return err
	}

	booking, err := s.Bookings.Get(ctx, record.Email, record.BookingID)
	if err != nil {
		return fmt.Errorf("fetch booking: %w", err)
	}

	msg := notification.DisputeMessage(*booking, notes, files,
		[]string{s.NotifyEmail, booking.Email})
	if err := s.Mailer.Send(ctx, msg); err != nil {
		return fmt.Errorf("%w: %v", ErrDispatchFailed, err)
	}

	s.Logger.Info("dispute submitted", zap.String("bookingId", booking.BookingID))
	return nil
}

// RequestMagicLink issues a gallery token for the customer's most recent
// booking and emails the link. The latest booking is chosen by lexicographic
// comparison of the createdAt string, which is fixed-width RFC 3339.
func (s *DefaultBookingService) RequestMagicLink(ctx context.Context, email string) error {
	email = utils.NormalizeEmail(email)
	if email == "" {
		return ErrEmailRequired
	}

	bookings, err := s.Bookings.ListByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("list bookings: %w", err)
	}
	if len(bookings) == 0 {
		return ErrNoBookings
	}

	sort.Slice(bookings, func(i, j int) bool {
		return bookings[i].CreatedAt > bookings[j].CreatedAt
	})
	latest := bookings[0]

	tokenValue, err := s.Tokens.Issue(ctx, email, latest.BookingID, token.ScopeGallery, s.TokenTTL)
	if err != nil {
		return fmt.Errorf("issue gallery token: %w", err)
	}

	msg := notification.MagicLinkMessage(s.magicLink(tokenValue), email)
	if err := s.Mailer.Send(ctx, msg); err != nil {
		return fmt.Errorf("%w: %v", ErrDispatchFailed, err)
	}
	return nil
}

// RequestAdminLink issues an admin-scoped token for an allow-listed email and
// mails the admin upload link. Admin tokens are not bound to one booking.
func (s *DefaultBookingService) RequestAdminLink(ctx context.Context, email string) error {
	email = utils.NormalizeEmail(email)
	if email == "" {
		return ErrEmailRequired
	}
	if !s.isAllowedAdmin(email) {
		return ErrNotAuthorized
	}

	tokenValue, err := s.Tokens.Issue(ctx, email, "admin", token.ScopeAdmin, s.TokenTTL)
	if err != nil {
		return fmt.Errorf("issue admin token: %w", err)
	}

	msg := notification.AdminLinkMessage(s.adminLink(tokenValue), email)
	if err := s.Mailer.Send(ctx, msg); err != nil {
		return fmt.Errorf("%w: %v", ErrDispatchFailed, err)
	}
	return nil
}

func (s *DefaultBookingService) isAllowedAdmin(email string) bool {
	for _, allowed := range s.AdminEmails {
		if allowed == email {
			return true
		}
	}
	return false
}

func (s *DefaultBookingService) magicLink(tokenValue string) string {
	return s.Links.MagicBaseURL + "/?token=" + url.QueryEscape(tokenValue)
}

func (s *DefaultBookingService) adminLink(tokenValue string) string {
	base := s.Links.AdminBaseURL
	if base == "" {
		base = s.Links.MagicBaseURL
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return base + "admin.html?adminToken=" + url.QueryEscape(tokenValue)
}
