package booking

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"kleanzilla/database/repository"
	"kleanzilla/models"
	"kleanzilla/services/notification"
	"kleanzilla/services/token"

	"go.uber.org/zap"
)

type fakeCustomerRepo struct {
	customers map[string]models.Customer
}

func (f *fakeCustomerRepo) Upsert(ctx context.Context, customer models.Customer) error {
	if f.customers == nil {
		f.customers = make(map[string]models.Customer)
	}
	f.customers[customer.Email] = customer
	return nil
}

func (f *fakeCustomerRepo) GetByEmail(ctx context.Context, email string) (*models.Customer, error) {
	c, ok := f.customers[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

type fakeBookingRepo struct {
	bookings []models.Booking
}

func (f *fakeBookingRepo) Create(ctx context.Context, booking models.Booking) error {
	f.bookings = append(f.bookings, booking)
	return nil
}

func (f *fakeBookingRepo) Get(ctx context.Context, email, bookingID string) (*models.Booking, error) {
	for i := range f.bookings {
		if f.bookings[i].Email == email && f.bookings[i].BookingID == bookingID {
			b := f.bookings[i]
			return &b, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeBookingRepo) ListByEmail(ctx context.Context, email string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.bookings {
		if b.Email == email {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) MergeUpdate(ctx context.Context, email, bookingID string, fields map[string]interface{}) error {
	return nil
}

type issued struct {
	email     string
	bookingID string
	scope     token.Scope
}

type fakeTokenService struct {
	next    string
	issues  []issued
	records map[string]*models.Token
	err     error
}

func (f *fakeTokenService) Issue(ctx context.Context, email, bookingID string, scope token.Scope, ttl time.Duration) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.issues = append(f.issues, issued{email: email, bookingID: bookingID, scope: scope})
	if f.next == "" {
		f.next = "tok123"
	}
	return f.next, nil
}

func (f *fakeTokenService) Validate(ctx context.Context, value string, required token.Scope) (*models.Token, error) {
	record, ok := f.records[value]
	if !ok {
		return nil, token.ErrTokenNotFound
	}
	if required != token.ScopeAny && record.Scope != string(required) {
		return nil, token.ErrScopeMismatch
	}
	return record, nil
}

type fakeMailer struct {
	sent []notification.Message
	err  error
}

func (f *fakeMailer) Send(ctx context.Context, msg notification.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

func newTestService(repo *fakeBookingRepo, tokens *fakeTokenService, mailer *fakeMailer) *DefaultBookingService {
	return &DefaultBookingService{
		Customers:   &fakeCustomerRepo{},
		Bookings:    repo,
		Tokens:      tokens,
		Mailer:      mailer,
		Logger:      zap.NewNop(),
		Links:       Links{MagicBaseURL: "https://kleanzilla.co.za"},
		TokenTTL:    72 * time.Hour,
		NotifyEmail: "ops@kleanzilla.co.za",
		AdminEmails: []string{"boss@kleanzilla.co.za"},
	}
}

func quoteInput() models.QuoteInput {
	return models.QuoteInput{
		Email:       "Jane@Example.com",
		FirstName:   "Jane",
		Address:     "12 Oak Lane",
		CleanType:   "deep",
		Bedrooms:    "3",
		AddOns:      []string{"Inside fridge", "Windows"},
		TotalMin:    650,
		TotalMax:    650,
		BookingDate: "2026-09-05",
		BookingTime: "09:00",
	}
}

func TestCreateQuote(t *testing.T) {
	repo := &fakeBookingRepo{}
	tokens := &fakeTokenService{next: "tok123"}
	mailer := &fakeMailer{}
	svc := newTestService(repo, tokens, mailer)

	bookingID, err := svc.CreateQuote(context.Background(), quoteInput())
	if err != nil {
		t.Fatalf("CreateQuote: %v", err)
	}
	if bookingID == "" {
		t.Fatal("empty booking id")
	}

	if len(repo.bookings) != 1 {
		t.Fatalf("created %d bookings, want 1", len(repo.bookings))
	}
	b := repo.bookings[0]
	if b.Status != models.BookingStatusQuote {
		t.Fatalf("status = %q, want quote", b.Status)
	}
	if b.Email != "jane@example.com" {
		t.Fatalf("email = %q, want normalized", b.Email)
	}
	if b.AddOns != `["Inside fridge","Windows"]` {
		t.Fatalf("addOns = %q", b.AddOns)
	}

	if len(tokens.issues) != 1 {
		t.Fatalf("issued %d tokens, want 1", len(tokens.issues))
	}
	if tokens.issues[0].bookingID != bookingID {
		t.Fatalf("token bound to %q, want %q", tokens.issues[0].bookingID, bookingID)
	}
	if tokens.issues[0].scope != token.ScopeGallery {
		t.Fatalf("token scope = %q, want gallery", tokens.issues[0].scope)
	}

	if len(mailer.sent) != 1 {
		t.Fatalf("sent %d emails, want 1", len(mailer.sent))
	}
	msg := mailer.sent[0]
	if !strings.Contains(msg.Text, "?token=tok123") {
		t.Fatalf("quote email missing magic link: %s", msg.Text)
	}
	if !strings.Contains(msg.Subject, "R650") {
		t.Fatalf("subject = %q, want single R650 amount", msg.Subject)
	}
	to := strings.Join(msg.To, ",")
	if !strings.Contains(to, "jane@example.com") || !strings.Contains(to, "ops@kleanzilla.co.za") {
		t.Fatalf("recipients = %q", to)
	}
}

func TestCreateQuoteRequiresEmail(t *testing.T) {
	svc := newTestService(&fakeBookingRepo{}, &fakeTokenService{}, &fakeMailer{})
	input := quoteInput()
	input.Email = "   "

	if _, err := svc.CreateQuote(context.Background(), input); !errors.Is(err, ErrEmailRequired) {
		t.Fatalf("CreateQuote = %v, want ErrEmailRequired", err)
	}
}

func TestCreateQuoteDispatchFailureKeepsBooking(t *testing.T) {
	repo := &fakeBookingRepo{}
	svc := newTestService(repo, &fakeTokenService{}, &fakeMailer{err: errors.New("smtp down")})

	bookingID, err := svc.CreateQuote(context.Background(), quoteInput())
	if !errors.Is(err, ErrDispatchFailed) {
		t.Fatalf("CreateQuote = %v, want ErrDispatchFailed", err)
	}
	if bookingID == "" {
		t.Fatal("booking id lost on dispatch failure")
	}
	if len(repo.bookings) != 1 {
		t.Fatal("booking not persisted before dispatch failure")
	}
}

func TestRequestMagicLinkNoBookings(t *testing.T) {
	tokens := &fakeTokenService{}
	mailer := &fakeMailer{}
	svc := newTestService(&fakeBookingRepo{}, tokens, mailer)

	err := svc.RequestMagicLink(context.Background(), "jane@example.com")
	if !errors.Is(err, ErrNoBookings) {
		t.Fatalf("RequestMagicLink = %v, want ErrNoBookings", err)
	}
	if len(tokens.issues) != 0 {
		t.Fatal("token issued for customer with no bookings")
	}
	if len(mailer.sent) != 0 {
		t.Fatal("email sent for customer with no bookings")
	}
}

func TestRequestMagicLinkPicksLatestBooking(t *testing.T) {
	repo := &fakeBookingRepo{bookings: []models.Booking{
		{Email: "jane@example.com", BookingID: "bk-old", CreatedAt: "2026-07-01T10:00:00Z"},
		{Email: "jane@example.com", BookingID: "bk-new", CreatedAt: "2026-08-20T10:00:00Z"},
		{Email: "jane@example.com", BookingID: "bk-mid", CreatedAt: "2026-08-01T10:00:00Z"},
	}}
	tokens := &fakeTokenService{next: "tok-magic"}
	mailer := &fakeMailer{}
	svc := newTestService(repo, tokens, mailer)

	if err := svc.RequestMagicLink(context.Background(), "jane@example.com"); err != nil {
		t.Fatalf("RequestMagicLink: %v", err)
	}
	if len(tokens.issues) != 1 || tokens.issues[0].bookingID != "bk-new" {
		t.Fatalf("token bound to %+v, want bk-new", tokens.issues)
	}
	if len(mailer.sent) != 1 || !strings.Contains(mailer.sent[0].Text, "?token=tok-magic") {
		t.Fatal("magic link email missing token")
	}
}

func TestRequestAdminLink(t *testing.T) {
	tokens := &fakeTokenService{next: "tok-admin"}
	mailer := &fakeMailer{}
	svc := newTestService(&fakeBookingRepo{}, tokens, mailer)

	if err := svc.RequestAdminLink(context.Background(), "BOSS@kleanzilla.co.za"); err != nil {
		t.Fatalf("RequestAdminLink: %v", err)
	}
	if len(tokens.issues) != 1 || tokens.issues[0].scope != token.ScopeAdmin {
		t.Fatalf("issues = %+v, want one admin-scope token", tokens.issues)
	}
	if !strings.Contains(mailer.sent[0].Text, "admin.html?adminToken=tok-admin") {
		t.Fatalf("admin email missing link: %s", mailer.sent[0].Text)
	}
}

func TestRequestAdminLinkRejectsUnlistedEmail(t *testing.T) {
	tokens := &fakeTokenService{}
	svc := newTestService(&fakeBookingRepo{}, tokens, &fakeMailer{})

	err := svc.RequestAdminLink(context.Background(), "intruder@example.com")
	if !errors.Is(err, ErrNotAuthorized) {
		t.Fatalf("RequestAdminLink = %v, want ErrNotAuthorized", err)
	}
	if len(tokens.issues) != 0 {
		t.Fatal("admin token issued for unlisted email")
	}
}

func TestSubmitDispute(t *testing.T) {
	repo := &fakeBookingRepo{bookings: []models.Booking{
		{Email: "jane@example.com", BookingID: "bk-1", CleanType: "deep", BookingDate: "2026-09-05"},
	}}
	tokens := &fakeTokenService{records: map[string]*models.Token{
		"tok123": {Token: "tok123", Email: "jane@example.com", BookingID: "bk-1", Scope: string(token.ScopeGallery)},
	}}
	mailer := &fakeMailer{}
	svc := newTestService(repo, tokens, mailer)

	files := []string{"https://res.cloudinary.com/demo/image/upload/photos/x.jpg"}
	if err := svc.SubmitDispute(context.Background(), "tok123", "Missed the oven", files); err != nil {
		t.Fatalf("SubmitDispute: %v", err)
	}
	if len(mailer.sent) != 1 {
		t.Fatalf("sent %d emails, want 1", len(mailer.sent))
	}
	msg := mailer.sent[0]
	if !strings.Contains(msg.Text, "Missed the oven") || !strings.Contains(msg.Text, files[0]) {
		t.Fatalf("dispute email missing details: %s", msg.Text)
	}
}

func TestSubmitDisputeInvalidToken(t *testing.T) {
	svc := newTestService(&fakeBookingRepo{}, &fakeTokenService{}, &fakeMailer{})
	if err := svc.SubmitDispute(context.Background(), "nope", "", nil); !errors.Is(err, token.ErrTokenNotFound) {
		t.Fatalf("SubmitDispute = %v, want ErrTokenNotFound", err)
	}
}
