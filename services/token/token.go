package token

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"kleanzilla/database/repository"
	tokenRepo "kleanzilla/database/repository/token"
	"kleanzilla/models"
	"kleanzilla/utils"
)

// Scope is the authority a token grants. Gallery tokens authorize gallery
// reads and dispute uploads for one booking; admin tokens authorize admin
// upload-credential issuance across bookings.
type Scope string

const (
	ScopeGallery Scope = "gallery"
	ScopeAdmin   Scope = "admin"
	// ScopeAny accepts any valid token during validation.
	ScopeAny Scope = ""
)

var (
	ErrTokenNotFound = errors.New("token not found")
	ErrTokenExpired  = errors.New("token expired")
	ErrScopeMismatch = errors.New("token scope mismatch")
)

// Service issues and validates opaque bearer tokens. Tokens substitute for
// full authentication, so validation is re-checked on every privileged call.
type Service interface {
	Issue(ctx context.Context, email, bookingID string, scope Scope, ttl time.Duration) (string, error)
	Validate(ctx context.Context, value string, required Scope) (*models.Token, error)
}

// DefaultTokenService is the production implementation.
type DefaultTokenService struct {
	Repo tokenRepo.Repository
}

// Issue generates a high-entropy opaque token, persists its record, and
// returns the token value. Multiple live tokens per email are permitted.
func (s *DefaultTokenService) Issue(ctx context.Context, email, bookingID string, scope Scope, ttl time.Duration) (string, error) {
	raw := make([]byte, 24)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	value := base64.RawURLEncoding.EncodeToString(raw)

	now := time.Now().UTC()
	record := models.Token{
		Token:     value,
		Email:     utils.NormalizeEmail(email),
		BookingID: bookingID,
		Scope:     string(scope),
		ExpiresAt: now.Add(ttl).Format(time.RFC3339),
		CreatedAt: now.Format(time.RFC3339),
	}
	if err := s.Repo.Create(ctx, record); err != nil {
		return "", fmt.Errorf("persist token: %w", err)
	}
	return value, nil
}

// Validate fetches the token record and checks expiry and, when required is
// not ScopeAny, the scope. Expiry is a wall-clock comparison at call time; a
// record with an unparseable expiry is treated as expired.
func (s *DefaultTokenService) Validate(ctx context.Context, value string, required Scope) (*models.Token, error) {
	record, err := s.Repo.Get(ctx, value)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTokenNotFound
		}
		return nil, err
	}

	expiresAt, err := time.Parse(time.RFC3339, record.ExpiresAt)
	if err != nil || !expiresAt.After(time.Now().UTC()) {
		return nil, ErrTokenExpired
	}
	if required != ScopeAny && record.Scope != string(required) {
		return nil, ErrScopeMismatch
	}
	return record, nil
}
