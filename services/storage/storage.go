package storage

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/admin"
	"go.uber.org/zap"
)

// Signer issues path-scoped, time-boxed credentials against Cloudinary. A
// credential is valid for exactly one object path; the signature binds the
// path and expiry so it cannot be replayed elsewhere.
type Signer struct {
	cld       *cloudinary.Cloudinary
	cloudName string
	apiKey    string
	apiSecret string
	container string
	logger    *zap.Logger
}

// NewSigner builds a Signer from the configured storage account. Missing
// credentials do not fail construction; issuance reports ErrNotConfigured
// at request time so the rest of the API keeps serving.
func NewSigner(cloudName, apiKey, apiSecret, container string, logger *zap.Logger) *Signer {
	s := &Signer{
		cloudName: cloudName,
		apiKey:    apiKey,
		apiSecret: apiSecret,
		container: strings.ToLower(container),
		logger:    logger,
	}
	if s.configured() {
		cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
		if err != nil {
			logger.Warn("storage: cloudinary init failed, credential issuance disabled", zap.Error(err))
		} else {
			s.cld = cld
		}
	} else {
		logger.Warn("storage: credentials not configured, credential issuance disabled")
	}
	return s
}

func (s *Signer) configured() bool {
	return s.cloudName != "" && s.apiKey != "" && s.apiSecret != ""
}

// IssueCredential mints a signed grant over one object path. Write grants
// authorize a single upload of that object; read grants authorize fetching
// it. The credential embeds an explicit expiry.
func (s *Signer) IssueCredential(ctx context.Context, objectPath string, mode AccessMode, contentType string) (*Credential, error) {
	if !s.configured() {
		return nil, ErrNotConfigured
	}

	publicID := s.container + "/" + objectPath
	switch mode {
	case ModeWrite:
		return s.writeCredential(publicID, contentType), nil
	case ModeRead:
		return s.readCredential(publicID), nil
	default:
		return nil, fmt.Errorf("unknown access mode %q", mode)
	}
}

// writeCredential signs an upload authorization for exactly this public ID.
// The signature covers the sorted parameter string plus the API secret, so
// changing the path or timestamp invalidates it.
func (s *Signer) writeCredential(publicID, contentType string) *Credential {
	now := time.Now().UTC()
	timestamp := now.Unix()

	stringToSign := fmt.Sprintf("public_id=%s&timestamp=%d%s", publicID, timestamp, s.apiSecret)
	signature := computeSHA1(stringToSign)

	if contentType == "" {
		contentType = "application/octet-stream"
	}
	credentialURL := fmt.Sprintf(
		"https://api.cloudinary.com/v1_1/%s/auto/upload?api_key=%s&public_id=%s&timestamp=%d&signature=%s&content_type=%s",
		s.cloudName, s.apiKey, url.QueryEscape(publicID), timestamp, signature, url.QueryEscape(contentType),
	)

	return &Credential{
		CredentialURL: credentialURL,
		ResourceURL:   s.resourceURL(publicID),
		ExpiresAt:     now.Add(WriteTTL),
	}
}

// readCredential signs a short-lived delivery URL for an authenticated asset.
func (s *Signer) readCredential(publicID string) *Credential {
	expiresAt := time.Now().UTC().Add(ReadTTL)

	stringToSign := fmt.Sprintf("expires_at=%d&public_id=%s%s", expiresAt.Unix(), publicID, s.apiSecret)
	signature := computeSHA1(stringToSign)

	credentialURL := fmt.Sprintf(
		"https://res.cloudinary.com/%s/image/authenticated/s--%s--/expires_%d/%s",
		s.cloudName, signature, expiresAt.Unix(), publicID,
	)

	return &Credential{
		CredentialURL: credentialURL,
		ResourceURL:   s.resourceURL(publicID),
		ExpiresAt:     expiresAt,
	}
}

func (s *Signer) resourceURL(publicID string) string {
	return fmt.Sprintf("https://res.cloudinary.com/%s/image/upload/%s", s.cloudName, publicID)
}

// ListGallery returns every photo under a booking's prefix grouped by stage,
// each carrying a read credential. Unknown stage segments are skipped.
func (s *Signer) ListGallery(ctx context.Context, email, bookingID string) (map[string][]GalleryItem, error) {
	if !s.configured() || s.cld == nil {
		return nil, ErrNotConfigured
	}

	prefix := s.container + "/" + BookingPrefix(email, bookingID)
	gallery := map[string][]GalleryItem{
		StageBefore:  {},
		StageAfter:   {},
		StageDispute: {},
	}

	res, err := s.cld.Admin.Assets(ctx, admin.AssetsParams{
		DeliveryType: "upload",
		Prefix:       prefix,
		MaxResults:   500,
	})
	if err != nil {
		return nil, fmt.Errorf("list assets under %s: %w", prefix, err)
	}

	for _, asset := range res.Assets {
		relative := strings.TrimPrefix(asset.PublicID, prefix)
		stage, rest, found := strings.Cut(relative, "/")
		if !found {
			continue
		}
		if _, ok := gallery[stage]; !ok {
			continue
		}
		cred := s.readCredential(asset.PublicID)
		name := rest
		if idx := strings.LastIndex(rest, "/"); idx >= 0 {
			name = rest[idx+1:]
		}
		gallery[stage] = append(gallery[stage], GalleryItem{Name: name, URL: cred.CredentialURL})
	}
	return gallery, nil
}

// computeSHA1 computes the SHA-1 hash of the input and returns its hex encoding.
func computeSHA1(input string) string {
	h := sha1.New()
	h.Write([]byte(input))
	return hex.EncodeToString(h.Sum(nil))
}
