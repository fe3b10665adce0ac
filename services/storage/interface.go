package storage

import (
	"context"
	"errors"
	"time"
)

// AccessMode scopes a credential to writing one object or reading one object.
type AccessMode string

const (
	ModeWrite AccessMode = "write"
	ModeRead  AccessMode = "read"
)

// Upload stages under a booking's photo prefix.
const (
	StageBefore  = "before"
	StageAfter   = "after"
	StageDispute = "dispute"
)

// Credential lifetimes. Write grants are kept short since the client uploads
// immediately after requesting one; read grants last long enough to render a
// gallery page.
const (
	WriteTTL = 15 * time.Minute
	ReadTTL  = 30 * time.Minute
)

// ErrNotConfigured is returned when the storage account credentials are
// missing from configuration.
var ErrNotConfigured = errors.New("storage credentials not configured")

// Credential is a signed, time-boxed authorization over exactly one object
// path. CredentialURL carries the signature; ResourceURL is the permanent
// address of the object.
type Credential struct {
	CredentialURL string    `json:"sasUrl"`
	ResourceURL   string    `json:"blobUrl"`
	ExpiresAt     time.Time `json:"expiresAt"`
}

// GalleryItem is one photo in a booking's gallery with a read credential.
type GalleryItem struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Service mints scoped object-store credentials and lists booking galleries.
// It performs no authorization: callers validate tokens or shared secrets
// before invoking it, keeping signing independent of policy.
type Service interface {
	IssueCredential(ctx context.Context, objectPath string, mode AccessMode, contentType string) (*Credential, error)
	ListGallery(ctx context.Context, email, bookingID string) (map[string][]GalleryItem, error)
}
