package models

// Token is an opaque bearer credential delivered out-of-band by email. The
// token value itself is the key. Tokens are created once, never mutated, and
// treated as expired past ExpiresAt; expiry is checked on every use, not
// enforced by the store.
type Token struct {
	Token     string `bson:"token" json:"token"`
	Email     string `bson:"email" json:"email"`
	BookingID string `bson:"bookingId" json:"bookingId"`
	Scope     string `bson:"scope" json:"scope"`
	ExpiresAt string `bson:"expiresAt" json:"expiresAt"`
	CreatedAt string `bson:"createdAt" json:"createdAt"`
}
