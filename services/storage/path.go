package storage

import "strings"

// SanitizePathPart normalizes an identity component for use as an object path
// segment: lower-cased, "@" spelled out, runs of anything outside [a-z0-9]
// collapsed to a single hyphen, leading/trailing hyphens stripped.
func SanitizePathPart(value string) string {
	v := strings.ToLower(strings.TrimSpace(value))
	v = strings.ReplaceAll(v, "@", "-at-")

	var b strings.Builder
	lastHyphen := false
	for _, r := range v {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastHyphen = false
			continue
		}
		if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.Trim(b.String(), "-")
}

// ObjectPath builds the logical path for a booking photo:
// <email>/<bookingId>/<stage>/<fileName>.
func ObjectPath(email, bookingID, stage, fileName string) string {
	return SanitizePathPart(email) + "/" + SanitizePathPart(bookingID) + "/" + stage + "/" + fileName
}

// BookingPrefix is the path prefix holding every photo for one booking.
func BookingPrefix(email, bookingID string) string {
	return SanitizePathPart(email) + "/" + SanitizePathPart(bookingID) + "/"
}
