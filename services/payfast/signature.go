package payfast

import (
	"crypto/md5"
	"encoding/hex"
	"net/url"
	"sort"
	"strings"
)

// encodeValue percent-encodes a value the way PayFast signs it: spaces become
// "+", hex digits are uppercase, and !'()* are escaped on top of the usual
// reserved set. url.QueryEscape matches this rule exactly.
func encodeValue(value string) string {
	return url.QueryEscape(value)
}

// BuildParamString canonicalizes a flat payload into a deterministic encoded
// string: empty values are dropped, keys sorted lexicographically, pairs
// joined as key=value&... The result is independent of input field order.
func BuildParamString(data map[string]string) string {
	keys := make([]string, 0, len(data))
	for k, v := range data {
		if v == "" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, encodeValue(k)+"="+encodeValue(data[k]))
	}
	return strings.Join(parts, "&")
}

// BuildSignature computes the keyed digest PayFast uses for authenticity:
// MD5 over the canonical param string, with the shared passphrase appended
// when configured.
func BuildSignature(data map[string]string, passphrase string) string {
	signed := BuildParamString(data)
	if passphrase != "" {
		signed += "&passphrase=" + encodeValue(passphrase)
	}
	sum := md5.Sum([]byte(signed))
	return hex.EncodeToString(sum[:])
}
