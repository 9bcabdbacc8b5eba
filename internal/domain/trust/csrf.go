// Package trust implements the request-trust primitives: anti-forgery
// tokens, caller identity validation, and resource ownership decisions.
package trust

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"strings"
)

// tokenBytes is the anti-forgery token size before hex encoding; the
// rendered token is 64 lowercase hex characters.
const tokenBytes = 32

// GenerateToken returns a fresh anti-forgery token: 32 cryptographically
// random bytes, hex-encoded.
func GenerateToken() string {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand.Read only fails on catastrophic OS errors
		panic("trust: failed to generate random token: " + err.Error())
	}
	return hex.EncodeToString(b)
}

// RequiresValidation reports whether the HTTP method mutates state and
// therefore needs anti-forgery validation. Case-insensitive.
func RequiresValidation(method string) bool {
	switch strings.ToUpper(method) {
	case "POST", "PUT", "DELETE", "PATCH":
		return true
	default:
		return false
	}
}

// SkipPath reports whether the path falls under an exemption prefix
// (webhook receivers and route groups with their own CSRF-equivalent
// verification). Exemptions are prefix-matched, not exact-matched.
func SkipPath(path string, exemptPrefixes []string) bool {
	for _, prefix := range exemptPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// ValidateToken compares the cookie token against the header token in
// constant time. Both buffers are padded to equal length before the
// comparison so neither token's length nor contents leak via timing, and
// the original lengths are checked independently so padded-equal inputs of
// different lengths still fail.
func ValidateToken(cookieToken, headerToken string) bool {
	if cookieToken == "" || headerToken == "" {
		return false
	}

	size := len(cookieToken)
	if len(headerToken) > size {
		size = len(headerToken)
	}
	a := make([]byte, size)
	b := make([]byte, size)
	copy(a, cookieToken)
	copy(b, headerToken)

	sameLength := subtle.ConstantTimeEq(int32(len(cookieToken)), int32(len(headerToken)))
	sameBytes := subtle.ConstantTimeCompare(a, b)

	return sameLength&sameBytes == 1
}
