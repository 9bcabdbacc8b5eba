package trust

import "github.com/google/uuid"

// Identity is the caller identity resolved for a request: an authenticated
// user id from the trusted session mechanism, or a self-asserted anonymous
// session id. At most one side is set.
type Identity struct {
	UserID    string
	SessionID string
}

// NewUserIdentity creates an authenticated identity.
func NewUserIdentity(userID string) Identity {
	return Identity{UserID: userID}
}

// NewSessionIdentity creates an anonymous identity.
func NewSessionIdentity(sessionID string) Identity {
	return Identity{SessionID: sessionID}
}

// IsAuthenticated reports whether the identity is an authenticated user.
func (i Identity) IsAuthenticated() bool {
	return i.UserID != ""
}

// IsZero reports whether no identity was resolved at all.
func (i Identity) IsZero() bool {
	return i.UserID == "" && i.SessionID == ""
}

// Key returns the storage key for per-identity counters. User and session
// namespaces are kept disjoint so an anonymous caller can never collide
// with a user id.
func (i Identity) Key() string {
	if i.UserID != "" {
		return "user:" + i.UserID
	}
	return "session:" + i.SessionID
}

// IsValidSessionID reports whether s is a well-formed anonymous session id:
// a canonical UUID v4 (version nibble 4, RFC 4122 variant). Malformed values
// are rejected before any equality check so non-UUID junk never reaches an
// ownership comparison and can be reported as a caller mistake rather than
// a wrong-owner violation.
func IsValidSessionID(s string) bool {
	// uuid.Parse also accepts urn-prefixed, braced, and unhyphenated
	// forms; only the canonical 36-character form is a valid session id.
	if len(s) != 36 {
		return false
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return false
	}
	return id.Version() == 4 && id.Variant() == uuid.RFC4122
}
