package domain

import (
	"errors"
	"time"
)

var ErrInvalidInviteToken = errors.New("invalid registration token")
var ErrInviteExpired = errors.New("registration link expired")
var ErrInviteNotFound = errors.New("registration link not found")

// InviteTTL is how long a registration link stays usable after issuance.
const InviteTTL = 24 * time.Hour

// RegistrationLink is a single-use, time-limited invite permitting exactly one
// new-account registration. A link is consumed (deleted) on successful use.
type RegistrationLink struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Token     string    `json:"token" bson:"token"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	ExpiresAt time.Time `json:"expires_at" bson:"expires_at"`
}

// Expired reports whether the link is past its expiry at the given instant.
func (l *RegistrationLink) Expired(now time.Time) bool {
	return now.After(l.ExpiresAt)
}
