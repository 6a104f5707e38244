// Package tokens models the confirmation record tying a recipient to a
// link. Access to a link is granted only once the recipient's token for
// that link has been confirmed.
package tokens

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jaevor/go-nanoid"
)

// ErrNotFound is returned when no token row exists for a given token string.
var ErrNotFound = errors.New("link token not found")

// ErrExpired is returned when a token's expiration date has passed.
var ErrExpired = errors.New("link token expired")

// TTL is how long a freshly issued token stays confirmable.
const TTL = 7 * 24 * time.Hour

// Length of a confirmation token.
const Length = 25

const alphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Status is the lifecycle state of a token for a (recipient, link) pair.
// StatusAbsent distinguishes "never registered for this link" from
// "registered but not yet confirmed"; it is not an error.
type Status int

const (
	StatusAbsent Status = iota
	StatusPending
	StatusConfirmed
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusConfirmed:
		return "confirmed"
	default:
		return "absent"
	}
}

// ParseStatus maps a persisted status string back to a Status.
func ParseStatus(s string) Status {
	switch s {
	case "pending":
		return StatusPending
	case "confirmed":
		return StatusConfirmed
	default:
		return StatusAbsent
	}
}

// LinkToken is one confirmation record. The token string is the bearer
// credential embedded in the confirmation email. Status only moves
// Pending -> Confirmed, never backward.
type LinkToken struct {
	Token       string
	RecipientID uuid.UUID
	LinkID      string
	Status      Status
	Expiration  time.Time
}

// Expired reports whether the token's expiration date has passed.
func (t *LinkToken) Expired(now time.Time) bool {
	return now.After(t.Expiration)
}

// Generator produces confirmation tokens.
type Generator func() string

// NewGenerator returns a cryptographically seeded generator of 25-character
// alphanumeric tokens. The alphanumeric^25 space makes collisions
// negligible over any realistic token volume.
func NewGenerator() (Generator, error) {
	gen, err := nanoid.CustomASCII(alphabet, Length)
	if err != nil {
		return nil, err
	}

	return Generator(gen), nil
}
