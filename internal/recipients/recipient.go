// Package recipients holds the validated identity of a person invited to
// access a short link. A recipient is identified by the (name, email) pair;
// the pair is unique in the store and a recipient row is never updated or
// deleted.
package recipients

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// ErrInvalid is returned when a recipient name or email fails validation.
var ErrInvalid = errors.New("invalid recipient")

// ErrNotFound is returned when no recipient exists for a (name, email) pair.
var ErrNotFound = errors.New("recipient not found")

// ErrDuplicateIdentity is returned by a store when the (name, email) pair
// already exists.
var ErrDuplicateIdentity = errors.New("recipient identity already registered")

const maxNameLength = 256

// Characters that are rejected in display names.
const forbiddenNameChars = `/()"<>\{}`

var validate = validator.New(validator.WithRequiredStructEnabled())

// NewRecipient is a validated recipient identity.
type NewRecipient struct {
	Name  string
	Email string
}

// Parse validates a raw name and email and returns the recipient identity,
// or ErrInvalid with a human-readable reason.
func Parse(name, email string) (*NewRecipient, error) {
	parsedName, err := ParseName(name)
	if err != nil {
		return nil, err
	}

	parsedEmail, err := ParseEmail(email)
	if err != nil {
		return nil, err
	}

	return &NewRecipient{Name: parsedName, Email: parsedEmail}, nil
}

// ParseName validates a display name: non-empty after trimming, at most 256
// characters, and free of the forbidden characters.
func ParseName(s string) (string, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("%w: name must not be empty", ErrInvalid)
	}

	if utf8.RuneCountInString(s) > maxNameLength {
		return "", fmt.Errorf("%w: name must be at most %d characters", ErrInvalid, maxNameLength)
	}

	if strings.ContainsAny(s, forbiddenNameChars) {
		return "", fmt.Errorf("%w: name contains a forbidden character", ErrInvalid)
	}

	return s, nil
}

// ParseEmail validates an email address.
func ParseEmail(s string) (string, error) {
	if err := validate.Var(s, "required,email"); err != nil {
		return "", fmt.Errorf("%w: %q is not a valid recipient email", ErrInvalid, s)
	}

	return s, nil
}
