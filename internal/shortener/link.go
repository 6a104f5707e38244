package shortener

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when no link exists for a given id.
var ErrNotFound = errors.New("link not found")

// ErrInvalidURL is returned when a target URL cannot be parsed as an absolute URL.
var ErrInvalidURL = errors.New("invalid target url")

// ErrDuplicateID is returned by a Repository when a link id already exists.
var ErrDuplicateID = errors.New("link id already exists")

// ErrIDExhausted is returned when every attempt at minting a unique link id collided.
var ErrIDExhausted = errors.New("exhausted retries generating a unique link id")

// Link represents a shortened link. The id and target URL are immutable
// once created; there is no update or delete path.
type Link struct {
	ID        string
	TargetURL string
	CreatedAt time.Time
}

// Repository defines the interface for link storage operations.
type Repository interface {
	// SaveLink inserts a link, returning ErrDuplicateID on an id collision.
	SaveLink(ctx context.Context, link *Link) error

	// GetLink retrieves a link by id, returning ErrNotFound if absent.
	GetLink(ctx context.Context, id string) (*Link, error)
}
