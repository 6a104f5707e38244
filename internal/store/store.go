// Package store persists links, recipients, and link tokens. The Postgres
// implementation is the production store; the memory implementation backs
// tests.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/abd0-omar/url-shortener-with-a-twist/internal/shortener"
	"github.com/abd0-omar/url-shortener-with-a-twist/internal/tokens"
)

// RecipientStore persists recipient identities.
type RecipientStore interface {
	// FindRecipient resolves a (name, email) pair to a recipient id,
	// returning recipients.ErrNotFound if absent.
	FindRecipient(ctx context.Context, name, email string) (uuid.UUID, error)

	// InsertRecipient creates a recipient row, returning
	// recipients.ErrDuplicateIdentity if the (name, email) pair exists.
	InsertRecipient(ctx context.Context, name, email string, receivedLinkAt time.Time) (uuid.UUID, error)
}

// TokenStore persists confirmation tokens and transitions their status.
type TokenStore interface {
	// IssueToken creates a token row.
	IssueToken(ctx context.Context, token *tokens.LinkToken) error

	// TokenStatus returns the status of the current token for a
	// (recipient, link) pair. A pair with no token row yields
	// tokens.StatusAbsent, not an error.
	TokenStatus(ctx context.Context, recipientID uuid.UUID, linkID string) (tokens.Status, error)

	// ConfirmToken flips a token to confirmed and returns its link id.
	// Returns tokens.ErrNotFound for an unknown token and tokens.ErrExpired
	// for a pending one past its expiration date. Confirming an already
	// confirmed token is a no-op in effect, even past expiration.
	ConfirmToken(ctx context.Context, token string) (string, error)
}

// Store is the full persistence surface. InTx runs fn against a
// transaction-scoped view of the store, committing if fn returns nil and
// rolling back otherwise; the registration workflow uses it to keep the
// recipient insert and token issue atomic.
type Store interface {
	shortener.Repository
	RecipientStore
	TokenStore

	InTx(ctx context.Context, fn func(tx Store) error) error
}
