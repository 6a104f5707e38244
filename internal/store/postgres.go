package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/abd0-omar/url-shortener-with-a-twist/internal/recipients"
	"github.com/abd0-omar/url-shortener-with-a-twist/internal/shortener"
	"github.com/abd0-omar/url-shortener-with-a-twist/internal/tokens"
)

const uniqueViolation = "23505"

// querier is the subset of pgx satisfied by both *pgxpool.Pool and pgx.Tx,
// so the same store methods run pooled or inside a transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStore is the PostgreSQL implementation of Store.
type PostgresStore struct {
	db   querier
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgreSQL-backed store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: pool, pool: pool}
}

// InTx runs fn against a transaction-scoped store. The transaction commits
// only if fn returns nil; any failure path rolls back. Calling InTx on an
// already transaction-scoped store reuses the open transaction.
func (p *PostgresStore) InTx(ctx context.Context, fn func(tx Store) error) error {
	if p.pool == nil {
		return fn(p)
	}

	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(&PostgresStore{db: tx}); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

func (p *PostgresStore) SaveLink(ctx context.Context, link *shortener.Link) error {
	query := `
		INSERT INTO links (id, target_url, created_at)
		VALUES ($1, $2, $3)
	`

	_, err := p.db.Exec(ctx, query, link.ID, link.TargetURL, link.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return shortener.ErrDuplicateID
		}

		return fmt.Errorf("insert link %q: %w", link.ID, err)
	}

	return nil
}

func (p *PostgresStore) GetLink(ctx context.Context, id string) (*shortener.Link, error) {
	query := `
		SELECT id, target_url, created_at
		FROM links
		WHERE id = $1
	`

	var link shortener.Link

	err := p.db.QueryRow(ctx, query, id).Scan(&link.ID, &link.TargetURL, &link.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shortener.ErrNotFound
		}

		return nil, fmt.Errorf("select link %q: %w", id, err)
	}

	return &link, nil
}

func (p *PostgresStore) FindRecipient(ctx context.Context, name, email string) (uuid.UUID, error) {
	query := `
		SELECT id FROM link_recipients
		WHERE name = $1 AND email = $2
	`

	var id uuid.UUID

	err := p.db.QueryRow(ctx, query, name, email).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, recipients.ErrNotFound
		}

		return uuid.Nil, fmt.Errorf("select recipient %q: %w", email, err)
	}

	return id, nil
}

func (p *PostgresStore) InsertRecipient(ctx context.Context, name, email string, receivedLinkAt time.Time) (uuid.UUID, error) {
	// ON CONFLICT DO NOTHING keeps a duplicate insert from raising a
	// constraint error and aborting the enclosing transaction; the
	// registration workflow falls back to the existing row on the same tx.
	query := `
		INSERT INTO link_recipients (id, name, email, received_link_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (name, email) DO NOTHING
		RETURNING id
	`

	id := uuid.New()

	err := p.db.QueryRow(ctx, query, id, name, email, receivedLinkAt).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, recipients.ErrDuplicateIdentity
		}

		return uuid.Nil, fmt.Errorf("insert recipient %q: %w", email, err)
	}

	return id, nil
}

func (p *PostgresStore) IssueToken(ctx context.Context, token *tokens.LinkToken) error {
	query := `
		INSERT INTO links_tokens (link_token, recipient_id, link_id, status, expiration_date)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := p.db.Exec(ctx, query,
		token.Token,
		token.RecipientID,
		token.LinkID,
		token.Status.String(),
		token.Expiration,
	)
	if err != nil {
		return fmt.Errorf("insert token for link %q: %w", token.LinkID, err)
	}

	return nil
}

func (p *PostgresStore) TokenStatus(ctx context.Context, recipientID uuid.UUID, linkID string) (tokens.Status, error) {
	// Re-registration may leave several tokens per pair; a confirmed one
	// wins, otherwise the freshest pending one represents the pair.
	query := `
		SELECT status FROM links_tokens
		WHERE recipient_id = $1 AND link_id = $2
		ORDER BY (status = 'confirmed') DESC, expiration_date DESC
		LIMIT 1
	`

	var status string

	err := p.db.QueryRow(ctx, query, recipientID, linkID).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return tokens.StatusAbsent, nil
		}

		return tokens.StatusAbsent, fmt.Errorf("select token status for link %q: %w", linkID, err)
	}

	return tokens.ParseStatus(status), nil
}

func (p *PostgresStore) ConfirmToken(ctx context.Context, token string) (string, error) {
	// Expiration only gates the pending -> confirmed flip; a token that is
	// already confirmed keeps confirming as a no-op, so a re-clicked email
	// link never turns into an error.
	query := `
		UPDATE links_tokens
		SET status = 'confirmed'
		WHERE link_token = $1 AND (status = 'confirmed' OR expiration_date > now())
		RETURNING link_id
	`

	var linkID string

	err := p.db.QueryRow(ctx, query, token).Scan(&linkID)
	if err == nil {
		return linkID, nil
	}

	if !errors.Is(err, pgx.ErrNoRows) {
		return "", fmt.Errorf("confirm token: %w", err)
	}

	// No row matched: either the token is unknown or it expired.
	var expiration time.Time

	err = p.db.QueryRow(ctx, `SELECT expiration_date FROM links_tokens WHERE link_token = $1`, token).
		Scan(&expiration)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", tokens.ErrNotFound
		}

		return "", fmt.Errorf("confirm token: %w", err)
	}

	return "", tokens.ErrExpired
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError

	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// Compile-time check.
var _ Store = (*PostgresStore)(nil)
