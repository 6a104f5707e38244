// Package registration orchestrates the recipient confirmation workflow
// and the terminal access decision for gated links.
package registration

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abd0-omar/url-shortener-with-a-twist/internal/recipients"
	"github.com/abd0-omar/url-shortener-with-a-twist/internal/store"
	"github.com/abd0-omar/url-shortener-with-a-twist/internal/tokens"
)

// ErrDeliveryFailed is returned when the confirmation email could not be
// sent. The Pending token is already committed at that point and stays
// valid; resubmitting the registration re-issues and re-sends.
var ErrDeliveryFailed = errors.New("confirmation email delivery failed")

// Mailer sends the confirmation email for a freshly issued token.
type Mailer interface {
	SendConfirmation(ctx context.Context, to, token string) error
}

// Outcome is the result of a registration attempt.
type Outcome struct {
	RecipientID uuid.UUID
	// Token is the issued confirmation token, empty when AlreadyConfirmed.
	Token string
	// AlreadyConfirmed is set when the recipient has previously confirmed
	// this link; no new token is issued and no email is sent.
	AlreadyConfirmed bool
}

// AccessKind classifies the access decision.
type AccessKind int

const (
	// AccessRedirect grants access; TargetURL carries the destination.
	AccessRedirect AccessKind = iota
	// AccessNotRegistered means the (name, email) identity has never
	// registered at all; the caller should invite them to register.
	AccessNotRegistered
	// AccessDenied means the identity exists but has not confirmed this link.
	AccessDenied
)

// AccessResult is the terminal access decision for a recipient and link.
type AccessResult struct {
	Kind      AccessKind
	TargetURL string
}

// Service implements the confirmation workflow, the confirm operation, and
// the access decision. It holds only long-lived shared handles; every
// operation re-fetches state by key.
type Service struct {
	store         store.Store
	mailer        Mailer
	generateToken tokens.Generator
	logger        *zap.Logger
}

// NewService creates a new registration service.
func NewService(st store.Store, mailer Mailer, generateToken tokens.Generator, logger *zap.Logger) *Service {
	return &Service{
		store:         st,
		mailer:        mailer,
		generateToken: generateToken,
		logger:        logger,
	}
}

// Register runs the confirmation workflow for a recipient and link:
// validate the identity, insert the recipient or reuse the existing row,
// short-circuit if this pair is already confirmed, and issue a Pending
// token — all inside one transaction. The confirmation email goes out after
// commit, so a delivery failure never rolls back persisted state.
func (s *Service) Register(ctx context.Context, name, email, linkID string) (*Outcome, error) {
	recipient, err := recipients.Parse(name, email)
	if err != nil {
		return nil, err
	}

	outcome := &Outcome{}

	err = s.store.InTx(ctx, func(tx store.Store) error {
		if _, err := tx.GetLink(ctx, linkID); err != nil {
			return err
		}

		recipientID, err := tx.InsertRecipient(ctx, recipient.Name, recipient.Email, time.Now().UTC())
		if errors.Is(err, recipients.ErrDuplicateIdentity) {
			// Registered before, possibly for another link or without
			// confirming this one. Reuse the row and re-check this pair.
			recipientID, err = tx.FindRecipient(ctx, recipient.Name, recipient.Email)
			if err != nil {
				return fmt.Errorf("find existing recipient %q: %w", recipient.Email, err)
			}

			status, err := tx.TokenStatus(ctx, recipientID, linkID)
			if err != nil {
				return err
			}

			if status == tokens.StatusConfirmed {
				outcome.RecipientID = recipientID
				outcome.AlreadyConfirmed = true

				return nil
			}
		} else if err != nil {
			return err
		}

		token := s.generateToken()

		err = tx.IssueToken(ctx, &tokens.LinkToken{
			Token:       token,
			RecipientID: recipientID,
			LinkID:      linkID,
			Status:      tokens.StatusPending,
			Expiration:  time.Now().UTC().Add(tokens.TTL),
		})
		if err != nil {
			return err
		}

		outcome.RecipientID = recipientID
		outcome.Token = token

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("register %q for link %q: %w", recipient.Email, linkID, err)
	}

	if outcome.AlreadyConfirmed {
		return outcome, nil
	}

	if err := s.mailer.SendConfirmation(ctx, recipient.Email, outcome.Token); err != nil {
		s.logger.Error("confirmation email delivery failed",
			zap.String("link_id", linkID),
			zap.Error(err),
		)

		return outcome, fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}

	return outcome, nil
}

// Confirm flips a pending token to confirmed and returns the link id it
// gates. Unknown tokens yield tokens.ErrNotFound, expired ones
// tokens.ErrExpired; confirming twice is a no-op in effect.
func (s *Service) Confirm(ctx context.Context, token string) (string, error) {
	linkID, err := s.store.ConfirmToken(ctx, token)
	if err != nil {
		if errors.Is(err, tokens.ErrNotFound) || errors.Is(err, tokens.ErrExpired) {
			return "", err
		}

		return "", fmt.Errorf("confirm token: %w", err)
	}

	return linkID, nil
}

// Access decides whether a claimed identity may follow a link. Only a
// Confirmed token grants access; an unknown identity is NotRegistered and
// everything else (no token for this link, Pending, or expired Pending) is
// Denied. Store failures are returned as errors, distinct from the two
// negative outcomes.
func (s *Service) Access(ctx context.Context, name, email, linkID string) (*AccessResult, error) {
	recipient, err := recipients.Parse(name, email)
	if err != nil {
		return nil, err
	}

	recipientID, err := s.store.FindRecipient(ctx, recipient.Name, recipient.Email)
	if err != nil {
		if errors.Is(err, recipients.ErrNotFound) {
			return &AccessResult{Kind: AccessNotRegistered}, nil
		}

		return nil, fmt.Errorf("access link %q: %w", linkID, err)
	}

	status, err := s.store.TokenStatus(ctx, recipientID, linkID)
	if err != nil {
		return nil, fmt.Errorf("access link %q: %w", linkID, err)
	}

	if status != tokens.StatusConfirmed {
		return &AccessResult{Kind: AccessDenied}, nil
	}

	// A confirmed token referencing a missing link means the store lost an
	// invariant; surface it as a failure, not a denial.
	link, err := s.store.GetLink(ctx, linkID)
	if err != nil {
		return nil, fmt.Errorf("access link %q: %w", linkID, err)
	}

	return &AccessResult{Kind: AccessRedirect, TargetURL: link.TargetURL}, nil
}
