package shortener

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// maxIDAttempts bounds the retry loop when a freshly minted id collides
// with an existing one.
const maxIDAttempts = 3

// Service creates and resolves shortened links.
type Service struct {
	repo       Repository
	generateID IDGenerator
	logger     *zap.Logger
}

// NewService creates a new link service.
func NewService(repo Repository, generateID IDGenerator, logger *zap.Logger) *Service {
	return &Service{
		repo:       repo,
		generateID: generateID,
		logger:     logger,
	}
}

// Create normalizes the target URL and persists a new link under a freshly
// generated short id. Each insert attempt is independent; the store's
// uniqueness constraint detects collisions, and up to maxIDAttempts ids are
// tried before giving up with ErrIDExhausted.
func (s *Service) Create(ctx context.Context, rawURL string) (*Link, error) {
	target, err := NormalizeURL(rawURL)
	if err != nil {
		return nil, err
	}

	var link *Link

	err = retryConflict(maxIDAttempts, ErrDuplicateID, func() error {
		id, err := s.generateID()
		if err != nil {
			return fmt.Errorf("generate link id: %w", err)
		}

		candidate := &Link{
			ID:        id,
			TargetURL: target,
			CreatedAt: time.Now().UTC(),
		}

		if err := s.repo.SaveLink(ctx, candidate); err != nil {
			return err
		}

		link = candidate

		return nil
	})
	if err != nil {
		if errors.Is(err, ErrDuplicateID) {
			s.logger.Warn("link id space collision after all attempts")

			return nil, ErrIDExhausted
		}

		return nil, fmt.Errorf("create link: %w", err)
	}

	return link, nil
}

// Resolve returns the target URL behind a short id, or ErrNotFound.
func (s *Service) Resolve(ctx context.Context, id string) (string, error) {
	link, err := s.repo.GetLink(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", ErrNotFound
		}

		return "", fmt.Errorf("resolve link %q: %w", id, err)
	}

	return link.TargetURL, nil
}
