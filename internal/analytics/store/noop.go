package store

import (
	"context"

	"go.uber.org/zap"

	"github.com/abd0-omar/url-shortener-with-a-twist/internal/analytics"
)

// Noop is a no-op implementation of analytics.Store that logs events.
type Noop struct {
	logger *zap.Logger
}

// NewNoop creates a new no-op analytics store.
func NewNoop(logger *zap.Logger) *Noop {
	return &Noop{logger: logger}
}

func (n *Noop) SaveLinkCreated(_ context.Context, event *analytics.LinkCreatedEvent) error {
	n.logger.Info("link created event received",
		zap.String("linkId", event.LinkID),
		zap.String("targetUrl", event.TargetURL),
		zap.Time("createdAt", event.CreatedAt),
	)

	return nil
}

func (n *Noop) SaveRecipientRegistered(_ context.Context, event *analytics.RecipientRegisteredEvent) error {
	n.logger.Info("recipient registered event received",
		zap.String("linkId", event.LinkID),
		zap.String("recipientId", event.RecipientID),
		zap.Bool("alreadyConfirmed", event.AlreadyConfirmed),
	)

	return nil
}

func (n *Noop) SaveTokenConfirmed(_ context.Context, event *analytics.TokenConfirmedEvent) error {
	n.logger.Info("token confirmed event received",
		zap.String("linkId", event.LinkID),
		zap.Time("confirmedAt", event.ConfirmedAt),
	)

	return nil
}

func (n *Noop) SaveLinkAccessed(_ context.Context, event *analytics.LinkAccessedEvent) error {
	n.logger.Info("link accessed event received",
		zap.String("linkId", event.LinkID),
		zap.Time("accessedAt", event.AccessedAt),
		zap.String("referrer", event.Referrer),
	)

	return nil
}

// Compile-time check.
var _ analytics.Store = (*Noop)(nil)
