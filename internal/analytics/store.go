package analytics

import "context"

// Store defines the interface for persisting analytics events.
type Store interface {
	SaveLinkCreated(ctx context.Context, event *LinkCreatedEvent) error
	SaveRecipientRegistered(ctx context.Context, event *RecipientRegisteredEvent) error
	SaveTokenConfirmed(ctx context.Context, event *TokenConfirmedEvent) error
	SaveLinkAccessed(ctx context.Context, event *LinkAccessedEvent) error
}
