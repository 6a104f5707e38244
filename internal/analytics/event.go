// Package analytics defines the events emitted by the link-sharing
// service and their persistence interface. Events are published
// best-effort; a publish failure never fails the operation that produced
// it.
package analytics

import "time"

// Topic names, one per event type.
const (
	TopicLinkCreated         = "link.created"
	TopicRecipientRegistered = "recipient.registered"
	TopicTokenConfirmed      = "token.confirmed"
	TopicLinkAccessed        = "link.accessed"
)

// LinkCreatedEvent is emitted when a new short link is created.
type LinkCreatedEvent struct {
	LinkID    string    `json:"linkId"`
	TargetURL string    `json:"targetUrl"`
	CreatedAt time.Time `json:"createdAt"`
	ClientIP  string    `json:"clientIp"`
	UserAgent string    `json:"userAgent"`
}

// RecipientRegisteredEvent is emitted when a registration issues a token.
type RecipientRegisteredEvent struct {
	LinkID           string    `json:"linkId"`
	RecipientID      string    `json:"recipientId"`
	AlreadyConfirmed bool      `json:"alreadyConfirmed"`
	RegisteredAt     time.Time `json:"registeredAt"`
	ClientIP         string    `json:"clientIp"`
}

// TokenConfirmedEvent is emitted when a recipient confirms their email.
type TokenConfirmedEvent struct {
	LinkID      string    `json:"linkId"`
	ConfirmedAt time.Time `json:"confirmedAt"`
}

// LinkAccessedEvent is emitted when an access check redirects a recipient.
type LinkAccessedEvent struct {
	LinkID     string    `json:"linkId"`
	AccessedAt time.Time `json:"accessedAt"`
	ClientIP   string    `json:"clientIp"`
	UserAgent  string    `json:"userAgent"`
	Referrer   string    `json:"referrer"`
}
