package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"go.uber.org/zap"

	"github.com/abd0-omar/url-shortener-with-a-twist/internal/analytics"
	"github.com/abd0-omar/url-shortener-with-a-twist/internal/messaging"
	"github.com/abd0-omar/url-shortener-with-a-twist/internal/recipients"
	"github.com/abd0-omar/url-shortener-with-a-twist/internal/registration"
	"github.com/abd0-omar/url-shortener-with-a-twist/internal/shortener"
	"github.com/abd0-omar/url-shortener-with-a-twist/internal/tokens"
)

// RecipientsHandler handles recipient registration, token confirmation and
// the gated access check.
type RecipientsHandler struct {
	registration      *registration.Service
	publishRegistered messaging.Publish[analytics.RecipientRegisteredEvent]
	publishConfirmed  messaging.Publish[analytics.TokenConfirmedEvent]
	publishAccessed   messaging.Publish[analytics.LinkAccessedEvent]
	logger            *zap.Logger
}

// NewRecipientsHandler creates a new recipients handler.
func NewRecipientsHandler(
	reg *registration.Service,
	publishRegistered messaging.Publish[analytics.RecipientRegisteredEvent],
	publishConfirmed messaging.Publish[analytics.TokenConfirmedEvent],
	publishAccessed messaging.Publish[analytics.LinkAccessedEvent],
	logger *zap.Logger,
) *RecipientsHandler {
	return &RecipientsHandler{
		registration:      reg,
		publishRegistered: publishRegistered,
		publishConfirmed:  publishConfirmed,
		publishAccessed:   publishAccessed,
		logger:            logger,
	}
}

// Register registers a (name, email) identity for a link and sends the
// confirmation email.
func (h *RecipientsHandler) Register(ctx context.Context, req *RegisterRecipientRequest) (*RegisterRecipientResponse, error) {
	outcome, err := h.registration.Register(ctx, req.Body.Name, req.Body.Email, req.ID)
	if err != nil {
		switch {
		case errors.Is(err, recipients.ErrInvalid):
			return nil, huma.Error400BadRequest(err.Error())
		case errors.Is(err, shortener.ErrNotFound):
			return nil, huma.Error404NotFound("short link not found")
		case errors.Is(err, registration.ErrDeliveryFailed):
			// The pending token is committed; resubmitting re-sends.
			return nil, huma.Error500InternalServerError("failed to send confirmation email, please try again")
		default:
			h.logger.Error("failed to register recipient", zap.String("linkId", req.ID), zap.Error(err))

			return nil, huma.Error500InternalServerError("failed to register")
		}
	}

	meta := RequestMetaFromContext(ctx)
	event := &analytics.RecipientRegisteredEvent{
		LinkID:           req.ID,
		RecipientID:      outcome.RecipientID.String(),
		AlreadyConfirmed: outcome.AlreadyConfirmed,
		RegisteredAt:     time.Now().UTC(),
		ClientIP:         meta.ClientIP,
	}

	if err := h.publishRegistered(event); err != nil {
		h.logger.Error("failed to publish recipient registered event",
			zap.String("linkId", req.ID),
			zap.Error(err),
		)
	}

	resp := &RegisterRecipientResponse{}
	if outcome.AlreadyConfirmed {
		resp.Body.Status = "already_confirmed"
		resp.Body.Message = "You have already confirmed this link, go follow it!"
	} else {
		resp.Body.Status = "pending_confirmation"
		resp.Body.Message = "Check your email for a confirmation link."
	}

	return resp, nil
}

// Confirm flips a pending token to confirmed via the emailed link.
func (h *RecipientsHandler) Confirm(ctx context.Context, req *ConfirmRequest) (*ConfirmResponse, error) {
	linkID, err := h.registration.Confirm(ctx, req.LinkToken)
	if err != nil {
		switch {
		case errors.Is(err, tokens.ErrNotFound):
			return nil, huma.Error404NotFound("unknown confirmation token")
		case errors.Is(err, tokens.ErrExpired):
			return nil, huma.Error410Gone("confirmation token expired, register again to get a new one")
		default:
			h.logger.Error("failed to confirm token", zap.Error(err))

			return nil, huma.Error500InternalServerError("failed to confirm")
		}
	}

	event := &analytics.TokenConfirmedEvent{
		LinkID:      linkID,
		ConfirmedAt: time.Now().UTC(),
	}

	if err := h.publishConfirmed(event); err != nil {
		h.logger.Error("failed to publish token confirmed event",
			zap.String("linkId", linkID),
			zap.Error(err),
		)
	}

	resp := &ConfirmResponse{}
	resp.Body.LinkID = linkID
	resp.Body.Message = "Confirmed! You can now follow the link."

	return resp, nil
}

// AccessLink decides whether the claimed identity may follow the link. A
// confirmed recipient gets a 303 redirect to the target URL; an unknown
// identity gets a not_registered prompt; everything else is denied.
func (h *RecipientsHandler) AccessLink(ctx context.Context, req *AccessLinkRequest) (*AccessLinkResponse, error) {
	result, err := h.registration.Access(ctx, req.Body.Name, req.Body.Email, req.ID)
	if err != nil {
		switch {
		case errors.Is(err, recipients.ErrInvalid):
			return nil, huma.Error400BadRequest(err.Error())
		default:
			h.logger.Error("failed to check access", zap.String("linkId", req.ID), zap.Error(err))

			return nil, huma.Error500InternalServerError("failed to check access")
		}
	}

	switch result.Kind {
	case registration.AccessNotRegistered:
		resp := &AccessLinkResponse{Status: http.StatusOK}
		resp.Body.Status = "not_registered"
		resp.Body.Message = "Register with your name and email to receive a confirmation link."

		return resp, nil
	case registration.AccessDenied:
		return nil, huma.Error401Unauthorized("confirm your email before following this link")
	}

	meta := RequestMetaFromContext(ctx)
	event := &analytics.LinkAccessedEvent{
		LinkID:     req.ID,
		AccessedAt: time.Now().UTC(),
		ClientIP:   meta.ClientIP,
		UserAgent:  meta.UserAgent,
		Referrer:   meta.Referrer,
	}

	if err := h.publishAccessed(event); err != nil {
		h.logger.Error("failed to publish link accessed event",
			zap.String("linkId", req.ID),
			zap.Error(err),
		)
	}

	resp := &AccessLinkResponse{Status: http.StatusSeeOther}
	resp.Headers.Location = result.TargetURL
	resp.Body.Status = "redirect"

	return resp, nil
}
