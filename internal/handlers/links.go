package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/danielgtaylor/huma/v2"
	"go.uber.org/zap"

	"github.com/abd0-omar/url-shortener-with-a-twist/internal/analytics"
	"github.com/abd0-omar/url-shortener-with-a-twist/internal/messaging"
	"github.com/abd0-omar/url-shortener-with-a-twist/internal/shortener"
)

// LinksHandler handles short link creation and the landing lookup.
type LinksHandler struct {
	links              *shortener.Service
	baseURL            string
	publishLinkCreated messaging.Publish[analytics.LinkCreatedEvent]
	logger             *zap.Logger
}

// NewLinksHandler creates a new links handler.
func NewLinksHandler(
	links *shortener.Service,
	baseURL string,
	publishLinkCreated messaging.Publish[analytics.LinkCreatedEvent],
	logger *zap.Logger,
) *LinksHandler {
	return &LinksHandler{
		links:              links,
		baseURL:            baseURL,
		publishLinkCreated: publishLinkCreated,
		logger:             logger,
	}
}

// CreateLink shortens a target URL behind a fresh short id.
func (h *LinksHandler) CreateLink(ctx context.Context, req *CreateLinkRequest) (*CreateLinkResponse, error) {
	link, err := h.links.Create(ctx, req.Body.TargetURL)
	if err != nil {
		switch {
		case errors.Is(err, shortener.ErrInvalidURL):
			return nil, huma.Error400BadRequest(err.Error())
		case errors.Is(err, shortener.ErrIDExhausted):
			return nil, huma.Error503ServiceUnavailable("could not mint a unique short id, try again")
		default:
			h.logger.Error("failed to create link", zap.Error(err))

			return nil, huma.Error500InternalServerError("failed to create link")
		}
	}

	meta := RequestMetaFromContext(ctx)
	event := &analytics.LinkCreatedEvent{
		LinkID:    link.ID,
		TargetURL: link.TargetURL,
		CreatedAt: link.CreatedAt,
		ClientIP:  meta.ClientIP,
		UserAgent: meta.UserAgent,
	}

	if err := h.publishLinkCreated(event); err != nil {
		h.logger.Error("failed to publish link created event",
			zap.String("linkId", link.ID),
			zap.Error(err),
		)
	}

	shortURL := fmt.Sprintf("%s/%s", h.baseURL, link.ID)

	resp := &CreateLinkResponse{}
	resp.Headers.Location = shortURL
	resp.Body.ID = link.ID
	resp.Body.ShortURL = shortURL
	resp.Body.TargetURL = link.TargetURL

	return resp, nil
}

// LinkLanding reports whether a short link exists. The target URL stays
// hidden until the recipient passes the access check.
func (h *LinksHandler) LinkLanding(ctx context.Context, req *LinkLandingRequest) (*LinkLandingResponse, error) {
	if _, err := h.links.Resolve(ctx, req.ID); err != nil {
		if errors.Is(err, shortener.ErrNotFound) {
			return nil, huma.Error404NotFound("short link not found")
		}

		h.logger.Error("failed to look up link", zap.String("linkId", req.ID), zap.Error(err))

		return nil, huma.Error500InternalServerError("failed to look up link")
	}

	resp := &LinkLandingResponse{}
	resp.Body.ID = req.ID

	return resp, nil
}
