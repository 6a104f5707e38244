package handlers

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

// RegisterRoutes registers all link-sharing routes.
func RegisterRoutes(api huma.API, links *LinksHandler, recipients *RecipientsHandler) {
	huma.Register(api, huma.Operation{
		Method:      http.MethodPost,
		Path:        "/create",
		Summary:     "Create short link",
		Description: "Creates a short link that gates the target URL behind recipient confirmation.",
		Tags:        []string{"Links"},
	}, links.CreateLink)

	huma.Register(api, huma.Operation{
		Method:      http.MethodGet,
		Path:        "/{id}",
		Summary:     "Link landing",
		Description: "Reports whether a short link exists without revealing the target URL.",
		Tags:        []string{"Links"},
	}, links.LinkLanding)

	huma.Register(api, huma.Operation{
		Method:      http.MethodPost,
		Path:        "/link_recipients/{id}",
		Summary:     "Register for a link",
		Description: "Registers a name and email for a link and emails a confirmation token.",
		Tags:        []string{"Recipients"},
	}, recipients.Register)

	huma.Register(api, huma.Operation{
		Method:      http.MethodGet,
		Path:        "/link_recipients/confirm",
		Summary:     "Confirm email",
		Description: "Confirms a recipient's email via the token from the confirmation link.",
		Tags:        []string{"Recipients"},
	}, recipients.Confirm)

	huma.Register(api, huma.Operation{
		Method:      http.MethodPost,
		Path:        "/get_link/{id}",
		Summary:     "Access a link",
		Description: "Redirects a confirmed recipient to the target URL.",
		Tags:        []string{"Recipients"},
	}, recipients.AccessLink)
}
