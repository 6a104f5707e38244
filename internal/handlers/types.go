package handlers

// CreateLinkRequest is the request body for shortening a URL.
type CreateLinkRequest struct {
	Body struct {
		TargetURL string `doc:"The URL to gate behind the short link" example:"https://www.example.com" json:"targetUrl"`
	}
}

// CreateLinkResponse is the response for a successfully created short link.
type CreateLinkResponse struct {
	Headers struct {
		Location string `doc:"The short link location" header:"Location"`
	}
	Body struct {
		ID        string `doc:"The short link id"             example:"pKzW3A"                        json:"id"`
		ShortURL  string `doc:"The full short link"           example:"http://localhost:8888/pKzW3A"  json:"shortUrl"`
		TargetURL string `doc:"The normalized target URL"     example:"https://www.example.com/"      json:"targetUrl"`
	}
}

// LinkLandingRequest asks whether a short link exists so the caller can
// render the credentials form.
type LinkLandingRequest struct {
	ID string `doc:"The short link id" example:"pKzW3A" path:"id"`
}

// LinkLandingResponse confirms the short link exists. It deliberately does
// not reveal the target URL.
type LinkLandingResponse struct {
	Body struct {
		ID string `doc:"The short link id" json:"id"`
	}
}

// RecipientCredentials is the identity a recipient submits when registering
// for or accessing a link.
type RecipientCredentials struct {
	Name  string `doc:"Display name"   example:"hamada"            json:"name"`
	Email string `doc:"Email address"  example:"hamada@yahoo.com"  json:"email"`
}

// RegisterRecipientRequest registers a recipient for a link.
type RegisterRecipientRequest struct {
	ID   string `doc:"The short link id" path:"id"`
	Body RecipientCredentials
}

// RegisterRecipientResponse reports the registration outcome.
type RegisterRecipientResponse struct {
	Body struct {
		Status  string `doc:"pending_confirmation or already_confirmed" json:"status"`
		Message string `doc:"Human-readable outcome"                    json:"message"`
	}
}

// ConfirmRequest carries the token from the emailed confirmation link.
type ConfirmRequest struct {
	LinkToken string `doc:"The confirmation token from the email" query:"link_token" required:"true"`
}

// ConfirmResponse reports a successful confirmation.
type ConfirmResponse struct {
	Body struct {
		LinkID  string `doc:"The link the token gates" json:"linkId"`
		Message string `doc:"Human-readable outcome"   json:"message"`
	}
}

// AccessLinkRequest asks for access to a link with claimed credentials.
type AccessLinkRequest struct {
	ID   string `doc:"The short link id" path:"id"`
	Body RecipientCredentials
}

// AccessLinkResponse is either a redirect to the target URL (303 with
// Location set) or a not-registered prompt.
type AccessLinkResponse struct {
	Status  int
	Headers struct {
		Location string `doc:"The target URL when access is granted" header:"Location"`
	}
	Body struct {
		Status  string `doc:"redirect or not_registered" json:"status"`
		Message string `doc:"Human-readable outcome"     json:"message,omitempty"`
	}
}
