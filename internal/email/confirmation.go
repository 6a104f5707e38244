package email

import (
	"context"
	"fmt"
	"net/url"
)

const confirmationSubject = "A friend wants to show you something!"

// ConfirmationLink builds the link a recipient must visit to confirm their
// email. The confirm endpoint accepts exactly the link_token parameter.
func ConfirmationLink(baseURL, token string) string {
	return fmt.Sprintf("%s/link_recipients/confirm?link_token=%s", baseURL, url.QueryEscape(token))
}

// Sender is the transport the mailer delivers through.
type Sender interface {
	Send(ctx context.Context, to, subject, htmlBody, textBody string) error
}

// ConfirmationMailer composes and sends confirmation emails for issued
// tokens.
type ConfirmationMailer struct {
	sender  Sender
	baseURL string
}

// NewConfirmationMailer creates a mailer that embeds confirmation links
// under the given public base URL.
func NewConfirmationMailer(sender Sender, baseURL string) *ConfirmationMailer {
	return &ConfirmationMailer{sender: sender, baseURL: baseURL}
}

// SendConfirmation sends the confirmation email for a token.
func (m *ConfirmationMailer) SendConfirmation(ctx context.Context, to, token string) error {
	link := ConfirmationLink(m.baseURL, token)

	textBody := fmt.Sprintf(
		"Welcome to the close friends url-shortener!\nVisit %s to verify your credentials to visit the link!",
		link,
	)
	htmlBody := fmt.Sprintf(
		`Welcome to the close friends url-shortener!<br />Click <a href=%q>here</a> to verify your credentials to visit the link!`,
		link,
	)

	return m.sender.Send(ctx, to, confirmationSubject, htmlBody, textBody)
}
