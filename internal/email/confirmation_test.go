package email_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abd0-omar/url-shortener-with-a-twist/internal/email"
)

type capturedEmail struct {
	to       string
	subject  string
	htmlBody string
	textBody string
}

type fakeSender struct {
	sent []capturedEmail
}

func (f *fakeSender) Send(_ context.Context, to, subject, htmlBody, textBody string) error {
	f.sent = append(f.sent, capturedEmail{
		to:       to,
		subject:  subject,
		htmlBody: htmlBody,
		textBody: textBody,
	})

	return nil
}

func TestConfirmationLink(t *testing.T) {
	t.Run("builds the confirm url with the token", func(t *testing.T) {
		link := email.ConfirmationLink("http://localhost:8888", "mytoken123")

		assert.Equal(t, "http://localhost:8888/link_recipients/confirm?link_token=mytoken123", link)
	})

	t.Run("query-escapes the token", func(t *testing.T) {
		link := email.ConfirmationLink("http://localhost:8888", "a b&c")

		assert.Equal(t, "http://localhost:8888/link_recipients/confirm?link_token=a+b%26c", link)
	})
}

func TestConfirmationMailer_SendConfirmation(t *testing.T) {
	t.Run("sends both bodies containing the confirmation link", func(t *testing.T) {
		sender := &fakeSender{}
		mailer := email.NewConfirmationMailer(sender, "http://localhost:8888")

		err := mailer.SendConfirmation(context.Background(), "hamada@yahoo.com", "mytoken123")

		require.NoError(t, err)
		require.Len(t, sender.sent, 1)

		sent := sender.sent[0]
		link := email.ConfirmationLink("http://localhost:8888", "mytoken123")

		assert.Equal(t, "hamada@yahoo.com", sent.to)
		assert.Equal(t, "A friend wants to show you something!", sent.subject)
		assert.Contains(t, sent.textBody, link)
		assert.Contains(t, sent.htmlBody, link)
	})
}
