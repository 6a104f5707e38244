package recipients_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abd0-omar/url-shortener-with-a-twist/internal/recipients"
)

func TestParseName(t *testing.T) {
	t.Run("accepts an ordinary name", func(t *testing.T) {
		name, err := recipients.ParseName("Ursula Le Guin")

		require.NoError(t, err)
		assert.Equal(t, "Ursula Le Guin", name)
	})

	t.Run("accepts a name of exactly 256 characters", func(t *testing.T) {
		_, err := recipients.ParseName(strings.Repeat("a", 256))

		assert.NoError(t, err)
	})

	t.Run("rejects a name longer than 256 characters", func(t *testing.T) {
		_, err := recipients.ParseName(strings.Repeat("a", 257))

		assert.ErrorIs(t, err, recipients.ErrInvalid)
	})

	t.Run("rejects an empty name", func(t *testing.T) {
		_, err := recipients.ParseName("")

		assert.ErrorIs(t, err, recipients.ErrInvalid)
	})

	t.Run("rejects a whitespace-only name", func(t *testing.T) {
		_, err := recipients.ParseName("   ")

		assert.ErrorIs(t, err, recipients.ErrInvalid)
	})

	t.Run("rejects each forbidden character", func(t *testing.T) {
		for _, c := range []string{"/", "(", ")", `"`, "<", ">", `\`, "{", "}"} {
			_, err := recipients.ParseName("name" + c)

			assert.ErrorIs(t, err, recipients.ErrInvalid, "character %q should be rejected", c)
		}
	})
}

func TestParseEmail(t *testing.T) {
	t.Run("accepts a valid email", func(t *testing.T) {
		email, err := recipients.ParseEmail("ursula@domain.com")

		require.NoError(t, err)
		assert.Equal(t, "ursula@domain.com", email)
	})

	t.Run("rejects an empty email", func(t *testing.T) {
		_, err := recipients.ParseEmail("")

		assert.ErrorIs(t, err, recipients.ErrInvalid)
	})

	t.Run("rejects an email missing the at symbol", func(t *testing.T) {
		_, err := recipients.ParseEmail("ursuladomain.com")

		assert.ErrorIs(t, err, recipients.ErrInvalid)
	})

	t.Run("rejects an email missing the subject", func(t *testing.T) {
		_, err := recipients.ParseEmail("@domain.com")

		assert.ErrorIs(t, err, recipients.ErrInvalid)
	})
}

func TestParse(t *testing.T) {
	t.Run("returns both fields validated", func(t *testing.T) {
		recipient, err := recipients.Parse("hamada", "hamada@yahoo.com")

		require.NoError(t, err)
		assert.Equal(t, "hamada", recipient.Name)
		assert.Equal(t, "hamada@yahoo.com", recipient.Email)
	})

	t.Run("fails on the name before touching the email", func(t *testing.T) {
		_, err := recipients.Parse("", "hamada@yahoo.com")

		assert.ErrorIs(t, err, recipients.ErrInvalid)
	})

	t.Run("fails on an invalid email", func(t *testing.T) {
		_, err := recipients.Parse("hamada", "not-an-email")

		assert.ErrorIs(t, err, recipients.ErrInvalid)
	})
}
