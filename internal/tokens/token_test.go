package tokens_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abd0-omar/url-shortener-with-a-twist/internal/tokens"
)

func TestStatus(t *testing.T) {
	t.Run("round-trips through its string form", func(t *testing.T) {
		for _, status := range []tokens.Status{
			tokens.StatusAbsent,
			tokens.StatusPending,
			tokens.StatusConfirmed,
		} {
			assert.Equal(t, status, tokens.ParseStatus(status.String()))
		}
	})

	t.Run("parses unknown strings as absent", func(t *testing.T) {
		assert.Equal(t, tokens.StatusAbsent, tokens.ParseStatus("garbage"))
		assert.Equal(t, tokens.StatusAbsent, tokens.ParseStatus(""))
	})
}

func TestLinkToken_Expired(t *testing.T) {
	now := time.Now()
	token := tokens.LinkToken{Expiration: now}

	assert.False(t, token.Expired(now))
	assert.False(t, token.Expired(now.Add(-time.Second)))
	assert.True(t, token.Expired(now.Add(time.Second)))
}

func TestNewGenerator(t *testing.T) {
	gen, err := tokens.NewGenerator()
	require.NoError(t, err)

	t.Run("produces 25-character alphanumeric tokens", func(t *testing.T) {
		token := gen()

		assert.Len(t, token, tokens.Length)
		assert.Regexp(t, `^[0-9A-Za-z]+$`, token)
	})

	t.Run("produces distinct tokens", func(t *testing.T) {
		assert.NotEqual(t, gen(), gen())
	})
}
