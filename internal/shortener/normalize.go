package shortener

import (
	"fmt"
	"net/url"
	"strings"
)

// NormalizeURL parses a target URL and re-serializes it into its canonical
// form. Only absolute http(s) URLs with a host are accepted; anything else
// is rejected with ErrInvalidURL. A bare origin gains a trailing slash,
// e.g. "https://example.com" becomes "https://example.com/".
func NormalizeURL(rawURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidURL, rawURL)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("%w: %q", ErrInvalidURL, rawURL)
	}

	if u.Host == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidURL, rawURL)
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)

	if u.Path == "" {
		u.Path = "/"
	}

	return u.String(), nil
}
