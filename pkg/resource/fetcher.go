package resource

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	stdnet "whimsy/std/net"
)

// Fetcher retrieves documents by URL.
type Fetcher interface {
	Request(ctx context.Context, rawURL string) (*stdnet.Response, error)
}

// NewFetcher returns a caching network client.
func NewFetcher(opts stdnet.Options) Fetcher {
	return stdnet.NewClient(opts)
}

// ResolveURL turns user input into a fetchable URL. Input with a scheme is
// returned as-is. Anything else is resolved against base when one is
// given, or treated as a local path when it names an existing file.
func ResolveURL(base, input string) string {
	input = strings.TrimSpace(input)
	if hasScheme(input) {
		return input
	}
	if base != "" {
		return stdnet.ResolveURL(base, input)
	}
	if _, err := os.Stat(input); err == nil {
		if abs, err := filepath.Abs(input); err == nil {
			return (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}).String()
		}
	}
	return input
}

func hasScheme(s string) bool {
	scheme, _, ok := strings.Cut(s, ":")
	if !ok || scheme == "" {
		return false
	}
	for i, c := range scheme {
		switch {
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
		case i > 0 && ('0' <= c && c <= '9' || c == '+' || c == '-' || c == '.'):
		default:
			return false
		}
	}
	// A single letter is a Windows drive, not a scheme.
	return len(scheme) > 1
}
