package net

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/net/html/charset"
)

const (
	DefaultUserAgent = "whimsy/1.0 (compatible; Go)"
	DefaultTimeout   = 30 * time.Second
	DefaultCacheTTL  = 5 * time.Minute
)

var (
	// ErrStatus is returned for any HTTP status other than 200.
	ErrStatus = errors.New("unexpected status")
	// ErrUnsupportedEncoding is returned when the response carries a
	// transfer-encoding or content-encoding header.
	ErrUnsupportedEncoding = errors.New("unsupported encoding")
	// ErrUnknownScheme is returned for URLs that are not http, https,
	// file or data.
	ErrUnknownScheme = errors.New("unknown scheme")
)

// Response is a fetched document. Header keys are lower-cased and values
// trimmed. Body is decoded to UTF-8 using the charset of the content type.
type Response struct {
	URL     string
	Headers map[string]string
	Body    string
}

// Options configures a Client. Zero fields take the package defaults; a
// negative CacheTTL disables caching.
type Options struct {
	UserAgent string
	Timeout   time.Duration
	CacheTTL  time.Duration
}

// Client fetches documents and caches successful HTTP responses in
// memory. It is safe for concurrent use.
type Client struct {
	http      *http.Client
	userAgent string
	cache     *cache.Cache
}

func NewClient(opts Options) *Client {
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.Timeout == 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.CacheTTL == 0 {
		opts.CacheTTL = DefaultCacheTTL
	}

	c := &Client{
		http: &http.Client{
			Timeout: opts.Timeout,
			// Bodies must arrive as sent; an encoded response is refused
			// rather than transparently decoded.
			Transport: &http.Transport{
				Proxy:              http.ProxyFromEnvironment,
				DisableCompression: true,
			},
			// Redirects are not followed; a 3xx fails the status check.
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		userAgent: opts.UserAgent,
	}
	if opts.CacheTTL > 0 {
		c.cache = cache.New(opts.CacheTTL, 2*opts.CacheTTL)
	}
	return c
}

var defaultClient = NewClient(Options{CacheTTL: -1})

// Request fetches rawURL with an uncached default client.
func Request(ctx context.Context, rawURL string) (*Response, error) {
	return defaultClient.Request(ctx, rawURL)
}

// Request fetches rawURL. Supported schemes are http, https, file and
// data. Any failure aborts the whole request; partial responses are never
// returned.
func (c *Client) Request(ctx context.Context, rawURL string) (*Response, error) {
	if IsNetworkURL(rawURL) {
		if cached, ok := c.lookup(rawURL); ok {
			return cached, nil
		}
		resp, maxAge, err := c.fetchHTTP(ctx, rawURL)
		if err != nil {
			return nil, err
		}
		c.store(rawURL, resp, maxAge)
		return resp, nil
	}

	scheme, _, ok := strings.Cut(rawURL, ":")
	if !ok {
		return nil, fmt.Errorf("fetching %q: %w", rawURL, ErrUnknownScheme)
	}
	switch strings.ToLower(scheme) {
	case "file":
		return fetchFile(ctx, rawURL)
	case "data":
		return fetchData(rawURL)
	default:
		return nil, fmt.Errorf("fetching %q: %w %q", rawURL, ErrUnknownScheme, scheme)
	}
}

func (c *Client) fetchHTTP(ctx context.Context, rawURL string) (*Response, time.Duration, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("creating request: %w", err)
	}
	req.Close = true
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("fetching %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, 0, fmt.Errorf("fetching %s: %w %d", rawURL, ErrStatus, resp.StatusCode)
	}

	headers := make(map[string]string, len(resp.Header)+1)
	for key, values := range resp.Header {
		headers[strings.ToLower(key)] = strings.TrimSpace(strings.Join(values, ", "))
	}
	// net/http moves transfer-encoding out of the header map.
	if len(resp.TransferEncoding) > 0 {
		headers["transfer-encoding"] = strings.Join(resp.TransferEncoding, ", ")
	}
	if err := checkEncoding(headers); err != nil {
		return nil, 0, fmt.Errorf("fetching %s: %w", rawURL, err)
	}

	body, err := decodeBody(resp.Body, headers["content-type"])
	if err != nil {
		return nil, 0, fmt.Errorf("reading %s: %w", rawURL, err)
	}
	return &Response{URL: rawURL, Headers: headers, Body: body}, cacheLifetime(headers["cache-control"]), nil
}

func checkEncoding(headers map[string]string) error {
	for _, key := range []string{"transfer-encoding", "content-encoding"} {
		if v, ok := headers[key]; ok {
			return fmt.Errorf("%w: %s %s", ErrUnsupportedEncoding, key, v)
		}
	}
	return nil
}

func decodeBody(r io.Reader, contentType string) (string, error) {
	decoded, err := charset.NewReader(r, contentType)
	if err != nil {
		return "", fmt.Errorf("decoding charset: %w", err)
	}
	body, err := io.ReadAll(decoded)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// cacheLifetime reads a cache-control header. It returns -1 for no-store,
// the max-age when present, and 0 (use the default) otherwise.
func cacheLifetime(cacheControl string) time.Duration {
	lifetime := time.Duration(0)
	for _, directive := range strings.Split(cacheControl, ",") {
		name, value, _ := strings.Cut(strings.TrimSpace(directive), "=")
		switch strings.ToLower(name) {
		case "no-store":
			return -1
		case "max-age":
			if secs, err := strconv.Atoi(strings.Trim(value, `"`)); err == nil {
				if secs <= 0 {
					return -1
				}
				lifetime = time.Duration(secs) * time.Second
			}
		}
	}
	return lifetime
}

func (c *Client) lookup(rawURL string) (*Response, bool) {
	if c.cache == nil {
		return nil, false
	}
	v, ok := c.cache.Get(rawURL)
	if !ok {
		return nil, false
	}
	return v.(*Response).clone(), true
}

func (c *Client) store(rawURL string, resp *Response, lifetime time.Duration) {
	if c.cache == nil || lifetime < 0 {
		return
	}
	if lifetime == 0 {
		lifetime = cache.DefaultExpiration
	}
	c.cache.Set(rawURL, resp.clone(), lifetime)
}

func (r *Response) clone() *Response {
	headers := make(map[string]string, len(r.Headers))
	for k, v := range r.Headers {
		headers[k] = v
	}
	return &Response{URL: r.URL, Headers: headers, Body: r.Body}
}

func fetchFile(ctx context.Context, rawURL string) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parsing %q: %w", rawURL, err)
	}
	path := u.Path
	if path == "" {
		path = u.Opaque
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	contentType := mime.TypeByExtension(filepath.Ext(path))
	if contentType == "" {
		contentType = "text/html"
	}
	body, err := decodeBody(f, contentType)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return &Response{
		URL: rawURL,
		Headers: map[string]string{
			"content-type":   contentType,
			"content-length": strconv.Itoa(len(body)),
		},
		Body: body,
	}, nil
}

// fetchData decodes data:[mediatype][;base64],payload.
func fetchData(rawURL string) (*Response, error) {
	meta, payload, ok := strings.Cut(strings.TrimPrefix(rawURL[len("data"):], ":"), ",")
	if !ok {
		return nil, fmt.Errorf("parsing %q: missing comma in data URL", rawURL)
	}

	raw, err := url.PathUnescape(payload)
	if err != nil {
		return nil, fmt.Errorf("parsing %q: %w", rawURL, err)
	}
	if base, found := strings.CutSuffix(meta, ";base64"); found {
		meta = base
		decoded, err := base64.StdEncoding.DecodeString(raw)
		if err != nil {
			return nil, fmt.Errorf("decoding %q: %w", rawURL, err)
		}
		raw = string(decoded)
	}

	contentType := meta
	if contentType == "" || strings.HasPrefix(contentType, ";") {
		contentType = "text/plain" + contentType
		if !strings.Contains(contentType, "charset") {
			contentType += ";charset=US-ASCII"
		}
	}
	body, err := decodeBody(strings.NewReader(raw), contentType)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", rawURL, err)
	}
	return &Response{
		URL: rawURL,
		Headers: map[string]string{
			"content-type":   contentType,
			"content-length": strconv.Itoa(len(body)),
		},
		Body: body,
	}, nil
}

// ResolveURL resolves a possibly-relative URI against a base URL.
// If ref is already absolute, it is returned as-is.
func ResolveURL(base, ref string) string {
	baseURL, err := url.Parse(base)
	if err != nil {
		return ref
	}
	refURL, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return baseURL.ResolveReference(refURL).String()
}

// IsNetworkURL reports whether s uses the http or https scheme. Network
// URLs are the only ones the client caches.
func IsNetworkURL(s string) bool {
	scheme, _, ok := strings.Cut(s, ":")
	return ok && (strings.EqualFold(scheme, "http") || strings.EqualFold(scheme, "https"))
}
