package resource

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"whimsy/pkg/html"
	"whimsy/pkg/layout"
)

// Page is a loaded document: the response headers and the parsed tree.
// The tree is never mutated after Load returns.
type Page struct {
	URL     string
	Headers map[string]string
	Root    *html.Node

	mu          sync.Mutex
	engine      *layout.LayoutEngine
	width       int
	displayList layout.DisplayList
}

// NewPage wraps an already parsed tree.
func NewPage(url string, headers map[string]string, root *html.Node) *Page {
	if headers == nil {
		headers = map[string]string{}
	}
	return &Page{URL: url, Headers: headers, Root: root}
}

// DisplayList returns the layout of the page at width. The most recent
// result is reused until the engine or the width changes, so scrolling
// never re-runs layout.
func (p *Page) DisplayList(engine *layout.LayoutEngine, width int) layout.DisplayList {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.engine == engine && p.width == width {
		return p.displayList
	}
	p.displayList = engine.Layout(p.Root, width)
	p.engine = engine
	p.width = width
	return p.displayList
}

// Loader fetches and parses pages.
type Loader struct {
	fetcher Fetcher
	logger  *zap.Logger
}

// NewLoader creates a Loader. A nil logger discards output.
func NewLoader(fetcher Fetcher, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{fetcher: fetcher, logger: logger}
}

// Load fetches rawURL and parses the body. Transport errors are returned
// unchanged in their chain; markup is never an error.
func (l *Loader) Load(ctx context.Context, rawURL string) (*Page, error) {
	start := time.Now()
	resp, err := l.fetcher.Request(ctx, rawURL)
	if err != nil {
		l.logger.Warn("fetch failed", zap.String("url", rawURL), zap.Error(err))
		return nil, fmt.Errorf("loading %s: %w", rawURL, err)
	}
	l.logger.Debug("fetched",
		zap.String("url", rawURL),
		zap.Int("bytes", len(resp.Body)),
		zap.String("content_type", resp.Headers["content-type"]),
		zap.Duration("elapsed", time.Since(start)),
	)

	root := html.Parse(resp.Body)
	l.logger.Info("loaded page", zap.String("url", rawURL), zap.Duration("elapsed", time.Since(start)))
	return NewPage(rawURL, resp.Headers, root), nil
}
