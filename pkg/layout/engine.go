package layout

import (
	"whimsy/pkg/html"
	"whimsy/pkg/text"
)

const (
	DefaultHStep    = 13.0
	DefaultVStep    = 18.0
	DefaultBaseSize = 12

	// leading scales the tallest ascent and descent on a line.
	leading = 1.25
)

// LayoutEngine holds layout configuration. Each call to Layout runs with
// fresh state, so one engine can serve concurrent passes when its
// FontSource is safe for concurrent use.
type LayoutEngine struct {
	fonts    text.FontSource
	hstep    float64
	vstep    float64
	baseSize int
}

type Option func(*LayoutEngine)

// WithMargins sets the horizontal margin (left and right) and the vertical
// line step, which is also the top margin and the paragraph gap.
func WithMargins(hstep, vstep float64) Option {
	return func(le *LayoutEngine) {
		le.hstep = hstep
		le.vstep = vstep
	}
}

// WithBaseSize sets the font size, in pixels, of unstyled text.
func WithBaseSize(size int) Option {
	return func(le *LayoutEngine) {
		le.baseSize = size
	}
}

func NewLayoutEngine(fonts text.FontSource, opts ...Option) *LayoutEngine {
	if fonts == nil {
		panic("layout: nil FontSource")
	}
	le := &LayoutEngine{
		fonts:    fonts,
		hstep:    DefaultHStep,
		vstep:    DefaultVStep,
		baseSize: DefaultBaseSize,
	}
	for _, opt := range opts {
		opt(le)
	}
	return le
}

// LineStep returns the vertical step, for callers filtering by scroll
// position.
func (le *LayoutEngine) LineStep() float64 {
	return le.vstep
}

// Layout lays out root at the given viewport width with default settings.
func Layout(root *html.Node, viewportWidth int, fonts text.FontSource) DisplayList {
	return NewLayoutEngine(fonts).Layout(root, viewportWidth)
}
