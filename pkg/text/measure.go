package text

import (
	"fmt"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

// Face measures text in one resolved font. Widths and metrics are in
// pixels.
type Face interface {
	Measure(s string) float64
	Ascent() float64
	Descent() float64
}

// FontSource resolves a style to a Face. Implementations must be safe for
// concurrent use.
type FontSource interface {
	Face(style Style) Face
}

// FontConfig holds paths to font files used for text measurement and
// rendering. Empty paths use the embedded Go fonts.
type FontConfig struct {
	Regular    string
	Bold       string
	Italic     string
	BoldItalic string
}

// FontPath returns the font path for the given style combination. Bold
// italic never falls back to the bold or italic file; without its own
// path it uses the embedded bold-italic face.
func (fc FontConfig) FontPath(bold, italic bool) string {
	if bold && italic {
		return fc.BoldItalic
	}
	if bold {
		return fc.Bold
	}
	if italic {
		return fc.Italic
	}
	return fc.Regular
}

// FontSet is the production FontSource. Faces are created on first use
// and cached per style.
type FontSet struct {
	config FontConfig

	mu    sync.Mutex
	faces map[Style]*TrueTypeFace
}

func NewFontSet(config FontConfig) *FontSet {
	return &FontSet{config: config, faces: make(map[Style]*TrueTypeFace)}
}

// Face returns the cached face for style, loading it if needed. Sizes
// below one pixel are clamped to one.
func (fs *FontSet) Face(style Style) Face {
	return fs.face(style)
}

// TrueTypeFace is like Face but returns the concrete type, for painters
// that need to draw with it.
func (fs *FontSet) TrueTypeFace(style Style) *TrueTypeFace {
	return fs.face(style)
}

func (fs *FontSet) face(style Style) *TrueTypeFace {
	if style.Size < 1 {
		style.Size = 1
	}
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if f, ok := fs.faces[style]; ok {
		return f
	}
	f := newTrueTypeFace(fs.load(style))
	fs.faces[style] = f
	return f
}

func (fs *FontSet) load(style Style) font.Face {
	bold := style.Weight == WeightBold
	italic := style.Slant == SlantItalic
	if path := fs.config.FontPath(bold, italic); path != "" {
		if face, err := gg.LoadFontFace(path, float64(style.Size)); err == nil {
			return face
		}
		// Fall through to the embedded font when the file is unusable.
	}
	return truetype.NewFace(embeddedFont(bold, italic), &truetype.Options{
		Size:    float64(style.Size),
		Hinting: font.HintingNone,
	})
}

var (
	embeddedOnce  sync.Once
	embeddedFonts [4]*truetype.Font
)

// embeddedFont returns one of the Go fonts shipped with x/image.
func embeddedFont(bold, italic bool) *truetype.Font {
	embeddedOnce.Do(func() {
		for i, ttf := range [][]byte{goregular.TTF, gobold.TTF, goitalic.TTF, gobolditalic.TTF} {
			f, err := truetype.Parse(ttf)
			if err != nil {
				panic(fmt.Sprintf("text: embedded font %d: %v", i, err))
			}
			embeddedFonts[i] = f
		}
	})
	i := 0
	if bold {
		i |= 1
	}
	if italic {
		i |= 2
	}
	return embeddedFonts[i]
}

// TrueTypeFace wraps a font.Face. font.Face implementations keep glyph
// caches, so every use goes through mu.
type TrueTypeFace struct {
	mu      sync.Mutex
	face    font.Face
	ascent  float64
	descent float64
}

func newTrueTypeFace(face font.Face) *TrueTypeFace {
	m := face.Metrics()
	return &TrueTypeFace{
		face:    face,
		ascent:  fixedToFloat64(m.Ascent),
		descent: fixedToFloat64(m.Descent),
	}
}

func (f *TrueTypeFace) Measure(s string) float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fixedToFloat64(font.MeasureString(f.face, s))
}

func (f *TrueTypeFace) Ascent() float64  { return f.ascent }
func (f *TrueTypeFace) Descent() float64 { return f.descent }

// DrawString draws s with its baseline at (x, baseline).
func (f *TrueTypeFace) DrawString(dc *gg.Context, s string, x, baseline float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	dc.SetFontFace(f.face)
	dc.DrawString(s, x, baseline)
}

func fixedToFloat64(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
