package text

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFontSet_EmbeddedMetrics(t *testing.T) {
	fs := NewFontSet(FontConfig{})
	face := fs.Face(Style{Size: 16})

	assert.Greater(t, face.Ascent(), 0.0)
	assert.Greater(t, face.Descent(), 0.0)
	assert.Greater(t, face.Measure("hello"), 0.0)
	assert.Equal(t, 0.0, face.Measure(""))
}

func TestFontSet_WidthGrowsWithSizeAndWeight(t *testing.T) {
	fs := NewFontSet(FontConfig{})
	small := fs.Face(Style{Size: 12}).Measure("Whimsical")
	large := fs.Face(Style{Size: 24}).Measure("Whimsical")
	bold := fs.Face(Style{Size: 12, Weight: WeightBold}).Measure("Whimsical")

	assert.Greater(t, large, small)
	assert.Greater(t, bold, small)
	assert.Greater(t, fs.Face(Style{Size: 24}).Ascent(), fs.Face(Style{Size: 12}).Ascent())
}

func TestFontSet_CachesFaces(t *testing.T) {
	fs := NewFontSet(FontConfig{})
	a := fs.Face(Style{Size: 12, Slant: SlantItalic})
	b := fs.Face(Style{Size: 12, Slant: SlantItalic})
	c := fs.Face(Style{Size: 12})
	assert.Same(t, a, b)
	assert.NotSame(t, a, c)
}

func TestFontSet_ClampsSize(t *testing.T) {
	fs := NewFontSet(FontConfig{})
	assert.Same(t, fs.Face(Style{Size: 1}), fs.Face(Style{Size: -6}))
}

func TestFontSet_MissingFileFallsBack(t *testing.T) {
	fs := NewFontSet(FontConfig{Regular: "/nonexistent/font.ttf"})
	embedded := NewFontSet(FontConfig{})
	require.InDelta(t, embedded.Face(Style{Size: 14}).Measure("abc"), fs.Face(Style{Size: 14}).Measure("abc"), 0.001)
}

func TestFontSet_ConcurrentUse(t *testing.T) {
	fs := NewFontSet(FontConfig{})
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			style := Style{Size: 10 + i%3, Weight: Weight(i % 2)}
			for j := 0; j < 50; j++ {
				fs.Face(style).Measure("concurrent words")
			}
		}(i)
	}
	wg.Wait()
}

func TestFontConfig_FontPath(t *testing.T) {
	fc := FontConfig{Regular: "r", Bold: "b", Italic: "i", BoldItalic: "bi"}
	assert.Equal(t, "r", fc.FontPath(false, false))
	assert.Equal(t, "b", fc.FontPath(true, false))
	assert.Equal(t, "i", fc.FontPath(false, true))
	assert.Equal(t, "bi", fc.FontPath(true, true))
	assert.Equal(t, "", FontConfig{Bold: "b", Italic: "i"}.FontPath(true, true), "bold italic keeps both traits via the embedded face")
}

func TestSplitWords(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{}},
		{"   ", []string{}},
		{"one", []string{"one"}},
		{"  one two\tthree\n", []string{"one", "two", "three"}},
		{"a\u00a0b c", []string{"a\u00a0b", "c"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SplitWords(tt.in), "SplitWords(%q)", tt.in)
	}
}

func TestStyleString(t *testing.T) {
	assert.Equal(t, "20px bold italic", Style{Size: 20, Weight: WeightBold, Slant: SlantItalic}.String())
}
