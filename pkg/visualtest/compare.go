package visualtest

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"whimsy/pkg/render"
)

// CompareResult contains the results of an image comparison
type CompareResult struct {
	Match           bool
	DifferentPixels int
	TotalPixels     int
	MaxDifference   int // largest channel difference, 0-255
}

// CompareOptions configures the image comparison
type CompareOptions struct {
	// Tolerance is the largest per-channel difference (0-255) that still
	// counts as equal.
	Tolerance int

	// FuzzyRadius lets a pixel match any expected pixel within this many
	// pixels, absorbing sub-pixel glyph shifts.
	FuzzyRadius int

	// MaxDifferentPercent passes a comparison whose differing pixels stay
	// at or below this share of the image.
	MaxDifferentPercent float64

	// DiffImagePath, when set, receives a diff image for failed
	// comparisons: matching pixels in gray, differing pixels in red.
	DiffImagePath string
}

func DefaultOptions() CompareOptions {
	return CompareOptions{Tolerance: 2}
}

// Compare compares two images pixel by pixel. Images of different sizes
// never match.
func Compare(actual, expected image.Image, opts CompareOptions) (*CompareResult, error) {
	bounds := actual.Bounds()
	if bounds != expected.Bounds() {
		return &CompareResult{}, fmt.Errorf("image dimensions differ: actual=%v, expected=%v", bounds, expected.Bounds())
	}

	result := &CompareResult{
		Match:       true,
		TotalPixels: bounds.Dx() * bounds.Dy(),
	}
	var diffImg *image.RGBA
	if opts.DiffImagePath != "" {
		diffImg = image.NewRGBA(bounds)
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			diff := channelDiff(actual.At(x, y), expected.At(x, y))
			if diff > result.MaxDifference {
				result.MaxDifference = diff
			}

			same := diff <= opts.Tolerance ||
				(opts.FuzzyRadius > 0 && fuzzyMatch(actual, expected, x, y, opts.FuzzyRadius, opts.Tolerance))
			if !same {
				result.Match = false
				result.DifferentPixels++
			}
			if diffImg != nil {
				diffImg.Set(x, y, diffColor(actual.At(x, y), same))
			}
		}
	}

	if !result.Match && opts.MaxDifferentPercent > 0 {
		pct := float64(result.DifferentPixels) / float64(result.TotalPixels) * 100
		result.Match = pct <= opts.MaxDifferentPercent
	}

	if diffImg != nil && !result.Match {
		if err := render.SavePNG(opts.DiffImagePath, diffImg); err != nil {
			return result, fmt.Errorf("saving diff image: %w", err)
		}
	}
	return result, nil
}

// ComparePNGFiles decodes two PNG files and compares them.
func ComparePNGFiles(actualPath, expectedPath string, opts CompareOptions) (*CompareResult, error) {
	actual, err := loadPNG(actualPath)
	if err != nil {
		return nil, err
	}
	expected, err := loadPNG(expectedPath)
	if err != nil {
		return nil, err
	}
	return Compare(actual, expected, opts)
}

func loadPNG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return img, nil
}

// fuzzyMatch reports whether actual's pixel at (x, y) matches any expected
// pixel within radius.
func fuzzyMatch(actual, expected image.Image, x, y, radius, tolerance int) bool {
	bounds := expected.Bounds()
	want := actual.At(x, y)
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			p := image.Pt(x+dx, y+dy)
			if !p.In(bounds) {
				continue
			}
			if channelDiff(want, expected.At(p.X, p.Y)) <= tolerance {
				return true
			}
		}
	}
	return false
}

// channelDiff returns the largest 8-bit channel difference between a and b.
func channelDiff(a, b color.Color) int {
	ar, ag, ab, aa := a.RGBA()
	br, bg, bb, ba := b.RGBA()
	return max(
		absDiff(ar, br),
		absDiff(ag, bg),
		absDiff(ab, bb),
		absDiff(aa, ba),
	)
}

func absDiff(a, b uint32) int {
	d := int(a>>8) - int(b>>8)
	if d < 0 {
		return -d
	}
	return d
}

func diffColor(c color.Color, same bool) color.Color {
	if !same {
		return color.RGBA{255, 0, 0, 255}
	}
	gray := color.GrayModel.Convert(c).(color.Gray)
	return color.RGBA{gray.Y, gray.Y, gray.Y, 255}
}
