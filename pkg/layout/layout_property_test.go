package layout

import (
	"reflect"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"whimsy/pkg/html"
)

func TestLayoutProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.Rng.Seed(2468)
	parameters.MinSuccessfulTests = 150

	properties := gopter.NewProperties(parameters)
	wordList := gen.SliceOf(gen.AlphaString().SuchThat(func(s string) bool { return s != "" }))

	properties.Property("layout is idempotent", prop.ForAll(
		func(ws []string, width int) bool {
			root := html.Parse("<p>" + strings.Join(ws, " ") + "</p>")
			engine := NewLayoutEngine(fixedFonts{})
			return reflect.DeepEqual(engine.Layout(root, width), engine.Layout(root, width))
		},
		wordList,
		gen.IntRange(0, 1200),
	))

	properties.Property("every word is placed once, in order", prop.ForAll(
		func(ws []string, width int) bool {
			dl := Layout(html.Parse(strings.Join(ws, " ")), width, fixedFonts{})
			return words(dl) == strings.Join(ws, " ")
		},
		wordList,
		gen.IntRange(0, 1200),
	))

	properties.Property("words after the first on a line stay inside the margin", prop.ForAll(
		func(ws []string, width int) bool {
			dl := Layout(html.Parse(strings.Join(ws, " ")), width, fixedFonts{})
			for _, item := range dl {
				if item.X != DefaultHStep && item.X+item.Font.Measure(item.Word) > float64(width)-DefaultHStep {
					return false
				}
			}
			return true
		},
		wordList,
		gen.IntRange(0, 1200),
	))

	properties.Property("lines advance downward", prop.ForAll(
		func(ws []string, width int) bool {
			dl := Layout(html.Parse(strings.Join(ws, " ")), width, fixedFonts{})
			for i := 1; i < len(dl); i++ {
				if dl[i].Y < dl[i-1].Y {
					return false
				}
			}
			return true
		},
		wordList,
		gen.IntRange(0, 1200),
	))

	properties.TestingRun(t)
}
