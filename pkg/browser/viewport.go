package browser

import (
	"fyne.io/fyne/v2"

	"whimsy/pkg/render"
)

// ScrollStep is how far one arrow key press scrolls, in pixels.
const ScrollStep = 100.0

// viewport tracks the scroll offset of the visible window over a
// document. The offset is kept within [0, docHeight-height].
type viewport struct {
	scrollY   float64
	height    float64
	docHeight float64
}

func (v *viewport) scrollBy(delta float64) {
	v.scrollY = render.ClampScroll(v.scrollY+delta, v.docHeight, v.height)
}

// resize records a new viewport height and document height, keeping the
// current offset when it is still valid.
func (v *viewport) resize(height, docHeight float64) {
	v.height = height
	v.docHeight = docHeight
	v.scrollBy(0)
}

func (v *viewport) reset() {
	v.scrollY = 0
}

// key applies a navigation key and reports whether the offset changed.
func (v *viewport) key(name fyne.KeyName) bool {
	before := v.scrollY
	page := v.height - ScrollStep
	if page < ScrollStep {
		page = ScrollStep
	}

	switch name {
	case fyne.KeyDown:
		v.scrollBy(ScrollStep)
	case fyne.KeyUp:
		v.scrollBy(-ScrollStep)
	case fyne.KeyPageDown, fyne.KeySpace:
		v.scrollBy(page)
	case fyne.KeyPageUp:
		v.scrollBy(-page)
	case fyne.KeyHome:
		v.scrollY = 0
	case fyne.KeyEnd:
		v.scrollBy(v.docHeight)
	}
	return v.scrollY != before
}
