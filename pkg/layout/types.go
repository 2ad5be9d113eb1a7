package layout

import "whimsy/pkg/text"

// Item is one positioned word. X and Y are the top-left corner of the
// word's box; its baseline is at Y + Font.Ascent().
type Item struct {
	X     float64
	Y     float64
	Word  string
	Style text.Style
	Font  text.Face
}

// DisplayList is the ordered output of one layout pass. It is never
// modified after Layout returns it.
type DisplayList []Item

// Height returns the bottom edge of the lowest item, or 0 when empty.
func (dl DisplayList) Height() float64 {
	height := 0.0
	for _, item := range dl {
		if bottom := item.Y + item.Font.Ascent() + item.Font.Descent(); bottom > height {
			height = bottom
		}
	}
	return height
}

// Visible returns the items that intersect the viewport
// [scrollY, scrollY+viewportHeight]. An item counts as intersecting when
// its top is within lineStep above scrollY. The result shares no storage
// with dl.
func (dl DisplayList) Visible(scrollY, viewportHeight, lineStep float64) DisplayList {
	visible := make(DisplayList, 0)
	for _, item := range dl {
		if item.Y > scrollY+viewportHeight {
			continue
		}
		if item.Y+lineStep < scrollY {
			continue
		}
		visible = append(visible, item)
	}
	return visible
}

// lineEntry is a word waiting in the line buffer for its line's baseline.
type lineEntry struct {
	x     float64
	word  string
	style text.Style
	face  text.Face
}
