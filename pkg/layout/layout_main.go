package layout

import (
	"fmt"

	"whimsy/pkg/html"
	"whimsy/pkg/text"
)

// pass is the mutable state of a single Layout call.
type pass struct {
	engine      *LayoutEngine
	width       float64
	cursorX     float64
	cursorY     float64
	line        []lineEntry
	displayList DisplayList
}

// Layout walks root depth-first and returns the positioned words. The
// result depends on viewportWidth, so callers lay out again whenever the
// width changes. Malformed trees (nil root, attached root, broken parent
// links) and negative widths are programming errors and panic.
func (le *LayoutEngine) Layout(root *html.Node, viewportWidth int) DisplayList {
	if root == nil {
		panic("layout: nil root")
	}
	if root.Parent != nil {
		panic(fmt.Sprintf("layout: root <%s> still has a parent", root.TagName))
	}
	if viewportWidth < 0 {
		panic(fmt.Sprintf("layout: negative viewport width %d", viewportWidth))
	}

	p := &pass{
		engine:      le,
		width:       float64(viewportWidth),
		cursorX:     le.hstep,
		cursorY:     le.vstep,
		displayList: make(DisplayList, 0),
	}
	p.walk(root, text.Style{Size: le.baseSize})
	p.flush()
	return p.displayList
}

// walk lays out node with the inherited style and returns the style in
// effect after it. Close tags undo a fixed delta rather than restoring the
// value from before the open tag, so unbalanced nesting such as
// <b><b>x</b>y</b> leaves y in normal weight.
func (p *pass) walk(node *html.Node, style text.Style) text.Style {
	if node.Type == html.TextNode {
		for _, word := range text.SplitWords(node.Text) {
			p.word(word, style)
		}
		return style
	}

	style = p.open(node.TagName, style)
	for _, child := range node.Children {
		if child.Parent != node {
			panic(fmt.Sprintf("layout: %s child of <%s> has a dangling parent reference", child.Type, node.TagName))
		}
		style = p.walk(child, style)
	}
	return p.close(node.TagName, style)
}

func (p *pass) open(tag string, style text.Style) text.Style {
	switch tag {
	case "i":
		style.Slant = text.SlantItalic
	case "b":
		style.Weight = text.WeightBold
	case "small":
		style.Size -= 2
	case "big":
		style.Size += 4
	case "h1":
		style.Size += 8
		style.Weight = text.WeightBold
	case "br":
		p.flush()
	}
	return style
}

func (p *pass) close(tag string, style text.Style) text.Style {
	switch tag {
	case "i":
		style.Slant = text.SlantRoman
	case "b":
		style.Weight = text.WeightNormal
	case "small":
		style.Size += 2
	case "big":
		style.Size -= 4
	case "h1":
		style.Size -= 8
		style.Weight = text.WeightNormal
		p.flush()
		p.cursorY += p.engine.vstep
	case "p":
		p.flush()
		p.cursorY += p.engine.vstep
	}
	return style
}
