package layout

import "whimsy/pkg/text"

// word places one word on the current line, breaking first if it would
// cross the right margin. A word wider than the whole line still gets a
// line of its own.
func (p *pass) word(word string, style text.Style) {
	face := p.engine.fonts.Face(style)
	w := face.Measure(word)
	if p.cursorX+w > p.width-p.engine.hstep {
		p.flush()
	}
	p.line = append(p.line, lineEntry{x: p.cursorX, word: word, style: style, face: face})
	p.cursorX += w + face.Measure(" ")
}

// flush commits the line buffer with a shared baseline. Every word's top
// is placed so its baseline lines up with the tallest word on the line.
func (p *pass) flush() {
	if len(p.line) == 0 {
		return
	}

	maxAscent, maxDescent := 0.0, 0.0
	for _, entry := range p.line {
		if a := entry.face.Ascent(); a > maxAscent {
			maxAscent = a
		}
		if d := entry.face.Descent(); d > maxDescent {
			maxDescent = d
		}
	}

	baseline := p.cursorY + leading*maxAscent
	for _, entry := range p.line {
		p.displayList = append(p.displayList, Item{
			X:     entry.x,
			Y:     baseline - entry.face.Ascent(),
			Word:  entry.word,
			Style: entry.style,
			Font:  entry.face,
		})
	}

	p.cursorX = p.engine.hstep
	p.cursorY = baseline + leading*maxDescent
	p.line = p.line[:0]
}
