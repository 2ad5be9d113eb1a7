package render

import (
	"image"
	"io"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"

	"whimsy/pkg/layout"
	"whimsy/pkg/text"
)

const scrollbarWidth = 6.0

// Renderer paints display lists onto an RGBA canvas.
type Renderer struct {
	context *gg.Context
}

func NewRenderer(width, height int) *Renderer {
	return &Renderer{context: gg.NewContext(width, height)}
}

// NewRendererForImage paints directly into target.
func NewRendererForImage(target *image.RGBA) *Renderer {
	return &Renderer{context: gg.NewContextForRGBA(target)}
}

// Render clears the canvas and paints the part of dl that is visible with
// the viewport scrolled down by scrollY pixels. lineStep widens the
// visibility window at the top so partly scrolled-off lines still paint.
func (r *Renderer) Render(dl layout.DisplayList, scrollY, lineStep float64) {
	width := float64(r.context.Width())
	height := float64(r.context.Height())

	r.context.SetRGB(1, 1, 1)
	r.context.Clear()

	r.context.SetRGB(0, 0, 0)
	for _, item := range dl.Visible(scrollY, height, lineStep) {
		r.drawText(item, scrollY)
	}

	r.drawScrollbarIndicator(dl.Height(), scrollY, width, height)
}

// drawText draws one word with its baseline at Y + ascent, shifted up by
// the scroll offset.
func (r *Renderer) drawText(item layout.Item, scrollY float64) {
	baseline := item.Y + item.Font.Ascent() - scrollY
	if face, ok := item.Font.(*text.TrueTypeFace); ok {
		face.DrawString(r.context, item.Word, item.X, baseline)
		return
	}
	// Faces that cannot draw themselves get a fixed bitmap font.
	r.context.SetFontFace(basicfont.Face7x13)
	r.context.DrawString(item.Word, item.X, baseline)
}

// drawScrollbarIndicator draws a thumb on the right edge when the document
// is taller than the viewport.
func (r *Renderer) drawScrollbarIndicator(docHeight, scrollY, width, height float64) {
	if docHeight <= height || height <= 0 {
		return
	}
	thumbHeight := height * height / docHeight
	thumbY := scrollY * height / docHeight
	if thumbY+thumbHeight > height {
		thumbY = height - thumbHeight
	}

	r.context.SetRGBA(0.5, 0.5, 0.5, 0.6)
	r.context.DrawRectangle(width-scrollbarWidth, thumbY, scrollbarWidth, thumbHeight)
	r.context.Fill()
}

// ClampScroll limits scrollY so the viewport never starts above the
// document or past its last screenful.
func ClampScroll(scrollY, docHeight, viewportHeight float64) float64 {
	maxScroll := docHeight - viewportHeight
	if scrollY > maxScroll {
		scrollY = maxScroll
	}
	if scrollY < 0 {
		scrollY = 0
	}
	return scrollY
}

// Image returns the canvas. It is the renderer's backing image, not a copy.
func (r *Renderer) Image() image.Image {
	return r.context.Image()
}

func (r *Renderer) SavePNG(filename string) error {
	return r.context.SavePNG(filename)
}

// SavePNG writes img to filename.
func SavePNG(filename string, img image.Image) error {
	return gg.SavePNG(filename, img)
}

func (r *Renderer) EncodePNG(w io.Writer) error {
	return r.context.EncodePNG(w)
}
