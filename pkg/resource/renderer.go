package resource

import (
	"image"

	"whimsy/pkg/layout"
	"whimsy/pkg/render"
)

// PageRenderer lays out pages and paints them onto images.
type PageRenderer struct {
	engine *layout.LayoutEngine
}

func NewPageRenderer(engine *layout.LayoutEngine) *PageRenderer {
	return &PageRenderer{engine: engine}
}

func (r *PageRenderer) Engine() *layout.LayoutEngine {
	return r.engine
}

// Render paints page onto target. The viewport size is taken from the
// target bounds. scrollY is clamped to the document and the value actually
// used is returned.
func (r *PageRenderer) Render(page *Page, scrollY float64, target *image.RGBA) float64 {
	bounds := target.Bounds()
	dl := page.DisplayList(r.engine, bounds.Dx())
	scrollY = render.ClampScroll(scrollY, dl.Height(), float64(bounds.Dy()))

	render.NewRendererForImage(target).Render(dl, scrollY, r.engine.LineStep())
	return scrollY
}
