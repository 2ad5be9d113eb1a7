package visualtest

import (
	"context"
	"fmt"
	"image"
	"net/url"
	"path/filepath"

	"whimsy/pkg/html"
	"whimsy/pkg/layout"
	"whimsy/pkg/render"
	"whimsy/pkg/resource"
	"whimsy/pkg/text"
	stdnet "whimsy/std/net"
)

var fonts = text.NewFontSet(text.FontConfig{})

// RenderHTML renders markup at the top of a width x height viewport using
// the embedded fonts and default metrics.
func RenderHTML(markup string, width, height int) *image.RGBA {
	target := image.NewRGBA(image.Rect(0, 0, width, height))
	page := resource.NewPage("", nil, html.Parse(markup))
	resource.NewPageRenderer(layout.NewLayoutEngine(fonts)).Render(page, 0, target)
	return target
}

// RenderHTMLFile renders a local HTML file to a PNG.
func RenderHTMLFile(htmlPath, outputPath string, width, height int) error {
	abs, err := filepath.Abs(htmlPath)
	if err != nil {
		return err
	}
	resp, err := stdnet.Request(context.Background(), (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}).String())
	if err != nil {
		return fmt.Errorf("reading %s: %w", htmlPath, err)
	}
	return render.SavePNG(outputPath, RenderHTML(resp.Body, width, height))
}
