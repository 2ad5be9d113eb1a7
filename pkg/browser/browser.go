// Package browser is the interactive window: a URL bar, the rendered page
// and a status line. Pages are loaded off the UI goroutine and swapped in
// with fyne.Do.
package browser

import (
	"context"
	"fmt"
	"image"
	"image/draw"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"whimsy/pkg/resource"
)

const loadTimeout = time.Minute

type Options struct {
	Width  int
	Height int
}

type Browser struct {
	window   fyne.Window
	loader   *resource.Loader
	renderer *resource.PageRenderer
	logger   *zap.Logger

	raster   *canvas.Raster
	urlEntry *widget.Entry
	status   *widget.Label

	mu       sync.Mutex
	page     *resource.Page
	viewport viewport
}

// New builds the browser window on app. A nil logger discards output.
func New(app fyne.App, loader *resource.Loader, renderer *resource.PageRenderer, logger *zap.Logger, opts Options) *Browser {
	if logger == nil {
		logger = zap.NewNop()
	}
	b := &Browser{
		window:   app.NewWindow("whimsy"),
		loader:   loader,
		renderer: renderer,
		logger:   logger,
		status:   widget.NewLabel("Enter a URL and press Enter"),
		urlEntry: widget.NewEntry(),
	}
	b.raster = canvas.NewRaster(b.paint)

	b.urlEntry.SetPlaceHolder("https://example.com")
	b.urlEntry.OnSubmitted = func(input string) {
		b.window.Canvas().Unfocus()
		b.Navigate(resource.ResolveURL("", input))
	}

	topBar := container.NewBorder(nil, nil, nil, nil, b.urlEntry)
	b.window.SetContent(container.NewBorder(topBar, b.status, nil, nil, b.raster))
	b.window.Canvas().SetOnTypedKey(b.typedKey)
	b.window.Resize(fyne.NewSize(float32(opts.Width), float32(opts.Height)))
	b.window.Canvas().Focus(b.urlEntry)
	return b
}

func (b *Browser) Window() fyne.Window {
	return b.window
}

func (b *Browser) ShowAndRun() {
	b.window.ShowAndRun()
}

// Navigate loads rawURL in the background. On failure the current page
// stays and the error goes to the status line.
func (b *Browser) Navigate(rawURL string) {
	b.urlEntry.SetText(rawURL)
	b.status.SetText("Loading " + rawURL + "...")
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		err := b.load(ctx, rawURL)
		fyne.Do(func() { b.finishLoad(rawURL, err) })
	}()
}

// load fetches and parses rawURL and makes it the current page.
func (b *Browser) load(ctx context.Context, rawURL string) error {
	page, err := b.loader.Load(ctx, rawURL)
	if err != nil {
		return err
	}
	b.mu.Lock()
	b.page = page
	b.viewport.reset()
	b.mu.Unlock()
	return nil
}

func (b *Browser) finishLoad(rawURL string, err error) {
	if err != nil {
		b.logger.Error("navigation failed", zap.String("url", rawURL), zap.Error(err))
		b.status.SetText("Error: " + err.Error())
		return
	}
	b.status.SetText(rawURL)
	b.window.SetTitle(fmt.Sprintf("whimsy - %s", rawURL))
	b.raster.Refresh()
}

func (b *Browser) typedKey(ev *fyne.KeyEvent) {
	b.mu.Lock()
	changed := b.viewport.key(ev.Name)
	b.mu.Unlock()
	if changed {
		b.raster.Refresh()
	}
}

// paint is the raster generator. Layout reruns only when w differs from
// the previous call; scrolling reuses the cached display list.
func (b *Browser) paint(w, h int) image.Image {
	target := image.NewRGBA(image.Rect(0, 0, w, h))
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.page == nil {
		draw.Draw(target, target.Bounds(), image.White, image.Point{}, draw.Src)
		return target
	}
	dl := b.page.DisplayList(b.renderer.Engine(), w)
	b.viewport.resize(float64(h), dl.Height())
	b.viewport.scrollY = b.renderer.Render(b.page, b.viewport.scrollY, target)
	return target
}
