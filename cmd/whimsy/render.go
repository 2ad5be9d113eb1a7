package main

import (
	"context"
	"fmt"
	"image"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"whimsy/pkg/render"
	"whimsy/pkg/resource"
)

type renderOptions struct {
	output string
	scroll float64
	watch  bool
}

func newRenderCmd(c *cli) *cobra.Command {
	opts := &renderOptions{}
	cmd := &cobra.Command{
		Use:   "render <url|path>",
		Short: "Render a page to a PNG file",
		Example: `  whimsy render https://example.org -o example.png
  whimsy render page.html --width 640 --scroll 200
  whimsy render page.html --watch`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), resource.ResolveURL("", args[0]), opts)
		},
	}
	cmd.Flags().StringVarP(&opts.output, "output", "o", "output.png", "output PNG file path")
	cmd.Flags().Float64Var(&opts.scroll, "scroll", 0, "vertical scroll offset in pixels")
	cmd.Flags().BoolVar(&opts.watch, "watch", false, "re-render whenever a local file changes")
	return cmd
}

func (c *cli) runRender(ctx context.Context, rawURL string, opts *renderOptions) error {
	loader := c.loader()
	renderer := resource.NewPageRenderer(c.cfg.NewLayoutEngine())

	once := func() error {
		start := time.Now()
		page, err := loader.Load(ctx, rawURL)
		if err != nil {
			return err
		}
		target := image.NewRGBA(image.Rect(0, 0, c.cfg.Viewport.Width, c.cfg.Viewport.Height))
		scroll := renderer.Render(page, opts.scroll, target)
		if err := render.SavePNG(opts.output, target); err != nil {
			return fmt.Errorf("saving %s: %w", opts.output, err)
		}
		c.logger.Info("rendered",
			zap.String("url", rawURL),
			zap.String("output", opts.output),
			zap.Float64("scroll", scroll),
			zap.Duration("elapsed", time.Since(start)),
		)
		return nil
	}

	if err := once(); err != nil {
		if !opts.watch {
			return err
		}
		c.logger.Error("render failed", zap.Error(err))
	}
	if !opts.watch {
		return nil
	}

	path, ok := localPath(rawURL)
	if !ok {
		return fmt.Errorf("--watch needs a local file, got %s", rawURL)
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()
	c.logger.Info("watching for changes", zap.String("path", path))
	return watchFile(ctx, path, c.logger, once)
}

// localPath returns the filesystem path named by a file URL.
func localPath(rawURL string) (string, bool) {
	u, err := url.Parse(rawURL)
	if err != nil || !strings.EqualFold(u.Scheme, "file") || u.Path == "" {
		return "", false
	}
	return u.Path, true
}
