package main

import (
	"fyne.io/fyne/v2/app"
	"github.com/spf13/cobra"

	"whimsy/pkg/browser"
	"whimsy/pkg/resource"
)

func newBrowseCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "browse [url|path]",
		Short: "Open a browser window",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b := browser.New(app.New(), c.loader(), resource.NewPageRenderer(c.cfg.NewLayoutEngine()), c.logger, browser.Options{
				Width:  c.cfg.Viewport.Width,
				Height: c.cfg.Viewport.Height,
			})
			if len(args) == 1 {
				b.Navigate(resource.ResolveURL("", args[0]))
			}
			b.ShowAndRun()
			return nil
		},
	}
}
