package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"whimsy/pkg/layout"
	"whimsy/pkg/resource"
)

func newDumpCmd(c *cli) *cobra.Command {
	var tree bool
	cmd := &cobra.Command{
		Use:   "dump <url|path>",
		Short: "Print the display list, or the parsed tree with --tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := c.loader().Load(cmd.Context(), resource.ResolveURL("", args[0]))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if tree {
				_, err := io.WriteString(out, page.Root.Dump())
				return err
			}
			return writeDisplayList(out, page.DisplayList(c.cfg.NewLayoutEngine(), c.cfg.Viewport.Width))
		},
	}
	cmd.Flags().BoolVar(&tree, "tree", false, "print the parsed node tree instead of the layout")
	return cmd
}

// writeDisplayList prints one item per line: position, style and word.
func writeDisplayList(w io.Writer, dl layout.DisplayList) error {
	for _, item := range dl {
		if _, err := fmt.Fprintf(w, "%7.2f %7.2f  %-18s %s\n", item.X, item.Y, item.Style, item.Word); err != nil {
			return err
		}
	}
	return nil
}
