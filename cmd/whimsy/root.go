package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"whimsy/pkg/config"
	"whimsy/pkg/logging"
	"whimsy/pkg/resource"
)

// cli holds state shared by all subcommands once the root command has
// loaded the configuration.
type cli struct {
	cfgFile string
	cfg     *config.Config
	logger  *zap.Logger
}

func newRootCmd() (*cobra.Command, *cli) {
	c := &cli{}
	root := &cobra.Command{
		Use:   "whimsy",
		Short: "A tiny web page renderer",
		Long: `whimsy fetches a page, parses its HTML and lays out the words with
bold, italic, size and paragraph styling.

Configuration is read from whimsy.yaml (or --config, or WHIMSY_CONFIG_FILE),
a .env file and WHIMSY_* environment variables such as WHIMSY_VIEWPORT_WIDTH.`,
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
		PersistentPostRun: func(*cobra.Command, []string) {
			if c.logger != nil {
				_ = c.logger.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&c.cfgFile, "config", "", "config file (default is ./whimsy.yaml)")
	flags.Int("width", 800, "viewport width in pixels")
	flags.Int("height", 600, "viewport height in pixels")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("log-file", "", "also write JSON logs to this rotated file")

	root.AddCommand(newRenderCmd(c), newDumpCmd(c), newBrowseCmd(c))
	return root, c
}

func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(c.cfgFile, cmd.Flags())
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.LogOptions())
	if err != nil {
		return err
	}
	c.cfg = cfg
	c.logger = logger
	c.logger.Debug("configuration loaded",
		zap.Int("width", cfg.Viewport.Width),
		zap.Int("height", cfg.Viewport.Height),
		zap.Int("base_size", cfg.Layout.BaseSize),
	)
	return nil
}

func (c *cli) loader() *resource.Loader {
	return resource.NewLoader(resource.NewFetcher(c.cfg.NetOptions()), c.logger)
}

// log returns the configured logger, or a console logger when setup never
// ran or failed.
func (c *cli) log() *zap.Logger {
	if c.logger != nil {
		return c.logger
	}
	logger, err := logging.New(logging.Options{})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return zap.NewNop()
	}
	return logger
}
