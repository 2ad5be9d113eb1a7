package main

import (
	"os"

	"go.uber.org/zap"
)

func main() {
	root, c := newRootCmd()
	if err := root.Execute(); err != nil {
		c.log().Error("command failed", zap.Error(err))
		_ = c.log().Sync()
		os.Exit(1)
	}
}
