package main

import (
	"fmt"
	"os"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"

	"github.com/ibeckermayer/feedcommenter/internal/config"
)

var openCmd = &cobra.Command{
	Use:       "open <config|data>",
	Short:     "Open the config file or the data directory",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"config", "data"},
	RunE: func(cmd *cobra.Command, args []string) error {
		var path string
		var err error

		switch args[0] {
		case "config":
			path = configPath
			if path == "" {
				path, err = config.ConfigPath()
			}
		case "data":
			path, err = config.DataDir()
			if err == nil {
				err = os.MkdirAll(path, 0700)
			}
		}
		if err != nil {
			return fmt.Errorf("failed to get path: %w", err)
		}

		if err := browser.OpenFile(path); err != nil {
			return fmt.Errorf("failed to open %s: %w", path, err)
		}
		return nil
	},
}
