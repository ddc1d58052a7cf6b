// Command feedcommenter runs, schedules and inspects feed commenting runs
// from the terminal.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ibeckermayer/feedcommenter/internal/config"
	"github.com/ibeckermayer/feedcommenter/internal/logging"
)

var (
	configPath string
	verbose    bool
	devLog     bool

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "feedcommenter",
	Short: "Comment on the posts in your LinkedIn feed",
	Long: `feedcommenter opens your LinkedIn feed in Chrome, drafts a comment for each
post with an LLM following your style guide, and posts it.

The browser profile keeps your LinkedIn session between runs: log in once in
the window opened by "feedcommenter run" and later runs reuse it.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var created bool
		var err error
		cfg, created, err = config.Bootstrap(configPath)
		if err != nil {
			return err
		}

		level := cfg.Logging.Level
		if verbose {
			level = "debug"
		}
		logger, err = logging.New(level, devLog || cfg.Logging.Development)
		if err != nil {
			return err
		}
		if created {
			path, _ := config.ConfigPath()
			logger.Info("created default config", zap.String("path", path))
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default is the user config dir)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().BoolVar(&devLog, "dev-log", false, "human-readable console logs")

	rootCmd.AddCommand(runCmd, scheduleCmd, statsCmd, openCmd, botTestCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
