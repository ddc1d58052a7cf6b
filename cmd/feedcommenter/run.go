package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ibeckermayer/feedcommenter/internal/app"
	"github.com/ibeckermayer/feedcommenter/internal/types"
)

var runFlags struct {
	maxPosts   int
	mode       string
	delay      time.Duration
	scroll     time.Duration
	spectator  bool
	headless   bool
	styleGuide string
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run once in the foreground",
	Long: `Open the feed, comment on up to --max-posts posts and exit.

Ctrl-C stops the run. Comments already posted are kept and counted. In
spectator mode the run waits for Enter once the feed has loaded.`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func init() {
	f := runCmd.Flags()
	f.IntVarP(&runFlags.maxPosts, "max-posts", "n", 0, "maximum comments to post")
	f.StringVarP(&runFlags.mode, "mode", "m", "", "processing mode: sequential or parallel")
	f.DurationVar(&runFlags.delay, "delay", 0, "pause between posts (sequential) or batches (parallel)")
	f.DurationVar(&runFlags.scroll, "scroll", 0, "how long to scroll the feed before processing")
	f.BoolVar(&runFlags.spectator, "spectator", false, "visible window, one post at a time in front")
	f.BoolVar(&runFlags.headless, "headless", false, "run Chrome without a window")
	f.StringVar(&runFlags.styleGuide, "style-guide", "", "style guide for generated comments")
}

// applyRunFlags overrides config values with the flags that were set
func applyRunFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	if f.Changed("max-posts") {
		cfg.Run.MaxPosts = runFlags.maxPosts
	}
	if f.Changed("mode") {
		cfg.Run.Mode = runFlags.mode
	}
	if f.Changed("delay") {
		cfg.Run.DelaySeconds = int(runFlags.delay / time.Second)
	}
	if f.Changed("scroll") {
		cfg.Run.ScrollSeconds = int(runFlags.scroll / time.Second)
	}
	if f.Changed("spectator") {
		cfg.Run.SpectatorMode = runFlags.spectator
	}
	if f.Changed("headless") {
		cfg.Browser.Headless = runFlags.headless
	}
	if f.Changed("style-guide") {
		cfg.Run.StyleGuide = runFlags.styleGuide
	}
}

func runRun(cmd *cobra.Command, args []string) error {
	applyRunFlags(cmd)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	rt, err := app.Build(cfg, logger)
	if err != nil {
		return err
	}
	defer rt.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	gate := make(chan struct{}, 1)
	go awaitEnter(ctx, cmd.InOrStdin(), out, gate, rt.Orchestrator)

	final, err := rt.Orchestrator.Run(ctx, cfg.RunConfig(), func(s types.Status) {
		fmt.Fprintln(out, s.Headline())
		if s.AwaitingAck {
			select {
			case gate <- struct{}{}:
			default:
			}
		}
	})
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "\n%s\n%s\n", final.Message, final.Totals())
	if final.Generation != nil {
		fmt.Fprintf(out, "Last generation failure: %s\n", final.Generation.Error())
	}
	if final.State == types.StateError {
		return errors.New(final.Message)
	}
	return nil
}

// awaitEnter releases the spectator gate when the user presses Enter
func awaitEnter(ctx context.Context, in io.Reader, out io.Writer, gate <-chan struct{}, o *app.Orchestrator) {
	select {
	case <-gate:
	case <-ctx.Done():
		return
	}
	fmt.Fprintln(out, "Feed loaded. Press Enter to begin...")

	line := make(chan struct{})
	go func() {
		bufio.NewReader(in).ReadString('\n')
		close(line)
	}()
	select {
	case <-line:
	case <-ctx.Done():
		return
	}
	if err := o.Acknowledge(); err != nil {
		logger.Warn("could not begin", zap.Error(err))
	}
}
