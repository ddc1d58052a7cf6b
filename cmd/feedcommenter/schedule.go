package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ibeckermayer/feedcommenter/internal/app"
	"github.com/ibeckermayer/feedcommenter/internal/scheduler"
	"github.com/ibeckermayer/feedcommenter/internal/types"
)

var runNow bool

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Run daily at the configured times",
	Long: `Stay in the foreground and start a run at each time listed under
[schedule] times. A slot is skipped while the previous run is still going.`,
	Args: cobra.NoArgs,
	RunE: runSchedule,
}

func init() {
	scheduleCmd.Flags().BoolVar(&runNow, "now", false, "also run once immediately")
}

// scheduledJob runs with the config as loaded at startup
func scheduledJob(o *app.Orchestrator, rc types.RunConfig) scheduler.Job {
	return func(ctx context.Context) error {
		final, err := o.RunUnattended(ctx, rc)
		if err != nil {
			return err
		}
		logger.Info("scheduled run finished",
			zap.String("run_id", final.RunID),
			zap.String("state", string(final.State)),
			zap.Int("posted", final.CommentsPosted),
		)
		return nil
	}
}

func runSchedule(cmd *cobra.Command, args []string) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if cfg.Run.SpectatorMode {
		return errors.New("spectator mode needs someone at the keyboard; disable it for scheduled runs")
	}
	if len(cfg.Schedule.Times) == 0 {
		return errors.New("no [schedule] times configured")
	}

	rt, err := app.Build(cfg, logger)
	if err != nil {
		return err
	}
	defer rt.Close()

	job := scheduledJob(rt.Orchestrator, cfg.RunConfig())
	s, err := scheduler.FromConfig(cfg.Schedule, job, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s.Start()
	for _, j := range s.ListJobs() {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: next run %s\n", j.Name, j.NextRun.Format("Mon Jan 2 15:04"))
	}

	if runNow {
		if err := s.RunNow(ctx, "manual", job); err != nil {
			logger.Error("immediate run failed", zap.Error(err))
		}
	}

	<-ctx.Done()
	rt.Orchestrator.Stop(context.Background())
	<-s.Stop().Done()
	return nil
}
