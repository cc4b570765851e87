package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"stock-sentiment/internal/logger"
	"stock-sentiment/internal/news"
	"stock-sentiment/internal/snapshot"
)

var (
	flagOutput   string
	flagSchedule string
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Write the dashboard to a static JSON file",
	Long: "Fetches both feeds once and writes the dashboard, the full feed and the ticker " +
		"index to a JSON file. With --schedule it keeps rewriting the file until interrupted.",
	RunE: runSnapshot,
}

func init() {
	snapshotCmd.Flags().StringVar(&flagOutput, "output", "", "output JSON path (default snapshot.output)")
	snapshotCmd.Flags().StringVar(&flagSchedule, "schedule", "", "cron expression for repeated runs (default snapshot.schedule)")
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	if err := initializeSystem(); err != nil {
		return err
	}
	defer shutdownSystem()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	output := cfg.Snapshot.Output
	if flagOutput != "" {
		output = flagOutput
	}
	schedule := cfg.Snapshot.Schedule
	if cmd.Flags().Changed("schedule") {
		schedule = flagSchedule
	}

	svcCfg := news.ServiceConfigFrom(cfg)
	svcCfg.FeedTimeout = cfg.SnapshotTimeout()
	svcCfg.ForceRefreshPerMinute = 0
	refresher := initializeRefresher(cfg, svcCfg)
	opts := []snapshot.Option{snapshot.WithTickerIndex(cfg.Snapshot.TickerIndex)}

	if schedule == "" {
		doc, err := snapshot.BuildAndWrite(ctx, refresher, output, opts...)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Wrote snapshot to %s with %d items\n", output, doc.Meta.ItemCount)
		return nil
	}

	sched := snapshot.NewScheduler(refresher, output, opts...)
	sched.RunNow()
	if err := sched.Start(schedule); err != nil {
		logger.ErrorWithErr(ctx, "Invalid snapshot schedule", err, "schedule", schedule)
		return fmt.Errorf("invalid schedule '%s': %w", schedule, err)
	}

	<-ctx.Done()
	sched.Stop()
	return nil
}
