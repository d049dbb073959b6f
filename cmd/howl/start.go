package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/howl-sh/howl/internal/agent"
	"github.com/howl-sh/howl/internal/collector"
	"github.com/howl-sh/howl/internal/config"
	"github.com/howl-sh/howl/internal/notify"
	"github.com/howl-sh/howl/internal/scheduler"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the howl daemon",
	Long:  "Schedules every configured alert at its interval, delivers results to notification services, and reloads when the config file changes.",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := setupLogger()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		path, err := config.Find(cfgFile)
		if err != nil {
			return err
		}
		cfg, err := config.Resolve(path)
		if err != nil {
			return err
		}

		for {
			col := collector.New()
			notifier := notify.NewNotifier(agent.Services(cfg), cfg.Hostname, logger)
			sink := collector.Tee{col, notifier}

			sched := scheduler.New(logger)
			for _, e := range agent.Build(cfg, sink, logger) {
				if err := sched.Add(e.Name, e.Exec); err != nil {
					return err
				}
			}
			sched.Start()
			logger.Info("daemon started",
				"config", path, "cluster", cfg.Cluster, "host", cfg.Hostname, "alerts", len(cfg.Alerts))

			reload := make(chan struct{}, 1)
			watchCtx, cancelWatch := context.WithCancel(ctx)
			go func() {
				err := scheduler.Watch(watchCtx, path, logger, func() {
					select {
					case reload <- struct{}{}:
					default:
					}
				})
				if err != nil {
					logger.Error("config watch stopped", "error", err)
				}
			}()

			select {
			case <-ctx.Done():
				cancelWatch()
				<-sched.Stop().Done()
				logger.Info("daemon stopped")
				return nil
			case <-reload:
				cancelWatch()
				<-sched.Stop().Done()
				cfg = reloadConfig(path, cfg, logger)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(startCmd)
}

// reloadConfig returns the freshly loaded config, or the previous one when
// the file is unreadable — a partial write mid-save must not take the
// daemon down.
func reloadConfig(path string, prev *config.Config, logger *slog.Logger) *config.Config {
	next, err := config.Resolve(path)
	if err != nil {
		logger.Error("config reload failed, keeping previous configuration",
			"config", path, "error", err)
		return prev
	}
	logger.Info("configuration reloaded", "config", path, "alerts", len(next.Alerts))
	return next
}
