package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/recruitkit/screener/internal/intake"
	"github.com/recruitkit/screener/internal/logger"
	"github.com/recruitkit/screener/internal/orchestrator"
	"github.com/recruitkit/screener/internal/results"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the intake directory and submit each settled batch of resumes",
	Run: func(_ *cobra.Command, _ []string) {
		watch()
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func watch() {
	ctx := context.Background()

	config, err := getConfig()
	if err != nil {
		log.Fatalf("getting a config: %v", err)
	}

	if config == nil {
		log.Fatal("config is required")
	}

	zlog, err := logger.New(logger.Options{
		JSON:  viper.GetBool("json"),
		Debug: viper.GetBool("debug"),
		File:  config.LogFile,
	})
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	if config.Intake == nil || config.Intake.Dir == "" {
		zlog.Fatal("intake directory is required under intake.dir for watch mode")
	}

	zlog.Info("starting the screener in watch mode", zap.String("version", version))

	client := newClient(ctx, config, zlog)
	collector := intake.NewCollector(zlog)

	spec, err := buildJobSpec(config, zlog)
	if err != nil {
		zlog.Fatal("building job spec", zap.Error(err))
	}

	store := results.NewStore()
	orch := orchestrator.New(client, store, zlog)

	submit := func(context.Context) error {
		err := orch.Submit(collector.Files(), spec)

		var submitErr *orchestrator.SubmitError
		if errors.As(err, &submitErr) {
			// A failed batch is logged and the watch continues; the collected
			// resumes survive so the next batch retries the whole set.
			zlog.Warn("batch submission failed",
				zap.String("kind", string(submitErr.Kind)),
				zap.String("reason", submitErr.Message),
			)
			return nil
		}
		if err != nil {
			return err
		}

		pretty, _ := json.MarshalIndent(store.Results().ReportByStatus(), "", "  ")
		zlog.Info(string(pretty), zap.Int("candidates", store.Len()))
		return nil
	}

	// Resumes already sitting in the intake dir form the first batch.
	if err := collector.CollectDir(config.Intake.Dir, config.Intake.Patterns); err != nil {
		zlog.Fatal("collecting intake directory", zap.Error(err))
	}

	if collector.Len() > 0 {
		if err := submit(ctx); err != nil {
			zlog.Fatal("submitting initial batch", zap.Error(err))
		}
	}

	settle := time.Duration(0)
	if config.Watch != nil {
		settle = time.Duration(config.Watch.SettleSeconds) * time.Second
	}

	watcher := intake.NewWatcher(collector, settle, zlog)
	if err := watcher.Run(ctx, config.Intake.Dir, submit); err != nil {
		zlog.Fatal("watching intake directory", zap.Error(err))
	}
}
