package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"healthmon/internal/collector"
	"healthmon/internal/config"
	"healthmon/internal/logger"
	"healthmon/internal/scheduler"
	"healthmon/internal/sink"
	"healthmon/internal/storage"
	"healthmon/pkg/profiler"
)

func main() {
	cfg := config.NewConfig()

	rootCmd := &cobra.Command{
		Use:   "healthmon",
		Short: "Host health monitor: samples CPU, memory, disk and network on a fixed interval",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Load(cmd); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			return run(cfg)
		},
		SilenceUsage: true,
	}
	config.AddFlags(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "healthmon:", err)
		os.Exit(1)
	}
}

// run собирает все компоненты и выполняет цикл выборки до
// сигнала завершения или истечения заданной длительности.
// Ошибка возвращается только при отказе на старте.
func run(cfg *config.Config) error {
	if err := logger.Initialize(cfg.LogLevel); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Cleanup()
	log := logger.Logger

	monitorLog, err := sink.NewRotatingLog(cfg.LogFile, cfg.LogMaxBytes, cfg.LogBackups)
	if err != nil {
		return err
	}
	defer monitorLog.Close()

	var store sink.Store
	if cfg.DBPath != "" {
		db, err := storage.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		defer db.Close()
		store = db
		log.Info("Durable store enabled", zap.String("path", cfg.DBPath))
	}

	prof := profiler.New(profiler.Config{
		Enable:     cfg.ProfileEnable,
		HTTPPort:   cfg.ProfileHTTPPort,
		CPUProfile: cfg.ProfileCPUFile,
		MemProfile: cfg.ProfileMemFile,
	}, log)
	if err := prof.Start(); err != nil {
		return err
	}
	defer func() {
		if err := prof.Stop(); err != nil {
			log.Warn("Profiler stop failed", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	coll := collector.New(log)
	coll.Prime(ctx)

	sched := scheduler.New(cfg, coll, sink.New(monitorLog, store, log), log)
	if err := sched.Run(ctx); err != nil {
		log.Error("Sampling loop failed to start", zap.Error(err))
		return err
	}

	log.Info("Shutdown complete")
	return nil
}
