package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"spinsplit/internal/config"
	"spinsplit/internal/livesplit"
	"spinsplit/internal/metrics"
	"spinsplit/internal/retroarch"
	"spinsplit/internal/splitter"
)

var (
	// Global flags
	configPath string
	verbose    bool

	// Logger
	logger *zap.Logger
)

// rootCmd runs the autosplitter daemon.
var rootCmd = &cobra.Command{
	Use:   "spinsplit",
	Short: "spinsplit - Sonic Spinball autosplitter for LiveSplit",
	Long: `spinsplit polls Sonic Spinball (Genesis) memory through RetroArch's
network command interface and drives a LiveSplit Server instance:
it starts the timer on the title-screen confirm, splits on every
level boundary, and resets when the game falls back to the menu.

Requires network_cmd_enable = true in retroarch.cfg and the
LiveSplit Server component running.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runDaemon,
}

// initCmd writes a default config file for users to edit.
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := os.Stat(configPath); err == nil {
			return fmt.Errorf("%s already exists, not overwriting", configPath)
		}
		if err := config.DefaultConfig().Save(configPath); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", configPath)
		return nil
	},
}

func runDaemon(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mem := retroarch.New(cfg.RetroArch, cfg.WRAMBase, logger)
	defer mem.Close()
	timer := livesplit.New(cfg.LiveSplit, logger)
	defer timer.Close()

	sp := splitter.New(cfg.Splitter, mem, timer, logger)

	logger.Info("spinsplit running",
		zap.String("retroarch", cfg.RetroArch),
		zap.String("livesplit", cfg.LiveSplit),
		zap.Duration("poll", cfg.Poll))

	g, ctx := errgroup.WithContext(ctx)

	if cfg.Metrics != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler())
		srv := &http.Server{Addr: cfg.Metrics, Handler: mux}

		g.Go(func() error {
			logger.Info("metrics listening", zap.String("addr", cfg.Metrics))
			if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	}

	g.Go(func() error {
		ticker := time.NewTicker(cfg.Poll)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				sp.Tick()
			}
		}
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("spinsplit stopped")
	return nil
}

func main() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "spinsplit.yaml", "path to config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.AddCommand(initCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
