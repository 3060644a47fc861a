package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Project-Sylos/Mimic/internal/api"
	"github.com/Project-Sylos/Mimic/internal/cli"
	"github.com/Project-Sylos/Mimic/internal/config"
	"github.com/Project-Sylos/Mimic/internal/types"
	"github.com/Project-Sylos/Mimic/sdk"
	"go.uber.org/zap"
)

func main() {
	cli.ExitOnErr(run())
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	// The API only serves the manifest, so it is always on here.
	cfg.Manifest.Enabled = true

	m, err := sdk.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize Mimic: %w", err)
	}
	defer m.Close()

	log := m.Logger()
	server := api.NewServer(m, &cfg.API)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting HTTP server",
			zap.String("addr", api.Addr(&cfg.API)),
			zap.String("manifest", cfg.Manifest.DBPath),
		)
		// I am here to serve.
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}
	stop()

	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down HTTP server: %w", err)
	}

	log.Info("server shutdown complete")
	return nil
}

// loadConfig reads the file named by the first argument, or the defaults
// (with MIMIC_* environment overrides) when none is given.
func loadConfig() (*types.Config, error) {
	if len(os.Args) > 1 {
		return config.LoadFromFile(os.Args[1])
	}
	return config.FromViper(config.NewViper())
}
