package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jesses-code-adventures/facturier/internal/config"
	"github.com/jesses-code-adventures/facturier/internal/database"
	"github.com/jesses-code-adventures/facturier/internal/logger"
	"github.com/jesses-code-adventures/facturier/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log := logger.New(cfg.LogFormat, cfg.LogLevel)

	db, err := database.NewDB(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	facturierService := service.NewFacturierService(db, cfg.StorageKey, log)
	if err := facturierService.Load(ctx); err != nil {
		return err
	}

	rootCmd := newRootCmd(facturierService, cfg, log)
	return rootCmd.ExecuteContext(ctx)
}
