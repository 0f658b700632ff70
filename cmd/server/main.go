package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/benbeisheim/clickchess-backend/internal/config"
	"github.com/benbeisheim/clickchess-backend/internal/controller"
	"github.com/benbeisheim/clickchess-backend/internal/obslog"
	"github.com/benbeisheim/clickchess-backend/internal/render"
	"github.com/benbeisheim/clickchess-backend/internal/service"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if err := obslog.Init(cfg.Log); err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	logger := obslog.L()
	defer func() { _ = logger.Sync() }()

	palette, err := render.PaletteFromConfig(cfg.Palette)
	if err != nil {
		logger.Fatal("palette", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize services
	tableManager := service.NewTableManager(service.ManagerOptions{
		MaxTables:    cfg.MaxTables,
		IdleTTL:      cfg.TableIdleTTL,
		ReapInterval: cfg.ReapInterval,
	})
	tableManager.Start(ctx)
	defer tableManager.Close()
	tableService := service.NewTableService(tableManager, render.NewRenderer(palette, cfg.SquareSize))

	app := controller.NewApp(tableService, controller.AppOptions{
		AllowedOrigins: cfg.AllowedOrigins,
	})

	go func() {
		<-ctx.Done()
		logger.Info("server_shutdown")
		if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
			logger.Warn("server_shutdown_failed", zap.Error(err))
		}
	}()

	logger.Info("server_start",
		zap.String("addr", cfg.ListenAddr),
		zap.String("origins", strings.Join(cfg.AllowedOrigins, ",")),
	)
	if err := app.Listen(cfg.ListenAddr); err != nil {
		logger.Error("server_listen_failed", zap.Error(err))
	}
}
