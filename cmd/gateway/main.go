package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/novamart/orderhub-backend/pkg/config"
	"github.com/novamart/orderhub-backend/pkg/gateway"
	"github.com/novamart/orderhub-backend/pkg/logger"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "gateway"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "gateway",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	routes, err := gateway.LoadRoutes(cfg.Gateway.RoutesFile)
	if err != nil {
		logg.Error(context.Background(), "failed to load route table", err)
		os.Exit(1)
	}

	handler, err := gateway.NewHandler(cfg.JWT, routes, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to build gateway", err)
		os.Exit(1)
	}

	addr := ":" + cfg.Gateway.Port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":    cfg.App.Env,
		"addr":   addr,
		"routes": len(routes),
	})
	logg.Info(ctx, "starting gateway")

	server := &http.Server{Addr: addr, Handler: handler}
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "gateway stopped unexpectedly", err)
		os.Exit(1)
	}
}
