package main

import (
	"context"
	"flag"
	"os"

	"SummaryHub/internal/app"
	"SummaryHub/internal/config"
	"SummaryHub/internal/logging"
)

func main() {
	configPath := flag.String("config", "", "path to YAML configuration")
	mock := flag.Bool("mock", false, "serve the mock provider only")
	port := flag.Int("port", 0, "override the listen port")
	flag.Parse()

	cfg := config.Load(*configPath)
	if *mock {
		cfg.Providers.Mock = true
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}

	logger := logging.New(cfg.Logging.Level)

	application, err := app.New(cfg, logger)
	if err != nil {
		logger.Error("startup failed", "error", err)
		os.Exit(1)
	}

	if err := application.Run(context.Background()); err != nil {
		logger.Error("application stopped", "error", err)
		os.Exit(1)
	}
}
