package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/decipline/internal/logging"
	"github.com/dmitrijs2005/decipline/internal/server"
	"github.com/dmitrijs2005/decipline/internal/server/config"
)

func main() {

	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("%v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	logger := logging.NewJSON(os.Stdout, cfg.LogLevel)
	app := server.NewApp(cfg, logger)

	if err := app.Run(ctx); err != nil {
		logger.Error(ctx, "server stopped", "err", err)
		os.Exit(1)
	}

}
