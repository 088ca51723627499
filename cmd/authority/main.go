package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/pokegate/internal/buildinfo"
	"github.com/dmitrijs2005/pokegate/internal/logging"
	"github.com/dmitrijs2005/pokegate/internal/server"
	"github.com/dmitrijs2005/pokegate/internal/server/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.NewJSONLogger(os.Stdout, cfg.LogLevel).With("app", "authority")

	app, err := server.NewApp(cfg, logger)
	if err != nil {
		logger.Error(ctx, "startup failed", "error", err.Error())
		log.Fatalf("%v", err)
	}

	if err := app.Run(ctx); err != nil {
		logger.Error(ctx, "server stopped", "error", err.Error())
		os.Exit(1)
	}
}
