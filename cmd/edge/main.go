package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/pokegate/internal/buildinfo"
	"github.com/dmitrijs2005/pokegate/internal/edge"
	"github.com/dmitrijs2005/pokegate/internal/edge/config"
	"github.com/dmitrijs2005/pokegate/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.NewJSONLogger(os.Stdout, cfg.LogLevel).With("app", "edge")

	app, err := edge.NewApp(cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := app.Run(ctx); err != nil {
		logger.Error(ctx, "server stopped", "error", err.Error())
		os.Exit(1)
	}
}
