package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/mkazhan/teamkeeper/internal/buildinfo"
	"github.com/mkazhan/teamkeeper/internal/client/cli"
	"github.com/mkazhan/teamkeeper/internal/client/config"
	"github.com/mkazhan/teamkeeper/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer app.Close()

	if err := app.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}
}
