package main

import (
	"context"
	"log"
	"os"

	"github.com/ovasilenko/breedbook/internal/buildinfo"
	"github.com/ovasilenko/breedbook/internal/client/cli"
	"github.com/ovasilenko/breedbook/internal/client/config"
	"github.com/ovasilenko/breedbook/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("%v", err)
	}

	logger := logging.NewDefault(os.Stderr, cfg.LogLevel)

	app, err := cli.NewApp(cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)
}
