package main

import (
	"context"
	"log"
	"os"

	"github.com/Tech-Artist89/Passwortmanager/internal/buildinfo"
	"github.com/Tech-Artist89/Passwortmanager/internal/cli"
	"github.com/Tech-Artist89/Passwortmanager/internal/config"
	"github.com/Tech-Artist89/Passwortmanager/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.NewTextLogger(os.Stderr, logging.ParseLevel(cfg.LogLevel))

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}
	defer app.Close()

	app.Run(ctx)

}
