package main

import (
	"context"
	"errors"
	"os"

	"github.com/desertthunder/fanstats/internal/shared"
	"github.com/desertthunder/fanstats/internal/store"
	"github.com/urfave/cli/v3"
)

const configFile = "config.toml"

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat(configFile); err == nil {
		if loadedConfig, err := shared.LoadConfig(configFile); err == nil {
			config = loadedConfig
		} else {
			logger.Warn("failed to load config, using defaults", "error", err)
		}
	}
	shared.SetLogLevel(logger, shared.ParseLogLevel(config.Log.Level))

	db, err := shared.OpenDatabase(config.Database)
	if err != nil {
		logger.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	runner := NewRunner(RunnerOpts{
		Config: config,
		Store:  store.NewSQLite(db),
		Logger: logger,
	})

	app := &cli.Command{
		Name:     "fanstats",
		Usage:    "Track streams, goals and fan missions",
		Version:  "0.1.0",
		Before:   runner.Before,
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		if errors.Is(err, shared.ErrNotImplemented) {
			logger.Warn("not implemented", "error", err)
			return
		}
		db.Close()
		logger.Fatalf("application error: %v", err)
	}
}
