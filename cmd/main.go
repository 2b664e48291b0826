package main

import (
	"context"
	"errors"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/wrenhollow/reel/internal/shared"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	opts := RunnerOpts{Config: config, Logger: logger}
	if _, err := os.Stat(config.Database.Path); err == nil {
		db, err := shared.NewDatabase(config.Database.Path)
		if err != nil {
			logger.Warn("failed to open database, commands needing a session are unavailable", "error", err)
		} else {
			shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)
			opts.DB = db
			defer db.Close()
		}
	}

	runner := NewRunner(opts)

	app := &cli.Command{
		Name:     "reel",
		Usage:    "Browse and moderate the Reel short-video platform from the terminal",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		err_ := errors.Unwrap(err)
		if errors.Is(err_, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		} else {
			logger.Fatalf("application error: %v", err)
		}
	}
}
