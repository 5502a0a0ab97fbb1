package main

import (
	"fmt"
	"log/slog"
	"os"

	app "github.com/rocketscienceinc/minesweeper-backend/internal"
	"github.com/rocketscienceinc/minesweeper-backend/internal/config"
)

// main - is the entry point of the application. It initializes the configuration, logger, and runs the application.
func main() {
	defer func() {
		if err := recover(); err != nil {
			fmt.Fprintf(os.Stderr, "recovered from panic: %v\n", err)
			os.Exit(1)
		}
	}()

	conf := initConfig()
	logger := initLogger(conf)

	if err := app.RunApp(logger, conf); err != nil {
		panic(fmt.Errorf("app run failed: %w", err))
	}
}

// initialize config. Command line flags win over config.yml.
func initConfig() *config.Config {
	overrides, err := config.ParseFlags(os.Args[1:])
	if err != nil {
		panic(fmt.Errorf("invalid arguments: %w", err))
	}

	conf := config.MustLoad(overrides.ConfigPath)
	conf.ApplyOverrides(overrides)

	if err = conf.Validate(); err != nil {
		panic(fmt.Errorf("invalid config: %w", err))
	}

	return conf
}

// initialize logger.
func initLogger(conf *config.Config) *slog.Logger {
	var level slog.Level

	switch conf.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
