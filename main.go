package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	app "github.com/rocketscienceinc/tictactoe-solo/internal"
	"github.com/rocketscienceinc/tictactoe-solo/internal/config"
)

// configPathEnv overrides the config file location, relative paths resolve against the working directory.
const configPathEnv = "TICTACTOE_CONFIG"

// main starts the single-player tic-tac-toe service: the human plays X against the rule-based opponent.
func main() {
	defer func() {
		if err := recover(); err != nil {
			fmt.Fprintf(os.Stderr, "recovered from panic: %v\n", err)
			os.Exit(1)
		}
	}()

	conf := initConfig()
	logger := initLogger(conf)

	logger.Info("tictactoe-solo starting",
		"sessionTTL", conf.SessionTTL.String(),
		"opponentSeed", conf.Opponent.Seed,
		"redis", conf.Redis.GetRedisAddr(),
	)

	if err := app.RunApp(logger, conf); err != nil {
		panic(fmt.Errorf("app run failed: %w", err))
	}
}

func initConfig() *config.Config {
	baseDir, err := os.Getwd()
	if err != nil {
		panic(fmt.Errorf("failed to get current directory: %w", err))
	}

	return config.MustLoad(configPath(baseDir, os.Getenv(configPathEnv)))
}

func configPath(baseDir, override string) string {
	switch {
	case override == "":
		return filepath.Join(baseDir, "config.yml")
	case filepath.IsAbs(override):
		return override
	default:
		return filepath.Join(baseDir, override)
	}
}

func initLogger(conf *config.Config) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel(conf.LogLevel)}))
}

// logLevel falls back to info for anything it does not recognize.
func logLevel(name string) slog.Level {
	switch name {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
