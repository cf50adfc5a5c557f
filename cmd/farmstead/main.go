// Package main is the entry point for the farmstead scene renderer.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/farmstead/internal/config"
	"github.com/Faultbox/farmstead/internal/game"
	"github.com/Faultbox/farmstead/internal/logger"
)

func main() {
	os.Exit(run())
}

// run returns the process exit code so deferred cleanup runs before exit.
func run() int {
	// Parse CLI flags first
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		return 1
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		return 1
	}
	defer logger.Sync()

	logger.Info("=== Farmstead ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	g, err := game.New(cfg)
	if err != nil {
		logger.Error("failed to create game", zap.Error(err))
		return 1
	}
	defer g.Close()

	if err := g.Run(); err != nil {
		logger.Error("game error", zap.Error(err))
		return 1
	}

	logger.Info("closed normally")
	return 0
}
