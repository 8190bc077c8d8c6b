package main

import (
	"log/slog"

	"github.com/fennrik/lapsecam-go/app"
	"github.com/fennrik/lapsecam-go/config"
)

const configPath = "lapsecam.json"

func main() {
	cfg, err := config.Load(configPath)

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := NewLogger(level)
	if err != nil {
		logger.Warn("config load failed, using defaults", "path", configPath, "error", err)
	}

	application := app.NewApp("LapseCam", 640, 720, cfg, configPath, logger)
	application.Start()
}
