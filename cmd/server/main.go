package main

import (
	"github.com/ochoaughini/SVG-Generator-Modular/internal/config"
	"github.com/ochoaughini/SVG-Generator-Modular/internal/server"
	"github.com/ochoaughini/SVG-Generator-Modular/pkg/logger"
	"github.com/ochoaughini/SVG-Generator-Modular/pkg/logger/console"
)

func main() {
	config.LoadEnv()

	consoleLogger := console.NewConsoleLogger(console.ConsoleLoggerParams{
		Debug: config.GetEnvBool("DEBUG", false),
	})
	logger.Init(consoleLogger)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Invalid configuration", "err", err)
	}
	if err := server.Run(cfg); err != nil {
		logger.Fatal("Server stopped", "err", err)
	}
}
