package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/chronos-tachyon/huffzap/internal/app"
	"github.com/chronos-tachyon/huffzap/internal/config"
)

func main() {
	cfg, err := config.NewConfig(config.Decompress, os.Args[1:])
	if err != nil {
		fmt.Println("ERROR:", err)
		os.Exit(1)
	}

	logrus.SetLevel(cfg.LogLevel())
	if cfg.CLI.Debug {
		logrus.Info("debug mode enabled")
	}

	app.DisplayConfig(cfg)

	if err := app.Run(cfg); err != nil {
		logrus.Errorf("unzap failed: %s", err)
		os.Exit(1)
	}
}
