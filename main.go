package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/wojtekolesinski/battleships-cpu/app"
	"github.com/wojtekolesinski/battleships-cpu/audio"
	"github.com/wojtekolesinski/battleships-cpu/client"
	"github.com/wojtekolesinski/battleships-cpu/config"
	"github.com/wojtekolesinski/battleships-cpu/session"
)

func main() {
	if err := run(); err != nil {
		log.Error("main", "err", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("config.Load: %w", err)
	}

	// the terminal belongs to the GUI, logs go to a file
	logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("os.OpenFile: %w", err)
	}
	defer logFile.Close()
	log.SetOutput(logFile)
	log.SetLevel(cfg.LogLevel)
	log.SetReportTimestamp(true)

	sound := audio.NewManager(cfg.Audio)
	if err := sound.Init(); err != nil {
		log.Warn("main", "msg", "audio disabled", "err", err)
	}
	defer sound.Close()

	c := client.NewClient(cfg.APIURL, cfg.HTTPTimeout)
	store := session.NewStore(cfg.SessionFile)
	a := app.New(c, sound, store, os.Stdin, os.Stdout)

	log.Info("main", "api", cfg.APIURL)
	return a.Run(context.Background())
}
