package main

import (
	"fmt"
	"os"

	"edgeofdark/internal/config"
	"edgeofdark/internal/game"
	"edgeofdark/internal/logging"
	"edgeofdark/internal/telemetry"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := config.Flags("edgeofdark")
	if err := fs.Parse(args); err != nil {
		return err
	}
	dir, _ := fs.GetString("config")
	cfg, err := config.LoadWithFlags(dir, fs)
	if err != nil {
		return err
	}

	log, closeLog, err := logging.Setup(os.Stdout, cfg.LogLevel, cfg.LogJSON, cfg.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	metrics, closeMetrics, err := telemetry.Setup(cfg.Telemetry.Enabled, cfg.Telemetry.File, cfg.Telemetry.Interval(), os.Stderr)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeMetrics(); err != nil {
			log.Warn().Err(err).Msg("metrics shutdown")
		}
	}()

	log.Info().Str("level", cfg.Level).Msg("starting")
	return game.New(cfg, log, metrics).Run()
}
