// Headless run of the arena script at a fixed tick rate.
package main

import (
	"fmt"
	"os"
	"time"

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
	fs := config.Flags("arena-sim")
	hz := fs.Int("hz", 60, "simulation ticks per second")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *hz <= 0 {
		return fmt.Errorf("hz must be positive, got %d", *hz)
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

	s, err := game.NewSession(game.Options{Config: cfg, Log: log, Metrics: metrics})
	if err != nil {
		return err
	}

	start := time.Now()
	report := game.RunArenaScript(s, time.Second/time.Duration(*hz))
	log.Info().
		Float32("goblinHealth", report.GoblinHealth).
		Bool("bruteAlive", report.BruteAlive).
		Bool("revenantActive", report.RevenantActive).
		Dur("simulated", report.Elapsed).
		Dur("wall", time.Since(start)).
		Uint64("ticks", s.World.Ticks()).
		Interface("totals", report.Totals).
		Msg("arena script finished")
	return nil
}
