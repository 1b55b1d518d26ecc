package config

import "github.com/spf13/pflag"

// Flags registers command-line overrides for the common keys. Flag names
// match config keys so they bind directly.
func Flags(name string) *pflag.FlagSet {
	d := Default()
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.String("config", ".", "directory holding edgeofdark.json and .env")
	fs.String("logLevel", d.LogLevel, "trace, debug, info, warn or error")
	fs.Bool("logJSON", d.LogJSON, "write JSON log lines instead of console output")
	fs.String("logFile", d.LogFile, "also write logs to this file")
	fs.String("level", d.Level, "level JSON file (empty uses the built-in arena)")
	fs.Bool("telemetry.enabled", d.Telemetry.Enabled, "export OpenTelemetry counters")
	fs.String("telemetry.file", d.Telemetry.File, "write metric batches to this file instead of stderr")
	return fs
}
