package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ParseLevel maps a config string to a level. Unknown values fall back to
// info.
func ParseLevel(s string) zerolog.Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "TRACE":
		return zerolog.TraceLevel
	case "DEBUG":
		return zerolog.DebugLevel
	case "INFO":
		return zerolog.InfoLevel
	case "WARN":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// New builds the process logger. Console output is human readable with
// RFC3339 timestamps; json writes one object per line. Extra writers get the
// same records without color, for log files.
func New(w io.Writer, level string, json bool, extra ...io.Writer) zerolog.Logger {
	var out io.Writer = w
	if !json {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	if len(extra) > 0 {
		writers := []io.Writer{out}
		for _, e := range extra {
			if json {
				writers = append(writers, e)
				continue
			}
			writers = append(writers, zerolog.ConsoleWriter{Out: e, TimeFormat: time.RFC3339, NoColor: true})
		}
		out = zerolog.MultiLevelWriter(writers...)
	}
	return zerolog.New(out).Level(ParseLevel(level)).With().Timestamp().Logger()
}

// Component scopes l to one named subsystem.
func Component(l zerolog.Logger, name string) zerolog.Logger {
	return l.With().Str("component", name).Logger()
}

// Sampled lets a burst of records through per period and then one in n.
// It is meant for messages that can repeat every frame.
func Sampled(l zerolog.Logger, burst uint32, period time.Duration, n uint32) zerolog.Logger {
	return l.Sample(&zerolog.BurstSampler{
		Burst:       burst,
		Period:      period,
		NextSampler: &zerolog.BasicSampler{N: n},
	})
}

// Setup is New plus an optional append-only log file. The returned close
// function is never nil.
func Setup(w io.Writer, level string, json bool, file string) (zerolog.Logger, func() error, error) {
	if file == "" {
		return New(w, level, json), func() error { return nil }, nil
	}
	f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), func() error { return nil }, fmt.Errorf("open log file: %w", err)
	}
	return New(w, level, json, f), f.Close, nil
}
