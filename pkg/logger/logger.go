// Package logger owns the process-wide zerolog instance. Call Init once
// during startup and pass the returned logger down by value; every
// sub-logger derived from it shares the same writer and level.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const serviceName = "auth-system"

// Options controls how the root logger is built.
type Options struct {
	// Level is the minimum level to emit: trace, debug, info, warn or
	// error. Anything else falls back to info.
	Level string
	// Pretty switches to the human-readable console writer. Production
	// deployments leave this off and ship JSON lines.
	Pretty bool
	// Output defaults to os.Stdout.
	Output io.Writer
}

var (
	root        zerolog.Logger
	once        sync.Once
	initialized bool
)

// Init builds the root logger. Repeated calls return the logger built by
// the first call.
func Init(opts Options) zerolog.Logger {
	once.Do(func() {
		zerolog.TimeFieldFormat = time.RFC3339Nano

		out := opts.Output
		if out == nil {
			out = os.Stdout
		}
		if opts.Pretty {
			out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
		}

		level := parseLevel(opts.Level)
		zerolog.SetGlobalLevel(level)

		root = zerolog.New(out).
			Level(level).
			With().
			Timestamp().
			Str("service", serviceName).
			Logger()

		initialized = true
	})
	return root
}

// Get returns the root logger and panics when Init has not run yet,
// which always indicates a wiring bug rather than a runtime condition.
func Get() zerolog.Logger {
	if !initialized {
		panic("logger: Get called before Init")
	}
	return root
}

// Reset discards the singleton so the next Init rebuilds it. Test use
// only.
func Reset() {
	once = sync.Once{}
	root = zerolog.Logger{}
	initialized = false
}

func parseLevel(s string) zerolog.Level {
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return level
}
