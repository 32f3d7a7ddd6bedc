// Package logger configures the process-wide zerolog instance. Every
// component derives its own sub-logger from the one returned here.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Setup builds the root logger. format "pretty" selects the console
// writer for local development; anything else emits JSON lines. Unknown
// level strings fall back to info.
func Setup(level, format string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	return zerolog.New(writerFor(format)).
		With().
		Timestamp().
		Caller().
		Logger()
}

func writerFor(format string) io.Writer {
	if format == "pretty" {
		return zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		}
	}
	return os.Stdout
}
