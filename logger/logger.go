package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

var log zerolog.Logger

// Init initializes the global logger with the specified level.
// level can be: "debug", "info", "warn", "error", "fatal"
// Output always goes to stderr: stdout carries the MCP protocol stream
// and must never receive log lines. At debug level the output is the
// human-friendly console format.
func Init(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	var writer io.Writer
	if lvl == zerolog.DebugLevel {
		writer = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
	} else {
		writer = os.Stderr
	}

	log = zerolog.New(writer).
		Level(lvl).
		With().
		Timestamp().
		Logger()
}

func init() {
	// Default logger before Init() is called
	Init("info")
}

// Error logs at error level on the global logger.
func Error() *zerolog.Event { return log.Error() }

// Get returns the underlying zerolog.Logger; packages derive their
// component-tagged loggers from it.
func Get() zerolog.Logger {
	return log
}
