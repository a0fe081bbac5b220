// Package logger wraps zerolog behind a small leveled API with
// key-value context pairs.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Discards until Init runs, so library code can log unconditionally.
var log = zerolog.New(io.Discard)

// Init configures the global logger. Development gets a human console
// writer, everything else structured JSON.
func Init(environment string) {
	zerolog.TimeFieldFormat = time.RFC3339

	if environment == "development" {
		log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
			Level(zerolog.DebugLevel).
			With().Timestamp().Logger()
		return
	}

	log = zerolog.New(os.Stderr).
		Level(zerolog.InfoLevel).
		With().Timestamp().Logger()
}

func Debug(msg string, keysAndValues ...any) {
	emit(log.Debug(), msg, keysAndValues)
}

func Info(msg string, keysAndValues ...any) {
	emit(log.Info(), msg, keysAndValues)
}

func Warn(msg string, keysAndValues ...any) {
	emit(log.Warn(), msg, keysAndValues)
}

func Error(msg string, keysAndValues ...any) {
	emit(log.Error(), msg, keysAndValues)
}

func Fatal(msg string, keysAndValues ...any) {
	emit(log.Fatal(), msg, keysAndValues)
}

func emit(ev *zerolog.Event, msg string, keysAndValues []any) {
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			continue
		}
		switch v := keysAndValues[i+1].(type) {
		case error:
			ev = ev.AnErr(key, v)
		default:
			ev = ev.Interface(key, v)
		}
	}
	ev.Msg(msg)
}
