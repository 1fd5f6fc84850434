// Package logger is the process-wide structured logger.
//
// Calls take a message followed by optional arguments. An error argument is
// attached as the "error" field; the remaining arguments are read as
// key/value pairs; an error value in a pair is logged by its message.
//
//	logger.Info("Server starting", "address", addr)
//	logger.Fatal("Failed to load artifacts", "error", err)
//	logger.Error("Failed to load artifact", err, "name", name)
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	log zerolog.Logger
	mu  sync.RWMutex
)

func init() {
	log = zerolog.New(os.Stderr).With().Timestamp().Logger()
}

// Init configures the global logger for the given environment.
// Development gets human-readable console output at debug level,
// every other environment gets JSON at info level.
func Init(environment string) {
	InitWithWriter(environment, os.Stderr)
}

func InitWithWriter(environment string, w io.Writer) {
	mu.Lock()
	defer mu.Unlock()

	level := zerolog.InfoLevel
	out := w
	if environment == "development" {
		level = zerolog.DebugLevel
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	log = zerolog.New(out).Level(level).With().Timestamp().Str("env", environment).Logger()
}

func Debug(msg string, args ...any) {
	emit(get().Debug(), msg, args)
}

func Info(msg string, args ...any) {
	emit(get().Info(), msg, args)
}

func Warn(msg string, args ...any) {
	emit(get().Warn(), msg, args)
}

func Error(msg string, args ...any) {
	emit(get().Error(), msg, args)
}

// Fatal logs and exits the process with status 1.
func Fatal(msg string, args ...any) {
	emit(get().Fatal(), msg, args)
}

func get() *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	l := log
	return &l
}

func emit(e *zerolog.Event, msg string, args []any) {
	if e == nil {
		return
	}

	for i := 0; i < len(args); i++ {
		if err, ok := args[i].(error); ok {
			e = e.Err(err)
			continue
		}

		key, ok := args[i].(string)
		if !ok || i+1 >= len(args) {
			e = e.Interface(fmt.Sprintf("arg%d", i), args[i])
			continue
		}
		if err, ok := args[i+1].(error); ok {
			e = e.AnErr(key, err)
		} else {
			e = e.Interface(key, args[i+1])
		}
		i++
	}

	e.Msg(msg)
}
