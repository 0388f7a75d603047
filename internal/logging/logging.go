// Package logging configures the process-wide zerolog logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Level maps a -v count to a zerolog level.
func Level(verbosity int) zerolog.Level {
	switch {
	case verbosity <= 0:
		return zerolog.WarnLevel
	case verbosity == 1:
		return zerolog.InfoLevel
	case verbosity == 2:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}

// Setup configures the global logger for the given verbosity. Diagnostics go
// to stderr and are appended to the log file when it can be opened.
func Setup(verbosity int, noColor bool) {
	zerolog.SetGlobalLevel(Level(verbosity))

	console := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.Kitchen,
		NoColor:    noColor || !isatty.IsTerminal(os.Stderr.Fd()),
	}
	writers := []io.Writer{console}

	logPath, pathErr := FilePath()
	var fileErr error
	if pathErr == nil {
		var f *os.File
		if f, fileErr = openLogFile(logPath); fileErr == nil {
			writers = append(writers, f)
		}
	}

	log.Logger = zerolog.New(io.MultiWriter(writers...)).With().Timestamp().Logger()
	if verbosity >= 2 {
		log.Logger = log.Logger.With().Caller().Logger()
	}

	switch {
	case pathErr != nil:
		log.Warn().Err(pathErr).Msg("no log file location, logging to console only")
	case fileErr != nil:
		log.Warn().Err(fileErr).Str("path", logPath).Msg("failed to open log file, logging to console only")
	}
	log.Debug().Int("verbosity", verbosity).Str("logFile", logPath).Msg("logger initialized")
}

// GetLogger returns a logger tagged with the given component name.
func GetLogger(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}

// FilePath returns the log file location under the XDG state directory.
func FilePath() (string, error) {
	return xdg.StateFile(filepath.Join("gclient", "gclient.log"))
}

// LogCommand records a subprocess invocation at debug level.
func LogCommand(logger zerolog.Logger, args []string, dir string) {
	logger.Debug().Strs("args", args).Str("dir", dir).Msg("running command")
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	return f, nil
}
