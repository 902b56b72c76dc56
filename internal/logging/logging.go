// Package logging sets up the diagnostic log. The terminal belongs to the
// UI, so log lines go to a file.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/verte-zerg/burgertype/internal/engine"
)

// ParseLevel parses a level name, accepting "off" to disable logging.
func ParseLevel(name string) (zerolog.Level, error) {
	name = strings.TrimSpace(strings.ToLower(name))
	switch name {
	case "", "info":
		return zerolog.InfoLevel, nil
	case "off", "none":
		return zerolog.Disabled, nil
	}
	level, err := zerolog.ParseLevel(name)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log level %q: %w", name, err)
	}
	return level, nil
}

// New returns a logger that writes plain console lines to w.
func New(w io.Writer, level zerolog.Level) zerolog.Logger {
	consoleWriter := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: "2006-01-02 15:04:05",
		NoColor:    true,
	}
	return zerolog.New(consoleWriter).Level(level).With().Timestamp().Int("pid", os.Getpid()).Logger()
}

// Open creates the log file at path and returns a logger writing to it.
// The returned closer must be closed on exit.
func Open(path string, level zerolog.Level) (zerolog.Logger, io.Closer, error) {
	if level == zerolog.Disabled {
		return zerolog.Nop(), nopCloser{}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return New(file, level), file, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// SessionStart logs a new session.
func SessionStart(log zerolog.Logger, mode engine.Mode, words int) {
	log.Info().
		Str("mode", mode.String()).
		Int("words", words).
		Msg("session_start")
}

// SessionFinish logs the statistics of a finished session.
func SessionFinish(log zerolog.Logger, mode engine.Mode, st engine.Statistics) {
	log.Info().
		Str("mode", mode.String()).
		Float64("elapsed_s", st.ElapsedSeconds()).
		Float64("raw_wpm", st.RawWPM).
		Float64("adjusted_wpm", st.AdjustedWPM).
		Float64("accuracy_pct", st.Accuracy).
		Int("correct", st.CorrectChars).
		Int("incorrect", st.IncorrectChars).
		Msg("session_finish")
}

// SessionReset logs a restart, noting how far the abandoned session got.
func SessionReset(log zerolog.Logger, state engine.State, typed int) {
	log.Debug().
		Str("state", state.String()).
		Int("typed", typed).
		Msg("session_reset")
}
