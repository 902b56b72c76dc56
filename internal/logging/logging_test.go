package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/verte-zerg/burgertype/internal/engine"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"":      zerolog.InfoLevel,
		"DEBUG": zerolog.DebugLevel,
		"warn":  zerolog.WarnLevel,
		"off":   zerolog.Disabled,
	}
	for name, want := range cases {
		got, err := ParseLevel(name)
		if err != nil {
			t.Fatalf("parse %q: %v", name, err)
		}
		if got != want {
			t.Fatalf("parse %q: expected %s, got %s", name, want, got)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestSessionFinishFields(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, zerolog.InfoLevel)
	SessionFinish(log, engine.WordCount(10), engine.Statistics{
		Elapsed:      12 * time.Second,
		RawWPM:       20,
		AdjustedWPM:  19,
		Accuracy:     95,
		CorrectChars: 19,
	})
	out := buf.String()
	for _, want := range []string{"session_finish", "mode=words(10)", "raw_wpm=20", "correct=19"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in log line: %s", want, out)
		}
	}
}

func TestSessionResetIsDebug(t *testing.T) {
	var buf bytes.Buffer
	SessionReset(New(&buf, zerolog.InfoLevel), engine.StateRunning, 4)
	if buf.Len() != 0 {
		t.Fatalf("expected debug line to be filtered at info level: %s", buf.String())
	}
}

func TestOpenWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "burgertype.log")
	log, closer, err := Open(path, zerolog.InfoLevel)
	if err != nil {
		t.Fatalf("open log: %v", err)
	}
	SessionStart(log, engine.FixedText(), 9)
	if err := closer.Close(); err != nil {
		t.Fatalf("close log: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "session_start") {
		t.Fatalf("expected session_start in log file: %s", data)
	}
}

func TestOpenDisabled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "burgertype.log")
	_, closer, err := Open(path, zerolog.Disabled)
	if err != nil {
		t.Fatalf("open log: %v", err)
	}
	if err := closer.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected no log file when disabled")
	}
}
