// Package model defines shared data structures.
package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/verte-zerg/burgertype/internal/engine"
)

// Practice modes accepted on the command line and in the config file.
const (
	ModeFixed = "fixed"
	ModeWords = "words"
	ModeTime  = "time"
)

// Config defines practice settings.
type Config struct {
	Mode         string
	Words        int
	Seconds      int
	Punctuation  bool
	CapsPct      float64
	PunctPct     float64
	PunctSet     string
	Lang         string
	WordListPath string
	Text         string
	Custom       bool
}

// SessionMode maps the configured mode to an engine mode.
func (c Config) SessionMode() (engine.Mode, error) {
	switch strings.ToLower(c.Mode) {
	case ModeFixed, "":
		return engine.FixedText(), nil
	case ModeWords:
		return engine.WordCount(c.Words), nil
	case ModeTime:
		return engine.TimeLimit(time.Duration(c.Seconds) * time.Second), nil
	default:
		return engine.Mode{}, fmt.Errorf("unknown mode %q (want %s, %s or %s)", c.Mode, ModeFixed, ModeWords, ModeTime)
	}
}

// UsesWordList reports whether passages are drawn from the word list.
func (c Config) UsesWordList() bool {
	if c.Custom {
		return false
	}
	mode := strings.ToLower(c.Mode)
	return mode == ModeWords || mode == ModeTime
}

// PassageWords returns how many words to draw for a generated passage.
// Time tests draw enough words that a fast typist does not run out.
func (c Config) PassageWords() int {
	if strings.ToLower(c.Mode) == ModeTime {
		return max(c.Seconds*4, c.Words)
	}
	return c.Words
}
