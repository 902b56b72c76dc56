package engine

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"
)

// ErrInvalidConfig is returned when a session cannot be started.
var ErrInvalidConfig = errors.New("invalid session config")

// Session holds the state of one typing test.
//
// A Session is not safe for concurrent use; the UI loop owns it.
type Session struct {
	mode      Mode
	target    []string
	targetRef [][]rune
	reference []rune
	now       func() time.Time

	buffer    []rune
	state     State
	startedAt time.Time
	tabArmed  bool
	stats     Statistics
}

// Start creates a session for target using the wall clock.
func Start(mode Mode, target []string) (*Session, error) {
	return StartWithClock(mode, target, time.Now)
}

// StartWithClock creates a session that reads time from now.
func StartWithClock(mode Mode, target []string, now func() time.Time) (*Session, error) {
	if len(target) == 0 {
		return nil, fmt.Errorf("%w: target has no words", ErrInvalidConfig)
	}
	for i, word := range target {
		if word == "" || strings.ContainsRune(word, ' ') {
			return nil, fmt.Errorf("%w: target word %d is not a single word", ErrInvalidConfig, i)
		}
	}
	switch mode.Kind {
	case ModeFixedText:
	case ModeWordCount:
		if mode.Words <= 0 {
			return nil, fmt.Errorf("%w: word count must be > 0", ErrInvalidConfig)
		}
		if len(target) > mode.Words {
			target = target[:mode.Words]
		}
	case ModeTimeLimit:
		if mode.Limit <= 0 {
			return nil, fmt.Errorf("%w: time limit must be > 0", ErrInvalidConfig)
		}
	default:
		return nil, fmt.Errorf("%w: unknown mode %s", ErrInvalidConfig, mode.Kind)
	}
	if now == nil {
		now = time.Now
	}

	words := append([]string(nil), target...)
	targetRef := make([][]rune, len(words))
	for i, word := range words {
		targetRef[i] = []rune(word)
	}
	return &Session{
		mode:      mode,
		target:    words,
		targetRef: targetRef,
		reference: []rune(strings.Join(words, " ")),
		now:       now,
	}, nil
}

// Mode returns the completion policy.
func (s *Session) Mode() Mode {
	return s.mode
}

// Target returns a copy of the target words.
func (s *Session) Target() []string {
	return append([]string(nil), s.target...)
}

// Typed returns the typed buffer.
func (s *Session) Typed() string {
	return string(s.buffer)
}

// State returns the lifecycle state.
func (s *Session) State() State {
	return s.state
}

// StartedAt returns the start time, if the session has started.
func (s *Session) StartedAt() (time.Time, bool) {
	if s.state == StateNotStarted {
		return time.Time{}, false
	}
	return s.startedAt, true
}

// Stats returns the statistics of a finished session.
func (s *Session) Stats() (Statistics, bool) {
	if s.state != StateFinished {
		return Statistics{}, false
	}
	return s.stats, true
}

// Record applies one input event.
//
// Tab followed directly by Enter resets the session. Printable and Backspace
// events are ignored once the session has finished.
func (s *Session) Record(ev Event) Outcome {
	switch ev.Kind {
	case EventTab:
		s.tabArmed = true
		return Outcome{}
	case EventEnter:
		armed := s.tabArmed
		s.tabArmed = false
		if !armed {
			return Outcome{}
		}
		s.Reset()
		return Outcome{Restart: true}
	}
	s.tabArmed = false

	switch ev.Kind {
	case EventTick:
		return s.settle(Outcome{})
	case EventBackspace:
		if s.state == StateFinished {
			return Outcome{}
		}
		if s.expired() {
			s.Finish()
			return Outcome{Finished: true}
		}
		if len(s.buffer) > 0 {
			s.buffer = s.buffer[:len(s.buffer)-1]
		}
		return s.settle(Outcome{})
	case EventPrintable:
		return s.recordRune(ev.Char)
	default:
		return Outcome{}
	}
}

func (s *Session) recordRune(r rune) Outcome {
	if s.state == StateFinished || !unicode.IsPrint(r) {
		return Outcome{}
	}
	if s.expired() {
		s.Finish()
		return Outcome{Finished: true}
	}
	var out Outcome
	if s.state == StateNotStarted {
		if s.mode.Kind == ModeFixedText && unicode.IsSpace(r) {
			return Outcome{}
		}
		s.state = StateRunning
		s.startedAt = s.now()
		out.Started = true
	}
	s.buffer = append(s.buffer, r)
	return s.settle(out)
}

func (s *Session) settle(out Outcome) Outcome {
	if s.CheckCompletion() {
		s.Finish()
		out.Finished = true
	}
	return out
}

func (s *Session) expired() bool {
	return s.state == StateRunning &&
		s.mode.Kind == ModeTimeLimit &&
		s.now().Sub(s.startedAt) >= s.mode.Limit
}

// CheckCompletion reports whether a running session should finish.
func (s *Session) CheckCompletion() bool {
	if s.state != StateRunning {
		return false
	}
	if s.expired() {
		return true
	}
	return s.wordsComplete()
}

// wordsComplete ends the test as soon as the last word is long enough,
// without waiting for a trailing space.
func (s *Session) wordsComplete() bool {
	typed := strings.Split(string(s.buffer), " ")
	count := 0
	for _, word := range typed {
		if strings.TrimSpace(word) != "" {
			count++
		}
	}
	switch {
	case count > len(s.target):
		return true
	case count == len(s.target):
		last := []rune(strings.TrimSpace(typed[len(typed)-1]))
		return len(last) >= len(s.targetRef[len(s.targetRef)-1])
	default:
		return false
	}
}

// Finish ends the session and returns its statistics. Calling Finish on a
// finished session returns the frozen statistics unchanged.
func (s *Session) Finish() Statistics {
	if s.state == StateFinished {
		return s.stats
	}
	now := s.now()
	var elapsed time.Duration
	if s.state == StateRunning {
		elapsed = now.Sub(s.startedAt)
	} else {
		s.startedAt = now
	}
	if elapsed < 0 {
		elapsed = 0
	}
	if s.mode.Kind == ModeTimeLimit && elapsed > s.mode.Limit {
		elapsed = s.mode.Limit
	}
	s.state = StateFinished
	s.stats = computeStatistics(s.buffer, s.reference, elapsed)
	return s.stats
}

// Reset returns the session to its initial state, keeping the target.
func (s *Session) Reset() {
	s.buffer = nil
	s.state = StateNotStarted
	s.startedAt = time.Time{}
	s.tabArmed = false
	s.stats = Statistics{}
}

// Progress returns the word progress and, in time mode, the remaining time.
func (s *Session) Progress() Progress {
	p := Progress{WordsTotal: len(s.target)}
	for i, word := range splitWords(s.buffer) {
		if i < len(s.targetRef) && len(word) >= len(s.targetRef[i]) {
			p.WordsDone++
		}
	}
	if s.mode.Kind != ModeTimeLimit {
		return p
	}
	switch s.state {
	case StateNotStarted:
		p.Remaining = s.mode.Limit
	case StateRunning:
		p.Remaining = s.mode.Limit - s.now().Sub(s.startedAt)
	case StateFinished:
		p.Remaining = s.mode.Limit - s.stats.Elapsed
	}
	if p.Remaining < 0 {
		p.Remaining = 0
	}
	return p
}
