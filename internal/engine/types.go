// Package engine scores a typing session against a target passage.
package engine

import (
	"fmt"
	"time"
)

// ModeKind selects how a session decides it is complete.
type ModeKind int

const (
	// ModeFixedText ends when the whole passage is typed.
	ModeFixedText ModeKind = iota
	// ModeWordCount ends after a fixed number of words.
	ModeWordCount
	// ModeTimeLimit ends when the time limit elapses.
	ModeTimeLimit
)

// String implements fmt.Stringer.
func (k ModeKind) String() string {
	switch k {
	case ModeFixedText:
		return "fixed"
	case ModeWordCount:
		return "words"
	case ModeTimeLimit:
		return "time"
	default:
		return fmt.Sprintf("ModeKind(%d)", int(k))
	}
}

// Mode is the completion policy of a session.
type Mode struct {
	Kind  ModeKind
	Words int
	Limit time.Duration
}

// FixedText returns the fixed-text mode.
func FixedText() Mode {
	return Mode{Kind: ModeFixedText}
}

// WordCount returns a mode that ends after n words.
func WordCount(n int) Mode {
	return Mode{Kind: ModeWordCount, Words: n}
}

// TimeLimit returns a mode that ends after limit.
func TimeLimit(limit time.Duration) Mode {
	return Mode{Kind: ModeTimeLimit, Limit: limit}
}

// String implements fmt.Stringer.
func (m Mode) String() string {
	switch m.Kind {
	case ModeWordCount:
		return fmt.Sprintf("words(%d)", m.Words)
	case ModeTimeLimit:
		return fmt.Sprintf("time(%s)", m.Limit)
	default:
		return m.Kind.String()
	}
}

// State is the lifecycle state of a session.
type State int

const (
	StateNotStarted State = iota
	StateRunning
	StateFinished
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not-started"
	case StateRunning:
		return "running"
	case StateFinished:
		return "finished"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Class classifies one rendered position of the passage.
type Class int

const (
	Correct Class = iota
	Incorrect
	Pending
	Extra
)

// String implements fmt.Stringer.
func (c Class) String() string {
	switch c {
	case Correct:
		return "correct"
	case Incorrect:
		return "incorrect"
	case Pending:
		return "pending"
	case Extra:
		return "extra"
	default:
		return fmt.Sprintf("Class(%d)", int(c))
	}
}

// EventKind enumerates logical input events.
type EventKind int

const (
	EventPrintable EventKind = iota
	EventBackspace
	EventTab
	EventEnter
	EventTick
)

// Event is a logical input event resolved at the UI boundary.
type Event struct {
	Kind EventKind
	Char rune
}

// Printable returns a printable character event.
func Printable(r rune) Event {
	return Event{Kind: EventPrintable, Char: r}
}

// Backspace returns a backspace event.
func Backspace() Event {
	return Event{Kind: EventBackspace}
}

// Tab returns a tab event.
func Tab() Event {
	return Event{Kind: EventTab}
}

// Enter returns an enter event.
func Enter() Event {
	return Event{Kind: EventEnter}
}

// Tick returns a timer tick event.
func Tick() Event {
	return Event{Kind: EventTick}
}

// Cell is one classified position produced by Session.Diff.
type Cell struct {
	Word      int
	Index     int
	Class     Class
	Char      rune
	Separator bool
}

// Statistics is the final record of a finished session.
type Statistics struct {
	Elapsed        time.Duration
	RawWPM         float64
	AdjustedWPM    float64
	Accuracy       float64
	CorrectChars   int
	IncorrectChars int
}

// ElapsedSeconds returns the elapsed time in seconds.
func (s Statistics) ElapsedSeconds() float64 {
	return s.Elapsed.Seconds()
}

// Progress is a snapshot for progress displays.
type Progress struct {
	WordsDone  int
	WordsTotal int
	Remaining  time.Duration
}

// Outcome reports what a recorded event did to the session.
type Outcome struct {
	Started  bool
	Finished bool
	Restart  bool
}
