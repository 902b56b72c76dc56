package engine

import (
	"iter"
	"slices"
)

// Diff classifies every position of the passage against the typed buffer.
//
// The typed buffer is split on single spaces, so consecutive spaces produce
// empty words that are compared positionally like any other word. The
// sequence is recomputed from the buffer each time it is iterated.
func (s *Session) Diff() iter.Seq[Cell] {
	return func(yield func(Cell) bool) {
		typed := splitWords(s.buffer)
		last := len(s.targetRef) - 1
		for i, want := range s.targetRef {
			var got []rune
			if i < len(typed) {
				got = typed[i]
			}
			for j, r := range want {
				cell := Cell{Word: i, Index: j, Char: r, Class: Pending}
				if j < len(got) {
					if got[j] == r {
						cell.Class = Correct
					} else {
						cell.Class = Incorrect
					}
				}
				if !yield(cell) {
					return
				}
			}
			for j := len(want); j < len(got); j++ {
				if !yield(Cell{Word: i, Index: j, Char: got[j], Class: Extra}) {
					return
				}
			}
			if i == last {
				continue
			}
			sep := Cell{Word: i, Index: max(len(want), len(got)), Char: ' ', Class: Pending, Separator: true}
			if i < len(typed)-1 {
				sep.Class = Correct
			}
			if !yield(sep) {
				return
			}
		}
	}
}

// Cells collects Diff into a slice.
func (s *Session) Cells() []Cell {
	return slices.Collect(s.Diff())
}

// Cursor returns the word and character position the next keystroke fills.
func (s *Session) Cursor() (word, index int) {
	typed := splitWords(s.buffer)
	word = len(typed) - 1
	return word, len(typed[word])
}

func splitWords(buf []rune) [][]rune {
	words := [][]rune{}
	start := 0
	for i, r := range buf {
		if r == ' ' {
			words = append(words, buf[start:i:i])
			start = i + 1
		}
	}
	return append(words, buf[start:len(buf):len(buf)])
}
