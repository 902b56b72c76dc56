// Package tui provides the Bubble Tea typing interface.
package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/burgertype/internal/engine"
)

type styledRune struct {
	s       string
	width   int
	isSpace bool
}

// buildStyledRunes styles each diff cell. Pending runes of the word under
// the cursor are highlighted and the cursor position is underlined.
func buildStyledRunes(cells []engine.Cell, cursorWord, cursorIndex int) []styledRune {
	out := make([]styledRune, 0, len(cells))
	for _, cell := range cells {
		style := pendingStyle
		switch cell.Class {
		case engine.Correct:
			style = correctStyle
		case engine.Incorrect:
			style = incorrectStyle
		case engine.Extra:
			style = extraStyle
		case engine.Pending:
			if !cell.Separator && cell.Word == cursorWord {
				style = currentWordStyle
			}
			if cell.Word == cursorWord && cell.Index == cursorIndex {
				style = style.Underline(true)
			}
		}
		out = append(out, styledRune{
			s:       style.Render(string(cell.Char)),
			width:   runewidth.RuneWidth(cell.Char),
			isSpace: cell.Separator,
		})
	}
	return out
}

func renderStyledRunes(runes []styledRune) string {
	var b strings.Builder
	for _, item := range runes {
		b.WriteString(item.s)
	}
	return b.String()
}

// wrapStyledRunes breaks the passage at word separators so no line is wider
// than width. A word wider than the whole line is split where it overflows.
func wrapStyledRunes(runes []styledRune, width int) string {
	if width <= 0 {
		return renderStyledRunes(runes)
	}
	lines := splitLines(runes, width)
	rendered := make([]string, len(lines))
	for i, line := range lines {
		rendered[i] = renderStyledRunes(line)
	}
	return strings.Join(rendered, "\n")
}

func splitLines(runes []styledRune, width int) [][]styledRune {
	var lines [][]styledRune
	start := 0
	for start < len(runes) {
		end, used, brk := start, 0, -1
		for end < len(runes) && (used+runes[end].width <= width || end == start) {
			if runes[end].isSpace {
				brk = end
			}
			used += runes[end].width
			end++
		}
		if end == len(runes) {
			lines = append(lines, runes[start:end])
			break
		}
		switch {
		case runes[end].isSpace:
			// The overflowing rune is itself a separator; drop it.
			lines = append(lines, runes[start:end])
			start = end + 1
		case brk > start:
			lines = append(lines, runes[start:brk])
			start = brk + 1
		default:
			lines = append(lines, runes[start:end])
			start = end
		}
	}
	return lines
}
