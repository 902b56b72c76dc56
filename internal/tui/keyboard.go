package tui

import (
	"strings"
	"time"
	"unicode"

	"github.com/charmbracelet/lipgloss"
)

// keyHighlight is how long a pressed key stays lit on the keyboard panel.
const keyHighlight = 100 * time.Millisecond

// spaceKey is the label the space bar is looked up by.
const spaceKey = " "

var keyboardRows = [][]string{
	{"q", "w", "e", "r", "t", "y", "u", "i", "o", "p", "[", "]"},
	{"a", "s", "d", "f", "g", "h", "j", "k", "l", ";", "'"},
	{"z", "x", "c", "v", "b", "n", "m", ",", ".", "/"},
}

var keyboardKeys = func() map[string]struct{} {
	keys := map[string]struct{}{spaceKey: {}}
	for _, row := range keyboardRows {
		for _, k := range row {
			keys[k] = struct{}{}
		}
	}
	return keys
}()

var keyCapStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#E7C664")).Background(lipgloss.Color("#232429")).Padding(0, 1)

var (
	pressedKeyCapStyle = keyCapStyle.Background(lipgloss.Color("#555555"))
	spaceBarStyle      = keyCapStyle.Width(18).Align(lipgloss.Center)
	pressedSpaceStyle  = spaceBarStyle.Background(lipgloss.Color("#555555"))
)

// keyReleaseMsg clears the highlighted key. gen matches the press that armed
// it so a quick second press is not cleared early.
type keyReleaseMsg struct {
	gen int
}

// keyLabel returns the keyboard panel label for r, if the panel has one.
func keyLabel(r rune) (string, bool) {
	label := string(unicode.ToLower(r))
	if _, ok := keyboardKeys[label]; !ok {
		return "", false
	}
	return label, true
}

// renderKeyboard draws the key rows and the space bar, lighting pressed.
func renderKeyboard(pressed string) string {
	rows := make([]string, 0, len(keyboardRows)+1)
	for _, row := range keyboardRows {
		caps := make([]string, len(row))
		for i, k := range row {
			style := keyCapStyle
			if k == pressed {
				style = pressedKeyCapStyle
			}
			caps[i] = style.Render(k)
		}
		rows = append(rows, strings.Join(caps, " "))
	}
	space := spaceBarStyle
	if pressed == spaceKey {
		space = pressedSpaceStyle
	}
	rows = append(rows, space.Render("space"))
	return lipgloss.JoinVertical(lipgloss.Center, rows...)
}
