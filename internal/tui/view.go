package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/burgertype/internal/engine"
)

var (
	correctStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#E2E2E3"))
	incorrectStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FC5D7C"))
	extraStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#ECAC6A"))
	pendingStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	currentWordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#E7C664"))
	titleStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#E7C664")).Bold(true)
	statusStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	footerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#FC5D7C"))
	resultLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C")).Width(14)
	resultValueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	resultNoteStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

const title = "Burger Type"

// View implements tea.Model.
func (m *Model) View() string {
	var content string
	switch {
	case m.prompting:
		content = m.renderPrompt()
	case m.session == nil:
		content = errorStyle.Render(m.errMsg)
	case m.session.State() == engine.StateFinished:
		content = m.renderResults()
	default:
		content = m.renderTest()
	}
	if m.width == 0 || m.height == 0 {
		return content
	}
	footer := m.renderFooter()
	if footer == "" || m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	body := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func (m *Model) renderPrompt() string {
	lines := []string{
		titleStyle.Render(title),
		"",
		statusStyle.Render("Enter a custom passage:"),
		m.prompt.View(),
	}
	if m.promptErr != "" {
		lines = append(lines, errorStyle.Render(m.promptErr))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderTest() string {
	word, index := m.session.Cursor()
	styled := buildStyledRunes(m.session.Cells(), word, index)
	contentWidth := 0
	if m.width > 0 {
		contentWidth = max(int(float64(m.width)*0.70), 1)
	}
	text := wrapStyledRunes(styled, contentWidth)
	if contentWidth > 0 {
		text = lipgloss.NewStyle().Width(contentWidth).Render(text)
	}
	lines := []string{
		titleStyle.Render(title),
		"",
		statusStyle.Render(m.statusLine()),
		"",
		text,
		"",
		renderKeyboard(m.pressed),
	}
	if m.errMsg != "" {
		lines = append(lines, "", errorStyle.Render(m.errMsg))
	}
	return lipgloss.JoinVertical(lipgloss.Center, lines...)
}

func (m *Model) statusLine() string {
	p := m.session.Progress()
	if m.session.Mode().Kind == engine.ModeTimeLimit {
		return fmt.Sprintf("Time left %ds", int(math.Ceil(p.Remaining.Seconds())))
	}
	if m.session.State() == engine.StateNotStarted {
		return "Start typing to begin the test."
	}
	return fmt.Sprintf("Words %d/%d", p.WordsDone, p.WordsTotal)
}

func (m *Model) renderResults() string {
	st, _ := m.session.Stats()
	rows := []string{
		titleStyle.Render("Test Results"),
		"",
		resultRow("Time", fmt.Sprintf("%.1f sec", st.ElapsedSeconds()), ""),
		resultRow("Raw WPM", fmt.Sprintf("%.0f", st.RawWPM), fmt.Sprintf("%.2f wpm", st.RawWPM)),
		resultRow("Adjusted WPM", fmt.Sprintf("%.0f", st.AdjustedWPM), fmt.Sprintf("%.2f wpm", st.AdjustedWPM)),
		resultRow("Accuracy", fmt.Sprintf("%.0f%%", st.Accuracy), fmt.Sprintf("%.2f%% · %d correct · %d incorrect", st.Accuracy, st.CorrectChars, st.IncorrectChars)),
	}
	if m.notice != "" {
		rows = append(rows, "", resultNoteStyle.Render(m.notice))
	}
	return strings.Join(rows, "\n")
}

// resultsSummary is the plain-text form of a result put on the clipboard.
func resultsSummary(mode engine.Mode, st engine.Statistics) string {
	return fmt.Sprintf("burgertype %s: %.2f wpm (raw %.2f), %.2f%% accuracy, %.1f sec",
		mode.Kind, st.AdjustedWPM, st.RawWPM, st.Accuracy, st.ElapsedSeconds())
}

func resultRow(label, value, note string) string {
	row := resultLabelStyle.Render(label) + resultValueStyle.Render(value)
	if note != "" {
		row += "  " + resultNoteStyle.Render(note)
	}
	return row
}

func (m *Model) renderFooter() string {
	var segments []string
	if m.hasLast && (m.session == nil || m.session.State() != engine.StateFinished) {
		segments = append(segments, fmt.Sprintf("Last %.1f WPM · %.1f%%", m.last.AdjustedWPM, m.last.Accuracy))
	}
	if m.prompting {
		segments = append(segments, helpText(keys.Submit), helpText(keys.Quit))
	} else {
		segments = append(segments, "tab+enter restart", helpText(keys.Restart))
		if m.session != nil && m.session.State() == engine.StateFinished {
			segments = append(segments, helpText(keys.Copy))
		}
		segments = append(segments, helpText(keys.Quit))
	}
	return footerStyle.Render(strings.Join(segments, "  "))
}

func helpText(b key.Binding) string {
	h := b.Help()
	return h.Key + " " + h.Desc
}
