package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/verte-zerg/burgertype/internal/engine"
	"github.com/verte-zerg/burgertype/internal/model"
	"github.com/verte-zerg/burgertype/internal/passage"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.t
}

func newTestModel(t *testing.T, cfg model.Config, words []string) (*Model, *fakeClock) {
	t.Helper()
	m, err := NewModel(cfg, passage.NewSeeded(1), words, zerolog.Nop())
	if err != nil {
		t.Fatalf("new model: %v", err)
	}
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	m.now = clock.Now
	if !m.prompting {
		m.restart()
	}
	return m, clock
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(m *Model, msgs ...tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	for _, msg := range msgs {
		_, cmd = m.Update(msg)
	}
	return cmd
}

func TestEventsForKey(t *testing.T) {
	cases := []struct {
		msg  tea.KeyMsg
		want []engine.Event
	}{
		{msg: keyRunes("a"), want: []engine.Event{engine.Printable('a')}},
		{msg: keyRunes("hi"), want: []engine.Event{engine.Printable('h'), engine.Printable('i')}},
		{msg: tea.KeyMsg{Type: tea.KeySpace}, want: []engine.Event{engine.Printable(' ')}},
		{msg: tea.KeyMsg{Type: tea.KeyBackspace}, want: []engine.Event{engine.Backspace()}},
		{msg: tea.KeyMsg{Type: tea.KeyTab}, want: []engine.Event{engine.Tab()}},
		{msg: tea.KeyMsg{Type: tea.KeyEnter}, want: []engine.Event{engine.Enter()}},
		{msg: tea.KeyMsg{Type: tea.KeyUp}, want: nil},
	}
	for _, tc := range cases {
		got := eventsForKey(tc.msg)
		if len(got) != len(tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.msg, tc.want, got)
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Fatalf("%s: expected %v, got %v", tc.msg, tc.want, got)
			}
		}
	}
}

func TestTypingFinishesFixedText(t *testing.T) {
	m, clock := newTestModel(t, model.Config{Mode: model.ModeFixed, Text: "ab cd.", Punctuation: true}, nil)
	send(m, keyRunes("ab"), tea.KeyMsg{Type: tea.KeySpace})
	clock.t = clock.t.Add(6 * time.Second)
	send(m, keyRunes("cd"))

	if m.session.State() != engine.StateFinished {
		t.Fatalf("expected finished session, got %s", m.session.State())
	}
	if !m.hasLast || m.last.CorrectChars != 5 {
		t.Fatalf("expected last stats to be recorded, got %+v", m.last)
	}
	if !strings.Contains(m.View(), "Test Results") {
		t.Fatalf("expected result page")
	}
}

func TestTabEnterRestartsAfterFinish(t *testing.T) {
	m, _ := newTestModel(t, model.Config{Mode: model.ModeFixed, Text: "go"}, nil)
	send(m, keyRunes("go"))
	if m.session.State() != engine.StateFinished {
		t.Fatalf("expected finished session")
	}
	send(m, tea.KeyMsg{Type: tea.KeyTab}, tea.KeyMsg{Type: tea.KeyEnter})
	if m.session.State() != engine.StateNotStarted || m.session.Typed() != "" {
		t.Fatalf("expected fresh session after restart")
	}
	if !strings.Contains(m.renderFooter(), "Last") {
		t.Fatalf("expected last result in footer after restart")
	}
}

func TestCtrlRRestarts(t *testing.T) {
	m, _ := newTestModel(t, model.Config{Mode: model.ModeFixed, Text: "alpha beta"}, nil)
	send(m, keyRunes("alp"))
	send(m, tea.KeyMsg{Type: tea.KeyCtrlR})
	if m.session.Typed() != "" {
		t.Fatalf("expected empty buffer after ctrl+r, got %q", m.session.Typed())
	}
}

func TestTimeModeTicks(t *testing.T) {
	cfg := model.Config{Mode: model.ModeTime, Seconds: 15, Words: 10}
	m, clock := newTestModel(t, cfg, []string{"red", "green", "blue"})
	if got := m.statusLine(); got != "Time left 15s" {
		t.Fatalf("unexpected status line: %q", got)
	}
	cmd := send(m, keyRunes("x"))
	if cmd == nil {
		t.Fatalf("expected first keystroke to arm the tick")
	}
	if cmd := m.handleTick(tickMsg{gen: m.tickGen - 1}); cmd != nil {
		t.Fatalf("expected stale tick to be dropped")
	}
	clock.t = clock.t.Add(5 * time.Second)
	if cmd := send(m, tickMsg{gen: m.tickGen}); cmd == nil {
		t.Fatalf("expected tick to re-arm while running")
	}
	if got := m.statusLine(); got != "Time left 10s" {
		t.Fatalf("unexpected status line: %q", got)
	}
	clock.t = clock.t.Add(10 * time.Second)
	if cmd := send(m, tickMsg{gen: m.tickGen}); cmd != nil {
		t.Fatalf("expected tick to stop once finished")
	}
	if m.session.State() != engine.StateFinished {
		t.Fatalf("expected finished session, got %s", m.session.State())
	}
	if st, _ := m.session.Stats(); st.Elapsed != 15*time.Second {
		t.Fatalf("expected 15s elapsed, got %s", st.Elapsed)
	}
}

func TestWordModeStatusLine(t *testing.T) {
	cfg := model.Config{Mode: model.ModeWords, Words: 2}
	m, _ := newTestModel(t, cfg, []string{"red", "green", "blue"})
	if got := len(m.session.Target()); got != 2 {
		t.Fatalf("expected 2 target words, got %d", got)
	}
	if got := m.statusLine(); got != "Start typing to begin the test." {
		t.Fatalf("unexpected status line: %q", got)
	}
	send(m, keyRunes("r"))
	if got := m.statusLine(); got != "Words 0/2" {
		t.Fatalf("unexpected status line: %q", got)
	}
}

func TestCustomPrompt(t *testing.T) {
	m, _ := newTestModel(t, model.Config{Mode: model.ModeFixed, Custom: true}, nil)
	if !m.prompting || m.session != nil {
		t.Fatalf("expected prompt stage")
	}
	send(m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.prompting || m.promptErr == "" {
		t.Fatalf("expected empty prompt to be rejected")
	}
	send(m, keyRunes("hello there,"), tea.KeyMsg{Type: tea.KeyEnter})
	if m.prompting {
		t.Fatalf("expected prompt to be accepted")
	}
	target := m.session.Target()
	if strings.Join(target, " ") != "hello there" {
		t.Fatalf("unexpected target: %v", target)
	}
	m.restart()
	if strings.Join(m.session.Target(), " ") != "hello there" {
		t.Fatalf("expected restart to reuse the custom prompt")
	}
}

func TestRenderFooterFormats(t *testing.T) {
	m, _ := newTestModel(t, model.Config{Mode: model.ModeFixed}, nil)
	m.hasLast = true
	m.last = engine.Statistics{AdjustedWPM: 72.4, Accuracy: 97.8}
	out := m.renderFooter()
	for _, want := range []string{"Last 72.4 WPM", "97.8%", "ctrl+r restart", "ctrl+c quit"} {
		if !strings.Contains(out, want) {
			t.Fatalf("footer missing %q: %s", want, out)
		}
	}
}

func TestNewModelRejectsEmptyWordList(t *testing.T) {
	_, err := NewModel(model.Config{Mode: model.ModeWords, Words: 5}, passage.NewSeeded(1), nil, zerolog.Nop())
	if err == nil {
		t.Fatalf("expected error without a word list")
	}
}

func TestCopyResults(t *testing.T) {
	m, _ := newTestModel(t, model.Config{Mode: model.ModeFixed, Text: "go"}, nil)
	var copied string
	m.copyText = func(s string) error {
		copied = s
		return nil
	}
	send(m, tea.KeyMsg{Type: tea.KeyCtrlY})
	if copied != "" {
		t.Fatalf("expected nothing copied before the test finishes")
	}
	send(m, keyRunes("go"), tea.KeyMsg{Type: tea.KeyCtrlY})
	if !strings.HasPrefix(copied, "burgertype fixed:") || !strings.Contains(copied, "100.00% accuracy") {
		t.Fatalf("unexpected summary: %q", copied)
	}
	if !strings.Contains(m.View(), "Results copied.") {
		t.Fatalf("expected copy notice on result page")
	}

	m.copyText = func(string) error { return errors.New("no clipboard") }
	send(m, tea.KeyMsg{Type: tea.KeyCtrlY})
	if m.notice != "Clipboard unavailable." {
		t.Fatalf("unexpected notice: %q", m.notice)
	}
	m.restart()
	if m.notice != "" {
		t.Fatalf("expected notice cleared on restart")
	}
}

func TestEventsForKeyIgnoresAlt(t *testing.T) {
	if got := eventsForKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x"), Alt: true}); got != nil {
		t.Fatalf("expected alt+x to map to nothing, got %v", got)
	}
	m, _ := newTestModel(t, model.Config{Mode: model.ModeFixed, Text: "xyz"}, nil)
	send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x"), Alt: true})
	if m.session.Typed() != "" || m.session.State() != engine.StateNotStarted {
		t.Fatalf("expected alt+x to leave the session untouched, got %q", m.session.Typed())
	}
	if m.pressed != "" {
		t.Fatalf("expected alt+x not to light a key, got %q", m.pressed)
	}
}

func TestKeyboardHighlightsPressedKey(t *testing.T) {
	m, _ := newTestModel(t, model.Config{Mode: model.ModeFixed, Text: "alpha beta"}, nil)
	if !strings.Contains(m.View(), "space") {
		t.Fatalf("expected keyboard panel on the test screen")
	}
	cmd := send(m, keyRunes("A"))
	if cmd == nil {
		t.Fatalf("expected a release to be scheduled")
	}
	if m.pressed != "a" {
		t.Fatalf("expected key a to be lit, got %q", m.pressed)
	}
	if !strings.Contains(renderKeyboard(m.pressed), pressedKeyCapStyle.Render("a")) {
		t.Fatalf("expected pressed key style in keyboard panel")
	}
	first := m.pressGen

	send(m, tea.KeyMsg{Type: tea.KeySpace})
	if m.pressed != spaceKey {
		t.Fatalf("expected space bar to be lit, got %q", m.pressed)
	}
	send(m, keyReleaseMsg{gen: first})
	if m.pressed != spaceKey {
		t.Fatalf("expected stale release to keep the newer key lit")
	}
	send(m, keyReleaseMsg{gen: m.pressGen})
	if m.pressed != "" {
		t.Fatalf("expected key to clear after release, got %q", m.pressed)
	}

	send(m, keyRunes("1"))
	if m.pressed != "" {
		t.Fatalf("expected keys outside the panel not to light, got %q", m.pressed)
	}
}

func TestTabEnterLogsAbandonedSession(t *testing.T) {
	var buf strings.Builder
	m, err := NewModel(model.Config{Mode: model.ModeFixed, Text: passage.DefaultSample, Punctuation: true},
		passage.NewSeeded(1), nil, zerolog.New(&buf).Level(zerolog.DebugLevel))
	if err != nil {
		t.Fatalf("new model: %v", err)
	}
	send(m, keyRunes("The qu"), tea.KeyMsg{Type: tea.KeyTab}, tea.KeyMsg{Type: tea.KeyEnter})
	if m.session.Typed() != "" {
		t.Fatalf("expected fresh session after tab+enter")
	}
	out := buf.String()
	if !strings.Contains(out, `"state":"running"`) || !strings.Contains(out, `"typed":6`) {
		t.Fatalf("expected reset log with the abandoned session, got %s", out)
	}
}
