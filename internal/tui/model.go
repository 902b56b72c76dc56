// Package tui provides the Bubble Tea typing interface.
package tui

import (
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/verte-zerg/burgertype/internal/engine"
	"github.com/verte-zerg/burgertype/internal/logging"
	"github.com/verte-zerg/burgertype/internal/model"
	"github.com/verte-zerg/burgertype/internal/passage"
)

const tickInterval = 200 * time.Millisecond

// tickMsg drives time-limit sessions. gen ties a tick to the session that
// armed it so ticks from before a restart are dropped.
type tickMsg struct {
	gen int
}

type keyMap struct {
	Quit    key.Binding
	Restart key.Binding
	Submit  key.Binding
	Copy    key.Binding
}

var keys = keyMap{
	Quit:    key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	Restart: key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "restart")),
	Submit:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "start")),
	Copy:    key.NewBinding(key.WithKeys("ctrl+y"), key.WithHelp("ctrl+y", "copy results")),
}

// Model implements the Bubble Tea typing UI.
type Model struct {
	config   model.Config
	gen      *passage.Generator
	words    []string
	log      zerolog.Logger
	now      func() time.Time
	copyText func(string) error

	session *engine.Session
	tickGen int

	pressed  string
	pressGen int

	prompting  bool
	prompt     textinput.Model
	promptText string
	promptErr  string
	errMsg     string
	notice     string

	width  int
	height int

	last    engine.Statistics
	hasLast bool
}

// NewModel constructs a typing TUI model. words is the word list used by
// word-count and time-limit tests; it may be empty for fixed text.
func NewModel(cfg model.Config, gen *passage.Generator, words []string, log zerolog.Logger) (*Model, error) {
	m := &Model{
		config:   cfg,
		gen:      gen,
		words:    words,
		log:      log,
		now:      time.Now,
		copyText: clipboard.WriteAll,
	}
	if cfg.Custom && cfg.Text == "" {
		m.startPrompt()
		return m, nil
	}
	m.promptText = cfg.Text
	if err := m.newSession(); err != nil {
		return nil, err
	}
	return m, nil
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	if m.prompting {
		return textinput.Blink
	}
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.prompt.Width = max(msg.Width/2, 10)
		return m, nil
	case tickMsg:
		return m, m.handleTick(msg)
	case keyReleaseMsg:
		if msg.gen == m.pressGen {
			m.pressed = ""
		}
		return m, nil
	case tea.KeyMsg:
		if key.Matches(msg, keys.Quit) {
			return m, tea.Quit
		}
		if m.prompting {
			return m.updatePrompt(msg)
		}
		if key.Matches(msg, keys.Restart) {
			m.restart()
			return m, nil
		}
		if key.Matches(msg, keys.Copy) {
			m.copyResults()
			return m, nil
		}
		return m, tea.Batch(m.pressKey(msg), m.handleEvents(eventsForKey(msg)))
	default:
		if m.prompting {
			var cmd tea.Cmd
			m.prompt, cmd = m.prompt.Update(msg)
			return m, cmd
		}
		return m, nil
	}
}

// eventsForKey resolves a toolkit key message into engine events.
// Alt-modified keys are shortcuts, not text, and map to nothing.
func eventsForKey(msg tea.KeyMsg) []engine.Event {
	if msg.Alt {
		return nil
	}
	switch msg.Type {
	case tea.KeyBackspace, tea.KeyDelete:
		return []engine.Event{engine.Backspace()}
	case tea.KeySpace:
		return []engine.Event{engine.Printable(' ')}
	case tea.KeyTab:
		return []engine.Event{engine.Tab()}
	case tea.KeyEnter:
		return []engine.Event{engine.Enter()}
	case tea.KeyRunes:
		events := make([]engine.Event, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			events = append(events, engine.Printable(r))
		}
		return events
	default:
		return nil
	}
}

func (m *Model) handleEvents(events []engine.Event) tea.Cmd {
	if m.session == nil {
		return nil
	}
	var cmd tea.Cmd
	for _, ev := range events {
		state, typed := m.session.State(), len([]rune(m.session.Typed()))
		out := m.session.Record(ev)
		if out.Restart {
			m.restartFrom(state, typed)
			return nil
		}
		if out.Started && m.session.Mode().Kind == engine.ModeTimeLimit {
			cmd = m.tick()
		}
		if out.Finished {
			m.onFinished()
			return nil
		}
	}
	return cmd
}

func (m *Model) handleTick(msg tickMsg) tea.Cmd {
	if m.session == nil || msg.gen != m.tickGen {
		return nil
	}
	if m.session.State() != engine.StateRunning {
		return nil
	}
	if out := m.session.Record(engine.Tick()); out.Finished {
		m.onFinished()
		return nil
	}
	return m.tick()
}

// pressKey lights the keyboard panel key for a typed rune or space.
func (m *Model) pressKey(msg tea.KeyMsg) tea.Cmd {
	var r rune
	switch {
	case msg.Alt:
		return nil
	case msg.Type == tea.KeySpace:
		r = ' '
	case msg.Type == tea.KeyRunes && len(msg.Runes) == 1:
		r = msg.Runes[0]
	default:
		return nil
	}
	label, ok := keyLabel(r)
	if !ok {
		return nil
	}
	m.pressed = label
	m.pressGen++
	gen := m.pressGen
	return tea.Tick(keyHighlight, func(time.Time) tea.Msg {
		return keyReleaseMsg{gen: gen}
	})
}

func (m *Model) tick() tea.Cmd {
	gen := m.tickGen
	return tea.Tick(tickInterval, func(time.Time) tea.Msg {
		return tickMsg{gen: gen}
	})
}

func (m *Model) copyResults() {
	if m.session == nil || m.session.State() != engine.StateFinished {
		return
	}
	st, _ := m.session.Stats()
	if err := m.copyText(resultsSummary(m.session.Mode(), st)); err != nil {
		m.notice = "Clipboard unavailable."
		m.log.Warn().Err(err).Msg("failed to copy results")
		return
	}
	m.notice = "Results copied."
}

func (m *Model) onFinished() {
	st, ok := m.session.Stats()
	if !ok {
		return
	}
	m.last = st
	m.hasLast = true
	logging.SessionFinish(m.log, m.session.Mode(), st)
}

// restart builds a fresh passage, reshuffling generated ones.
func (m *Model) restart() {
	if m.session != nil {
		logging.SessionReset(m.log, m.session.State(), len([]rune(m.session.Typed())))
	}
	m.replaceSession()
}

// restartFrom is restart for a session the engine has already reset; state
// and typed describe it as it was before.
func (m *Model) restartFrom(state engine.State, typed int) {
	logging.SessionReset(m.log, state, typed)
	m.replaceSession()
}

func (m *Model) replaceSession() {
	if err := m.newSession(); err != nil {
		m.errMsg = err.Error()
		m.log.Error().Err(err).Msg("failed to restart session")
	}
}

func (m *Model) newSession() error {
	mode, err := m.config.SessionMode()
	if err != nil {
		return err
	}
	req := passage.Request{
		Punctuation: m.config.Punctuation,
		CapsPct:     m.config.CapsPct,
		PunctPct:    m.config.PunctPct,
		PunctSet:    []rune(m.config.PunctSet),
	}
	if m.config.UsesWordList() {
		if len(m.words) == 0 {
			return fmt.Errorf("failed to build passage: %w", passage.ErrNoWords)
		}
		req.Words = m.words
		req.Count = m.config.PassageWords()
	} else {
		req.Text = m.passageText()
	}
	target, err := m.gen.Build(req)
	if err != nil {
		return fmt.Errorf("failed to build passage: %w", err)
	}
	session, err := engine.StartWithClock(mode, target, m.now)
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	m.session = session
	m.tickGen++
	m.errMsg = ""
	m.notice = ""
	logging.SessionStart(m.log, mode, len(session.Target()))
	return nil
}

func (m *Model) passageText() string {
	if m.promptText != "" {
		return m.promptText
	}
	return passage.DefaultSample
}

func (m *Model) startPrompt() {
	input := textinput.New()
	input.Placeholder = "Type or paste a passage"
	input.Prompt = "> "
	input.Focus()
	m.prompt = input
	m.prompting = true
}

func (m *Model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.Submit) {
		value := m.prompt.Value()
		if _, err := passage.Custom(value); err != nil {
			m.promptErr = "The passage is empty."
			return m, nil
		}
		m.promptText = value
		if err := m.newSession(); err != nil {
			m.promptErr = err.Error()
			return m, nil
		}
		m.prompting = false
		m.promptErr = ""
		m.prompt.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}
