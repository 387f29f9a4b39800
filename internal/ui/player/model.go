// Package player is the interactive terminal exam player.
package player

import (
	"errors"
	"slices"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	bar "github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"examplayer/internal/exam"
	"examplayer/internal/progress"
)

// Options configures the player model.
type Options struct {
	NoColor      bool
	AdvanceDelay time.Duration
}

// Model renders one exam session driven by a progress engine.
type Model struct {
	engine   *progress.Engine
	delay    time.Duration
	keys     keyMap
	help     help.Model
	bar      bar.Model
	noColor  bool
	cursor   int
	selected map[int]bool
	grading  *progress.Grading
	notice   string
	unloaded bool
	quitting bool
}

// advanceMsg fires when the feedback delay for a graded answer elapses.
type advanceMsg struct {
	ticket progress.Ticket
}

// NewModel builds a player for an engine that already has an exam loaded.
func NewModel(engine *progress.Engine, opts Options) Model {
	delay := opts.AdvanceDelay
	if delay < 0 {
		delay = 0
	}
	barOpts := []bar.Option{bar.WithWidth(40), bar.WithoutPercentage()}
	if opts.NoColor {
		barOpts = append(barOpts, bar.WithFillCharacters('#', '.'))
	} else {
		barOpts = append(barOpts, bar.WithDefaultGradient())
	}
	progressBar := bar.New(barOpts...)
	if opts.NoColor {
		progressBar.FullColor = ""
		progressBar.EmptyColor = ""
	}
	m := Model{
		engine:   engine,
		delay:    delay,
		keys:     defaultKeyMap(),
		help:     help.New(),
		bar:      progressBar,
		noColor:  opts.NoColor,
		selected: map[int]bool{},
	}
	m.keys.complete = engine.State() == progress.Complete
	return m
}

// Init has nothing to start; the player waits for keys.
func (m Model) Init() tea.Cmd {
	return nil
}

// Unloaded reports whether the user chose to load a new exam.
func (m Model) Unloaded() bool {
	return m.unloaded
}

// Update handles keys and advance timers.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = typed.Width
		m.bar.Width = max(min(typed.Width-4, 60), 10)
		return m, nil
	case advanceMsg:
		if m.engine.Advance(typed.ticket) {
			m = m.resetQuestion()
		}
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(typed)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.quitting = true
		return m, tea.Quit
	}
	switch m.engine.State() {
	case progress.Complete:
		return m.handleScoreboardKey(msg)
	case progress.InProgress:
		return m.handleQuestionKey(msg)
	default:
		return m, nil
	}
}

func (m Model) handleScoreboardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Restart):
		if err := m.engine.Restart(); err != nil {
			m.notice = err.Error()
			return m, nil
		}
		return m.resetQuestion(), nil
	case key.Matches(msg, m.keys.NewExam):
		m.engine.Unload()
		m.unloaded = true
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleQuestionKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.engine.Awaiting() {
		return m, nil
	}
	question, _, ok := m.engine.Current()
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(question.Options)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Toggle):
		m = m.toggle(question, m.cursor)
	case key.Matches(msg, m.keys.Submit):
		if question.Type == exam.TypeSingle && len(m.selected) == 0 {
			m = m.toggle(question, m.cursor)
		}
		return m.submit()
	default:
		if index, ok := optionShortcut(msg, len(question.Options)); ok {
			m.cursor = index
			m = m.toggle(question, index)
		}
	}
	return m, nil
}

// toggle flips an option. Single-choice questions keep at most one selection.
func (m Model) toggle(question exam.Question, index int) Model {
	selected := make(map[int]bool, len(m.selected)+1)
	if question.Type != exam.TypeSingle {
		for k, v := range m.selected {
			selected[k] = v
		}
	}
	if !m.selected[index] || question.Type == exam.TypeSingle {
		selected[index] = true
	} else {
		delete(selected, index)
	}
	m.selected = selected
	m.notice = ""
	return m
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	if len(m.selected) == 0 {
		m.notice = "Select an answer first."
		return m, nil
	}
	grading, err := m.engine.Submit(m.selection())
	if err != nil {
		if errors.Is(err, exam.ErrUngradable) {
			m.notice = "This question cannot be graded here."
		} else {
			m.notice = err.Error()
		}
		return m, nil
	}
	m.grading = &grading
	m.notice = ""
	ticket := grading.Ticket
	return m, tea.Tick(m.delay, func(time.Time) tea.Msg {
		return advanceMsg{ticket: ticket}
	})
}

func (m Model) selection() []int {
	out := make([]int, 0, len(m.selected))
	for index := range m.selected {
		out = append(out, index)
	}
	slices.Sort(out)
	return out
}

func (m Model) resetQuestion() Model {
	m.cursor = 0
	m.selected = map[int]bool{}
	m.grading = nil
	m.notice = ""
	m.keys.complete = m.engine.State() == progress.Complete
	return m
}

// optionShortcut maps the digit keys 1-9 onto option indices.
func optionShortcut(msg tea.KeyMsg, count int) (int, bool) {
	if msg.Type != tea.KeyRunes || len(msg.Runes) != 1 {
		return 0, false
	}
	r := msg.Runes[0]
	if r < '1' || r > '9' {
		return 0, false
	}
	index := int(r - '1')
	return index, index < count
}
