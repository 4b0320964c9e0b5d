// Package tui is the terminal front-end: entry fields for add, update and
// lookup above the display region, with keyboard and mouse clicks on the
// region's togglers and words.
package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/heartmarshall/wordtree/internal/display"
	"github.com/heartmarshall/wordtree/internal/domain"
	"github.com/heartmarshall/wordtree/internal/render"
	"github.com/heartmarshall/wordtree/internal/service/lookup"
	"github.com/heartmarshall/wordtree/pkg/ctxutil"
)

type lookupService interface {
	Lookup(ctx context.Context, input lookup.LookupInput) (lookup.Result, error)
	Add(ctx context.Context, input lookup.WordInput) (lookup.Result, error)
	Update(ctx context.Context, input lookup.WordInput) (lookup.Result, error)
	Click(ctx context.Context, id string) ([]lookup.SpeakRequest, error)
	Speak(ctx context.Context, text string) (string, error)
	Region() *display.Region
}

// Focus targets, in tab order.
const (
	focusWord = iota
	focusMeaning
	focusSearch
	focusRegion
	focusCount
)

// Options configures the terminal front-end.
type Options struct {
	// Indent is the number of columns per tree level.
	Indent    int
	Mouse     bool
	AltScreen bool
}

// Messages
type opDoneMsg struct {
	op  string
	res lookup.Result
}

type speakDoneMsg struct {
	text string
	path string
	err  error
}

// Model is the Bubble Tea model of the terminal front-end.
type Model struct {
	ctx    context.Context
	svc    lookupService
	log    *slog.Logger
	opts   Options
	zones  *zone.Manager
	inputs [focusSearch + 1]textinput.Model

	focus     int
	cursor    int
	pending   int
	status    string
	statusErr bool
	width     int
	height    int
	quitting  bool
}

// New creates a Model. Service calls run with ctx tagged as the "tui" front-end.
func New(ctx context.Context, svc lookupService, logger *slog.Logger, opts Options) *Model {
	if opts.Indent <= 0 {
		opts.Indent = 2
	}
	m := &Model{
		ctx:   ctxutil.WithFrontend(ctx, "tui"),
		svc:   svc,
		log:   logger.With("ui", "tui"),
		opts:  opts,
		zones: zone.New(),
	}
	placeholders := [...]string{"word", "meaning", "word to look up"}
	for i := range m.inputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 128
		ti.Prompt = ""
		ti.Cursor.SetMode(cursor.CursorStatic)
		m.inputs[i] = ti
	}
	m.inputs[focusWord].Focus()
	return m
}

// Run starts the program and blocks until the user quits.
func Run(ctx context.Context, svc lookupService, logger *slog.Logger, opts Options) error {
	m := New(ctx, svc, logger, opts)
	defer m.zones.Close()

	progOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if opts.AltScreen {
		progOpts = append(progOpts, tea.WithAltScreen())
	}
	if opts.Mouse {
		progOpts = append(progOpts, tea.WithMouseCellMotion())
	}
	_, err := tea.NewProgram(m, progOpts...).Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		return m.handleMouseMsg(msg)

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case opDoneMsg:
		return m.handleOpDone(msg)

	case speakDoneMsg:
		return m.handleSpeakDone(msg)
	}

	if m.focus < focusRegion {
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "tab":
		m.setFocus((m.focus + 1) % focusCount)
		return m, nil
	case "shift+tab":
		m.setFocus((m.focus + focusCount - 1) % focusCount)
		return m, nil
	case "ctrl+a":
		return m, m.mutate("add")
	case "ctrl+u":
		return m, m.mutate("update")
	}

	if m.focus == focusRegion {
		return m.handleRegionKey(msg)
	}

	if msg.String() == "enter" {
		if m.focus == focusSearch {
			return m, m.query()
		}
		m.setFocus(m.focus + 1)
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *Model) handleRegionKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := m.rows()
	switch msg.String() {
	case "q", "esc":
		m.quitting = true
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(rows)-1 {
			m.cursor++
		}
	case "home", "g":
		m.cursor = 0
	case "end", "G":
		m.cursor = max(len(rows)-1, 0)
	case "enter", " ":
		if m.cursor < len(rows) {
			if t := rows[m.cursor].Toggle(); t != nil {
				return m, m.click(t.ID)
			}
			if w := rows[m.cursor].Word(); w != nil {
				return m, m.click(w.ID)
			}
		}
	case "s":
		if m.cursor < len(rows) {
			if w := rows[m.cursor].Word(); w != nil {
				return m, m.click(w.ID)
			}
		}
	}
	return m, nil
}

func (m *Model) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	for i, row := range m.rows() {
		for _, el := range []*render.Element{row.Toggle(), row.Word()} {
			if el == nil || !m.zones.Get(el.ID).InBounds(msg) {
				continue
			}
			m.setFocus(focusRegion)
			m.cursor = i
			return m, m.click(el.ID)
		}
	}
	return m, nil
}

func (m *Model) handleOpDone(msg opDoneMsg) (tea.Model, tea.Cmd) {
	if m.pending > 0 {
		m.pending--
	}
	if msg.res.Outcome == lookup.OutcomeStale {
		return m, nil
	}
	m.clampCursor()
	m.setStatus(fmt.Sprintf("%s: %s", msg.op, msg.res.Outcome), false)
	return m, nil
}

func (m *Model) handleSpeakDone(msg speakDoneMsg) (tea.Model, tea.Cmd) {
	switch {
	case errors.Is(msg.err, lookup.ErrNoSpeaker):
		m.setStatus("speech is not configured", true)
	case msg.err != nil:
		m.setStatus("speech failed: "+msg.err.Error(), true)
	case msg.path != "":
		m.setStatus(fmt.Sprintf("spoke %q (%s)", msg.text, msg.path), false)
	default:
		m.setStatus(fmt.Sprintf("spoke %q", msg.text), false)
	}
	return m, nil
}

// query validates the search field and starts a lookup.
func (m *Model) query() tea.Cmd {
	input := lookup.LookupInput{Word: m.inputs[focusSearch].Value()}
	if err := input.Validate(); err != nil {
		m.setStatus(domain.UserPrompt(err), true)
		return nil
	}
	m.pending++
	return func() tea.Msg {
		res, err := m.svc.Lookup(m.ctx, input)
		if err != nil {
			m.log.WarnContext(m.ctx, "lookup rejected", slog.String("error", err.Error()))
		}
		return opDoneMsg{op: "query", res: res}
	}
}

// mutate validates the word and meaning fields and starts an add or update.
func (m *Model) mutate(op string) tea.Cmd {
	input := lookup.WordInput{
		Word:    m.inputs[focusWord].Value(),
		Meaning: m.inputs[focusMeaning].Value(),
	}
	if err := input.Validate(); err != nil {
		m.setStatus(domain.UserPrompt(err), true)
		return nil
	}
	call := m.svc.Add
	if op == "update" {
		call = m.svc.Update
	}
	m.pending++
	return func() tea.Msg {
		res, err := call(m.ctx, input)
		if err != nil {
			m.log.WarnContext(m.ctx, op+" rejected", slog.String("error", err.Error()))
		}
		return opDoneMsg{op: op, res: res}
	}
}

// click dispatches a region click. Togglers apply immediately; speak
// intents come back as a command.
func (m *Model) click(id string) tea.Cmd {
	reqs, err := m.svc.Click(m.ctx, id)
	if err != nil {
		m.setStatus(err.Error(), true)
		return nil
	}
	m.clampCursor()

	var cmds []tea.Cmd
	for _, req := range reqs {
		cmds = append(cmds, m.speak(req.Text))
	}
	switch len(cmds) {
	case 0:
		return nil
	case 1:
		return cmds[0]
	}
	return tea.Batch(cmds...)
}

func (m *Model) speak(text string) tea.Cmd {
	return func() tea.Msg {
		path, err := m.svc.Speak(m.ctx, text)
		return speakDoneMsg{text: text, path: path, err: err}
	}
}

func (m *Model) setFocus(f int) {
	m.focus = f
	for i := range m.inputs {
		if i == f {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
}

func (m *Model) setStatus(s string, isErr bool) {
	m.status, m.statusErr = s, isErr
}

// rows returns the visible rows of a snapshot of the region.
func (m *Model) rows() []render.Row {
	return render.Rows(m.svc.Region().Snapshot(), false)
}

func (m *Model) clampCursor() {
	if n := len(m.rows()); m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
}
