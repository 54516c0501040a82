package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/konst/lang"
	"github.com/ardnew/konst/log"
)

type (
	// editDoneMsg is sent when the editor exits. changed reports whether the
	// session source was replaced.
	editDoneMsg struct{ changed bool }
	// editDeclinedMsg is sent when the user declines to edit again after a
	// parse error.
	editDeclinedMsg struct{}
	editErrorMsg    struct{ err error }
)

const (
	sourcePrompt = "➜ "
	ctrlPrompt   = " :"
)

// inputMode selects how an input line is interpreted.
type inputMode int

const (
	modeSource inputMode = iota
	modeCtrl
)

var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	ctrlPromptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("5")).
			Bold(true)
	inputStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	resultStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	suggestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	matchStyle      = suggestionStyle.Bold(true).Underline(true)
	selectedStyle   = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4"))
	selectedMatchStyle = selectedStyle.Bold(true).Underline(true)
)

func (m inputMode) prompt() string {
	if m == modeCtrl {
		return ctrlPromptStyle.Render(ctrlPrompt)
	}

	return promptStyle.Render(sourcePrompt)
}

// Config configures [Run].
type Config struct {
	// Source is the initial konst source.
	Source string
	// HistoryPath is the history file. Empty keeps history in memory.
	HistoryPath string
	// Options configure every parse of the session source.
	Options []lang.Option
	Logger  log.Logger
	// InputTTY reads keys from the controlling terminal instead of stdin.
	// Set it when stdin supplied the source.
	InputTTY bool
	Input    io.Reader
	Output   io.Writer
}

// Run parses cfg.Source and runs the interactive loop until the user quits
// or ctx is done.
func Run(ctx context.Context, cfg Config) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	session, err := NewSession(ctx, cfg.Source, cfg.Logger, cfg.Options...)
	if err != nil {
		return err
	}

	cfg.Logger.TraceContext(ctx, "repl start",
		slog.Int("entries", session.Document().Len()),
		slog.Int("constants", session.Constants().Len()),
		slog.String("history", cfg.HistoryPath),
	)

	history := NewHistory(cfg.HistoryPath)
	if err := history.Load(); err != nil {
		cfg.Logger.WarnContext(ctx, "history not loaded", slog.Any("error", err))
	}

	opts := []tea.ProgramOption{tea.WithContext(ctx)}

	switch {
	case cfg.Input != nil:
		opts = append(opts, tea.WithInput(cfg.Input))
	case cfg.InputTTY:
		opts = append(opts, tea.WithInputTTY())
	}

	if cfg.Output != nil {
		opts = append(opts, tea.WithOutput(cfg.Output))
	}

	_, err = tea.NewProgram(newModel(ctx, session, history, cfg.Logger), opts...).Run()

	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return context.Cause(ctx)
	}

	return err
}

// model is the Bubble Tea model of the REPL.
type model struct {
	ctx        func() context.Context
	input      textinput.Model
	session    *Session
	logger     log.Logger
	history    *History
	historyIdx int

	matches      fuzzy.Matches
	wordStart    int
	wordEnd      int
	suggIdx      int
	tabActive    bool
	preTabText   string
	preTabCursor int

	width    int
	quitting bool
	mode     inputMode
	// saved is the unsubmitted input of each mode.
	saved [2]struct {
		text   string
		cursor int
	}
}

const defaultWidth = 80

func newModel(ctx context.Context, session *Session, history *History, logger log.Logger) model {
	ti := textinput.New()
	ti.Prompt = modeSource.prompt()
	ti.Focus()
	ti.CharLimit = 4096
	ti.Width = defaultWidth

	return model{
		ctx:        func() context.Context { return ctx },
		input:      ti,
		session:    session,
		logger:     logger,
		history:    history,
		historyIdx: history.Len(),
		suggIdx:    -1,
		width:      defaultWidth,
		mode:       modeSource,
	}
}

func (m model) Init() tea.Cmd { return textinput.Blink }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = max(msg.Width-lipgloss.Width(sourcePrompt)-2, 1)

		return m, nil

	case editDoneMsg:
		if !msg.changed {
			return m, tea.Println(hintStyle.Render("edit cancelled"))
		}

		m.logger.TraceContext(m.ctx(), "repl edit complete",
			slog.Int("entries", m.session.Document().Len()),
		)

		return m, tea.Println(resultStyle.Render(
			fmt.Sprintf("source replaced (%d entries)", m.session.Document().Len()),
		))

	case editDeclinedMsg:
		m.quitting = true

		return m, tea.Quit

	case editErrorMsg:
		return m, tea.Println(errorStyle.Render("error: " + msg.err.Error()))
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	return m.input.View() + "\n" + m.hint() + "\n"
}

// hint returns the line shown below the input.
func (m model) hint() string {
	input := m.input.Value()

	if m.historyIdx < m.history.Len() {
		pos := lipgloss.NewStyle().Bold(true).Render(strconv.Itoa(m.historyIdx + 1))

		return hintStyle.Render(pos + "/" + strconv.Itoa(m.history.Len()))
	}

	if strings.TrimSpace(input) == "" {
		if m.mode == modeCtrl {
			return hintStyle.Render("Type a command: " + strings.Join(commandNames(), ", ") + " (Esc to return)")
		}

		return hintStyle.Render("Type konst source, ?expression, or press Esc for commands")
	}

	if m.mode == modeSource && isQuery(input) {
		call := detectFunctionCall(input, m.input.Position())
		if call.inCall {
			if sig, ok := signatureOf(call.name); ok {
				return sig.render(call.argIndex)
			}
		}
	}

	return renderCandidateBar(m.matches, m.suggIdx, m.tabActive, m.width)
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	m.logger.TraceContext(m.ctx(), "repl keypress", slog.String("key", msg.String()))

	switch msg.Type {
	case tea.KeyCtrlC:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		m.input.SetValue("")
		m.tabActive = false
		m.historyIdx = m.history.Len()
		m.refreshMatches(false)

		return m, nil

	case tea.KeyCtrlD:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		return m, nil

	case tea.KeyEnter:
		if m.tabActive && len(m.matches) > 0 {
			// Accept the candidate without submitting.
			m.tabActive = false
			m.refreshMatches(true)

			return m, nil
		}

		return m.submit()

	case tea.KeyTab:
		return m.cycle(1), nil

	case tea.KeyShiftTab:
		return m.cycle(-1), nil

	case tea.KeyUp:
		return m.historyStep(-1, false), nil

	case tea.KeyDown:
		return m.historyStep(1, false), nil

	case tea.KeyShiftUp:
		return m.historyStep(-1, true), nil

	case tea.KeyShiftDown:
		return m.historyStep(1, true), nil

	case tea.KeyEsc:
		if m.tabActive {
			m.tabActive = false
			m.input.SetValue(m.preTabText)
			m.input.SetCursor(m.preTabCursor)
			m.refreshMatches(false)

			return m, nil
		}

		if m.mode == modeCtrl {
			return m.switchMode(modeSource), nil
		}

		return m.switchMode(modeCtrl), nil

	case tea.KeyRunes, tea.KeySpace:
		if m.tabActive && msg.String() == " " {
			m.tabActive = false
		}

		var cmd tea.Cmd

		m.historyIdx = m.history.Len()
		m.input, cmd = m.input.Update(msg)
		m.refreshMatches(true)

		return m, cmd
	}

	var cmd tea.Cmd

	m.tabActive = false
	m.historyIdx = m.history.Len()
	m.input, cmd = m.input.Update(msg)
	m.refreshMatches(false)

	return m, cmd
}

// cycle selects the next candidate in direction dir, completing a sole
// candidate immediately.
func (m model) cycle(dir int) model {
	n := len(m.matches)
	if n == 0 {
		return m
	}

	if n == 1 {
		m.replaceWord(m.matches[0].Str)
		m.tabActive = false
		m.suggIdx = -1
		m.matches = nil

		return m
	}

	switch {
	case m.tabActive:
		m.suggIdx = (m.suggIdx + dir + n) % n
	case dir < 0:
		m.startTab()
		m.suggIdx = n - 1
	default:
		m.startTab()
		m.suggIdx = 0
	}

	m.replaceWord(m.matches[m.suggIdx].Str)

	return m
}

func (m *model) startTab() {
	m.tabActive = true
	m.preTabText = m.input.Value()
	m.preTabCursor = m.input.Position()
}

// replaceWord replaces the word being completed with s.
func (m *model) replaceWord(s string) {
	input := m.input.Value()

	m.input.SetValue(input[:m.wordStart] + s + input[m.wordEnd:])
	m.wordEnd = m.wordStart + len(s)
	m.input.SetCursor(m.wordEnd)
}

// refreshMatches recomputes the completion candidates. With accept set, a
// sole candidate equal to the typed word is accepted.
func (m *model) refreshMatches(accept bool) {
	m.matches, m.wordStart, m.wordEnd = m.computeMatches()

	if !m.tabActive {
		m.suggIdx = -1
	}

	if !accept || len(m.matches) != 1 {
		return
	}

	if m.input.Value()[m.wordStart:m.wordEnd] == m.matches[0].Str {
		m.tabActive = false
		m.suggIdx = -1
		m.matches = nil
	}
}

// submit evaluates the input line.
func (m model) submit() (model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	if input == "" {
		return m, nil
	}

	mode := m.mode

	m.input.SetValue("")
	m.saved[mode].text, m.saved[mode].cursor = "", 0
	m.matches = nil

	if err := m.history.Add(input, mode); err != nil {
		m.logger.WarnContext(m.ctx(), "history not saved", slog.Any("error", err))
	}

	m.historyIdx = m.history.Len()

	if mode == modeCtrl || strings.HasPrefix(input, commandPrefix) {
		return m.runCommand(input)
	}

	echo := tea.Println(promptStyle.Render(sourcePrompt) + inputStyle.Render(input))

	out, err := m.session.Eval(m.ctx(), input)
	m.logger.TraceContext(m.ctx(), "repl eval",
		slog.String("input", input),
		slog.Bool("ok", err == nil),
	)

	if err != nil {
		msg := errorStyle.Render("error: " + err.Error())
		if snippet := m.session.snippet(err, input); snippet != "" {
			msg += "\n" + hintStyle.Render(strings.TrimSuffix(snippet, "\n"))
		}

		return m, tea.Sequence(echo, tea.Println(msg))
	}

	if out == "" {
		return m, echo
	}

	return m, tea.Sequence(echo, tea.Println(resultStyle.Render(out)))
}

func (m model) runCommand(input string) (model, tea.Cmd) {
	echo := tea.Println(ctrlPromptStyle.Render(ctrlPrompt) + inputStyle.Render(strings.TrimPrefix(input, commandPrefix)))

	out, act, err := execute(m.ctx(), m.session, input)
	m.logger.TraceContext(m.ctx(), "repl command",
		slog.String("input", input),
		slog.Bool("ok", err == nil),
	)

	if err != nil {
		return m, tea.Sequence(echo, tea.Println(errorStyle.Render("error: "+err.Error())))
	}

	cmds := []tea.Cmd{echo}
	if out != "" {
		cmds = append(cmds, tea.Println(out))
	}

	switch act {
	case actionClear:
		return m, tea.ClearScreen
	case actionQuit:
		m.quitting = true

		cmds = append(cmds, tea.Quit)
	case actionEdit:
		cmds = append(cmds, m.edit())
	}

	return m, tea.Sequence(cmds...)
}

func (m model) edit() tea.Cmd {
	c := &editCommand{session: m.session, ctx: m.ctx, logger: m.logger}

	return tea.Exec(c, func(err error) tea.Msg {
		switch {
		case errors.Is(err, ErrEditDeclined):
			return editDeclinedMsg{}
		case err != nil:
			return editErrorMsg{err: err}
		}

		return editDoneMsg{changed: c.changed}
	})
}

// historyStep moves dir entries through the history. With sameMode set only
// entries of the current mode are visited; otherwise the mode follows the
// entry. Stepping past the newest entry clears the input.
func (m model) historyStep(dir int, sameMode bool) model {
	for i := m.historyIdx + dir; 0 <= i && i < m.history.Len(); i += dir {
		entry, err := m.history.Entry(i)
		if err != nil {
			break
		}

		if sameMode && entry.Mode != m.mode {
			continue
		}

		if entry.Mode != m.mode {
			m = m.switchMode(entry.Mode)
		}

		m.historyIdx = i
		m.input.SetValue(entry.Line)
		m.input.SetCursor(len(entry.Line))
		m.refreshMatches(false)

		return m
	}

	if dir > 0 && m.historyIdx < m.history.Len() {
		m.historyIdx = m.history.Len()
		m.input.SetValue("")
		m.refreshMatches(false)
	}

	return m
}

// switchMode changes the input mode, keeping each mode's unsubmitted input.
func (m model) switchMode(mode inputMode) model {
	m.saved[m.mode].text, m.saved[m.mode].cursor = m.input.Value(), m.input.Position()

	m.mode = mode
	m.input.Prompt = mode.prompt()
	m.input.SetValue(m.saved[mode].text)
	m.input.SetCursor(m.saved[mode].cursor)
	m.tabActive = false
	m.refreshMatches(false)

	return m
}
