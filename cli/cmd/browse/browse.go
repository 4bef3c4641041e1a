package browse

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/fbxtree/fbx"
	"github.com/ardnew/fbxtree/log"
)

const (
	pathPrompt = "➜ "
	ctrlPrompt = " :"
)

// maxSelectLines limits the matches printed by the select command.
const maxSelectLines = 50

func helpMessage() string {
	return `
: Commands (press Esc to toggle mode):

  help           Print this cruft
  list           List top-level nodes
  select EXPR    List nodes matching a filter expression
  clear          Clear screen
  quit           Exit browser

Usage:
  Type a node path such as Objects/Model/Properties70 and press Enter
  Completions of child names appear automatically as you type
  Press Tab / Shift-Tab to cycle through candidates
  Press Esc to toggle between path and command modes
  Use Up/Down arrows for history navigation (mode switches automatically)
  Use Shift+Up/Shift+Down for history navigation within current mode only
  Press Ctrl+C on empty line or Ctrl+D to exit
`
}

// inputMode represents the current input mode.
type inputMode int

const (
	modePath inputMode = iota
	modeCtrl
)

// Styles.
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
	matchStyle      = lipgloss.NewStyle().
			Foreground(lipgloss.Color("4")).
			Bold(true)
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4"))
	selectedMatchStyle = selectedStyle.Bold(true)
)

// formatCommand formats the echo line with prompt and input styled.
func formatCommand(mode inputMode, input string) string {
	if mode == modeCtrl {
		return ctrlPromptStyle.Render(ctrlPrompt) + inputStyle.Render(input)
	}

	return promptStyle.Render(pathPrompt) + inputStyle.Render(input)
}

// Option configures the browser.
type Option func(config) config

type config struct {
	history  string
	logger   log.Logger
	inputTTY bool
}

// WithHistory sets the file input history is persisted to. History is kept in
// memory only if path is empty.
func WithHistory(path string) Option {
	return func(c config) config {
		c.history = path

		return c
	}
}

// WithLogger sets the logger used for tracing.
func WithLogger(logger log.Logger) Option {
	return func(c config) config {
		c.logger = logger

		return c
	}
}

// WithInputTTY reads keys from the controlling terminal instead of stdin,
// for when stdin supplied the document.
func WithInputTTY(enable bool) Option {
	return func(c config) config {
		c.inputTTY = enable

		return c
	}
}

// model is the Bubble Tea model for the browser.
type model struct {
	ctxFunc      func() context.Context
	input        textinput.Model
	doc          *fbx.Document
	logger       log.Logger
	history      *History
	historyIdx   int
	matches      fuzzy.Matches // current fuzzy match results
	candidates   []string      // backing candidate list
	wordStart    int           // byte offset of current word start
	wordEnd      int           // byte offset of current word end
	suggIdx      int           // selected candidate index
	tabActive    bool          // whether user is tab-cycling
	preTabText   string        // input text before tab-cycling began
	preTabCursor int           // cursor position before tab-cycling began
	width        int           // terminal width for ellipsization
	quitting     bool
	mode         inputMode
	pathText     string
	pathCursor   int
	ctrlText     string
	ctrlCursor   int
}

// Run browses doc interactively until the user quits or ctx is done.
func Run(ctx context.Context, doc *fbx.Document, opts ...Option) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	if doc == nil {
		return ErrNoDocument
	}

	cfg := config{logger: log.Default()}
	for _, opt := range opts {
		if opt != nil {
			cfg = opt(cfg)
		}
	}

	logger := cfg.logger.With(slog.String("document", doc.Name))

	history := NewHistory(cfg.history)
	if err := history.Load(); err != nil {
		logger.WarnContext(ctx, "could not load history",
			slog.String("path", cfg.history),
			slog.Any("error", err),
		)
	}

	logger.TraceContext(ctx, "browse start",
		slog.Int("nodes", doc.Len()),
		slog.Int("history", history.Len()),
	)

	progOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if cfg.inputTTY {
		progOpts = append(progOpts, tea.WithInputTTY())
	}

	_, err = tea.NewProgram(newModel(ctx, doc, history, logger), progOpts...).Run()

	return err
}

const defaultWidth = 80

func newModel(
	ctx context.Context,
	doc *fbx.Document,
	history *History,
	logger log.Logger,
) model {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(pathPrompt)
	ti.Focus()
	ti.CharLimit = 1024
	ti.Width = defaultWidth

	return model{
		ctxFunc:    func() context.Context { return ctx },
		input:      ti,
		doc:        doc,
		logger:     logger,
		history:    history,
		historyIdx: history.Len(),
		suggIdx:    -1,
		width:      defaultWidth,
		mode:       modePath,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - len(pathPrompt) - 2

		return m, nil
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.input.View())
	b.WriteString("\n")

	input := m.input.Value()

	switch {
	case m.historyIdx < m.history.Len():
		hint := fmt.Sprintf("%s/%d",
			lipgloss.NewStyle().Bold(true).Render(strconv.Itoa(m.historyIdx+1)),
			m.history.Len())
		b.WriteString(hintStyle.Render(hint))

	case strings.TrimSpace(input) == "":
		hint := "Type a node path or press Esc for commands"
		if m.mode == modeCtrl {
			hint = "Type: " + strings.Join(ctrlCommands, ", ") + " (press Esc to return)"
		}

		b.WriteString(hintStyle.Render(hint))

	case len(m.matches) > 0:
		b.WriteString(renderCandidateBar(m.matches, m.suggIdx, m.tabActive, m.width))
	}

	b.WriteString("\n")

	return b.String()
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	m.logger.TraceContext(
		m.ctxFunc(),
		"browse keypress",
		slog.String("key", msg.String()),
	)

	switch msg.Type {
	case tea.KeyCtrlC:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		m.input.SetValue("")
		m.tabActive = false
		m.historyIdx = m.history.Len()
		refreshMatches(&m, false)

		return m, nil

	case tea.KeyCtrlD:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		return m, nil

	case tea.KeyEnter:
		if !m.tabActive || len(m.matches) == 0 {
			return m.executeInput()
		}
		// Lock in the current tab candidate without executing.
		m.tabActive = false
		refreshMatches(&m, true)

		return m, nil

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
			refreshMatches(&m, false)

			return m, nil
		}

		return m.toggleMode(), nil

	case tea.KeyRunes:
		var cmd tea.Cmd

		m.tabActive = false
		m.historyIdx = m.history.Len()
		m.input, cmd = m.input.Update(msg)
		refreshMatches(&m, true)

		return m, cmd
	}

	// For any other key (backspace, delete, arrows, etc.),
	// update input and recompute matches without auto-confirm.
	var cmd tea.Cmd

	m.tabActive = false
	m.historyIdx = m.history.Len()
	m.input, cmd = m.input.Update(msg)
	refreshMatches(&m, false)

	return m, cmd
}

// cycle moves the tab selection by step, wrapping around the candidates.
func (m model) cycle(step int) model {
	if len(m.matches) == 0 {
		return m
	}

	// Single candidate: complete and confirm immediately.
	if len(m.matches) == 1 {
		replaceCurrentWord(&m, m.matches[0].Str)
		m.tabActive = false
		m.suggIdx = -1
		m.matches = nil

		return m
	}

	switch {
	case m.tabActive:
		m.suggIdx = (m.suggIdx + step + len(m.matches)) % len(m.matches)

	default:
		m.tabActive = true
		m.preTabText = m.input.Value()
		m.preTabCursor = m.input.Position()

		m.suggIdx = 0
		if step < 0 {
			m.suggIdx = len(m.matches) - 1
		}
	}

	replaceCurrentWord(&m, m.matches[m.suggIdx].Str)

	return m
}

// replaceCurrentWord replaces the current word boundaries in the input with
// the given replacement text and repositions the cursor.
func replaceCurrentWord(m *model, replacement string) {
	input := m.input.Value()
	newInput := input[:m.wordStart] + replacement + input[m.wordEnd:]
	newCursor := m.wordStart + len(replacement)

	m.input.SetValue(newInput)
	m.input.SetCursor(newCursor)

	m.wordEnd = newCursor
}

// refreshMatches recomputes fuzzy matches for the current input state.
// When autoConfirm is true it also confirms the completion when exactly one
// candidate remains and the typed word already equals that candidate.
func refreshMatches(m *model, autoConfirm bool) {
	m.matches, m.candidates, m.wordStart, m.wordEnd = m.computeMatches()

	if !m.tabActive {
		m.suggIdx = -1
	}

	if !autoConfirm || len(m.matches) != 1 {
		return
	}

	candidate := m.matches[0].Str
	word := m.input.Value()[m.wordStart:m.wordEnd]

	if word == candidate {
		m.tabActive = false
		m.suggIdx = -1
		m.matches = nil
	}
}

func (m model) executeInput() (model, tea.Cmd) {
	input := m.input.Value()
	if strings.TrimSpace(input) == "" {
		return m, nil
	}

	mode := m.mode
	if mode == modeCtrl {
		input = strings.TrimSpace(input)
	}

	m.pathText, m.pathCursor = "", 0
	m.ctrlText, m.ctrlCursor = "", 0
	m.input.SetValue("")
	m.matches = nil

	if err := m.history.Write(input, mode); err != nil {
		m.logger.WarnContext(m.ctxFunc(), "could not save history",
			slog.Any("error", err),
		)
	}

	m.historyIdx = m.history.Len()

	m.logger.TraceContext(
		m.ctxFunc(),
		"browse input",
		slog.String("input", input),
		slog.Int("mode", int(mode)),
	)

	echo := tea.Println(formatCommand(mode, input))

	if mode == modeCtrl {
		return m.executeCommand(echo, input)
	}

	path := nodePath(input)

	node, ok := m.doc.FindNode(path)
	if !ok {
		return m, tea.Sequence(
			echo,
			tea.Println(errorStyle.Render("no node at "+path)),
		)
	}

	return m, tea.Sequence(echo, tea.Println(nodeView(node)))
}

func (m model) executeCommand(echo tea.Cmd, input string) (model, tea.Cmd) {
	cmd, args, _ := strings.Cut(input, " ")
	args = strings.TrimSpace(args)

	m.logger.TraceContext(
		m.ctxFunc(),
		"browse command",
		slog.String("command", cmd),
		slog.String("args", args),
	)

	switch cmd {
	case "q", "quit", "exit":
		m.quitting = true

		return m, tea.Sequence(echo, tea.Quit)

	case "h", "help":
		return m, tea.Sequence(echo, tea.Println(helpMessage()))

	case "l", "list":
		return m, tea.Sequence(echo, tea.Println(childrenView(m.doc.Nodes)))

	case "s", "select":
		return m, tea.Sequence(echo, tea.Println(m.selectView(args)))

	case "c", "clear":
		return m, tea.ClearScreen

	default:
		return m, tea.Sequence(
			echo,
			tea.Println(errorStyle.Render("Unknown command: "+cmd+" (try 'help')")),
		)
	}
}

// nodePath returns the node path typed as input. Only line terminators and
// outer separators are removed; node names may begin or end with spaces.
func nodePath(input string) string {
	return strings.Trim(strings.TrimRight(input, "\r\n"), fbx.PathSeparator)
}

// nodeView renders node followed by a summary of its immediate children.
func nodeView(node *fbx.Node) string {
	view := resultStyle.Render(node.String())
	if len(node.Nodes) == 0 {
		return view
	}

	return view + "\n" + childrenView(node.Nodes)
}

// childrenView renders one line per node with its child count.
func childrenView(nodes []*fbx.Node) string {
	var b strings.Builder

	for i, n := range nodes {
		if i > 0 {
			b.WriteString("\n")
		}

		b.WriteString("  " + n.String())

		if len(n.Nodes) > 0 {
			b.WriteString(hintStyle.Render(fmt.Sprintf(" { %d }", len(n.Nodes))))
		}
	}

	return b.String()
}

// selectView renders the paths of the nodes matched by the filter expression
// src.
func (m model) selectView(src string) string {
	if src == "" {
		return errorStyle.Render("usage: select EXPR")
	}

	filter, err := fbx.CompileFilter(src)
	if err != nil {
		return errorStyle.Render("error: " + err.Error())
	}

	found, err := m.doc.Select(m.ctxFunc(), filter)
	if err != nil {
		return errorStyle.Render("error: " + err.Error())
	}

	if len(found) == 0 {
		return hintStyle.Render("no matches")
	}

	lines := make([]string, 0, min(len(found), maxSelectLines)+1)

	for _, match := range found[:min(len(found), maxSelectLines)] {
		line := match.Path
		if len(match.Node.Properties) > 0 {
			line += hintStyle.Render(": " + strings.Join(match.Node.Properties, ", "))
		}

		lines = append(lines, "  "+line)
	}

	if more := len(found) - maxSelectLines; more > 0 {
		lines = append(lines, hintStyle.Render(fmt.Sprintf("  ... %d more", more)))
	}

	return strings.Join(lines, "\n")
}

// historyStep moves through history by step (-1 older, +1 newer). With
// inMode set, entries of the other mode are skipped; otherwise the input
// mode follows the entry.
func (m model) historyStep(step int, inMode bool) model {
	for i := m.historyIdx + step; i >= 0 && i < m.history.Len(); i += step {
		entry, err := m.history.Entry(i)
		if err != nil || (inMode && entry.Mode != m.mode) {
			continue
		}

		if entry.Mode != m.mode {
			m = m.switchToMode(entry.Mode)
		}

		m.historyIdx = i
		m.input.SetValue(entry.Line)
		m.input.SetCursor(len(entry.Line))
		refreshMatches(&m, false)

		return m
	}

	// Stepping past the newest entry clears the input.
	if step > 0 && m.historyIdx < m.history.Len() {
		m.historyIdx = m.history.Len()
		m.input.SetValue("")
		refreshMatches(&m, false)
	}

	return m
}

// toggleMode switches between path and command modes.
func (m model) toggleMode() model {
	if m.mode == modePath {
		return m.switchToMode(modeCtrl)
	}

	return m.switchToMode(modePath)
}

// switchToMode switches to the specified mode, preserving input state.
func (m model) switchToMode(mode inputMode) model {
	if m.mode == modePath {
		m.pathText = m.input.Value()
		m.pathCursor = m.input.Position()
	} else {
		m.ctrlText = m.input.Value()
		m.ctrlCursor = m.input.Position()
	}

	m.mode = mode
	if mode == modePath {
		m.input.Prompt = promptStyle.Render(pathPrompt)
		m.input.SetValue(m.pathText)
		m.input.SetCursor(m.pathCursor)
	} else {
		m.input.Prompt = ctrlPromptStyle.Render(ctrlPrompt)
		m.input.SetValue(m.ctrlText)
		m.input.SetCursor(m.ctrlCursor)
	}

	m.tabActive = false
	refreshMatches(&m, false)

	return m
}
