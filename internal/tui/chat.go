// Package tui provides the Bubble Tea interactive chat interface.
package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/westkevin12/lighthouse-agent/internal/session"
	"github.com/westkevin12/lighthouse-agent/internal/stream"
)

// sharedState holds state that must survive model copies.
type sharedState struct {
	program *tea.Program
	cancel  context.CancelFunc
}

// Messages
type (
	renderMsg  struct{ region, content string }
	runDoneMsg struct{ err error }
)

// programDisplay is a stream.Display whose regions deliver every render as a
// message into the Bubble Tea event loop.
type programDisplay struct {
	send func(tea.Msg)
}

func (d *programDisplay) Region(name string) stream.Region {
	return &programRegion{name: name, send: d.send}
}

type programRegion struct {
	name string
	send func(tea.Msg)
}

func (r *programRegion) Set(content string) {
	r.send(renderMsg{region: r.name, content: content})
}

// ChatModel is the main TUI model for the chat frontend.
type ChatModel struct {
	client stream.Client
	state  *session.State

	answer      string // live answer buffer for the run in flight
	toolLog     string // live tool activity log
	showToolLog bool
	running     bool
	quitting    bool
	err         error

	viewport viewport.Model
	input    textarea.Model
	spinner  spinner.Model
	width    int
	height   int
	ready    bool

	shared *sharedState
}

// NewChatModel creates the chat TUI over a streaming client and session state.
func NewChatModel(c stream.Client, st *session.State) ChatModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	ti := textarea.New()
	ti.Placeholder = "Ask the agent... (Enter to send)"
	ti.CharLimit = 4000
	ti.SetWidth(80)
	ti.SetHeight(3)
	ti.Focus()

	return ChatModel{
		client:  c,
		state:   st,
		spinner: s,
		input:   ti,
		shared:  &sharedState{},
	}
}

// Init initializes the TUI.
func (m ChatModel) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.spinner.Tick)
}

// Update handles messages.
func (m ChatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg)

	case renderMsg:
		switch msg.region {
		case stream.RegionAnswer:
			m.answer = msg.content
		case stream.RegionToolLog:
			m.toolLog = msg.content
		}
		m.viewport.SetContent(m.renderConversation())
		m.viewport.GotoBottom()
		return m, nil

	case runDoneMsg:
		m.running = false
		m.err = msg.err
		// Committed history now carries the answer; drop the live buffers.
		m.answer = ""
		m.toolLog = ""
		m.viewport.SetContent(m.renderConversation())
		m.viewport.GotoBottom()
		m.input.Focus()
		return m, nil

	case spinner.TickMsg:
		if m.running {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	if !m.running {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m ChatModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		if m.running && m.shared.cancel != nil {
			m.shared.cancel()
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit

	case "esc":
		if !m.running {
			m.quitting = true
			return m, tea.Quit
		}

	case "ctrl+t":
		m.showToolLog = !m.showToolLog
		m.viewport.SetContent(m.renderConversation())
		return m, nil

	case "ctrl+n":
		if !m.running {
			m.state.NewChat()
			m.answer = ""
			m.toolLog = ""
			m.err = nil
			m.viewport.SetContent(m.renderConversation())
			return m, nil
		}

	case "ctrl+r":
		if !m.running {
			return m.handleRetryKey()
		}

	case "pgup", "pgdown", "up", "down":
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case "enter":
		return m.handleEnterKey()
	}

	if !m.running {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m ChatModel) handleEnterKey() (tea.Model, tea.Cmd) {
	if m.running {
		return m, nil
	}
	prompt := strings.TrimSpace(m.input.Value())
	if prompt == "" {
		return m, nil
	}

	m.input.SetValue("")
	m.input.Blur()
	m.running = true
	m.err = nil
	m.answer = ""
	m.toolLog = ""
	m.state.AppendUser(prompt)
	m.viewport.SetContent(m.renderConversation())
	m.viewport.GotoBottom()

	return m, tea.Batch(m.spinner.Tick, m.runTurn())
}

// handleRetryKey rewinds the current chat to its last user prompt and
// streams a fresh answer for it.
func (m ChatModel) handleRetryKey() (tea.Model, tea.Cmd) {
	msgs := m.state.Messages()
	idx := -1
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].IsHuman() {
			idx = i
			break
		}
	}
	if idx < 0 {
		return m, nil
	}

	prompt := m.state.Refresh(idx)
	m.running = true
	m.err = nil
	m.answer = ""
	m.toolLog = ""
	m.state.AppendUser(prompt)
	m.viewport.SetContent(m.renderConversation())
	m.viewport.GotoBottom()

	return m, tea.Batch(m.spinner.Tick, m.runTurn())
}

// runTurn drives one streaming call off the UI goroutine. Renders and the
// completion arrive back as messages.
func (m ChatModel) runTurn() tea.Cmd {
	client := m.client
	state := m.state
	shared := m.shared

	return func() tea.Msg {
		ctx, cancel := context.WithCancel(context.Background())
		shared.cancel = cancel
		defer cancel()

		display := &programDisplay{send: shared.program.Send}
		handler := stream.NewHandler(display, "")
		proc := stream.NewProcessor(client, state, handler)

		return runDoneMsg{err: proc.ProcessEvents(ctx)}
	}
}

func (m ChatModel) handleWindowSize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height

	headerHeight := 2
	statusHeight := 1
	inputHeight := 5

	vpHeight := m.height - headerHeight - statusHeight - inputHeight
	if vpHeight < 5 {
		vpHeight = 5
	}

	if !m.ready {
		m.viewport = viewport.New(m.width, vpHeight)
		m.viewport.SetContent(m.renderConversation())
		m.ready = true
	} else {
		m.viewport.Width = m.width
		m.viewport.Height = vpHeight
	}
	m.input.SetWidth(m.width - 4)

	return m, nil
}

// Run starts the chat TUI and blocks until the user quits.
func Run(c stream.Client, st *session.State) error {
	model := NewChatModel(c, st)
	p := tea.NewProgram(model, tea.WithAltScreen())
	model.shared.program = p
	_, err := p.Run()
	return err
}
