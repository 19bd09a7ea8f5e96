package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			Padding(0, 1)

	promptStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	answerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	toolStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("33")).
			Bold(true)

	toolLogStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Background(lipgloss.Color("236")).
			Padding(0, 1)

	inputBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("62")).
				Padding(0, 1)
)

// View renders the TUI.
func (m ChatModel) View() string {
	if m.quitting {
		return "Goodbye!\n"
	}

	if !m.ready {
		return fmt.Sprintf("\n  %s Initializing...", m.spinner.View())
	}

	var b strings.Builder

	chat := m.state.Current()
	header := titleStyle.Render("⚡ Agent Chat") + "  " +
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render(chat.Title)
	b.WriteString(header + "\n\n")

	b.WriteString(m.viewport.View())
	b.WriteString("\n")

	b.WriteString(m.renderStatus() + "\n")
	b.WriteString(inputBorderStyle.Render(m.input.View()))

	return b.String()
}

func (m ChatModel) renderStatus() string {
	if m.running {
		return statusStyle.Render(m.spinner.View() + " streaming... (ctrl+c to cancel)")
	}
	if m.err != nil {
		return statusStyle.Render(errorStyle.Render("✗ " + m.err.Error()))
	}
	return statusStyle.Render(fmt.Sprintf("session %s · %d messages · ctrl+t tools · ctrl+r retry · ctrl+n new · esc quit",
		shortID(m.state.SessionID()), len(m.state.Messages())))
}

// renderConversation formats committed history plus the live buffers of the
// run in flight.
func (m ChatModel) renderConversation() string {
	var b strings.Builder

	for _, msg := range m.state.Messages() {
		switch {
		case msg.IsHuman():
			b.WriteString(promptStyle.Render("❯ "+msg.Content) + "\n\n")
		case len(msg.ToolCalls) > 0:
			for _, tc := range msg.ToolCalls {
				b.WriteString(toolStyle.Render(fmt.Sprintf("▶ %s", tc.Name)) + "\n")
			}
		case msg.ToolCallID != "":
			if m.showToolLog {
				b.WriteString(toolLogStyle.Render("  └─ "+truncate(msg.Content, 200)) + "\n")
			} else {
				b.WriteString(toolLogStyle.Render("  ✓") + "\n")
			}
		case msg.Content != "":
			b.WriteString(answerStyle.Render(msg.Content) + "\n\n")
		}
	}

	if m.answer != "" {
		b.WriteString(answerStyle.Render(m.answer))
	}
	if m.showToolLog && m.toolLog != "" {
		b.WriteString("\n" + toolLogStyle.Render(m.toolLog) + "\n")
	}

	return b.String()
}

func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
