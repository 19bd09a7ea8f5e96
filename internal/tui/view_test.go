package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/westkevin12/lighthouse-agent/internal/domain"
	"github.com/westkevin12/lighthouse-agent/internal/session"
)

func seededModel() ChatModel {
	st := session.NewState("user-1")
	st.NewChat()
	st.AppendUser("audit example.com")
	st.Append(domain.NewToolCallMessage([]domain.ToolCall{{ID: "x", Name: "audit"}}))
	st.Append(domain.NewToolResponseMessage("x", "score 0.93"))
	st.Append(domain.NewTextMessage("Looks healthy.", "run-1"))
	return NewChatModel(nil, st)
}

func TestRenderConversation(t *testing.T) {
	m := seededModel()
	out := m.renderConversation()

	assert.Contains(t, out, "audit example.com")
	assert.Contains(t, out, "▶ audit")
	assert.Contains(t, out, "Looks healthy.")
	// Tool responses collapse to a check mark unless the log is shown.
	assert.NotContains(t, out, "score 0.93")
}

func TestRenderConversationShowsToolLog(t *testing.T) {
	m := seededModel()
	m.showToolLog = true

	assert.Contains(t, m.renderConversation(), "score 0.93")
}

func TestRenderConversationIncludesLiveAnswer(t *testing.T) {
	m := seededModel()
	m.answer = "streaming toke"

	assert.Contains(t, m.renderConversation(), "streaming toke")
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "abc", shortID("abc"))
	assert.Equal(t, "12345678", shortID("123456789"))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Len(t, truncate("aaaaaaaaaaaaaaa", 10), 10)
}
