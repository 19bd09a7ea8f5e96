package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/westkevin12/lighthouse-agent/internal/domain"
)

func seeded(t *testing.T) *State {
	t.Helper()
	s := NewState("user-1")
	s.NewChat()
	s.Append(domain.NewHumanMessage("first"))
	s.Append(domain.NewTextMessage("answer one", "run-1"))
	s.Append(domain.NewHumanMessage("second"))
	s.Append(domain.NewTextMessage("answer two", "run-2"))
	return s
}

func TestEditMessage(t *testing.T) {
	s := seeded(t)

	require.True(t, s.EditMessage(2, "edited"))
	assert.Equal(t, "edited", s.Messages()[2].Content)

	assert.False(t, s.EditMessage(99, "nope"))
	assert.False(t, s.EditMessage(-1, "nope"))
}

func TestDeleteFrom(t *testing.T) {
	s := seeded(t)

	require.True(t, s.DeleteFrom(2))
	require.Len(t, s.Messages(), 2)
	assert.Equal(t, "answer one", s.Messages()[1].Content)

	assert.False(t, s.DeleteFrom(10))
}

func TestRefreshReturnsPromptAndRewinds(t *testing.T) {
	s := seeded(t)

	prompt := s.Refresh(2)

	assert.Equal(t, "second", prompt)
	assert.Len(t, s.Messages(), 2)
}

func TestRefreshOutOfRange(t *testing.T) {
	s := seeded(t)

	assert.Equal(t, "", s.Refresh(42))
	assert.Len(t, s.Messages(), 4)
}
