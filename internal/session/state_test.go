package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/westkevin12/lighthouse-agent/internal/domain"
)

func TestNewChatBecomesCurrent(t *testing.T) {
	s := NewState("user-1")
	c := s.NewChat()

	assert.Equal(t, c.ID, s.SessionID())
	assert.Equal(t, "user-1", s.UserID())
	assert.Empty(t, s.Messages())
}

func TestAppendGoesToCurrentChat(t *testing.T) {
	s := NewState("user-1")
	first := s.NewChat()
	second := s.NewChat()

	s.Append(domain.NewHumanMessage("hello"))

	assert.Empty(t, first.Messages)
	require.Len(t, second.Messages, 1)
	assert.Equal(t, "hello", second.Messages[0].Content)
}

func TestSwitchChat(t *testing.T) {
	s := NewState("user-1")
	first := s.NewChat()
	s.NewChat()

	require.True(t, s.Switch(first.ID))
	assert.Equal(t, first.ID, s.SessionID())

	assert.False(t, s.Switch("missing"))
	assert.Equal(t, first.ID, s.SessionID())
}

func TestRunIDLastWriterWins(t *testing.T) {
	s := NewState("user-1")
	s.NewChat()

	s.SetRunID("run-1")
	s.SetRunID("run-2")

	assert.Equal(t, "run-2", s.RunID())
}

func TestAppendUserSetsTitleOnce(t *testing.T) {
	s := NewState("user-1")
	c := s.NewChat()

	s.AppendUser("How do I audit a web page? And other things")
	s.AppendUser("second question")

	assert.Equal(t, "How do I audit a web page", c.Title)
	assert.Len(t, c.Messages, 2)
}

func TestDeleteCurrentChatSwitches(t *testing.T) {
	s := NewState("user-1")
	first := s.NewChat()
	second := s.NewChat()

	s.Delete(second.ID)

	assert.Equal(t, first.ID, s.SessionID())
	assert.Len(t, s.Chats(), 1)
}

func TestDeleteLastChatCreatesFresh(t *testing.T) {
	s := NewState("user-1")
	only := s.NewChat()

	s.Delete(only.ID)

	assert.NotEqual(t, only.ID, s.SessionID())
	assert.NotNil(t, s.Current())
}

func TestChatsInCreationOrder(t *testing.T) {
	s := NewState("user-1")
	a := s.NewChat()
	b := s.NewChat()
	c := s.NewChat()

	chats := s.Chats()
	require.Len(t, chats, 3)
	assert.Equal(t, []string{a.ID, b.ID, c.ID}, []string{chats[0].ID, chats[1].ID, chats[2].ID})
}
