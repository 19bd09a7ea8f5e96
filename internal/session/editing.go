package session

import (
	"context"

	"github.com/westkevin12/lighthouse-agent/internal/domain"
)

// EditMessage replaces the text of the message at idx in the current chat.
// History entries are otherwise immutable after commit; editing is the one
// user-facing exception and rewrites the persisted history.
func (s *State) EditMessage(idx int, content string) bool {
	c := s.Current()
	if idx < 0 || idx >= len(c.Messages) {
		return false
	}
	c.Messages[idx].Content = content
	s.persistAll(c)
	return true
}

// DeleteFrom drops the message at idx and everything after it.
func (s *State) DeleteFrom(idx int) bool {
	c := s.Current()
	if idx < 0 || idx >= len(c.Messages) {
		return false
	}
	c.Messages = c.Messages[:idx]
	if s.store != nil {
		if err := s.store.TruncateMessages(context.Background(), c.ID, idx); err != nil {
			s.log.Error("truncate_failed", map[string]interface{}{"chat": c.ID}, err)
		}
	}
	return true
}

// Refresh rewinds history to just before the message at idx and returns its
// content so the caller can repost it as a fresh prompt. Returns the empty
// string when idx is out of range.
func (s *State) Refresh(idx int) string {
	c := s.Current()
	if idx < 0 || idx >= len(c.Messages) {
		return ""
	}
	content := c.Messages[idx].Content
	s.DeleteFrom(idx)
	return content
}

func (s *State) persistAll(c *domain.Chat) {
	if s.store == nil {
		return
	}
	if err := s.store.ReplaceMessages(context.Background(), c.ID, c.Messages); err != nil {
		s.log.Error("rewrite_failed", map[string]interface{}{"chat": c.ID}, err)
	}
}
