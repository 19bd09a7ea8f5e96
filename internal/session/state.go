// Package session holds per-user conversation state: the active chat, its
// ordered message history, and the current run marker, with sqlite
// persistence and YAML export.
package session

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/westkevin12/lighthouse-agent/internal/domain"
	"github.com/westkevin12/lighthouse-agent/internal/logging"
)

// State is the frontend's session store: a mapping from session id to chat
// history plus the current user, session and run identifiers. It implements
// the stream package's HistorySink for the active chat.
//
// State is confined to the single goroutine driving a run; concurrent runs
// for the same session are the caller's problem (last writer wins on the run
// marker).
type State struct {
	userID    string
	sessionID string
	runID     string
	chats     map[string]*domain.Chat
	order     []string

	store *Storage // optional write-through persistence
	log   *logging.Logger
}

// NewState creates an empty State for a user.
func NewState(userID string) *State {
	return &State{
		userID: userID,
		chats:  make(map[string]*domain.Chat),
		log:    logging.New("session"),
	}
}

// LoadState hydrates a State from storage. The most recently updated chat
// becomes current; an empty store starts with a fresh chat.
func LoadState(store *Storage, userID string) (*State, error) {
	s := NewState(userID)
	s.store = store

	chats, err := store.ListChats(context.Background(), userID, 100)
	if err != nil {
		return nil, err
	}
	// ListChats returns newest first; keep display order oldest first.
	for i := len(chats) - 1; i >= 0; i-- {
		c := chats[i]
		s.chats[c.ID] = c
		s.order = append(s.order, c.ID)
	}

	if len(chats) > 0 {
		s.sessionID = chats[0].ID
	} else {
		s.NewChat()
	}
	return s, nil
}

// NewChat creates a fresh chat and makes it current.
func (s *State) NewChat() *domain.Chat {
	now := time.Now()
	c := &domain.Chat{
		ID:        ulid.Make().String(),
		UserID:    s.userID,
		Title:     "New chat",
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.chats[c.ID] = c
	s.order = append(s.order, c.ID)
	s.sessionID = c.ID

	if s.store != nil {
		if err := s.store.CreateChat(context.Background(), c); err != nil {
			s.log.Error("persist_chat_failed", map[string]interface{}{"chat": c.ID}, err)
		}
	}
	return c
}

// Switch makes the chat with the given session id current.
func (s *State) Switch(sessionID string) bool {
	if _, ok := s.chats[sessionID]; !ok {
		return false
	}
	s.sessionID = sessionID
	return true
}

// Current returns the active chat.
func (s *State) Current() *domain.Chat {
	return s.chats[s.sessionID]
}

// Chats returns all chats in creation order.
func (s *State) Chats() []*domain.Chat {
	out := make([]*domain.Chat, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.chats[id])
	}
	return out
}

// Delete removes a chat. Deleting the current chat switches to a new one.
func (s *State) Delete(sessionID string) {
	if _, ok := s.chats[sessionID]; !ok {
		return
	}
	delete(s.chats, sessionID)
	for i, id := range s.order {
		if id == sessionID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	if s.store != nil {
		if err := s.store.DeleteChat(context.Background(), sessionID); err != nil {
			s.log.Error("delete_chat_failed", map[string]interface{}{"chat": sessionID}, err)
		}
	}
	if s.sessionID == sessionID {
		if len(s.order) > 0 {
			s.sessionID = s.order[len(s.order)-1]
		} else {
			s.NewChat()
		}
	}
}

// AppendUser records a user prompt in the current chat. The first prompt of
// a chat also sets its title.
func (s *State) AppendUser(content string) {
	c := s.Current()
	if len(c.Messages) == 0 {
		c.Title = SimpleTitle(content)
		if s.store != nil {
			if err := s.store.UpdateTitle(context.Background(), c.ID, c.Title); err != nil {
				s.log.Error("update_title_failed", map[string]interface{}{"chat": c.ID}, err)
			}
		}
	}
	s.Append(domain.NewHumanMessage(content))
}

// HistorySink implementation, bound to the current chat.

// UserID returns the owning user id.
func (s *State) UserID() string { return s.userID }

// SessionID returns the active session id.
func (s *State) SessionID() string { return s.sessionID }

// RunID returns the current run marker.
func (s *State) RunID() string { return s.runID }

// Messages returns the active chat's ordered history.
func (s *State) Messages() []domain.Event {
	return s.Current().Messages
}

// Append commits a message to the active chat. Persistence failures are
// logged, not surfaced: the in-memory history is the source of truth for the
// run in flight.
func (s *State) Append(msg domain.Event) {
	c := s.Current()
	c.Messages = append(c.Messages, msg)
	c.UpdatedAt = time.Now()

	if s.store != nil {
		if err := s.store.AppendMessage(context.Background(), c.ID, msg); err != nil {
			s.log.Error("persist_message_failed", map[string]interface{}{"chat": c.ID}, err)
		}
	}
}

// SetRunID overwrites the current run marker.
func (s *State) SetRunID(id string) {
	s.runID = id
}
