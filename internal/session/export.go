package session

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/westkevin12/lighthouse-agent/internal/domain"
)

// CleanText strips a single leading and trailing newline from message text.
func CleanText(text string) string {
	if text == "" {
		return text
	}
	text = strings.TrimPrefix(text, "\n")
	text = strings.TrimSuffix(text, "\n")
	return text
}

// sanitizeMessages returns a copy of messages with their text cleaned.
func sanitizeMessages(messages []domain.Event) []domain.Event {
	out := make([]domain.Event, len(messages))
	copy(out, messages)
	for i := range out {
		out[i].Content = CleanText(out[i].Content)
	}
	return out
}

// SaveChat writes a chat to <dir>/<session id>.yaml and returns the path.
// Chats with no messages are not saved.
func SaveChat(dir string, c *domain.Chat) (string, error) {
	if len(c.Messages) == 0 {
		return "", fmt.Errorf("chat %s has no messages", c.ID)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}

	saved := *c
	saved.Messages = sanitizeMessages(c.Messages)

	data, err := yaml.Marshal([]domain.Chat{saved})
	if err != nil {
		return "", fmt.Errorf("marshal chat: %w", err)
	}

	path := filepath.Join(dir, c.ID+".yaml")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write chat: %w", err)
	}
	return path, nil
}

// LoadChat reads a chat back from a YAML export.
func LoadChat(path string) (*domain.Chat, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read chat: %w", err)
	}

	var chats []domain.Chat
	if err := yaml.Unmarshal(data, &chats); err != nil {
		return nil, fmt.Errorf("unmarshal chat: %w", err)
	}
	if len(chats) == 0 {
		return nil, fmt.Errorf("no chat in %s", path)
	}
	return &chats[0], nil
}
