package domain

import "time"

// Chat is a persistent conversation session: an ordered, append-only message
// history keyed by session id.
type Chat struct {
	ID        string    `json:"id" yaml:"id"`
	UserID    string    `json:"user_id,omitempty" yaml:"user_id,omitempty"`
	Title     string    `json:"title" yaml:"title"`
	Messages  []Event   `json:"messages" yaml:"messages"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at"`
}
