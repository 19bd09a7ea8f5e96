package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/westkevin12/lighthouse-agent/internal/domain"
)

// Storage persists chats and their messages in sqlite.
type Storage struct {
	db   *sql.DB
	path string
}

// Open opens (or creates) the chat database under dataDir.
func Open(dataDir string) (*Storage, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(dataDir, "chats.db")
	db, err := sql.Open("sqlite3", dbPath+"?_journal=WAL&_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &Storage{db: db, path: dbPath}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *Storage) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS chats (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		title TEXT NOT NULL,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_chats_user ON chats(user_id);
	CREATE INDEX IF NOT EXISTS idx_chats_updated ON chats(updated_at DESC);

	CREATE TABLE IF NOT EXISTS messages (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		chat_id TEXT NOT NULL,
		payload_json TEXT NOT NULL,
		created_at DATETIME NOT NULL,
		FOREIGN KEY (chat_id) REFERENCES chats(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_messages_chat ON messages(chat_id, seq);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close releases the database handle.
func (s *Storage) Close() error {
	return s.db.Close()
}

// CreateChat stores a new chat row.
func (s *Storage) CreateChat(ctx context.Context, c *domain.Chat) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO chats (id, user_id, title, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`, c.ID, c.UserID, c.Title, c.CreatedAt, c.UpdatedAt)
	return err
}

// GetChat loads a chat with its full message history.
func (s *Storage) GetChat(ctx context.Context, id string) (*domain.Chat, error) {
	var c domain.Chat
	err := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, title, created_at, updated_at
		FROM chats WHERE id = ?
	`, id).Scan(&c.ID, &c.UserID, &c.Title, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}

	msgs, err := s.Messages(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Messages = msgs
	return &c, nil
}

// ListChats returns a user's chats with messages, newest first.
func (s *Storage) ListChats(ctx context.Context, userID string, limit int) ([]*domain.Chat, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, title, created_at, updated_at
		FROM chats WHERE user_id = ? ORDER BY updated_at DESC LIMIT ?
	`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chats []*domain.Chat
	for rows.Next() {
		var c domain.Chat
		if err := rows.Scan(&c.ID, &c.UserID, &c.Title, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		chats = append(chats, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, c := range chats {
		msgs, err := s.Messages(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		c.Messages = msgs
	}
	return chats, nil
}

// UpdateTitle renames a chat.
func (s *Storage) UpdateTitle(ctx context.Context, id, title string) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE chats SET title = ?, updated_at = ? WHERE id = ?
	`, title, time.Now(), id)
	return err
}

// DeleteChat removes a chat and its messages.
func (s *Storage) DeleteChat(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM messages WHERE chat_id = ?`, id); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `DELETE FROM chats WHERE id = ?`, id)
	return err
}

// AppendMessage appends one history entry to a chat.
func (s *Storage) AppendMessage(ctx context.Context, chatID string, msg domain.Event) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO messages (chat_id, payload_json, created_at)
		VALUES (?, ?, ?)
	`, chatID, string(payload), time.Now())
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `UPDATE chats SET updated_at = ? WHERE id = ?`, time.Now(), chatID)
	return err
}

// Messages returns a chat's history in append order.
func (s *Storage) Messages(ctx context.Context, chatID string) ([]domain.Event, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT payload_json FROM messages WHERE chat_id = ? ORDER BY seq ASC
	`, chatID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []domain.Event
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var msg domain.Event
		if err := json.Unmarshal([]byte(payload), &msg); err != nil {
			return nil, fmt.Errorf("unmarshal message: %w", err)
		}
		msgs = append(msgs, msg)
	}
	return msgs, rows.Err()
}

// TruncateMessages keeps the first keep entries of a chat and drops the rest.
// Used by message editing when history is rewound.
func (s *Storage) TruncateMessages(ctx context.Context, chatID string, keep int) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM messages WHERE chat_id = ? AND seq NOT IN (
			SELECT seq FROM messages WHERE chat_id = ? ORDER BY seq ASC LIMIT ?
		)
	`, chatID, chatID, keep)
	return err
}

// ReplaceMessages rewrites a chat's full history. Used after in-place edits.
func (s *Storage) ReplaceMessages(ctx context.Context, chatID string, msgs []domain.Event) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM messages WHERE chat_id = ?`, chatID); err != nil {
		return err
	}
	for _, msg := range msgs {
		payload, err := json.Marshal(msg)
		if err != nil {
			return fmt.Errorf("marshal message: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO messages (chat_id, payload_json, created_at)
			VALUES (?, ?, ?)
		`, chatID, string(payload), time.Now()); err != nil {
			return err
		}
	}
	return tx.Commit()
}
