package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/westkevin12/lighthouse-agent/internal/domain"
)

func TestCleanText(t *testing.T) {
	assert.Equal(t, "hello", CleanText("\nhello\n"))
	assert.Equal(t, "hello", CleanText("hello"))
	// Only one newline is stripped from each end.
	assert.Equal(t, "\nhello\n", CleanText("\n\nhello\n\n"))
	assert.Equal(t, "", CleanText(""))
}

func TestSaveAndLoadChat(t *testing.T) {
	dir := t.TempDir()
	c := &domain.Chat{
		ID:        "sess-1",
		UserID:    "user-1",
		Title:     "Audit example.com",
		CreatedAt: time.Now().UTC().Truncate(time.Second),
		UpdatedAt: time.Now().UTC().Truncate(time.Second),
		Messages: []domain.Event{
			domain.NewHumanMessage("\naudit example.com\n"),
			domain.NewToolCallMessage([]domain.ToolCall{{ID: "x", Name: "audit", Args: map[string]any{"url": "https://example.com"}}}),
			domain.NewToolResponseMessage("x", "score 0.93"),
			domain.NewTextMessage("Looks healthy.", "run-1"),
		},
	}

	path, err := SaveChat(dir, c)
	require.NoError(t, err)
	assert.Contains(t, path, "sess-1.yaml")

	loaded, err := LoadChat(path)
	require.NoError(t, err)

	assert.Equal(t, "sess-1", loaded.ID)
	assert.Equal(t, "Audit example.com", loaded.Title)
	require.Len(t, loaded.Messages, 4)
	// Text was sanitized on save.
	assert.Equal(t, "audit example.com", loaded.Messages[0].Content)
	assert.Equal(t, "audit", loaded.Messages[1].ToolCalls[0].Name)
	assert.Equal(t, "x", loaded.Messages[2].ToolCallID)
	assert.Equal(t, "run-1", loaded.Messages[3].ID)
}

func TestSaveChatSkipsEmpty(t *testing.T) {
	_, err := SaveChat(t.TempDir(), &domain.Chat{ID: "empty"})
	assert.Error(t, err)
}

func TestExportedChatImportsIntoStore(t *testing.T) {
	dir := t.TempDir()
	c := &domain.Chat{
		ID:     "sess-3",
		UserID: "user-1",
		Title:  "Imported",
		Messages: []domain.Event{
			domain.NewHumanMessage("hello"),
			domain.NewTextMessage("hi there", "run-1"),
		},
	}
	path, err := SaveChat(dir, c)
	require.NoError(t, err)

	loaded, err := LoadChat(path)
	require.NoError(t, err)

	store, err := Open(t.TempDir())
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	require.NoError(t, store.CreateChat(ctx, loaded))
	require.NoError(t, store.ReplaceMessages(ctx, loaded.ID, loaded.Messages))

	got, err := store.GetChat(ctx, "sess-3")
	require.NoError(t, err)
	assert.Equal(t, "Imported", got.Title)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "hello", got.Messages[0].Content)
}

func TestSaveDoesNotMutateOriginal(t *testing.T) {
	c := &domain.Chat{
		ID:       "sess-2",
		Messages: []domain.Event{domain.NewHumanMessage("\nraw\n")},
	}

	_, err := SaveChat(t.TempDir(), c)
	require.NoError(t, err)

	assert.Equal(t, "\nraw\n", c.Messages[0].Content)
}
