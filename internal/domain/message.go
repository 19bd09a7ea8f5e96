package domain

// NewHumanMessage builds a user message record.
func NewHumanMessage(content string) Event {
	return Event{Type: TypeHuman, Content: content}
}

// NewToolCallMessage builds a committed tool-call history entry.
func NewToolCallMessage(calls []ToolCall) Event {
	return Event{Type: TypeAI, ToolCalls: calls}
}

// NewToolResponseMessage builds a committed tool-response history entry.
func NewToolResponseMessage(toolCallID, content string) Event {
	return Event{Type: TypeTool, ToolCallID: toolCallID, Content: content}
}

// NewTextMessage builds a committed assistant text entry. The id carries the
// run identifier of the streaming call that produced it.
func NewTextMessage(content, runID string) Event {
	return Event{Type: TypeAI, Content: content, ID: runID}
}

// Text returns the display text of a history entry.
func (e Event) Text() string {
	return e.Content
}

// IsHuman reports whether the entry was authored by the user.
func (e Event) IsHuman() bool {
	return e.Type == TypeHuman
}
