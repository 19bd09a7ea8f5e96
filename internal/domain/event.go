// Package domain defines the wire-level message records exchanged with the
// remote agent and the closed event classification used by the stream layer.
package domain

// Event is the wire-level message record. The same shape is used for events
// received from the streaming call and for entries committed to chat history.
type Event struct {
	Content    string     `json:"content,omitempty" yaml:"content,omitempty"`
	Type       string     `json:"type,omitempty" yaml:"type,omitempty"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty" yaml:"tool_calls,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty" yaml:"tool_call_id,omitempty"`
	ID         string     `json:"id,omitempty" yaml:"id,omitempty"`
}

// ToolCall is one requested tool invocation inside an event.
type ToolCall struct {
	ID   string         `json:"id" yaml:"id"`
	Name string         `json:"name" yaml:"name"`
	Args map[string]any `json:"args" yaml:"args"`
}

// Message type tags used by the agent's serializer.
const (
	TypeHuman   = "human"
	TypeAI      = "ai"
	TypeAIChunk = "AIMessageChunk"
	TypeTool    = "tool"
)

// EventKind classifies events received from the streaming call.
type EventKind int

const (
	KindToolCall EventKind = iota
	KindToolResponse
	KindTextChunk
	KindFinalMessage
)

func (k EventKind) String() string {
	switch k {
	case KindToolCall:
		return "tool_call"
	case KindToolResponse:
		return "tool_response"
	case KindTextChunk:
		return "text_chunk"
	case KindFinalMessage:
		return "final_message"
	}
	return "unknown"
}

// Classify decides the kind of a raw event. It is the single place that
// inspects event fields; downstream code switches on the returned kind.
// A non-empty tool_calls list wins over everything else, then a tool_call_id
// marks a tool response, then the chunk type tag. Anything else is a final
// assistant message.
func Classify(ev Event) EventKind {
	switch {
	case len(ev.ToolCalls) > 0:
		return KindToolCall
	case ev.ToolCallID != "":
		return KindToolResponse
	case ev.Type == TypeAIChunk:
		return KindTextChunk
	default:
		return KindFinalMessage
	}
}
