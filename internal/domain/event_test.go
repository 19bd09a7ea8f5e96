package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyToolCall(t *testing.T) {
	ev := Event{
		ToolCalls: []ToolCall{{ID: "x", Name: "search", Args: map[string]any{"q": "go"}}},
	}
	assert.Equal(t, KindToolCall, Classify(ev))
}

func TestClassifyToolCallWinsOverContent(t *testing.T) {
	// Some serializers attach empty content alongside tool calls.
	ev := Event{
		Content:   "",
		Type:      TypeAIChunk,
		ToolCalls: []ToolCall{{ID: "x", Name: "search"}},
	}
	assert.Equal(t, KindToolCall, Classify(ev))
}

func TestClassifyToolResponse(t *testing.T) {
	ev := Event{ToolCallID: "x", Content: "result"}
	assert.Equal(t, KindToolResponse, Classify(ev))
}

func TestClassifyTextChunk(t *testing.T) {
	ev := Event{Type: TypeAIChunk, Content: "Hello"}
	assert.Equal(t, KindTextChunk, Classify(ev))
}

func TestClassifyFinalMessage(t *testing.T) {
	ev := Event{Type: TypeAI, Content: "done"}
	assert.Equal(t, KindFinalMessage, Classify(ev))

	// No type tag at all still falls through to a final message.
	assert.Equal(t, KindFinalMessage, Classify(Event{Content: "done"}))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "tool_call", KindToolCall.String())
	assert.Equal(t, "tool_response", KindToolResponse.String())
	assert.Equal(t, "text_chunk", KindTextChunk.String())
	assert.Equal(t, "final_message", KindFinalMessage.String())
}

func TestMessageConstructors(t *testing.T) {
	tc := NewToolCallMessage([]ToolCall{{ID: "1", Name: "audit"}})
	assert.Equal(t, TypeAI, tc.Type)
	assert.Len(t, tc.ToolCalls, 1)

	tr := NewToolResponseMessage("1", "ok")
	assert.Equal(t, TypeTool, tr.Type)
	assert.Equal(t, "1", tr.ToolCallID)
	assert.Equal(t, "ok", tr.Content)

	txt := NewTextMessage("answer", "run-42")
	assert.Equal(t, TypeAI, txt.Type)
	assert.Equal(t, "run-42", txt.ID)

	human := NewHumanMessage("hi")
	assert.True(t, human.IsHuman())
	assert.Equal(t, "hi", human.Text())
}
