// Package stream turns the event stream emitted by a remote agent run into
// ordered, displayable conversation state.
package stream

// Region is one addressable area of a display surface. Every mutation
// re-sends the full accumulated content; no append primitive is assumed.
type Region interface {
	Set(content string)
}

// Display creates the regions a handler renders into.
type Display interface {
	Region(name string) Region
}

// Region names used by the handler.
const (
	RegionAnswer  = "answer"
	RegionToolLog = "tool_log"
)

// Handler accumulates two independent text streams, the assistant answer and
// the tool activity log, and re-renders each on every update.
type Handler struct {
	answer  Region
	toolLog Region

	text string
	logs string
}

// NewHandler creates a Handler bound to a display. Both regions are created
// eagerly, and initial seeds both buffers identically.
func NewHandler(d Display, initial string) *Handler {
	return &Handler{
		answer:  d.Region(RegionAnswer),
		toolLog: d.Region(RegionToolLog),
		text:    initial,
		logs:    initial,
	}
}

// NewToken appends token to the answer buffer and re-renders it. Tokens are
// concatenated exactly as received, with no separator.
func (h *Handler) NewToken(token string) {
	h.text += token
	h.answer.Set(h.text)
}

// NewStatus appends status to the tool log buffer and re-renders it.
func (h *Handler) NewStatus(status string) {
	h.logs += status
	h.toolLog.Set(h.logs)
}

// Text returns the accumulated answer buffer.
func (h *Handler) Text() string { return h.text }

// ToolLog returns the accumulated tool log buffer.
func (h *Handler) ToolLog() string { return h.logs }
