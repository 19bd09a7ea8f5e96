package stream

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/westkevin12/lighthouse-agent/internal/domain"
	"github.com/westkevin12/lighthouse-agent/internal/logging"
)

// Client opens one streaming call against the remote agent. The returned
// channel yields items in arrival order and is closed when the stream ends;
// a terminal transport failure arrives as the last item's Err.
type Client interface {
	StreamMessages(ctx context.Context, req domain.StreamRequest) (<-chan domain.StreamItem, error)
}

// HistorySink is the session-scoped chat history the processor commits into.
// Entries are append-only; the run marker is overwritten per call.
type HistorySink interface {
	UserID() string
	SessionID() string
	Messages() []domain.Event
	Append(msg domain.Event)
	SetRunID(id string)
}

// Processor consumes one streaming call, classifies and accumulates events,
// drives the handler, and commits finalized messages into session history.
// All mutation happens on the single goroutine running ProcessEvents.
type Processor struct {
	client   Client
	history  HistorySink
	handler  *Handler
	newRunID func() string
	log      *logging.Logger

	toolCalls    []domain.Event
	finalContent string
}

// Option configures a Processor.
type Option func(*Processor)

// WithRunIDGenerator overrides run id generation. Tests use this for
// deterministic ids.
func WithRunIDGenerator(gen func() string) Option {
	return func(p *Processor) { p.newRunID = gen }
}

// NewProcessor creates a Processor over the given client, history sink and
// handler.
func NewProcessor(c Client, h HistorySink, handler *Handler, opts ...Option) *Processor {
	p := &Processor{
		client:   c,
		history:  h,
		handler:  handler,
		newRunID: func() string { return uuid.NewString() },
		log:      logging.New("stream"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ToolCalls returns the tool-call and tool-response events recorded during
// the last ProcessEvents call, in arrival order.
func (p *Processor) ToolCalls() []domain.Event { return p.toolCalls }

// FinalContent returns the concatenation of all text chunks seen during the
// last ProcessEvents call, across tool interruptions.
func (p *Processor) FinalContent() string { return p.finalContent }

// ProcessEvents drives one streaming call to completion.
//
// Tool-call and tool-response events are committed to history eagerly, one
// entry per event. Consecutive text chunks coalesce into a single in-progress
// fragment; a tool event resets the fragment, and only the trailing fragment
// is committed on stream exhaustion, stamped with this call's run id.
//
// On a transport failure the error is returned and everything committed so
// far stays committed.
func (p *Processor) ProcessEvents(ctx context.Context) error {
	p.toolCalls = nil
	p.finalContent = ""

	runID := p.newRunID()
	p.history.SetRunID(runID)
	p.log = p.log.WithSession(p.history.SessionID()).WithRun(runID)
	p.log.Info("process_start", map[string]interface{}{
		"history": len(p.history.Messages()),
	})
	start := time.Now()

	req := domain.StreamRequest{
		Input: domain.StreamInput{Messages: p.history.Messages()},
		Config: domain.StreamConfig{
			RunID: runID,
			Metadata: domain.StreamMetadata{
				UserID:    p.history.UserID(),
				SessionID: p.history.SessionID(),
			},
		},
	}

	items, err := p.client.StreamMessages(ctx, req)
	if err != nil {
		return fmt.Errorf("open stream: %w", err)
	}

	var fragment string
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case item, ok := <-items:
			if !ok {
				if fragment != "" {
					p.history.Append(domain.NewTextMessage(fragment, runID))
				}
				p.log.TimedEvent("stream_done", start, map[string]interface{}{
					"tool_calls": len(p.toolCalls),
					"text_len":   len(p.finalContent),
				})
				return nil
			}
			if item.Err != nil {
				p.log.Error("stream_failed", nil, item.Err)
				return item.Err
			}
			fragment = p.handle(item.Event, fragment)
		}
	}
}

// handle processes one event and returns the updated in-progress fragment.
func (p *Processor) handle(ev domain.Event, fragment string) string {
	switch domain.Classify(ev) {
	case domain.KindToolCall:
		p.history.Append(domain.NewToolCallMessage(ev.ToolCalls))
		for _, tc := range ev.ToolCalls {
			p.handler.NewStatus(fmt.Sprintf("\n\nCalling tool: `%s` with args: `%v`", tc.Name, tc.Args))
		}
		p.toolCalls = append(p.toolCalls, ev)
		return ""

	case domain.KindToolResponse:
		p.history.Append(domain.NewToolResponseMessage(ev.ToolCallID, ev.Content))
		p.handler.NewStatus(fmt.Sprintf("\n\nTool response: `%s`", ev.Content))
		p.toolCalls = append(p.toolCalls, ev)
		return ""

	default:
		// Text chunks and final messages both carry answer text. Events with
		// no payload at all are skipped.
		if ev.Content == "" {
			return fragment
		}
		p.finalContent += ev.Content
		p.handler.NewToken(ev.Content)
		return fragment + ev.Content
	}
}
