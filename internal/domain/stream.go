package domain

// StreamRequest is the payload sent to the agent's stream_messages endpoint.
type StreamRequest struct {
	Input  StreamInput  `json:"input"`
	Config StreamConfig `json:"config"`
}

// StreamInput carries the full prior message history for the session.
type StreamInput struct {
	Messages []Event `json:"messages"`
}

// StreamConfig identifies the run and the requesting user/session.
type StreamConfig struct {
	RunID    string         `json:"run_id"`
	Metadata StreamMetadata `json:"metadata"`
}

// StreamMetadata identifies the requesting user and session.
type StreamMetadata struct {
	UserID    string `json:"user_id"`
	SessionID string `json:"session_id"`
}

// StreamItem is one unit received from the streaming call: an (event, metadata)
// pair, or a terminal transport error. After an item with a non-nil Err the
// stream produces nothing further.
type StreamItem struct {
	Event Event
	Meta  map[string]any
	Err   error
}
