package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const feedbackPath = "feedback"

// Feedback is a user rating of one run.
type Feedback struct {
	Score        float64 `json:"score"`
	Text         string  `json:"text"`
	InvocationID string  `json:"invocation_id"`
	LogType      string  `json:"log_type"`
}

// emoji scores as rendered by the feedback widget.
var emojiScores = map[string]float64{
	"\U0001F61E": 0.0,  // 😞
	"\U0001F641": 0.25, // 🙁
	"\U0001F610": 0.5,  // 😐
	"\U0001F642": 0.75, // 🙂
	"\U0001F600": 1.0,  // 😀
}

// ScoreValue normalizes an emoji rating to [0, 1]. Unknown input maps to 0.
func ScoreValue(emoji string) float64 {
	return emojiScores[emoji]
}

// LogFeedback posts a feedback record for the run identified by runID.
func (c *Client) LogFeedback(ctx context.Context, score float64, text, runID string) error {
	target, err := c.endpoint(feedbackPath)
	if err != nil {
		return err
	}

	fb := Feedback{
		Score:        score,
		Text:         text,
		InvocationID: runID,
		LogType:      "feedback",
	}
	body, err := json.Marshal(fb)
	if err != nil {
		return fmt.Errorf("marshal feedback: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("send feedback: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("feedback rejected: %s", resp.Status)
	}
	return nil
}
