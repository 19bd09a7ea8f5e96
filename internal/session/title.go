package session

import "strings"

// SimpleTitle derives a chat title from the first user message: collapse
// whitespace, cut at the first sentence end or a word boundary near 50 chars.
func SimpleTitle(firstMessage string) string {
	msg := strings.Join(strings.Fields(firstMessage), " ")
	if msg == "" {
		return "New chat"
	}

	if idx := strings.IndexAny(msg, ".!?"); idx > 0 && idx < 50 {
		return msg[:idx]
	}
	if len(msg) > 50 {
		if idx := strings.LastIndex(msg[:50], " "); idx > 20 {
			return msg[:idx]
		}
		return msg[:47] + "..."
	}
	return msg
}
