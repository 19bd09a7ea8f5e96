package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimpleTitle(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"hi, what is the best italian dish? tell me", "hi, what is the best italian dish"},
		{"short prompt", "short prompt"},
		{"multi\nline   prompt", "multi line prompt"},
		{"", "New chat"},
		{"   \n  ", "New chat"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, SimpleTitle(tc.in), "input %q", tc.in)
	}
}

func TestSimpleTitleTruncatesLongMessages(t *testing.T) {
	long := "please explain in great detail everything about web performance budgets and auditing"
	title := SimpleTitle(long)

	assert.LessOrEqual(t, len(title), 50)
	assert.NotContains(t, title, "\n")
}
