// Package render provides output formatting for the CLI: a plain console
// display for streaming runs and list formatting for commands.
package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/westkevin12/lighthouse-agent/internal/stream"
)

// Console is a stream.Display over a plain writer. Regions re-send full
// content on every mutation; the console prints only the suffix that is new,
// so the terminal sees a continuous stream.
type Console struct {
	out       io.Writer
	toolColor *color.Color
}

// NewConsole creates a console display. Color is disabled when out is not a
// terminal.
func NewConsole(out io.Writer) *Console {
	c := &Console{
		out:       out,
		toolColor: color.New(color.FgCyan),
	}
	if f, ok := out.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		c.toolColor.DisableColor()
	}
	return c
}

// Region returns a named region of the console.
func (c *Console) Region(name string) stream.Region {
	return &consoleRegion{console: c, name: name}
}

type consoleRegion struct {
	console *Console
	name    string
	last    string
}

// Set renders the full buffer. When the new content extends the previous
// render, only the delta is written; otherwise the buffer is reprinted on a
// fresh line.
func (r *consoleRegion) Set(content string) {
	delta := content
	if strings.HasPrefix(content, r.last) {
		delta = content[len(r.last):]
	} else if r.last != "" {
		delta = "\n" + content
	}
	r.last = content

	if delta == "" {
		return
	}
	if r.name == stream.RegionToolLog {
		r.console.toolColor.Fprint(r.console.out, delta)
		return
	}
	fmt.Fprint(r.console.out, delta)
}
