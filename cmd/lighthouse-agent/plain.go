// Package main plain-console chat loop.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fatih/color"

	"github.com/westkevin12/lighthouse-agent/internal/render"
	"github.com/westkevin12/lighthouse-agent/internal/session"
	"github.com/westkevin12/lighthouse-agent/internal/stream"
)

// runPlain reads prompts from stdin and streams answers to stdout without
// the TUI. Ctrl-C cancels the run in flight; a second Ctrl-C at the prompt
// exits via the usual SIGINT path.
func runPlain(c stream.Client, st *session.State) error {
	display := render.NewConsole(os.Stdout)
	prompt := color.New(color.FgGreen, color.Bold)

	fmt.Printf("Chat: %s (type 'exit' to quit, 'new' for a fresh chat)\n", st.Current().Title)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		prompt.Print("\n> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())

		switch input {
		case "":
			continue
		case "exit", "quit":
			return nil
		case "new":
			chat := st.NewChat()
			fmt.Printf("Started chat %s\n", chat.ID)
			continue
		}

		st.AppendUser(input)
		if err := runOnce(c, st, display); err != nil {
			fmt.Fprintf(os.Stderr, "\nstream error: %v\n", err)
		}
		fmt.Println()
	}
	return scanner.Err()
}

func runOnce(c stream.Client, st *session.State, display stream.Display) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	handler := stream.NewHandler(display, "")
	proc := stream.NewProcessor(c, st, handler)
	return proc.ProcessEvents(ctx)
}
