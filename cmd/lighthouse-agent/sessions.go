// Package main session management commands.
package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/westkevin12/lighthouse-agent/internal/client"
	"github.com/westkevin12/lighthouse-agent/internal/config"
	"github.com/westkevin12/lighthouse-agent/internal/render"
	"github.com/westkevin12/lighthouse-agent/internal/session"
)

func sessionsCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "List saved chats",
		RunE: func(cmd *cobra.Command, args []string) error {
			env := config.Env()
			store, err := session.Open(config.DefaultDataDir())
			if err != nil {
				return err
			}
			defer store.Close()

			chats, err := store.ListChats(context.Background(), env.UserID, limit)
			if err != nil {
				return err
			}

			w := render.Stdout()
			w.Header(fmt.Sprintf("Chats for %s", env.UserID))
			if len(chats) == 0 {
				w.Empty("No saved chats")
				return nil
			}
			for _, c := range chats {
				w.Item("%-27s  %-40s  %d messages  %s",
					c.ID, c.Title, len(c.Messages), c.UpdatedAt.Format("2006-01-02 15:04"))
			}
			w.Line()
			w.Println("%d chats", len(chats))
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 50, "Number of chats to show")
	return cmd
}

func exportCmd() *cobra.Command {
	var outDir string
	cmd := &cobra.Command{
		Use:   "export <chat-id>",
		Short: "Export a chat to YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := session.Open(config.DefaultDataDir())
			if err != nil {
				return err
			}
			defer store.Close()

			chat, err := store.GetChat(context.Background(), args[0])
			if err != nil {
				return err
			}

			if outDir == "" {
				outDir = config.SavedChatsDir()
			}
			if err := config.EnsureDir(outDir); err != nil {
				return err
			}

			path, err := session.SaveChat(outDir, chat)
			if err != nil {
				return err
			}
			fmt.Printf("Exported %s to %s\n", chat.ID, path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "Output directory (default: saved_chats under the data dir)")
	return cmd
}

func importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import a chat from a YAML export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env := config.Env()
			chat, err := session.LoadChat(args[0])
			if err != nil {
				return err
			}
			if chat.UserID == "" {
				chat.UserID = env.UserID
			}

			store, err := session.Open(config.DefaultDataDir())
			if err != nil {
				return err
			}
			defer store.Close()

			ctx := context.Background()
			if existing, err := store.GetChat(ctx, chat.ID); err == nil && existing != nil {
				return fmt.Errorf("chat %s already exists", chat.ID)
			}
			if err := store.CreateChat(ctx, chat); err != nil {
				return err
			}
			if err := store.ReplaceMessages(ctx, chat.ID, chat.Messages); err != nil {
				return err
			}
			fmt.Printf("Imported %s (%d messages)\n", chat.ID, len(chat.Messages))
			return nil
		},
	}
}

func editCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit <chat-id> <index> <text>",
		Short: "Rewrite one message of a saved chat",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, store, err := stateForChat(args[0])
			if err != nil {
				return err
			}
			defer store.Close()

			idx, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("index %q is not a number", args[1])
			}
			if !st.EditMessage(idx, args[2]) {
				return fmt.Errorf("chat %s has no message %d", args[0], idx)
			}
			fmt.Printf("Edited message %d of %s\n", idx, args[0])
			return nil
		},
	}
}

func rewindCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rewind <chat-id> <index>",
		Short: "Drop a message and everything after it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, store, err := stateForChat(args[0])
			if err != nil {
				return err
			}
			defer store.Close()

			idx, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("index %q is not a number", args[1])
			}
			if !st.DeleteFrom(idx) {
				return fmt.Errorf("chat %s has no message %d", args[0], idx)
			}
			fmt.Printf("Rewound %s to %d messages\n", args[0], len(st.Messages()))
			return nil
		},
	}
}

// stateForChat hydrates session state with the given chat current.
func stateForChat(chatID string) (*session.State, *session.Storage, error) {
	env := config.Env()
	store, err := session.Open(config.DefaultDataDir())
	if err != nil {
		return nil, nil, err
	}
	st, err := session.LoadState(store, env.UserID)
	if err != nil {
		store.Close()
		return nil, nil, err
	}
	if !st.Switch(chatID) {
		store.Close()
		return nil, nil, fmt.Errorf("unknown chat %q", chatID)
	}
	return st, store, nil
}

func deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <chat-id>",
		Short: "Delete a saved chat",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := session.Open(config.DefaultDataDir())
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.DeleteChat(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Deleted %s\n", args[0])
			return nil
		},
	}
}

func feedbackCmd() *cobra.Command {
	var text string
	cmd := &cobra.Command{
		Use:   "feedback <run-id> <emoji>",
		Short: "Send feedback for a run",
		Long:  "Score a run by emoji (😞 🙁 😐 🙂 😀) with optional free text.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			env := config.Env()
			url := env.ServerURL
			if serverFlag := cmd.Flag("url").Value.String(); serverFlag != "" {
				url = serverFlag
			}

			c := client.New(url, client.WithAuthToken(env.AuthToken))
			score := client.ScoreValue(args[1])
			if err := c.LogFeedback(context.Background(), score, text, args[0]); err != nil {
				return err
			}
			fmt.Printf("Recorded %.2f for run %s\n", score, args[0])
			return nil
		},
	}
	cmd.Flags().StringVarP(&text, "text", "t", "", "Free-text comment")
	return cmd
}
