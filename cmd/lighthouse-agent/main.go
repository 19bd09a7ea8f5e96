// Package main provides the lighthouse-agent CLI entrypoint.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/westkevin12/lighthouse-agent/internal/client"
	"github.com/westkevin12/lighthouse-agent/internal/config"
	"github.com/westkevin12/lighthouse-agent/internal/session"
	"github.com/westkevin12/lighthouse-agent/internal/tui"
)

var version = "0.1.0"

func main() {
	var (
		plain     bool
		serverURL string
		userID    string
		sessionID string
		dataDir   string
		authToken string
	)

	rootCmd := &cobra.Command{
		Use:   "lighthouse-agent",
		Short: "Chat frontend for a remote Lighthouse audit agent",
		Long: `lighthouse-agent: streaming chat frontend for a remote agent service.

Usage modes:
  lighthouse-agent             Start the interactive chat TUI
  lighthouse-agent --plain     Stream to plain stdout (no TUI)
  lighthouse-agent <command>   Run a specific command (see below)

The agent service URL comes from --url or AGENT_URL
(default http://localhost:8000).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env := config.Env()
			if serverURL == "" {
				serverURL = env.ServerURL
			}
			if userID != "" {
				env.UserID = userID
			}
			if sessionID != "" {
				env.SessionID = sessionID
			}
			if dataDir != "" {
				env.DataDir = dataDir
			}
			if authToken != "" {
				env.AuthToken = authToken
			}

			store, st, err := openState()
			if err != nil {
				return err
			}
			defer store.Close()

			c := client.New(serverURL, client.WithAuthToken(env.AuthToken))
			if plain || env.Plain {
				return runPlain(c, st)
			}
			return tui.Run(c, st)
		},
	}

	rootCmd.Flags().BoolVar(&plain, "plain", false, "Plain console output instead of the TUI")
	rootCmd.Flags().StringVar(&userID, "user", "", "User id (overrides AGENT_USER_ID)")
	rootCmd.Flags().StringVar(&sessionID, "session", "", "Session id to resume (overrides AGENT_SESSION_ID)")
	rootCmd.Flags().StringVar(&dataDir, "data-dir", "", "Data directory (overrides AGENT_DATA_DIR)")
	rootCmd.Flags().StringVar(&authToken, "token", "", "Bearer token (overrides AGENT_AUTH_TOKEN)")
	rootCmd.PersistentFlags().StringVar(&serverURL, "url", "", "Agent service base URL (overrides AGENT_URL)")

	rootCmd.AddCommand(
		sessionsCmd(),
		exportCmd(),
		importCmd(),
		editCmd(),
		rewindCmd(),
		deleteCmd(),
		feedbackCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// openState opens the chat store and hydrates session state for the
// configured user. AGENT_SESSION_ID resumes a specific chat when set.
func openState() (*session.Storage, *session.State, error) {
	env := config.Env()

	dataDir := config.DefaultDataDir()
	if err := config.EnsureDir(dataDir); err != nil {
		return nil, nil, fmt.Errorf("create data dir: %w", err)
	}

	store, err := session.Open(dataDir)
	if err != nil {
		return nil, nil, fmt.Errorf("open chat store: %w", err)
	}

	st, err := session.LoadState(store, env.UserID)
	if err != nil {
		store.Close()
		return nil, nil, fmt.Errorf("load sessions: %w", err)
	}

	if env.SessionID != "" && !st.Switch(env.SessionID) {
		store.Close()
		return nil, nil, fmt.Errorf("unknown session %q", env.SessionID)
	}
	return store, st, nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("lighthouse-agent %s\n", version)
		},
	}
}
