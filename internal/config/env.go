// Package config provides centralized configuration management for the
// frontend. All environment lookups live here.
package config

import (
	"os"
	"path/filepath"
	"sync"
)

// AgentEnv holds all frontend environment variables.
type AgentEnv struct {
	// ServerURL is the base URL of the remote agent service (AGENT_URL)
	ServerURL string

	// UserID identifies the requesting user (AGENT_USER_ID)
	UserID string

	// SessionID is a fixed session to resume (AGENT_SESSION_ID)
	SessionID string

	// AuthToken is a bearer token sent with requests (AGENT_AUTH_TOKEN)
	AuthToken string

	// DataDir overrides the default data directory (AGENT_DATA_DIR)
	DataDir string

	// Plain disables the TUI in favor of plain console output (AGENT_PLAIN)
	Plain bool
}

var (
	env     *AgentEnv
	envOnce sync.Once
)

// Env returns the singleton environment configuration.
// Thread-safe, loads once on first call.
func Env() *AgentEnv {
	envOnce.Do(func() {
		env = &AgentEnv{
			ServerURL: getEnvDefault("AGENT_URL", "http://localhost:8000"),
			UserID:    getEnvDefault("AGENT_USER_ID", "local"),
			SessionID: os.Getenv("AGENT_SESSION_ID"),
			AuthToken: os.Getenv("AGENT_AUTH_TOKEN"),
			DataDir:   os.Getenv("AGENT_DATA_DIR"),
			Plain:     os.Getenv("AGENT_PLAIN") == "1",
		}
	})
	return env
}

// ResetEnv resets the cached environment (for testing).
func ResetEnv() {
	envOnce = sync.Once{}
	env = nil
}

func getEnvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// DefaultDataDir returns the directory holding chat history and exports.
// AGENT_DATA_DIR wins over the per-user default.
func DefaultDataDir() string {
	if e := Env(); e.DataDir != "" {
		return e.DataDir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".lighthouse-agent")
}

// SavedChatsDir returns the directory used for YAML chat exports.
func SavedChatsDir() string {
	return filepath.Join(DefaultDataDir(), "saved_chats")
}

// EnsureDir creates a directory if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}
