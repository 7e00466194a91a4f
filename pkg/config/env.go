package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// Environment variables recognised on top of the config file.
const (
	EnvAgentURL = "NEXT_PUBLIC_API_URL"
	EnvAgentKey = "NEXT_PUBLIC_AGENT_KEY"
)

// ApplyEnv loads envFile (if it exists) into the process environment and
// applies agent overrides to cfg. Variables already set in the environment
// win over the file.
func ApplyEnv(cfg Config, envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	if v, ok := os.LookupEnv(EnvAgentURL); ok && v != "" {
		cfg.AgentURL = v
	}
	// Sent as-is, so an explicitly empty key is honoured.
	if v, ok := os.LookupEnv(EnvAgentKey); ok {
		cfg.AgentKey = v
	}

	return cfg, nil
}
