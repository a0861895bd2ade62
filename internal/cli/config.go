package cli

import (
	"os"
	"path/filepath"
)

// Config holds CLI configuration
type Config struct {
	ServerURL    string
	PlayerID     string
	IdentityFile string
	Output       string
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL:    getEnvOrDefault("QUIZPOKER_SERVER", "http://localhost:8080"),
		PlayerID:     os.Getenv("QUIZPOKER_PLAYER_ID"),
		IdentityFile: getEnvOrDefault("QUIZPOKER_IDENTITY_FILE", defaultIdentityFile()),
		Output:       "text",
	}
}

// LoadIdentity loads the player ID from file if not already set
func (c *Config) LoadIdentity() error {
	if c.PlayerID != "" {
		return nil
	}

	data, err := os.ReadFile(c.IdentityFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // No identity file is fine
		}
		return err
	}

	c.PlayerID = string(data)
	return nil
}

// SaveIdentity saves the player ID to the identity file
func (c *Config) SaveIdentity(playerID string) error {
	c.PlayerID = playerID

	dir := filepath.Dir(c.IdentityFile)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	return os.WriteFile(c.IdentityFile, []byte(playerID), 0600)
}

func defaultIdentityFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".quizpoker/identity"
	}
	return filepath.Join(home, ".quizpoker", "identity")
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
