package configs

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// ClientConfig is the persisted client configuration. The backend URLs and
// timeout are explicit here; nothing in the client reads a process-wide
// mutable base URL.
type ClientConfig struct {
	Backend Backend `toml:"backend"`
	Device  Device  `toml:"device"`
	User    User    `toml:"user"`
}

type Backend struct {
	// BaseURL is the REST API root, e.g. https://mavpulsebackend.onrender.com.
	BaseURL string `toml:"base_url"`

	// FeedURL is the websocket endpoint for the join-request change feed.
	FeedURL string `toml:"feed_url"`

	// TimeoutSeconds bounds every network-bound step. Expiry is an ordinary
	// failure, never fatal.
	TimeoutSeconds int `toml:"timeout_seconds"`
}

type Device struct {
	UUID      string    `toml:"device_uuid"`
	Name      string    `toml:"name"`
	CreatedAt time.Time `toml:"created_at"`
}

// User holds the non-secret part of the session. The access token lives in
// the OS keyring, never in this file.
type User struct {
	ID       string `toml:"user_id"`
	Username string `toml:"username"`
	Email    string `toml:"email"`
}

const (
	DefaultBaseURL        = "https://mavpulsebackend.onrender.com"
	DefaultTimeoutSeconds = 45
)

// LoadClientConfig loads the client configuration, returning defaults when no
// config file exists yet.
func LoadClientConfig() (*ClientConfig, error) {
	configPath := filepath.Join(UserMavPulseSettings.UserConfigsPath, "config.toml")

	config := &ClientConfig{
		Backend: Backend{
			BaseURL:        DefaultBaseURL,
			TimeoutSeconds: DefaultTimeoutSeconds,
		},
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return config, nil
	}

	if err := LoadTOML(configPath, config); err != nil {
		return nil, fmt.Errorf("failed to load client config: %w", err)
	}

	if config.Backend.TimeoutSeconds <= 0 {
		config.Backend.TimeoutSeconds = DefaultTimeoutSeconds
	}

	return config, nil
}

// SaveClientConfig saves the client configuration to the config file.
func SaveClientConfig(config *ClientConfig) error {
	configPath := filepath.Join(UserMavPulseSettings.UserConfigsPath, "config.toml")

	if err := SaveTOML(configPath, config); err != nil {
		return fmt.Errorf("failed to save client config: %w", err)
	}

	return nil
}

// EnsureClientConfig ensures the config exists and carries a device UUID.
func EnsureClientConfig() (*ClientConfig, error) {
	config, err := LoadClientConfig()
	if err != nil {
		return nil, err
	}

	if config.Device.UUID == "" {
		config.Device.UUID = uuid.New().String()
		hostname, _ := os.Hostname()
		config.Device.Name = hostname
		config.Device.CreatedAt = time.Now().UTC()
		if err := SaveClientConfig(config); err != nil {
			return nil, err
		}
	}

	return config, nil
}

// Timeout returns the configured network timeout as a duration.
func (c *ClientConfig) Timeout() time.Duration {
	return time.Duration(c.Backend.TimeoutSeconds) * time.Second
}
