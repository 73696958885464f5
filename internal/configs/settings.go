package configs

import (
	"log"
	"os"
	"path/filepath"
)

type UserSettings struct {
	// UserDataPath holds key material, the local cache, and the audit log.
	UserDataPath string

	// UserConfigsPath holds config.toml.
	UserConfigsPath string
}

var UserMavPulseSettings *UserSettings

func init() {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("error getting home directory: %s", err)
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		log.Fatalf("error getting config directory: %s", err)
	}

	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		dataDir = filepath.Join(homeDir, ".local", "share")
	}

	// Independent of any project directory, so it is ok to init here.
	UserMavPulseSettings = &UserSettings{
		UserDataPath:    filepath.Join(dataDir, "mavpulse"),
		UserConfigsPath: filepath.Join(configDir, "mavpulse"),
	}
}

// KeysPath returns the directory holding sealed key pairs.
func (s *UserSettings) KeysPath() string {
	return filepath.Join(s.UserDataPath, "keys")
}

// CachePath returns the path of the local SQLite cache.
func (s *UserSettings) CachePath() string {
	return filepath.Join(s.UserDataPath, "cache.db")
}

// AuditLogPath returns the path of the append-only operation log.
func (s *UserSettings) AuditLogPath() string {
	return filepath.Join(s.UserDataPath, "audit.jsonl")
}
