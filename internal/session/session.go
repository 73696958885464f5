package session

import (
	"fmt"

	"github.com/99designs/keyring"

	"github.com/alomac6/mavpulse/internal/configs"
	apperrors "github.com/alomac6/mavpulse/internal/errors"
)

const tokenItem = "access-token"

// Session is the resolved login state of this device.
type Session struct {
	UserID   string
	Username string
	Email    string
	Token    string
}

// Manager persists the login session. The access token goes into the OS
// keyring; the user id, username and email go into config.toml since they
// are not secrets.
type Manager struct {
	kr keyring.Keyring
}

// NewManager returns a Manager over the given keyring.
func NewManager(kr keyring.Keyring) *Manager {
	return &Manager{kr: kr}
}

// OpenDefault opens the OS keyring for the MavPulse service.
func OpenDefault() (*Manager, error) {
	kr, err := keyring.Open(keyring.Config{
		ServiceName: "mavpulse",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open keyring: %w", err)
	}
	return NewManager(kr), nil
}

// Save stores a session after a successful login.
func (m *Manager) Save(s Session) error {
	if err := m.kr.Set(keyring.Item{
		Key:   tokenItem,
		Data:  []byte(s.Token),
		Label: "MavPulse access token",
	}); err != nil {
		return fmt.Errorf("failed to store access token: %w", err)
	}

	config, err := configs.LoadClientConfig()
	if err != nil {
		return err
	}
	config.User = configs.User{
		ID:       s.UserID,
		Username: s.Username,
		Email:    s.Email,
	}
	return configs.SaveClientConfig(config)
}

// Load returns the stored session, or ErrNotLoggedIn when none exists.
func (m *Manager) Load() (*Session, error) {
	config, err := configs.LoadClientConfig()
	if err != nil {
		return nil, err
	}
	if config.User.ID == "" {
		return nil, apperrors.ErrNotLoggedIn
	}

	item, err := m.kr.Get(tokenItem)
	if err == keyring.ErrKeyNotFound {
		return nil, apperrors.ErrNotLoggedIn
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrSessionCorrupt, err)
	}

	return &Session{
		UserID:   config.User.ID,
		Username: config.User.Username,
		Email:    config.User.Email,
		Token:    string(item.Data),
	}, nil
}

// Clear removes the stored session. Clearing an absent session is not an
// error.
func (m *Manager) Clear() error {
	if err := m.kr.Remove(tokenItem); err != nil && err != keyring.ErrKeyNotFound {
		return fmt.Errorf("failed to remove access token: %w", err)
	}

	config, err := configs.LoadClientConfig()
	if err != nil {
		return err
	}
	config.User = configs.User{}
	return configs.SaveClientConfig(config)
}
