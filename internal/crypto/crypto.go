package crypto

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"fmt"

	apperrors "github.com/alomac6/mavpulse/internal/errors"
	"github.com/alomac6/mavpulse/internal/keystore"
)

// RoomKeySize is the room symmetric key length in bytes (AES-256).
const RoomKeySize = 32

// Manager owns all envelope-encryption operations: per-user key pairs, room
// key generation, and wrap/unwrap. It is the only component that talks to the
// keystore.
type Manager struct {
	store keystore.Store
}

// NewManager returns a Manager backed by the given keystore.
func NewManager(store keystore.Store) *Manager {
	return &Manager{store: store}
}

// UserAlias derives the keystore alias for a user.
func UserAlias(userID string) string {
	return "user_" + userID
}

// GetOrCreateKeyPair returns the key pair under alias, generating one on
// first use. Idempotent per alias.
func (m *Manager) GetOrCreateKeyPair(alias string) (*keystore.KeyHandle, error) {
	return m.store.GetOrCreate(alias)
}

// GenerateRoomKey produces a fresh random 256-bit symmetric key. Pure
// generation, no persistence; the caller owns the cleartext and must zero it
// once wrapped.
func (m *Manager) GenerateRoomKey() ([]byte, error) {
	key := make([]byte, RoomKeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("failed to generate room key: %w", err)
	}
	return key, nil
}

// Wrap encrypts a symmetric key under the given public key with RSA PKCS1v15.
// A 32-byte key always fits under a 2048-bit modulus; ErrEncryptionFailed
// covers the oversized-input case anyway.
func (m *Manager) Wrap(plainKey []byte, publicKey *rsa.PublicKey) ([]byte, error) {
	wrapped, err := rsa.EncryptPKCS1v15(rand.Reader, publicKey, plainKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrEncryptionFailed, err)
	}
	return wrapped, nil
}

// Unwrap decrypts a wrapped key with the private key held under alias.
func (m *Manager) Unwrap(alias string, wrapped []byte) ([]byte, error) {
	return m.store.Decrypt(alias, wrapped)
}

// EncodeWrappedKey returns the transport-safe text form of a wrapped key.
func EncodeWrappedKey(wrapped []byte) string {
	return base64.StdEncoding.EncodeToString(wrapped)
}

// DecodeWrappedKey reverses EncodeWrappedKey.
func DecodeWrappedKey(s string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(s)
}

// EncodePublicKey renders a public key as base64 PKIX DER, the string form
// carried in join requests.
func EncodePublicKey(publicKey *rsa.PublicKey) (string, error) {
	der, err := x509.MarshalPKIXPublicKey(publicKey)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrInvalidPublicKey, err)
	}
	return base64.StdEncoding.EncodeToString(der), nil
}

// DecodePublicKey parses the base64 PKIX string form back into a public key.
func DecodePublicKey(s string) (*rsa.PublicKey, error) {
	der, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidPublicKey, err)
	}
	pub, err := x509.ParsePKIXPublicKey(der)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidPublicKey, err)
	}
	rsaPub, ok := pub.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("%w: not an RSA key", apperrors.ErrInvalidPublicKey)
	}
	return rsaPub, nil
}

// Zero overwrites key material in place. Callers zero cleartext room keys as
// soon as the wrapped form exists.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
