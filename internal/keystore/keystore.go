package keystore

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/99designs/keyring"
	"golang.org/x/crypto/nacl/secretbox"

	apperrors "github.com/alomac6/mavpulse/internal/errors"
)

const (
	// rsaKeyBits is the key size for generated pairs. A 32-byte room key fits
	// comfortably under PKCS1v15 padding at this size.
	rsaKeyBits = 2048

	// masterKeyItem is the keyring item name for the device master key.
	masterKeyItem = "device-master-key"
)

// KeyHandle references a key pair held by a Store. Only the public half is
// exposed; all private-key operations go through the store by alias.
type KeyHandle struct {
	Alias     string
	PublicKey *rsa.PublicKey
}

// Store is an alias-scoped key pair store. Private key material never crosses
// this interface.
type Store interface {
	// GetOrCreate returns the pair under alias, generating and persisting a
	// new 2048-bit RSA pair on first use. Idempotent: repeated calls return a
	// handle to the same underlying key.
	GetOrCreate(alias string) (*KeyHandle, error)

	// Contains reports whether a pair exists under alias.
	Contains(alias string) (bool, error)

	// Decrypt decrypts ciphertext with the private key held under alias.
	Decrypt(alias string, ciphertext []byte) ([]byte, error)
}

// FileStore keeps key pairs as files under a directory. Public keys are plain
// PEM. Private keys are PKCS1 DER sealed with NaCl secretbox under a 256-bit
// device master key that lives in the OS keyring, so the on-disk blobs are
// useless without the platform credential store.
type FileStore struct {
	dir string
	kr  keyring.Keyring
}

// NewFileStore returns a FileStore rooted at dir, using kr for the device
// master key.
func NewFileStore(dir string, kr keyring.Keyring) *FileStore {
	return &FileStore{dir: dir, kr: kr}
}

// OpenDefault opens the OS keyring for the MavPulse service and returns a
// FileStore rooted at dir.
func OpenDefault(dir string) (*FileStore, error) {
	kr, err := keyring.Open(keyring.Config{
		ServiceName: "mavpulse",
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrMasterKeyUnavailable, err)
	}
	return NewFileStore(dir, kr), nil
}

func (s *FileStore) privatePath(alias string) string {
	return filepath.Join(s.dir, alias+".key")
}

func (s *FileStore) publicPath(alias string) string {
	return filepath.Join(s.dir, alias+".pub")
}

// Contains reports whether both halves of the pair exist under alias.
func (s *FileStore) Contains(alias string) (bool, error) {
	if _, err := os.Stat(s.privatePath(alias)); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check for private key: %w", err)
	}
	if _, err := os.Stat(s.publicPath(alias)); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check for public key: %w", err)
	}
	return true, nil
}

// GetOrCreate returns the pair under alias, generating one on first use.
func (s *FileStore) GetOrCreate(alias string) (*KeyHandle, error) {
	exists, err := s.Contains(alias)
	if err != nil {
		return nil, err
	}
	if exists {
		pub, err := s.loadPublicKey(alias)
		if err != nil {
			return nil, err
		}
		return &KeyHandle{Alias: alias, PublicKey: pub}, nil
	}
	return s.generate(alias)
}

// Decrypt decrypts ciphertext with the private key held under alias.
func (s *FileStore) Decrypt(alias string, ciphertext []byte) ([]byte, error) {
	priv, err := s.loadPrivateKey(alias)
	if err != nil {
		return nil, err
	}
	plain, err := rsa.DecryptPKCS1v15(rand.Reader, priv, ciphertext)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUnwrapFailed, err)
	}
	return plain, nil
}

func (s *FileStore) generate(alias string) (*KeyHandle, error) {
	privateKey, err := rsa.GenerateKey(rand.Reader, rsaKeyBits)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrKeyGenerationFailed, err)
	}

	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return nil, fmt.Errorf("%w: failed to create keys directory: %v", apperrors.ErrKeyGenerationFailed, err)
	}

	// Seal and persist the private half first so a crash between the two
	// writes never leaves a public key without its private counterpart.
	sealed, err := s.seal(x509.MarshalPKCS1PrivateKey(privateKey))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrKeyGenerationFailed, err)
	}
	if err := os.WriteFile(s.privatePath(alias), sealed, 0600); err != nil {
		return nil, fmt.Errorf("%w: failed to save private key: %v", apperrors.ErrKeyGenerationFailed, err)
	}

	pubASN1, err := x509.MarshalPKIXPublicKey(&privateKey.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to marshal public key: %v", apperrors.ErrKeyGenerationFailed, err)
	}
	pubPem := pem.EncodeToMemory(&pem.Block{
		Type:  "PUBLIC KEY",
		Bytes: pubASN1,
	})
	if err := os.WriteFile(s.publicPath(alias), pubPem, 0600); err != nil {
		return nil, fmt.Errorf("%w: failed to save public key: %v", apperrors.ErrKeyGenerationFailed, err)
	}

	return &KeyHandle{Alias: alias, PublicKey: &privateKey.PublicKey}, nil
}

func (s *FileStore) loadPublicKey(alias string) (*rsa.PublicKey, error) {
	data, err := os.ReadFile(s.publicPath(alias))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrKeyNotFound, alias)
		}
		return nil, err
	}
	block, _ := pem.Decode(data)
	if block == nil || block.Type != "PUBLIC KEY" {
		return nil, fmt.Errorf("failed to decode PEM block containing public key for alias %s", alias)
	}
	pub, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, err
	}
	rsaPub, ok := pub.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("key under alias %s is not an RSA public key", alias)
	}
	return rsaPub, nil
}

func (s *FileStore) loadPrivateKey(alias string) (*rsa.PrivateKey, error) {
	sealed, err := os.ReadFile(s.privatePath(alias))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrKeyNotFound, alias)
		}
		return nil, err
	}
	der, err := s.open(sealed)
	if err != nil {
		return nil, err
	}
	defer zero(der)
	return x509.ParsePKCS1PrivateKey(der)
}

// seal encrypts plaintext under the device master key, prepending the random
// 24-byte nonce to the ciphertext.
func (s *FileStore) seal(plaintext []byte) ([]byte, error) {
	key, err := s.masterKey()
	if err != nil {
		return nil, err
	}
	defer zero(key[:])

	var nonce [24]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}
	return secretbox.Seal(nonce[:], plaintext, &nonce, key), nil
}

// open reverses seal.
func (s *FileStore) open(sealed []byte) ([]byte, error) {
	if len(sealed) < 24 {
		return nil, fmt.Errorf("sealed private key is too short")
	}
	key, err := s.masterKey()
	if err != nil {
		return nil, err
	}
	defer zero(key[:])

	var nonce [24]byte
	copy(nonce[:], sealed[:24])
	plaintext, ok := secretbox.Open(nil, sealed[24:], &nonce, key)
	if !ok {
		return nil, fmt.Errorf("failed to unseal private key with device master key")
	}
	return plaintext, nil
}

// masterKey fetches the device master key from the OS keyring, creating it on
// first use.
func (s *FileStore) masterKey() (*[32]byte, error) {
	item, err := s.kr.Get(masterKeyItem)
	if err == nil {
		if len(item.Data) != 32 {
			return nil, fmt.Errorf("%w: stored master key has length %d", apperrors.ErrMasterKeyUnavailable, len(item.Data))
		}
		var key [32]byte
		copy(key[:], item.Data)
		return &key, nil
	}
	if err != keyring.ErrKeyNotFound {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrMasterKeyUnavailable, err)
	}

	var key [32]byte
	if _, err := rand.Read(key[:]); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrMasterKeyUnavailable, err)
	}
	// Hand the keyring its own copy: in-memory keyrings retain the slice as
	// given, and callers zero the returned key's backing array after use.
	if err := s.kr.Set(keyring.Item{
		Key:   masterKeyItem,
		Data:  append([]byte(nil), key[:]...),
		Label: "MavPulse device master key",
	}); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrMasterKeyUnavailable, err)
	}
	return &key, nil
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
