package keystore

import (
	"bytes"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"errors"
	"os"
	"testing"

	"github.com/99designs/keyring"

	apperrors "github.com/alomac6/mavpulse/internal/errors"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	return NewFileStore(t.TempDir(), keyring.NewArrayKeyring(nil))
}

func TestGetOrCreate_GeneratesPair(t *testing.T) {
	store := newTestStore(t)

	handle, err := store.GetOrCreate("user_42")
	if err != nil {
		t.Fatalf("Failed to create key pair: %v", err)
	}
	if handle.Alias != "user_42" {
		t.Errorf("Expected alias user_42, got %s", handle.Alias)
	}
	if handle.PublicKey == nil {
		t.Fatal("Expected a public key on the handle")
	}
	if handle.PublicKey.N.BitLen() != 2048 {
		t.Errorf("Expected a 2048-bit key, got %d bits", handle.PublicKey.N.BitLen())
	}

	exists, err := store.Contains("user_42")
	if err != nil {
		t.Fatalf("Failed to check for key pair: %v", err)
	}
	if !exists {
		t.Error("Expected Contains to report the pair exists")
	}
}

func TestGetOrCreate_IsIdempotent(t *testing.T) {
	store := newTestStore(t)

	first, err := store.GetOrCreate("user_42")
	if err != nil {
		t.Fatalf("Failed to create key pair: %v", err)
	}
	second, err := store.GetOrCreate("user_42")
	if err != nil {
		t.Fatalf("Failed to load key pair: %v", err)
	}

	firstDER, err := x509.MarshalPKIXPublicKey(first.PublicKey)
	if err != nil {
		t.Fatalf("Failed to marshal first public key: %v", err)
	}
	secondDER, err := x509.MarshalPKIXPublicKey(second.PublicKey)
	if err != nil {
		t.Fatalf("Failed to marshal second public key: %v", err)
	}
	if !bytes.Equal(firstDER, secondDER) {
		t.Error("Expected repeated GetOrCreate to return the same public key")
	}
}

func TestContains_MissingAlias(t *testing.T) {
	store := newTestStore(t)

	exists, err := store.Contains("user_absent")
	if err != nil {
		t.Fatalf("Failed to check for key pair: %v", err)
	}
	if exists {
		t.Error("Expected Contains to report false for an unknown alias")
	}
}

func TestDecrypt_RoundTrip(t *testing.T) {
	store := newTestStore(t)

	handle, err := store.GetOrCreate("user_42")
	if err != nil {
		t.Fatalf("Failed to create key pair: %v", err)
	}

	plaintext := []byte("the room key goes here, 32 bytes")
	ciphertext, err := rsa.EncryptPKCS1v15(rand.Reader, handle.PublicKey, plaintext)
	if err != nil {
		t.Fatalf("Failed to encrypt with the handle's public key: %v", err)
	}

	decrypted, err := store.Decrypt("user_42", ciphertext)
	if err != nil {
		t.Fatalf("Failed to decrypt: %v", err)
	}
	if !bytes.Equal(decrypted, plaintext) {
		t.Error("Decrypted plaintext does not match the original")
	}
}

func TestDecrypt_UnknownAlias(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Decrypt("user_absent", []byte("irrelevant"))
	if !errors.Is(err, apperrors.ErrKeyNotFound) {
		t.Errorf("Expected ErrKeyNotFound, got %v", err)
	}
}

func TestDecrypt_WrongKey(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.GetOrCreate("user_a"); err != nil {
		t.Fatalf("Failed to create key pair for user_a: %v", err)
	}
	other, err := store.GetOrCreate("user_b")
	if err != nil {
		t.Fatalf("Failed to create key pair for user_b: %v", err)
	}

	ciphertext, err := rsa.EncryptPKCS1v15(rand.Reader, other.PublicKey, []byte("secret"))
	if err != nil {
		t.Fatalf("Failed to encrypt: %v", err)
	}

	_, err = store.Decrypt("user_a", ciphertext)
	if !errors.Is(err, apperrors.ErrUnwrapFailed) {
		t.Errorf("Expected ErrUnwrapFailed, got %v", err)
	}
}

func TestPrivateKey_SealedOnDisk(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(dir, keyring.NewArrayKeyring(nil))

	if _, err := store.GetOrCreate("user_42"); err != nil {
		t.Fatalf("Failed to create key pair: %v", err)
	}

	sealed, err := os.ReadFile(store.privatePath("user_42"))
	if err != nil {
		t.Fatalf("Failed to read private key file: %v", err)
	}

	// The on-disk blob must not be a usable private key on its own.
	if bytes.Contains(sealed, []byte("PRIVATE KEY")) {
		t.Error("Private key file contains a plaintext PEM block")
	}
	if _, err := x509.ParsePKCS1PrivateKey(sealed); err == nil {
		t.Error("Private key file parses as unencrypted PKCS1 DER")
	}
}

func TestDecrypt_DifferentMasterKey(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(dir, keyring.NewArrayKeyring(nil))

	handle, err := store.GetOrCreate("user_42")
	if err != nil {
		t.Fatalf("Failed to create key pair: %v", err)
	}
	ciphertext, err := rsa.EncryptPKCS1v15(rand.Reader, handle.PublicKey, []byte("secret"))
	if err != nil {
		t.Fatalf("Failed to encrypt: %v", err)
	}

	// A store over the same directory but a fresh keyring generates a new
	// master key and cannot unseal the existing private key.
	other := NewFileStore(dir, keyring.NewArrayKeyring(nil))
	if _, err := other.Decrypt("user_42", ciphertext); err == nil {
		t.Error("Expected decryption to fail under a different device master key")
	}
}
