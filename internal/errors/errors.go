package errors

import "errors"

// Cryptographic errors indicate failures in key generation or envelope operations.
var (
	// ErrKeyGenerationFailed indicates a new RSA key pair could not be generated or persisted.
	ErrKeyGenerationFailed = errors.New("failed to generate key pair")

	// ErrKeyNotFound indicates no key pair exists under the requested alias.
	ErrKeyNotFound = errors.New("no key pair found for alias")

	// ErrEncryptionFailed indicates the symmetric key could not be wrapped under a public key.
	ErrEncryptionFailed = errors.New("failed to encrypt symmetric key")

	// ErrUnwrapFailed indicates a wrapped key could not be decrypted with the alias's private key.
	ErrUnwrapFailed = errors.New("failed to unwrap symmetric key")

	// ErrInvalidPublicKey indicates a stored public key string is malformed or not RSA.
	ErrInvalidPublicKey = errors.New("invalid or unsupported public key")

	// ErrMasterKeyUnavailable indicates the device master key could not be read from the OS keyring.
	ErrMasterKeyUnavailable = errors.New("device master key unavailable")
)

// Network errors indicate connectivity or server-side failures.
var (
	// ErrNetworkFailure indicates the backend could not be reached or the request timed out.
	ErrNetworkFailure = errors.New("network request failed")

	// ErrServerRejection indicates the backend answered with a non-2xx status.
	ErrServerRejection = errors.New("server rejected the request")
)

// Session errors indicate issues with the locally stored login session.
var (
	// ErrNotLoggedIn indicates no session is stored on this device.
	ErrNotLoggedIn = errors.New("not logged in")

	// ErrSessionCorrupt indicates stored session data could not be read.
	ErrSessionCorrupt = errors.New("stored session is corrupt")
)

// Room errors indicate issues with room membership operations.
var (
	// ErrMembershipNotFound indicates the user has no membership record for the room.
	ErrMembershipNotFound = errors.New("no membership record for this room")

	// ErrRequestNotPending indicates a join request has already been accepted or denied.
	ErrRequestNotPending = errors.New("join request is no longer pending")
)

// Validation errors indicate client-side input checks failed before any network call.
var (
	// ErrFileTooLarge indicates an upload exceeds the note size limit.
	ErrFileTooLarge = errors.New("file exceeds the upload size limit")

	// ErrEmptyField indicates a required input field was left empty.
	ErrEmptyField = errors.New("required field is empty")
)
