// Package keystore holds the device's RSA key pairs, addressed by alias.
//
// The store mirrors a platform secure keystore: callers receive a KeyHandle
// carrying only the alias and the public key, and ask the store to decrypt by
// alias. Private key material never crosses the package boundary.
//
// # At-rest layout
//
// Each alias maps to two files under the store directory:
//
//	<alias>.pub  plain PEM (PKIX) public key
//	<alias>.key  PKCS1 private key sealed with NaCl secretbox
//
// The secretbox key is a 256-bit device master key stored in the OS keyring
// under the "mavpulse" service. Copying the key files to another machine
// yields nothing without that keyring entry.
//
// Pairs are created lazily on first use per alias and persist for the life of
// the installation. There is no rotation or revocation path.
package keystore
