// Package crypto implements the room key envelope scheme.
//
// Each room has one random 256-bit symmetric key. The cleartext key exists
// only transiently in memory during room creation or join acceptance; what
// the backend stores is one wrapped copy per member, encrypted under that
// member's RSA-2048 public key with PKCS1v15 padding. Compromising the
// backend's stored data alone therefore discloses no room key.
//
// "Wrap" and "unwrap" are encrypt and decrypt of the data key. Unwrapping
// goes through the keystore by alias so private keys stay inside it.
package crypto
