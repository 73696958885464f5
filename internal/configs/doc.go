// Package configs manages the MavPulse CLI configuration.
//
// Configuration lives in two places:
//
//   - config.toml under the user config directory: backend URLs, the network
//     timeout, the device identity, and the non-secret part of the logged-in
//     user. TOML keeps the file hand-editable.
//   - The user data directory: sealed key pairs, the local cache database,
//     and the audit log. Paths are derived in settings.go.
//
// The backend base URL is read once into a ClientConfig and passed to
// whatever component needs it. There is no process-wide mutable URL.
package configs
