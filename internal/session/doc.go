// Package session persists the device's login state. The access token lives
// in the OS keyring; everything else goes into config.toml.
package session
