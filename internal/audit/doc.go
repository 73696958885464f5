// Package audit provides an operation trail for MavPulse commands.
//
// Room and note operations (create, accept, deny, upload, delete, favorite)
// are recorded so a user can review what this device did and when.
//
// # Log Format
//
// The log is stored as JSON Lines (one JSON object per line) in the user
// data directory:
//
//	audit.jsonl
//
// Each entry carries a timestamp (RFC3339 with microseconds, UTC), the user
// id, the operation name, and operation-specific ids. Key material and
// access tokens are never logged.
//
// # Failure Handling
//
// Logging is best-effort. If an entry cannot be written (permissions, disk
// full), the operation continues without error.
//
// # Reading Logs
//
// Use ReadEntries to parse the log for display. Malformed lines are silently
// skipped to handle partial writes.
package audit
