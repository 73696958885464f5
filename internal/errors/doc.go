// Package errors defines sentinel errors for MavPulse client operations.
//
// Errors are grouped by concern: cryptographic failures, network and server
// failures, session state, room membership, and input validation. Call sites
// wrap these with fmt.Errorf and %w so callers can match with errors.Is while
// still seeing the full failure context.
//
// Nothing here is fatal to the process. Every failure surfaced through these
// sentinels is recoverable by an explicit user retry.
package errors
