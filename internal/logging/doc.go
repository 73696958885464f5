// Package logger provides leveled, colorized logging for the MavPulse CLI.
//
// The Logger struct carries two flags: Verbose enables informational output
// and Debug enables debug output. Warnings and errors always print to stderr.
//
// Log messages must never contain key material, wrapped or otherwise, nor
// session tokens. Callers log identifiers (aliases, room ids, request ids)
// instead.
package logger
