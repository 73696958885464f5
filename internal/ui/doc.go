// Package ui provides semantic text formatting for CLI output.
//
// Formatters render content by type: commands, success and error indicators,
// highlighted user values, muted hints. When colors are unavailable (NO_COLOR
// set, TERM=dumb, not a TTY) text decorations take their place, so output
// stays readable in pipes and logs.
package ui
