package audit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/alomac6/mavpulse/internal/configs"
)

// Entry is a single operation log entry.
type Entry struct {
	Timestamp string `json:"ts"`   // RFC3339 with microseconds.
	UserID    string `json:"user"` // Id of the logged-in user, if any.
	Operation string `json:"op"`   // Operation name.

	// Optional fields depending on operation.
	RoomID    string `json:"room_id,omitempty"`    // For room create / accept.
	RequestID string `json:"request_id,omitempty"` // For accept / deny.
	TargetID  string `json:"target_id,omitempty"`  // For accept (the requester).
	NoteID    string `json:"note_id,omitempty"`    // For upload / delete / favorite.
	Course    string `json:"course,omitempty"`     // For upload / room create.
	Outcome   string `json:"outcome,omitempty"`    // "ok" or a short failure tag.
}

// Log appends an entry to the operation log under the user data directory.
// Logging failures are swallowed: an operation never fails because the audit
// log could not be written. No key material or tokens are ever logged.
func Log(entry Entry) {
	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().UTC().Format("2006-01-02T15:04:05.000000Z")
	}

	logPath := configs.UserMavPulseSettings.AuditLogPath()
	if err := os.MkdirAll(filepath.Dir(logPath), 0700); err != nil {
		return
	}

	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return
	}
	defer f.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}
	_, _ = f.Write(append(data, '\n'))
}

// ReadEntries reads all entries from the operation log. Returns an empty
// slice when the log does not exist.
func ReadEntries() ([]Entry, error) {
	data, err := os.ReadFile(configs.UserMavPulseSettings.AuditLogPath())
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return ParseEntries(data)
}

// ParseEntries parses JSON Lines data into entries. Malformed lines are
// silently skipped.
func ParseEntries(data []byte) ([]Entry, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var entries []Entry
	start := 0

	for i := 0; i <= len(data); i++ {
		if i == len(data) || data[i] == '\n' {
			line := data[start:i]
			start = i + 1

			if len(line) == 0 {
				continue
			}

			var entry Entry
			if err := json.Unmarshal(line, &entry); err != nil {
				continue
			}
			entries = append(entries, entry)
		}
	}

	return entries, nil
}
