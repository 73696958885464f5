package audit

import (
	"strings"
	"testing"

	"github.com/alomac6/mavpulse/internal/configs"
)

func redirectSettings(t *testing.T) {
	t.Helper()
	original := configs.UserMavPulseSettings
	t.Cleanup(func() {
		configs.UserMavPulseSettings = original
	})
	configs.UserMavPulseSettings = &configs.UserSettings{
		UserDataPath:    t.TempDir(),
		UserConfigsPath: t.TempDir(),
	}
}

func TestLogAndReadEntries(t *testing.T) {
	redirectSettings(t)

	Log(Entry{UserID: "42", Operation: "room.create", RoomID: "room-1", Outcome: "ok"})
	Log(Entry{UserID: "42", Operation: "request.accept", RequestID: "req-1", Outcome: "ok"})

	entries, err := ReadEntries()
	if err != nil {
		t.Fatalf("Failed to read entries: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	if entries[0].Operation != "room.create" || entries[1].Operation != "request.accept" {
		t.Errorf("Unexpected entries: %+v", entries)
	}
	if entries[0].Timestamp == "" {
		t.Error("Expected a timestamp to be filled in")
	}
}

func TestReadEntries_NoLogFile(t *testing.T) {
	redirectSettings(t)

	entries, err := ReadEntries()
	if err != nil {
		t.Fatalf("Expected no error for a missing log, got %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Expected no entries, got %d", len(entries))
	}
}

func TestParseEntries_SkipsMalformedLines(t *testing.T) {
	data := strings.Join([]string{
		`{"ts":"2026-08-31T12:00:00.000000Z","user":"42","op":"room.create"}`,
		`this line is not json`,
		``,
		`{"ts":"2026-08-31T12:00:01.000000Z","user":"42","op":"note.upload"}`,
	}, "\n")

	entries, err := ParseEntries([]byte(data))
	if err != nil {
		t.Fatalf("Failed to parse entries: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	if entries[0].Operation != "room.create" || entries[1].Operation != "note.upload" {
		t.Errorf("Unexpected entries: %+v", entries)
	}
}

func TestParseEntries_Empty(t *testing.T) {
	entries, err := ParseEntries(nil)
	if err != nil {
		t.Fatalf("Failed to parse empty data: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Expected no entries, got %d", len(entries))
	}
}
