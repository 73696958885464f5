package state

import (
	"sort"
	"testing"

	"github.com/alomac6/mavpulse/internal/models"
)

func TestFavorites_Toggle(t *testing.T) {
	f := NewFavorites()

	if f.Contains("note-1") {
		t.Error("Expected a fresh set to be empty")
	}
	if !f.Toggle("note-1") {
		t.Error("Expected the first toggle to favorite the note")
	}
	if !f.Contains("note-1") {
		t.Error("Expected the set to contain the note")
	}
	if f.Toggle("note-1") {
		t.Error("Expected the second toggle to unfavorite the note")
	}
	if f.Contains("note-1") {
		t.Error("Expected the set to no longer contain the note")
	}
}

func TestFavorites_SnapshotRestore(t *testing.T) {
	f := NewFavorites()
	f.Replace([]string{"note-1", "note-2"})

	snap := f.Snapshot()
	f.Toggle("note-1")
	f.Toggle("note-3")

	f.Restore(snap)

	got := f.List()
	sort.Strings(got)
	want := []string{"note-1", "note-2"}
	if len(got) != len(want) {
		t.Fatalf("Expected %v after restore, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Expected %v after restore, got %v", want, got)
		}
	}
}

func TestFavorites_SnapshotIsIndependent(t *testing.T) {
	f := NewFavorites()
	f.Replace([]string{"note-1"})

	snap := f.Snapshot()
	f.Toggle("note-1")

	if !snap["note-1"] {
		t.Error("Expected the snapshot to be unaffected by later toggles")
	}
}

func TestRoomList_ReplaceAndMerge(t *testing.T) {
	r := NewRoomList()
	r.Replace([]models.Room{{ID: "room-1", Name: "CSE Study Group"}})
	r.Merge(models.Room{ID: "room-2", Name: "Finals Cram"})

	rooms := r.List()
	if len(rooms) != 2 {
		t.Fatalf("Expected 2 rooms, got %d", len(rooms))
	}
	if rooms[0].ID != "room-1" || rooms[1].ID != "room-2" {
		t.Errorf("Unexpected room order: %+v", rooms)
	}
}

func TestRoomList_ListReturnsCopy(t *testing.T) {
	r := NewRoomList()
	r.Replace([]models.Room{{ID: "room-1"}})

	rooms := r.List()
	rooms[0].ID = "mutated"

	if r.List()[0].ID != "room-1" {
		t.Error("Expected mutations of the returned slice not to affect the list")
	}
}

func TestNoteList_Remove(t *testing.T) {
	n := NewNoteList()
	n.Replace([]models.Note{
		{ID: "note-1"},
		{ID: "note-2"},
		{ID: "note-3"},
	})

	n.Remove("note-2")

	notes := n.List()
	if len(notes) != 2 {
		t.Fatalf("Expected 2 notes, got %d", len(notes))
	}
	if notes[0].ID != "note-1" || notes[1].ID != "note-3" {
		t.Errorf("Unexpected notes after remove: %+v", notes)
	}
}

func TestNoteList_SnapshotRestore(t *testing.T) {
	n := NewNoteList()
	n.Replace([]models.Note{{ID: "note-1"}})

	snap := n.Snapshot()
	n.Remove("note-1")
	n.Append(models.Note{ID: "note-2"})

	n.Restore(snap)

	notes := n.List()
	if len(notes) != 1 || notes[0].ID != "note-1" {
		t.Errorf("Expected the original list after restore, got %+v", notes)
	}
}
