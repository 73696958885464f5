package state

import (
	"sync"

	"github.com/alomac6/mavpulse/internal/models"
)

// Favorites is the locally visible set of favorited note ids. Toggles are
// applied optimistically before the network call resolves; the caller takes a
// Snapshot first and Restores it if the call fails, so a failed toggle never
// leaves local and server state disagreeing.
type Favorites struct {
	mu  sync.Mutex
	ids map[string]bool
}

// NewFavorites returns an empty favorites set.
func NewFavorites() *Favorites {
	return &Favorites{ids: make(map[string]bool)}
}

// Replace swaps the whole set, e.g. after fetching the server's list.
func (f *Favorites) Replace(noteIDs []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ids = make(map[string]bool, len(noteIDs))
	for _, id := range noteIDs {
		f.ids[id] = true
	}
}

// Contains reports whether a note is currently favorited.
func (f *Favorites) Contains(noteID string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ids[noteID]
}

// Toggle flips a note's favorite state and returns the new state.
func (f *Favorites) Toggle(noteID string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ids[noteID] {
		delete(f.ids, noteID)
		return false
	}
	f.ids[noteID] = true
	return true
}

// Snapshot returns a copy of the current set.
func (f *Favorites) Snapshot() map[string]bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	snap := make(map[string]bool, len(f.ids))
	for id := range f.ids {
		snap[id] = true
	}
	return snap
}

// Restore replaces the set with a previously taken snapshot.
func (f *Favorites) Restore(snap map[string]bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ids = make(map[string]bool, len(snap))
	for id := range snap {
		f.ids[id] = true
	}
}

// List returns the favorited note ids in no particular order.
func (f *Favorites) List() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := make([]string, 0, len(f.ids))
	for id := range f.ids {
		ids = append(ids, id)
	}
	return ids
}

// RoomList is the locally visible list of rooms for the course being browsed.
type RoomList struct {
	mu    sync.Mutex
	rooms []models.Room
}

// NewRoomList returns an empty room list.
func NewRoomList() *RoomList {
	return &RoomList{}
}

// Replace swaps the whole list.
func (r *RoomList) Replace(rooms []models.Room) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rooms = append([]models.Room(nil), rooms...)
}

// Merge appends a room, used after a successful creation.
func (r *RoomList) Merge(room models.Room) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rooms = append(r.rooms, room)
}

// List returns a copy of the current rooms.
func (r *RoomList) List() []models.Room {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.Room(nil), r.rooms...)
}

// NoteList is the locally visible list of notes for the course being browsed.
// Uploads append optimistically with the same snapshot/restore contract as
// Favorites.
type NoteList struct {
	mu    sync.Mutex
	notes []models.Note
}

// NewNoteList returns an empty note list.
func NewNoteList() *NoteList {
	return &NoteList{}
}

// Replace swaps the whole list.
func (n *NoteList) Replace(notes []models.Note) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notes = append([]models.Note(nil), notes...)
}

// Append adds a note to the list.
func (n *NoteList) Append(note models.Note) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notes = append(n.notes, note)
}

// Remove drops a note by id.
func (n *NoteList) Remove(noteID string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	kept := n.notes[:0]
	for _, note := range n.notes {
		if note.ID != noteID {
			kept = append(kept, note)
		}
	}
	n.notes = kept
}

// Snapshot returns a copy of the current notes.
func (n *NoteList) Snapshot() []models.Note {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]models.Note(nil), n.notes...)
}

// Restore replaces the list with a previously taken snapshot.
func (n *NoteList) Restore(snap []models.Note) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notes = append([]models.Note(nil), snap...)
}

// List returns a copy of the current notes.
func (n *NoteList) List() []models.Note {
	return n.Snapshot()
}
