package notes

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/alomac6/mavpulse/internal/api"
	"github.com/alomac6/mavpulse/internal/configs"
	apperrors "github.com/alomac6/mavpulse/internal/errors"
	logger "github.com/alomac6/mavpulse/internal/logging"
	"github.com/alomac6/mavpulse/internal/models"
	"github.com/alomac6/mavpulse/internal/state"
)

func redirectUserSettings(t *testing.T) {
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

func newTestController(t *testing.T, server *httptest.Server) *Controller {
	t.Helper()
	redirectUserSettings(t)
	client := api.New(api.Config{BaseURL: server.URL, HTTPClient: server.Client()})
	return NewController(client, state.NewNoteList(), state.NewFavorites(), logger.Logger{})
}

func TestToggleFavorite_Add(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/user/favorites" {
			t.Errorf("Unexpected request: %s %s", r.Method, r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"favorite_id":"fav-1","note_id":"note-1","user_id":"42"}`))
	}))
	defer server.Close()

	controller := newTestController(t, server)

	favorited, err := controller.ToggleFavorite(context.Background(), "note-1", "42")
	if err != nil {
		t.Fatalf("Failed to toggle favorite: %v", err)
	}
	if !favorited {
		t.Error("Expected the note to be favorited")
	}
	if !controller.Favorites().Contains("note-1") {
		t.Error("Expected local state to contain the favorite")
	}
}

func TestToggleFavorite_RollbackOnFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	controller := newTestController(t, server)

	favorited, err := controller.ToggleFavorite(context.Background(), "note-1", "42")
	if err == nil {
		t.Fatal("Expected the toggle to fail")
	}
	if favorited {
		t.Error("Expected the reported state to be not-favorited after rollback")
	}
	if controller.Favorites().Contains("note-1") {
		t.Error("Expected the optimistic toggle to be rolled back")
	}
}

func TestToggleFavorite_RollbackPreservesOthers(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	controller := newTestController(t, server)
	controller.Favorites().Replace([]string{"note-1", "note-2"})

	// Removing note-1 fails server-side; the snapshot restore must bring it
	// back without touching note-2.
	if _, err := controller.ToggleFavorite(context.Background(), "note-1", "42"); err == nil {
		t.Fatal("Expected the toggle to fail")
	}
	if !controller.Favorites().Contains("note-1") {
		t.Error("Expected note-1 to be restored after rollback")
	}
	if !controller.Favorites().Contains("note-2") {
		t.Error("Expected note-2 to be untouched by rollback")
	}
}

func TestToggleFavorite_DoubleToggle(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case "POST":
			_, _ = w.Write([]byte(`{"favorite_id":"fav-1","note_id":"note-1","user_id":"42"}`))
		case "DELETE":
			w.WriteHeader(http.StatusNoContent)
		default:
			t.Errorf("Unexpected method: %s", r.Method)
		}
	}))
	defer server.Close()

	controller := newTestController(t, server)

	if _, err := controller.ToggleFavorite(context.Background(), "note-1", "42"); err != nil {
		t.Fatalf("Failed to favorite: %v", err)
	}
	favorited, err := controller.ToggleFavorite(context.Background(), "note-1", "42")
	if err != nil {
		t.Fatalf("Failed to unfavorite: %v", err)
	}
	if favorited {
		t.Error("Expected the note to be unfavorited after the second toggle")
	}
	if controller.Favorites().Contains("note-1") {
		t.Error("Expected local state to no longer contain the favorite")
	}
}

func TestUploadNote(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(4 << 20); err != nil {
			t.Errorf("Failed to parse multipart form: %v", err)
		}
		if got := r.FormValue("title"); got != "Week 3 Notes" {
			t.Errorf("Expected title Week 3 Notes, got %q", got)
		}
		if got := r.FormValue("user_id"); got != "42" {
			t.Errorf("Expected user_id 42, got %q", got)
		}
		_, _ = w.Write([]byte(`[{"note_id":"note-9","title":"Week 3 Notes","file_path":"https://files/note-9.pdf"}]`))
	}))
	defer server.Close()

	controller := newTestController(t, server)

	path := filepath.Join(t.TempDir(), "notes.pdf")
	if err := os.WriteFile(path, []byte("pdf bytes"), 0600); err != nil {
		t.Fatalf("Failed to write upload file: %v", err)
	}

	note, err := controller.UploadNote(context.Background(), "CSE-1310", "Week 3 Notes", "42", path)
	if err != nil {
		t.Fatalf("Failed to upload note: %v", err)
	}
	if note.ID != "note-9" {
		t.Errorf("Unexpected note: %+v", note)
	}

	local := controller.Notes().List()
	if len(local) != 1 || local[0].ID != "note-9" {
		t.Errorf("Expected the new note in local state, got %+v", local)
	}
}

func TestUploadNote_TooLarge(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("No request should reach the server for an oversized file")
	}))
	defer server.Close()

	controller := newTestController(t, server)

	path := filepath.Join(t.TempDir(), "big.pdf")
	if err := os.WriteFile(path, bytes.Repeat([]byte("x"), MaxUploadSize+1), 0600); err != nil {
		t.Fatalf("Failed to write upload file: %v", err)
	}

	_, err := controller.UploadNote(context.Background(), "CSE-1310", "Too Big", "42", path)
	if !errors.Is(err, apperrors.ErrFileTooLarge) {
		t.Errorf("Expected ErrFileTooLarge, got %v", err)
	}
}

func TestDeleteNote_RollbackOnFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	controller := newTestController(t, server)
	controller.Notes().Replace([]models.Note{
		{ID: "note-1", Title: "Keep Me"},
	})

	if err := controller.DeleteNote(context.Background(), "note-1", "42"); err == nil {
		t.Fatal("Expected the delete to fail")
	}
	local := controller.Notes().List()
	if len(local) != 1 || local[0].ID != "note-1" {
		t.Errorf("Expected the note restored after rollback, got %+v", local)
	}
}

func TestDeleteNote(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"response":"deleted"}`))
	}))
	defer server.Close()

	controller := newTestController(t, server)
	controller.Notes().Replace([]models.Note{
		{ID: "note-1", Title: "Delete Me"},
		{ID: "note-2", Title: "Keep Me"},
	})

	if err := controller.DeleteNote(context.Background(), "note-1", "42"); err != nil {
		t.Fatalf("Failed to delete note: %v", err)
	}
	local := controller.Notes().List()
	if len(local) != 1 || local[0].ID != "note-2" {
		t.Errorf("Expected only note-2 to remain, got %+v", local)
	}
}

func TestFetchNotes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"note_id":"note-1","title":"Week 1","file_path":"https://files/1.pdf"}]`))
	}))
	defer server.Close()

	controller := newTestController(t, server)

	notes, err := controller.FetchNotes(context.Background(), "CSE-1310")
	if err != nil {
		t.Fatalf("Failed to fetch notes: %v", err)
	}
	if len(notes) != 1 || notes[0].ID != "note-1" {
		t.Errorf("Unexpected notes: %+v", notes)
	}
}
