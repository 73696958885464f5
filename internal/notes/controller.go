package notes

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alomac6/mavpulse/internal/api"
	"github.com/alomac6/mavpulse/internal/audit"
	apperrors "github.com/alomac6/mavpulse/internal/errors"
	logger "github.com/alomac6/mavpulse/internal/logging"
	"github.com/alomac6/mavpulse/internal/models"
	"github.com/alomac6/mavpulse/internal/state"
)

// MaxUploadSize is the note upload limit in bytes.
const MaxUploadSize = 3 * 1024 * 1024

// Controller orchestrates note browsing, uploads, and the optimistic
// favorite toggle.
type Controller struct {
	api       *api.Client
	notes     *state.NoteList
	favorites *state.Favorites
	log       logger.Logger
}

// NewController wires a Controller from its collaborators.
func NewController(client *api.Client, notes *state.NoteList, favorites *state.Favorites, log logger.Logger) *Controller {
	return &Controller{
		api:       client,
		notes:     notes,
		favorites: favorites,
		log:       log,
	}
}

// Notes exposes the local note list.
func (c *Controller) Notes() *state.NoteList {
	return c.notes
}

// Favorites exposes the local favorites set.
func (c *Controller) Favorites() *state.Favorites {
	return c.favorites
}

// FetchNotes loads the notes of a course into local state.
func (c *Controller) FetchNotes(ctx context.Context, course string) ([]models.Note, error) {
	notes, err := c.api.Notes(ctx, course)
	if err != nil {
		return nil, err
	}
	c.notes.Replace(notes)
	return notes, nil
}

// FetchFavorites loads the user's favorites into local state.
func (c *Controller) FetchFavorites(ctx context.Context, userID string) ([]models.Favorite, error) {
	favorites, err := c.api.FavoriteNotes(ctx, userID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(favorites))
	for _, f := range favorites {
		ids = append(ids, f.NoteID)
	}
	c.favorites.Replace(ids)
	return favorites, nil
}

// ToggleFavorite flips a note's favorite state. The local set is updated
// before the network call; if the call fails the pre-toggle snapshot is
// restored, so local and server state cannot end up permanently disagreeing.
// The rollback itself surfaces no error: the user retries via the same
// control. Returns the note's favorite state after the operation settles.
func (c *Controller) ToggleFavorite(ctx context.Context, noteID, userID string) (bool, error) {
	snapshot := c.favorites.Snapshot()
	nowFavorite := c.favorites.Toggle(noteID)

	var err error
	if nowFavorite {
		_, err = c.api.FavoriteNote(ctx, userID, noteID)
	} else {
		err = c.api.UnfavoriteNote(ctx, noteID)
	}
	if err != nil {
		c.favorites.Restore(snapshot)
		return c.favorites.Contains(noteID), err
	}

	audit.Log(audit.Entry{
		UserID:    userID,
		Operation: "note.favorite",
		NoteID:    noteID,
		Outcome:   outcome(nowFavorite),
	})
	return nowFavorite, nil
}

func outcome(favorited bool) string {
	if favorited {
		return "added"
	}
	return "removed"
}

// UploadNote uploads a file as a course note, enforcing the size limit
// client-side, and merges the new note into local state on success.
func (c *Controller) UploadNote(ctx context.Context, course, title, userID, path string) (*models.Note, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload file: %w", err)
	}
	if info.Size() > MaxUploadSize {
		return nil, fmt.Errorf("%w: %d bytes", apperrors.ErrFileTooLarge, info.Size())
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open upload file: %w", err)
	}
	defer file.Close()

	uploaded, err := c.api.UploadNote(ctx, course, title, userID, filepath.Base(path), file)
	if err != nil {
		return nil, err
	}
	if len(uploaded) == 0 {
		return nil, fmt.Errorf("%w: upload returned no note", apperrors.ErrServerRejection)
	}

	// The server answers with a listing containing the new note; take the
	// first entry, matching the backend's contract.
	note := uploaded[0]
	c.notes.Append(note)

	c.log.Debugf("uploaded note %s to course %s", note.ID, course)
	audit.Log(audit.Entry{
		UserID:    userID,
		Operation: "note.upload",
		NoteID:    note.ID,
		Course:    course,
		Outcome:   "ok",
	})
	return &note, nil
}

// DeleteNote deletes one of the user's notes. The local list is updated
// optimistically and restored if the server call fails.
func (c *Controller) DeleteNote(ctx context.Context, noteID, userID string) error {
	snapshot := c.notes.Snapshot()
	c.notes.Remove(noteID)

	if _, err := c.api.DeleteNote(ctx, noteID); err != nil {
		c.notes.Restore(snapshot)
		return err
	}

	audit.Log(audit.Entry{
		UserID:    userID,
		Operation: "note.delete",
		NoteID:    noteID,
		Outcome:   "ok",
	})
	return nil
}

// DownloadNote fetches a note's file into destDir, named after the title.
func (c *Controller) DownloadNote(ctx context.Context, note models.Note, destDir string) (string, error) {
	dest := filepath.Join(destDir, filepath.Base(note.Title))
	if err := c.api.DownloadFile(ctx, note.FilePath, dest); err != nil {
		return "", err
	}
	return dest, nil
}
