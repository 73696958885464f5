package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"

	apperrors "github.com/alomac6/mavpulse/internal/errors"
	"github.com/alomac6/mavpulse/internal/models"
)

type FavoriteRequest struct {
	UserID string `json:"user_id"`
	NoteID string `json:"note_id"`
}

type FavoriteResponse struct {
	FavoriteID string `json:"favorite_id"`
	NoteID     string `json:"note_id"`
	UserID     string `json:"user_id"`
}

type DeleteResponse struct {
	Response string `json:"response"`
}

// Notes lists the notes of a course.
func (c *Client) Notes(ctx context.Context, course string) ([]models.Note, error) {
	var notes []models.Note
	if err := c.do(ctx, "GET", "/courses/"+url.PathEscape(course)+"/files", nil, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

// FavoriteNotes lists a user's favorites.
func (c *Client) FavoriteNotes(ctx context.Context, userID string) ([]models.Favorite, error) {
	var favorites []models.Favorite
	if err := c.do(ctx, "GET", "/user/favorites/"+url.PathEscape(userID), nil, &favorites); err != nil {
		return nil, err
	}
	return favorites, nil
}

// UserNotes lists the notes a user has uploaded.
func (c *Client) UserNotes(ctx context.Context, userID string) ([]models.UserNote, error) {
	var notes []models.UserNote
	if err := c.do(ctx, "GET", "/user/notes/"+url.PathEscape(userID), nil, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

// FavoriteNote marks a note as a favorite of a user.
func (c *Client) FavoriteNote(ctx context.Context, userID, noteID string) (*FavoriteResponse, error) {
	var resp FavoriteResponse
	req := FavoriteRequest{UserID: userID, NoteID: noteID}
	if err := c.do(ctx, "POST", "/user/favorites", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UnfavoriteNote removes a note from the user's favorites.
func (c *Client) UnfavoriteNote(ctx context.Context, noteID string) error {
	return c.do(ctx, "DELETE", "/user/favorites/"+url.PathEscape(noteID), nil, nil)
}

// DeleteNote deletes one of the user's own notes.
func (c *Client) DeleteNote(ctx context.Context, noteID string) (*DeleteResponse, error) {
	var resp DeleteResponse
	if err := c.do(ctx, "DELETE", "/courses/"+url.PathEscape(noteID), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UploadNote uploads a note file to a course as a multipart form. The server
// answers with a listing that contains the new note.
func (c *Client) UploadNote(ctx context.Context, course, title, userID, filename string, file io.Reader) ([]models.Note, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to build multipart form: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("failed to read upload file: %w", err)
	}
	if err := writer.WriteField("title", title); err != nil {
		return nil, fmt.Errorf("failed to build multipart form: %w", err)
	}
	if err := writer.WriteField("user_id", userID); err != nil {
		return nil, fmt.Errorf("failed to build multipart form: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize multipart form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/courses/"+url.PathEscape(course)+"/files", &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrNetworkFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, rejection(resp)
	}

	var notes []models.Note
	if err := decodeJSON(resp.Body, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

// DownloadFile fetches a note file by its absolute URL and writes it to dest.
func (c *Client) DownloadFile(ctx context.Context, fileURL, dest string) error {
	req, err := http.NewRequestWithContext(ctx, "GET", fileURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrNetworkFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return rejection(resp)
	}

	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dest, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return fmt.Errorf("failed to write %s: %w", dest, err)
	}
	return nil
}
