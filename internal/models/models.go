package models

import "time"

// Department is a department listing entry.
type Department struct {
	Name string `json:"department"`
}

// Course belongs to a department. BackendName is the identifier the backend
// expects in note and room paths.
type Course struct {
	ID          string `json:"course_id"`
	Number      string `json:"course_code"`
	Name        string `json:"course_name"`
	BackendName string `json:"course_name_backend"`
}

// Note is a course note as shown in course listings.
type Note struct {
	ID       string `json:"note_id"`
	Title    string `json:"title"`
	FilePath string `json:"file_path"`
}

// UserNote is a note owned by the current user, as returned by the profile
// endpoints. It carries more detail than the course listing shape.
type UserNote struct {
	NoteID     string `json:"note_id"`
	Title      string `json:"title"`
	CourseName string `json:"course_name"`
	FilePath   string `json:"file_path"`
	BucketPath string `json:"bucket_path"`
	IsPublic   bool   `json:"is_public"`
	RoomID     string `json:"room_id,omitempty"`
	UserID     string `json:"user_id"`
	CreatedAt  string `json:"created_at"`
}

// Favorite links a user to a favorited note.
type Favorite struct {
	FavoriteID string `json:"favorite_id"`
	NoteID     string `json:"note_id"`
	UserID     string `json:"user_id"`
	Title      string `json:"title,omitempty"`
}

// Room is a study room scoped to a course. Members is the membership count
// the backend reports; Owner is the creator's username for display.
type Room struct {
	ID      string `json:"room_id"`
	Name    string `json:"room_name"`
	Members int    `json:"members"`
	Owner   string `json:"owner"`
}

// Role of a room membership.
const (
	RoleOwner  = "owner"
	RoleMember = "member"
)

// RoomMembership ties a user to a room. WrappedKey is the room's symmetric
// key encrypted under this member's public key, base64-encoded. Exactly one
// membership exists per (room, user) pair, and every member's WrappedKey
// decrypts to the same cleartext room key.
type RoomMembership struct {
	RoomID     string    `json:"room_id"`
	UserID     string    `json:"user_id"`
	Role       string    `json:"role"`
	WrappedKey string    `json:"encrypted_room_key"`
	JoinedAt   time.Time `json:"joined_at"`
}

// Join request status values. A request transitions from pending to exactly
// one terminal state and is never mutated afterwards.
const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusDenied   = "denied"
)

// JoinRequest is a pending request to join a room, delivered to the room
// owner over the change feed. RequesterPublicKey is the requester's public
// key in its base64 PKIX string form.
type JoinRequest struct {
	ID                 string `json:"id"`
	RoomID             string `json:"room_id"`
	RequesterID        string `json:"requester_id"`
	RequesterPublicKey string `json:"requester_public_key"`
	RoomOwnerID        string `json:"room_owner_id"`
	Status             string `json:"status"`
	RequesterUsername  string `json:"requester_username,omitempty"`
	RoomName           string `json:"room_name,omitempty"`
}

// Pending reports whether the request can still be accepted or denied.
func (r JoinRequest) Pending() bool {
	return r.Status == StatusPending
}
