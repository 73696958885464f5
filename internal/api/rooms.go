package api

import (
	"context"
	"net/url"

	"github.com/alomac6/mavpulse/internal/models"
)

type CreateRoomRequest struct {
	CourseID   string `json:"course_id"`
	CreatorID  string `json:"creator_id"`
	Name       string `json:"name"`
	Role       string `json:"role"`
	WrappedKey string `json:"encrypted_room_key"`
}

// CreateRoomResponse is the canonical flat shape of the room-creation
// response. Size is the member count, 1 for a fresh room.
type CreateRoomResponse struct {
	ID        string `json:"id"`
	RoomName  string `json:"room_name"`
	CourseID  string `json:"course_id"`
	CreatorID string `json:"creator_id"`
	CreatedAt string `json:"created_at"`
	Size      int    `json:"size"`
}

type AddMemberRequest struct {
	RoomID     string `json:"room_id"`
	UserID     string `json:"user_id"`
	Role       string `json:"role"`
	WrappedKey string `json:"encrypted_room_key"`
}

type UpdateRequestStatus struct {
	Status string `json:"status"`
}

// Rooms lists the study rooms of a course.
func (c *Client) Rooms(ctx context.Context, course string) ([]models.Room, error) {
	var rooms []models.Room
	if err := c.do(ctx, "GET", "/rooms/"+url.PathEscape(course), nil, &rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}

// CreateRoom creates a room together with the creator's owner membership.
// The wrapped key string is base64 text; the cleartext room key never
// appears in this payload.
func (c *Client) CreateRoom(ctx context.Context, req CreateRoomRequest) (*CreateRoomResponse, error) {
	var resp CreateRoomResponse
	if err := c.do(ctx, "POST", "/rooms/new_room", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Membership fetches one user's membership record for a room, including that
// user's wrapped copy of the room key.
func (c *Client) Membership(ctx context.Context, roomID, userID string) (*models.RoomMembership, error) {
	var membership models.RoomMembership
	path := "/rooms/members/" + url.PathEscape(roomID) + "/" + url.PathEscape(userID)
	if err := c.do(ctx, "GET", path, nil, &membership); err != nil {
		return nil, err
	}
	return &membership, nil
}

// AddMember submits a new membership row carrying the member's wrapped key.
func (c *Client) AddMember(ctx context.Context, req AddMemberRequest) error {
	return c.do(ctx, "POST", "/rooms/members", req, nil)
}

// PendingJoinRequests returns the snapshot of requests pending for a room
// owner at call time.
func (c *Client) PendingJoinRequests(ctx context.Context, ownerID string) ([]models.JoinRequest, error) {
	var requests []models.JoinRequest
	if err := c.do(ctx, "GET", "/rooms/requests/"+url.PathEscape(ownerID), nil, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

// SetJoinRequestStatus transitions a join request to a terminal status.
func (c *Client) SetJoinRequestStatus(ctx context.Context, requestID, status string) error {
	return c.do(ctx, "PATCH", "/rooms/requests/"+url.PathEscape(requestID), UpdateRequestStatus{Status: status}, nil)
}
