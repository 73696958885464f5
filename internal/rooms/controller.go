package rooms

import (
	"context"
	"fmt"

	"github.com/alomac6/mavpulse/internal/api"
	"github.com/alomac6/mavpulse/internal/audit"
	"github.com/alomac6/mavpulse/internal/crypto"
	apperrors "github.com/alomac6/mavpulse/internal/errors"
	logger "github.com/alomac6/mavpulse/internal/logging"
	"github.com/alomac6/mavpulse/internal/models"
	"github.com/alomac6/mavpulse/internal/state"
)

// Controller orchestrates room operations: listing, creation, and the
// accept/deny flow for join requests. It holds cleartext room keys only for
// the duration of a single operation and zeroes them before returning.
type Controller struct {
	api    *api.Client
	crypto *crypto.Manager
	rooms  *state.RoomList
	log    logger.Logger
}

// NewController wires a Controller from its collaborators.
func NewController(client *api.Client, cm *crypto.Manager, rooms *state.RoomList, log logger.Logger) *Controller {
	return &Controller{
		api:    client,
		crypto: cm,
		rooms:  rooms,
		log:    log,
	}
}

// Rooms exposes the local room list.
func (c *Controller) Rooms() *state.RoomList {
	return c.rooms
}

// FetchRooms loads the rooms of a course into local state.
func (c *Controller) FetchRooms(ctx context.Context, course string) ([]models.Room, error) {
	rooms, err := c.api.Rooms(ctx, course)
	if err != nil {
		return nil, err
	}
	c.rooms.Replace(rooms)
	return rooms, nil
}

// CreateRoom creates a study room for a course. The flow: get or create the
// creator's key pair, generate a fresh room key, wrap it under the creator's
// public key, and submit room plus owner membership in one request. The
// cleartext key is zeroed as soon as the wrapped form exists and is never
// logged or persisted. On failure nothing is merged into local state.
func (c *Controller) CreateRoom(ctx context.Context, courseID, creatorID, roomName, creatorUsername string) (*models.Room, error) {
	if roomName == "" {
		return nil, fmt.Errorf("%w: room name", apperrors.ErrEmptyField)
	}

	alias := crypto.UserAlias(creatorID)
	handle, err := c.crypto.GetOrCreateKeyPair(alias)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare key pair for room creation: %w", err)
	}

	roomKey, err := c.crypto.GenerateRoomKey()
	if err != nil {
		return nil, err
	}

	wrapped, err := c.crypto.Wrap(roomKey, handle.PublicKey)
	crypto.Zero(roomKey)
	if err != nil {
		return nil, err
	}

	resp, err := c.api.CreateRoom(ctx, api.CreateRoomRequest{
		CourseID:   courseID,
		CreatorID:  creatorID,
		Name:       roomName,
		Role:       models.RoleOwner,
		WrappedKey: crypto.EncodeWrappedKey(wrapped),
	})
	if err != nil {
		return nil, err
	}

	room := models.Room{
		ID:      resp.ID,
		Name:    resp.RoomName,
		Members: resp.Size,
		Owner:   creatorUsername,
	}
	c.rooms.Merge(room)

	c.log.Debugf("created room %s for course %s", room.ID, courseID)
	audit.Log(audit.Entry{
		UserID:    creatorID,
		Operation: "room.create",
		RoomID:    room.ID,
		Course:    courseID,
		Outcome:   "ok",
	})

	return &room, nil
}

// AcceptJoinRequest grants a requester access to a room. The owner's own
// wrapped key is fetched from their membership record, unwrapped with the
// owner's private key, re-wrapped under the requester's public key, and
// submitted as a new membership row. Only after that row exists is the
// request marked accepted: a failure at any step leaves no membership row
// and the request still pending.
func (c *Controller) AcceptJoinRequest(ctx context.Context, request models.JoinRequest, ownerID string) error {
	if !request.Pending() {
		return fmt.Errorf("%w: %s is %s", apperrors.ErrRequestNotPending, request.ID, request.Status)
	}

	membership, err := c.api.Membership(ctx, request.RoomID, ownerID)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrMembershipNotFound, err)
	}

	wrappedForOwner, err := crypto.DecodeWrappedKey(membership.WrappedKey)
	if err != nil {
		return fmt.Errorf("stored membership key is not valid base64: %w", err)
	}

	roomKey, err := c.crypto.Unwrap(crypto.UserAlias(ownerID), wrappedForOwner)
	if err != nil {
		return err
	}
	defer crypto.Zero(roomKey)

	requesterKey, err := crypto.DecodePublicKey(request.RequesterPublicKey)
	if err != nil {
		return err
	}

	wrappedForRequester, err := c.crypto.Wrap(roomKey, requesterKey)
	if err != nil {
		return err
	}

	// Membership first. If marking the request accepted fails afterwards the
	// requester already holds a usable key and a retry of the status update
	// is harmless; the reverse order could accept a request without ever
	// delivering a key.
	if err := c.api.AddMember(ctx, api.AddMemberRequest{
		RoomID:     request.RoomID,
		UserID:     request.RequesterID,
		Role:       models.RoleMember,
		WrappedKey: crypto.EncodeWrappedKey(wrappedForRequester),
	}); err != nil {
		return fmt.Errorf("failed to add member to room: %w", err)
	}

	if err := c.api.SetJoinRequestStatus(ctx, request.ID, models.StatusAccepted); err != nil {
		return fmt.Errorf("member added but failed to mark request accepted: %w", err)
	}

	c.log.Debugf("accepted join request %s for room %s", request.ID, request.RoomID)
	audit.Log(audit.Entry{
		UserID:    ownerID,
		Operation: "request.accept",
		RoomID:    request.RoomID,
		RequestID: request.ID,
		TargetID:  request.RequesterID,
		Outcome:   "ok",
	})

	return nil
}

// DenyJoinRequest transitions a request to denied.
func (c *Controller) DenyJoinRequest(ctx context.Context, request models.JoinRequest, ownerID string) error {
	if !request.Pending() {
		return fmt.Errorf("%w: %s is %s", apperrors.ErrRequestNotPending, request.ID, request.Status)
	}

	if err := c.api.SetJoinRequestStatus(ctx, request.ID, models.StatusDenied); err != nil {
		return err
	}

	audit.Log(audit.Entry{
		UserID:    ownerID,
		Operation: "request.deny",
		RoomID:    request.RoomID,
		RequestID: request.ID,
		Outcome:   "ok",
	})
	return nil
}
