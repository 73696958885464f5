package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/gorilla/websocket"

	apperrors "github.com/alomac6/mavpulse/internal/errors"
	logger "github.com/alomac6/mavpulse/internal/logging"
	"github.com/alomac6/mavpulse/internal/models"
)

// SnapshotFunc returns the join requests already pending at subscribe time.
type SnapshotFunc func(ctx context.Context, ownerID string) ([]models.JoinRequest, error)

// event is one change-feed message. The feed only carries inserts into the
// join_requests table, filtered server-side on room_owner_id and status.
type event struct {
	Type   string             `json:"type"`
	Record models.JoinRequest `json:"record"`
}

// Listener delivers a room owner's pending join requests: an initial
// snapshot followed by near-real-time insert events. Delivery from the feed
// is at-least-once; the listener deduplicates by request id so a redelivered
// insert never produces a duplicate entry downstream.
type Listener struct {
	feedURL  string
	ownerID  string
	snapshot SnapshotFunc
	log      logger.Logger

	seen map[string]bool
	out  chan models.JoinRequest
}

// NewListener returns a Listener for ownerID. feedURL is the websocket
// endpoint root (ws:// or wss://).
func NewListener(feedURL, ownerID string, snapshot SnapshotFunc, log logger.Logger) *Listener {
	return &Listener{
		feedURL:  feedURL,
		ownerID:  ownerID,
		snapshot: snapshot,
		log:      log,
		seen:     make(map[string]bool),
		out:      make(chan models.JoinRequest, 16),
	}
}

// Requests is the ordered stream of pending join requests.
func (l *Listener) Requests() <-chan models.JoinRequest {
	return l.out
}

// Run fetches the initial snapshot, then consumes insert events until ctx is
// done. Connection drops are retried with backoff; Run only returns an error
// when the initial snapshot fails.
func (l *Listener) Run(ctx context.Context) error {
	defer close(l.out)

	initial, err := l.snapshot(ctx, l.ownerID)
	if err != nil {
		return fmt.Errorf("failed to fetch pending join requests: %w", err)
	}
	for _, req := range initial {
		l.emit(ctx, req)
	}

	backoff := time.Second
	for {
		if err := l.consume(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			l.log.Warnf("join-request feed disconnected: %v", err)
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(backoff):
		}
		if backoff < 30*time.Second {
			backoff *= 2
		}
	}
}

// consume dials the feed and reads events until the connection breaks or ctx
// is done.
func (l *Listener) consume(ctx context.Context) error {
	endpoint := l.feedURL + "/rooms/requests/feed/" + url.PathEscape(l.ownerID)

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, endpoint, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrNetworkFailure, err)
	}
	defer conn.Close()

	// Unblock ReadMessage when the context is cancelled.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	l.log.Debugf("subscribed to join-request feed for owner %s", l.ownerID)

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			return err
		}

		var ev event
		if err := json.Unmarshal(payload, &ev); err != nil {
			l.log.Warnf("dropping malformed feed message: %v", err)
			continue
		}
		if ev.Type != "" && ev.Type != "insert" {
			continue
		}
		l.emit(ctx, ev.Record)
	}
}

// emit forwards a request downstream unless it was already seen or is no
// longer pending.
func (l *Listener) emit(ctx context.Context, req models.JoinRequest) {
	if req.ID == "" || l.seen[req.ID] {
		return
	}
	if req.Status != "" && !req.Pending() {
		return
	}
	l.seen[req.ID] = true

	select {
	case l.out <- req:
	case <-ctx.Done():
	}
}
