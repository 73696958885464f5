package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	logger "github.com/alomac6/mavpulse/internal/logging"
	"github.com/alomac6/mavpulse/internal/models"
)

// feedServer serves the join-request feed endpoint, sending each payload in
// order and then holding the connection open until the client goes away.
func feedServer(t *testing.T, payloads []string) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{}

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/rooms/requests/feed/") {
			t.Errorf("Unexpected path: %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
			return
		}
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("Failed to upgrade connection: %v", err)
			return
		}
		defer conn.Close()

		for _, payload := range payloads {
			if err := conn.WriteMessage(websocket.TextMessage, []byte(payload)); err != nil {
				return
			}
		}
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
}

func wsURL(server *httptest.Server) string {
	return "ws" + strings.TrimPrefix(server.URL, "http")
}

func staticSnapshot(requests []models.JoinRequest) SnapshotFunc {
	return func(ctx context.Context, ownerID string) ([]models.JoinRequest, error) {
		return requests, nil
	}
}

// collect reads from the listener until n requests arrive or the deadline
// hits.
func collect(t *testing.T, l *Listener, n int) []models.JoinRequest {
	t.Helper()
	var got []models.JoinRequest
	deadline := time.After(5 * time.Second)
	for len(got) < n {
		select {
		case req, ok := <-l.Requests():
			if !ok {
				return got
			}
			got = append(got, req)
		case <-deadline:
			t.Fatalf("Timed out after %d of %d requests", len(got), n)
		}
	}
	return got
}

func TestListener_SnapshotThenEvents(t *testing.T) {
	server := feedServer(t, []string{
		`{"type":"insert","record":{"id":"req-2","room_id":"room-1","requester_id":"u2","status":"pending"}}`,
	})
	defer server.Close()

	snapshot := staticSnapshot([]models.JoinRequest{
		{ID: "req-1", RoomID: "room-1", RequesterID: "u1", Status: models.StatusPending},
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	l := NewListener(wsURL(server), "owner-1", snapshot, logger.Logger{})
	go func() {
		if err := l.Run(ctx); err != nil {
			t.Errorf("Run returned an error: %v", err)
		}
	}()

	got := collect(t, l, 2)
	if got[0].ID != "req-1" {
		t.Errorf("Expected the snapshot request first, got %s", got[0].ID)
	}
	if got[1].ID != "req-2" {
		t.Errorf("Expected the feed insert second, got %s", got[1].ID)
	}
}

func TestListener_DeduplicatesRedeliveries(t *testing.T) {
	server := feedServer(t, []string{
		`{"type":"insert","record":{"id":"req-1","room_id":"room-1","requester_id":"u1","status":"pending"}}`,
		`{"type":"insert","record":{"id":"req-1","room_id":"room-1","requester_id":"u1","status":"pending"}}`,
		`{"type":"insert","record":{"id":"req-2","room_id":"room-1","requester_id":"u2","status":"pending"}}`,
	})
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	l := NewListener(wsURL(server), "owner-1", staticSnapshot(nil), logger.Logger{})
	go func() { _ = l.Run(ctx) }()

	got := collect(t, l, 2)
	if got[0].ID != "req-1" || got[1].ID != "req-2" {
		t.Errorf("Expected req-1 then req-2, got %s then %s", got[0].ID, got[1].ID)
	}

	// No third delivery for the redelivered insert.
	select {
	case req, ok := <-l.Requests():
		if ok {
			t.Errorf("Unexpected extra request: %s", req.ID)
		}
	case <-time.After(200 * time.Millisecond):
	}
}

func TestListener_SkipsSnapshotDuplicates(t *testing.T) {
	// The same request arrives in the snapshot and again as a feed insert.
	server := feedServer(t, []string{
		`{"type":"insert","record":{"id":"req-1","room_id":"room-1","requester_id":"u1","status":"pending"}}`,
	})
	defer server.Close()

	snapshot := staticSnapshot([]models.JoinRequest{
		{ID: "req-1", RoomID: "room-1", RequesterID: "u1", Status: models.StatusPending},
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	l := NewListener(wsURL(server), "owner-1", snapshot, logger.Logger{})
	go func() { _ = l.Run(ctx) }()

	got := collect(t, l, 1)
	if got[0].ID != "req-1" {
		t.Errorf("Expected req-1, got %s", got[0].ID)
	}

	select {
	case req, ok := <-l.Requests():
		if ok {
			t.Errorf("Unexpected duplicate delivery: %s", req.ID)
		}
	case <-time.After(200 * time.Millisecond):
	}
}

func TestListener_DropsSettledRequests(t *testing.T) {
	server := feedServer(t, []string{
		`{"type":"insert","record":{"id":"req-1","room_id":"room-1","requester_id":"u1","status":"accepted"}}`,
		`{"type":"insert","record":{"id":"req-2","room_id":"room-1","requester_id":"u2","status":"pending"}}`,
	})
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	l := NewListener(wsURL(server), "owner-1", staticSnapshot(nil), logger.Logger{})
	go func() { _ = l.Run(ctx) }()

	got := collect(t, l, 1)
	if got[0].ID != "req-2" {
		t.Errorf("Expected only the pending request, got %s", got[0].ID)
	}
}

func TestListener_IgnoresMalformedMessages(t *testing.T) {
	server := feedServer(t, []string{
		`not json at all`,
		`{"type":"insert","record":{"id":"req-1","room_id":"room-1","requester_id":"u1","status":"pending"}}`,
	})
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	l := NewListener(wsURL(server), "owner-1", staticSnapshot(nil), logger.Logger{})
	go func() { _ = l.Run(ctx) }()

	got := collect(t, l, 1)
	if got[0].ID != "req-1" {
		t.Errorf("Expected req-1 after the malformed message, got %s", got[0].ID)
	}
}

func TestListener_SnapshotFailure(t *testing.T) {
	snapshot := func(ctx context.Context, ownerID string) ([]models.JoinRequest, error) {
		return nil, context.DeadlineExceeded
	}

	l := NewListener("ws://127.0.0.1:0", "owner-1", snapshot, logger.Logger{})
	if err := l.Run(context.Background()); err == nil {
		t.Error("Expected Run to fail when the snapshot fails")
	}
}

func TestListener_ClosesOnCancel(t *testing.T) {
	server := feedServer(t, nil)
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())

	l := NewListener(wsURL(server), "owner-1", staticSnapshot(nil), logger.Logger{})
	done := make(chan error, 1)
	go func() { done <- l.Run(ctx) }()

	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Expected a clean shutdown, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancellation")
	}

	// The request channel closes once Run returns.
	select {
	case _, ok := <-l.Requests():
		if ok {
			t.Error("Expected no request after shutdown")
		}
	case <-time.After(time.Second):
		t.Error("Request channel was not closed")
	}
}
