package events

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

func startHub(t *testing.T, hub *Hub, userID uuid.UUID) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub.Serve(w, r, userID)
	}))
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestHubDeliversEventsToInvolvedUsers(t *testing.T) {
	hub := NewHub(zap.NewNop(), nil)
	contractor := uuid.New()

	conn, _, err := websocket.DefaultDialer.Dial(startHub(t, hub, contractor), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	var hello map[string]string
	if err := conn.ReadJSON(&hello); err != nil {
		t.Fatalf("read hello: %v", err)
	}
	if hello["type"] != "connected" || hello["user_id"] != contractor.String() {
		t.Fatalf("unexpected hello: %v", hello)
	}
	if n := hub.Connections(contractor); n != 1 {
		t.Fatalf("expected 1 connection, got %d", n)
	}

	// events for other users are not delivered
	if err := hub.Publish(context.Background(), Event{Key: InviteCreated, ContractorID: uuid.New(), HomeownerID: uuid.New()}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	bookingID := uuid.New()
	if err := hub.Publish(context.Background(), Event{Key: InviteAccepted, BookingID: bookingID, ContractorID: contractor}); err != nil {
		t.Fatalf("publish: %v", err)
	}

	var got Event
	if err := conn.ReadJSON(&got); err != nil {
		t.Fatalf("read event: %v", err)
	}
	if got.Key != InviteAccepted || got.BookingID != bookingID {
		t.Fatalf("unexpected event: %+v", got)
	}

	conn.Close()
	deadline := time.Now().Add(2 * time.Second)
	for hub.Connections(contractor) != 0 {
		if time.Now().After(deadline) {
			t.Fatalf("connection was not unregistered")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestHubChecksOrigin(t *testing.T) {
	hub := NewHub(zap.NewNop(), []string{"https://app.example.com"})
	url := startHub(t, hub, uuid.New())

	if _, _, err := websocket.DefaultDialer.Dial(url, http.Header{"Origin": {"https://evil.example.com"}}); err == nil {
		t.Fatalf("expected a foreign origin to be refused")
	}
	conn, _, err := websocket.DefaultDialer.Dial(url, http.Header{"Origin": {"https://app.example.com"}})
	if err != nil {
		t.Fatalf("dial from allowed origin: %v", err)
	}
	conn.Close()
}

func TestHubDropsClientWithFullQueue(t *testing.T) {
	hub := NewHub(zap.NewNop(), nil)
	user := uuid.New()
	slow := newClient(nil)
	hub.register(user, slow)

	for i := 0; i < sendBuffer; i++ {
		if err := hub.Publish(context.Background(), Event{Key: QuoteSubmitted, ContractorID: user}); err != nil {
			t.Fatalf("publish %d: %v", i, err)
		}
	}
	if n := hub.Connections(user); n != 1 {
		t.Fatalf("client should stay while its queue has room, got %d connections", n)
	}

	done := make(chan struct{})
	go func() {
		_ = hub.Publish(context.Background(), Event{Key: QuoteSubmitted, ContractorID: user})
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("publish blocked on a full queue")
	}
	if n := hub.Connections(user); n != 0 {
		t.Fatalf("expected the slow client to be dropped, got %d connections", n)
	}

	queued := 0
	for range slow.send {
		queued++
	}
	if queued != sendBuffer {
		t.Fatalf("expected %d queued events, got %d", sendBuffer, queued)
	}
}
