package websocket

import (
	"testing"
	"time"

	"the-family-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(hub *Hub, userID uuid.UUID, buffer int) *Client {
	return &Client{
		Hub:           hub,
		UserID:        userID,
		Send:          make(chan []byte, buffer),
		subscriptions: make(map[uuid.UUID]struct{}),
	}
}

func registered(t *testing.T, hub *Hub, userID uuid.UUID) {
	t.Helper()
	waitUntil(t, func() bool {
		hub.mu.RLock()
		defer hub.mu.RUnlock()
		return len(hub.clients[userID]) > 0
	})
}

func waitUntil(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatal("condition not met before timeout")
}

func TestSendEvictsStalledClientWithoutPanic(t *testing.T) {
	hub := NewHub(nil, logger.NewNopLogger())
	go hub.Run()

	userID := uuid.New()
	client := newTestClient(hub, userID, 0)
	hub.register <- client
	registered(t, hub, userID)

	// Nothing reads client.Send, so delivery hits the full-buffer path.
	hub.Send(userID, map[string]string{"kind": "ping"})

	waitUntil(t, func() bool {
		hub.mu.RLock()
		defer hub.mu.RUnlock()
		_, ok := hub.clients[userID]
		return !ok
	})

	select {
	case _, ok := <-client.Send:
		assert.False(t, ok, "Send must be closed after eviction")
	default:
		t.Fatal("Send channel left open after eviction")
	}
}

func TestBroadcastSurvivesMultipleStalledClients(t *testing.T) {
	hub := NewHub(nil, logger.NewNopLogger())
	go hub.Run()

	sitDownId := uuid.New()

	stalledA := newTestClient(hub, uuid.New(), 0)
	stalledA.subscribe(sitDownId)
	stalledB := newTestClient(hub, uuid.New(), 0)
	stalledB.subscribe(sitDownId)
	healthy := newTestClient(hub, uuid.New(), 4)
	healthy.subscribe(sitDownId)

	for _, c := range []*Client{stalledA, stalledB, healthy} {
		hub.register <- c
		registered(t, hub, c.UserID)
	}

	done := make(chan struct{})
	go func() {
		hub.BroadcastToSitDown(TimelineEvent{SitDownId: sitDownId, Kind: "message_posted"})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("broadcast blocked on stalled clients")
	}

	for _, c := range []*Client{stalledA, stalledB} {
		userID := c.UserID
		waitUntil(t, func() bool {
			hub.mu.RLock()
			defer hub.mu.RUnlock()
			_, ok := hub.clients[userID]
			return !ok
		})
	}

	select {
	case msg := <-healthy.Send:
		require.NotEmpty(t, msg)
	case <-time.After(time.Second):
		t.Fatal("healthy client never received the broadcast")
	}
}

func TestReadPumpUnregisterAfterEvictionClosesOnce(t *testing.T) {
	hub := NewHub(nil, logger.NewNopLogger())
	go hub.Run()

	userID := uuid.New()
	client := newTestClient(hub, userID, 0)
	hub.register <- client
	registered(t, hub, userID)

	hub.Send(userID, "first")

	waitUntil(t, func() bool {
		hub.mu.RLock()
		defer hub.mu.RUnlock()
		_, ok := hub.clients[userID]
		return !ok
	})

	// The connection's own teardown races the eviction; a second
	// unregister for an already-removed client must be a no-op.
	hub.unregister <- client

	hub.Send(userID, "second")

	hub.mu.RLock()
	_, ok := hub.clients[userID]
	hub.mu.RUnlock()
	assert.False(t, ok)
}
