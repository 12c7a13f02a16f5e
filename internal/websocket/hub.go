package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"the-family-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// TimelineEvent is what the hub pushes to subscribed clients. Clients
// treat any event on a sit-down as a cue to refetch the timeline.
type TimelineEvent struct {
	SitDownId uuid.UUID   `json:"sit_down_id"`
	Kind      string      `json:"kind"`
	Payload   interface{} `json:"payload,omitempty"`
}

type Hub struct {
	// Registered clients map: UserID -> List of Clients (multi-device)
	clients map[uuid.UUID][]*Client

	// Register requests from the clients.
	register chan *Client

	// Unregister requests from clients.
	unregister chan *Client

	// Lock for safe map access
	mu sync.RWMutex

	// Redis connection for cross-instance communication
	rdb *redis.Client

	// Dedicated Logger
	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[uuid.UUID][]*Client),
		rdb:        rdb,
		logger:     log,
	}
}

func (h *Hub) Run() {
	// Start Redis Subscriber if Redis is available
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.UserID] = append(h.clients[client.UserID], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"user_id": client.UserID})

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.UserID]; ok {
				for i, c := range clients {
					if c == client {
						// Remove from slice
						h.clients[client.UserID] = append(clients[:i], clients[i+1:]...)
						close(client.Send)
						break
					}
				}
				if len(h.clients[client.UserID]) == 0 {
					delete(h.clients, client.UserID)
					h.logger.Info("Hub", "Client completely unregistered", map[string]interface{}{"user_id": client.UserID})
				}
			}
			h.mu.Unlock()
		}
	}
}

// BroadcastToSitDown sends a timeline event to every local client
// subscribed to the sit-down, then mirrors it to other instances via
// Redis so their subscribers receive it too.
func (h *Hub) BroadcastToSitDown(event TimelineEvent) {
	data, _ := json.Marshal(map[string]interface{}{
		"type": "timeline_event",
		"data": event,
	})

	h.deliverToSitDown(event.SitDownId, data)

	if h.rdb != nil {
		payload := map[string]interface{}{
			"target_sit_down_id": event.SitDownId.String(),
			"message":            data,
		}
		jsonPayload, _ := json.Marshal(payload)
		h.rdb.Publish(context.Background(), "cluster_events", jsonPayload)
	}
}

// Send delivers a notification to a single user across all their devices.
// Used for commission contact invites.
func (h *Hub) Send(userID uuid.UUID, notification interface{}) {
	data, _ := json.Marshal(map[string]interface{}{
		"type": "notification",
		"data": notification,
	})

	h.mu.RLock()
	clients, localFound := h.clients[userID]
	h.mu.RUnlock()

	if localFound {
		for _, client := range clients {
			select {
			case client.Send <- data:
			default:
				h.logger.Warn("Hub", "Client Send buffer full, dropping message", map[string]interface{}{"user_id": userID})
				h.evict(client)
			}
		}
	}

	if h.rdb != nil {
		payload := map[string]interface{}{
			"target_user_id": userID.String(),
			"message":        data,
		}
		jsonPayload, _ := json.Marshal(payload)
		h.rdb.Publish(context.Background(), "cluster_events", jsonPayload)
	}
}

func (h *Hub) deliverToSitDown(sitDownId uuid.UUID, data []byte) {
	var stalled []*Client
	h.mu.RLock()
	for _, clients := range h.clients {
		for _, client := range clients {
			if !client.IsSubscribed(sitDownId) {
				continue
			}
			select {
			case client.Send <- data:
			default:
				stalled = append(stalled, client)
			}
		}
	}
	h.mu.RUnlock()

	// Evict after releasing the lock; Run needs it to process the
	// unregister.
	for _, client := range stalled {
		h.evict(client)
	}
}

func (h *Hub) deliverToUser(userID uuid.UUID, data []byte) {
	h.mu.RLock()
	clients, ok := h.clients[userID]
	h.mu.RUnlock()

	if !ok {
		return
	}
	for _, client := range clients {
		select {
		case client.Send <- data:
		default:
			h.evict(client)
		}
	}
}

// evict drops a client that cannot keep up. Only Run closes the Send
// channel, so a client evicted here and unregistered again by its own
// readPump is still closed exactly once.
func (h *Hub) evict(client *Client) {
	h.unregister <- client
}

func (h *Hub) subscribeToRedis() {
	// Every instance subscribes to "cluster_events". When a payload
	// arrives, deliver it to whichever local clients match the target.
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, "cluster_events")
	defer pubsub.Close()

	ch := pubsub.Channel()

	for msg := range ch {
		var payload struct {
			TargetUserID    string          `json:"target_user_id"`
			TargetSitDownID string          `json:"target_sit_down_id"`
			Message         json.RawMessage `json:"message"`
		}
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			log.Printf("Redis msg parse error: %v", err)
			continue
		}

		if payload.TargetSitDownID != "" {
			sid, err := uuid.Parse(payload.TargetSitDownID)
			if err != nil {
				continue
			}
			h.deliverToSitDown(sid, payload.Message)
			continue
		}

		uid, err := uuid.Parse(payload.TargetUserID)
		if err != nil {
			continue
		}
		h.deliverToUser(uid, payload.Message)
	}
}
