package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"spa-registry-be/internal/entity"
	"spa-registry-be/internal/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// clusterChannel carries cross-instance pushes: every instance subscribes and
// relays messages for topics it serves locally.
const clusterChannel = "cluster_events"

// Hub fans committed notifications out to subscribed sessions. Clients
// subscribe to topics ("spa:42", "user:7", "role:lsa"); a session may hold
// several, e.g. an association admin joins both its user topic and the role
// room.
type Hub struct {
	// Registered clients map: topic -> list of clients (multi-device)
	clients map[string][]*Client

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
		clients:    make(map[string][]*Client),
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
			for _, topic := range client.Topics {
				h.clients[topic] = append(h.clients[topic], client)
			}
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"topics": client.Topics})

		case client := <-h.unregister:
			h.mu.Lock()
			closed := false
			for _, topic := range client.Topics {
				clients, ok := h.clients[topic]
				if !ok {
					continue
				}
				for i, c := range clients {
					if c == client {
						h.clients[topic] = append(clients[:i], clients[i+1:]...)
						if !closed {
							close(client.Send)
							closed = true
						}
						break
					}
				}
				if len(h.clients[topic]) == 0 {
					delete(h.clients, topic)
				}
			}
			h.mu.Unlock()
			if closed {
				h.logger.Info("Hub", "Client unregistered", map[string]interface{}{"topics": client.Topics})
			}
		}
	}
}

// Publish pushes a notification to every local session on the topic and
// relays it to the other instances over Redis. Implements the consumer's
// NotificationPusher.
func (h *Hub) Publish(topic string, notification entity.Notification) {
	data, _ := json.Marshal(map[string]interface{}{
		"type": "notification",
		"data": notification,
	})

	h.deliverLocal(topic, data)

	if h.rdb != nil {
		payload := map[string]interface{}{
			"target_topic": topic,
			"message":      data,
		}
		jsonPayload, _ := json.Marshal(payload)
		h.rdb.Publish(context.Background(), clusterChannel, jsonPayload)
	}
}

func (h *Hub) deliverLocal(topic string, data []byte) {
	// The read lock is held across the sends: Run's unregister path takes the
	// write lock before it closes a Send channel, so no channel can close
	// mid-loop. Sends are non-blocking, so holding the lock is cheap.
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.clients[topic] {
		select {
		case client.Send <- data:
		default:
			// Slow consumer. Drop the message; the read pump unregisters the
			// client when the connection actually dies.
			h.logger.Warn("Hub", "Client Send buffer full, dropping message", map[string]interface{}{"topic": topic})
		}
	}
}

func (h *Hub) subscribeToRedis() {
	// Every instance subscribes to the cluster channel; a message names its
	// target topic and each instance delivers to whatever local sessions it
	// holds for that topic.
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, clusterChannel)
	defer pubsub.Close()

	ch := pubsub.Channel()

	for msg := range ch {
		var payload struct {
			TargetTopic string          `json:"target_topic"`
			Message     json.RawMessage `json:"message"`
		}
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			log.Printf("Redis msg parse error: %v", err)
			continue
		}

		h.deliverLocal(payload.TargetTopic, payload.Message)
	}
}
