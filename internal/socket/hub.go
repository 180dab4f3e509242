// internal/socket/hub.go
package socket

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// MessageType defines the type of WebSocket message
type MessageType string

const (
	// Toast shown by the dashboard
	MessageToast MessageType = "toast"

	// A list changed on the backend; the dashboard refetches it
	MessageListReloaded MessageType = "list_reloaded"

	// System messages
	MessagePing MessageType = "ping"
	MessagePong MessageType = "pong"
)

// Message represents a WebSocket message
type Message struct {
	Type      MessageType            `json:"type"`
	Payload   map[string]interface{} `json:"payload,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

// Client is one dashboard tab. A user may have several.
type Client struct {
	ID       string
	UserID   string
	Conn     *websocket.Conn
	Hub      *Hub
	Send     chan []byte
	lastPing time.Time
}

type directMessage struct {
	userID  string
	message []byte
}

// Hub fans messages out to the connections of each user.
type Hub struct {
	userClients map[string]map[*Client]bool

	register      chan *Client
	unregister    chan *Client
	directMessage chan *directMessage
	done          chan struct{}

	mu sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		userClients:   make(map[string]map[*Client]bool),
		register:      make(chan *Client),
		unregister:    make(chan *Client),
		directMessage: make(chan *directMessage, 256),
		done:          make(chan struct{}),
	}
}

// Run is the hub's main loop. It returns when ctx is done.
func (h *Hub) Run(ctx context.Context) {
	log.Println("[Hub] WebSocket hub started")

	pingTicker := time.NewTicker(30 * time.Second)
	defer pingTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			close(h.done)
			h.closeAll()
			log.Println("[Hub] WebSocket hub stopped")
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case dm := <-h.directMessage:
			h.sendToUser(dm)

		case <-pingTicker.C:
			h.pingClients()
		}
	}
}

// Register adds a connection. It reports false once the hub has stopped.
func (h *Hub) Register(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

// Unregister removes a connection. After the hub stops it returns at once;
// closeAll has already released every client.
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.userClients[client.UserID] == nil {
		h.userClients[client.UserID] = make(map[*Client]bool)
	}
	h.userClients[client.UserID][client] = true

	log.Printf("[Hub] ✅ Client registered: user=%s, id=%s", client.UserID, client.ID)
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.userClients[client.UserID]
	if !ok || !clients[client] {
		return
	}
	delete(clients, client)
	if len(clients) == 0 {
		delete(h.userClients, client.UserID)
	}
	close(client.Send)
	log.Printf("[Hub] ❌ Client disconnected: user=%s, id=%s", client.UserID, client.ID)
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for userID, clients := range h.userClients {
		for c := range clients {
			close(c.Send)
		}
		delete(h.userClients, userID)
	}
}

// deliver queues data on every connection of the user. A full buffer means a
// stalled tab; it is dropped.
func (h *Hub) deliver(clients map[*Client]bool, data []byte) int {
	sent := 0
	for client := range clients {
		select {
		case client.Send <- data:
			sent++
		default:
			go h.Unregister(client)
		}
	}
	return sent
}

func (h *Hub) sendToUser(dm *directMessage) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	clients, ok := h.userClients[dm.userID]
	if !ok {
		return
	}
	h.deliver(clients, dm.message)
}

func (h *Hub) pingClients() {
	h.mu.RLock()
	defer h.mu.RUnlock()

	data, _ := json.Marshal(Message{Type: MessagePing, Timestamp: time.Now()})
	for _, clients := range h.userClients {
		h.deliver(clients, data)
	}
}

// SendToUser pushes a message to every open tab of the user.
func (h *Hub) SendToUser(userID string, msgType MessageType, payload map[string]interface{}) {
	data, err := json.Marshal(Message{Type: msgType, Payload: payload, Timestamp: time.Now()})
	if err != nil {
		log.Printf("[Hub] Error marshaling message: %v", err)
		return
	}

	select {
	case h.directMessage <- &directMessage{userID: userID, message: data}:
	default:
		log.Printf("⚠️ [Hub] queue full, dropping %s for user=%s", msgType, userID)
	}
}

// IsUserOnline checks if a user has at least one open connection
func (h *Hub) IsUserOnline(userID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	_, ok := h.userClients[userID]
	return ok
}

// ConnectedClients returns the number of open connections
func (h *Hub) ConnectedClients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	n := 0
	for _, clients := range h.userClients {
		n += len(clients)
	}
	return n
}
