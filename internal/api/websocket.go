package api

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/amterp/foxhole/internal/cards"
	"github.com/amterp/foxhole/internal/model"
	"github.com/amterp/foxhole/internal/service"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Message types sent to WebSocket clients.
const (
	MessageConnected = "connected"
	MessageSnapshot  = "snapshot"
	MessagePrefs     = "prefs"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for local development
	},
}

// SnapshotSource provides the snapshot sent to newly connected clients.
type SnapshotSource interface {
	Snapshot() (model.Collection, string)
}

// WebSocketHub manages WebSocket connections and broadcasts snapshot and
// preference changes to every connected client.
type WebSocketHub struct {
	source  SnapshotSource
	logger  *zap.Logger
	mu      sync.RWMutex
	clients map[*WebSocketClient]bool
}

// WebSocketClient represents a connected WebSocket client.
type WebSocketClient struct {
	hub  *WebSocketHub
	conn *websocket.Conn
	send chan []byte
}

// WebSocketMessage is the JSON message sent to clients.
type WebSocketMessage struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// SnapshotMessage is the data of a "snapshot" message. Action is the wire
// form of the action that produced the snapshot, absent after a reload.
type SnapshotMessage struct {
	Revision   string           `json:"revision"`
	Collection model.Collection `json:"collection"`
	Action     json.RawMessage  `json:"action,omitempty"`
}

// NewWebSocketHub creates a new WebSocket hub.
func NewWebSocketHub(source SnapshotSource, logger *zap.Logger) *WebSocketHub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WebSocketHub{
		source:  source,
		logger:  logger,
		clients: make(map[*WebSocketClient]bool),
	}
}

// OnUpdate implements service.Subscriber.
func (h *WebSocketHub) OnUpdate(update service.Update) {
	msg := SnapshotMessage{Revision: update.Revision, Collection: update.Collection.Normalize()}
	if update.Action != nil {
		raw, err := cards.EncodeAction(update.Action)
		if err != nil {
			h.logger.Warn("failed to encode action", zap.Error(err))
		} else {
			msg.Action = raw
		}
	}
	h.send(MessageSnapshot, msg)
}

// OnPrefs implements PrefsListener.
func (h *WebSocketHub) OnPrefs(prefs service.Prefs) {
	h.send(MessagePrefs, prefs)
}

func (h *WebSocketHub) send(msgType string, data any) {
	encoded, err := json.Marshal(WebSocketMessage{Type: msgType, Data: data})
	if err != nil {
		h.logger.Warn("failed to marshal websocket message", zap.String("type", msgType), zap.Error(err))
		return
	}
	h.broadcast(encoded)
}

// broadcast sends a message to all connected clients.
func (h *WebSocketHub) broadcast(data []byte) {
	h.mu.RLock()
	clients := make([]*WebSocketClient, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	h.mu.RUnlock()

	for _, client := range clients {
		h.trySend(client, data)
	}
}

// trySend attempts to send data to a client, handling the case where
// the client's channel was closed between snapshot and send.
func (h *WebSocketHub) trySend(client *WebSocketClient, data []byte) {
	defer func() {
		if r := recover(); r != nil {
			// Channel was closed by removeClient - client already cleaned up
		}
	}()

	select {
	case client.send <- data:
	default:
		// Client buffer full, close it
		h.removeClient(client)
	}
}

func (h *WebSocketHub) addClient(client *WebSocketClient) {
	h.mu.Lock()
	h.clients[client] = true
	h.mu.Unlock()
}

func (h *WebSocketHub) removeClient(client *WebSocketClient) {
	h.mu.Lock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
	}
	h.mu.Unlock()
}

// ServeWS handles WebSocket connection requests.
func (h *WebSocketHub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	client := &WebSocketClient{
		hub:  h,
		conn: conn,
		send: make(chan []byte, 256),
	}

	// Queue the greeting and current snapshot before the client becomes
	// visible to broadcast, so nothing can arrive ahead of them.
	client.send <- mustMarshal(WebSocketMessage{
		Type: MessageConnected,
		Data: map[string]any{"message": "Live updates enabled"},
	})
	if h.source != nil {
		c, rev := h.source.Snapshot()
		client.send <- mustMarshal(WebSocketMessage{
			Type: MessageSnapshot,
			Data: SnapshotMessage{Revision: rev, Collection: c.Normalize()},
		})
	}

	h.addClient(client)

	// Start read/write goroutines
	go client.writePump()
	go client.readPump()
}

// readPump reads messages from the WebSocket connection.
// We don't expect client messages, but we need to read to detect disconnects.
func (c *WebSocketClient) readPump() {
	defer func() {
		// Only call removeClient here - closing send channel signals writePump to exit
		// writePump is responsible for closing the connection
		c.hub.removeClient(c)
	}()

	c.conn.SetReadLimit(512) // Small limit since we don't expect large messages
	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, _, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.Debug("websocket read error", zap.Error(err))
			}
			break
		}
	}
}

// writePump writes messages to the WebSocket connection.
func (c *WebSocketClient) writePump() {
	ticker := time.NewTicker(30 * time.Second) // Ping interval
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				// Hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			// Each message is its own frame so clients always receive valid JSON
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// CloseAll disconnects every client.
func (h *WebSocketHub) CloseAll() {
	h.mu.RLock()
	clients := make([]*WebSocketClient, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	h.mu.RUnlock()

	for _, client := range clients {
		h.removeClient(client)
	}
}

// ClientCount returns the number of connected clients.
func (h *WebSocketHub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func mustMarshal(v any) []byte {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return data
}
