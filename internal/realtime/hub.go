package realtime

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"anilink/internal/cache"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 4 * 1024
	sendBuffer = 64
)

// connection is one open socket; a user may hold several (one per tab).
type connection struct {
	userID string
	conn   *websocket.Conn
	send   chan []byte
}

// Hub tracks open sockets per user and pushes cache events to them.
type Hub struct {
	mu          sync.RWMutex
	connections map[string]map[*connection]struct{}
}

func NewHub() *Hub {
	return &Hub{
		connections: make(map[string]map[*connection]struct{}),
	}
}

func (h *Hub) register(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.connections[c.userID]
	if !ok {
		set = make(map[*connection]struct{})
		h.connections[c.userID] = set
	}
	set[c] = struct{}{}
}

func (h *Hub) unregister(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.connections[c.userID]
	if !ok {
		return
	}
	if _, ok := set[c]; !ok {
		return
	}
	delete(set, c)
	close(c.send)
	if len(set) == 0 {
		delete(h.connections, c.userID)
	}
}

// SendToUser queues event on every socket of userID and returns how many
// accepted it. Slow sockets are skipped.
func (h *Hub) SendToUser(userID string, event *Event) int {
	data, err := json.Marshal(event)
	if err != nil {
		return 0
	}
	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered := 0
	for c := range h.connections[userID] {
		select {
		case c.send <- data:
			delivered++
		default:
			log.Printf("realtime_drop user_id=%s type=%s", userID, event.Type)
		}
	}
	return delivered
}

// Publish tells userID's clients which cached collections went stale.
func (h *Hub) Publish(userID string, targets []cache.Target) {
	if len(targets) == 0 {
		return
	}
	h.SendToUser(userID, NewInvalidatedEvent(targets))
}

// SignedOut sends a reset to every socket of userID and closes them.
func (h *Hub) SignedOut(userID string) {
	data, _ := json.Marshal(NewSessionResetEvent())

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.connections[userID] {
		select {
		case c.send <- data:
		default:
		}
		close(c.send)
	}
	delete(h.connections, userID)
}

// Connections returns the number of open sockets for userID.
func (h *Hub) Connections(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connections[userID])
}

// ServeConn runs the socket until it closes.
func (h *Hub) ServeConn(conn *websocket.Conn, userID string) {
	c := &connection{
		userID: userID,
		conn:   conn,
		send:   make(chan []byte, sendBuffer),
	}
	h.register(c)

	go h.writePump(c)
	h.readPump(c) // blocks until disconnect
}

func (h *Hub) readPump(c *connection) {
	defer func() {
		h.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMsgSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("realtime_read_error user_id=%s error=%v", c.userID, err)
			}
			return
		}

		var msg ClientMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			h.reply(c, NewErrorEvent("INVALID_JSON", "Failed to parse message"))
			continue
		}
		switch msg.Type {
		case "ping":
			h.reply(c, NewPongEvent())
		default:
			h.reply(c, NewErrorEvent("UNKNOWN_TYPE", "Unknown message type: "+msg.Type))
		}
	}
}

// reply queues a message for c alone. It holds the read lock so it cannot
// race with SignedOut closing the channel.
func (h *Hub) reply(c *connection, event *Event) {
	data, err := json.Marshal(event)
	if err != nil {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	if _, open := h.connections[c.userID][c]; !open {
		return
	}
	select {
	case c.send <- data:
	default:
	}
}

func (h *Hub) writePump(c *connection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
