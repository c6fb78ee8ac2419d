// Package live pushes presence patches and new background dots to
// connected pages over a websocket.
package live

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/cosmiccodedger/portfolio/internal/dots"
	"github.com/cosmiccodedger/portfolio/internal/metrics"
	"github.com/cosmiccodedger/portfolio/internal/page"
)

// Message types sent to clients.
const (
	TypePresence = "presence"
	TypeDots     = "dots"
)

const (
	sendBuffer = 32
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Message is the outgoing WebSocket message format.
type Message struct {
	Type  string      `json:"type"`
	Patch *page.Patch `json:"patch,omitempty"`
	Dots  []dots.Dot  `json:"dots,omitempty"`
}

type client struct {
	conn *websocket.Conn
	send chan Message
	once sync.Once
}

func (c *client) close() {
	c.once.Do(func() { close(c.send) })
}

// Hub tracks connected clients and fans messages out to them.
type Hub struct {
	initial func() []Message

	mu      sync.Mutex
	clients map[*client]struct{}
	closed  bool
}

// NewHub creates a Hub. initial, if non-nil, returns the messages every new
// client receives on connect.
func NewHub(initial func() []Message) *Hub {
	return &Hub{initial: initial, clients: make(map[*client]struct{})}
}

// RegisterRoutes mounts the websocket endpoint onto the given router.
func (h *Hub) RegisterRoutes(r chi.Router) {
	r.Get(page.LiveURL, h.handleWebSocket)
}

// Len returns the number of connected clients.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// BroadcastPresence sends a presence patch to every client.
func (h *Hub) BroadcastPresence(p page.Patch) {
	h.Broadcast(Message{Type: TypePresence, Patch: &p})
}

// BroadcastDots sends newly spawned dots to every client.
func (h *Hub) BroadcastDots(d []dots.Dot) {
	if len(d) == 0 {
		return
	}
	h.Broadcast(Message{Type: TypeDots, Dots: d})
}

// Broadcast queues msg for every client. Clients that cannot keep up are dropped.
func (h *Hub) Broadcast(msg Message) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			log.Printf("live: dropping slow client %s", c.conn.RemoteAddr())
			h.removeLocked(c)
		}
	}
}

// Close disconnects every client and rejects new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for c := range h.clients {
		h.removeLocked(c)
	}
}

func (h *Hub) add(c *client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.clients[c] = struct{}{}
	metrics.LiveClients.Set(float64(len(h.clients)))
	return true
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(c)
}

func (h *Hub) removeLocked(c *client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	c.close()
	metrics.LiveClients.Set(float64(len(h.clients)))
}

func (h *Hub) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("live: websocket upgrade: %v", err)
		return
	}

	c := &client{conn: conn, send: make(chan Message, sendBuffer)}

	// Initial state goes out before the client joins broadcasts so it
	// never sees a stale patch after a fresh one.
	if h.initial != nil {
		for _, msg := range h.initial() {
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(msg); err != nil {
				log.Printf("live: websocket write: %v", err)
				conn.Close()
				return
			}
		}
	}

	if !h.add(c) {
		conn.Close()
		return
	}

	go h.writePump(c)
	h.readPump(c)
}

// readPump discards client input and detects disconnects.
func (h *Hub) readPump(c *client) {
	defer h.remove(c)
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("live: websocket read: %v", err)
			}
			return
		}
	}
}

func (h *Hub) writePump(c *client) {
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
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(msg); err != nil {
				log.Printf("live: websocket write: %v", err)
				h.remove(c)
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				h.remove(c)
				return
			}
		}
	}
}
