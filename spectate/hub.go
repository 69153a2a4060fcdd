package spectate

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

const writeWait = 2 * time.Second

type subscriber struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (s *subscriber) write(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return s.conn.WriteMessage(websocket.TextMessage, data)
}

// Hub fans snapshots out to every connected spectator. It is safe for
// concurrent use.
type Hub struct {
	logger   *log.Logger
	upgrader websocket.Upgrader

	mu          sync.Mutex
	subscribers map[uint64]*subscriber
	nextID      uint64
	latest      []byte
}

func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.Default()
	}
	return &Hub{
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		subscribers: make(map[uint64]*subscriber),
	}
}

// ServeHTTP upgrades the request to a websocket, sends the latest snapshot
// and keeps the spectator subscribed until the connection drops.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("spectator upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	sub := &subscriber{conn: conn}
	h.mu.Lock()
	h.nextID++
	id := h.nextID
	h.subscribers[id] = sub
	latest := h.latest
	h.mu.Unlock()

	h.logger.Info("spectator joined", "id", id, "remote", r.RemoteAddr)

	if latest != nil {
		if err := sub.write(latest); err != nil {
			h.disconnect(id)
			return
		}
	}

	// Spectators never send anything meaningful; reading only detects the close.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.disconnect(id)
			return
		}
	}
}

// Broadcast sends the snapshot to every spectator, dropping the ones that
// cannot be written to.
func (h *Hub) Broadcast(snap Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	h.mu.Lock()
	h.latest = data
	subs := make(map[uint64]*subscriber, len(h.subscribers))
	for id, sub := range h.subscribers {
		subs[id] = sub
	}
	h.mu.Unlock()

	for id, sub := range subs {
		if err := sub.write(data); err != nil {
			h.logger.Debug("dropping spectator", "id", id, "error", err)
			h.disconnect(id)
		}
	}
	return nil
}

// Subscribers returns the number of connected spectators.
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subscribers)
}

// Close disconnects every spectator.
func (h *Hub) Close() {
	h.mu.Lock()
	subs := h.subscribers
	h.subscribers = make(map[uint64]*subscriber)
	h.mu.Unlock()

	for _, sub := range subs {
		sub.mu.Lock()
		message := websocket.FormatCloseMessage(websocket.CloseGoingAway, "match over")
		sub.conn.WriteControl(websocket.CloseMessage, message, time.Now().Add(writeWait))
		sub.conn.Close()
		sub.mu.Unlock()
	}
}

func (h *Hub) disconnect(id uint64) {
	h.mu.Lock()
	sub, ok := h.subscribers[id]
	delete(h.subscribers, id)
	h.mu.Unlock()

	if ok {
		sub.conn.Close()
		h.logger.Info("spectator left", "id", id)
	}
}
