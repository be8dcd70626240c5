// SPDX-License-Identifier: MIT

package report

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	defaultClientBuffer = 64
	writeWait           = 10 * time.Second
)

// Hub broadcasts events to every connected websocket client. It is an
// http.Handler: mount it on a route such as /events.
//
// Each client has a bounded queue; when it is full the event is dropped for
// that client only, so a slow observer never stalls the search.
type Hub struct {
	upgrader websocket.Upgrader
	log      *zap.Logger
	buffer   int

	mu      sync.Mutex
	clients map[*hubClient]struct{}
	closed  bool
	dropped uint64
}

type hubClient struct {
	conn *websocket.Conn
	send chan []byte
}

// HubOption customizes a Hub.
type HubOption func(*Hub)

// WithHubLogger sets the logger (default zap.NewNop()).
func WithHubLogger(l *zap.Logger) HubOption {
	if l == nil {
		panic("report: WithHubLogger(nil)")
	}

	return func(h *Hub) { h.log = l }
}

// WithClientBuffer sets the per-client queue length (>= 1).
func WithClientBuffer(n int) HubOption {
	if n < 1 {
		panic("report: WithClientBuffer: n must be >= 1")
	}

	return func(h *Hub) { h.buffer = n }
}

// NewHub returns an empty Hub accepting any origin.
func NewHub(opts ...HubOption) *Hub {
	var h = &Hub{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
		log:     zap.NewNop(),
		buffer:  defaultClientBuffer,
		clients: make(map[*hubClient]struct{}),
	}
	for _, fn := range opts {
		fn(h)
	}

	return h
}

// ServeHTTP upgrades the request and streams events until the client leaves
// or the hub closes. Client messages are read and discarded.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	var c = &hubClient{conn: conn, send: make(chan []byte, h.buffer)}
	if !h.add(c) {
		_ = conn.Close()
		return
	}
	h.log.Debug("websocket client connected", zap.String("remote", r.RemoteAddr))

	go h.writeLoop(c)

	for {
		if _, _, err = conn.ReadMessage(); err != nil {
			break
		}
	}
	h.remove(c)
	_ = conn.Close()
	h.log.Debug("websocket client disconnected", zap.String("remote", r.RemoteAddr))
}

func (h *Hub) writeLoop(c *hubClient) {
	for msg := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			h.log.Debug("websocket write failed", zap.Error(err))
			_ = c.conn.Close()
			return
		}
	}
}

func (h *Hub) add(c *hubClient) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.clients[c] = struct{}{}

	return true
}

func (h *Hub) remove(c *hubClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

// Send broadcasts ev to all clients without blocking.
func (h *Hub) Send(ctx context.Context, ev Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("report: encode event: %w", err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return ErrClosed
	}
	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			h.dropped++
		}
	}

	return nil
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return len(h.clients)
}

// Dropped returns how many per-client deliveries were dropped on full queues.
func (h *Hub) Dropped() uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.dropped
}

// Close disconnects every client; later Sends return ErrClosed.
func (h *Hub) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil
	}
	h.closed = true
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
		_ = c.conn.Close()
	}

	return nil
}
