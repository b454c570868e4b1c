// Package realtime fans collection snapshots out to connected websocket
// clients. Publishing is fire-and-forget: it never blocks the mutating
// request and a client that cannot keep up is dropped.
package realtime

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

type frame struct {
	Channel string `json:"channel"`
	Payload any    `json:"payload"`
}

type source struct {
	channel  string
	snapshot func() any
}

type Hub struct {
	logger   zerolog.Logger
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*client]struct{}
	sources []source
}

func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The board is same-origin only; the shell is served by this
			// process.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		clients: map[*client]struct{}{},
	}
}

// AddSource registers a snapshot source replayed to every new connection,
// one frame per source, before any live frames.
func (h *Hub) AddSource(channel string, snapshot func() any) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sources = append(h.sources, source{channel: channel, snapshot: snapshot})
}

// Publish sends the payload on the named channel to every connected client.
func (h *Hub) Publish(channel string, payload any) {
	b, err := json.Marshal(frame{Channel: channel, Payload: payload})
	if err != nil {
		h.logger.Error().Err(err).Str("channel", channel).Msg("marshal frame")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		if !c.enqueue(b) {
			h.logger.Warn().Str("channel", channel).Msg("dropping slow subscriber")
			h.removeLocked(c)
		}
	}
}

// ServeHTTP upgrades GET /ws connections and replays the current snapshot
// of every registered source.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn().Err(err).Msg("websocket upgrade")
		return
	}

	c := newClient(conn)

	h.mu.Lock()
	for _, src := range h.sources {
		b, err := json.Marshal(frame{Channel: src.channel, Payload: src.snapshot()})
		if err != nil {
			h.logger.Error().Err(err).Str("channel", src.channel).Msg("marshal snapshot")
			continue
		}
		c.enqueue(b)
	}
	h.clients[c] = struct{}{}
	h.mu.Unlock()

	go c.writePump()
	go h.readPump(c)
}

// readPump drains inbound frames; its only job is to notice the close.
func (h *Hub) readPump(c *client) {
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			break
		}
	}
	h.mu.Lock()
	h.removeLocked(c)
	h.mu.Unlock()
}

func (h *Hub) removeLocked(c *client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	c.stop()
}

// ClientCount reports the number of connected subscribers.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}
