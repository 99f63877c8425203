// Package stream pushes refreshed timeline entries to WebSocket clients.
package stream

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"diskinfo/pkg/log"
)

const (
	pingInterval     = 20 * time.Second
	pongWait         = 60 * time.Second
	writeWait        = 3 * time.Second
	broadcastBacklog = 64
)

// Hub fans messages out to every connected client. All client bookkeeping
// happens on the Run goroutine.
type Hub struct {
	clients    map[*websocket.Conn]struct{}
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	broadcast  chan []byte
	count      chan chan int
	upgrader   websocket.Upgrader
}

// NewHub returns a hub; call Run in a goroutine to start it.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*websocket.Conn]struct{}),
		register:   make(chan *websocket.Conn, 16),
		unregister: make(chan *websocket.Conn, 16),
		broadcast:  make(chan []byte, broadcastBacklog),
		count:      make(chan chan int),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(*http.Request) bool {
				return true
			},
		},
	}
}

// Run serves registrations, broadcasts and keepalives until ctx is done,
// then closes every client.
func (h *Hub) Run(ctx context.Context) {
	ping := time.NewTicker(pingInterval)
	defer ping.Stop()

	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				_ = c.Close()
			}
			return

		case c := <-h.register:
			h.clients[c] = struct{}{}
			log.Debug().Str("remote", c.RemoteAddr().String()).Int("clients", len(h.clients)).Msg("Stream client connected")

		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				_ = c.Close()
				log.Debug().Str("remote", c.RemoteAddr().String()).Int("clients", len(h.clients)).Msg("Stream client disconnected")
			}

		case msg := <-h.broadcast:
			h.writeAll(websocket.TextMessage, msg)

		case <-ping.C:
			h.writeAll(websocket.PingMessage, nil)

		case reply := <-h.count:
			reply <- len(h.clients)
		}
	}
}

func (h *Hub) writeAll(messageType int, payload []byte) {
	for c := range h.clients {
		_ = c.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.WriteMessage(messageType, payload); err != nil {
			log.Debug().Err(err).Str("remote", c.RemoteAddr().String()).Msg("Dropping stream client")
			delete(h.clients, c)
			_ = c.Close()
		}
	}
}

// Handler upgrades requests to WebSocket connections registered with the hub.
func (h *Hub) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := h.upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Warn().Err(err).Msg("WebSocket upgrade failed")
			return
		}
		h.register <- conn

		go func() {
			defer func() { h.unregister <- conn }()
			_ = conn.SetReadDeadline(time.Now().Add(pongWait))
			conn.SetPongHandler(func(string) error {
				return conn.SetReadDeadline(time.Now().Add(pongWait))
			})

			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()
	})
}

// BroadcastJSON queues v for every client. When the backlog is full the
// message is dropped rather than blocking the caller.
func (h *Hub) BroadcastJSON(v any) {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("Failed to encode stream message")
		return
	}

	select {
	case h.broadcast <- b:
	default:
		log.Warn().Msg("Stream backlog full, dropping message")
	}
}

// Clients returns the number of connected clients. It blocks until Run
// answers, so it must not be called after Run has returned.
func (h *Hub) Clients() int {
	reply := make(chan int, 1)
	h.count <- reply
	return <-reply
}
