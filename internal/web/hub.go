package web

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/krisvanner/doorscope/internal/log"
)

// hub maintains the set of connected feed clients and broadcasts frames to
// them. A client that cannot keep up is dropped rather than allowed to stall
// the feed.
type hub struct {
	broadcast  chan []byte
	register   chan *client
	unregister chan *client

	mu      sync.RWMutex
	clients map[*client]bool
}

// client is one websocket subscriber. send is closed by the hub when the
// client is dropped.
type client struct {
	id   string
	send chan []byte
}

func newClient() *client {
	return &client{
		id:   uuid.NewString(),
		send: make(chan []byte, 8),
	}
}

func newHub() *hub {
	return &hub{
		broadcast:  make(chan []byte, 16),
		register:   make(chan *client),
		unregister: make(chan *client),
		clients:    make(map[*client]bool),
	}
}

// run is the hub's main loop; call it in a goroutine. It returns when ctx is
// cancelled, closing every client's send channel.
func (h *hub) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for c := range h.clients {
				close(c.send)
				delete(h.clients, c)
			}
			h.mu.Unlock()
			return

		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = true
			count := len(h.clients)
			h.mu.Unlock()
			log.Info("feed client connected", "id", c.id, "total", count)

		case c := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
			count := len(h.clients)
			h.mu.Unlock()
			log.Info("feed client disconnected", "id", c.id, "remaining", count)

		case data := <-h.broadcast:
			h.mu.Lock()
			for c := range h.clients {
				select {
				case c.send <- data:
				default:
					// Buffer full: the client is too slow.
					close(c.send)
					delete(h.clients, c)
					log.Warn("dropped slow feed client", "id", c.id)
				}
			}
			h.mu.Unlock()
		}
	}
}

// send queues data for broadcast, dropping it if the hub is saturated.
func (h *hub) send(data []byte) {
	select {
	case h.broadcast <- data:
	default:
	}
}

// clientCount returns the number of connected clients.
func (h *hub) clientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
