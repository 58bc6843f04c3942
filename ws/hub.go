package ws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/c14220110/poliklinik-triage/internal/triage/events"
)

// ErrBacklog is returned by Publish when the broadcast buffer is full.
var ErrBacklog = errors.New("websocket broadcast backlog full")

// Client is one websocket connection.
type Client struct {
	ID   uuid.UUID
	Conn *websocket.Conn
	Send chan []byte
}

func newClient(conn *websocket.Conn) *Client {
	return &Client{ID: uuid.New(), Conn: conn, Send: make(chan []byte, 256)}
}

// Hub tracks connected clients and broadcasts lifecycle events to them.
type Hub struct {
	mu         sync.RWMutex
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	log        zerolog.Logger
}

func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		log:        log.With().Str("component", "ws").Logger(),
	}
}

// Run serves register, unregister and broadcast requests until ctx is done.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return
		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = true
			h.mu.Unlock()
			h.log.Debug().Str("client_id", c.ID.String()).Msg("client registered")
		case c := <-h.unregister:
			h.drop(c)
		case msg := <-h.broadcast:
			h.mu.RLock()
			var slow []*Client
			for c := range h.clients {
				select {
				case c.Send <- msg:
				default:
					slow = append(slow, c)
				}
			}
			h.mu.RUnlock()
			for _, c := range slow {
				h.log.Warn().Str("client_id", c.ID.String()).Msg("dropping slow client")
				h.drop(c)
			}
		}
	}
}

// Publish queues the event for every connected client without blocking.
func (h *Hub) Publish(_ context.Context, e events.Event) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode event %s: %w", e.ID, err)
	}
	select {
	case h.broadcast <- payload:
		return nil
	default:
		return fmt.Errorf("broadcast %s: %w", e.Type, ErrBacklog)
	}
}

// attach and detach give up once Run has returned.
func (h *Hub) attach(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) detach(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) drop(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.Send)
		h.log.Debug().Str("client_id", c.ID.String()).Msg("client unregistered")
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		delete(h.clients, c)
		close(c.Send)
	}
}
