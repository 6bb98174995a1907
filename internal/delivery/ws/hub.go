package ws

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"github.com/mmuslimabdulj/city-pulse/internal/domain"
)

// delivery is one message addressed to every page of a session
type delivery struct {
	sessionID string
	msg       domain.Message
	data      []byte
}

// Hub routes lifecycle messages to the WebSocket clients of each visitor
// session. Notices sent while a session has no open page are kept and
// replayed when the next page connects.
type Hub struct {
	mu         sync.RWMutex
	clients    map[string]map[*Client]struct{} // sessionID -> clients
	pending    map[string]*RingBuffer[[]byte]  // sessionID -> undelivered notices
	maxPending int

	register   chan *Client
	unregister chan *Client
	deliver    chan delivery
	quit       chan struct{}
	done       chan struct{}
	stopOnce   sync.Once

	logger *zap.Logger
}

// NewHub creates a Hub; call Run to start it
func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		clients:    make(map[string]map[*Client]struct{}),
		pending:    make(map[string]*RingBuffer[[]byte]),
		maxPending: domain.MaxNoticeHistory,
		register:   make(chan *Client),
		unregister: make(chan *Client),
		deliver:    make(chan delivery, 256),
		quit:       make(chan struct{}),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run starts the hub's main event loop and returns after Stop
func (h *Hub) Run() {
	defer close(h.done)

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			set, ok := h.clients[client.SessionID]
			if !ok {
				set = make(map[*Client]struct{})
				h.clients[client.SessionID] = set
			}
			set[client] = struct{}{}

			// Replay notices that arrived while no page was open
			if buf, ok := h.pending[client.SessionID]; ok {
				for _, data := range buf.Drain() {
					select {
					case client.send <- data:
					default:
					}
				}
				delete(h.pending, client.SessionID)
			}
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if set, ok := h.clients[client.SessionID]; ok {
				// Check if client exists - prevent double unregister
				if _, ok := set[client]; ok {
					delete(set, client)
					close(client.send)
				}
				if len(set) == 0 {
					delete(h.clients, client.SessionID)
				}
			}
			h.mu.Unlock()

		case d := <-h.deliver:
			h.mu.Lock()
			set := h.clients[d.sessionID]
			if len(set) == 0 {
				if d.msg.Type == domain.MessageTypeNotice {
					buf, ok := h.pending[d.sessionID]
					if !ok {
						buf = NewRingBuffer[[]byte](h.maxPending)
						h.pending[d.sessionID] = buf
					}
					buf.Add(d.data)
				}
				h.mu.Unlock()
				continue
			}
			for client := range set {
				select {
				case client.send <- d.data:
				default:
					// Client buffer full, close connection and remove client
					close(client.send)
					delete(set, client)
				}
			}
			if len(set) == 0 {
				delete(h.clients, d.sessionID)
			}
			h.mu.Unlock()

		case <-h.quit:
			h.mu.Lock()
			for id, set := range h.clients {
				for client := range set {
					close(client.send)
				}
				delete(h.clients, id)
			}
			h.mu.Unlock()
			return
		}
	}
}

// Stop ends Run and closes every client send queue
func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.quit) })
	<-h.done
}

// Register adds a client to the hub
func (h *Hub) Register(c *Client) {
	select {
	case h.register <- c:
	case <-h.quit:
	}
}

// Unregister removes a client from the hub
func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.quit:
	}
}

// Notify queues msg for every page of sessionID
func (h *Hub) Notify(sessionID string, msg domain.Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("encode notice", zap.Error(err))
		return
	}
	select {
	case h.deliver <- delivery{sessionID: sessionID, msg: msg, data: data}:
	case <-h.quit:
	}
}

// ClientCount returns the number of open pages for sessionID
func (h *Hub) ClientCount(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[sessionID])
}

// PendingCount returns the number of notices waiting for sessionID
func (h *Hub) PendingCount(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if buf, ok := h.pending[sessionID]; ok {
		return buf.Len()
	}
	return 0
}

// Forget drops undelivered notices of a session that no longer exists
func (h *Hub) Forget(sessionID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.pending, sessionID)
}
