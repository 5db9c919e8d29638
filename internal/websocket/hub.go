package websocket

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

var Upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Hub tracks live connections per account and fans journal events out to them.
type Hub struct {
	clients    map[string]map[*Client]bool
	mu         sync.RWMutex
	Register   chan *Client
	Unregister chan *Client
	done       chan struct{}
	stopOnce   sync.Once
	log        *slog.Logger
}

func NewHub(log *slog.Logger) *Hub {
	if log == nil {
		log = slog.Default()
	}
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		done:       make(chan struct{}),
		log:        log.With(slog.String("component", "ws_hub")),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.registerClient(client)
		case client := <-h.Unregister:
			h.unregisterClient(client)
		case <-h.done:
			h.closeAll()
			return
		}
	}
}

// Stop shuts the hub down and closes every registered client. Later Add
// calls report false and Remove calls return immediately.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.done) })
}

// Add registers client and reports whether the hub accepted it.
func (h *Hub) Add(client *Client) bool {
	select {
	case h.Register <- client:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) Remove(client *Client) {
	select {
	case h.Unregister <- client:
	case <-h.done:
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for accountID, accountClients := range h.clients {
		for client := range accountClients {
			client.close()
		}
		delete(h.clients, accountID)
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[client.AccountID]; !ok {
		h.clients[client.AccountID] = make(map[*Client]bool)
	}
	h.clients[client.AccountID][client] = true
	h.log.Debug("client registered", slog.String("account_id", client.AccountID))
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if accountClients, ok := h.clients[client.AccountID]; ok {
		if _, ok := accountClients[client]; ok {
			delete(accountClients, client)
			client.close()
			if len(accountClients) == 0 {
				delete(h.clients, client.AccountID)
			}
			h.log.Debug("client unregistered", slog.String("account_id", client.AccountID))
		}
	}
}

func (h *Hub) PublishEvent(accountID string, eventData []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients[accountID] {
		if !client.Send(eventData) {
			h.log.Warn("client send buffer is full, dropping message", slog.String("account_id", accountID))
		}
	}
}

func (h *Hub) ConnectedClients(accountID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[accountID])
}
