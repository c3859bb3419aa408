package notify

import (
	"encoding/json"
	"log"
	"sync"
)

// subscriber identifies one connected viewer: a customer or a
// technician, by id.
type subscriber struct {
	role string
	id   uint
}

// Hub is the registry of connected listeners, keyed by subscriber, with
// direct addressed delivery. Delivery is best-effort: a missing or slow
// listener simply misses the message and resyncs via polling.
type Hub struct {
	clients map[subscriber]*Client

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[subscriber]*Client),
	}
}

// Run starts the hub's main loop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			key := client.key
			// A connection re-subscribing under a new identity gives up
			// its old registry entry.
			for k, c := range h.clients {
				if c == client && k != key {
					delete(h.clients, k)
				}
			}
			// A re-subscribing viewer replaces its old connection.
			if old, ok := h.clients[key]; ok && old != client {
				close(old.send)
			}
			h.clients[key] = client
			h.mu.Unlock()
			log.Printf("listener subscribed: %s %d", key.role, key.id)

		case client := <-h.unregister:
			h.mu.Lock()
			if cur, ok := h.clients[client.key]; ok && cur == client {
				delete(h.clients, client.key)
				close(client.send)
				log.Printf("listener gone: %s %d", client.key.role, client.key.id)
			}
			h.mu.Unlock()
		}
	}
}

// SendToCustomer pushes a message to the customer-subscriber with the
// given id, if connected.
func (h *Hub) SendToCustomer(id uint, message any) bool {
	return h.send(subscriber{role: RoleCustomer, id: id}, message)
}

// SendToTechnician pushes a message to the technician-subscriber with
// the given id, if connected.
func (h *Hub) SendToTechnician(id uint, message any) bool {
	return h.send(subscriber{role: RoleTechnician, id: id}, message)
}

// SendToTechnicians addresses each listed technician in turn.
func (h *Hub) SendToTechnicians(ids []uint, message any) {
	for _, id := range ids {
		h.SendToTechnician(id, message)
	}
}

func (h *Hub) send(key subscriber, message any) bool {
	h.mu.RLock()
	client, ok := h.clients[key]
	h.mu.RUnlock()

	if !ok {
		return false
	}

	jsonMsg, err := json.Marshal(message)
	if err != nil {
		log.Printf("notify marshal error: %v", err)
		return false
	}

	select {
	case client.send <- jsonMsg:
		return true
	default:
		// buffer full or client dead: drop, polling will resync
		return false
	}
}
