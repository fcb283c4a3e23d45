package notify

import (
	"sync"

	"github.com/gorilla/websocket"
)

// Hub pushes booking events to store operators connected over websocket.
// Delivery is best-effort: a dead connection is dropped, never retried.
type Hub struct {
	mu    sync.RWMutex
	conns map[int64]map[*websocket.Conn]struct{} // keyed by store id
}

func NewHub() *Hub {
	return &Hub{conns: make(map[int64]map[*websocket.Conn]struct{})}
}

func (h *Hub) Register(storeID int64, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.conns[storeID] == nil {
		h.conns[storeID] = make(map[*websocket.Conn]struct{})
	}
	h.conns[storeID][conn] = struct{}{}
}

func (h *Hub) Unregister(storeID int64, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if set, ok := h.conns[storeID]; ok {
		_ = conn.Close()
		delete(set, conn)
		if len(set) == 0 {
			delete(h.conns, storeID)
		}
	}
}

// Broadcast sends the payload to every operator watching the store and
// returns how many connections received it.
func (h *Hub) Broadcast(storeID int64, payload any) int {
	h.mu.RLock()
	set := h.conns[storeID]
	targets := make([]*websocket.Conn, 0, len(set))
	for conn := range set {
		targets = append(targets, conn)
	}
	h.mu.RUnlock()

	sent := 0
	for _, conn := range targets {
		if err := conn.WriteJSON(payload); err != nil {
			h.Unregister(storeID, conn)
			continue
		}
		sent++
	}
	return sent
}

func (h *Hub) WatcherCount(storeID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns[storeID])
}

func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for storeID, set := range h.conns {
		for conn := range set {
			_ = conn.Close()
		}
		delete(h.conns, storeID)
	}
}
