package server

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ayusman/signtutor/internal/pose"
	"github.com/ayusman/signtutor/internal/session"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

// ScoresHandler streams practice scores to WebSocket clients. It implements
// session.Presenter, so every evaluated frame is pushed to all connected
// clients as it happens rather than on a polling timer.
type ScoresHandler struct {
	clients map[*websocket.Conn]bool
	mu      sync.RWMutex
}

// NewScoresHandler creates a new ScoresHandler.
func NewScoresHandler() *ScoresHandler {
	return &ScoresHandler{
		clients: make(map[*websocket.Conn]bool),
	}
}

// ServeHTTP handles WebSocket upgrade requests.
func (h *ScoresHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, conn)
		h.mu.Unlock()
	}()

	// Keep connection alive by reading messages
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

// Present broadcasts a score sample to all connected clients.
func (h *ScoresHandler) Present(sample pose.Sample) {
	msg, _ := json.Marshal(map[string]any{
		"score":     sample.Score,
		"trend":     sample.Trend,
		"timestamp": sample.Timestamp.UnixMilli(),
	})
	h.send(msg)
}

// PresentFailure broadcasts a failure state to all connected clients.
func (h *ScoresHandler) PresentFailure(failure session.Failure) {
	msg, _ := json.Marshal(map[string]any{
		"failure":   string(failure),
		"timestamp": time.Now().UnixMilli(),
	})
	h.send(msg)
}

// send writes msg to every client under the write lock. Present and
// PresentFailure arrive from different goroutines and a connection
// tolerates only one writer at a time.
func (h *ScoresHandler) send(msg []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		conn.WriteMessage(websocket.TextMessage, msg)
	}
}
