package ws

import (
	"bingolive/internal/game"
	"bingolive/internal/model"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for dev
	},
}

// Handler upgrades connections and runs one session per member.
type Handler struct {
	registry  *game.Registry
	queueSize int
}

// NewHandler creates a new WebSocket handler.
func NewHandler(registry *game.Registry, queueSize int) *Handler {
	return &Handler{
		registry:  registry,
		queueSize: queueSize,
	}
}

// ServeWS handles GET /v1/ws/rooms/{key}. The room key is fixed for the
// lifetime of the connection.
func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]

	wsConn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}

	connID := uuid.NewString()
	conn := newConn(h.queueSize)

	room, card, marked, err := h.registry.Join(key, connID, conn)
	if err != nil {
		log.Printf("room %s: card issuance failed for %s: %v", key, connID, err)
		h.registry.Leave(key, connID)
		wsConn.Close()
		return
	}

	// The init frame goes out before the write pump starts, so any update
	// already queued by a concurrent Apply is delivered after it.
	wsConn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := wsConn.WriteJSON(model.NewInit(connID, card.Options(), marked)); err != nil {
		log.Printf("room %s: init write failed for %s: %v", key, connID, err)
		h.registry.Leave(key, connID)
		wsConn.Close()
		return
	}

	log.Printf("member %s connected to room %s via WebSocket", connID, key)

	go h.writePump(wsConn, conn)
	go h.readPump(wsConn, conn, room, key, connID)
}

func (h *Handler) readPump(wsConn *websocket.Conn, conn *Conn, room *game.Room, key, connID string) {
	defer func() {
		h.registry.Leave(key, connID)
		conn.close()
		wsConn.Close()
	}()

	wsConn.SetReadLimit(maxMessageSize)
	wsConn.SetReadDeadline(time.Now().Add(pongWait))
	wsConn.SetPongHandler(func(string) error {
		wsConn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := wsConn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			return
		}

		req, err := model.DecodeActionRequest(data)
		if err != nil {
			// Bad frames are dropped; the connection stays open.
			log.Printf("room %s: dropping frame from %s: %v", key, connID, err)
			continue
		}

		if err := room.Apply(connID, req.Action, req.Option); err != nil {
			log.Printf("room %s: apply failed for %s: %v", key, connID, err)
		}
	}
}

func (h *Handler) writePump(wsConn *websocket.Conn, conn *Conn) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		wsConn.Close()
	}()

	for {
		select {
		case message := <-conn.send:
			wsConn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := wsConn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-conn.closed:
			wsConn.SetWriteDeadline(time.Now().Add(writeWait))
			wsConn.WriteMessage(websocket.CloseMessage, []byte{})
			return

		case <-ticker.C:
			wsConn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := wsConn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
