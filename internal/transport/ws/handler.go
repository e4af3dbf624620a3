package ws

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"quizmaster/internal/game"
	"quizmaster/internal/model"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096

	// Room creation waits on the question providers; cap it so a hung
	// provider cannot pin the read loop.
	createTimeout = 15 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for dev
	},
}

// Inbound intent names.
const (
	intentCreateRoom   = "room:create"
	intentJoinRoom     = "room:join"
	intentLeaveRoom    = "room:leave"
	intentStartGame    = "game:start"
	intentSubmitAnswer = "game:answer"
	intentSetReady     = "player:ready"
)

type createRoomPayload struct {
	PlayerName string             `json:"playerName"`
	Settings   model.GameSettings `json:"settings"`
}

type joinRoomPayload struct {
	Code       string `json:"code"`
	PlayerName string `json:"playerName"`
}

type answerPayload struct {
	Answer string `json:"answer"`
}

// Handler upgrades WebSocket connections and dispatches inbound intents to
// the game engine.
type Handler struct {
	hub    *Hub
	engine *game.Engine
}

// NewHandler creates a new WebSocket handler.
func NewHandler(hub *Hub, engine *game.Engine) *Handler {
	return &Handler{
		hub:    hub,
		engine: engine,
	}
}

// ServeWS handles GET /ws. Each socket gets a fresh connection ID that
// serves as the player identity for its lifetime.
func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	wsConn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}

	conn := &Connection{
		ID:   uuid.NewString(),
		Send: make(chan []byte, 256),
	}
	h.hub.add(conn)

	go h.writePump(wsConn, conn)
	go h.readPump(wsConn, conn)
}

func (h *Handler) readPump(wsConn *websocket.Conn, conn *Connection) {
	defer func() {
		h.engine.HandleDisconnect(conn.ID)
		h.hub.remove(conn)
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
			break
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			h.hub.SendTo(conn.ID, game.EventRoomError, "invalid message")
			continue
		}
		h.dispatch(conn, &msg)
	}
}

func (h *Handler) dispatch(conn *Connection, msg *Message) {
	var err error

	switch msg.Type {
	case intentCreateRoom:
		var p createRoomPayload
		if err = json.Unmarshal(msg.Payload, &p); err == nil {
			ctx, cancel := context.WithTimeout(context.Background(), createTimeout)
			err = h.engine.CreateRoom(ctx, conn.ID, p.PlayerName, p.Settings)
			cancel()
		}

	case intentJoinRoom:
		var p joinRoomPayload
		if err = json.Unmarshal(msg.Payload, &p); err == nil {
			err = h.engine.JoinRoom(conn.ID, p.Code, p.PlayerName)
		}

	case intentLeaveRoom:
		h.engine.LeaveRoom(conn.ID)

	case intentStartGame:
		err = h.engine.StartGame(conn.ID)

	case intentSubmitAnswer:
		var p answerPayload
		if err = json.Unmarshal(msg.Payload, &p); err == nil {
			h.engine.SubmitAnswer(conn.ID, p.Answer)
		}

	case intentSetReady:
		h.engine.SetReady(conn.ID)

	default:
		h.hub.SendTo(conn.ID, game.EventRoomError, "unknown intent")
		return
	}

	if err != nil {
		h.hub.SendTo(conn.ID, game.EventRoomError, err.Error())
	}
}

func (h *Handler) writePump(wsConn *websocket.Conn, conn *Connection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		wsConn.Close()
	}()

	for {
		select {
		case message, ok := <-conn.Send:
			wsConn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				wsConn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := wsConn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			wsConn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := wsConn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
