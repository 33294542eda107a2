// Package live pushes fresh statistics to a user's open browser tabs over websockets.
package live

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Dosada05/bowling-tracker/models"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 16
)

const (
	MessageConnected    = "CONNECTED"
	MessageStatsUpdated = "STATS_UPDATED"
)

type Message struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	userID int
}

type roomMessage struct {
	userID int
	data   []byte
}

// Hub owns one room per user. All room state is touched only by Run.
type Hub struct {
	register   chan *Client
	unregister chan *Client
	broadcast  chan roomMessage
	rooms      map[int]map[*Client]struct{}
	upgrader   websocket.Upgrader
	logger     *slog.Logger
	done       chan struct{}
}

// NewHub creates a hub. checkOrigin may be nil to use the websocket default
// same-origin check.
func NewHub(logger *slog.Logger, checkOrigin func(r *http.Request) bool) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan roomMessage, 64),
		rooms:      make(map[int]map[*Client]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin,
		},
		logger: logger,
		done:   make(chan struct{}),
	}
}

// AllowOrigins builds a CheckOrigin func accepting same-host requests and the
// listed origins. It returns nil when origins is empty.
func AllowOrigins(origins []string) func(r *http.Request) bool {
	if len(origins) == 0 {
		return nil
	}
	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		allowed[strings.TrimRight(o, "/")] = struct{}{}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		if _, ok := allowed[origin]; ok {
			return true
		}
		u, err := url.Parse(origin)
		return err == nil && strings.EqualFold(u.Host, r.Host)
	}
}

// Run processes registrations and broadcasts until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for _, room := range h.rooms {
				for c := range room {
					close(c.send)
				}
			}
			h.rooms = map[int]map[*Client]struct{}{}
			return

		case c := <-h.register:
			room, ok := h.rooms[c.userID]
			if !ok {
				room = make(map[*Client]struct{})
				h.rooms[c.userID] = room
			}
			room[c] = struct{}{}
			h.deliver(c, mustMarshal(Message{Type: MessageConnected}))
			h.logger.Debug("live client registered", slog.Int("user_id", c.userID), slog.Int("room_size", len(room)))

		case c := <-h.unregister:
			h.remove(c)

		case msg := <-h.broadcast:
			for c := range h.rooms[msg.userID] {
				h.deliver(c, msg.data)
			}
		}
	}
}

// NotifyStats queues a stats update for every connection of userID.
func (h *Hub) NotifyStats(userID int, stats models.Stats) {
	data, err := json.Marshal(Message{Type: MessageStatsUpdated, Payload: stats})
	if err != nil {
		h.logger.Error("failed to marshal live stats", slog.Any("error", err))
		return
	}
	select {
	case h.broadcast <- roomMessage{userID: userID, data: data}:
	case <-h.done:
	default:
		h.logger.Warn("live broadcast queue full, dropping update", slog.Int("user_id", userID))
	}
}

// ServeWS upgrades the request and attaches the connection to userID's room.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, userID int) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied to the client.
		h.logger.Warn("websocket upgrade failed", slog.Int("user_id", userID), slog.Any("error", err))
		return
	}

	c := &Client{
		hub:    h,
		conn:   conn,
		send:   make(chan []byte, sendBuffer),
		userID: userID,
	}
	select {
	case h.register <- c:
	case <-h.done:
		conn.Close()
		return
	}

	go c.writePump()
	go c.readPump()
}

func (h *Hub) deliver(c *Client, data []byte) {
	select {
	case c.send <- data:
	default:
		// Slow consumer: drop it rather than stall every room.
		h.remove(c)
	}
}

func (h *Hub) remove(c *Client) {
	room, ok := h.rooms[c.userID]
	if !ok {
		return
	}
	if _, ok := room[c]; !ok {
		return
	}
	delete(room, c)
	close(c.send)
	if len(room) == 0 {
		delete(h.rooms, c.userID)
	}
}

func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error { return c.conn.SetReadDeadline(time.Now().Add(pongWait)) })

	for {
		// Клиент ничего не шлёт, читаем только ради control-фреймов.
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.Debug("live client closed unexpectedly", slog.Int("user_id", c.userID), slog.Any("error", err))
			}
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func mustMarshal(m Message) []byte {
	b, err := json.Marshal(m)
	if err != nil {
		panic(err)
	}
	return b
}
