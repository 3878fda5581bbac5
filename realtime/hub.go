// realtime/hub.go - WebSocket fan-out hub
package realtime

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ShrijaySharma/Ezauction/auction"
)

const (
	writeWait  = 10 * time.Second // Time allowed to write a message
	pingPeriod = 15 * time.Second // Send pings at this interval

	sendBufferSize = 256
)

// Envelope is the wire frame for every broadcast.
type Envelope struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

type client struct {
	id   string
	conn *websocket.Conn
	send chan Envelope // Buffered channel for outbound messages
}

// InfoProvider supplies the replay events sent to a client that asks
// for the current auction snapshot (the "request-info" frame).
type InfoProvider func(ctx context.Context) ([]auction.Event, error)

// Hub fans auction events out to every connected dashboard and
// overlay. It implements auction.Broadcaster so the engine can emit
// without knowing about sockets.
type Hub struct {
	register   chan *client
	unregister chan *client
	broadcast  chan Envelope
	info       InfoProvider
	log        *zap.Logger
}

var _ auction.Broadcaster = (*Hub)(nil)

func NewHub(log *zap.Logger) *Hub {
	if log == nil {
		log = zap.NewNop()
	}
	return &Hub{
		register:   make(chan *client),
		unregister: make(chan *client),
		broadcast:  make(chan Envelope, sendBufferSize),
		log:        log,
	}
}

// SetInfoProvider wires the snapshot source. Set once at startup,
// before Run.
func (h *Hub) SetInfoProvider(fn InfoProvider) {
	h.info = fn
}

// Emit queues an event for every connected client.
func (h *Hub) Emit(event string, payload any) {
	h.broadcast <- Envelope{Type: event, Payload: payload}
}

// Run owns the client set; all membership changes and broadcasts go
// through its channels, so no locks are needed. Call in a goroutine.
func (h *Hub) Run() {
	clients := make(map[string]*client)
	for {
		select {
		case c := <-h.register:
			clients[c.id] = c
			h.log.Info("websocket client connected", zap.String("client_id", c.id), zap.Int("clients", len(clients)))

		case c := <-h.unregister:
			if _, ok := clients[c.id]; ok {
				delete(clients, c.id)
				close(c.send)
				h.log.Info("websocket client disconnected", zap.String("client_id", c.id), zap.Int("clients", len(clients)))
			}

		case msg := <-h.broadcast:
			// Non-blocking fan-out; one slow client doesn't stall the rest.
			for _, c := range clients {
				select {
				case c.send <- msg:
				default:
					h.log.Warn("send buffer full, dropping frame",
						zap.String("client_id", c.id), zap.String("type", msg.Type))
				}
			}
		}
	}
}

// Handler returns the fiber websocket handler for the /ws route.
func (h *Hub) Handler() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		c := &client{
			id:   uuid.NewString(),
			conn: conn,
			send: make(chan Envelope, sendBufferSize),
		}
		h.register <- c

		go h.writePump(c)
		h.readPump(c)

		h.unregister <- c
	})
}

// readPump consumes inbound frames. The only client-to-server frame is
// "request-info", which replays the current auction snapshot to that
// client alone.
func (h *Hub) readPump(c *client) {
	for {
		var msg Envelope
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Warn("websocket read error", zap.String("client_id", c.id), zap.Error(err))
			}
			return
		}

		switch msg.Type {
		case "request-info":
			h.sendSnapshot(c)
		case "ping":
			h.sendTo(c, Envelope{Type: "pong", Payload: map[string]any{}})
		}
	}
}

func (h *Hub) sendSnapshot(c *client) {
	if h.info == nil {
		return
	}
	events, err := h.info(context.Background())
	if err != nil {
		h.log.Error("snapshot replay failed", zap.String("client_id", c.id), zap.Error(err))
		return
	}
	for _, ev := range events {
		h.sendTo(c, Envelope{Type: ev.Type, Payload: ev.Payload})
	}
}

func (h *Hub) sendTo(c *client, msg Envelope) {
	select {
	case c.send <- msg:
	default:
		h.log.Warn("send buffer full, dropping frame",
			zap.String("client_id", c.id), zap.String("type", msg.Type))
	}
}

// writePump drains the send channel and keeps the connection alive
// with periodic pings.
func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(msg); err != nil {
				h.log.Warn("websocket write error", zap.String("client_id", c.id), zap.Error(err))
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
