package server

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Diana2886/websockets-ui/internal/protocol"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 54 * time.Second
	sendBufferSize = 64
)

// isValidOrigin checks if the origin is allowed to connect
func isValidOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		// No origin header - could be a non-browser client
		return true
	}

	originURL, err := url.Parse(origin)
	if err != nil {
		return false
	}

	// Allow same-origin connections
	if r.Host == originURL.Host {
		return true
	}

	// Allow localhost connections for development
	if strings.HasPrefix(originURL.Host, "localhost:") ||
		strings.HasPrefix(originURL.Host, "127.0.0.1:") ||
		originURL.Host == "localhost" ||
		originURL.Host == "127.0.0.1" {
		return true
	}

	return false
}

// WSHandler upgrades connections and pumps messages between the socket and
// the coordinator
type WSHandler struct {
	coordinator *Coordinator
	logger      *slog.Logger
	upgrader    websocket.Upgrader
}

// NewWSHandler creates a WebSocket handler bound to the coordinator
func NewWSHandler(coordinator *Coordinator, logger *slog.Logger) *WSHandler {
	return &WSHandler{
		coordinator: coordinator,
		logger:      logger,
		upgrader: websocket.Upgrader{
			CheckOrigin:       isValidOrigin,
			EnableCompression: true,
		},
	}
}

// ServeHTTP handles a WebSocket connection
func (h *WSHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", slog.String("error", err.Error()))
		return
	}

	client := &Client{
		conn:        conn,
		send:        make(chan any, sendBufferSize),
		coordinator: h.coordinator,
		logger:      h.logger,
	}

	go client.writePump()
	go client.readPump()
}

// Client is one connected participant's transport endpoint
type Client struct {
	conn        *websocket.Conn
	send        chan any
	coordinator *Coordinator
	logger      *slog.Logger
}

var _ Sender = (*Client)(nil)

// Send queues an outbound JSON value without blocking. When the client's
// buffer is full the message is dropped; game state is owned by the server,
// so a fallen-behind client only loses notifications.
func (c *Client) Send(v any) {
	select {
	case c.send <- v:
	default:
		c.logger.Warn("client send buffer full, dropping message")
	}
}

// readPump handles incoming messages from the client
func (c *Client) readPump() {
	defer func() {
		c.coordinator.Disconnect(context.Background(), c)
		close(c.send)
		c.conn.Close()
	}()

	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var env protocol.Envelope
		if err := c.conn.ReadJSON(&env); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Warn("websocket read error", slog.String("error", err.Error()))
			}
			return
		}

		c.coordinator.HandleMessage(context.Background(), c, env)
	}
}

// writePump sends queued messages and keepalive pings to the client
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(message); err != nil {
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
