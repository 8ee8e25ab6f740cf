package cli

import (
	"fmt"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Diana2886/websockets-ui/internal/protocol"
)

// Client is a WebSocket client for the game protocol
type Client struct {
	conn *websocket.Conn
}

// Connect dials the game server
func Connect(serverURL string) (*Client, error) {
	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	conn, _, err := dialer.Dial(serverURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", serverURL, err)
	}
	return &Client{conn: conn}, nil
}

// Close closes the connection
func (c *Client) Close() error {
	return c.conn.Close()
}

// SendCommand sends one command envelope to the server
func (c *Client) SendCommand(msgType string, payload any) error {
	env, err := protocol.NewEnvelope(msgType, payload)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", msgType, err)
	}
	if err := c.conn.WriteJSON(env); err != nil {
		return fmt.Errorf("failed to send %s: %w", msgType, err)
	}
	return nil
}

// ReadEvent reads the next event envelope from the server
func (c *Client) ReadEvent() (protocol.Envelope, error) {
	var env protocol.Envelope
	if err := c.conn.ReadJSON(&env); err != nil {
		return protocol.Envelope{}, err
	}
	return env, nil
}

// Register sends a reg command and waits for the ack, skipping any other
// events arriving first
func (c *Client) Register(name, password string) (protocol.RegResponse, error) {
	if err := c.SendCommand(protocol.TypeReg, protocol.RegRequest{
		Name:     name,
		Password: password,
	}); err != nil {
		return protocol.RegResponse{}, err
	}

	for {
		env, err := c.ReadEvent()
		if err != nil {
			return protocol.RegResponse{}, err
		}
		if env.Type != protocol.TypeReg {
			continue
		}
		var ack protocol.RegResponse
		if err := env.Decode(&ack); err != nil {
			return protocol.RegResponse{}, err
		}
		if ack.Error {
			return ack, fmt.Errorf("registration rejected: %s", ack.ErrorText)
		}
		return ack, nil
	}
}
