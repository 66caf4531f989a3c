package websocket

import (
	"sync"
	"time"

	"codal-docs-be/internal/pkg/logger"

	"github.com/gofiber/websocket/v2"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1 << 20
	sendBuffer     = 16
)

// Conn is the part of a websocket connection the pumps use.
type Conn interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteMessage(messageType int, data []byte) error
	SetReadLimit(limit int64)
	SetReadDeadline(t time.Time) error
	SetWriteDeadline(t time.Time) error
	SetPongHandler(h func(appData string) error)
	Close() error
}

// Client is a middleman between the websocket connection and a session.
type Client struct {
	Hub *Hub

	Conn Conn

	// Id is the id of the session served over this connection.
	Id string

	// Buffered channel of outbound messages.
	Send chan []byte

	onMessage func(raw []byte)
	onClose   func()
	closed    chan struct{}
	closeOnce sync.Once
	logger    logger.ILogger
}

func NewClient(hub *Hub, conn Conn, id string, log logger.ILogger) *Client {
	return &Client{
		Hub:    hub,
		Conn:   conn,
		Id:     id,
		Send:   make(chan []byte, sendBuffer),
		closed: make(chan struct{}),
		logger: log,
	}
}

// Enqueue queues a message for the write pump. A client that cannot keep up
// is disconnected.
func (c *Client) Enqueue(msg []byte) bool {
	select {
	case <-c.closed:
		return false
	default:
	}

	select {
	case c.Send <- msg:
		return true
	case <-c.closed:
		return false
	default:
		c.logger.Warn("Client", "Send buffer full, closing connection", map[string]interface{}{"session_id": c.Id})
		c.close()
		return false
	}
}

// Closed is closed once the connection is shut down.
func (c *Client) Closed() <-chan struct{} {
	return c.closed
}

func (c *Client) close() {
	c.closeOnce.Do(func() {
		close(c.closed)
		_ = c.Conn.Close()
		if c.onClose != nil {
			c.onClose()
		}
	})
}

// readPump hands every inbound message to onMessage until the peer goes
// away.
func (c *Client) readPump() {
	defer func() {
		c.Hub.Unregister(c)
		c.close()
	}()
	c.Conn.SetReadLimit(maxMessageSize)
	_ = c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Warn("Client", "Unexpected websocket close", map[string]interface{}{
					"session_id": c.Id,
					"error":      err.Error(),
				})
			}
			return
		}
		if c.onMessage != nil {
			c.onMessage(raw)
		}
	}
}

// writePump writes queued messages, one frame each, and keeps the
// connection alive with pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.close()
	}()

	for {
		select {
		case <-c.closed:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
			return

		case message := <-c.Send:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				c.logger.Debug("Client", "Write failed", map[string]interface{}{
					"session_id": c.Id,
					"error":      err.Error(),
				})
				return
			}

		case <-ticker.C:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
