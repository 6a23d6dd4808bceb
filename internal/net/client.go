package net

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"GraphicsStudio/internal/logging"
	"GraphicsStudio/internal/state"
)

// Client is a studio joined to a host. Local commits and clears are sent to
// the host and everything the host relays is applied to the surface.
type Client struct {
	state.NopListener

	conn    *websocket.Conn
	surface *state.Surface
	send    chan Message

	once sync.Once
	done chan struct{}
	mu   sync.Mutex
	err  error
}

// Dial connects to the host at addr ("host:port") and starts syncing
// surface with it.
func Dial(ctx context.Context, addr string, surface *state.Surface) (*Client, error) {
	u := url.URL{Scheme: "ws", Host: addr, Path: "/ws"}
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}
	c := &Client{
		conn:    conn,
		surface: surface,
		send:    make(chan Message, sendQueue),
		done:    make(chan struct{}),
	}
	surface.Subscribe(c)
	go c.readLoop()
	go c.writeLoop()
	logging.Logger().Info("joined host", "addr", addr)
	return c, nil
}

// ShapeCommitted sends a locally drawn shape to the host.
func (c *Client) ShapeCommitted(s state.Shape) {
	c.queue(Message{Type: TypeShape, Shape: &s})
}

// Cleared sends a local clear to the host.
func (c *Client) Cleared(owner string) {
	c.queue(Message{Type: TypeClear, Owner: owner})
}

// Done is closed when the connection ends.
func (c *Client) Done() <-chan struct{} { return c.done }

// Err returns why the connection ended, or nil after Close.
func (c *Client) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Close leaves the host.
func (c *Client) Close() error {
	c.stop(nil)
	return nil
}

func (c *Client) queue(msg Message) {
	select {
	case <-c.done:
	case c.send <- msg:
	default:
		logging.Logger().Warn("send queue full, dropping message", "type", msg.Type)
	}
}

func (c *Client) readLoop() {
	for {
		var msg Message
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				err = nil
			}
			c.stop(err)
			return
		}
		logging.Logger().Debug("received", "type", msg.Type)
		apply(c.surface, msg)
	}
}

func (c *Client) writeLoop() {
	for {
		select {
		case <-c.done:
			return
		case msg := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.conn.WriteJSON(msg); err != nil {
				c.stop(err)
				return
			}
		}
	}
}

func (c *Client) stop(err error) {
	c.once.Do(func() {
		c.surface.Unsubscribe(c)
		c.mu.Lock()
		c.err = err
		c.mu.Unlock()
		if err != nil && !errors.Is(err, websocket.ErrCloseSent) {
			logging.Logger().Warn("left host", "err", err)
		} else {
			logging.Logger().Info("left host")
		}
		_ = c.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
		c.conn.Close()
		close(c.done)
	})
}
