package client

import (
	"context"
	"fmt"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	reconnectBaseDelay = 1 * time.Second
	reconnectMaxDelay  = 30 * time.Second
	writeTimeout       = 10 * time.Second
	pongTimeout        = 60 * time.Second
	pingInterval       = 30 * time.Second
)

// Channel is the persistent WebSocket connection to the IronLog server.
// One Channel is created at startup and shared by everything that reads or
// mutates the live session; it reconnects unconditionally on any disconnect
// and stays closed only while the terminal is unfocused.
type Channel struct {
	url string

	mu        sync.Mutex
	writeMu   sync.Mutex // serialises all conn writes (pings and intents)
	conn      *websocket.Conn
	suspended bool
	pingCtx   context.CancelFunc // cancels the active ping goroutine
}

// NewChannel creates a channel that connects to the given WebSocket URL.
func NewChannel(url string) *Channel {
	return &Channel{url: url}
}

// --- Bubble Tea messages ---

// ConnectedMsg is sent when the channel connects.
type ConnectedMsg struct{}

// DisconnectedMsg is sent when the connection drops.
type DisconnectedMsg struct{ Err error }

// FrameMsg delivers one raw inbound frame: a full workout snapshot or the
// JSON literal null.
type FrameMsg struct{ Data []byte }

// Listen returns a command that dials until connected and then reports
// ConnectedMsg. It retries forever; there is no give-up path short of the
// context being cancelled or the channel being suspended.
func (c *Channel) Listen(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		delay := reconnectBaseDelay
		for {
			select {
			case <-ctx.Done():
				return nil
			default:
			}
			if c.Suspended() {
				return nil
			}

			conn, _, err := websocket.DefaultDialer.Dial(c.url, nil)
			if err != nil {
				log.Debug().Err(err).Dur("retry_in", delay).Msg("ws dial failed")
				time.Sleep(delay)
				delay = min(delay*2, reconnectMaxDelay)
				continue
			}

			// The terminal may have blurred while the dial was in flight.
			if c.Suspended() {
				conn.Close()
				return nil
			}

			// Cancel any previous ping goroutine.
			c.mu.Lock()
			if c.pingCtx != nil {
				c.pingCtx()
			}
			pingCtx, pingCancel := context.WithCancel(ctx)
			c.conn = conn
			c.pingCtx = pingCancel
			c.mu.Unlock()

			go c.pingLoop(pingCtx, conn)

			return ConnectedMsg{}
		}
	}
}

// ReadLoop returns a command that reads the next frame from the connection.
// It should be re-issued after each FrameMsg and started after ConnectedMsg.
func (c *Channel) ReadLoop(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		c.mu.Lock()
		conn := c.conn
		c.mu.Unlock()
		if conn == nil {
			return DisconnectedMsg{Err: fmt.Errorf("no connection")}
		}

		conn.SetPongHandler(func(string) error {
			conn.SetReadDeadline(time.Now().Add(pongTimeout))
			return nil
		})
		conn.SetReadDeadline(time.Now().Add(pongTimeout))

		_, data, err := conn.ReadMessage()
		if err != nil {
			c.mu.Lock()
			if c.conn == conn {
				c.conn = nil
			}
			c.mu.Unlock()
			conn.Close()
			return DisconnectedMsg{Err: err}
		}
		return FrameMsg{Data: data}
	}
}

// Send marshals v as one JSON text frame and writes it. When the channel is
// down the frame is dropped and an error returned; there is no outbound
// queue, so a mutation sent while disconnected is simply lost.
func (c *Channel) Send(v any) error {
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()
	if conn == nil {
		return fmt.Errorf("not connected")
	}
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return conn.WriteJSON(v)
}

// Connected reports whether a connection is currently open.
func (c *Channel) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn != nil
}

// Suspend closes the connection and stops reconnecting, for use while the
// hosting terminal is not visible. Resume undoes it.
func (c *Channel) Suspend() {
	c.mu.Lock()
	c.suspended = true
	conn := c.conn
	c.conn = nil
	if c.pingCtx != nil {
		c.pingCtx()
		c.pingCtx = nil
	}
	c.mu.Unlock()
	if conn != nil {
		conn.Close()
	}
}

// Resume clears the suspended flag; the caller restarts Listen.
func (c *Channel) Resume() {
	c.mu.Lock()
	c.suspended = false
	c.mu.Unlock()
}

// Suspended reports whether the channel is deliberately offline.
func (c *Channel) Suspended() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.suspended
}

// pingLoop sends periodic pings on the given connection. It exits when the
// context is cancelled or the connection changes.
func (c *Channel) pingLoop(ctx context.Context, conn *websocket.Conn) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.mu.Lock()
			cc := c.conn
			c.mu.Unlock()
			if cc != conn {
				return
			}
			c.writeMu.Lock()
			conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			err := conn.WriteMessage(websocket.PingMessage, nil)
			c.writeMu.Unlock()
			if err != nil {
				return
			}
		}
	}
}
