// Package transport keeps the websocket connection to the device server and
// turns its frames into ordered events.
package transport

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"roast_monitor/internal/logger"
	"roast_monitor/internal/models"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
)

// ErrNotConnected is returned by Emit while there is no live connection.
var ErrNotConnected = errors.New("not connected to device server")

// Handler receives every inbound event, including the synthesized connect
// and disconnect, from a single goroutine in read order.
type Handler func(env models.Envelope)

// Config controls dialing and reconnection.
type Config struct {
	URL              string
	HandshakeTimeout time.Duration
	WriteTimeout     time.Duration
	// ReadTimeout of zero disables the read deadline.
	ReadTimeout time.Duration
	MinBackoff  time.Duration
	MaxBackoff  time.Duration
}

func (c Config) withDefaults() Config {
	if c.HandshakeTimeout <= 0 {
		c.HandshakeTimeout = 10 * time.Second
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = 5 * time.Second
	}
	if c.MinBackoff <= 0 {
		c.MinBackoff = time.Second
	}
	if c.MaxBackoff < c.MinBackoff {
		c.MaxBackoff = 32 * time.Second
		if c.MaxBackoff < c.MinBackoff {
			c.MaxBackoff = c.MinBackoff
		}
	}
	return c
}

// Client is a reconnecting websocket client for the device server.
type Client struct {
	cfg     Config
	handler Handler
	log     *logger.Logger
	dialer  websocket.Dialer

	// connMu guards conn and serializes writes.
	connMu sync.Mutex
	conn   *websocket.Conn
}

// NewClient returns a client that delivers events to handler once Run starts.
func NewClient(cfg Config, handler Handler, log *logger.Logger) *Client {
	cfg = cfg.withDefaults()
	if log == nil {
		log = logger.Nop()
	}
	return &Client{
		cfg:     cfg,
		handler: handler,
		log:     log,
		dialer:  websocket.Dialer{HandshakeTimeout: cfg.HandshakeTimeout},
	}
}

// Run dials, reads until the connection fails and redials with exponential
// backoff until ctx is done. It returns ctx.Err().
func (c *Client) Run(ctx context.Context) error {
	delay := c.cfg.MinBackoff
	for {
		conn, err := c.dial(ctx)
		if err == nil {
			delay = c.cfg.MinBackoff
			c.deliver(models.Envelope{Event: models.EventConnect})
			c.readLoop(ctx, conn)
			c.deliver(models.Envelope{Event: models.EventDisconnect})
		} else if ctx.Err() == nil {
			c.log.Warnw("device_dial_failed", "url", c.cfg.URL, "err", err, "retry_in", delay)
		}

		if ctx.Err() != nil {
			return ctx.Err()
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
		if delay > c.cfg.MaxBackoff {
			delay = c.cfg.MaxBackoff
		}
	}
}

func (c *Client) dial(ctx context.Context) (*websocket.Conn, error) {
	conn, resp, err := c.dialer.DialContext(ctx, c.cfg.URL, nil)
	if resp != nil && resp.Body != nil {
		if cerr := resp.Body.Close(); cerr != nil {
			c.log.Debugw("close_handshake_body_failed", "err", cerr)
		}
	}
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("websocket dial failed (status %d): %w", resp.StatusCode, err)
		}
		return nil, fmt.Errorf("websocket dial failed: %w", err)
	}

	c.connMu.Lock()
	c.conn = conn
	c.connMu.Unlock()
	c.log.Infow("device_connected", "url", c.cfg.URL)
	return conn, nil
}

func (c *Client) readLoop(ctx context.Context, conn *websocket.Conn) {
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			c.drop(conn)
		case <-done:
		}
	}()

	if c.cfg.ReadTimeout > 0 {
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(c.cfg.ReadTimeout))
		})
	}

	for {
		if c.cfg.ReadTimeout > 0 {
			if err := conn.SetReadDeadline(time.Now().Add(c.cfg.ReadTimeout)); err != nil {
				c.log.Warnw("set_read_deadline_failed", "err", err)
			}
		}
		_, frame, err := conn.ReadMessage()
		if err != nil {
			switch {
			case ctx.Err() != nil:
			case websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway):
				c.log.Infow("device_connection_closed")
			default:
				c.log.Warnw("device_read_failed", "err", err)
			}
			c.drop(conn)
			return
		}

		var env models.Envelope
		if err := json.Unmarshal(frame, &env); err != nil || env.Event == "" {
			c.log.Warnw("malformed_frame", "err", err, "frame", string(frame))
			continue
		}
		c.deliver(env)
	}
}

func (c *Client) deliver(env models.Envelope) {
	if c.handler != nil {
		c.handler(env)
	}
}

// drop closes conn and forgets it if it is still the current connection.
func (c *Client) drop(conn *websocket.Conn) {
	c.connMu.Lock()
	defer c.connMu.Unlock()
	if c.conn != conn {
		return
	}
	if err := conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second),
	); err != nil {
		c.log.Debugw("close_frame_failed", "err", err)
	}
	if err := conn.Close(); err != nil {
		c.log.Debugw("close_connection_failed", "err", err)
	}
	c.conn = nil
}

// Emit sends one outbound event. It does not retry; the caller decides what
// a failure means.
func (c *Client) Emit(event string, data any) error {
	frame, err := Encode(event, data)
	if err != nil {
		return err
	}

	c.connMu.Lock()
	defer c.connMu.Unlock()
	if c.conn == nil {
		return ErrNotConnected
	}
	if err := c.conn.SetWriteDeadline(time.Now().Add(c.cfg.WriteTimeout)); err != nil {
		return fmt.Errorf("set write deadline: %w", err)
	}
	if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
		return fmt.Errorf("write %s: %w", event, err)
	}
	return nil
}

// Connected reports whether a connection is currently open.
func (c *Client) Connected() bool {
	c.connMu.Lock()
	defer c.connMu.Unlock()
	return c.conn != nil
}

// Encode builds the wire frame for an outbound event. A nil data is sent
// without a data field.
func Encode(event string, data any) ([]byte, error) {
	env := models.Envelope{Event: models.EventName(event)}
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", event, err)
		}
		env.Data = raw
	}
	return json.Marshal(env)
}
