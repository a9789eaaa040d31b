package wsclient

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	defaultPingInterval   = 30 * time.Second
	defaultReconnectDelay = 2 * time.Second
	defaultMaxAttempts    = 5
)

// Event is one typed message received from the backend channel.
type Event struct {
	Type    string
	Payload json.RawMessage
}

// Handler receives events for a subscribed type.
type Handler func(Event)

// Config configures a channel connection.
type Config struct {
	// BaseURL is the ws(s) origin, e.g. ws://localhost:8000.
	BaseURL string
	// Channel selects the logical stream: the endpoint is
	// <base>/api/v1/<channel>/ws?token=<token>.
	Channel string
	// Token is read at dial time and passed as a query parameter.
	Token func() string

	PingInterval   time.Duration
	ReconnectDelay time.Duration
	MaxAttempts    int
	Dialer         *websocket.Dialer
	Logf           func(format string, args ...any)
}

// Client maintains one connection to a backend event channel. It is
// constructed explicitly and owned by its caller; there is no process-wide
// shared connection.
type Client struct {
	cfg Config

	mu       sync.Mutex
	conn     *websocket.Conn
	writeMu  sync.Mutex
	dialing  chan struct{}
	closed   bool
	attempt  int
	handlers map[string]map[int]Handler
	nextSub  int
	stopPing chan struct{}
}

// New builds a client; it does not dial until Connect.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("wsclient: base url is required")
	}
	if cfg.Channel == "" {
		return nil, fmt.Errorf("wsclient: channel is required")
	}
	if cfg.PingInterval <= 0 {
		cfg.PingInterval = defaultPingInterval
	}
	if cfg.ReconnectDelay <= 0 {
		cfg.ReconnectDelay = defaultReconnectDelay
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = defaultMaxAttempts
	}
	if cfg.Dialer == nil {
		cfg.Dialer = websocket.DefaultDialer
	}
	if cfg.Logf == nil {
		cfg.Logf = log.Printf
	}
	return &Client{
		cfg:      cfg,
		handlers: make(map[string]map[int]Handler),
	}, nil
}

// Connect establishes the channel connection. If the connection is already
// open it returns immediately; if a dial is in flight it waits for that dial
// to settle instead of starting another.
func (c *Client) Connect(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return fmt.Errorf("wsclient: client is closed")
	}
	if c.conn != nil {
		c.mu.Unlock()
		return nil
	}
	if c.dialing != nil {
		waiting := c.dialing
		c.mu.Unlock()
		select {
		case <-waiting:
		case <-ctx.Done():
			return ctx.Err()
		}
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.conn == nil {
			return fmt.Errorf("wsclient: connect attempt failed")
		}
		return nil
	}
	done := make(chan struct{})
	c.dialing = done
	c.mu.Unlock()

	conn, err := c.dial(ctx)

	c.mu.Lock()
	c.dialing = nil
	close(done)
	if err != nil {
		c.mu.Unlock()
		return err
	}
	if c.closed {
		c.mu.Unlock()
		conn.Close()
		return fmt.Errorf("wsclient: client is closed")
	}
	c.conn = conn
	c.attempt = 0
	c.stopPing = make(chan struct{})
	c.mu.Unlock()

	go c.readLoop(conn)
	go c.pingLoop(conn, c.stopPing)
	return nil
}

func (c *Client) dial(ctx context.Context) (*websocket.Conn, error) {
	endpoint, err := c.endpoint()
	if err != nil {
		return nil, err
	}
	conn, _, err := c.cfg.Dialer.DialContext(ctx, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("wsclient: dial %s: %w", c.cfg.Channel, err)
	}
	return conn, nil
}

func (c *Client) endpoint() (string, error) {
	base, err := url.Parse(strings.TrimRight(c.cfg.BaseURL, "/"))
	if err != nil {
		return "", fmt.Errorf("wsclient: parse base url: %w", err)
	}
	base.Path = strings.TrimRight(base.Path, "/") + "/api/v1/" + c.cfg.Channel + "/ws"
	if c.cfg.Token != nil {
		if token := c.cfg.Token(); token != "" {
			query := base.Query()
			query.Set("token", token)
			base.RawQuery = query.Encode()
		}
	}
	return base.String(), nil
}

// Subscribe registers a handler for one event type and returns its
// unsubscribe func.
func (c *Client) Subscribe(eventType string, handler Handler) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.handlers[eventType] == nil {
		c.handlers[eventType] = make(map[int]Handler)
	}
	id := c.nextSub
	c.nextSub++
	c.handlers[eventType][id] = handler
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.handlers[eventType], id)
	}
}

// Close shuts the connection down cleanly (close code 1000); a clean close
// never triggers reconnection.
func (c *Client) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	conn := c.conn
	c.conn = nil
	stop := c.stopPing
	c.stopPing = nil
	c.mu.Unlock()

	if stop != nil {
		close(stop)
	}
	if conn == nil {
		return nil
	}
	c.writeMu.Lock()
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
	c.writeMu.Unlock()
	return conn.Close()
}

func (c *Client) readLoop(conn *websocket.Conn) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			c.handleDisconnect(conn, err)
			return
		}
		c.dispatch(data)
	}
}

func (c *Client) dispatch(data []byte) {
	var envelope struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		// Malformed frames are logged and dropped, never propagated.
		c.cfg.Logf("wsclient: discard malformed frame on %s: %v", c.cfg.Channel, err)
		return
	}
	c.mu.Lock()
	subs := make([]Handler, 0, len(c.handlers[envelope.Type]))
	for _, handler := range c.handlers[envelope.Type] {
		subs = append(subs, handler)
	}
	c.mu.Unlock()
	event := Event{Type: envelope.Type, Payload: json.RawMessage(data)}
	for _, handler := range subs {
		handler(event)
	}
}

func (c *Client) pingLoop(conn *websocket.Conn, stop <-chan struct{}) {
	ticker := time.NewTicker(c.cfg.PingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			c.writeMu.Lock()
			err := conn.WriteMessage(websocket.TextMessage, []byte("ping"))
			c.writeMu.Unlock()
			if err != nil {
				return
			}
		}
	}
}

func (c *Client) handleDisconnect(conn *websocket.Conn, err error) {
	c.mu.Lock()
	if c.conn == conn {
		c.conn = nil
		if c.stopPing != nil {
			close(c.stopPing)
			c.stopPing = nil
		}
	}
	closed := c.closed
	c.mu.Unlock()
	conn.Close()

	if closed || websocket.IsCloseError(err, websocket.CloseNormalClosure) {
		return
	}

	c.mu.Lock()
	c.attempt++
	attempt := c.attempt
	c.mu.Unlock()
	if attempt > c.cfg.MaxAttempts {
		c.cfg.Logf("wsclient: giving up on %s after %d attempts", c.cfg.Channel, c.cfg.MaxAttempts)
		return
	}
	delay := time.Duration(attempt) * c.cfg.ReconnectDelay
	c.cfg.Logf("wsclient: connection to %s lost, reconnecting in %s (attempt %d/%d)",
		c.cfg.Channel, delay, attempt, c.cfg.MaxAttempts)
	time.AfterFunc(delay, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := c.Connect(ctx); err != nil {
			c.cfg.Logf("wsclient: reconnect %s failed: %v", c.cfg.Channel, err)
			c.handleDisconnect(conn, err)
		}
	})
}
