package wsclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type channelServer struct {
	t      *testing.T
	mu     sync.Mutex
	conns  []*websocket.Conn
	tokens []string
	paths  []string
	frames []string
}

func (s *channelServer) handler(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.tokens = append(s.tokens, r.URL.Query().Get("token"))
	s.paths = append(s.paths, r.URL.Path)
	s.mu.Unlock()
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.t.Errorf("upgrade: %v", err)
		return
	}
	s.mu.Lock()
	s.conns = append(s.conns, conn)
	s.mu.Unlock()
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		s.mu.Lock()
		s.frames = append(s.frames, string(data))
		s.mu.Unlock()
	}
}

func (s *channelServer) send(t *testing.T, payload string) {
	s.mu.Lock()
	conn := s.conns[len(s.conns)-1]
	s.mu.Unlock()
	if err := conn.WriteMessage(websocket.TextMessage, []byte(payload)); err != nil {
		t.Fatalf("server write: %v", err)
	}
}

func (s *channelServer) dialCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.conns)
}

func newTestClient(t *testing.T, srv *httptest.Server, cfg Config) *Client {
	t.Helper()
	cfg.BaseURL = "ws" + strings.TrimPrefix(srv.URL, "http")
	if cfg.Channel == "" {
		cfg.Channel = "events"
	}
	client, err := New(cfg)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func TestConnectUsesChannelPathAndToken(t *testing.T) {
	server := &channelServer{t: t}
	srv := httptest.NewServer(http.HandlerFunc(server.handler))
	t.Cleanup(srv.Close)

	client := newTestClient(t, srv, Config{
		Channel: "timeline",
		Token:   func() string { return "tkn-1" },
	})
	if err := client.Connect(context.Background()); err != nil {
		t.Fatalf("connect: %v", err)
	}
	server.mu.Lock()
	defer server.mu.Unlock()
	if len(server.paths) != 1 || server.paths[0] != "/api/v1/timeline/ws" {
		t.Fatalf("unexpected paths: %v", server.paths)
	}
	if server.tokens[0] != "tkn-1" {
		t.Fatalf("expected token query param, got %q", server.tokens[0])
	}
}

func TestConnectIdempotentWhileOpen(t *testing.T) {
	server := &channelServer{t: t}
	srv := httptest.NewServer(http.HandlerFunc(server.handler))
	t.Cleanup(srv.Close)

	client := newTestClient(t, srv, Config{})
	if err := client.Connect(context.Background()); err != nil {
		t.Fatalf("connect: %v", err)
	}
	if err := client.Connect(context.Background()); err != nil {
		t.Fatalf("second connect: %v", err)
	}
	if got := server.dialCount(); got != 1 {
		t.Fatalf("expected a single dial, got %d", got)
	}
}

func TestDispatchByType(t *testing.T) {
	server := &channelServer{t: t}
	srv := httptest.NewServer(http.HandlerFunc(server.handler))
	t.Cleanup(srv.Close)

	client := newTestClient(t, srv, Config{})
	var mu sync.Mutex
	var got []string
	client.Subscribe("pack.loaded", func(evt Event) {
		mu.Lock()
		got = append(got, evt.Type)
		mu.Unlock()
	})
	if err := client.Connect(context.Background()); err != nil {
		t.Fatalf("connect: %v", err)
	}
	server.send(t, `{"type":"pack.loaded","name":"starter"}`)
	server.send(t, `{"type":"other.event"}`)
	waitFor(t, "dispatch", func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(got) == 1
	})
	mu.Lock()
	defer mu.Unlock()
	if got[0] != "pack.loaded" {
		t.Fatalf("unexpected events: %v", got)
	}
}

func TestMalformedFrameLoggedNotPropagated(t *testing.T) {
	server := &channelServer{t: t}
	srv := httptest.NewServer(http.HandlerFunc(server.handler))
	t.Cleanup(srv.Close)

	var mu sync.Mutex
	var logged []string
	client := newTestClient(t, srv, Config{
		Logf: func(format string, args ...any) {
			mu.Lock()
			logged = append(logged, format)
			mu.Unlock()
		},
	})
	var delivered atomic.Int32
	client.Subscribe("ok", func(Event) { delivered.Add(1) })
	if err := client.Connect(context.Background()); err != nil {
		t.Fatalf("connect: %v", err)
	}
	server.send(t, `{not json`)
	server.send(t, `{"type":"ok"}`)
	waitFor(t, "good frame after bad one", func() bool { return delivered.Load() == 1 })
	mu.Lock()
	defer mu.Unlock()
	if len(logged) == 0 {
		t.Fatalf("expected malformed frame to be logged")
	}
}

func TestKeepalivePing(t *testing.T) {
	server := &channelServer{t: t}
	srv := httptest.NewServer(http.HandlerFunc(server.handler))
	t.Cleanup(srv.Close)

	client := newTestClient(t, srv, Config{PingInterval: 20 * time.Millisecond})
	if err := client.Connect(context.Background()); err != nil {
		t.Fatalf("connect: %v", err)
	}
	waitFor(t, "keepalive ping", func() bool {
		server.mu.Lock()
		defer server.mu.Unlock()
		for _, frame := range server.frames {
			if frame == "ping" {
				return true
			}
		}
		return false
	})
}

func TestUnexpectedCloseReconnects(t *testing.T) {
	server := &channelServer{t: t}
	srv := httptest.NewServer(http.HandlerFunc(server.handler))
	t.Cleanup(srv.Close)

	client := newTestClient(t, srv, Config{
		ReconnectDelay: 10 * time.Millisecond,
		Logf:           func(string, ...any) {},
	})
	if err := client.Connect(context.Background()); err != nil {
		t.Fatalf("connect: %v", err)
	}
	// Drop the server side without a close handshake.
	server.mu.Lock()
	server.conns[0].Close()
	server.mu.Unlock()
	waitFor(t, "reconnect", func() bool { return server.dialCount() >= 2 })
}

func TestCleanCloseDoesNotReconnect(t *testing.T) {
	server := &channelServer{t: t}
	srv := httptest.NewServer(http.HandlerFunc(server.handler))
	t.Cleanup(srv.Close)

	client := newTestClient(t, srv, Config{
		ReconnectDelay: 10 * time.Millisecond,
		Logf:           func(string, ...any) {},
	})
	if err := client.Connect(context.Background()); err != nil {
		t.Fatalf("connect: %v", err)
	}
	if err := client.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	time.Sleep(100 * time.Millisecond)
	if got := server.dialCount(); got != 1 {
		t.Fatalf("expected no reconnect after clean close, got %d dials", got)
	}
}
