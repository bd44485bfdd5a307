package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

// wsServer is a minimal session endpoint: it records connections and lets
// tests push frames or read what the client sent.
type wsServer struct {
	srv      *httptest.Server
	upgrader websocket.Upgrader
	conns    chan *websocket.Conn
}

func newWSServer(t *testing.T) *wsServer {
	t.Helper()
	s := &wsServer{conns: make(chan *websocket.Conn, 4)}
	s.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := s.upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		s.conns <- conn
	}))
	t.Cleanup(s.srv.Close)
	return s
}

func (s *wsServer) url() string {
	return "ws" + strings.TrimPrefix(s.srv.URL, "http")
}

func (s *wsServer) accept(t *testing.T) *websocket.Conn {
	t.Helper()
	select {
	case conn := <-s.conns:
		return conn
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for client connection")
		return nil
	}
}

func TestChannelConnectAndSend(t *testing.T) {
	s := newWSServer(t)
	ch := NewChannel(s.url())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	msg := ch.Listen(ctx)()
	if _, ok := msg.(ConnectedMsg); !ok {
		t.Fatalf("Listen returned %T, want ConnectedMsg", msg)
	}
	if !ch.Connected() {
		t.Error("Connected() should report true after Listen")
	}

	conn := s.accept(t)
	defer conn.Close()

	if err := ch.Send(map[string]string{"type": "START"}); err != nil {
		t.Fatalf("Send() error: %v", err)
	}
	var got map[string]string
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if err := conn.ReadJSON(&got); err != nil {
		t.Fatalf("server read error: %v", err)
	}
	if got["type"] != "START" {
		t.Errorf("server received %v", got)
	}
}

func TestChannelReadLoopDeliversFrames(t *testing.T) {
	s := newWSServer(t)
	ch := NewChannel(s.url())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch.Listen(ctx)()
	conn := s.accept(t)
	defer conn.Close()

	payload, _ := json.Marshal(map[string]any{"id": "w1", "dayNumber": 1})
	if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
		t.Fatalf("server write error: %v", err)
	}

	msg := ch.ReadLoop(ctx)()
	frame, ok := msg.(FrameMsg)
	if !ok {
		t.Fatalf("ReadLoop returned %T, want FrameMsg", msg)
	}
	if !strings.Contains(string(frame.Data), `"w1"`) {
		t.Errorf("frame data = %s", frame.Data)
	}
}

func TestChannelReconnectAfterDrop(t *testing.T) {
	s := newWSServer(t)
	ch := NewChannel(s.url())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch.Listen(ctx)()
	first := s.accept(t)

	// Server-side drop surfaces as DisconnectedMsg from the pending read.
	first.Close()
	msg := ch.ReadLoop(ctx)()
	if _, ok := msg.(DisconnectedMsg); !ok {
		t.Fatalf("ReadLoop returned %T, want DisconnectedMsg", msg)
	}
	if ch.Connected() {
		t.Error("Connected() should report false after a drop")
	}

	// The app reacts by re-running Listen, which dials a fresh connection.
	msg = ch.Listen(ctx)()
	if _, ok := msg.(ConnectedMsg); !ok {
		t.Fatalf("reconnect Listen returned %T, want ConnectedMsg", msg)
	}
	second := s.accept(t)
	defer second.Close()

	if err := ch.Send(map[string]string{"type": "END"}); err != nil {
		t.Errorf("Send() after reconnect: %v", err)
	}
}

func TestChannelSendWhileDownIsLost(t *testing.T) {
	ch := NewChannel("ws://127.0.0.1:1/session")
	if err := ch.Send(map[string]string{"type": "START"}); err == nil {
		t.Error("Send() on a closed channel should error, not queue")
	}
}

func TestChannelSuspendStopsListen(t *testing.T) {
	s := newWSServer(t)
	ch := NewChannel(s.url())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch.Listen(ctx)()
	conn := s.accept(t)
	defer conn.Close()

	ch.Suspend()
	if ch.Connected() {
		t.Error("Suspend() should close the connection")
	}

	// While suspended, Listen returns immediately instead of redialing.
	if msg := ch.Listen(ctx)(); msg != nil {
		t.Errorf("Listen while suspended returned %T, want nil", msg)
	}

	ch.Resume()
	if msg := ch.Listen(ctx)(); msg == nil {
		t.Error("Listen after Resume should dial again")
	} else if _, ok := msg.(ConnectedMsg); !ok {
		t.Errorf("Listen after Resume returned %T, want ConnectedMsg", msg)
	}
}
