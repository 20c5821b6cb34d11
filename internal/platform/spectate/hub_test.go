package spectate

import (
	"bytes"
	"context"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

type frame struct {
	Tick  uint64 `json:"tick"`
	Score int    `json:"score"`
}

func startHub(t *testing.T) (*Hub, string) {
	t.Helper()

	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)

	server := httptest.NewServer(hub.Handler())
	t.Cleanup(server.Close)

	return hub, "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Failed to connect to WebSocket server: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitForClients(t *testing.T, hub *Hub, n int) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for hub.Clients() != n {
		if time.Now().After(deadline) {
			t.Fatalf("Expected %d clients, have %d", n, hub.Clients())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func readFrame(t *testing.T, conn *websocket.Conn) frame {
	t.Helper()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg struct {
		Type string `json:"type"`
		Data frame  `json:"data"`
	}
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("ReadJSON() failed: %v", err)
	}
	if msg.Type != "snapshot" {
		t.Errorf("Expected snapshot message, got %q", msg.Type)
	}
	return msg.Data
}

func TestHubBroadcastsToAllViewers(t *testing.T) {
	hub, url := startHub(t)
	a := dial(t, url)
	b := dial(t, url)
	waitForClients(t, hub, 2)

	hub.Publish(frame{Tick: 3, Score: 1})

	for _, conn := range []*websocket.Conn{a, b} {
		got := readFrame(t, conn)
		if got.Tick != 3 || got.Score != 1 {
			t.Errorf("Unexpected frame: %+v", got)
		}
	}
}

func TestHubSendsLatestOnConnect(t *testing.T) {
	hub, url := startHub(t)
	first := dial(t, url)
	waitForClients(t, hub, 1)

	hub.Publish(frame{Tick: 9})
	readFrame(t, first)

	late := dial(t, url)
	if got := readFrame(t, late); got.Tick != 9 {
		t.Errorf("Late viewer should receive the latest frame, got %+v", got)
	}
}

func TestHubForgetsClosedViewers(t *testing.T) {
	hub, url := startHub(t)
	conn := dial(t, url)
	waitForClients(t, hub, 1)

	conn.Close()
	waitForClients(t, hub, 0)
}

func TestPublishNeverBlocks(t *testing.T) {
	hub := NewHub() // not running, nothing drains the queue

	done := make(chan struct{})
	go func() {
		for i := 0; i < updateBuffer*4; i++ {
			hub.Publish(frame{Tick: uint64(i)})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked with a full queue")
	}
}

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestHubLogsToConfiguredLogger(t *testing.T) {
	out := &lockedBuffer{}
	hub := NewHub()
	hub.SetLogger(log.New(out))

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)

	server := httptest.NewServer(hub.Handler())
	t.Cleanup(server.Close)

	dial(t, "ws"+strings.TrimPrefix(server.URL, "http")+"/ws")

	deadline := time.Now().Add(2 * time.Second)
	for !strings.Contains(out.String(), "viewer connected") {
		if time.Now().After(deadline) {
			t.Fatalf("Expected connect log in configured logger, got %q", out.String())
		}
		time.Sleep(5 * time.Millisecond)
	}
}
