// Package spectate streams game snapshots to WebSocket viewers.
package spectate

import (
	"context"
	"errors"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

const (
	// updateBuffer is how many published snapshots may queue before new ones are dropped.
	updateBuffer = 64
	// clientBuffer is how many messages a viewer may lag behind before it is disconnected.
	clientBuffer = 16
	writeTimeout = 2 * time.Second
)

// Message is the envelope sent to viewers.
type Message struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// Hub fans published snapshots out to connected viewers.
// Publish never blocks the caller; slow viewers are dropped.
type Hub struct {
	upgrader websocket.Upgrader
	logger   *log.Logger
	updates  chan any

	mu      sync.Mutex
	clients map[*viewer]struct{}
	latest  any
}

type viewer struct {
	writer *SafeWriter
	send   chan Message
	once   sync.Once
}

func (v *viewer) close() {
	v.once.Do(func() {
		close(v.send)
	})
}

// NewHub creates a hub. Call Run to start broadcasting.
func NewHub() *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		logger: log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "copter-spectate",
		}),
		updates: make(chan any, updateBuffer),
		clients: make(map[*viewer]struct{}),
	}
}

// SetLogger replaces the hub's logger. Call it before serving; hosts that
// draw to the terminal point it at a file.
func (h *Hub) SetLogger(logger *log.Logger) {
	h.logger = logger
}

// Publish queues a snapshot for broadcast. Drops it if the queue is full.
func (h *Hub) Publish(v any) {
	select {
	case h.updates <- v:
	default:
	}
}

// Run broadcasts queued snapshots until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return
		case v := <-h.updates:
			h.broadcast(Message{Type: "snapshot", Data: v})
		}
	}
}

func (h *Hub) broadcast(msg Message) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.latest = msg.Data
	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			h.logger.Warn("dropping slow viewer")
			delete(h.clients, c)
			c.close()
		}
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.clients {
		delete(h.clients, c)
		c.close()
	}
}

// Clients returns the number of connected viewers.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Handler returns an HTTP handler serving the stream at /ws.
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", h.serveWS)
	return mux
}

func (h *Hub) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("upgrade failed", "error", err)
		return
	}

	c := &viewer{
		writer: NewSafeWriter(conn),
		send:   make(chan Message, clientBuffer),
	}

	h.mu.Lock()
	if h.latest != nil {
		c.send <- Message{Type: "snapshot", Data: h.latest}
	}
	h.clients[c] = struct{}{}
	h.mu.Unlock()

	h.logger.Info("viewer connected", "remote", r.RemoteAddr)

	go h.writeLoop(c)
	h.readLoop(c)

	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		c.close()
	}
	h.mu.Unlock()

	h.logger.Info("viewer disconnected", "remote", r.RemoteAddr)
}

// writeLoop drains the viewer queue until it is closed.
func (h *Hub) writeLoop(c *viewer) {
	defer c.writer.Close()

	for msg := range c.send {
		if err := c.writer.WriteJSON(msg, writeTimeout); err != nil {
			return
		}
	}
}

// readLoop discards viewer input and returns once the connection fails.
func (h *Hub) readLoop(c *viewer) {
	conn := c.writer.Conn()
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// ListenAndServe serves the stream on addr and broadcasts until ctx is cancelled.
func (h *Hub) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go h.Run(ctx)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		//nolint:errcheck // Best-effort shutdown
		srv.Shutdown(shutdownCtx)
	}()

	h.logger.Info("spectator stream listening", "address", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
