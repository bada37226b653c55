// Package websocket streams rendered log output to live viewers.
package websocket

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/golang/glog"
	"golang.org/x/net/websocket"

	"github.com/robotalks/robolog/pkg/framework"
)

// DefaultBacklog is the number of writes queued per viewer.
const DefaultBacklog = 64

type viewer struct {
	ch chan []byte
}

// Hub is a log backend broadcasting every write to all connected viewers.
// A viewer that falls behind by more than Backlog writes loses data; Write
// never waits for a viewer.
type Hub struct {
	Backlog int

	lock    sync.RWMutex
	viewers map[*viewer]struct{}
	closed  bool
	dropped atomic.Uint64
}

// NewHub creates a Hub.
func NewHub() *Hub {
	return &Hub{Backlog: DefaultBacklog}
}

// Write implements io.Writer.
func (h *Hub) Write(p []byte) (int, error) {
	h.lock.RLock()
	defer h.lock.RUnlock()
	if len(h.viewers) == 0 {
		return len(p), nil
	}
	msg := append([]byte(nil), p...)
	for v := range h.viewers {
		select {
		case v.ch <- msg:
		default:
			h.dropped.Add(1)
		}
	}
	return len(p), nil
}

// Viewers returns the number of connected viewers.
func (h *Hub) Viewers() int {
	h.lock.RLock()
	defer h.lock.RUnlock()
	return len(h.viewers)
}

// Dropped returns the number of writes lost by slow viewers.
func (h *Hub) Dropped() uint64 {
	return h.dropped.Load()
}

// Handler returns the websocket handler to mount on an HTTP server.
func (h *Hub) Handler() websocket.Handler {
	return h.serve
}

// Close disconnects all viewers.
func (h *Hub) Close() error {
	h.lock.Lock()
	defer h.lock.Unlock()
	h.closed = true
	for v := range h.viewers {
		close(v.ch)
		delete(h.viewers, v)
	}
	return nil
}

func (h *Hub) add() *viewer {
	backlog := h.Backlog
	if backlog <= 0 {
		backlog = DefaultBacklog
	}
	v := &viewer{ch: make(chan []byte, backlog)}
	h.lock.Lock()
	defer h.lock.Unlock()
	if h.closed {
		return nil
	}
	if h.viewers == nil {
		h.viewers = make(map[*viewer]struct{})
	}
	h.viewers[v] = struct{}{}
	return v
}

func (h *Hub) remove(v *viewer) {
	h.lock.Lock()
	defer h.lock.Unlock()
	if _, ok := h.viewers[v]; ok {
		delete(h.viewers, v)
		close(v.ch)
	}
}

func (h *Hub) serve(ws *websocket.Conn) {
	conn := Wrap(ws)
	defer conn.Close()
	v := h.add()
	if v == nil {
		return
	}
	defer h.remove(v)
	glog.V(1).Infof("viewer %s connected", ws.Request().RemoteAddr)

	// viewers never send, a read returns when they go away
	goneCh := make(chan struct{})
	go func() {
		defer close(goneCh)
		for {
			if _, err := conn.ReadChunk(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-goneCh:
			glog.V(1).Infof("viewer %s disconnected", ws.Request().RemoteAddr)
			return
		case msg, ok := <-v.ch:
			if !ok {
				return
			}
			if _, err := conn.Write(msg); err != nil {
				glog.Warningf("viewer %s write failed: %v", ws.Request().RemoteAddr, err)
				return
			}
		}
	}
}

// Server serves the Hub at Path on Addr.
type Server struct {
	Addr string
	Path string
	Hub  *Hub
}

// Name implements framework.Named.
func (s *Server) Name() string {
	return "ws-server"
}

// Run implements framework.Runnable.
func (s *Server) Run(ctx context.Context) error {
	mux := http.NewServeMux()
	path := s.Path
	if path == "" {
		path = "/"
	}
	mux.Handle(path, s.Hub.Handler())
	server := &http.Server{Addr: s.Addr, Handler: mux}
	glog.Infof("serving logs at ws://%s%s", s.Addr, path)
	return framework.RunWithContextCloser(ctx, server, func() error {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			return err
		}
		return nil
	})
}
