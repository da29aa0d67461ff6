// Package observer serves the live run state to local tools: the latest
// snapshot over plain HTTP and a push stream of snapshots over WebSocket.
package observer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/lixenwraith/into-the-hole/game"
	"github.com/lixenwraith/into-the-hole/parameter"
	"github.com/lixenwraith/into-the-hole/status"
)

type Server struct {
	log *log.Logger

	upgrader websocket.Upgrader
	nextID   atomic.Uint64
	metrics  *status.Registry

	mu     sync.Mutex
	latest []byte
	subs   map[uint64]chan []byte
	// dropped counts frames not delivered to slow subscribers
	dropped atomic.Uint64
}

func NewServer(logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		log: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4 * 1024,
			WriteBufferSize: 64 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true }, // loopback only, see isLoopbackRemote
		},
		subs: make(map[uint64]chan []byte),
	}
}

// SetMetrics exposes reg on /metrics; call before serving
func (s *Server) SetMetrics(reg *status.Registry) {
	s.metrics = reg
}

// Publish stores snap as the latest state and pushes it to every subscriber
// A subscriber whose buffer is full misses this frame
func (s *Server) Publish(snap game.Snapshot) error {
	b, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("observer publish: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest = b
	for _, ch := range s.subs {
		select {
		case ch <- b:
		default:
			s.dropped.Add(1)
		}
	}
	return nil
}

// Subscribers returns the number of connected WebSocket clients
func (s *Server) Subscribers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}

// Dropped returns the number of frames skipped for slow clients
func (s *Server) Dropped() uint64 {
	return s.dropped.Load()
}

func (s *Server) subscribe() (uint64, chan []byte) {
	id := s.nextID.Add(1)
	ch := make(chan []byte, parameter.ObserverSendBuffer)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.latest != nil {
		ch <- s.latest
	}
	s.subs[id] = ch
	return id, ch
}

func (s *Server) unsubscribe(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, id)
}

// Handler routes /state, /metrics and /ws
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/state", s.StateHandler())
	mux.HandleFunc("/metrics", s.MetricsHandler())
	mux.HandleFunc("/ws", s.WSHandler())
	return mux
}

func (s *Server) MetricsHandler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			rw.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		if !isLoopbackRemote(r.RemoteAddr) {
			http.Error(rw, "forbidden", http.StatusForbidden)
			return
		}

		out := map[string]any{}
		if s.metrics != nil {
			out = s.metrics.Snapshot()
		}
		out["observer.subscribers"] = s.Subscribers()
		out["observer.dropped"] = s.Dropped()

		rw.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(rw).Encode(out)
	}
}

func (s *Server) StateHandler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			rw.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		if !isLoopbackRemote(r.RemoteAddr) {
			http.Error(rw, "forbidden", http.StatusForbidden)
			return
		}

		s.mu.Lock()
		b := s.latest
		s.mu.Unlock()
		if b == nil {
			http.Error(rw, "no state yet", http.StatusServiceUnavailable)
			return
		}
		rw.Header().Set("Content-Type", "application/json")
		_, _ = rw.Write(b)
	}
}

func (s *Server) WSHandler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		if !isLoopbackRemote(r.RemoteAddr) {
			http.Error(rw, "forbidden", http.StatusForbidden)
			return
		}

		conn, err := s.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		id, out := s.subscribe()
		defer s.unsubscribe(id)
		s.log.Printf("observer: client %d connected from %s", id, r.RemoteAddr)

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		// Writer goroutine
		writeErr := make(chan error, 1)
		go func() {
			for {
				select {
				case <-ctx.Done():
					writeErr <- ctx.Err()
					return
				case b := <-out:
					_ = conn.SetWriteDeadline(time.Now().Add(parameter.ObserverWriteDeadline))
					if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
						writeErr <- err
						return
					}
				}
			}
		}()

		// Reader loop only detects the client going away
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}

		cancel()
		_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye"), time.Now().Add(time.Second))

		select {
		case <-writeErr:
		case <-time.After(500 * time.Millisecond):
		}
		s.log.Printf("observer: client %d disconnected", id)
	}
}

// Serve listens on addr until ctx is cancelled
func (s *Server) Serve(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("observer listen: %w", err)
	}
	return s.serve(ctx, ln)
}

func (s *Server) serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	s.log.Printf("observer: listening on %s", ln.Addr())

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			_ = srv.Close()
		}
		<-errCh
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func isLoopbackRemote(remoteAddr string) bool {
	host := remoteAddr
	if h, _, err := net.SplitHostPort(remoteAddr); err == nil {
		host = h
	}
	host = strings.TrimPrefix(host, "[")
	host = strings.TrimSuffix(host, "]")
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}
