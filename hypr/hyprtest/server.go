// Package hyprtest provides a fake Hyprland control socket for tests.
package hyprtest

import (
	"errors"
	"io"
	"net"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

// Server answers `j/...` queries with a canned reply and records every
// request it receives, one per connection.
type Server struct {
	RuntimeDir string
	Signature  string

	ln   net.Listener
	wg   sync.WaitGroup
	reqs chan string

	stop     chan struct{}
	stopOnce sync.Once

	mu       sync.Mutex
	reply    string
	stalled  bool
	requests []string
	conns    int
}

// NewServer listens on <tmp>/hypr/<signature>/.socket.sock. The socket is
// removed when the test ends.
func NewServer(t testing.TB, signature string) *Server {
	t.Helper()
	// Short base path: unix socket paths are limited to 108 bytes.
	dir, err := os.MkdirTemp("", "fb")
	if err != nil {
		t.Fatalf("temp dir: %v", err)
	}
	sockDir := filepath.Join(dir, "hypr", signature)
	if err := os.MkdirAll(sockDir, 0o700); err != nil {
		t.Fatalf("socket dir: %v", err)
	}
	ln, err := net.Listen("unix", filepath.Join(sockDir, ".socket.sock"))
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	s := &Server{
		RuntimeDir: dir,
		Signature:  signature,
		ln:         ln,
		reqs:       make(chan string, 64),
		stop:       make(chan struct{}),
	}
	s.wg.Add(1)
	go s.serve()
	t.Cleanup(func() {
		s.Close()
		_ = os.RemoveAll(dir)
	})
	return s
}

// SetReply changes the body sent back for queries.
func (s *Server) SetReply(reply string) {
	s.mu.Lock()
	s.reply = reply
	s.mu.Unlock()
}

// Stall makes the server read requests but never answer or close the
// connection, like a hung compositor. Close releases stalled connections.
func (s *Server) Stall() {
	s.mu.Lock()
	s.stalled = true
	s.mu.Unlock()
}

// Requests returns every request received so far, in arrival order.
func (s *Server) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requests...)
}

// Connections returns the number of accepted connections.
func (s *Server) Connections() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conns
}

// WaitRequest blocks until the next request arrives or timeout elapses.
func (s *Server) WaitRequest(t testing.TB, timeout time.Duration) string {
	t.Helper()
	select {
	case r := <-s.reqs:
		return r
	case <-time.After(timeout):
		t.Fatalf("no compositor request within %v", timeout)
		return ""
	}
}

// Close stops accepting connections and waits for in-flight ones.
func (s *Server) Close() {
	s.stopOnce.Do(func() { close(s.stop) })
	_ = s.ln.Close()
	s.wg.Wait()
}

func (s *Server) serve() {
	defer s.wg.Done()
	for {
		conn, err := s.ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			continue
		}
		s.wg.Add(1)
		go s.handle(conn)
	}
}

func (s *Server) handle(conn net.Conn) {
	defer s.wg.Done()
	defer conn.Close()
	_ = conn.SetDeadline(time.Now().Add(2 * time.Second))

	// Clients end a request by closing (or half-closing) their side.
	b, _ := io.ReadAll(conn)
	req := string(b)

	s.mu.Lock()
	s.conns++
	s.requests = append(s.requests, req)
	reply := s.reply
	stalled := s.stalled
	s.mu.Unlock()

	select {
	case s.reqs <- req:
	default:
	}

	if stalled {
		<-s.stop
		return
	}

	if strings.HasPrefix(req, "j/") {
		_, _ = io.WriteString(conn, reply)
		return
	}
	_, _ = io.WriteString(conn, "ok")
}
