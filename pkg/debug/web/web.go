// Package web streams CPU state snapshots to websocket clients, so a
// browser-based debugger can watch registers change without attaching a
// native frontend.
package web

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"

	"github.com/thelolagemann/go-z80/internal/cpu"
	"github.com/thelolagemann/go-z80/pkg/log"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Server fans CPU snapshots out to connected websocket clients.
type Server struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]bool

	log log.Logger
}

// NewServer returns a new snapshot server.
func NewServer(l log.Logger) *Server {
	if l == nil {
		l = log.NewNullLogger()
	}
	return &Server{
		clients: make(map[*websocket.Conn]bool),
		log:     l,
	}
}

// Handler upgrades incoming connections and registers them for
// broadcasts.
func (s *Server) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			s.log.Errorf("web: upgrading connection: %v", err)
			return
		}

		s.mu.Lock()
		s.clients[conn] = true
		s.mu.Unlock()
		s.log.Debugf("web: client connected from %s", conn.RemoteAddr())
	})
}

// ListenAndServe serves the snapshot endpoint on addr. It blocks.
func (s *Server) ListenAndServe(addr string) error {
	return errors.Wrap(http.ListenAndServe(addr, s.Handler()), "web: serving")
}

// Snapshot is the wire form of a CPU state broadcast.
type Snapshot struct {
	A  uint8  `json:"a"`
	F  uint8  `json:"f"`
	B  uint8  `json:"b"`
	C  uint8  `json:"c"`
	D  uint8  `json:"d"`
	E  uint8  `json:"e"`
	H  uint8  `json:"h"`
	L  uint8  `json:"l"`
	SP uint16 `json:"sp"`
	PC uint16 `json:"pc"`

	Checksum uint64 `json:"checksum"`
}

// TakeSnapshot captures the CPU's register file.
func TakeSnapshot(c *cpu.CPU) Snapshot {
	return Snapshot{
		A: c.A, F: c.F,
		B: c.B, C: c.C,
		D: c.D, E: c.E,
		H: c.H, L: c.L,
		SP: c.SP, PC: c.PC,
		Checksum: c.Checksum(),
	}
}

// Broadcast sends the snapshot to every connected client. Clients that
// fail to accept the write are dropped.
func (s *Server) Broadcast(snapshot Snapshot) {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		s.log.Errorf("web: encoding snapshot: %v", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for conn := range s.clients {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			s.log.Debugf("web: dropping client %s: %v", conn.RemoteAddr(), err)
			_ = conn.Close()
			delete(s.clients, conn)
		}
	}
}

// Close disconnects every client.
func (s *Server) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for conn := range s.clients {
		_ = conn.Close()
		delete(s.clients, conn)
	}
}
