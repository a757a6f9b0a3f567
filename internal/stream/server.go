// Package stream broadcasts live particle snapshots to websocket clients.
// It plugs into the simulator as an observer; a browser (or anything that
// speaks JSON over a websocket) can watch the run as it evolves.
package stream

import (
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/san-kum/galaxsph/internal/body"
)

// Frame is one broadcast snapshot.
type Frame struct {
	Type      string       `json:"type"`
	Step      int          `json:"step"`
	Time      float64      `json:"time"`
	Positions [][3]float64 `json:"positions"`
	U         []float64    `json:"u"`
	Rho       []float64    `json:"rho"`
}

type Server struct {
	upgrader websocket.Upgrader

	mu      sync.RWMutex
	clients map[*websocket.Conn]*sync.Mutex

	every int

	frameMu sync.RWMutex
	last    *Frame
}

// NewServer broadcasts every n-th step.
func NewServer(every int) *Server {
	if every < 1 {
		every = 1
	}
	return &Server{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients: make(map[*websocket.Conn]*sync.Mutex),
		every:   every,
	}
}

// HandleWS upgrades the connection, replays the latest frame, then keeps
// the client registered until it disconnects.
func (s *Server) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("stream: websocket upgrade error:", err)
		return
	}
	defer conn.Close()

	connMu := &sync.Mutex{}
	s.mu.Lock()
	s.clients[conn] = connMu
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		delete(s.clients, conn)
		s.mu.Unlock()
	}()

	s.frameMu.RLock()
	last := s.last
	s.frameMu.RUnlock()
	if last != nil {
		connMu.Lock()
		err = conn.WriteJSON(last)
		connMu.Unlock()
		if err != nil {
			return
		}
	}

	// Drain reads so pings and close frames are processed.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// OnStep implements evolve.Observer.
func (s *Server) OnStep(ar *body.Arena, step int, t float64) {
	if step%s.every != 0 {
		return
	}

	frame := &Frame{
		Type:      "snapshot",
		Step:      step,
		Time:      t,
		Positions: make([][3]float64, ar.Len()),
		U:         make([]float64, ar.Len()),
		Rho:       make([]float64, ar.Len()),
	}
	for i := 0; i < ar.Len(); i++ {
		p := ar.At(i)
		frame.Positions[i] = p.Pos
		frame.U[i] = p.U
		frame.Rho[i] = p.Rho
	}

	s.frameMu.Lock()
	s.last = frame
	s.frameMu.Unlock()

	s.broadcast(frame)
}

func (s *Server) broadcast(frame *Frame) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for conn, connMu := range s.clients {
		connMu.Lock()
		if err := conn.WriteJSON(frame); err != nil {
			log.Println("stream: write error, dropping client:", err)
			conn.Close()
		}
		connMu.Unlock()
	}
}

// ListenAndServe serves the websocket endpoint at /ws.
func (s *Server) ListenAndServe(addr string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.HandleWS)
	return http.ListenAndServe(addr, mux)
}
