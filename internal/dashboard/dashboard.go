// Package dashboard serves a debug HTTP/WebSocket view of the running
// observation context: a JSON snapshot endpoint, recent solve-attempt
// history, and a health check, plus a live-updating WebSocket feed for a
// browser-based dashboard.
package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"skyscope/internal/obscontext"
	"skyscope/internal/storage"
)

// DefaultPort is the dashboard's default listen port.
const DefaultPort = 8090

const broadcastInterval = 2 * time.Second

// ContextSnapshot is the JSON shape served from /context and pushed over
// the WebSocket feed.
type ContextSnapshot struct {
	RA          float64   `json:"ra"`
	Dec         float64   `json:"dec"`
	Roll        float64   `json:"roll"`
	Solved      bool      `json:"solved"`
	Speed       float64   `json:"speed"`
	LastSolved  time.Time `json:"lastSolved"`
	Exposure    int64     `json:"exposureMicros"`
	Gain        float64   `json:"gain"`
	HasTarget   bool      `json:"hasTarget"`
	TargetName  string    `json:"targetName,omitempty"`
	TargetRA    float64   `json:"targetRa,omitempty"`
	TargetDec   float64   `json:"targetDec,omitempty"`
	LoggingOn   bool      `json:"loggingOn"`
	GeneratedAt time.Time `json:"generatedAt"`
}

// Server hosts the debug dashboard over gorilla/mux routes plus a
// gorilla/websocket push feed.
type Server struct {
	log      *slog.Logger
	ctx      *obscontext.Context
	store    *storage.Store
	port     int
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*websocket.Conn]string
}

// New builds a dashboard Server bound to port (DefaultPort if 0). store
// may be nil, in which case /solves reports an empty history.
func New(log *slog.Logger, obsCtx *obscontext.Context, store *storage.Store, port int) *Server {
	if port == 0 {
		port = DefaultPort
	}
	return &Server{
		log:     log,
		ctx:     obsCtx,
		store:   store,
		port:    port,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients: make(map[*websocket.Conn]string),
	}
}

// Run starts the HTTP server and blocks until ctx is cancelled, at which
// point it shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	go s.pushLoop(ctx)

	router := mux.NewRouter()
	router.HandleFunc("/healthz", s.handleHealthz).Methods("GET")
	router.HandleFunc("/context", s.handleContext).Methods("GET")
	router.HandleFunc("/solves", s.handleSolves).Methods("GET")
	router.HandleFunc("/ws", s.handleWebSocket).Methods("GET")

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", s.port),
		Handler: router,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	s.log.Info("dashboard listening", "port", s.port)
	err := server.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) handleContext(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.snapshot())
}

func (s *Server) handleSolves(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if s.store == nil {
		json.NewEncoder(w).Encode([]storage.SolveAttemptRecord{})
		return
	}
	records, err := s.store.RecentSolveAttempts(50)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(records)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", "error", err.Error())
		return
	}

	clientID := uuid.NewString()

	s.mu.Lock()
	s.clients[conn] = clientID
	s.mu.Unlock()
	s.log.Info("dashboard client connected", "client", clientID)

	go func() {
		defer func() {
			s.mu.Lock()
			delete(s.clients, conn)
			s.mu.Unlock()
			conn.Close()
			s.log.Info("dashboard client disconnected", "client", clientID)
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// pushLoop periodically broadcasts a context snapshot to every connected
// WebSocket client.
func (s *Server) pushLoop(ctx context.Context) {
	ticker := time.NewTicker(broadcastInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			payload, err := json.Marshal(s.snapshot())
			if err != nil {
				continue
			}
			s.mu.Lock()
			for conn, id := range s.clients {
				if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
					delete(s.clients, conn)
					conn.Close()
					s.log.Warn("dropping dashboard client after write failure", "client", id, "error", err.Error())
				}
			}
			s.mu.Unlock()
		}
	}
}

func (s *Server) snapshot() ContextSnapshot {
	ra, dec, solved := s.ctx.Telescope.Position()
	name, tra, tdec, hasTarget := s.ctx.Target.Target()
	snap := ContextSnapshot{
		RA:          ra,
		Dec:         dec,
		Roll:        s.ctx.Telescope.Roll(),
		Solved:      solved,
		Speed:       s.ctx.Telescope.Speed(),
		LastSolved:  s.ctx.Telescope.LastSolved(),
		Exposure:    s.ctx.Camera.Exposure(),
		Gain:        s.ctx.Camera.Gain(),
		HasTarget:   hasTarget,
		LoggingOn:   s.ctx.Telescope.Logging(),
		GeneratedAt: time.Now(),
	}
	if hasTarget {
		snap.TargetName = name
		snap.TargetRA = tra
		snap.TargetDec = tdec
	}
	return snap
}
