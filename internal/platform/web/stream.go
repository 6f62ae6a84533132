// Package web streams one shared simulation to browsers over websockets.
// A ticker goroutine steps the grid and broadcasts every frame to all
// connected clients; "/" serves a small canvas viewer.
package web

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-sand/internal/render"
	"github.com/vovakirdan/tui-sand/internal/scenario"
	"github.com/vovakirdan/tui-sand/internal/sim"
)

//go:embed index.html
var indexHTML []byte

// Config holds configuration for the stream server.
type Config struct {
	Address  string // host:port to listen on
	TickRate int    // ticks (and frames) per second
	Scenario scenario.Scenario
	Width    int
	Height   int
	Seed     int64 // 0 = time-based
	Theme    render.Theme
	Logger   *log.Logger

	// WriteTimeout bounds each frame write. A client that cannot take a
	// frame in time is dropped.
	WriteTimeout time.Duration
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Address:  ":8080",
		TickRate: 30,
		Width:    160,
		Height:   90,
		Theme:    render.DefaultTheme(),

		WriteTimeout: defaultWriteTimeout,
	}
}

const defaultWriteTimeout = 2 * time.Second

// Frame is one broadcast grid snapshot. Cells holds palette indices in
// row-major order.
type Frame struct {
	Tick    uint64   `json:"tick"`
	Width   int      `json:"width"`
	Height  int      `json:"height"`
	Palette []string `json:"palette"`
	Cells   []int    `json:"cells"`
	Paused  bool     `json:"paused"`
}

// Control is a message a client may send.
type Control struct {
	Action string `json:"action"` // "pause", "resume" or "reset"
}

// Streamer owns the shared grid and the connected clients.
type Streamer struct {
	cfg    Config
	logger *log.Logger

	mu     sync.Mutex // guards grid, seed, paused
	grid   *sim.Grid
	seed   int64
	paused bool

	upgrader     websocket.Upgrader
	clients      map[*websocket.Conn]*sync.Mutex
	clientsMutex sync.RWMutex
}

// NewStreamer builds the scenario grid and returns a streamer.
func NewStreamer(cfg Config) (*Streamer, error) {
	if cfg.TickRate <= 0 {
		return nil, fmt.Errorf("web: tick rate must be positive, got %d", cfg.TickRate)
	}
	if cfg.Scenario.ID == "" {
		cfg.Scenario, _ = scenario.Get("empty")
	}
	if cfg.Theme.Name == "" {
		cfg.Theme = render.DefaultTheme()
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = defaultWriteTimeout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}

	s := &Streamer{
		cfg:    cfg,
		logger: logger,
		seed:   cfg.Seed,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // viewers may be served from anywhere
			},
		},
		clients: make(map[*websocket.Conn]*sync.Mutex),
	}
	if s.seed == 0 {
		s.seed = time.Now().UnixNano()
	}
	if err := s.rebuild(); err != nil {
		return nil, err
	}
	return s, nil
}

// rebuild creates a new grid. The caller holds mu or owns s exclusively.
func (s *Streamer) rebuild() error {
	g, err := s.cfg.Scenario.Build(s.cfg.Width, s.cfg.Height, sim.WithSeed(s.seed))
	if err != nil {
		return fmt.Errorf("web: build scenario: %w", err)
	}
	s.grid = g
	return nil
}

// Handler returns the HTTP handler serving the viewer and the websocket.
func (s *Streamer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.serveHome)
	mux.HandleFunc("/ws", s.handleWebSocket)
	return mux
}

func (s *Streamer) serveHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexHTML)
}

func (s *Streamer) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	connMutex := &sync.Mutex{}
	s.clientsMutex.Lock()
	s.clients[conn] = connMutex
	s.clientsMutex.Unlock()
	s.logger.Info("client connected", "remote", r.RemoteAddr, "clients", s.ClientCount())
	defer func() {
		s.clientsMutex.Lock()
		delete(s.clients, conn)
		s.clientsMutex.Unlock()
		s.logger.Info("client disconnected", "remote", r.RemoteAddr)
	}()

	// Send the current frame right away
	frame := s.Snapshot()
	if err := s.write(conn, connMutex, frame); err != nil {
		return
	}

	// Handle control messages until the client goes away
	for {
		var msg Control
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}
		s.apply(msg)
	}
}

func (s *Streamer) apply(msg Control) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch msg.Action {
	case "pause":
		s.paused = true
	case "resume":
		s.paused = false
	case "reset":
		s.seed = time.Now().UnixNano()
		if err := s.rebuild(); err != nil {
			s.logger.Error("reset failed", "error", err)
		}
	default:
		s.logger.Debug("unknown control", "action", msg.Action)
	}
}

// Step advances the grid one tick unless paused and returns the new frame.
func (s *Streamer) Step() Frame {
	s.mu.Lock()
	if !s.paused {
		s.grid.Step()
	}
	frame := s.snapshotLocked()
	s.mu.Unlock()
	return frame
}

// Snapshot returns the current frame without stepping.
func (s *Streamer) Snapshot() Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Streamer) snapshotLocked() Frame {
	g := s.grid
	frame := Frame{
		Tick:   g.Tick(),
		Width:  g.Width(),
		Height: g.Height(),
		Cells:  make([]int, 0, g.Width()*g.Height()),
		Paused: s.paused,
	}

	index := make(map[sim.Color]int)
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			c := s.cfg.Theme.Color(g.At(sim.C(x, y)).Color)
			i, ok := index[c]
			if !ok {
				i = len(frame.Palette)
				index[c] = i
				frame.Palette = append(frame.Palette, string(c))
			}
			frame.Cells = append(frame.Cells, i)
		}
	}
	return frame
}

// Paused reports whether the shared simulation is paused.
func (s *Streamer) Paused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paused
}

// ClientCount returns the number of connected clients.
func (s *Streamer) ClientCount() int {
	s.clientsMutex.RLock()
	defer s.clientsMutex.RUnlock()
	return len(s.clients)
}

// Broadcast sends a frame to every client, dropping clients that fail.
func (s *Streamer) Broadcast(frame Frame) {
	s.clientsMutex.RLock()
	clientsToRemove := []*websocket.Conn{}
	for client, mutex := range s.clients {
		if err := s.write(client, mutex, frame); err != nil {
			s.logger.Warn("websocket write failed", "error", err)
			client.Close()
			clientsToRemove = append(clientsToRemove, client)
		}
	}
	s.clientsMutex.RUnlock()

	// Remove failed clients
	if len(clientsToRemove) > 0 {
		s.clientsMutex.Lock()
		for _, client := range clientsToRemove {
			delete(s.clients, client)
		}
		s.clientsMutex.Unlock()
	}
}

// write sends one frame under the connection's write lock and deadline.
func (s *Streamer) write(conn *websocket.Conn, mu *sync.Mutex, frame Frame) error {
	mu.Lock()
	defer mu.Unlock()
	conn.SetWriteDeadline(time.Now().Add(s.cfg.WriteTimeout))
	return conn.WriteJSON(frame)
}

// Run steps and broadcasts at the configured tick rate until ctx is done.
func (s *Streamer) Run(ctx context.Context) {
	ticker := time.NewTicker(time.Second / time.Duration(s.cfg.TickRate))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Broadcast(s.Step())
		}
	}
}

// ListenAndServe serves the viewer and runs the simulation until ctx is done.
func (s *Streamer) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.cfg.Address,
		Handler: s.Handler(),
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go s.Run(ctx)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting stream server", "address", s.cfg.Address, "scenario", s.cfg.Scenario.ID)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("web: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	// Hijacked websocket connections are not closed by Shutdown.
	s.clientsMutex.RLock()
	for client := range s.clients {
		client.Close()
	}
	s.clientsMutex.RUnlock()

	return srv.Shutdown(shutdownCtx)
}
