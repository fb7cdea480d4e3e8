// Package telemetry serves read-only game state over HTTP and websocket
package telemetry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/gorilla/websocket"

	"github.com/lixenwraith/pricerider/status"
	"github.com/lixenwraith/pricerider/track"
)

const writeTimeout = 2 * time.Second

// TrackInfo describes one catalog track
type TrackInfo struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Quote   string  `json:"quote"`
	Samples int     `json:"samples"`
	Length  float64 `json:"length"`
	First   string  `json:"first_price"`
	Last    string  `json:"last_price"`
}

// Server exposes the status registry; it never touches the game directly
type Server struct {
	reg      *status.Registry
	tracks   []TrackInfo
	interval time.Duration
	upgrader websocket.Upgrader
	router   chi.Router

	http *http.Server
}

// NewServer builds the router for reg and catalog; interval is the stream cadence
func NewServer(reg *status.Registry, catalog *track.Catalog, interval time.Duration) *Server {
	s := &Server{
		reg:      reg,
		tracks:   describeTracks(catalog),
		interval: interval,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
	s.router = s.routes()
	return s
}

func describeTracks(catalog *track.Catalog) []TrackInfo {
	if catalog == nil {
		return nil
	}
	out := make([]TrackInfo, 0, catalog.Len())
	for _, id := range catalog.IDs() {
		series, _ := catalog.Lookup(id)
		info := TrackInfo{
			ID:      series.ID,
			Name:    series.Name,
			Quote:   series.Quote,
			Samples: series.Len(),
			Length:  series.Length(),
		}
		if n := series.Len(); n > 0 {
			info.First = series.Sample(0).Price.String()
			info.Last = series.Sample(n - 1).Price.String()
		}
		out = append(out, info)
	}
	return out
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()

	// Browser HUDs on other origins read the stream
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           60 * 15,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	r.Route("/api", func(rr chi.Router) {
		rr.Get("/state", s.handleState)
		rr.Get("/tracks", s.handleTracks)
		rr.Get("/stream", s.handleStream)
	})
	return r
}

// Router returns the HTTP handler
func (s *Server) Router() http.Handler {
	return s.router
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[TELEMETRY] encode response: %v", err)
	}
}

func (s *Server) handleState(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.reg.Snapshot())
}

func (s *Server) handleTracks(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.tracks)
}

// handleStream pushes a registry snapshot every interval until the client goes away
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[TELEMETRY] upgrade: %v", err)
		return
	}
	defer conn.Close()

	// Reader detects client close; incoming messages are ignored
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	send := func() bool {
		_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		return conn.WriteJSON(s.reg.Snapshot()) == nil
	}
	if !send() {
		return
	}
	for {
		select {
		case <-closed:
			return
		case <-r.Context().Done():
			return
		case <-ticker.C:
			if !send() {
				return
			}
		}
	}
}

// Start listens on addr and serves in the background
func (s *Server) Start(addr string) (net.Addr, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("telemetry listen: %w", err)
	}
	s.http = &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := s.http.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("[TELEMETRY] serve: %v", err)
		}
	}()
	log.Printf("[TELEMETRY] listening on %s", ln.Addr())
	return ln.Addr(), nil
}

// Shutdown stops the server started by Start
func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}
