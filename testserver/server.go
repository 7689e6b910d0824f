// Package testserver provides a configurable HTTP target for pacing runs.
package testserver

import (
	"fmt"
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"
	"time"
)

// Server is a small HTTP server whose endpoints simulate the latency and
// failure behaviors a load generator is pointed at.
type Server struct {
	mux      *http.ServeMux
	requests atomic.Int64
}

// NewServer creates a test server with all endpoints configured.
func NewServer() *Server {
	s := &Server{
		mux: http.NewServeMux(),
	}
	s.mux.HandleFunc("/health", s.handleHealth)
	s.mux.HandleFunc("/delay/", s.handleDelay)
	s.mux.HandleFunc("/fail-rate", s.handleFailRate)
	s.mux.HandleFunc("/stats", s.handleStats)
	return s
}

// Handler returns the http.Handler for the server.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// handleHealth returns a simple health check response.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.requests.Add(1)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, `{"status":"ok"}`)
}

// handleDelay waits for the specified duration before responding. A slow
// endpoint makes coordinated omission visible: a closed-loop generator's
// observed rate collapses here while a Poisson-paced one keeps its schedule.
// Example: GET /delay/100 waits 100ms.
func (s *Server) handleDelay(w http.ResponseWriter, r *http.Request) {
	s.requests.Add(1)
	path := strings.TrimPrefix(r.URL.Path, "/delay/")
	ms, err := strconv.Atoi(path)
	if err != nil || ms < 0 {
		http.Error(w, "invalid delay", http.StatusBadRequest)
		return
	}

	time.Sleep(time.Duration(ms) * time.Millisecond)
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, "delayed %dms", ms)
}

// handleFailRate fails a percentage of requests with 500 status.
// Example: GET /fail-rate?rate=10 fails 10% of requests.
func (s *Server) handleFailRate(w http.ResponseWriter, r *http.Request) {
	s.requests.Add(1)
	rateStr := r.URL.Query().Get("rate")
	rate, err := strconv.Atoi(rateStr)
	if err != nil || rate < 0 || rate > 100 {
		rate = 0
	}

	if rand.Intn(100) < rate {
		http.Error(w, "simulated failure", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, "success")
}

// handleStats reports how many requests the server has seen.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `{"requests":%d}`, s.requests.Load())
}
