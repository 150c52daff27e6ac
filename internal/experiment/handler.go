package experiment

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/okdaichi/broadcastsim/internal/routecache"
	"github.com/okdaichi/broadcastsim/internal/topology"
)

// Server holds the in-memory topology and route cache state the HTTP
// control plane operates over, guarded by a RWMutex exactly like the
// teacher's topology.Topology struct.
type Server struct {
	mu    sync.RWMutex
	topo  *topology.Topology
	cache *routecache.RouteCache
}

// NewServer returns an empty control-plane Server; a topology must be
// generated or loaded before /run will succeed.
func NewServer() *Server {
	return &Server{}
}

// RegisterHandlers wires every control-plane endpoint onto mux, mirroring
// topology.RegisterHandlers(mux, topo) in shape.
func (s *Server) RegisterHandlers(mux *http.ServeMux) {
	mux.HandleFunc("/topology/generate", s.generateHandler)
	mux.HandleFunc("/topology/load", s.loadHandler)
	mux.HandleFunc("/topology", s.topologyHandler)
	mux.HandleFunc("/run", s.runHandler)
	mux.HandleFunc("/status", s.statusHandler)
}

func jsonError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

type generateRequest struct {
	N int `json:"n"`
	C int `json:"c"`
	F int `json:"f"`
}

func (s *Server) generateHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		jsonError(w, http.StatusMethodNotAllowed, "POST only")
		return
	}
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, http.StatusBadRequest, fmt.Sprintf("decode request: %v", err))
		return
	}

	topo, ok := topology.Generate(req.N, req.C, req.F)
	if !ok {
		jsonError(w, http.StatusUnprocessableEntity, "infeasible topology configuration")
		return
	}

	s.mu.Lock()
	s.topo = topo
	s.mu.Unlock()

	writeTopologyJSON(w, topo)
}

type loadRequest struct {
	Path string `json:"path"`
	F    int    `json:"f"`
}

func (s *Server) loadHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		jsonError(w, http.StatusMethodNotAllowed, "POST only")
		return
	}
	var req loadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, http.StatusBadRequest, fmt.Sprintf("decode request: %v", err))
		return
	}

	topo, ok := topology.Parse(req.Path, req.F)
	if !ok {
		jsonError(w, http.StatusUnprocessableEntity, "failed to parse topology file")
		return
	}

	s.mu.Lock()
	s.topo = topo
	s.mu.Unlock()

	writeTopologyJSON(w, topo)
}

func (s *Server) topologyHandler(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	topo := s.topo
	s.mu.RUnlock()

	if topo == nil {
		jsonError(w, http.StatusNotFound, "no topology loaded")
		return
	}
	writeTopologyJSON(w, topo)
}

type topologyResponse struct {
	N      int      `json:"n"`
	C      int      `json:"c"`
	Edges  [][2]int `json:"edges"`
	Faulty []int    `json:"faulty"`
}

func writeTopologyJSON(w http.ResponseWriter, topo *topology.Topology) {
	edges := make([][2]int, 0, len(topo.GetEdges()))
	for _, e := range topo.GetEdges() {
		edges = append(edges, [2]int{e.U, e.V})
	}
	resp := topologyResponse{
		N:      topo.GetN(),
		C:      topo.GetC(),
		Edges:  edges,
		Faulty: topo.GetFaulty(),
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

type runRequest struct {
	Algorithm string `json:"algorithm"`
	Method    string `json:"method"`
	Origin    int    `json:"origin"`
	Repeat    int    `json:"repeat"`
}

func (s *Server) runHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		jsonError(w, http.StatusMethodNotAllowed, "POST only")
		return
	}
	var req runRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, http.StatusBadRequest, fmt.Sprintf("decode request: %v", err))
		return
	}

	s.mu.RLock()
	topo := s.topo
	s.mu.RUnlock()
	if topo == nil {
		jsonError(w, http.StatusConflict, "no topology loaded")
		return
	}

	s.mu.Lock()
	if s.cache == nil || req.Algorithm == "routed" {
		cache, err := routecache.New(routecache.Method(req.Method))
		if err != nil && req.Algorithm == "routed" {
			s.mu.Unlock()
			jsonError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.cache = cache
	}
	s.mu.Unlock()

	runner := NewRunner(topo)
	ctx := r.Context()

	if req.Repeat > 1 {
		results, err := runner.RunBatch(ctx, req.Algorithm, routecache.Method(req.Method), req.Origin, req.Repeat)
		if err != nil {
			jsonError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(results)
		return
	}

	result, err := runner.RunOnce(ctx, req.Algorithm, routecache.Method(req.Method), req.Origin, "run-1")
	if err != nil {
		jsonError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

type statusResponse struct {
	Status         string `json:"status"`
	TopologyLoaded bool   `json:"topology_loaded"`
	CacheHits      int    `json:"cache_hits"`
	CacheMisses    int    `json:"cache_misses"`
}

func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	topo := s.topo
	cache := s.cache
	s.mu.RUnlock()

	status := "healthy"
	if topo == nil {
		status = "degraded"
	}

	var hits, misses int
	if cache != nil {
		hits, misses = cache.Stats()
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(statusResponse{
		Status:         status,
		TopologyLoaded: topo != nil,
		CacheHits:      hits,
		CacheMisses:    misses,
	})
}
