package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/matzehuels/sparsestress/pkg/buildinfo"
	"github.com/matzehuels/sparsestress/pkg/cache"
	"github.com/matzehuels/sparsestress/pkg/errors"
	"github.com/matzehuels/sparsestress/pkg/graph"
	"github.com/matzehuels/sparsestress/pkg/pipeline"
	"github.com/matzehuels/sparsestress/pkg/stress"
)

// =============================================================================
// Request / Response Types
// =============================================================================

// LayoutRequest is the body of POST /v1/layouts.
type LayoutRequest struct {
	Graph   graph.Document   `json:"graph"`
	Options pipeline.Options `json:"options"`
}

// LayoutResponse is the result of POST /v1/layouts.
type LayoutResponse struct {
	ID         string            `json:"id"`
	Layout     graph.Embedding   `json:"layout"`
	Pivots     []int             `json:"pivots"`
	Iterations int               `json:"iterations"`
	Converged  bool              `json:"converged"`
	Stress     *stress.Report    `json:"stress,omitempty"`
	Artifacts  map[string][]byte `json:"artifacts,omitempty"`
	Stats      LayoutStats       `json:"stats"`
}

// LayoutStats describes how a layout response was produced.
type LayoutStats struct {
	Nodes      int     `json:"nodes"`
	Edges      int     `json:"edges"`
	Cached     bool    `json:"cached"`
	DurationMS float64 `json:"duration_ms"`
}

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	RequestID string `json:"request_id,omitempty"`
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: buildinfo.Version,
		Commit:  buildinfo.Commit,
	})
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req LayoutRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			respondError(w, r, http.StatusRequestEntityTooLarge, "BODY_TOO_LARGE", "request body too large")
			return
		}
		respondError(w, r, http.StatusBadRequest, string(errors.ErrCodeInvalidInput), "invalid request body: "+err.Error())
		return
	}

	g, err := req.Graph.ToGraph()
	if err != nil {
		s.respondErr(w, r, err)
		return
	}
	if s.cfg.MaxNodes > 0 && g.NodeCount() > s.cfg.MaxNodes {
		s.respondErr(w, r, errors.New(errors.ErrCodeCapacity,
			"graph has %d nodes, this server accepts at most %d", g.NodeCount(), s.cfg.MaxNodes))
		return
	}

	opts := req.Options
	render := len(opts.Formats) > 0
	// Requests never name server-side files.
	opts.Input = ""
	opts.Weighted = g.IsWeighted()
	opts.Logger = s.logger.With("request_id", RequestID(r.Context()))
	if err := opts.ValidateAndSetDefaults(); err != nil {
		s.respondErr(w, r, err)
		return
	}
	if err := opts.ValidateCapacity(g.NodeCount()); err != nil {
		s.respondErr(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.RequestTimeout)
	defer cancel()

	runner := s.runnerFor(r)
	res, hit, err := runner.GenerateLayoutWithCacheInfo(ctx, g, opts)
	if err != nil {
		s.respondErr(w, r, err)
		return
	}

	resp := LayoutResponse{
		ID:         RequestID(r.Context()),
		Layout:     graph.Embed(g, res.Layout, opts.Factor),
		Pivots:     res.Pivots,
		Iterations: res.Iterations,
		Converged:  res.Converged,
		Stress:     res.Stress,
	}
	if render {
		resp.Artifacts, err = runner.Render(ctx, g, res.Layout, opts)
		if err != nil {
			s.respondErr(w, r, err)
			return
		}
	}
	resp.Stats = LayoutStats{
		Nodes:      g.NodeCount(),
		Edges:      g.EdgeCount(),
		Cached:     hit,
		DurationMS: float64(time.Since(start).Microseconds()) / 1000,
	}

	respondJSON(w, http.StatusOK, resp)
}

// runnerFor returns the runner for the client of r. Requests with a
// client id share the backend but not the key space.
func (s *Server) runnerFor(r *http.Request) *pipeline.Runner {
	client := r.Header.Get(HeaderClientID)
	if client == "" {
		return s.runner
	}
	return &pipeline.Runner{
		Cache:  s.runner.Cache,
		Keyer:  cache.NewScopedKeyer(s.runner.Keyer, cache.ClientPrefix(client)),
		Logger: s.runner.Logger,
	}
}

// =============================================================================
// Responses
// =============================================================================

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, r *http.Request, status int, code, msg string) {
	respondJSON(w, status, ErrorResponse{
		Error:     msg,
		Code:      code,
		RequestID: RequestID(r.Context()),
	})
}

// respondErr maps a pipeline error onto a status code. Server-side
// failures are logged, client errors are only returned.
func (s *Server) respondErr(w http.ResponseWriter, r *http.Request, err error) {
	status, code := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("layout failed", "id", RequestID(r.Context()), "error", err)
	}
	respondError(w, r, status, code, errors.UserMessage(err))
}

func statusFor(err error) (int, string) {
	switch {
	case stderrors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, string(errors.ErrCodeTimeout)
	case stderrors.Is(err, context.Canceled):
		return 499, "CANCELED"
	}

	code := errors.GetCode(err)
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidConfig, errors.ErrCodeInvalidGraph,
		errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidPath:
		return http.StatusBadRequest, string(code)
	case errors.ErrCodeCapacity:
		return http.StatusRequestEntityTooLarge, string(code)
	case errors.ErrCodeNumerical:
		return http.StatusUnprocessableEntity, string(code)
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented, string(code)
	case errors.ErrCodeTimeout:
		return http.StatusGatewayTimeout, string(code)
	case "":
		return http.StatusInternalServerError, string(errors.ErrCodeInternal)
	default:
		return http.StatusInternalServerError, string(code)
	}
}
