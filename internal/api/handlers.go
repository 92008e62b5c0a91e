package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ihumphrey-usgs/csm"
	"github.com/ihumphrey-usgs/csm/correlation"
	"github.com/ihumphrey-usgs/csm/internal/metrics"
	"github.com/ihumphrey-usgs/csm/internal/registry"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListModels(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"models": s.registry.List()})
}

func (s *Server) handleDescribeModel(w http.ResponseWriter, r *http.Request) {
	info, err := s.registry.Describe(chi.URLParam(r, "model"))
	if err != nil {
		s.writeModelError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

func (s *Server) handleGetGroup(w http.ResponseWriter, r *http.Request) {
	param, ok := pathIndex(w, r, "param")
	if !ok {
		return
	}

	group, err := s.registry.Group(chi.URLParam(r, "model"), param)
	if err != nil {
		s.writeModelError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"parameter": param,
		"group":     group,
		"assigned":  group != correlation.Unassigned,
	})
}

func (s *Server) handleSetGroup(w http.ResponseWriter, r *http.Request) {
	param, ok := pathIndex(w, r, "param")
	if !ok {
		return
	}

	var req struct {
		Group int `json:"group"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	if err := s.registry.SetGroup(chi.URLParam(r, "model"), param, req.Group); err != nil {
		s.writeModelError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"parameter": param, "group": req.Group})
}

func (s *Server) handleGetCurve(w http.ResponseWriter, r *http.Request) {
	group, ok := pathIndex(w, r, "group")
	if !ok {
		return
	}

	curve, err := s.registry.Curve(chi.URLParam(r, "model"), group)
	if err != nil {
		s.writeModelError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"group":        group,
		"times":        curve.Times,
		"correlations": curve.Correlations,
	})
}

func (s *Server) handleSetCurve(w http.ResponseWriter, r *http.Request) {
	group, ok := pathIndex(w, r, "group")
	if !ok {
		return
	}

	var req struct {
		Times        []float64 `json:"times"`
		Correlations []float64 `json:"correlations"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	if err := s.registry.SetCurve(chi.URLParam(r, "model"), group, req.Correlations, req.Times); err != nil {
		s.writeModelError(w, err)
		return
	}
	metrics.CurveInstalled()
	writeJSON(w, http.StatusOK, map[string]any{"group": group, "breakpoints": len(req.Times)})
}

func (s *Server) handleCoefficient(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "model")

	group, err := strconv.Atoi(r.URL.Query().Get("group"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "group query parameter must be an integer"})
		return
	}
	deltaTime, err := strconv.ParseFloat(r.URL.Query().Get("dt"), 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "dt query parameter must be a number"})
		return
	}

	strategy, err := s.registry.Strategy(name)
	if err != nil {
		s.writeModelError(w, err)
		return
	}

	start := time.Now()
	coeff, err := s.registry.Coefficient(name, group, deltaTime)
	duration := time.Since(start)
	if err != nil {
		metrics.ObserveEvaluation(strategy, duration, metrics.OutcomeError)
		s.writeModelError(w, err)
		return
	}
	metrics.ObserveEvaluation(strategy, duration, metrics.OutcomeSuccess)
	s.latencies.Observe(duration)
	if count := s.latencies.Count(); count >= 100 && count%100 == 0 {
		s.logger.Info("evaluation latency", slog.Duration("p95", s.latencies.Percentile(95)), slog.Int("samples", count))
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"group":       group,
		"delta_time":  deltaTime,
		"coefficient": coeff,
	})
}

func (s *Server) handleMatrix(w http.ResponseWriter, r *http.Request) {
	deltaTime, err := strconv.ParseFloat(r.URL.Query().Get("dt"), 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "dt query parameter must be a number"})
		return
	}

	m, err := s.registry.Matrix(chi.URLParam(r, "model"), deltaTime)
	if err != nil {
		s.writeModelError(w, err)
		return
	}

	n, _ := m.Dims()
	rows := make([][]float64, n)
	for i := 0; i < n; i++ {
		rows[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			rows[i][j] = m.At(i, j)
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"size":         n,
		"delta_time":   deltaTime,
		"coefficients": rows,
	})
}

// writeModelError maps registry and model failures onto HTTP statuses.
func (s *Server) writeModelError(w http.ResponseWriter, err error) {
	if errors.Is(err, registry.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}

	kind := csm.KindOf(err)
	status := http.StatusInternalServerError
	switch kind {
	case csm.ErrorIndexOutOfRange:
		status = http.StatusBadRequest
	case csm.ErrorBounds:
		status = http.StatusUnprocessableEntity
	case csm.ErrorUnset:
		status = http.StatusConflict
	}
	if kind != csm.ErrorUnknown {
		metrics.OperationRejected(string(kind))
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("model operation failed", slog.Any("error", err))
	}

	writeJSON(w, status, map[string]string{"error": err.Error(), "kind": string(kind)})
}

func pathIndex(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	index, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": name + " must be an integer"})
		return 0, false
	}
	return index, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
