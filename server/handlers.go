package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/ByLCY/sitelen/binding"
	"github.com/ByLCY/sitelen/grammar"
	"github.com/ByLCY/sitelen/layout"
	"github.com/ByLCY/sitelen/pipeline"
	canvasrenderer "github.com/ByLCY/sitelen/renderer/canvas"
	"github.com/ByLCY/sitelen/renderer/graphviz"
)

// request is the JSON body shared by all /api endpoints.
type request struct {
	Text        string   `json:"text"`
	TargetRatio *float64 `json:"target_ratio,omitempty"`
	Mode        string   `json:"mode,omitempty"`
	Data        any      `json:"data,omitempty"`
}

type parseResponse struct {
	Sentences []grammar.Sentence `json:"sentences"`
	Stats     pipeline.Stats     `json:"stats"`
	DOT       string             `json:"dot,omitempty"`
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	req, runner, ok := s.decode(w, r)
	if !ok {
		return
	}
	sentences, stats, err := runner.Parse(r.Context(), req.Text)
	if err != nil {
		s.fail(w, err)
		return
	}
	resp := parseResponse{Sentences: sentences, Stats: stats}
	if r.URL.Query().Get("dot") == "true" {
		resp.DOT = graphviz.ToDOT(sentences)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	req, runner, ok := s.decode(w, r)
	if !ok {
		return
	}
	if r.URL.Query().Get("all") == "true" {
		candidates, err := runner.Candidates(r.Context(), req.Text)
		if err != nil {
			s.fail(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"candidates": candidates})
		return
	}
	result, err := runner.Run(r.Context(), req.Text)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	opts := s.opts.Render
	if v := r.URL.Query().Get("format"); v != "" {
		f, err := canvasrenderer.ParseFormat(v)
		if err != nil {
			jsonError(w, err.Error(), http.StatusBadRequest)
			return
		}
		opts.Format = f
	}

	req, runner, ok := s.decode(w, r)
	if !ok {
		return
	}
	result, err := runner.Run(r.Context(), req.Text)
	if err != nil {
		s.fail(w, err)
		return
	}
	out, err := canvasrenderer.NewRenderer(opts).Render(result.Document)
	if err != nil {
		s.fail(w, err)
		return
	}

	switch opts.Format {
	case canvasrenderer.FormatPDF:
		w.Header().Set("Content-Type", "application/pdf")
	default:
		w.Header().Set("Content-Type", "image/svg+xml")
	}
	w.WriteHeader(http.StatusOK)
	w.Write(out)
}

// decode reads the request body, interpolates data into the text and returns a
// runner configured with the per-request overrides.
func (s *Server) decode(w http.ResponseWriter, r *http.Request) (request, *pipeline.Runner, bool) {
	var req request
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&req); err != nil {
		jsonError(w, "invalid JSON body: "+err.Error(), http.StatusBadRequest)
		return req, nil, false
	}
	if req.Data != nil {
		req.Text = binding.Interpolate(req.Text, req.Data)
	}

	runner := *s.runner
	if req.TargetRatio != nil {
		if *req.TargetRatio <= 0 {
			jsonError(w, fmt.Sprintf("target_ratio must be positive, got %g", *req.TargetRatio), http.StatusBadRequest)
			return req, nil, false
		}
		runner.Selector.Target = *req.TargetRatio
	}
	if mode := strings.TrimSpace(req.Mode); mode != "" {
		m, err := layout.ParseMode(mode)
		if err != nil {
			jsonError(w, err.Error(), http.StatusBadRequest)
			return req, nil, false
		}
		runner.Selector.Mode = m
	}
	return req, &runner, true
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	code := statusFor(err)
	if code >= http.StatusInternalServerError {
		s.log.Error("request failed", "err", err)
	}
	jsonError(w, err.Error(), code)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, layout.ErrEmptyInput), errors.Is(err, layout.ErrTooManyUnits):
		return http.StatusUnprocessableEntity
	case errors.Is(err, layout.ErrNoCandidates):
		return http.StatusConflict
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}
