package http

import (
	"encoding/json"
	"html/template"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"

	"healthdash/internal/analytics"
)

// pageConfig is the blob handed to the front-end script: dropdown options
// and the slider calibration.
type pageConfig struct {
	Genders    []string               `json:"genders"`
	Conditions []string               `json:"conditions"`
	Slider     analytics.SliderConfig `json:"slider"`
}

// handleIndex renders the dashboard page with the summary stats and
// control options baked in.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if s.templates == nil {
		slog.ErrorContext(r.Context(), "Templates not loaded", "url", r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	cfg := pageConfig{
		Genders:    s.table.Genders(),
		Conditions: s.table.Conditions(),
		Slider:     s.slider,
	}
	cfgJSON, err := json.Marshal(cfg)
	if err != nil {
		slog.ErrorContext(r.Context(), "Page config marshal failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	data := struct {
		Records        string
		AverageBilling string
		Genders        []string
		Conditions     []string
		ConfigJSON     template.JS
	}{
		Records:        strconv.Itoa(s.summary.Records),
		AverageBilling: strconv.FormatFloat(s.summary.AverageBilling, 'f', 2, 64),
		Genders:        cfg.Genders,
		Conditions:     cfg.Conditions,
		ConfigJSON:     template.JS(cfgJSON),
	}

	if err := s.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Index template execution failed", "error", err, "template", "index.html")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, s.summary)
}

func (s *Server) handleAgeFigure(w http.ResponseWriter, r *http.Request) {
	gender := queryParam(r, "gender")
	s.serveFigure(w, r, "age|"+gender, func() analytics.Figure {
		return s.charts.AgeDistribution(gender)
	})
}

func (s *Server) handleConditionFigure(w http.ResponseWriter, r *http.Request) {
	gender := queryParam(r, "gender")
	s.serveFigure(w, r, "conditions|"+gender, func() analytics.Figure {
		return s.charts.ConditionBreakdown(gender)
	})
}

func (s *Server) handleInsuranceFigure(w http.ResponseWriter, r *http.Request) {
	gender := queryParam(r, "gender")
	s.serveFigure(w, r, "insurance|"+gender, func() analytics.Figure {
		return s.charts.InsuranceComparison(gender)
	})
}

func (s *Server) handleBillingFigure(w http.ResponseWriter, r *http.Request) {
	gender := queryParam(r, "gender")

	// The slider always has a value; a missing, garbled, or non-finite
	// parameter falls back to the startup default (the median).
	ceiling := s.slider.Default
	if v := queryParam(r, "ceiling"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
			ceiling = f
		} else {
			slog.WarnContext(r.Context(), "Invalid ceiling parameter", "value", v)
		}
	}

	key := "billing|" + gender + "|" + strconv.FormatFloat(ceiling, 'g', -1, 64)
	s.serveFigure(w, r, key, func() analytics.Figure {
		return s.charts.BillingDistribution(gender, ceiling)
	})
}

func (s *Server) handleAdmissionsFigure(w http.ResponseWriter, r *http.Request) {
	kind := queryParam(r, "kind")
	condition := queryParam(r, "condition")
	s.serveFigure(w, r, "admissions|"+kind+"|"+condition, func() analytics.Figure {
		return s.charts.AdmissionTrends(kind, condition)
	})
}

// serveFigure answers from the figure cache when possible, otherwise
// computes, caches, and responds.
func (s *Server) serveFigure(w http.ResponseWriter, r *http.Request, key string, build func() analytics.Figure) {
	if fig, found := s.figureCache.Get(key); found {
		slog.DebugContext(r.Context(), "Figure cache hit", "key", key)
		writeJSON(w, r, fig)
		return
	}
	fig := build()
	s.figureCache.Set(key, fig)
	writeJSON(w, r, fig)
}

func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.ErrorContext(r.Context(), "Response encode failed", "error", err, "url", r.URL.Path)
	}
}

func queryParam(r *http.Request, name string) string {
	return strings.TrimSpace(r.URL.Query().Get(name))
}
