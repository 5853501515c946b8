package server

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/rickgao/debtwatch/internal/export"
	"github.com/rickgao/debtwatch/internal/model"
	"github.com/rickgao/debtwatch/internal/pipeline"
	"github.com/rickgao/debtwatch/internal/version"
)

// errorResponse is the body of every non-2xx JSON response.
type errorResponse struct {
	Error string `json:"error"`
}

type healthResponse struct {
	Status  string       `json:"status"` // ok | degraded | loading
	Version version.Info `json:"version"`
	Loaded  bool         `json:"loaded"`
	Warning string       `json:"warning,omitempty"`
}

type datasetResponse struct {
	Dataset model.CanonicalDataset `json:"dataset"`
	Report  pipeline.LoadReport    `json:"report"`
}

type seriesResponse struct {
	Kind   model.SeriesKind  `json:"kind"`
	Window model.WindowToken `json:"window"`
	Points model.TimeSeries  `json:"points"`
}

type reportResponse struct {
	pipeline.LoadReport
	Error string `json:"error,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status:  "loading",
		Version: version.Get(),
	}
	if report, ok := s.svc.LastReport(); ok {
		resp.Loaded = true
		resp.Status = "ok"
		resp.Warning = report.Warning
		if report.Degraded {
			resp.Status = "degraded"
		}
	}
	render.JSON(w, r, resp)
}

func (s *Server) handleDataset(w http.ResponseWriter, r *http.Request) {
	d, ok := s.svc.CanonicalDataset()
	if !ok {
		s.renderError(w, r, http.StatusServiceUnavailable, pipeline.ErrNotLoaded)
		return
	}
	report, _ := s.svc.LastReport()
	render.JSON(w, r, datasetResponse{Dataset: d, Report: report})
}

func (s *Server) handleSeries(w http.ResponseWriter, r *http.Request) {
	kind := model.SeriesKind(chi.URLParam(r, "kind"))

	token := model.DefaultWindow
	if raw := r.URL.Query().Get("window"); raw != "" {
		parsed, err := model.ParseWindowToken(raw)
		if err != nil {
			s.renderError(w, r, http.StatusBadRequest, err)
			return
		}
		token = parsed
	}

	series, err := s.svc.FilteredSeries(kind, token)
	if err != nil {
		s.renderError(w, r, statusFor(err), err)
		return
	}
	render.JSON(w, r, seriesResponse{Kind: kind, Window: token, Points: series})
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	m, err := s.svc.DerivedMetrics()
	if err != nil {
		s.renderError(w, r, statusFor(err), err)
		return
	}
	render.JSON(w, r, m)
}

func (s *Server) handleEstimate(w http.ResponseWriter, r *http.Request) {
	est, ok := s.svc.Estimate()
	if !ok {
		s.renderError(w, r, http.StatusServiceUnavailable, errEstimateInactive)
		return
	}
	render.JSON(w, r, est)
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	report, err := s.svc.Load(r.Context())
	if err != nil {
		s.renderError(w, r, http.StatusServiceUnavailable, err)
		return
	}

	resp := reportResponse{LoadReport: report}
	if report.Failure != nil {
		resp.Error = report.Failure.Error()
	}
	render.JSON(w, r, resp)
}

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	rows, ok := s.exportRows(w, r)
	if !ok {
		return
	}

	opts := export.CSVOptions{BOMPrefix: s.cfg.BOMPrefix}
	if r.URL.Query().Get("human") == "1" {
		opts.Human = s.human
		opts.Comma = ';'
	}

	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, rows, opts); err != nil {
		s.renderError(w, r, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", attachment("csv"))
	w.Write(buf.Bytes())
}

func (s *Server) handleExportXLSX(w http.ResponseWriter, r *http.Request) {
	rows, ok := s.exportRows(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := export.WriteXLSX(&buf, rows); err != nil {
		s.renderError(w, r, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", attachment("xlsx"))
	w.Write(buf.Bytes())
}

func (s *Server) exportRows(w http.ResponseWriter, r *http.Request) ([]export.Row, bool) {
	d, ok := s.svc.CanonicalDataset()
	if !ok {
		s.renderError(w, r, http.StatusServiceUnavailable, pipeline.ErrNotLoaded)
		return nil, false
	}
	return export.Rows(d, s.svc.AssumedInterestRate()), true
}

func attachment(ext string) string {
	return fmt.Sprintf(`attachment; filename="public-debt.%s"`, ext)
}

var errEstimateInactive = errors.New("real-time estimate inactive")

func (s *Server) renderError(w http.ResponseWriter, r *http.Request, status int, err error) {
	if status >= http.StatusInternalServerError && status != http.StatusServiceUnavailable {
		s.logger.Error("request failed", "path", r.URL.Path, "error", err)
	}
	render.Status(r, status)
	render.JSON(w, r, errorResponse{Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, pipeline.ErrNotLoaded):
		return http.StatusServiceUnavailable
	case errors.Is(err, model.ErrUnknownSeries):
		return http.StatusNotFound
	case errors.Is(err, model.ErrUnknownWindow):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
