package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/devseo/dashboard-gateway/internal/devseo"
	"github.com/devseo/dashboard-gateway/internal/seo"
	"github.com/devseo/dashboard-gateway/internal/view"
)

type startScanRequest struct {
	WebsiteID string `json:"website_id"`
	MaxPages  *int   `json:"max_pages"`
}

func (s *Server) listScans(w http.ResponseWriter, r *http.Request) {
	scans, err := s.queries.Scans(r.Context(), r.URL.Query().Get("website_id"))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	rows := make([]view.ScanRow, 0, len(scans))
	for _, scan := range scans {
		rows = append(rows, view.NewScanRow(scan))
	}
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) startScan(w http.ResponseWriter, r *http.Request) {
	var req startScanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.WebsiteID == "" {
		writeError(w, http.StatusBadRequest, "missing website_id")
		return
	}
	maxPages := s.cfg.Scan.MaxPagesDefault
	if req.MaxPages != nil {
		maxPages = *req.MaxPages
	}
	if maxPages <= 0 {
		writeError(w, http.StatusBadRequest, devseo.ErrInvalidMaxPages.Error())
		return
	}
	res, err := s.queries.StartScan(r.Context(), req.WebsiteID, maxPages)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	if s.tracker != nil {
		s.tracker.Track(res.ID, seo.ScanStatus(res.Status))
	}
	writeJSON(w, http.StatusAccepted, res)
}

// scanReport serves the report view. Non-terminal scans are handed to the
// tracker so their cached report keeps refreshing until they settle.
func (s *Server) scanReport(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "scan_id")
	report, err := s.queries.ScanReport(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	if s.tracker != nil {
		s.tracker.Track(report.ID, report.Status)
	}
	plain := r.URL.Query().Get("plain") == "1"
	writeJSON(w, http.StatusOK, view.NewReportPage(report, plain))
}

func (s *Server) scanPages(w http.ResponseWriter, r *http.Request) {
	pages, err := s.queries.ScanPages(r.Context(), chi.URLParam(r, "scan_id"))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	views := make([]view.PageView, 0, len(pages))
	for _, p := range pages {
		views = append(views, view.NewPageView(p))
	}
	writeJSON(w, http.StatusOK, views)
}
