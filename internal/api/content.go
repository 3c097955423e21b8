package api

import (
	"encoding/json"
	"net/http"

	"github.com/devseo/dashboard-gateway/internal/devseo"
	"github.com/devseo/dashboard-gateway/internal/view"
)

func (s *Server) optimizeContent(w http.ResponseWriter, r *http.Request) {
	var req devseo.OptimizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	res, err := s.queries.OptimizeContent(r.Context(), req)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) dashboard(w http.ResponseWriter, r *http.Request) {
	websites, err := s.queries.Websites(r.Context())
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	scans, err := s.queries.Scans(r.Context(), "")
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view.NewDashboardPage(websites, scans))
}

func (s *Server) billingPlans(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, view.Plans())
}
