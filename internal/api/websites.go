package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/devseo/dashboard-gateway/internal/devseo"
	"github.com/devseo/dashboard-gateway/internal/view"
)

type websiteRequest struct {
	URL string `json:"url"`
}

type verifyRequest struct {
	Method devseo.VerifyMethod `json:"method"`
}

func (s *Server) listWebsites(w http.ResponseWriter, r *http.Request) {
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
	writeJSON(w, http.StatusOK, view.NewWebsiteList(websites, scans))
}

func (s *Server) createWebsite(w http.ResponseWriter, r *http.Request) {
	var req websiteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if strings.TrimSpace(req.URL) == "" {
		writeError(w, http.StatusBadRequest, devseo.ErrEmptyURL.Error())
		return
	}
	site, err := s.queries.CreateWebsite(r.Context(), req.URL)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, view.NewWebsiteRow(site, nil))
}

func (s *Server) getWebsite(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "website_id")
	site, err := s.queries.Website(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	scans, err := s.queries.Scans(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view.NewWebsiteDetail(site, scans))
}

func (s *Server) updateWebsite(w http.ResponseWriter, r *http.Request) {
	var req websiteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if strings.TrimSpace(req.URL) == "" {
		writeError(w, http.StatusBadRequest, devseo.ErrEmptyURL.Error())
		return
	}
	site, err := s.queries.UpdateWebsite(r.Context(), chi.URLParam(r, "website_id"), req.URL)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view.NewWebsiteRow(site, nil))
}

func (s *Server) deleteWebsite(w http.ResponseWriter, r *http.Request) {
	res, err := s.queries.DeleteWebsite(r.Context(), chi.URLParam(r, "website_id"))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) verifyWebsite(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Method == "" {
		writeError(w, http.StatusBadRequest, "missing verification method")
		return
	}
	res, err := s.queries.VerifyWebsite(r.Context(), chi.URLParam(r, "website_id"), req.Method)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
