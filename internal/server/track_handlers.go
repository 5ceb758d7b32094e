package server

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"musichub/internal/models"
)

func (s *Server) postCollectionTrack(w http.ResponseWriter, r *http.Request) {
	var descriptor models.TrackDescriptor
	if err := decodeJSON(r, &descriptor); err != nil {
		s.respondDomainError(w, r, err)
		return
	}

	collection, err := s.collections.AddTrack(r.Context(), s.ownerID(r), chi.URLParam(r, "id"), &descriptor)
	if err != nil {
		s.respondDomainError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusOK, collection)
}

func (s *Server) deleteCollectionTrack(w http.ResponseWriter, r *http.Request) {
	collection, err := s.collections.RemoveTrack(r.Context(), s.ownerID(r), chi.URLParam(r, "id"), chi.URLParam(r, "trackId"))
	if err != nil {
		s.respondDomainError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusOK, collection)
}

func (s *Server) getSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		s.respondJSON(w, http.StatusBadRequest, messageResponse{Message: "Search query is required"})
		return
	}

	results, err := s.catalog.Search(r.Context(), query, limitParam(r))
	if err != nil {
		s.respondDomainError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusOK, results)
}

func (s *Server) getNewReleases(w http.ResponseWriter, r *http.Request) {
	results, err := s.catalog.NewReleases(r.Context(), limitParam(r))
	if err != nil {
		s.respondDomainError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusOK, results)
}

func (s *Server) getTrack(w http.ResponseWriter, r *http.Request) {
	descriptor, err := s.catalog.Track(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.respondDomainError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusOK, descriptor)
}

// limitParam parses the optional limit query parameter. The catalog clamps
// the value; zero means "use the default".
func limitParam(r *http.Request) int {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	return limit
}
