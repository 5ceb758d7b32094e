package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) getCollections(w http.ResponseWriter, r *http.Request) {
	collections, err := s.collections.List(r.Context(), s.ownerID(r))
	if err != nil {
		s.respondDomainError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusOK, collections)
}

func (s *Server) getCollection(w http.ResponseWriter, r *http.Request) {
	collection, err := s.collections.Get(r.Context(), s.ownerID(r), chi.URLParam(r, "id"))
	if err != nil {
		s.respondDomainError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusOK, collection)
}

func (s *Server) postCollection(w http.ResponseWriter, r *http.Request) {
	var req collectionRequest
	if err := decodeJSON(r, &req); err != nil {
		s.respondDomainError(w, r, err)
		return
	}

	collection, err := s.collections.Create(r.Context(), s.ownerID(r), req.Title, req.Description)
	if err != nil {
		s.respondDomainError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusCreated, collection)
}

func (s *Server) putCollection(w http.ResponseWriter, r *http.Request) {
	var req collectionRequest
	if err := decodeJSON(r, &req); err != nil {
		s.respondDomainError(w, r, err)
		return
	}

	collection, err := s.collections.Update(r.Context(), s.ownerID(r), chi.URLParam(r, "id"), req.Title, req.Description)
	if err != nil {
		s.respondDomainError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusOK, collection)
}

func (s *Server) deleteCollection(w http.ResponseWriter, r *http.Request) {
	err := s.collections.Delete(r.Context(), s.ownerID(r), chi.URLParam(r, "id"))
	if err != nil {
		s.respondDomainError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusOK, messageResponse{Message: "Collection deleted successfully"})
}
