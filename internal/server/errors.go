package server

import (
	"errors"
	"net/http"

	"musichub/internal/shared"
)

// respondDomainError translates a domain failure into an HTTP status and a
// user-facing message. This is the only place that mapping happens. Unhandled
// errors are logged with their internals and surfaced as a generic 500.
func (s *Server) respondDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, shared.ErrDuplicateAccount):
		s.respondJSON(w, http.StatusBadRequest, messageResponse{Message: "Account already exists"})
	case errors.Is(err, shared.ErrInvalidCredentials):
		s.respondJSON(w, http.StatusBadRequest, messageResponse{Message: "Invalid credentials"})
	case errors.Is(err, shared.ErrTrackAlreadyAdded):
		s.respondJSON(w, http.StatusBadRequest, messageResponse{Message: "Track already in collection"})
	case errors.Is(err, shared.ErrInvalidInput), errors.Is(err, shared.ErrMissingArgument):
		s.respondJSON(w, http.StatusBadRequest, messageResponse{Message: err.Error()})
	case errors.Is(err, shared.ErrNotAuthenticated):
		s.respondJSON(w, http.StatusUnauthorized, messageResponse{Message: "Invalid access token"})
	case errors.Is(err, shared.ErrNotFound):
		s.respondJSON(w, http.StatusNotFound, messageResponse{Message: "Collection not found"})
	case errors.Is(err, shared.ErrSearchUnavailable):
		s.logger.Error("catalog request failed", "path", r.URL.Path, "error", err)
		s.respondJSON(w, http.StatusInternalServerError, messageResponse{Message: "Failed to search tracks"})
	default:
		s.logger.Error("unhandled error", "path", r.URL.Path, "error", err)
		s.respondJSON(w, http.StatusInternalServerError, messageResponse{Message: "Server error"})
	}
}
