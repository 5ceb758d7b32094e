package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"musichub/internal/shared"
)

// respondJSON writes a JSON response with the given status code.
func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}

// decodeJSON parses the request body into dst. A body that fails to parse is
// an input error, not a server error.
func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: malformed request body", shared.ErrInvalidInput)
	}
	return nil
}
