package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/jwtauth/v5"

	"musichub/internal/auth"
)

type contextKey string

const claimsKey contextKey = "session-claims"

// requireAccount resolves the verified session token into account claims and
// stores them in the request context. Runs after [jwtauth.Verifier].
func (s *Server) requireAccount(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, _, err := jwtauth.FromContext(r.Context())
		if errors.Is(err, jwtauth.ErrNoTokenFound) {
			s.respondJSON(w, http.StatusUnauthorized, messageResponse{Message: "Access token required"})
			return
		}
		if err != nil || token == nil {
			s.respondJSON(w, http.StatusUnauthorized, messageResponse{Message: "Invalid access token"})
			return
		}

		claims, err := s.issuer.ClaimsFromToken(token)
		if err != nil {
			s.respondJSON(w, http.StatusUnauthorized, messageResponse{Message: "Invalid access token"})
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ownerID returns the acting account id resolved by requireAccount.
func (s *Server) ownerID(r *http.Request) string {
	claims, _ := r.Context().Value(claimsKey).(*auth.Claims)
	if claims == nil {
		return ""
	}
	return claims.AccountID
}

// logRequests logs each request with its status and duration.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// allowCORS mirrors the permissive CORS policy of the browser client's origin
// setup: any origin, the methods the API serves, and the auth header.
func allowCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
