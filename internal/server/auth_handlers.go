package server

import (
	"net/http"

	"musichub/internal/models"
)

func (s *Server) postSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := decodeJSON(r, &req); err != nil {
		s.respondDomainError(w, r, err)
		return
	}

	account, err := s.credentials.Register(r.Context(), req.DisplayName, req.EmailAddress, req.SecretKey)
	if err != nil {
		s.respondDomainError(w, r, err)
		return
	}

	s.respondWithSession(w, r, http.StatusCreated, "Account created successfully", account)
}

func (s *Server) postSignin(w http.ResponseWriter, r *http.Request) {
	var req signinRequest
	if err := decodeJSON(r, &req); err != nil {
		s.respondDomainError(w, r, err)
		return
	}

	account, err := s.credentials.Verify(r.Context(), req.EmailAddress, req.SecretKey)
	if err != nil {
		s.respondDomainError(w, r, err)
		return
	}

	s.respondWithSession(w, r, http.StatusOK, "Sign in successful", account)
}

// respondWithSession issues a session token for the account and writes the
// auth response.
func (s *Server) respondWithSession(w http.ResponseWriter, r *http.Request, status int, message string, account *models.Account) {
	token, _, err := s.issuer.Issue(account)
	if err != nil {
		s.respondDomainError(w, r, err)
		return
	}

	s.respondJSON(w, status, authResponse{
		Message:     message,
		AccessToken: token,
		UserAccount: account.Public(),
	})
}
