package server

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"

	"musichub/internal/auth"
	"musichub/internal/repositories"
	"musichub/internal/services"
	"musichub/internal/shared"
)

// Server holds the dependencies shared by all request handlers.
type Server struct {
	logger      *log.Logger
	credentials *auth.CredentialStore
	issuer      *auth.Issuer
	collections *repositories.CollectionRepository
	catalog     services.Catalog
}

// Options contains the dependencies for creating a [Server].
type Options struct {
	Logger      *log.Logger
	Credentials *auth.CredentialStore
	Issuer      *auth.Issuer
	Collections *repositories.CollectionRepository
	Catalog     services.Catalog
}

// New creates a new [Server] with the provided dependencies.
func New(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	return &Server{
		logger:      opts.Logger,
		credentials: opts.Credentials,
		issuer:      opts.Issuer,
		collections: opts.Collections,
		catalog:     opts.Catalog,
	}
}

// Handler builds the chi router for the full REST surface. Account creation
// and sign-in are unauthenticated; everything else under /api requires a valid
// session token.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(s.logRequests, allowCORS)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.getHealth)
		r.Post("/auth/signup", s.postSignup)
		r.Post("/auth/signin", s.postSignin)

		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(s.issuer.JWTAuth()), s.requireAccount)

			r.Route("/collections", func(r chi.Router) {
				r.Get("/", s.getCollections)
				r.Post("/", s.postCollection)
				r.Get("/{id}", s.getCollection)
				r.Put("/{id}", s.putCollection)
				r.Delete("/{id}", s.deleteCollection)
				r.Post("/{id}/tracks", s.postCollectionTrack)
				r.Delete("/{id}/tracks/{trackId}", s.deleteCollectionTrack)
			})

			r.Get("/search", s.getSearch)
			r.Get("/search/new-releases", s.getNewReleases)
			r.Get("/tracks/{id}", s.getTrack)
		})
	})

	return r
}

func (s *Server) getHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, messageResponse{Message: "Server is running"})
}
