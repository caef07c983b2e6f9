// Package gateway exposes the training-program editor as an HTTP API. It
// fronts the remote backend with the query cache and the per-session draft
// overlay, so clients see drafts merged over server truth.
package gateway

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/claude/hypertroq/internal/account"
	"github.com/claude/hypertroq/internal/api"
	"github.com/claude/hypertroq/internal/overlay"
	"github.com/claude/hypertroq/internal/query"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	api     *api.Client
	store   *query.Store
	overlay *overlay.Store
	session *account.Session
	log     *slog.Logger
	router  chi.Router
}

// New creates a new Server with all routes configured.
func New(client *api.Client, store *query.Store, ov *overlay.Store, sess *account.Session, log *slog.Logger) *Server {
	s := &Server{
		api:     client,
		store:   store,
		overlay: ov,
		session: sess,
		log:     log,
		router:  chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	// Auth endpoints (no session required)
	s.router.Post("/api/v1/auth/login", s.handleLogin)
	s.router.Post("/api/v1/auth/register", s.handleRegister)
	s.router.Post("/api/v1/auth/logout", s.handleLogout)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Use(RequireSession(s.session))

		r.Get("/auth/me", s.handleMe)
		r.Post("/users/me/avatar", s.handleAvatarUpload)

		r.Route("/programs", func(r chi.Router) {
			r.Get("/", s.handleListPrograms)
			r.Post("/", s.handleCreateProgram)

			r.Route("/{pid}", func(r chi.Router) {
				r.Get("/", s.handleGetProgram)
				r.Put("/", s.handleUpdateProgram)
				r.Delete("/", s.handleDeleteProgram)
				r.Post("/clone", s.handleCloneProgram)
				r.Get("/stats", s.handleProgramStats)

				r.Post("/sessions", s.handleCreateSession)
				r.Route("/sessions/{sid}", func(r chi.Router) {
					r.Put("/", s.handleUpdateSession)
					r.Delete("/", s.handleDeleteSession)

					// Draft editor: reads and edits go through the
					// overlay, only save touches the backend.
					r.Get("/exercises", s.handleEditorResolve)
					r.Post("/exercises", s.handleEditorAdd)
					r.Patch("/exercises/{localID}", s.handleEditorUpdate)
					r.Delete("/exercises/{localID}", s.handleEditorRemove)
					r.Post("/reorder", s.handleEditorReorder)
					r.Get("/state", s.handleEditorState)
					r.Post("/save", s.handleEditorSave)
					r.Post("/discard", s.handleEditorDiscard)
				})
			})
		})

		r.Route("/exercises", func(r chi.Router) {
			r.Get("/", s.handleListExercises)
			r.Post("/", s.handleCreateExercise)
			r.Get("/{id}", s.handleGetExercise)
			r.Put("/{id}", s.handleUpdateExercise)
			r.Delete("/{id}", s.handleDeleteExercise)
		})
	})

	// Same-origin proxy for backend-hosted images.
	s.router.Get("/uploads/*", s.handleUploadProxy)
}
