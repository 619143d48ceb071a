// Package httpapi serves the Decipline JSON API of the development server.
package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/decipline/internal/logging"
	"github.com/dmitrijs2005/decipline/internal/server/services"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Deps are the collaborators of the router.
type Deps struct {
	Users  *services.UserService
	Tasks  *services.TaskService
	Advice *services.AdviceService
	Logger logging.Logger
}

type handler struct {
	users  *services.UserService
	tasks  *services.TaskService
	advice *services.AdviceService
	log    logging.Logger
}

// NewRouter wires every endpoint. Routes other than /auth/* require a
// bearer token.
func NewRouter(d Deps) http.Handler {
	if d.Logger == nil {
		d.Logger = logging.NewNop()
	}
	h := &handler{users: d.Users, tasks: d.Tasks, advice: d.Advice, log: d.Logger}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestID)
	r.Use(accessLog(d.Logger))

	r.Post("/auth/signup", h.signup)
	r.Post("/auth/login", h.login)

	r.Group(func(r chi.Router) {
		r.Use(h.authenticate)

		r.Get("/me", h.me)
		r.Put("/me/profile", h.updateProfile)

		r.Get("/tasks", h.listTasks)
		r.Post("/tasks/generate", h.generateTasks)
		r.Patch("/tasks/{id}", h.updateTask)

		r.Post("/billing/upgrade", h.upgrade)
		r.Get("/ai/advice", h.getAdvice)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeDetail(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeDetail(w, http.StatusMethodNotAllowed, "Method not allowed")
	})
	return r
}
