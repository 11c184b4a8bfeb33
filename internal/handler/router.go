package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	interviewHandler "github.com/careerlift/resume-coach/backend/internal/handler/interview"
	middlewarePkg "github.com/careerlift/resume-coach/backend/internal/middleware"
	interviewService "github.com/careerlift/resume-coach/backend/internal/service/interview"
	"github.com/careerlift/resume-coach/backend/pkg/utils"
)

// NewRouter wires HTTP routes to the interview orchestrator.
func NewRouter(interviewSvc *interviewService.Service) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	r.Route("/api", func(api chi.Router) {
		interviewHandler.New(interviewSvc).RegisterRoutes(api)

		api.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})
	})

	return r
}
