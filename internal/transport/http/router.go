package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/recaptcha-form/internal/application/submission"
	"github.com/recaptcha-form/internal/config"
	"github.com/recaptcha-form/internal/transport/http/handler"
	appmiddleware "github.com/recaptcha-form/internal/transport/http/middleware"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	Scorer   Scorer
	Notifier Notifier // nil disables notifications
}

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) (http.Handler, error) {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(appmiddleware.ClientIP)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	submissionSvc := submission.NewService(submission.ServiceDeps{
		Scorer:   deps.Scorer,
		Secret:   cfg.Recaptcha.SecretKey,
		Notifier: deps.Notifier,
	})

	pageH, err := handler.NewPageHandler(cfg)
	if err != nil {
		return nil, err
	}
	formH := handler.NewFormHandler(submissionSvc, cfg.ThankYouPath)
	healthH := handler.NewHealthHandler()

	r.Get("/", pageH.Form)
	r.Post("/", formH.Submit)
	r.Get(cfg.ThankYouPath, pageH.ThankYou)
	r.Get("/health-check/{action}", healthH.Ping)

	return r, nil
}
