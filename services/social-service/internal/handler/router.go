package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/devconnector-api/services/social-service/internal/usecase"
	"github.com/vasapolrittideah/devconnector-api/shared/interceptor"
	"github.com/vasapolrittideah/devconnector-api/shared/validation"
)

// RouterConfig holds the dependencies of the HTTP API.
type RouterConfig struct {
	ServiceName        string
	AuthUsecase        usecase.AuthUsecase
	PostUsecase        usecase.PostUsecase
	ProfileUsecase     usecase.ProfileUsecase
	TokenVerifier      interceptor.TokenVerifier
	Store              Pinger
	CORSAllowedOrigins []string
	Logger             *zerolog.Logger
}

// NewRouter builds the HTTP API. Interceptors run in order: request logging, panic recovery,
// CORS, input normalization, then the auth guard on private routes.
func NewRouter(cfg RouterConfig) http.Handler {
	validator := validation.New()
	authHandler := newAuthHTTPHandler(cfg.AuthUsecase, validator, cfg.Logger)
	postHandler := newPostHTTPHandler(cfg.PostUsecase, validator, cfg.Logger)
	profileHandler := newProfileHTTPHandler(cfg.ProfileUsecase, validator, cfg.Logger)
	health := newHealthHandler(cfg.ServiceName, cfg.Store)

	guard := interceptor.NewJWTInterceptor(cfg.TokenVerifier, cfg.Logger)

	r := chi.NewRouter()
	r.Use(
		interceptor.NewRequestLogger(cfg.Logger),
		interceptor.NewRecoverer(cfg.Logger),
		interceptor.NewCORSInterceptor(cfg.CORSAllowedOrigins),
		interceptor.NewTrimInterceptor(),
	)

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("API is started & running"))
	})
	r.Get("/healthz", health.Check)

	r.Route("/api", func(r chi.Router) {
		r.Post("/user", authHandler.Register)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/", authHandler.Login)
			r.With(guard).Get("/", authHandler.GetAuthenticatedUser)
		})

		r.Route("/posts", func(r chi.Router) {
			r.Use(guard)
			r.Get("/", postHandler.ListPosts)
			r.Post("/", postHandler.CreatePost)
			r.Get("/{id}", postHandler.GetPost)
			r.Delete("/{id}", postHandler.DeletePost)
			r.Put("/like/{id}", postHandler.LikePost)
			r.Put("/unlike/{id}", postHandler.UnlikePost)
			r.Post("/comment/{id}", postHandler.AddComment)
			r.Delete("/comment/{id}/{commentID}", postHandler.RemoveComment)
		})

		r.Route("/profile", func(r chi.Router) {
			r.Get("/", profileHandler.ListProfiles)
			r.Get("/user/{userID}", profileHandler.GetProfileByUserID)
			r.Get("/github/{username}", profileHandler.GetGitHubRepositories)

			r.Group(func(r chi.Router) {
				r.Use(guard)
				r.Get("/me", profileHandler.GetMyProfile)
				r.Post("/", profileHandler.UpsertProfile)
				r.Delete("/", profileHandler.DeleteAccount)
				r.Put("/experience", profileHandler.AddExperience)
				r.Delete("/experience/{id}", profileHandler.RemoveExperience)
				r.Put("/education", profileHandler.AddEducation)
				r.Delete("/education/{id}", profileHandler.RemoveEducation)
			})
		})
	})

	return r
}
