package main

import (
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/Simplici0/dpp/internal/logging"
	"github.com/Simplici0/dpp/internal/passport"
)

const (
	defaultTemplateDir = "web/templates"
	sessionCookieName  = "dpp_session"
)

type sessionConfig struct {
	Lifetime     time.Duration
	CookieSecure bool
}

type server struct {
	db          *sql.DB
	passports   *passport.Store
	auth        *authService
	sessions    *scs.SessionManager
	logger      *zap.Logger
	templateDir string
}

func newServer(database *sql.DB, logger *zap.Logger, cfg sessionConfig) *server {
	sessions := scs.New()
	if cfg.Lifetime > 0 {
		sessions.Lifetime = cfg.Lifetime
	}
	sessions.Cookie.Name = sessionCookieName
	sessions.Cookie.HttpOnly = true
	sessions.Cookie.Persist = true
	sessions.Cookie.SameSite = http.SameSiteLaxMode
	sessions.Cookie.Secure = cfg.CookieSecure

	return &server{
		db:          database,
		passports:   passport.NewStore(database),
		auth:        newAuthService(database, sessions),
		sessions:    sessions,
		logger:      logger,
		templateDir: defaultTemplateDir,
	}
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(logging.Middleware(s.logger))
	r.Use(s.sessions.LoadAndSave)
	r.Use(s.authMiddleware)

	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir("web/static"))))
	r.Get("/healthz", s.handleHealth)
	r.Get("/", s.handleHome)
	r.Get("/login", s.handleLoginForm)
	r.Post("/login", s.handleLoginSubmit)
	r.Post("/logout", s.handleLogout)

	r.Get("/passports", s.handlePassportsList)
	r.Get("/passports/new", s.handlePassportNew)
	r.Post("/passports", s.handlePassportCreate)
	r.Get("/passports/{id}/edit", s.handlePassportEdit)
	r.Post("/passports/{id}", s.handlePassportUpdate)
	r.Post("/passports/{id}/delete", s.handlePassportDelete)
	r.Post("/passports/{id}/publish", s.handlePassportPublish)
	r.Post("/passports/{id}/unpublish", s.handlePassportUnpublish)

	r.Post("/api/nutrition/wine", s.handleWineNutrition)

	r.Get("/p/{slug}", s.handlePublicPassport)

	return r
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func (s *server) handleHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/passports", http.StatusSeeOther)
}

func isPublicPath(path string) bool {
	switch path {
	case "/login", "/healthz", "/static":
		return true
	}
	return strings.HasPrefix(path, "/static/") || strings.HasPrefix(path, "/p/")
}

func (s *server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isPublicPath(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		if !s.auth.isAuthenticated(r) {
			if strings.HasPrefix(r.URL.Path, "/api/") {
				writeJSONError(w, http.StatusUnauthorized, "authentication required")
				return
			}
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		next.ServeHTTP(w, r)
	})
}
