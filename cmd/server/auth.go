package main

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/alexedwards/scs/v2"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const sessionUserEmailKey = "auth:user:email"

type authService struct {
	db       *sql.DB
	sessions *scs.SessionManager
}

func newAuthService(db *sql.DB, sessions *scs.SessionManager) *authService {
	return &authService{db: db, sessions: sessions}
}

func (a *authService) validateCredentials(r *http.Request, email, password string) (bool, error) {
	var passwordHash string
	err := a.db.QueryRowContext(r.Context(), `SELECT password_hash FROM users WHERE email = ?`, email).Scan(&passwordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("query user credentials: %w", err)
	}

	err = bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("compare password hash: %w", err)
	}
	return true, nil
}

func (a *authService) login(r *http.Request, email string) error {
	if err := a.sessions.RenewToken(r.Context()); err != nil {
		return fmt.Errorf("renew session token: %w", err)
	}
	a.sessions.Put(r.Context(), sessionUserEmailKey, email)
	return nil
}

func (a *authService) logout(r *http.Request) error {
	return a.sessions.Destroy(r.Context())
}

func (a *authService) isAuthenticated(r *http.Request) bool {
	return a.sessions.GetString(r.Context(), sessionUserEmailKey) != ""
}

func (s *server) handleLoginForm(w http.ResponseWriter, r *http.Request) {
	if s.auth.isAuthenticated(r) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	s.renderTemplate(w, "login.html", loginViewData{})
}

func (s *server) handleLoginSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")
	valid, err := s.auth.validateCredentials(r, email, password)
	if err != nil {
		s.logger.Error("failed to validate credentials", zap.Error(err))
		http.Error(w, "authentication error", http.StatusInternalServerError)
		return
	}
	if !valid {
		s.renderTemplateStatus(w, http.StatusUnauthorized, "login.html", loginViewData{
			baseViewData: baseViewData{ErrorMessage: "Invalid email or password. Please try again."},
			Email:        email,
		})
		return
	}

	if err := s.auth.login(r, email); err != nil {
		s.logger.Error("failed to establish session", zap.Error(err))
		http.Error(w, "authentication error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.auth.logout(r); err != nil {
		s.logger.Error("failed to destroy session", zap.Error(err))
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
