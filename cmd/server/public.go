package main

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Simplici0/dpp/internal/passport"
)

const jsonSuffix = ".json"

// handlePublicPassport serves /p/{slug} as HTML and /p/{slug}.json as JSON.
// Drafts are indistinguishable from missing passports.
func (s *server) handlePublicPassport(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	asJSON := strings.HasSuffix(slug, jsonSuffix)
	slug = strings.TrimSuffix(slug, jsonSuffix)

	p, err := s.passports.GetBySlug(r.Context(), slug)
	if errors.Is(err, passport.ErrNotFound) || (err == nil && !p.Published()) {
		if asJSON {
			writeJSONError(w, http.StatusNotFound, "passport not found")
			return
		}
		http.NotFound(w, r)
		return
	}
	if err != nil {
		s.logger.Error("failed to load public passport", zap.String("slug", slug), zap.Error(err))
		http.Error(w, "failed to load passport", http.StatusInternalServerError)
		return
	}

	if asJSON {
		writeJSON(w, http.StatusOK, p)
		return
	}

	s.renderTemplate(w, "passport_public.html", publicPassportViewData{
		baseViewData: s.base(r),
		Passport:     p,
		Template:     passport.TemplateFor(p.Category),
	})
}
