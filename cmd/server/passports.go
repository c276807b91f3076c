package main

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Simplici0/dpp/internal/passport"
)

func (s *server) handlePassportsList(w http.ResponseWriter, r *http.Request) {
	data := passportsViewData{
		baseViewData: s.base(r),
		Query:        strings.TrimSpace(r.URL.Query().Get("q")),
		Categories:   passport.Categories(),
	}

	if raw := r.URL.Query().Get("category"); raw != "" {
		category, err := passport.ParseCategory(raw)
		if err != nil {
			data.ErrorMessage = "Unknown category " + raw
		} else {
			data.Category = category
		}
	}

	passports, err := s.passports.List(r.Context(), passport.Filter{Query: data.Query, Category: data.Category})
	if err != nil {
		s.logger.Error("failed to list passports", zap.Error(err))
		http.Error(w, "failed to load passports", http.StatusInternalServerError)
		return
	}
	data.Passports = passports

	s.renderTemplate(w, "passports.html", data)
}

func (s *server) handlePassportNew(w http.ResponseWriter, r *http.Request) {
	category, err := passport.ParseCategory(r.URL.Query().Get("category"))
	if err != nil {
		redirectWithMessage(w, r, "/passports", "error", "Choose a valid category")
		return
	}

	p := &passport.Passport{Category: category, Status: passport.StatusDraft, Fields: map[string]string{}}
	if category == passport.CategoryWine {
		p.Wine = &passport.WineDetails{}
		p.Wine.Recalculate()
	}

	s.renderTemplate(w, "passport_form.html", passportFormViewData{
		baseViewData: s.base(r),
		IsNew:        true,
		Action:       "/passports",
		Passport:     p,
		Template:     passport.TemplateFor(category),
	})
}

func (s *server) handlePassportCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	category, err := passport.ParseCategory(r.FormValue("category"))
	if err != nil {
		http.Error(w, "invalid category", http.StatusBadRequest)
		return
	}

	p, err := parsePassportForm(r, category)
	if err != nil {
		s.renderPassportForm(w, r, http.StatusBadRequest, p, true, err)
		return
	}

	if err := s.passports.Create(r.Context(), p); err != nil {
		s.logger.Error("failed to create passport", zap.Error(err))
		http.Error(w, "failed to create passport", http.StatusInternalServerError)
		return
	}

	s.logger.Info("passport created", zap.String("id", p.ID), zap.String("slug", p.Slug), zap.String("category", string(p.Category)))
	redirectWithMessage(w, r, "/passports/"+p.ID+"/edit", "success", "Passport created")
}

func (s *server) handlePassportEdit(w http.ResponseWriter, r *http.Request) {
	p, ok := s.loadPassport(w, r)
	if !ok {
		return
	}

	s.renderTemplate(w, "passport_form.html", passportFormViewData{
		baseViewData: s.base(r),
		Action:       "/passports/" + p.ID,
		Passport:     p,
		Template:     passport.TemplateFor(p.Category),
	})
}

func (s *server) handlePassportUpdate(w http.ResponseWriter, r *http.Request) {
	existing, ok := s.loadPassport(w, r)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	p, err := parsePassportForm(r, existing.Category)
	p.ID = existing.ID
	p.Slug = existing.Slug
	p.Status = existing.Status
	p.CreatedAt = existing.CreatedAt
	if err != nil {
		s.renderPassportForm(w, r, http.StatusBadRequest, p, false, err)
		return
	}

	if err := s.passports.Update(r.Context(), p); err != nil {
		if errors.Is(err, passport.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		s.logger.Error("failed to update passport", zap.String("id", p.ID), zap.Error(err))
		http.Error(w, "failed to update passport", http.StatusInternalServerError)
		return
	}

	redirectWithMessage(w, r, "/passports/"+p.ID+"/edit", "success", "Passport saved")
}

func (s *server) handlePassportDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.passports.Delete(r.Context(), id); err != nil {
		if errors.Is(err, passport.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		s.logger.Error("failed to delete passport", zap.String("id", id), zap.Error(err))
		http.Error(w, "failed to delete passport", http.StatusInternalServerError)
		return
	}

	redirectWithMessage(w, r, "/passports", "success", "Passport deleted")
}

func (s *server) handlePassportPublish(w http.ResponseWriter, r *http.Request) {
	s.setPassportStatus(w, r, passport.StatusPublished, "Passport published")
}

func (s *server) handlePassportUnpublish(w http.ResponseWriter, r *http.Request) {
	s.setPassportStatus(w, r, passport.StatusDraft, "Passport moved back to draft")
}

func (s *server) setPassportStatus(w http.ResponseWriter, r *http.Request, status passport.Status, message string) {
	id := chi.URLParam(r, "id")
	if err := s.passports.SetStatus(r.Context(), id, status); err != nil {
		if errors.Is(err, passport.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		s.logger.Error("failed to change passport status", zap.String("id", id), zap.String("status", string(status)), zap.Error(err))
		http.Error(w, "failed to change passport status", http.StatusInternalServerError)
		return
	}

	redirectWithMessage(w, r, "/passports", "success", message)
}

func (s *server) loadPassport(w http.ResponseWriter, r *http.Request) (*passport.Passport, bool) {
	id := chi.URLParam(r, "id")
	p, err := s.passports.Get(r.Context(), id)
	if errors.Is(err, passport.ErrNotFound) {
		http.NotFound(w, r)
		return nil, false
	}
	if err != nil {
		s.logger.Error("failed to load passport", zap.String("id", id), zap.Error(err))
		http.Error(w, "failed to load passport", http.StatusInternalServerError)
		return nil, false
	}
	return p, true
}

func (s *server) renderPassportForm(w http.ResponseWriter, r *http.Request, status int, p *passport.Passport, isNew bool, formErr error) {
	action := "/passports"
	if !isNew {
		action += "/" + p.ID
	}

	data := passportFormViewData{
		baseViewData: s.base(r),
		IsNew:        isNew,
		Action:       action,
		Passport:     p,
		Template:     passport.TemplateFor(p.Category),
	}
	data.SuccessMessage = ""
	data.ErrorMessage = formErr.Error()

	s.renderTemplateStatus(w, status, "passport_form.html", data)
}

func redirectWithMessage(w http.ResponseWriter, r *http.Request, path, kind, message string) {
	http.Redirect(w, r, path+"?"+kind+"="+url.QueryEscape(message), http.StatusSeeOther)
}
