package main

import (
	"net/http"

	"github.com/Simplici0/dpp/internal/passport"
)

type baseViewData struct {
	Authenticated  bool
	ErrorMessage   string
	SuccessMessage string
}

type loginViewData struct {
	baseViewData
	Email string
}

type passportsViewData struct {
	baseViewData
	Query      string
	Category   passport.Category
	Categories []passport.Category
	Passports  []passport.Passport
}

type passportFormViewData struct {
	baseViewData
	IsNew    bool
	Action   string
	Passport *passport.Passport
	Template passport.Template
}

type publicPassportViewData struct {
	baseViewData
	Passport *passport.Passport
	Template passport.Template
}

// base carries flash messages passed through the redirect query string.
func (s *server) base(r *http.Request) baseViewData {
	return baseViewData{
		Authenticated:  s.auth.isAuthenticated(r),
		ErrorMessage:   r.URL.Query().Get("error"),
		SuccessMessage: r.URL.Query().Get("success"),
	}
}
