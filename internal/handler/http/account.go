package http

import (
	"net/http"

	"github.com/MKhiriev/menu-predictor/internal/logger"
	"github.com/MKhiriev/menu-predictor/internal/service"
	"github.com/MKhiriev/menu-predictor/models"
)

func (h *Handler) authPage(w http.ResponseWriter, r *http.Request) {
	session, ok := h.sessionFrom(w, r)
	if !ok {
		return
	}

	next := nextTarget(r, nil)
	if session.IsAuthenticated() {
		http.Redirect(w, r, next, http.StatusFound)
		return
	}

	page := models.NewPage()
	page.Set(models.FieldNext, next)
	h.render(w, r, "auth.html", page, http.StatusOK)
}

func (h *Handler) authSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	session, ok := h.sessionFrom(w, r)
	if !ok {
		return
	}

	form, err := h.parseForm(w, r)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	next := nextTarget(r, form)
	if session.IsAuthenticated() {
		http.Redirect(w, r, next, http.StatusFound)
		return
	}

	page := models.NewPage()
	user, ok, err := h.services.AccountService.AuthoriseUser(ctx, form, page)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	if !ok {
		page.Set(models.FieldNext, next)
		page.Set(models.FieldUsername, form[models.FieldUsername])
		h.render(w, r, "auth.html", page, http.StatusOK)
		return
	}

	session.Login(user.UserID)
	log.Info().Int64("id", user.UserID).Msg("user logged in")

	http.Redirect(w, r, next, http.StatusFound)
}

func (h *Handler) registerPage(w http.ResponseWriter, r *http.Request) {
	session, ok := h.sessionFrom(w, r)
	if !ok {
		return
	}

	next := nextTarget(r, nil)
	if session.IsAuthenticated() {
		http.Redirect(w, r, next, http.StatusFound)
		return
	}

	page := models.NewPage()
	fillEchoes(page, session)
	page.Set(models.FieldNext, next)
	h.render(w, r, "register.html", page, http.StatusOK)
}

// registerSubmit creates the account and logs the new user in.
func (h *Handler) registerSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	session, ok := h.sessionFrom(w, r)
	if !ok {
		return
	}

	form, err := h.parseForm(w, r)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	next := nextTarget(r, form)
	if session.IsAuthenticated() {
		http.Redirect(w, r, next, http.StatusFound)
		return
	}

	page := models.NewPage()
	user, ok, err := h.services.AccountService.RegisterUser(ctx, form, page, session)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	if !ok {
		fillEchoes(page, session)
		page.Set(models.FieldNext, next)
		h.render(w, r, "register.html", page, http.StatusOK)
		return
	}

	session.Login(user.UserID)
	http.Redirect(w, r, next, http.StatusFound)
}

// fillEchoes copies the registration fields kept in the session to page.
func fillEchoes(page models.Page, session *models.Session) {
	for _, field := range service.RegisterEchoFields {
		page.Set(field, session.Form[field])
	}
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	session, ok := h.sessionFrom(w, r)
	if !ok {
		return
	}

	if session.IsAuthenticated() {
		logger.FromRequest(r).Info().Int64("id", session.UserID).Msg("user logged out")
	}
	session.Logout()

	http.Redirect(w, r, "/", http.StatusFound)
}
