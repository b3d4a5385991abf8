package http

import (
	"net/http"

	"github.com/MKhiriev/menu-predictor/models"
)

func (h *Handler) restorePage(w http.ResponseWriter, r *http.Request) {
	session, ok := h.sessionFrom(w, r)
	if !ok {
		return
	}

	page := models.NewPage()
	if r.URL.Query().Has("reset") {
		session.Restore.Reset()
	}

	h.renderRestore(w, r, session, page)
}

// restoreSubmit runs the restore step the session is waiting for. A changed
// password ends the flow with a redirect to the login page.
func (h *Handler) restoreSubmit(w http.ResponseWriter, r *http.Request) {
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

	account := h.services.AccountService
	page := models.NewPage()

	switch session.Restore.Step {
	case models.RestoreAwaitingEmail:
		_, err = account.RestoreSearchEmail(ctx, form, page, session)
	case models.RestoreAwaitingAnswer:
		_, err = account.RestoreCheckAnswer(ctx, form, page, session)
	case models.RestoreConfirmed:
		var changed bool
		changed, err = account.RestoreChangePassword(ctx, form, page, session)
		if err == nil && changed {
			http.Redirect(w, r, "/auth", http.StatusFound)
			return
		}
	default:
		session.Restore.Reset()
	}
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	h.renderRestore(w, r, session, page)
}

func (h *Handler) renderRestore(w http.ResponseWriter, r *http.Request, session *models.Session, page models.Page) {
	if err := h.services.AccountService.ResearchFillData(r.Context(), session, page); err != nil {
		h.renderError(w, r, err)
		return
	}

	page.Set("step", session.Restore.Step.String())
	h.render(w, r, "restore.html", page, http.StatusOK)
}
