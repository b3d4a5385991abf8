package http

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/MKhiriev/menu-predictor/internal/logger"
	"github.com/MKhiriev/menu-predictor/internal/mlshell"
	"github.com/MKhiriev/menu-predictor/internal/service"
	"github.com/MKhiriev/menu-predictor/models"
)

// researchPage shows the restore progress of the session and, for a logged
// in user, the algorithm settings the next retrain starts from.
func (h *Handler) researchPage(w http.ResponseWriter, r *http.Request) {
	session, ok := h.sessionFrom(w, r)
	if !ok {
		return
	}

	h.renderResearch(w, r, session, models.NewPage(), http.StatusOK)
}

// researchSubmit retrains the model of the logged in researcher with the
// uploaded "data" file and the settings of the form.
func (h *Handler) researchSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	session, ok := h.sessionFrom(w, r)
	if !ok {
		return
	}
	if !session.IsAuthenticated() {
		http.Redirect(w, r, "/auth?"+url.Values{models.FieldNext: {"/research"}}.Encode(), http.StatusFound)
		return
	}

	form, err := h.parseForm(w, r)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	data, _, err := h.uploadedFile(r, models.FieldData)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	page := models.NewPage()

	report, err := h.services.ModelService.Train(ctx, session.UserID, form, data)
	switch {
	case errors.Is(err, service.ErrEmptyTrainingData):
		page.SetFlag("no_" + models.FieldData)
	case errors.Is(err, service.ErrInvalidSettings):
		page.SetFlag("incorrect_settings")
	case err != nil:
		h.renderError(w, r, err)
		return
	default:
		log.Info().Int64("id", session.UserID).Str("model", report.ModelPath).Msg("model retrained from research page")
		page.Set("report", report)
	}

	h.renderResearch(w, r, session, page, http.StatusOK)
}

func (h *Handler) renderResearch(w http.ResponseWriter, r *http.Request, session *models.Session, page models.Page, status int) {
	ctx := r.Context()

	if err := h.services.AccountService.ResearchFillData(ctx, session, page); err != nil {
		h.renderError(w, r, err)
		return
	}

	if session.IsAuthenticated() {
		settings, err := h.services.ModelService.GetSettings(ctx, session.UserID)
		if err != nil {
			h.renderError(w, r, err)
			return
		}
		page.Set("settings", settings)
		page.Set("algorithms", mlshell.Algorithms())
	}

	h.render(w, r, "research.html", page, status)
}
