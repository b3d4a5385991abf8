package http

import (
	"encoding/csv"
	"errors"
	"net/http"

	"github.com/MKhiriev/menu-predictor/internal/logger"
	"github.com/MKhiriev/menu-predictor/internal/service"
	"github.com/MKhiriev/menu-predictor/models"
)

// downloadDisposition is sent verbatim, unterminated quote included.
const downloadDisposition = `attachment; filename="predictions.csv`

// index renders the last result of the session, or streams it as CSV when
// the query carries "download".
func (h *Handler) index(w http.ResponseWriter, r *http.Request) {
	session, ok := h.sessionFrom(w, r)
	if !ok {
		return
	}

	if r.URL.Query().Has("download") && session.HasResult() {
		h.download(w, r, session.Result)
		return
	}

	page := models.NewPage()
	page.Set("result", session.Result)
	h.render(w, r, "index.html", page, http.StatusOK)
}

// upload predicts from a "menu" and "people" pair, or stores the content of
// a single "file" upload as is. A submission without files clears the
// session result.
func (h *Handler) upload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	session, ok := h.sessionFrom(w, r)
	if !ok {
		return
	}

	if _, err := h.parseForm(w, r); err != nil {
		h.renderError(w, r, err)
		return
	}

	menu, hasMenu, err := h.uploadedFile(r, models.FieldMenu)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	people, hasPeople, err := h.uploadedFile(r, models.FieldPeople)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	page := models.NewPage()

	switch {
	case hasMenu && hasPeople:
		result, prediction, err := h.services.PredictionService.AddNewResult(ctx, session.UserID, menu, people)
		if errors.Is(err, service.ErrEmptyUpload) {
			page.SetFlag("empty_upload")
			break
		}
		if err != nil {
			h.renderError(w, r, err)
			return
		}
		log.Debug().Int64("result_id", result.ResultID).Msg("prediction stored in session")
		session.Result = string(prediction)

	case hasMenu:
		page.SetFlag("no_" + models.FieldPeople)
	case hasPeople:
		page.SetFlag("no_" + models.FieldMenu)

	default:
		content, _, err := h.uploadedFile(r, models.FieldFile)
		if err != nil {
			h.renderError(w, r, err)
			return
		}
		session.Result = string(content)
	}

	page.Set("result", session.Result)
	h.render(w, r, "index.html", page, http.StatusOK)
}

// download writes result as the only field of a one-row CSV attachment.
func (h *Handler) download(w http.ResponseWriter, r *http.Request, result string) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", downloadDisposition)
	w.WriteHeader(http.StatusOK)

	writer := csv.NewWriter(w)
	if err := writer.Write([]string{result}); err != nil {
		logger.FromRequest(r).Err(err).Msg("csv write failed")
		return
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		logger.FromRequest(r).Err(err).Msg("csv flush failed")
	}
}
