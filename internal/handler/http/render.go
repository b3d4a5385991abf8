package http

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/MKhiriev/menu-predictor/internal/logger"
	"github.com/MKhiriev/menu-predictor/internal/utils"
	"github.com/MKhiriev/menu-predictor/models"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// render executes the named page into a buffer first, so a template error
// never leaves a half-written response.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, name string, page models.Page, status int) {
	if session, ok := utils.GetSessionFromContext(r.Context()); ok && session.IsAuthenticated() {
		page.SetFlag("authenticated")
	}

	var buf bytes.Buffer
	if err := pages.ExecuteTemplate(&buf, name, page); err != nil {
		logger.FromRequest(r).Err(err).Str("template", name).Msg("page rendering failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)

	status := statusFromError(err)
	if status >= http.StatusInternalServerError {
		log.Err(err).Str("uri", r.RequestURI).Msg("request failed")
	} else {
		log.Warn().Err(err).Str("uri", r.RequestURI).Msg("request rejected")
	}

	page := models.NewPage()
	page.Set("status", status)
	page.Set("message", http.StatusText(status))
	h.render(w, r, "error.html", page, status)
}
