package http

import (
	"errors"
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"github.com/MKhiriev/menu-predictor/internal/service"
	"github.com/MKhiriev/menu-predictor/models"
)

const (
	// multipartMemory is the part of a multipart body kept in memory; the
	// rest spills to temporary files.
	multipartMemory = 32 << 20

	// formOverhead is the body allowance for fields and multipart framing on
	// top of the uploaded files.
	formOverhead = 1 << 20
)

// parseForm reads an urlencoded or multipart body and returns the first
// value of every submitted field. The body is capped at two uploads plus
// formOverhead.
func (h *Handler) parseForm(w http.ResponseWriter, r *http.Request) (models.Form, error) {
	if h.maxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, 2*h.maxUploadBytes+formOverhead)
	}

	var err error
	if mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type")); mediaType == "multipart/form-data" {
		err = r.ParseMultipartForm(multipartMemory)
	} else {
		err = r.ParseForm()
	}
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, service.ErrUploadTooLarge
		}
		return nil, fmt.Errorf("%w: %w", ErrMalformedForm, err)
	}

	form := make(models.Form, len(r.PostForm))
	for field, values := range r.PostForm {
		if len(values) > 0 {
			form[field] = values[0]
		}
	}

	return form, nil
}

// uploadedFile reads the file submitted under field. It reports false when
// the request carries no such file.
func (h *Handler) uploadedFile(r *http.Request, field string) ([]byte, bool, error) {
	if r.MultipartForm == nil {
		return nil, false, nil
	}

	file, _, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: %w", ErrMalformedForm, err)
	}
	defer file.Close()

	data, err := h.services.PredictionService.ReadUploadedFile(file, h.maxUploadBytes)
	if err != nil {
		return nil, false, err
	}

	return data, true, nil
}

// localTarget returns next when it is a path on this site and "/" otherwise.
func localTarget(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}

	u, err := url.Parse(next)
	if err != nil || u.IsAbs() || u.Host != "" {
		return "/"
	}

	return next
}

// nextTarget reads the redirect target of r from the form, falling back to
// the query string.
func nextTarget(r *http.Request, form models.Form) string {
	if next := form[models.FieldNext]; next != "" {
		return localTarget(next)
	}
	return localTarget(r.URL.Query().Get(models.FieldNext))
}
