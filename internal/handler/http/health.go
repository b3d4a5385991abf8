package http

import (
	"net/http"

	"github.com/MKhiriev/menu-predictor/internal/utils"
)

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	report, err := h.services.AppInfoService.Health(r.Context())
	status := http.StatusOK
	if err != nil {
		status = statusFromError(err)
	}

	utils.WriteJSON(w, report, status)
}
