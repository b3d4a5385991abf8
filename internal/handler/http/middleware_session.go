package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/menu-predictor/internal/logger"
	"github.com/MKhiriev/menu-predictor/internal/service"
	"github.com/MKhiriev/menu-predictor/internal/utils"
	"github.com/MKhiriev/menu-predictor/models"
)

// withSession resumes the session named by the session cookie, or starts a
// new anonymous one when the cookie is missing, forged or expired. The
// session is stored in the request context under [utils.SessionCtxKey] and
// saved once the handler returns.
func (h *Handler) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		log := logger.FromRequest(r)

		var session *models.Session
		if cookie, err := r.Cookie(h.cookieName); err == nil {
			session, err = h.services.SessionService.Resume(ctx, cookie.Value)
			if err != nil && !errors.Is(err, service.ErrInvalidSession) {
				h.renderError(w, r, err)
				return
			}
			if err != nil {
				log.Debug().Err(err).Msg("starting a new session")
			}
		}

		if session == nil {
			started, token, err := h.services.SessionService.Start(ctx)
			if err != nil {
				h.renderError(w, r, err)
				return
			}
			session = started
			http.SetCookie(w, h.sessionCookie(token.String()))
		}

		reqCtx := log.ForSession(session.ID).WithContext(utils.WithSession(ctx, session))
		next.ServeHTTP(w, r.WithContext(reqCtx))

		if err := h.services.SessionService.Save(ctx, session); err != nil {
			log.Err(err).Str("func", "*Handler.withSession").Msg("session was not saved")
		}
	})
}

func (h *Handler) sessionCookie(value string) *http.Cookie {
	return &http.Cookie{
		Name:     h.cookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   int(h.sessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
}

// sessionFrom returns the session of r. It renders an error page and
// returns false when withSession did not run.
func (h *Handler) sessionFrom(w http.ResponseWriter, r *http.Request) (*models.Session, bool) {
	session, ok := utils.GetSessionFromContext(r.Context())
	if !ok {
		h.renderError(w, r, ErrNoSession)
		return nil, false
	}
	return session, true
}
