package http

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/menu-predictor/internal/service"
	"github.com/MKhiriev/menu-predictor/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestInit_Health(t *testing.T) {
	h, m := newTestHandler(t)
	m.appInfo.EXPECT().Health(gomock.Any()).Return(models.Health{
		Status: "ok", Database: "ok", Version: "1.2.3", Date: "N/A", Commit: "N/A",
	}, nil)

	rr := httptest.NewRecorder()
	h.Init().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t,
		`{"status":"ok","database":"ok","version":"1.2.3","build_date":"N/A","build_commit":"N/A"}`,
		rr.Body.String())
	assert.NotEmpty(t, rr.Header().Get(traceIDHeader))
}

func TestInit_Health_DatabaseDown(t *testing.T) {
	h, m := newTestHandler(t)
	m.appInfo.EXPECT().Health(gomock.Any()).Return(models.Health{
		Status: "unavailable", Database: "unavailable", Version: "1.2.3",
	}, fmt.Errorf("%w: refused", service.ErrDatabaseUnavailable))

	rr := httptest.NewRecorder()
	h.Init().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.Contains(t, rr.Body.String(), `"database":"unavailable"`)
}

func TestInit_Metrics(t *testing.T) {
	h, _ := newTestHandler(t)

	rr := httptest.NewRecorder()
	h.Init().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "go_goroutines")
}

func TestInit_PageRoutesUseSession(t *testing.T) {
	pages := []string{"/", "/auth", "/register", "/restore", "/research"}

	for _, path := range pages {
		t.Run(path, func(t *testing.T) {
			h, m := newTestHandler(t)
			session := models.NewSession(time.Hour)

			m.session.EXPECT().Start(gomock.Any()).Return(session, models.Token{SignedString: "signed"}, nil)
			m.session.EXPECT().Save(gomock.Any(), session).Return(nil)
			m.account.EXPECT().ResearchFillData(gomock.Any(), session, gomock.Any()).Return(nil).AnyTimes()

			rr := httptest.NewRecorder()
			h.Init().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))

			assert.Equal(t, http.StatusOK, rr.Code)
			assert.Contains(t, rr.Header().Get("Set-Cookie"), testCookie+"=signed")
		})
	}
}

func TestInit_UnsupportedMethodIsNotFound(t *testing.T) {
	h, _ := newTestHandler(t)

	for _, tc := range []struct{ method, path string }{
		{http.MethodPut, "/auth"},
		{http.MethodDelete, "/"},
		{http.MethodGet, "/logout"},
		{http.MethodPost, "/healthz"},
	} {
		rr := httptest.NewRecorder()
		h.Init().ServeHTTP(rr, httptest.NewRequest(tc.method, tc.path, nil))

		assert.Equal(t, http.StatusNotFound, rr.Code, "%s %s", tc.method, tc.path)
	}
}

func TestInit_RateLimitsSubmissions(t *testing.T) {
	h, m := newTestHandler(t)
	h.rateLimitRequests = 1
	h.rateLimitWindow = time.Minute

	session := models.NewSession(time.Hour)
	m.session.EXPECT().Start(gomock.Any()).Return(session, models.Token{SignedString: "signed"}, nil).AnyTimes()
	m.session.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	m.account.EXPECT().AuthoriseUser(gomock.Any(), gomock.Any(), gomock.Any()).Return(models.User{}, false, nil)

	router := h.Init()

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, formRequest("/auth", nil))
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, formRequest("/auth", nil))
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
}
