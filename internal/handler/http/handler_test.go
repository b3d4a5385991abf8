package http

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/menu-predictor/internal/config"
	"github.com/MKhiriev/menu-predictor/internal/logger"
	"github.com/MKhiriev/menu-predictor/internal/mock"
	"github.com/MKhiriev/menu-predictor/internal/service"
	"github.com/MKhiriev/menu-predictor/internal/utils"
	"github.com/MKhiriev/menu-predictor/models"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const testCookie = "sessionid"

type serviceMocks struct {
	account    *mock.MockAccountService
	prediction *mock.MockPredictionService
	model      *mock.MockModelService
	session    *mock.MockSessionService
	appInfo    *mock.MockAppInfoService
}

// newTestHandler builds a Handler over gomock services.
func newTestHandler(t *testing.T) (*Handler, serviceMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := serviceMocks{
		account:    mock.NewMockAccountService(ctrl),
		prediction: mock.NewMockPredictionService(ctrl),
		model:      mock.NewMockModelService(ctrl),
		session:    mock.NewMockSessionService(ctrl),
		appInfo:    mock.NewMockAppInfoService(ctrl),
	}

	services := &service.Services{
		AccountService:    m.account,
		PredictionService: m.prediction,
		ModelService:      m.model,
		SessionService:    m.session,
		AppInfoService:    m.appInfo,
	}
	app := config.App{CookieName: testCookie, SessionTTL: time.Hour}
	srv := config.Server{MaxUploadBytes: 1 << 20, RequestTimeout: time.Minute}

	return NewHandler(services, app, srv, logger.Nop()), m
}

// expectUploadReads lets uploadedFile drain uploads through the mock.
func expectUploadReads(m serviceMocks) {
	m.prediction.EXPECT().ReadUploadedFile(gomock.Any(), gomock.Any()).DoAndReturn(
		func(r io.Reader, _ int64) ([]byte, error) {
			return io.ReadAll(r)
		},
	).AnyTimes()
}

// serve runs fn with session attached the way withSession does.
func serve(fn http.HandlerFunc, req *http.Request, session *models.Session) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	fn(rr, req.WithContext(utils.WithSession(req.Context(), session)))
	return rr
}

func formRequest(target string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// multipartRequest builds a POST with the given files and fields.
func multipartRequest(t *testing.T, target string, files map[string]string, fields map[string]string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for field, content := range files {
		part, err := mw.CreateFormFile(field, field+".csv")
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	for field, value := range fields {
		require.NoError(t, mw.WriteField(field, value))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func authenticatedSession(userID int64) *models.Session {
	session := models.NewSession(time.Hour)
	session.Login(userID)
	return session
}
