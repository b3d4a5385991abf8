package http

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestWithLogging(t *testing.T) {
	tests := []struct {
		name          string
		method        string
		path          string
		handlerStatus int
		body          string
		wantLog       []string
	}{
		{
			name:          "GET 200 with body",
			method:        http.MethodGet,
			path:          "/",
			handlerStatus: http.StatusOK,
			body:          "OK",
			wantLog:       []string{`"method":"GET"`, `"uri":"/"`, `"status":200`, `"size":2`, `"duration":`},
		},
		{
			name:          "POST redirect",
			method:        http.MethodPost,
			path:          "/auth",
			handlerStatus: http.StatusFound,
			wantLog:       []string{`"method":"POST"`, `"uri":"/auth"`, `"status":302`, `"size":0`},
		},
		{
			name:    "implicit 200",
			method:  http.MethodGet,
			path:    "/healthz",
			body:    "{}",
			wantLog: []string{`"status":200`, `"size":2`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			h := &Handler{}

			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tt.handlerStatus != 0 {
					w.WriteHeader(tt.handlerStatus)
				}
				if tt.body != "" {
					_, _ = w.Write([]byte(tt.body))
				}
			})

			req := httptest.NewRequest(tt.method, tt.path, nil)
			req = req.WithContext(zerolog.New(&buf).WithContext(req.Context()))
			h.withLogging(next).ServeHTTP(httptest.NewRecorder(), req)

			for _, want := range tt.wantLog {
				assert.Contains(t, buf.String(), want)
			}
		})
	}
}

func TestRoutePattern(t *testing.T) {
	router := chi.NewRouter()

	var got string
	router.Get("/items/{id}", func(w http.ResponseWriter, r *http.Request) {
		got = routePattern(r)
	})
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/items/42", nil))
	assert.Equal(t, "/items/{id}", got)

	assert.Equal(t, "unmatched", routePattern(httptest.NewRequest(http.MethodGet, "/", nil)))
}
