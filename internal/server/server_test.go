package server_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/hugocs/hugocs/internal/server"
)

func newTestServer(t *testing.T, config server.HttpConfig) *server.HttpServer {
	echo := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, r.URL.Path)
	})

	return server.NewHttpServer(server.HttpServerParams{
		Context: context.Background(),
		Config:  config,
		Handlers: []*server.HttpHandler{
			server.AsHttpHandler("/comment", echo).Handler,
		},
		Logger: zaptest.NewLogger(t),
	})
}

func TestHttpServer_RoutesHandlers(t *testing.T) {
	s := newTestServer(t, server.HttpConfig{Port: 8080})

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/comment", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "/comment", w.Body.String())
}

func TestHttpServer_UnknownRoute(t *testing.T) {
	s := newTestServer(t, server.HttpConfig{Port: 8080})

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHttpServer_H2c(t *testing.T) {
	s := newTestServer(t, server.HttpConfig{Port: 8080, H2c: true})

	_, isMux := s.Handler().(*http.ServeMux)
	assert.False(t, isMux)

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/comment", nil))
	assert.Equal(t, "/comment", w.Body.String())
}

func TestHttpServer_Shutdown(t *testing.T) {
	s := newTestServer(t, server.HttpConfig{Host: "127.0.0.1", Port: 0})

	require.NoError(t, s.Shutdown(context.Background()))
}
