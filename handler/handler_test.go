package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hugocs/hugocs/comment"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) PostExists(pageID string, ext string) bool {
	args := m.Called(pageID, ext)
	return args.Bool(0)
}

func (m *mockStore) Save(ctx context.Context, c comment.Comment) (string, error) {
	args := m.Called(ctx, c)
	return args.String(0), args.Error(1)
}

var testNow = time.Date(2016, time.March, 4, 5, 6, 7, 0, time.UTC)

func newTestHandler(store CommentStore, trustProxy bool) *CommentHandler {
	return &CommentHandler{
		store:      store,
		salt:       "salt",
		trustProxy: trustProxy,
		now:        func() time.Time { return testNow },
		log:        zap.NewNop(),
	}
}

func validValues() url.Values {
	return url.Values{
		"page_id":      {"post/hello"},
		"content_type": {"md"},
		"avatar_type":  {"identicon"},
		"name":         {"Juha"},
		"email":        {"juha@example.com"},
		"website":      {""},
		"body":         {"Nice post"},
		"last_name":    {""},
	}
}

func postForm(values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/comment", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.RemoteAddr = "192.0.2.1:54321"
	return req
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) Response {
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var res Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	return res
}

func TestCommentHandler_Accepted(t *testing.T) {
	store := new(mockStore)
	store.On("PostExists", "post/hello", "md").Return(true)
	store.On("Save", mock.Anything, mock.MatchedBy(func(c comment.Comment) bool {
		return c.Name == "Juha" &&
			c.PageID == "post/hello" &&
			c.IPAddress == "192.0.2.1" &&
			c.EmailMd5Salted == comment.Hash("juha@example.com", "salt") &&
			c.Timestamp == "2016-03-04T05:06:07Z"
	})).Return("/comments/post/hello/file.json", nil)

	w := httptest.NewRecorder()
	newTestHandler(store, false).ServeHTTP(w, postForm(validValues()))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, Response{Message: "Thank you for the comment", IsError: false}, decodeResponse(t, w))
	store.AssertExpectations(t)
}

func TestCommentHandler_NotPost(t *testing.T) {
	store := new(mockStore)

	w := httptest.NewRecorder()
	newTestHandler(store, false).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/comment", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, Response{Message: "Must be POST", IsError: true}, decodeResponse(t, w))
	store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCommentHandler_Invalid(t *testing.T) {
	store := new(mockStore)

	values := validValues()
	values.Set("email", "not-an-email")

	w := httptest.NewRecorder()
	newTestHandler(store, false).ServeHTTP(w, postForm(values))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, Response{Message: "Email address is not valid", IsError: true}, decodeResponse(t, w))
	store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCommentHandler_PostMissing(t *testing.T) {
	store := new(mockStore)
	store.On("PostExists", "post/hello", "md").Return(false)

	w := httptest.NewRecorder()
	newTestHandler(store, false).ServeHTTP(w, postForm(validValues()))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Specified post does not exist", decodeResponse(t, w).Message)
	store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCommentHandler_SaveFails(t *testing.T) {
	store := new(mockStore)
	store.On("PostExists", "post/hello", "md").Return(true)
	store.On("Save", mock.Anything, mock.Anything).Return("", errors.New("disk full"))

	w := httptest.NewRecorder()
	newTestHandler(store, false).ServeHTTP(w, postForm(validValues()))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	res := decodeResponse(t, w)
	assert.True(t, res.IsError)
	assert.NotContains(t, res.Message, "disk full")
}

func TestCommentHandler_ClientIP(t *testing.T) {
	tests := []struct {
		name       string
		trustProxy bool
		remoteAddr string
		forwarded  string
		expected   string
	}{
		{"remote addr", false, "192.0.2.1:1234", "", "192.0.2.1"},
		{"ipv6 remote addr", false, "[2001:db8::1]:1234", "", "2001:db8::1"},
		{"remote addr without port", false, "192.0.2.1", "", "192.0.2.1"},
		{"empty remote addr", false, "", "", "Unknown"},
		{"forwarded but untrusted", false, "10.0.0.1:1234", "198.51.100.7", "10.0.0.1"},
		{"forwarded and trusted", true, "10.0.0.1:1234", "198.51.100.7, 10.0.0.1", "198.51.100.7"},
		{"trusted without header", true, "10.0.0.1:1234", "", "10.0.0.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/comment", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.forwarded != "" {
				req.Header.Set("X-Forwarded-For", tt.forwarded)
			}

			h := newTestHandler(nil, tt.trustProxy)

			assert.Equal(t, tt.expected, h.clientIP(req))
		})
	}
}

func TestHealthHandler(t *testing.T) {
	w := httptest.NewRecorder()
	HealthHandler(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
}
