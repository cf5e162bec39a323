package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/hugocs/hugocs/comment"
	"github.com/hugocs/hugocs/config"
)

const (
	messageAccepted = "Thank you for the comment"
	messageNotPost  = "Must be POST"
	messageFailed   = "Failed to save the comment"
)

// CommentStore looks up posts and stores accepted comments.
type CommentStore interface {
	PostExists(pageID string, ext string) bool
	Save(ctx context.Context, c comment.Comment) (string, error)
}

// Response is the json body of every comment endpoint response.
type Response struct {
	Message string `json:"message"`
	IsError bool   `json:"isError"`
}

type CommentHandlerParams struct {
	fx.In

	Store  CommentStore
	Config config.Config
	Log    *zap.Logger
}

func NewCommentHandler(params CommentHandlerParams) *CommentHandler {
	return &CommentHandler{
		store:      params.Store,
		salt:       params.Config.Store.Salt,
		trustProxy: params.Config.Http.TrustProxy,
		now:        time.Now,
		log:        params.Log,
	}
}

// CommentHandler accepts comment form posts.
type CommentHandler struct {
	store      CommentStore
	salt       string
	trustProxy bool
	now        func() time.Time
	log        *zap.Logger
}

func (h *CommentHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := h.log.With(
		zap.String("path", r.URL.Path),
		zap.String("method", r.Method),
	)

	if r.Method != http.MethodPost {
		log.Debug("invalid http method")
		h.respond(w, log, http.StatusBadRequest, messageNotPost, true)
		return
	}

	if err := r.ParseForm(); err != nil {
		log.Debug("failed to parse form", zap.Error(err))
		h.respond(w, log, http.StatusBadRequest, "Invalid form data", true)
		return
	}

	if err := comment.Validate(r.PostForm, h.store.PostExists); err != nil {
		var validationErr *comment.ValidationError
		if errors.As(err, &validationErr) {
			log.Debug("invalid comment", zap.String("field", validationErr.Field))
		}
		h.respond(w, log, http.StatusBadRequest, err.Error(), true)
		return
	}

	c := comment.New(r.PostForm, h.clientIP(r), h.salt, h.now())

	path, err := h.store.Save(r.Context(), c)
	if err != nil {
		log.Error("failed to save comment", zap.Error(err))
		captureException(r.Context(), err)
		h.respond(w, log, http.StatusInternalServerError, messageFailed, true)
		return
	}

	log.Info("comment accepted",
		zap.String("page_id", c.PageID),
		zap.String("file", path),
	)

	h.respond(w, log, http.StatusOK, messageAccepted, false)
}

func (h *CommentHandler) respond(w http.ResponseWriter, log *zap.Logger, status int, message string, isError bool) {
	body, err := json.Marshal(Response{Message: message, IsError: isError})
	if err != nil {
		log.Error("failed to encode response", zap.Error(err))
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if _, err := w.Write(body); err != nil {
		log.Debug("failed to write response", zap.Error(err))
	}
}

// clientIP returns the address of the commenter. X-Forwarded-For is
// only honoured when the server runs behind a trusted proxy.
func (h *CommentHandler) clientIP(r *http.Request) string {
	if h.trustProxy {
		if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
			first, _, _ := strings.Cut(forwarded, ",")
			if ip := strings.TrimSpace(first); ip != "" {
				return ip
			}
		}
	}

	if r.RemoteAddr == "" {
		return "Unknown"
	}

	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}

	return r.RemoteAddr
}

func captureException(ctx context.Context, err error) {
	if hub := sentry.GetHubFromContext(ctx); hub != nil {
		hub.CaptureException(err)
		return
	}

	sentry.CaptureException(err)
}
