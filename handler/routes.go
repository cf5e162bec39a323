package handler

import (
	"net/http"

	"github.com/hugocs/hugocs/config"
	"github.com/hugocs/hugocs/internal/server"
)

func NewCommentRoute(handler *CommentHandler, cfg config.Config) server.HttpHandlerResult {
	path := cfg.Http.Path
	if path == "" {
		path = "/comment"
	}

	return server.AsHttpHandler(path, handler)
}

func NewFormRoute(handler *FormHandler) server.HttpHandlerResult {
	return server.AsHttpHandler("GET /new", handler)
}

func NewHealthRoute() server.HttpHandlerResult {
	return server.AsHttpHandler("/health", http.HandlerFunc(HealthHandler))
}
