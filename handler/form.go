package handler

import (
	"bytes"
	_ "embed"
	"html/template"
	"net/http"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/hugocs/hugocs/client"
	"github.com/hugocs/hugocs/config"
)

//go:embed templates/new.html
var newCommentTemplate string

var newComment = template.Must(template.New("new").Parse(newCommentTemplate))

type newCommentData struct {
	FormID     string
	FieldClass string
	Action     string
	PageID     string
}

type FormHandlerParams struct {
	fx.In

	Config config.Config
	Log    *zap.Logger
}

func NewFormHandler(params FormHandlerParams) *FormHandler {
	return &FormHandler{
		action: params.Config.Http.Path,
		log:    params.Log,
	}
}

// FormHandler renders a page holding the comment form, for trying out
// the endpoint by hand.
type FormHandler struct {
	action string
	log    *zap.Logger
}

func (h *FormHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	data := newCommentData{
		FormID:     client.DefaultFormID,
		FieldClass: client.FieldClass,
		Action:     h.action,
		PageID:     r.URL.Query().Get("page_id"),
	}

	var buf bytes.Buffer
	if err := newComment.Execute(&buf, data); err != nil {
		h.log.Error("failed to render form", zap.Error(err))
		http.Error(w, "failed to render form", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}
