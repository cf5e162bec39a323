package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/hugocs/hugocs/client"
	"github.com/hugocs/hugocs/config"
	"github.com/hugocs/hugocs/handler"
	"github.com/hugocs/hugocs/internal/server"
	"github.com/hugocs/hugocs/store"
)

func newSite(t *testing.T) (*httptest.Server, store.Config) {
	log := zaptest.NewLogger(t)

	cfg := config.Config{
		Store: store.Config{
			Src:      t.TempDir(),
			Content:  "content",
			Comments: "comments",
		},
		Http: server.HttpConfig{Path: "/comment"},
	}

	postDir := filepath.Join(cfg.Store.ContentDir(), "post")
	require.NoError(t, os.MkdirAll(postDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(postDir, "hello.md"), []byte("# hello"), 0600))

	fileStore := store.NewFileStore(store.Params{Config: cfg.Store, Log: log})

	commentHandler := handler.NewCommentHandler(handler.CommentHandlerParams{
		Store:  fileStore,
		Config: cfg,
		Log:    log,
	})
	formHandler := handler.NewFormHandler(handler.FormHandlerParams{
		Config: cfg,
		Log:    log,
	})

	mux := server.NewMux([]*server.HttpHandler{
		handler.NewCommentRoute(commentHandler, cfg).Handler,
		handler.NewFormRoute(formHandler).Handler,
		handler.NewHealthRoute().Handler,
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return srv, cfg.Store
}

func fetchForm(t *testing.T, srv *httptest.Server) *client.Form {
	res, err := http.Get(srv.URL + "/new?page_id=post/hello")
	require.NoError(t, err)
	defer res.Body.Close()

	require.Equal(t, http.StatusOK, res.StatusCode)

	form, err := client.ParseForm(res.Body, client.DefaultFormID)
	require.NoError(t, err)
	return form
}

func TestSubmitComment(t *testing.T) {
	srv, storeConfig := newSite(t)

	form := fetchForm(t, srv)
	assert.Equal(t, "/comment", form.Action)

	require.NoError(t, form.Set("name", "Juha"))
	require.NoError(t, form.Set("email", "juha@example.com"))
	require.NoError(t, form.Set("body", "Nice post"))

	submitter, err := client.New(client.Params{
		Endpoint: srv.URL + form.Action,
		Log:      zaptest.NewLogger(t),
	})
	require.NoError(t, err)

	outcome, err := submitter.Submit(context.Background(), form)
	require.NoError(t, err)

	assert.Equal(t, client.StateSuccess, outcome.State)
	assert.Equal(t, client.SuccessMessage, outcome.Area.Text)

	name, _ := form.Get("name")
	assert.Equal(t, "", name)
	pageID, _ := form.Get("page_id")
	assert.Equal(t, "post/hello", pageID)

	files, err := filepath.Glob(filepath.Join(storeConfig.CommentsDir(), "post", "hello", "*-juha-nice-post.json"))
	require.NoError(t, err)
	assert.Len(t, files, 1)
}

func TestSubmitComment_Rejected(t *testing.T) {
	srv, storeConfig := newSite(t)

	form := fetchForm(t, srv)
	require.NoError(t, form.Set("name", "Juha"))
	require.NoError(t, form.Set("email", "juha@example.com"))

	submitter, err := client.New(client.Params{Endpoint: srv.URL + form.Action})
	require.NoError(t, err)

	outcome, err := submitter.Submit(context.Background(), form)
	require.NoError(t, err)

	assert.Equal(t, client.StateError, outcome.State)
	assert.Equal(t, http.StatusBadRequest, outcome.StatusCode)
	assert.Equal(t, "You forgot to write the actual comment!", outcome.Area.Text)
	assert.True(t, outcome.Area.HasClass(client.ClassError))

	name, _ := form.Get("name")
	assert.Equal(t, "Juha", name)

	_, err = os.Stat(storeConfig.CommentsDir())
	assert.True(t, os.IsNotExist(err))
}

func TestHealthRoute(t *testing.T) {
	srv, _ := newSite(t)

	res, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer res.Body.Close()

	assert.Equal(t, http.StatusOK, res.StatusCode)
}
