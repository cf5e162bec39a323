package client_test

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/hugocs/hugocs/client"
)

func TestLoadBatch_YAML(t *testing.T) {
	input := `
- name: Juha
  body: First!
- name: Anna
  body: |
    Two lines
    of comment
`

	entries, err := client.LoadBatch(strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, entries, 2)
	assert.Equal(t, client.Entry{"name": "Juha", "body": "First!"}, entries[0])
	assert.Equal(t, "Two lines\nof comment\n", entries[1]["body"])
}

func TestLoadBatch_JSON(t *testing.T) {
	entries, err := client.LoadBatch(strings.NewReader(`[{"name": "Juha", "body": "Hi"}]`))
	require.NoError(t, err)

	assert.Equal(t, []client.Entry{{"name": "Juha", "body": "Hi"}}, entries)
}

func TestLoadBatch_Empty(t *testing.T) {
	entries, err := client.LoadBatch(strings.NewReader(""))
	require.NoError(t, err)

	assert.Empty(t, entries)
}

func TestLoadBatch_Invalid(t *testing.T) {
	_, err := client.LoadBatch(strings.NewReader("name: not a list"))

	assert.Error(t, err)
}

func TestNewPool_InvalidEndpoint(t *testing.T) {
	_, err := client.NewPool(client.PoolParams{
		Submitter: client.Params{Endpoint: "/comment"},
	})

	assert.ErrorIs(t, err, client.ErrInvalidEndpoint)
}

func TestSubmitBatch(t *testing.T) {
	server, requests := newEndpoint(t, http.StatusOK, `{"message": "ok"}`)

	pool, err := client.NewPool(client.PoolParams{
		Submitter: client.Params{Endpoint: server.URL},
		Size:      2,
		Log:       zaptest.NewLogger(t),
	})
	require.NoError(t, err)
	defer pool.Close()

	template := client.NewForm("comment-form",
		client.Field{Name: "page_id", Default: "post/hello"},
		client.Field{Name: "name"},
		client.Field{Name: "body"},
	)

	entries := []client.Entry{
		{"name": "Juha", "body": "one"},
		{"name": "Anna", "body": "two"},
		{"name": "Mika", "body": "three"},
		{"name": "Bot", "unknown": "x"},
	}

	results := client.SubmitBatch(context.Background(), pool, template, entries)
	require.Len(t, results, 4)

	for i, result := range results[:3] {
		assert.Equal(t, i, result.Index)
		assert.NoError(t, result.Err)
		assert.Equal(t, client.StateSuccess, result.Outcome.State)
	}

	assert.ErrorIs(t, results[3].Err, client.ErrUnknownField)

	require.Len(t, requests(), 3)
	bodies := map[string]bool{}
	for _, req := range requests() {
		values, err := url.ParseQuery(req.Body)
		require.NoError(t, err)
		assert.Equal(t, "post/hello", values.Get("page_id"))
		bodies[values.Get("body")] = true
	}
	assert.Equal(t, map[string]bool{"one": true, "two": true, "three": true}, bodies)

	// the template itself is never modified
	name, _ := template.Get("name")
	assert.Equal(t, "", name)
}
