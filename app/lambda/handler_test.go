package lambda

import (
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/hugocs/hugocs/internal/server"
)

func newTestHandler(t *testing.T, source ProxySource) *LambdaHandler {
	echo := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, r.Method+" "+r.URL.Path)
	})

	return NewLambdaHandler(LambdaHandlerParams{
		Config:   Config{ProxySource: source},
		Handlers: []*server.HttpHandler{server.AsHttpHandler("/comment", echo).Handler},
		Context:  context.Background(),
		Logger:   zaptest.NewLogger(t),
	})
}

func TestParseProxySource(t *testing.T) {
	tests := map[string]ProxySource{
		"API_GW_V1": ProxySourceApiGatewayV1,
		"api_gw_v2": ProxySourceApiGatewayV2,
		" alb ":     ProxySourceAlb,
	}

	for in, expected := range tests {
		t.Run(in, func(t *testing.T) {
			actual, err := ParseProxySource(in)
			require.NoError(t, err)
			assert.Equal(t, expected, actual)
		})
	}
}

func TestParseProxySource_Invalid(t *testing.T) {
	_, err := ParseProxySource("SQS")

	assert.Error(t, err)
}

func TestLambdaHandler_Start_InvalidSource(t *testing.T) {
	h := newTestHandler(t, "SQS")

	assert.Error(t, h.Start())
}

func TestLambdaHandler_ProxyV2(t *testing.T) {
	h := newTestHandler(t, ProxySourceApiGatewayV2)

	proxy, err := h.proxyFunction()
	require.NoError(t, err)

	fn, ok := proxy.(func(context.Context, events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error))
	require.True(t, ok)

	res, err := fn(context.Background(), events.APIGatewayV2HTTPRequest{
		RawPath: "/comment",
		RequestContext: events.APIGatewayV2HTTPRequestContext{
			HTTP: events.APIGatewayV2HTTPRequestContextHTTPDescription{
				Method: http.MethodPost,
				Path:   "/comment",
			},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "POST /comment", res.Body)
}
