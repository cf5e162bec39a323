package lambda

import (
	"context"
	"net/http"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/awslabs/aws-lambda-go-api-proxy/httpadapter"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/hugocs/hugocs/internal/server"
)

type LambdaHandlerParams struct {
	fx.In

	Config Config

	// Handlers are the routes shared with the standalone server.
	Handlers []*server.HttpHandler `group:"handlers"`

	Context context.Context

	Logger *zap.Logger
}

// LambdaHandler serves the comment routes to AWS Lambda events.
type LambdaHandler struct {
	config Config
	ctx    context.Context
	cancel context.CancelFunc
	mux    *http.ServeMux
	log    *zap.Logger
}

func NewLambdaHandler(params LambdaHandlerParams) *LambdaHandler {
	ctx, cancel := context.WithCancel(params.Context)

	return &LambdaHandler{
		config: params.Config,
		ctx:    ctx,
		cancel: cancel,
		mux:    server.NewMux(params.Handlers),
		log:    params.Logger,
	}
}

func NewLifecycleHandler(params LambdaHandlerParams, lc fx.Lifecycle) *LambdaHandler {
	handler := NewLambdaHandler(params)
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			return handler.Start()
		},
		OnStop: func(context.Context) error {
			handler.Shutdown()
			return nil
		},
	})
	return handler
}

// Start runs the lambda runtime client in a new goroutine.
func (h *LambdaHandler) Start() error {
	proxy, err := h.proxyFunction()
	if err != nil {
		return err
	}

	h.log.Debug("using lambda event proxy", zap.Stringer("proxy_source", h.config.ProxySource))

	go lambda.StartWithOptions(proxy, lambda.WithContext(h.ctx))

	return nil
}

func (h *LambdaHandler) Shutdown() {
	h.cancel()
}

func (h *LambdaHandler) proxyFunction() (any, error) {
	source, err := ParseProxySource(h.config.ProxySource.String())
	if err != nil {
		return nil, err
	}

	switch source {
	case ProxySourceApiGatewayV1:
		return httpadapter.New(h.mux).ProxyWithContext, nil
	case ProxySourceApiGatewayV2:
		return httpadapter.NewV2(h.mux).ProxyWithContext, nil
	default:
		return httpadapter.NewALB(h.mux).ProxyWithContext, nil
	}
}
