package app

import (
	"context"

	"go.uber.org/fx"

	"github.com/hugocs/hugocs/config"
	"github.com/hugocs/hugocs/handler"
	"github.com/hugocs/hugocs/internal/shell"
	"github.com/hugocs/hugocs/store"
	"github.com/hugocs/hugocs/util/conf"
	"github.com/hugocs/hugocs/util/logging"
)

// New creates the application shell from the logger and config stored
// in ctx. The shell provides the config and the comment store to every
// module it runs.
func New(ctx context.Context) (*shell.Shell, error) {
	log, err := logging.LoggerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	cfg, err := conf.GetConfigFromContext[config.Config](ctx)
	if err != nil {
		return nil, err
	}

	return shell.New(log, SharedModule(cfg)), nil
}

// SharedModule provides the global config and the comment store.
func SharedModule(cfg config.Config) fx.Option {
	return fx.Module(
		"shared",
		// provide global config
		fx.Supply(cfg),
		// provide store config
		fx.Supply(cfg.Store),
		// provide comment store
		fx.Provide(
			fx.Annotate(
				store.NewFileStore,
				fx.As(new(handler.CommentStore)),
			),
		),
	)
}
