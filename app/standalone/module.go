package standalone

import (
	"go.uber.org/fx"

	"github.com/hugocs/hugocs/handler"
	"github.com/hugocs/hugocs/internal/server"
	"github.com/hugocs/hugocs/util/logging"
)

func Module(config Config) fx.Option {
	return fx.Module(
		"serve",
		// rename logger for module
		logging.DecorateLogger("serve"),
		// provide handlers
		handler.Module(),
		// provide server
		server.Module(config.HttpConfig),
	)
}
