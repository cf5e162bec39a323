package cmd

import (
	"github.com/urfave/cli/v2"

	"github.com/hugocs/hugocs/app"
	"github.com/hugocs/hugocs/app/standalone"
)

var (
	serveCmdDescription = `The serve command starts a http server that accepts comments
posted to the comment path and stores them below the comments
directory of the site.

The server also renders a test page holding the comment form
at /new and reports its health at /health.

The command blocks until the process is signalled to stop.`
	serveCmd = &cli.Command{
		Name:        "serve",
		Usage:       "Start a http server and accept comments.",
		Description: serveCmdDescription,
		Action:      serveAction,
		Flags:       concatFlags(storeFlags, routeFlags, listenFlags),
	}
)

func serveAction(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	app, err := app.New(ctx.Context)
	if err != nil {
		return err
	}

	return app.Run(ctx.Context, standalone.Module(standalone.Config{
		HttpConfig: cfg.Http,
	}))
}

func init() {
	rootApp.Commands = append(rootApp.Commands, serveCmd)
}
