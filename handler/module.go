package handler

import "go.uber.org/fx"

// Module provides the comment, form and health routes.
func Module() fx.Option {
	return fx.Module(
		"handler",
		fx.Provide(
			NewCommentHandler,
			NewFormHandler,
			NewCommentRoute,
			NewFormRoute,
			NewHealthRoute,
		),
	)
}
