package cmd

import (
	"github.com/urfave/cli/v2"

	"github.com/hugocs/hugocs/app"
	"github.com/hugocs/hugocs/app/lambda"
	"github.com/hugocs/hugocs/util/conf"
	"github.com/hugocs/hugocs/util/logging"
)

var (
	lambdaCmdDescription = `The lambda command starts the comment endpoint as an AWS Lambda
runtime interface client, so it can be invoked by API Gateway
or an Application Load Balancer without a http server.

The command blocks indefinitely, processing incoming AWS Lambda
events.`
	lambdaCmd = &cli.Command{
		Name:        "lambda",
		Usage:       "Run the AWS Lambda handler.",
		Description: lambdaCmdDescription,
		Action:      lambdaAction,
		Flags:       concatFlags(storeFlags, routeFlags, lambdaFlags),
	}
)

func lambdaAction(ctx *cli.Context) error {
	log, err := logging.LoggerFromContext(ctx.Context)
	if err != nil {
		return err
	}

	if _, err := loadConfig(ctx); err != nil {
		return err
	}

	lambdaCfg, err := conf.Parse[lambda.Config](conf.ParseOptions{
		Cli:      ctx,
		Defaults: conf.DefaultConfig{"lambda_proxy_source": string(lambda.ProxySourceApiGatewayV2)},
		Log:      log,
	})
	if err != nil {
		return err
	}

	if lambdaCfg.ProxySource, err = lambda.ParseProxySource(lambdaCfg.ProxySource.String()); err != nil {
		return err
	}

	app, err := app.New(ctx.Context)
	if err != nil {
		return err
	}

	log.Info("starting AWS Lambda handler")

	return app.Run(ctx.Context, lambda.Module(lambdaCfg))
}

func init() {
	rootApp.Commands = append(rootApp.Commands, lambdaCmd)
}
