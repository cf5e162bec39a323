package cmd

import (
	"os"

	"github.com/urfave/cli/v2"

	"github.com/hugocs/hugocs/util/logging"
)

var (
	runCmdDescription = `The run command detects the execution environment from the
environment variables and starts the comment endpoint.

If the AWS_LAMBDA_RUNTIME_API environment variable is set, the
AWS Lambda handler is started, matching the lambda command.

Otherwise, the standalone http server is started, matching the
serve command.`
	runCmd = &cli.Command{
		Name:        "run",
		Usage:       "Detect execution environment and start the comment endpoint.",
		Description: runCmdDescription,
		Action:      runAction,
		Flags:       concatFlags(storeFlags, routeFlags, listenFlags, lambdaFlags),
	}
)

func runAction(ctx *cli.Context) error {
	log, err := logging.LoggerFromContext(ctx.Context)
	if err != nil {
		return err
	}

	if isAWSLambda() {
		log.Info("detected AWS Lambda environment")
		return lambdaAction(ctx)
	}

	log.Info("detected standalone environment")
	return serveAction(ctx)
}

func isAWSLambda() bool {
	env, ok := os.LookupEnv("AWS_LAMBDA_RUNTIME_API")
	return ok && env != ""
}

func init() {
	rootApp.Commands = append(rootApp.Commands, runCmd)
}
