package cmd

import (
	"fmt"
	"net/http"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/hugocs/hugocs/client"
	"github.com/hugocs/hugocs/util/logging"
)

var (
	batchCmdDescription = `The batch command reads a yaml or json list of comments and
submits them to a comment endpoint concurrently. Every list
entry maps field names to values.

The form is obtained like in the submit command.`
	batchCmd = &cli.Command{
		Name:        "batch",
		Usage:       "Submit a list of comments to a comment endpoint.",
		Description: batchCmdDescription,
		ArgsUsage:   "FILE",
		Action:      batchAction,
		Flags: concatFlags(clientFlags, []cli.Flag{
			&cli.IntFlag{
				Name:     "concurrency",
				Aliases:  []string{"n"},
				Usage:    "the maximum number of concurrent submissions.",
				Value:    4,
				Category: "client",
			},
		}),
	}
)

func batchAction(ctx *cli.Context) error {
	log, err := logging.LoggerFromContext(ctx.Context)
	if err != nil {
		return err
	}

	if ctx.NArg() != 1 {
		return fmt.Errorf("expected exactly one batch file, got %d", ctx.NArg())
	}

	file, err := os.Open(ctx.Args().First())
	if err != nil {
		return err
	}
	defer file.Close()

	entries, err := client.LoadBatch(file)
	if err != nil {
		return err
	}

	httpClient := &http.Client{Timeout: ctx.Duration("timeout")}

	template, endpoint, err := loadForm(ctx.Context, ctx, httpClient)
	if err != nil {
		return err
	}

	pool, err := client.NewPool(client.PoolParams{
		Submitter: client.Params{
			Endpoint: endpoint,
			Client:   httpClient,
			Log:      log,
		},
		Size: ctx.Int("concurrency"),
		Log:  log,
	})
	if err != nil {
		return err
	}
	defer pool.Close()

	results := client.SubmitBatch(ctx.Context, pool, template, entries)

	failed := 0
	for _, result := range results {
		switch {
		case result.Err != nil:
			failed++
			fmt.Fprintf(ctx.App.Writer, "%d: %s\n", result.Index, result.Err)
		case result.Outcome.State != client.StateSuccess:
			failed++
			fmt.Fprintf(ctx.App.Writer, "%d: %s\n", result.Index, result.Outcome.Area.Text)
		default:
			fmt.Fprintf(ctx.App.Writer, "%d: ok\n", result.Index)
		}
	}

	log.Info("batch submitted",
		zap.Int("total", len(results)),
		zap.Int("failed", failed),
	)

	if failed > 0 {
		return cli.Exit(fmt.Sprintf("%d of %d comments failed", failed, len(results)), 2)
	}

	return nil
}

func init() {
	rootApp.Commands = append(rootApp.Commands, batchCmd)
}
