package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/hugocs/hugocs/client"
	"github.com/hugocs/hugocs/comment"
	"github.com/hugocs/hugocs/util/logging"
)

var errSubmissionFailed = errors.New("submission failed")

var (
	submitCmdDescription = `The submit command posts a comment to a comment endpoint, the
same way the comment form script does in a browser.

With --page, the page is fetched and the comment form is read
from it, including its hidden fields and its action. Without
it, a comment form with the standard fields is used and
--endpoint is required.

Field values are given as --field name=value.`
	submitCmd = &cli.Command{
		Name:        "submit",
		Usage:       "Submit a comment to a comment endpoint.",
		Description: submitCmdDescription,
		Action:      submitAction,
		Flags: concatFlags(clientFlags, []cli.Flag{
			&cli.StringSliceFlag{
				Name:     "field",
				Aliases:  []string{"f"},
				Usage:    "a field value as name=value. May be repeated.",
				Category: "client",
			},
		}),
	}
)

var clientFlags = []cli.Flag{
	&cli.StringFlag{
		Name:     "endpoint",
		Aliases:  []string{"e"},
		Usage:    "the absolute url comments are posted to. Defaults to the form action of --page.",
		Category: "client",
		EnvVars:  []string{"HUGOCS_ENDPOINT"},
	},
	&cli.StringFlag{
		Name:     "page",
		Usage:    "the url of a page holding the comment form.",
		Category: "client",
	},
	&cli.StringFlag{
		Name:     "form-id",
		Usage:    "the id of the comment form element.",
		Value:    client.DefaultFormID,
		Category: "client",
	},
	&cli.DurationFlag{
		Name:     "timeout",
		Usage:    "the timeout of a single request.",
		Value:    10 * time.Second,
		Category: "client",
	},
}

func submitAction(ctx *cli.Context) error {
	log, err := logging.LoggerFromContext(ctx.Context)
	if err != nil {
		return err
	}

	httpClient := &http.Client{Timeout: ctx.Duration("timeout")}

	form, endpoint, err := loadForm(ctx.Context, ctx, httpClient)
	if err != nil {
		return err
	}

	for _, field := range ctx.StringSlice("field") {
		name, value, ok := strings.Cut(field, "=")
		if !ok {
			return fmt.Errorf("invalid field %q, expected name=value", field)
		}
		if err := form.Set(name, value); err != nil {
			return err
		}
	}

	submitter, err := client.New(client.Params{
		Endpoint: endpoint,
		Client:   httpClient,
		Log:      log,
	})
	if err != nil {
		return err
	}

	outcome, err := submitter.Submit(ctx.Context, form)
	if err != nil {
		return err
	}

	return reportOutcome(ctx, log, outcome)
}

func reportOutcome(ctx *cli.Context, log *zap.Logger, outcome client.Outcome) error {
	fmt.Fprintln(ctx.App.Writer, outcome.Area.Text)

	if outcome.State != client.StateSuccess {
		log.Debug("comment rejected",
			zap.Int("status", outcome.StatusCode),
			zap.Strings("classes", outcome.Area.Classes),
		)
		return cli.Exit(fmt.Errorf("%w: %s", errSubmissionFailed, outcome.Area.Text), 2)
	}

	return nil
}

// loadForm returns the form to submit and the endpoint to post it to.
func loadForm(ctx context.Context, cliCtx *cli.Context, httpClient *http.Client) (*client.Form, string, error) {
	endpoint := cliCtx.String("endpoint")

	page := cliCtx.String("page")
	if page == "" {
		if endpoint == "" {
			return nil, "", errors.New("either --endpoint or --page is required")
		}
		return newCommentForm(cliCtx.String("form-id")), endpoint, nil
	}

	pageURL, err := url.Parse(page)
	if err != nil {
		return nil, "", fmt.Errorf("invalid page url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL.String(), nil)
	if err != nil {
		return nil, "", err
	}

	res, err := httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("error fetching page: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("error fetching page: %s", res.Status)
	}

	form, err := client.ParseForm(res.Body, cliCtx.String("form-id"))
	if err != nil {
		return nil, "", err
	}

	if endpoint == "" {
		action, err := url.Parse(form.Action)
		if err != nil {
			return nil, "", fmt.Errorf("invalid form action: %w", err)
		}
		endpoint = pageURL.ResolveReference(action).String()
	}

	return form, endpoint, nil
}

// newCommentForm returns a form with the fields of the standard
// comment form, in the order the form renders them.
func newCommentForm(id string) *client.Form {
	return client.NewForm(id,
		client.Field{Name: comment.FieldPageID},
		client.Field{Name: comment.FieldContentType, Default: "md"},
		client.Field{Name: comment.FieldAvatarType, Default: "identicon"},
		client.Field{Name: comment.FieldName},
		client.Field{Name: comment.FieldEmail},
		client.Field{Name: comment.FieldWebsite},
		client.Field{Name: comment.FieldHoneypot},
		client.Field{Name: comment.FieldBody},
	)
}

func init() {
	rootApp.Commands = append(rootApp.Commands, submitCmd)
}
