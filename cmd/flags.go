package cmd

import "github.com/urfave/cli/v2"

var storeFlags = []cli.Flag{
	&cli.StringFlag{
		Name:     "src",
		Usage:    "full path to the site sources.",
		Value:    ".",
		Category: "store",
		EnvVars:  []string{"HUGOCS_SRC"},
	},
	&cli.StringFlag{
		Name:     "content",
		Usage:    "the content directory, relative to the sources.",
		Value:    "content",
		Category: "store",
		EnvVars:  []string{"HUGOCS_CONTENT"},
	},
	&cli.StringFlag{
		Name:     "comments",
		Usage:    "the directory to save comments to, relative to the sources.",
		Value:    "comments",
		Category: "store",
		EnvVars:  []string{"HUGOCS_COMMENTS"},
	},
	&cli.StringFlag{
		Name:     "touch",
		Usage:    "file to update whenever a comment is saved, relative to the sources. Some watch scripts need this.",
		Category: "store",
		EnvVars:  []string{"HUGOCS_TOUCH"},
	},
	&cli.StringFlag{
		Name:     "salt",
		Usage:    "salt used when hashing email addresses.",
		Category: "store",
		EnvVars:  []string{"HUGOCS_SALT"},
	},
}

var routeFlags = []cli.Flag{
	&cli.StringFlag{
		Name:     "path",
		Usage:    "the url path comments are posted to.",
		Value:    "/comment",
		Category: "http",
		EnvVars:  []string{"HUGOCS_PATH"},
	},
	&cli.BoolFlag{
		Name:     "trust-proxy",
		Usage:    "take the commenter's address from the X-Forwarded-For header.",
		Category: "http",
		EnvVars:  []string{"HUGOCS_TRUST_PROXY"},
	},
}

var listenFlags = []cli.Flag{
	&cli.StringFlag{
		Name:     "host",
		Aliases:  []string{"address", "H"},
		Usage:    "the address to listen on. Defaults to any address.",
		Category: "http",
		EnvVars:  []string{"HTTP_HOST"},
	},
	&cli.IntFlag{
		Name:     "port",
		Aliases:  []string{"P"},
		Usage:    "the port to listen on.",
		Value:    8080,
		Category: "http",
		EnvVars:  []string{"HTTP_PORT"},
	},
	&cli.BoolFlag{
		Name:     "h2c",
		Usage:    "enable HTTP/2 cleartext upgrade.",
		Category: "http",
		EnvVars:  []string{"HTTP_H2C"},
	},
}

var lambdaFlags = []cli.Flag{
	&cli.StringFlag{
		Name:     "lambda-proxy-source",
		Usage:    "the source of the AWS Lambda event. Options: API_GW_V1, API_GW_V2, ALB.",
		Value:    "API_GW_V2",
		Category: "lambda",
		EnvVars:  []string{"LAMBDA_PROXY_SOURCE"},
	},
}

func concatFlags(groups ...[]cli.Flag) []cli.Flag {
	var flags []cli.Flag
	for _, group := range groups {
		flags = append(flags, group...)
	}
	return flags
}
