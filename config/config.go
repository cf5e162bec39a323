package config

import (
	"github.com/hugocs/hugocs/internal/server"
	"github.com/hugocs/hugocs/store"
	"github.com/hugocs/hugocs/util/conf"
)

// EnvPrefix is the prefix of all env vars read into Config.
const EnvPrefix = "HUGOCS_"

type Config struct {
	// LogLevel is the log level for the application
	LogLevel string `conf:"log_level"`

	// LogFormat is the log format for the application
	LogFormat string `conf:"log_format"`

	// Store configures where comments are read from and written to
	Store store.Config `conf:"store"`

	// Http configures the comment endpoint and the standalone server
	Http server.HttpConfig `conf:"http"`
}

// DefaultConfig holds the defaults for every config key.
var DefaultConfig = conf.MergeDefaults("",
	conf.DefaultConfig{
		"log_level":  "info",
		"log_format": "production",
	},
	conf.MergeDefaults("store", store.DefaultConfig),
	conf.MergeDefaults("http", server.DefaultConfig),
)

// CliMap maps cli flag names to config keys.
var CliMap = map[string]string{
	"log-level":   "log_level",
	"log-format":  "log_format",
	"src":         "store.src",
	"content":     "store.content",
	"comments":    "store.comments",
	"touch":       "store.touch",
	"salt":        "store.salt",
	"host":        "http.host",
	"port":        "http.port",
	"h2c":         "http.h2c",
	"path":        "http.path",
	"trust-proxy": "http.trust_proxy",
}
