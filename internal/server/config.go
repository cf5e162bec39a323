package server

type HttpConfig struct {
	// Host is the address to listen on. Empty means any address.
	Host string `conf:"host"`

	// Port is the port to listen on.
	Port int `conf:"port"`

	// H2c enables HTTP/2 cleartext upgrades.
	H2c bool `conf:"h2c"`

	// Path is the url path comments are posted to.
	Path string `conf:"path"`

	// TrustProxy makes handlers take the client address from the
	// X-Forwarded-For header.
	TrustProxy bool `conf:"trust_proxy"`
}

// DefaultConfig holds the defaults of HttpConfig, keyed by its conf tags.
var DefaultConfig = map[string]any{
	"host":        "",
	"port":        8080,
	"h2c":         false,
	"path":        "/comment",
	"trust_proxy": false,
}
