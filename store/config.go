package store

import "path/filepath"

type Config struct {
	// Src is the root of the site sources. All other paths are
	// relative to it.
	Src string `conf:"src"`

	// Content is the content directory of the site.
	Content string `conf:"content"`

	// Comments is the directory comments are written to.
	Comments string `conf:"comments"`

	// Touch is a file updated whenever a comment is written, for watch
	// scripts that do not notice new directories. Empty disables it.
	Touch string `conf:"touch"`

	// Salt is appended to email addresses before hashing.
	Salt string `conf:"salt"`
}

func (c Config) ContentDir() string {
	return filepath.Join(c.Src, c.Content)
}

func (c Config) CommentsDir() string {
	return filepath.Join(c.Src, c.Comments)
}

func (c Config) TouchFile() string {
	if c.Touch == "" {
		return ""
	}

	return filepath.Join(c.Src, c.Touch)
}

// DefaultConfig holds the defaults of Config, keyed by its conf tags.
var DefaultConfig = map[string]any{
	"src":      ".",
	"content":  "content",
	"comments": "comments",
	"touch":    "",
	"salt":     "",
}
