package core

import (
	"go.uber.org/zap"

	"github.com/0xRadioAc7iv/go-picklecache/internal"
)

// Option configures a Cache built by New or Open.
type Option func(*internal.Config)

// WithPath sets the backing file. Empty keeps the default
// "datastore" + codec extension in the working directory.
func WithPath(path string) Option {
	return func(c *internal.Config) {
		c.Path = path
	}
}

// WithAutoSync flushes after every successful Set and Delete.
func WithAutoSync(autosync bool) Option {
	return func(c *internal.Config) {
		c.AutoSync = autosync
	}
}

// WithCodec selects the payload serializer by name: "gob" (default),
// "json" or "yaml". The JSON codec refuses strings that are not valid
// UTF-8, so Flush reports ErrSerialize for them.
func WithCodec(name string) Option {
	return func(c *internal.Config) {
		c.Codec = name
	}
}

// WithFileLock takes an exclusive advisory lock on "<path>.lock" for the
// lifetime of the cache. Release it with Close.
func WithFileLock(enabled bool) Option {
	return func(c *internal.Config) {
		c.FileLock = enabled
	}
}

// WithLogger sets the logger for load and flush events. nil is ignored.
func WithLogger(logger *zap.Logger) Option {
	return func(c *internal.Config) {
		if logger != nil {
			c.Logger = logger
		}
	}
}
