package internal

import "go.uber.org/zap"

// Config carries the construction settings of a cache. Options in the core
// package and the command tools both fill it in.
type Config struct {
	Path     string
	AutoSync bool
	Codec    string
	FileLock bool
	Logger   *zap.Logger
}

const DEFAULT_FILE_NAME = "datastore"
const DEFAULT_CODEC = "gob"

func DefaultConfig() *Config {
	return &Config{
		Path:     "",
		AutoSync: false,
		Codec:    DEFAULT_CODEC,
		FileLock: false,
		Logger:   zap.NewNop(),
	}
}
