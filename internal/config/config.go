// Package config loads settings for the command tools from an optional
// config file and PICKLECACHE_* environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/0xRadioAc7iv/go-picklecache/core"
	"github.com/0xRadioAc7iv/go-picklecache/internal"
	"github.com/0xRadioAc7iv/go-picklecache/internal/logger"
)

const EnvPrefix = "PICKLECACHE"

// Settings mirrors internal.Config plus the logging knobs the commands need.
type Settings struct {
	Path     string `mapstructure:"path"`
	AutoSync bool   `mapstructure:"autosync"`
	Codec    string `mapstructure:"codec"`
	Lock     bool   `mapstructure:"lock"`
	LogLevel string `mapstructure:"log_level"`
	LogFile  string `mapstructure:"log_file"`
}

// Load reads file (YAML, JSON or TOML by extension) when it is non-empty,
// then applies environment overrides. Missing values fall back to
// internal.DefaultConfig.
func Load(file string) (*Settings, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	def := internal.DefaultConfig()
	v.SetDefault("path", def.Path)
	v.SetDefault("autosync", def.AutoSync)
	v.SetDefault("codec", def.Codec)
	v.SetDefault("lock", def.FileLock)
	v.SetDefault("log_level", logger.DefaultLevel)
	v.SetDefault("log_file", "")

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", file, err)
		}
	}

	s := &Settings{}
	if err := v.Unmarshal(s); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	return s, nil
}

// Logger builds the zap logger described by the settings.
func (s *Settings) Logger() *zap.Logger {
	return logger.New(logger.Config{
		Level: s.LogLevel,
		File:  s.LogFile,
	})
}

// Options converts the settings into cache construction options.
func (s *Settings) Options(log *zap.Logger) []core.Option {
	return []core.Option{
		core.WithPath(s.Path),
		core.WithAutoSync(s.AutoSync),
		core.WithCodec(s.Codec),
		core.WithFileLock(s.Lock),
		core.WithLogger(log),
	}
}

// OpenStringCache opens the string-to-string cache the command tools work on.
func (s *Settings) OpenStringCache(log *zap.Logger) (*core.Cache[string, string], error) {
	return core.New[string, string](s.Options(log)...)
}
