package config

import (
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/0xRadioAc7iv/go-picklecache/internal/codec"
)

// Flags are shared by the command tools. Flag values win over the config
// file and the environment, but only when given explicitly.
func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "config file (yaml, json or toml)",
			Sources: cli.NewValueSourceChain(cli.EnvVar(EnvPrefix + "_CONFIG")),
		},
		&cli.StringFlag{
			Name:    "path",
			Aliases: []string{"p"},
			Usage:   "backing file (default \"datastore\" + codec extension)",
		},
		&cli.StringFlag{
			Name:  "codec",
			Usage: "payload serializer: " + strings.Join(codec.Names(), ", "),
		},
		&cli.BoolFlag{
			Name:  "autosync",
			Usage: "flush after every mutation",
		},
		&cli.BoolFlag{
			Name:  "lock",
			Usage: "take an exclusive lock on the backing file",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "debug, info, warn or error",
		},
		&cli.StringFlag{
			Name:  "log-file",
			Usage: "also write JSON logs to this rotating file",
		},
	}
}

// FromCommand loads Settings for cmd: config file first, then environment,
// then explicitly set flags.
func FromCommand(cmd *cli.Command) (*Settings, error) {
	s, err := Load(cmd.String("config"))
	if err != nil {
		return nil, err
	}

	if cmd.IsSet("path") {
		s.Path = cmd.String("path")
	}
	if cmd.IsSet("codec") {
		s.Codec = cmd.String("codec")
	}
	if cmd.IsSet("autosync") {
		s.AutoSync = cmd.Bool("autosync")
	}
	if cmd.IsSet("lock") {
		s.Lock = cmd.Bool("lock")
	}
	if cmd.IsSet("log-level") {
		s.LogLevel = cmd.String("log-level")
	}
	if cmd.IsSet("log-file") {
		s.LogFile = cmd.String("log-file")
	}

	return s, nil
}
