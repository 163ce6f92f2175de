package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/hupe1980/searchctx"
	"github.com/hupe1980/searchctx/wire"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
	"github.com/urfave/cli/v3"
)

// Config is the file form of the global options.
type Config struct {
	Protocol       string    `koanf:"protocol"`
	SessionIDSince string    `koanf:"session_id_since"`
	Log            LogConfig `koanf:"log"`
}

// LogConfig configures diagnostic logging to stderr.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

func defaultConfig() Config {
	return Config{
		Protocol:       wire.Current.String(),
		SessionIDSince: wire.V7_7_0.String(),
		Log:            LogConfig{Level: "warn", Format: "text"},
	}
}

// loadConfig reads path over the defaults. An empty path yields the defaults.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	var parser koanf.Parser
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return cfg, usagef("unsupported config format: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}

	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider(data), parser); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return cfg, fmt.Errorf("unmarshal config %s: %w", path, err)
	}
	return cfg, nil
}

// settings is the resolved runtime configuration of a command.
type settings struct {
	protocol wire.Version
	codec    *searchctx.Codec
	logger   *searchctx.Logger
}

// resolveSettings merges config file values with flags; flags win.
func resolveSettings(cmd *cli.Command) (*settings, error) {
	cfg, err := loadConfig(cmd.String("config"))
	if err != nil {
		return nil, err
	}
	for flag, dst := range map[string]*string{
		"protocol":         &cfg.Protocol,
		"session-id-since": &cfg.SessionIDSince,
		"log-level":        &cfg.Log.Level,
		"log-format":       &cfg.Log.Format,
	} {
		if cmd.IsSet(flag) {
			*dst = cmd.String(flag)
		}
	}

	protocol, err := wire.ParseVersion(cfg.Protocol)
	if err != nil {
		return nil, usagef("protocol: %v", err)
	}
	since, err := wire.ParseVersion(cfg.SessionIDSince)
	if err != nil {
		return nil, usagef("session-id-since: %v", err)
	}
	logger, err := newLogger(cmd.Root().ErrWriter, cfg.Log)
	if err != nil {
		return nil, err
	}

	return &settings{
		protocol: protocol,
		codec: searchctx.NewCodec(
			searchctx.WithSessionIDSince(since),
			searchctx.WithLogger(logger),
		),
		logger: logger.WithVersion(protocol),
	}, nil
}

func newLogger(w io.Writer, cfg LogConfig) (*searchctx.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		return nil, usagef("log level: %v", err)
	}
	opts := &slog.HandlerOptions{Level: level}
	switch cfg.Format {
	case "text", "":
		return searchctx.NewLogger(slog.NewTextHandler(w, opts)), nil
	case "json":
		return searchctx.NewLogger(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, usagef("unknown log format %q", cfg.Format)
	}
}
