package commands

import (
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/pagelocale/internal/config"
	foundationerrors "git.home.luguber.info/inful/pagelocale/internal/foundation/errors"
	"git.home.luguber.info/inful/pagelocale/internal/i18n"
	"git.home.luguber.info/inful/pagelocale/internal/metrics"
	"git.home.luguber.info/inful/pagelocale/internal/plugin"
)

// DefaultConfigPath is used when --config is not given.
const DefaultConfigPath = "pagelocale.yaml"

// Global context passed to subcommands.
type Global struct {
	Logger *slog.Logger
	// Out receives command output; logs go to stderr.
	Out io.Writer
}

func (g *Global) out() io.Writer {
	if g == nil || g.Out == nil {
		return os.Stdout
	}
	return g.Out
}

func (g *Global) logger() *slog.Logger {
	if g == nil || g.Logger == nil {
		return slog.Default()
	}
	return g.Logger
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"pagelocale.yaml" type:"path"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Localize LocalizeCmd `cmd:"" help:"Localize a page manifest into canonical and language-prefixed pages"`
	Validate ValidateCmd `cmd:"" help:"Validate the configuration file"`
	Explain  ExplainCmd  `cmd:"" help:"Show how a single page path would be localized"`
	Watch    WatchCmd    `cmd:"" help:"Re-run localize whenever the configuration or page manifest changes"`
	Init     InitCmd     `cmd:"" help:"Initialize a new configuration file"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// loadLocalizer loads the configuration at path and compiles it. The raw
// file content is returned for run manifest hashing.
func loadLocalizer(path string) (*config.Config, []byte, *i18n.Localizer, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, nil, err
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, nil, foundationerrors.WrapError(err, foundationerrors.CategoryFileSystem, "failed to read config file").
			WithContext("path", path).
			Build()
	}
	l, err := i18n.NewFromConfig(cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, raw, l, nil
}

// newRegistry registers the localization hook.
func newRegistry(cfg *config.Config, l *i18n.Localizer, rec metrics.Recorder) (*plugin.Registry, error) {
	reg := plugin.NewRegistry()
	hook := i18n.NewPlugin(l, i18n.WithConcurrency(cfg.Concurrency), i18n.WithRecorder(rec))
	if err := reg.Register(hook); err != nil {
		return nil, foundationerrors.WrapError(err, foundationerrors.CategoryInternal, "failed to register plugin").Build()
	}
	return reg, nil
}
