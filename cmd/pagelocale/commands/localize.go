package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/pagelocale/internal/logfields"
	"git.home.luguber.info/inful/pagelocale/internal/manifest"
	"git.home.luguber.info/inful/pagelocale/internal/metrics"
	"git.home.luguber.info/inful/pagelocale/internal/pipeline"
)

// LocalizeCmd implements the 'localize' command.
type LocalizeCmd struct {
	Input       string `arg:"" help:"Page manifest to localize (.yaml, .yml or .json)" type:"existingfile"`
	Output      string `short:"o" help:"Output file; '-' writes to stdout" default:"-"`
	Format      string `short:"f" help:"Output format" enum:"json,yaml" default:"json"`
	RunManifest string `name:"run-manifest" help:"Write a JSON run manifest to this path"`
	MetricsFile string `name:"metrics-file" help:"Write Prometheus metrics in text format to this path"`
}

func (l *LocalizeCmd) Run(g *Global, root *CLI) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	return l.localize(ctx, g, root.Config)
}

// localize performs one complete run. It is shared with the watch command.
func (l *LocalizeCmd) localize(ctx context.Context, g *Global, configPath string) error {
	logger := g.logger()

	format, err := manifest.ParseFormat(l.Format)
	if err != nil {
		return err
	}
	cfg, rawConfig, localizer, err := loadLocalizer(configPath)
	if err != nil {
		return err
	}
	input, err := manifest.ReadPages(l.Input)
	if err != nil {
		return err
	}

	var recorder metrics.Recorder = metrics.NoopRecorder{}
	var promRegistry *prom.Registry
	if l.MetricsFile != "" {
		promRegistry = prom.NewRegistry()
		recorder = metrics.NewPrometheusRecorder(promRegistry)
	}

	registry, err := newRegistry(cfg, localizer, recorder)
	if err != nil {
		return err
	}

	logger.Info("Localizing pages",
		logfields.File(l.Input),
		"pages", len(input),
		"languages", cfg.Languages)

	res, runErr := pipeline.NewPipeline(registry,
		pipeline.WithRecorder(recorder),
		pipeline.WithLogger(logger)).Run(ctx, input)

	if l.RunManifest != "" {
		m, err := manifest.NewRunManifest(rawConfig, input, res, registry, runErr)
		if err != nil {
			return err
		}
		if err := manifest.WriteRunManifest(l.RunManifest, m); err != nil {
			return err
		}
		logger.Debug("Wrote run manifest", logfields.File(l.RunManifest))
	}
	if promRegistry != nil {
		if err := metrics.WriteTextfile(l.MetricsFile, promRegistry); err != nil {
			logger.Warn("Failed to write metrics file", logfields.File(l.MetricsFile), logfields.Error(err))
		}
	}
	if runErr != nil {
		return runErr
	}

	if l.Output == "" || l.Output == "-" {
		data, err := manifest.EncodePages(res.Pages, format)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(g.out(), string(data))
		return err
	}
	if err := manifest.WritePages(l.Output, res.Pages, format); err != nil {
		return err
	}
	logger.Info("Wrote localized pages",
		logfields.File(l.Output),
		"pages", len(res.Pages),
		logfields.BuildID(res.Report.BuildID))
	return nil
}
