package commands

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	foundationerrors "git.home.luguber.info/inful/pagelocale/internal/foundation/errors"
	"git.home.luguber.info/inful/pagelocale/internal/logfields"
	"git.home.luguber.info/inful/pagelocale/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	Input       string        `arg:"" help:"Page manifest to localize (.yaml, .yml or .json)" type:"existingfile"`
	Output      string        `short:"o" help:"Output file" required:""`
	Format      string        `short:"f" help:"Output format" enum:"json,yaml" default:"json"`
	RunManifest string        `name:"run-manifest" help:"Write a JSON run manifest to this path after each run"`
	MetricsFile string        `name:"metrics-file" help:"Write Prometheus metrics in text format to this path after each run"`
	Debounce    time.Duration `help:"Quiet period before a rebuild" default:"500ms"`
}

func (w *WatchCmd) Run(g *Global, root *CLI) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	return w.watch(ctx, g, root.Config)
}

func (w *WatchCmd) watch(ctx context.Context, g *Global, configPath string) error {
	logger := g.logger()
	run := &LocalizeCmd{
		Input:       w.Input,
		Output:      w.Output,
		Format:      w.Format,
		RunManifest: w.RunManifest,
		MetricsFile: w.MetricsFile,
	}
	rebuild := func(ctx context.Context) error { return run.localize(ctx, g, configPath) }

	// A broken initial configuration is reported but does not stop watching;
	// the next save may fix it.
	if err := rebuild(ctx); err != nil {
		logger.Error("Initial localization failed", logfields.Error(err))
	}

	watcher, err := watch.New([]string{configPath, w.Input}, rebuild,
		watch.WithDebounce(w.Debounce),
		watch.WithLogger(logger))
	if err != nil {
		return foundationerrors.WrapError(err, foundationerrors.CategoryFileSystem, "failed to create watcher").Build()
	}
	if err := watcher.Start(ctx); err != nil {
		return foundationerrors.WrapError(err, foundationerrors.CategoryFileSystem, "failed to start watcher").Build()
	}

	<-ctx.Done()
	logger.Info("Shutdown signal received, stopping watcher")
	return watcher.Stop()
}
