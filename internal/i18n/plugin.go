package i18n

import (
	"context"
	"errors"
	"sync"

	"git.home.luguber.info/inful/pagelocale/internal/logfields"
	"git.home.luguber.info/inful/pagelocale/internal/metrics"
	"git.home.luguber.info/inful/pagelocale/internal/page"
	"git.home.luguber.info/inful/pagelocale/internal/plugin"
)

const (
	PluginName    = "i18n"
	PluginVersion = "v1.0.0"
)

// Plugin is the page hook applying Localize results to the pipeline.
type Plugin struct {
	localizer   *Localizer
	concurrency int
	recorder    metrics.Recorder
}

// PluginOption configures a Plugin.
type PluginOption func(*Plugin)

// WithConcurrency bounds concurrent alternate page creation. Values below 2
// create alternates sequentially in language order.
func WithConcurrency(n int) PluginOption {
	return func(p *Plugin) { p.concurrency = n }
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) PluginOption {
	return func(p *Plugin) {
		if r != nil {
			p.recorder = r
		}
	}
}

// NewPlugin wraps l as a page hook.
func NewPlugin(l *Localizer, opts ...PluginOption) *Plugin {
	p := &Plugin{localizer: l, concurrency: 1, recorder: metrics.NoopRecorder{}}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Metadata implements plugin.Plugin.
func (p *Plugin) Metadata() plugin.PluginMetadata {
	return plugin.PluginMetadata{
		Name:         PluginName,
		Version:      PluginVersion,
		Type:         plugin.PluginTypePage,
		Description:  "Creates a canonical page and language-prefixed alternates for every page",
		Capabilities: []plugin.PluginCapability{plugin.CapabilityI18n, plugin.CapabilityRouting},
	}
}

// OnCreatePage implements plugin.PageHook. The original page is deleted on a
// best-effort basis; the canonical page and every alternate are created
// before it returns.
func (p *Plugin) OnCreatePage(_ context.Context, pc *plugin.PageContext) error {
	res := p.localizer.Localize(pc.Page)
	logger := pc.Logger.With(logfields.PagePath(pc.Page.Path), logfields.Outcome(string(res.Outcome)))

	switch res.Outcome {
	case OutcomeAlreadyProcessed:
		p.recorder.IncPageOutcome(metrics.OutcomeAlreadyProcessed)
		return nil
	case OutcomeSkipped:
		p.recorder.IncPageOutcome(metrics.OutcomeSkipped)
		logger.Debug("Language pattern did not match; page left unlocalized")
		return nil
	}

	if d := tryDelete(pc.Actions, *res.Delete); d.Err != nil {
		logger.Debug("Ignoring failed delete of original page", logfields.Error(d.Err))
	}

	canonical, _ := res.Canonical()
	if err := pc.Actions.CreatePage(canonical); err != nil {
		p.recorder.IncPageOutcome(metrics.OutcomeFailed)
		return plugin.NewPluginError(PluginName, "create canonical page", err)
	}

	alternates := res.Alternates()
	if err := p.createAll(pc.Actions, alternates); err != nil {
		p.recorder.IncPageOutcome(metrics.OutcomeFailed)
		return plugin.NewPluginError(PluginName, "create alternate pages", err)
	}

	p.recorder.IncPageOutcome(metrics.OutcomeLocalized)
	p.recorder.ObserveAlternates(len(alternates))
	logger.Debug("Localized page",
		logfields.Language(canonical.Language()),
		logfields.MatchPath(canonical.MatchPath),
		logfields.Alternates(len(alternates)))
	return nil
}

// discarded is the result of a best-effort action. Callers may inspect Err
// but must not fail because of it.
type discarded struct {
	Err error
}

func tryDelete(actions plugin.Actions, p page.Page) discarded {
	return discarded{Err: actions.DeletePage(p)}
}

// createAll issues every create, bounded by the plugin concurrency, and
// joins the failures.
func (p *Plugin) createAll(actions plugin.Actions, pages []page.Page) error {
	if p.concurrency < 2 || len(pages) < 2 {
		var errs []error
		for _, pg := range pages {
			if err := actions.CreatePage(pg); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	}

	sem := make(chan struct{}, p.concurrency)
	errs := make([]error, len(pages))
	var wg sync.WaitGroup
	for i, pg := range pages {
		wg.Add(1)
		go func(i int, pg page.Page) {
			defer wg.Done()
			sem <- struct{}{}        // Acquire semaphore
			defer func() { <-sem }() // Release semaphore
			errs[i] = actions.CreatePage(pg)
		}(i, pg)
	}
	wg.Wait()
	return errors.Join(errs...)
}
