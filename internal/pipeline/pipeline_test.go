package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/pagelocale/internal/config"
	foundationerrors "git.home.luguber.info/inful/pagelocale/internal/foundation/errors"
	"git.home.luguber.info/inful/pagelocale/internal/i18n"
	"git.home.luguber.info/inful/pagelocale/internal/metrics"
	"git.home.luguber.info/inful/pagelocale/internal/page"
	"git.home.luguber.info/inful/pagelocale/internal/plugin"
)

type runRecorder struct {
	metrics.NoopRecorder
	mu       sync.Mutex
	outcomes []metrics.RunOutcomeLabel
	runs     int
}

func (r *runRecorder) ObserveRunDuration(time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runs++
}

func (r *runRecorder) IncRunOutcome(o metrics.RunOutcomeLabel) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = append(r.outcomes, o)
}

// funcHook adapts a function to plugin.PageHook.
type funcHook struct {
	name string
	fn   func(ctx context.Context, pc *plugin.PageContext) error
}

func (h funcHook) Metadata() plugin.PluginMetadata {
	return plugin.PluginMetadata{Name: h.name, Version: "v0.0.1", Type: plugin.PluginTypePage}
}

func (h funcHook) OnCreatePage(ctx context.Context, pc *plugin.PageContext) error {
	return h.fn(ctx, pc)
}

func registryWith(t *testing.T, plugins ...plugin.Plugin) *plugin.Registry {
	t.Helper()
	reg := plugin.NewRegistry()
	for _, p := range plugins {
		require.NoError(t, reg.Register(p))
	}
	return reg
}

func i18nPlugin(t *testing.T, cfg config.Config) *i18n.Plugin {
	t.Helper()
	cfg.ApplyDefaults()
	require.NoError(t, cfg.Validate())
	l, err := i18n.NewFromConfig(&cfg)
	require.NoError(t, err)
	return i18n.NewPlugin(l, i18n.WithConcurrency(cfg.Concurrency))
}

func pagePaths(pages []page.Page) []string {
	out := make([]string, 0, len(pages))
	for _, p := range pages {
		out = append(out, p.Path)
	}
	return out
}

func TestRun_LocalizesEveryPage(t *testing.T) {
	rec := &runRecorder{}
	reg := registryWith(t, i18nPlugin(t, config.Config{
		Languages:    []string{"en", "fr"},
		DynamicPages: []string{"blog", "404"},
	}))
	input := []page.Page{{Path: "/about"}, {Path: "/404/"}, {Path: "/blog/post"}}

	res, err := NewPipeline(reg, WithRecorder(rec)).Run(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, []string{"/about", "fr/about", "/404/", "fr/404/", "/blog/post", "fr/blog/post"}, pagePaths(res.Pages))
	for _, p := range res.Pages {
		assert.True(t, p.Processed(), p.Path)
	}
	byPath := map[string]page.Page{}
	for _, p := range res.Pages {
		byPath[p.Path] = p
	}
	assert.Equal(t, "/*", byPath["/404/"].MatchPath)
	assert.Equal(t, "/fr/*", byPath["fr/404/"].MatchPath)
	assert.Equal(t, "/blog/*", byPath["/blog/post"].MatchPath)
	assert.Equal(t, "fr/blog/*", byPath["fr/blog/post"].MatchPath)

	assert.Equal(t, Report{
		BuildID:     res.Report.BuildID,
		InputPages:  3,
		OutputPages: 6,
		Created:     9,
		Deleted:     3,
		HookCalls:   9,
		Duration:    res.Report.Duration,
	}, res.Report)
	_, err = uuid.Parse(res.Report.BuildID)
	require.NoError(t, err)

	assert.Equal(t, []metrics.RunOutcomeLabel{metrics.RunSuccess}, rec.outcomes)
	assert.Equal(t, 1, rec.runs)
}

func TestRun_IdempotentOverOutput(t *testing.T) {
	reg := registryWith(t, i18nPlugin(t, config.Config{Languages: []string{"en", "fr", "de"}}))
	pl := NewPipeline(reg)

	first, err := pl.Run(context.Background(), []page.Page{{Path: "/"}, {Path: "/about"}})
	require.NoError(t, err)
	second, err := pl.Run(context.Background(), first.Pages)
	require.NoError(t, err)

	assert.Equal(t, first.Pages, second.Pages)
	assert.Zero(t, second.Report.Deleted)
	assert.NotEqual(t, first.Report.BuildID, second.Report.BuildID)
}

func TestRun_ConcurrentAlternates(t *testing.T) {
	languages := []string{"en", "fr", "de", "es", "it", "nl"}
	reg := registryWith(t, i18nPlugin(t, config.Config{Languages: languages, Concurrency: 4}))

	res, err := NewPipeline(reg).Run(context.Background(), []page.Page{{Path: "/a"}, {Path: "/b"}})
	require.NoError(t, err)

	assert.Len(t, res.Pages, 2*len(languages))
	assert.Equal(t, "/a", res.Pages[0].Path)
}

func TestRun_ConcurrentOutputIsReproducible(t *testing.T) {
	languages := []string{"en", "fr", "de", "es", "it", "nl", "pt", "sv"}
	reg := registryWith(t, i18nPlugin(t, config.Config{Languages: languages, Concurrency: 4}))
	pl := NewPipeline(reg)
	input := []page.Page{{Path: "/b"}, {Path: "/a"}}

	first, err := pl.Run(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"/b", "de/b", "es/b", "fr/b", "it/b", "nl/b", "pt/b", "sv/b",
		"/a", "de/a", "es/a", "fr/a", "it/a", "nl/a", "pt/a", "sv/a",
	}, pagePaths(first.Pages))

	for range 20 {
		again, err := pl.Run(context.Background(), input)
		require.NoError(t, err)
		require.Equal(t, first.Pages, again.Pages)
	}
}

func TestRun_HookErrorIsClassified(t *testing.T) {
	rec := &runRecorder{}
	boom := errors.New("boom")
	reg := registryWith(t, funcHook{name: "broken", fn: func(context.Context, *plugin.PageContext) error {
		return boom
	}})

	res, err := NewPipeline(reg, WithRecorder(rec)).Run(context.Background(), []page.Page{{Path: "/about"}})

	require.ErrorIs(t, err, boom)
	assert.True(t, foundationerrors.HasCategory(err, foundationerrors.CategoryPipeline))
	ce, ok := foundationerrors.AsClassified(err)
	require.True(t, ok)
	name, _ := ce.Context().GetString("plugin")
	assert.Equal(t, "broken", name)
	require.NotNil(t, res)
	assert.NotEmpty(t, res.Report.BuildID)
	assert.Equal(t, []metrics.RunOutcomeLabel{metrics.RunFailed}, rec.outcomes)
}

func TestRun_HooksFireInRegistrationOrder(t *testing.T) {
	var calls []string
	record := func(name string) funcHook {
		return funcHook{name: name, fn: func(_ context.Context, pc *plugin.PageContext) error {
			calls = append(calls, name+":"+pc.Page.Path)
			return nil
		}}
	}
	reg := registryWith(t, record("zeta"), record("alpha"))

	_, err := NewPipeline(reg).Run(context.Background(), []page.Page{{Path: "/a"}, {Path: "/b"}})

	require.NoError(t, err)
	assert.Equal(t, []string{"zeta:/a", "alpha:/a", "zeta:/b", "alpha:/b"}, calls)
}

func TestRun_Canceled(t *testing.T) {
	rec := &runRecorder{}
	reg := registryWith(t, i18nPlugin(t, config.Config{Languages: []string{"en", "fr"}}))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := NewPipeline(reg, WithRecorder(rec)).Run(ctx, []page.Page{{Path: "/about"}})

	require.ErrorIs(t, err, context.Canceled)
	assert.True(t, res.Report.Canceled)
	assert.Equal(t, []string{"/about"}, pagePaths(res.Pages), "input pages are stored before hooks run")
	assert.Equal(t, []metrics.RunOutcomeLabel{metrics.RunCanceled}, rec.outcomes)
}

func TestRun_MaxPages(t *testing.T) {
	n := 0
	reg := registryWith(t, funcHook{name: "runaway", fn: func(_ context.Context, pc *plugin.PageContext) error {
		n++
		return pc.Actions.CreatePage(page.Page{Path: fmt.Sprintf("/p%d", n)})
	}})

	_, err := NewPipeline(reg, WithMaxPages(5)).Run(context.Background(), []page.Page{{Path: "/"}})

	require.Error(t, err)
	assert.True(t, foundationerrors.HasCategory(err, foundationerrors.CategoryPipeline))
	assert.Equal(t, 5, n)
}

func TestRun_NoHooks(t *testing.T) {
	res, err := NewPipeline(plugin.NewRegistry()).Run(context.Background(), []page.Page{{Path: "/x"}, {Path: "/x"}})
	require.NoError(t, err)

	assert.Equal(t, []string{"/x"}, pagePaths(res.Pages))
	assert.Equal(t, 2, res.Report.Created)
	assert.Equal(t, 1, res.Report.OutputPages)
}

func TestRun_InvalidInput(t *testing.T) {
	_, err := NewPipeline(plugin.NewRegistry()).Run(context.Background(), []page.Page{{Component: "x.tsx"}})
	require.Error(t, err)
	assert.True(t, foundationerrors.HasCategory(err, foundationerrors.CategoryValidation))
}
