// Package pipeline hosts page hooks: it stores pages, fires every registered
// hook for each page created during a run and reports the resulting page set.
package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	foundationerrors "git.home.luguber.info/inful/pagelocale/internal/foundation/errors"
	"git.home.luguber.info/inful/pagelocale/internal/logfields"
	"git.home.luguber.info/inful/pagelocale/internal/metrics"
	"git.home.luguber.info/inful/pagelocale/internal/page"
	"git.home.luguber.info/inful/pagelocale/internal/plugin"
)

// DefaultMaxPages bounds the number of page creations a single run processes.
const DefaultMaxPages = 1_000_000

// Pipeline runs page hooks over a set of input pages.
type Pipeline struct {
	hooks    []plugin.PageHook
	recorder metrics.Recorder
	logger   *slog.Logger
	maxPages int
}

// PipelineOption configures pipeline behavior.
type PipelineOption func(*Pipeline)

// WithRecorder sets the metrics recorder for run outcomes and durations.
func WithRecorder(r metrics.Recorder) PipelineOption {
	return func(p *Pipeline) {
		if r != nil {
			p.recorder = r
		}
	}
}

// WithLogger sets the base logger handed to hooks.
func WithLogger(l *slog.Logger) PipelineOption {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithMaxPages bounds processed page creations. Zero or less disables the bound.
func WithMaxPages(n int) PipelineOption {
	return func(p *Pipeline) {
		p.maxPages = n
	}
}

// NewPipeline creates a pipeline firing the page hooks of registry.
func NewPipeline(registry *plugin.Registry, options ...PipelineOption) *Pipeline {
	p := &Pipeline{
		hooks:    registry.Hooks(),
		recorder: metrics.NoopRecorder{},
		logger:   slog.Default(),
		maxPages: DefaultMaxPages,
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

// Report summarizes a pipeline run.
type Report struct {
	BuildID     string        `json:"build_id"`
	InputPages  int           `json:"input_pages"`
	OutputPages int           `json:"output_pages"`
	Created     int           `json:"created"`
	Deleted     int           `json:"deleted"`
	HookCalls   int           `json:"hook_calls"`
	Duration    time.Duration `json:"duration_ns"`
	Canceled    bool          `json:"canceled,omitempty"`
}

// Result is the final page set of a run.
type Result struct {
	Pages  []page.Page
	Report Report
}

// Run creates every input page and fires each hook for every created page,
// including pages created by hooks, until no creations are pending. A hook
// error aborts the run. The returned report is valid even on error.
func (p *Pipeline) Run(ctx context.Context, input []page.Page) (*Result, error) {
	start := time.Now()
	report := Report{BuildID: uuid.NewString(), InputPages: len(input)}
	logger := p.logger.With(logfields.BuildID(report.BuildID))

	var (
		mu    sync.Mutex
		queue []page.Page
	)
	bus := NewBus()
	bus.Subscribe(EventPageCreated, func(e Event) error {
		created, _ := e.(PageCreated)
		mu.Lock()
		queue = append(queue, created.Page)
		report.Created++
		mu.Unlock()
		return nil
	})
	bus.Subscribe(EventPageDeleted, func(Event) error {
		mu.Lock()
		report.Deleted++
		mu.Unlock()
		return nil
	})
	store := NewStore(bus)

	finish := func(err error) (*Result, error) {
		report.OutputPages = store.Len()
		report.Duration = time.Since(start)
		p.recorder.ObserveRunDuration(report.Duration)
		switch {
		case err == nil:
			p.recorder.IncRunOutcome(metrics.RunSuccess)
			logger.Info("Page pipeline completed",
				slog.Int("input_pages", report.InputPages),
				slog.Int("output_pages", report.OutputPages),
				logfields.DurationMS(float64(report.Duration.Microseconds())/1000))
		case report.Canceled:
			p.recorder.IncRunOutcome(metrics.RunCanceled)
			logger.Warn("Page pipeline canceled", logfields.Error(err))
		default:
			p.recorder.IncRunOutcome(metrics.RunFailed)
			logger.Error("Page pipeline failed", logfields.Error(err))
		}
		return &Result{Pages: store.Pages(), Report: report}, err
	}

	for _, in := range input {
		store.NextBatch()
		if err := store.CreatePage(in); err != nil {
			return finish(err)
		}
	}

	processed := 0
	for {
		mu.Lock()
		if len(queue) == 0 {
			mu.Unlock()
			break
		}
		next := queue[0]
		queue = queue[1:]
		mu.Unlock()

		if err := ctx.Err(); err != nil {
			report.Canceled = true
			return finish(err)
		}
		processed++
		if p.maxPages > 0 && processed > p.maxPages {
			return finish(foundationerrors.PipelineError("page creation limit exceeded").
				WithContext("max_pages", p.maxPages).
				WithContext("page_path", next.Path).
				Build())
		}

		for _, hook := range p.hooks {
			name := hook.Metadata().Name
			pc := plugin.NewPageContext(next.Clone(), store,
				logger.With(logfields.Plugin(name)), report.BuildID)
			store.NextBatch()
			mu.Lock()
			pending := len(queue)
			mu.Unlock()
			err := hook.OnCreatePage(ctx, pc)
			// Pages created by one hook call are visited in path order.
			mu.Lock()
			slices.SortStableFunc(queue[pending:], func(a, b page.Page) int {
				return strings.Compare(a.Path, b.Path)
			})
			mu.Unlock()
			if err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					report.Canceled = true
				}
				return finish(foundationerrors.WrapError(err, foundationerrors.CategoryPipeline, "page hook failed").
					WithContext("plugin", name).
					WithContext("page_path", next.Path).
					Build())
			}
			report.HookCalls++
		}
	}

	return finish(nil)
}
