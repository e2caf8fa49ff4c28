package metrics

import "time"

// OutcomeLabel enumerates per-page localization outcomes.
type OutcomeLabel string

const (
	OutcomeLocalized        OutcomeLabel = "localized"
	OutcomeAlreadyProcessed OutcomeLabel = "already_processed"
	OutcomeSkipped          OutcomeLabel = "skipped"
	OutcomeFailed           OutcomeLabel = "failed"
)

// RunOutcomeLabel enumerates final states of a pipeline run.
type RunOutcomeLabel string

const (
	RunSuccess  RunOutcomeLabel = "success"
	RunFailed   RunOutcomeLabel = "failed"
	RunCanceled RunOutcomeLabel = "canceled"
)

// Recorder defines observability hooks for localization runs. Implementations
// must be safe for concurrent use.
type Recorder interface {
	IncPageOutcome(outcome OutcomeLabel)
	ObserveAlternates(n int)
	ObserveRunDuration(d time.Duration)
	IncRunOutcome(outcome RunOutcomeLabel)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) IncPageOutcome(OutcomeLabel)      {}
func (NoopRecorder) ObserveAlternates(int)            {}
func (NoopRecorder) ObserveRunDuration(time.Duration) {}
func (NoopRecorder) IncRunOutcome(RunOutcomeLabel)    {}
