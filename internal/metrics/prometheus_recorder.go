package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "pagelocale"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	pageOutcomes *prom.CounterVec
	alternates   prom.Histogram
	runDuration  prom.Histogram
	runOutcomes  *prom.CounterVec
}

// NewPrometheusRecorder constructs the collectors and registers them on reg.
// A nil reg gets a fresh private registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		pageOutcomes: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "page_outcomes_total",
			Help:      "Pages seen by the localization hook, by outcome",
		}, []string{"outcome"}),
		alternates: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "alternate_pages",
			Help:      "Alternate language pages generated per localized page",
			Buckets:   []float64{0, 1, 2, 4, 8, 16, 32},
		}),
		runDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Duration of a full pipeline run",
			Buckets:   prom.DefBuckets,
		}),
		runOutcomes: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "run_outcomes_total",
			Help:      "Pipeline runs by final status",
		}, []string{"outcome"}),
	}
	reg.MustRegister(pr.pageOutcomes, pr.alternates, pr.runDuration, pr.runOutcomes)
	return pr
}

func (p *PrometheusRecorder) IncPageOutcome(outcome OutcomeLabel) {
	if p == nil {
		return
	}
	p.pageOutcomes.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) ObserveAlternates(n int) {
	if p == nil {
		return
	}
	p.alternates.Observe(float64(n))
}

func (p *PrometheusRecorder) ObserveRunDuration(d time.Duration) {
	if p == nil {
		return
	}
	p.runDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncRunOutcome(outcome RunOutcomeLabel) {
	if p == nil {
		return
	}
	p.runOutcomes.WithLabelValues(string(outcome)).Inc()
}
