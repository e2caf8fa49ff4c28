// Package metrics provides observability hooks for page localization runs.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so metrics stay optional:
//
//	runner := pipeline.New(registry, pipeline.WithRecorder(metrics.NewPrometheusRecorder(reg)))
//
// The Prometheus implementation can be exported as a node_exporter textfile
// with WriteTextfile, which suits one-shot CLI builds that never serve HTTP.
package metrics
