// Package metrics provides pipeline and git invocation metrics.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so metrics collection needs no nil checks at call sites:
//
//	orch := pipeline.New(pipeline.WithRecorder(metrics.NewPrometheusRecorder(reg)))
//
// The CLI gathers the registry after a run and writes it in the Prometheus
// text exposition format with WriteTextfile, for node_exporter's textfile
// collector or for inspection.
package metrics
