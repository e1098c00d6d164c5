package metrics

import "time"

// ResultLabel enumerates transform and run result categories for counters.
type ResultLabel string

const (
	ResultSuccess ResultLabel = "success"
	ResultSkipped ResultLabel = "skipped"
	ResultFailed  ResultLabel = "failed"
)

// Recorder defines observability hooks for pipeline runs. Implementations may
// forward to Prometheus or elsewhere.
type Recorder interface {
	ObserveTransformDuration(plugin string, d time.Duration)
	IncTransformResult(plugin string, result ResultLabel)
	ObserveRunDuration(d time.Duration)
	IncRunOutcome(outcome ResultLabel)
	IncGitInvocation(mode, result string)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveTransformDuration(string, time.Duration) {}
func (NoopRecorder) IncTransformResult(string, ResultLabel)         {}
func (NoopRecorder) ObserveRunDuration(time.Duration)               {}
func (NoopRecorder) IncRunOutcome(ResultLabel)                      {}
func (NoopRecorder) IncGitInvocation(string, string)                {}
