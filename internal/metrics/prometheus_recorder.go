package metrics

import (
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "mdmeta"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	once              sync.Once
	transformDuration *prom.HistogramVec
	transformResults  *prom.CounterVec
	runDuration       prom.Histogram
	runOutcome        *prom.CounterVec
	gitInvocations    *prom.CounterVec
}

// NewPrometheusRecorder constructs and registers Prometheus metrics (idempotent).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{}
	pr.once.Do(func() {
		pr.transformDuration = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "transform_duration_seconds",
			Help:      "Duration of individual pipeline transforms",
			Buckets:   prom.DefBuckets,
		}, []string{"plugin"})
		pr.transformResults = prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "transform_results_total",
			Help:      "Transform result counts by outcome",
		}, []string{"plugin", "result"})
		pr.runDuration = prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Total pipeline run duration",
			Buckets:   prom.DefBuckets,
		})
		pr.runOutcome = prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "run_outcomes_total",
			Help:      "Pipeline runs by final status",
		}, []string{"outcome"})
		pr.gitInvocations = prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "git_invocations_total",
			Help:      "git log subprocess invocations by selection mode and result",
		}, []string{"mode", "result"})
		reg.MustRegister(pr.transformDuration, pr.transformResults, pr.runDuration, pr.runOutcome, pr.gitInvocations)
	})
	return pr
}

func (p *PrometheusRecorder) ObserveTransformDuration(plugin string, d time.Duration) {
	if p == nil || p.transformDuration == nil {
		return
	}
	p.transformDuration.WithLabelValues(plugin).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncTransformResult(plugin string, result ResultLabel) {
	if p == nil || p.transformResults == nil {
		return
	}
	p.transformResults.WithLabelValues(plugin, string(result)).Inc()
}

func (p *PrometheusRecorder) ObserveRunDuration(d time.Duration) {
	if p == nil || p.runDuration == nil {
		return
	}
	p.runDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncRunOutcome(outcome ResultLabel) {
	if p == nil || p.runOutcome == nil {
		return
	}
	p.runOutcome.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) IncGitInvocation(mode, result string) {
	if p == nil || p.gitInvocations == nil {
		return
	}
	p.gitInvocations.WithLabelValues(mode, result).Inc()
}
