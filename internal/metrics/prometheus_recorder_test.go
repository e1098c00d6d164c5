package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.ObserveTransformDuration("heading", 150*time.Millisecond)
	pr.IncTransformResult("heading", ResultSuccess)
	pr.ObserveRunDuration(500 * time.Millisecond)
	pr.IncRunOutcome(ResultSuccess)
	pr.IncGitInvocation("initial", "ok")
	// Basic scrape to ensure metrics encode without panic
	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if len(mfs) != 5 {
		t.Fatalf("expected 5 metric families, got %d", len(mfs))
	}
}

func TestPrometheusRecorder_NilSafe(t *testing.T) {
	var pr *PrometheusRecorder
	pr.ObserveTransformDuration("x", time.Second)
	pr.IncTransformResult("x", ResultFailed)
	pr.ObserveRunDuration(time.Second)
	pr.IncRunOutcome(ResultFailed)
	pr.IncGitInvocation("all", "error")
}

func TestWriteTextfile(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.IncGitInvocation("last", "ok")

	path := filepath.Join(t.TempDir(), "mdmeta.prom")
	if err := WriteTextfile(reg, path); err != nil {
		t.Fatalf("WriteTextfile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(data), `mdmeta_git_invocations_total{mode="last",result="ok"} 1`) {
		t.Fatalf("unexpected textfile content:\n%s", data)
	}
}
