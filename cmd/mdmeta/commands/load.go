package commands

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/mdmeta/internal/logfields"
	"git.home.luguber.info/inful/mdmeta/internal/metrics"
)

// LoadCmd implements the 'load' command.
type LoadCmd struct {
	File        string `arg:"" help:"Markdown file to process" type:"existingfile"`
	NoGit       bool   `help:"Disable the git commit history transform"`
	Format      string `short:"f" default:"js" enum:"js,json" help:"Output format (js module or json metadata)"`
	Output      string `short:"o" help:"Write output to this file instead of stdout" type:"path"`
	MetricsFile string `help:"Write Prometheus metrics for the run to this textfile" type:"path"`
}

// Run executes the load command.
func (l *LoadCmd) Run(g *Global, root *CLI) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts, err := root.loadOptions(l.NoGit)
	if err != nil {
		return err
	}

	var recorder metrics.Recorder = metrics.NoopRecorder{}
	var reg *prom.Registry
	if l.MetricsFile != "" {
		reg = prom.NewRegistry()
		recorder = metrics.NewPrometheusRecorder(reg)
	}

	logger := g.logger()
	start := time.Now()
	out, err := newGenerator(logger, recorder, l.Format).generate(ctx, l.File, root.rootFor(l.File), opts)

	if reg != nil {
		if werr := metrics.WriteTextfile(reg, l.MetricsFile); werr != nil {
			logger.Warn("Failed to write metrics textfile", logfields.Path(l.MetricsFile), logfields.Error(werr))
		}
	}
	if err != nil {
		return err
	}

	if err := writeOutput(g.stdout(), l.Output, out); err != nil {
		return err
	}
	logger.Debug("Metadata generated",
		logfields.Path(l.File),
		logfields.Format(l.Format),
		logfields.DurationMS(float64(time.Since(start).Microseconds())/1000.0))
	return nil
}
