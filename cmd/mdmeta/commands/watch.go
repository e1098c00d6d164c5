package commands

import (
	"context"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"git.home.luguber.info/inful/mdmeta/internal/config"
	"git.home.luguber.info/inful/mdmeta/internal/logfields"
	"git.home.luguber.info/inful/mdmeta/internal/metrics"
	"git.home.luguber.info/inful/mdmeta/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	File     string        `arg:"" help:"Markdown file to process" type:"existingfile"`
	Output   string        `short:"o" required:"" help:"File the generated output is written to" type:"path"`
	NoGit    bool          `help:"Disable the git commit history transform"`
	Format   string        `short:"f" default:"js" enum:"js,json" help:"Output format (js module or json metadata)"`
	Debounce time.Duration `default:"200ms" help:"Quiet period after the last change before regenerating"`
}

// Run executes the watch command.
func (w *WatchCmd) Run(g *Global, root *CLI) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return w.run(ctx, g, root)
}

func (w *WatchCmd) run(ctx context.Context, g *Global, root *CLI) error {
	logger := g.logger()
	gen := newGenerator(logger, metrics.NoopRecorder{}, w.Format)
	rootDir := root.rootFor(w.File)

	opts, err := root.loadOptions(w.NoGit)
	if err != nil {
		return err
	}

	regenerate := func(ctx context.Context, opts *config.Options) error {
		out, err := gen.generate(ctx, w.File, rootDir, opts)
		if err != nil {
			return err
		}
		if err := writeOutput(g.stdout(), w.Output, out); err != nil {
			return err
		}
		logger.Info("Metadata regenerated", logfields.Path(w.File), logfields.Format(w.Format))
		return nil
	}

	if err := regenerate(ctx, opts); err != nil {
		return err
	}

	files := []string{w.File}
	configPath := ""
	if root.Config != "" {
		configPath, _ = filepath.Abs(root.Config)
		files = append(files, configPath)
	}

	watcher, err := watch.New(files, func(ctx context.Context, path string) error {
		if path == configPath {
			reloaded, err := root.loadOptions(w.NoGit)
			if err != nil {
				return err
			}
			opts = reloaded
		}
		return regenerate(ctx, opts)
	}, watch.WithDebounce(w.Debounce), watch.WithLogger(logger))
	if err != nil {
		return err
	}

	logger.Info("Watching for changes", logfields.Path(w.File))
	return watcher.Run(ctx)
}
