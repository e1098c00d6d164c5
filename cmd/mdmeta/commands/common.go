package commands

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/google/uuid"

	"git.home.luguber.info/inful/mdmeta/internal/config"
	"git.home.luguber.info/inful/mdmeta/internal/foundation/errors"
	"git.home.luguber.info/inful/mdmeta/internal/git"
	"git.home.luguber.info/inful/mdmeta/internal/logfields"
	"git.home.luguber.info/inful/mdmeta/internal/metrics"
	"git.home.luguber.info/inful/mdmeta/internal/pipeline"
	"git.home.luguber.info/inful/mdmeta/internal/plugin"
)

// Global carries process wide state shared by subcommands.
type Global struct {
	Logger *slog.Logger
	Stdout io.Writer
}

func (g *Global) logger() *slog.Logger {
	if g == nil || g.Logger == nil {
		return slog.Default()
	}
	return g.Logger
}

func (g *Global) stdout() io.Writer {
	if g == nil || g.Stdout == nil {
		return os.Stdout
	}
	return g.Stdout
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Options file path (YAML)" type:"path"`
	Root    string           `help:"Project root localPath is computed against (default: enclosing git worktree, else working directory)" type:"path"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Load    LoadCmd    `cmd:"" default:"withargs" help:"Generate the metadata module for a markdown file"`
	Watch   WatchCmd   `cmd:"" help:"Regenerate the output whenever the file or the options file changes"`
	Plugins PluginsCmd `cmd:"" help:"List the plugins declarations can refer to by name"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// loadOptions reads the options file, or the defaults when none is given.
func (c *CLI) loadOptions(noGit bool) (*config.Options, error) {
	opts, err := config.Load(c.Config)
	if err != nil {
		return nil, err
	}
	if noGit {
		opts.Git.Enabled = false
	}
	return opts, nil
}

// rootFor picks the directory localPath is relative to.
func (c *CLI) rootFor(file string) string {
	if c.Root != "" {
		return c.Root
	}
	if root, err := git.WorktreeRoot(filepath.Dir(file)); err == nil {
		return root
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return filepath.Dir(file)
}

// generator runs the pipeline for one file and renders the chosen format.
type generator struct {
	orch   *pipeline.Orchestrator
	logger *slog.Logger
	format string
}

func newGenerator(logger *slog.Logger, recorder metrics.Recorder, format string) *generator {
	return &generator{
		orch:   pipeline.New(pipeline.WithLogger(logger), pipeline.WithRecorder(recorder)),
		logger: logger,
		format: format,
	}
}

func (g *generator) generate(ctx context.Context, file, root string, opts *config.Options) ([]byte, error) {
	// #nosec G304 -- file is the path the user asked to process
	source, err := os.ReadFile(file)
	if err != nil {
		return nil, errors.FileSystemError("failed to read markdown file").
			WithCause(err).
			WithContext("path", file).
			Build()
	}

	runID := uuid.NewString()
	rc, err := plugin.NewResourceContext(ctx, g.logger.With(logfields.RunID(runID)), file, root, runID)
	if err != nil {
		return nil, errors.FileSystemError("failed to resolve markdown path").WithCause(err).Build()
	}

	res, err := g.orch.Process(source, opts, rc)
	if err != nil {
		return nil, err
	}

	if g.format == "json" {
		return pipeline.JSON(res.Metadata)
	}
	return []byte(res.Module), nil
}

// writeOutput writes data to path, or to w when path is empty.
func writeOutput(w io.Writer, path string, data []byte) error {
	if path == "" {
		_, err := w.Write(data)
		return err
	}
	// #nosec G306 -- generated output is meant to be readable by the build tool
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.FileSystemError("failed to write output").
			WithCause(err).
			WithContext("path", path).
			Build()
	}
	return nil
}
