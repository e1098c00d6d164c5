package git

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"log/slog"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"git.home.luguber.info/inful/mdmeta/internal/config"
	"git.home.luguber.info/inful/mdmeta/internal/foundation/errors"
	"git.home.luguber.info/inful/mdmeta/internal/logfields"
)

// Mode selects which commits touching a file are reported.
type Mode string

const (
	ModeInitial Mode = "initial"
	ModeLast    Mode = "last"
	ModeAll     Mode = "all"
)

// Selection records which modes were requested.
type Selection struct {
	Initial bool
	Last    bool
	All     bool
}

// Modes returns the enabled modes in execution order.
func (s Selection) Modes() []Mode {
	var modes []Mode
	if s.Initial {
		modes = append(modes, ModeInitial)
	}
	if s.Last {
		modes = append(modes, ModeLast)
	}
	if s.All {
		modes = append(modes, ModeAll)
	}
	return modes
}

// History is the commit provenance of one file. Only modes present in
// Selection are serialized; an enabled single-commit mode with no output
// serializes as null.
type History struct {
	Selection Selection
	Initial   Record
	Last      Record
	All       []Record
}

// MarshalJSON implements json.Marshaler.
func (h *History) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, 3)
	if h.Selection.Initial {
		out[string(ModeInitial)] = h.Initial
	}
	if h.Selection.Last {
		out[string(ModeLast)] = h.Last
	}
	if h.Selection.All {
		all := h.All
		if all == nil {
			all = []Record{}
		}
		out[string(ModeAll)] = all
	}
	return json.Marshal(out)
}

// InvocationRecorder observes git subprocess invocations.
type InvocationRecorder interface {
	IncGitInvocation(mode, result string)
}

// Extractor runs git log for a file under each enabled selection mode.
type Extractor struct {
	runner   Runner
	logger   *slog.Logger
	recorder InvocationRecorder
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithRunner replaces the git command runner.
func WithRunner(r Runner) Option {
	return func(e *Extractor) { e.runner = r }
}

// WithLogger sets the logger used for invocation and failure logs.
func WithLogger(l *slog.Logger) Option {
	return func(e *Extractor) { e.logger = l }
}

// WithRecorder sets the invocation recorder.
func WithRecorder(r InvocationRecorder) Option {
	return func(e *Extractor) { e.recorder = r }
}

// NewExtractor creates an Extractor backed by the git binary on PATH.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{runner: ExecRunner{}, logger: slog.Default()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract returns the commit history of filePath according to cfg.
//
// Modes run serially in the order initial, last, all. The working directory is
// the file's directory and the path is passed after "--" so only history
// touching the file is reported. Outside strict mode a failed invocation is
// logged and yields an empty result for that mode.
func (e *Extractor) Extract(ctx context.Context, filePath string, cfg config.GitConfig) (*History, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// git runs in the file's directory, so the path filter must not be relative to the caller's.
	abs, err := filepath.Abs(filePath)
	if err != nil {
		return nil, errors.FileSystemError("failed to resolve file path").
			WithCause(err).
			WithContext("path", filePath).
			Build()
	}
	filePath = abs

	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	h := &History{Selection: Selection{Initial: cfg.Initial, Last: cfg.Last, All: cfg.All}}
	format := BuildFormat(cfg.Placeholders, cfg.FormatSep)
	dir := filepath.Dir(filePath)

	for _, mode := range h.Selection.Modes() {
		lines, err := e.log(ctx, dir, filePath, format, mode, cfg)
		if err != nil {
			return nil, err
		}
		records, err := e.parse(lines, filePath, mode, cfg)
		if err != nil {
			return nil, err
		}

		switch mode {
		case ModeInitial:
			h.Initial = first(records)
		case ModeLast:
			h.Last = first(records)
		case ModeAll:
			h.All = records
		}
	}

	return h, nil
}

func (e *Extractor) log(ctx context.Context, dir, filePath, format string, mode Mode, cfg config.GitConfig) ([]string, error) {
	args := logArgs(mode, format, filePath)
	start := time.Now()
	out, err := e.runner.Run(ctx, dir, args...)
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0

	e.logger.Debug("Git log invoked",
		logfields.Mode(string(mode)),
		logfields.Path(filePath),
		logfields.Args(args),
		logfields.DurationMS(elapsed))

	if err != nil {
		e.record(mode, "error")
		if cfg.Strict {
			return nil, classifyInvocationError(err, mode, filePath)
		}
		attrs := []any{logfields.Mode(string(mode)), logfields.Path(filePath), logfields.Error(err)}
		var exitErr *exec.ExitError
		if stderrors.As(err, &exitErr) {
			attrs = append(attrs, logfields.ExitCode(exitErr.ExitCode()))
		}
		e.logger.Warn("Git log failed, commit history left empty", attrs...)
		return nil, nil
	}
	e.record(mode, "ok")

	return splitLines(string(out)), nil
}

func (e *Extractor) parse(lines []string, filePath string, mode Mode, cfg config.GitConfig) ([]Record, error) {
	records := make([]Record, 0, len(lines))
	strict := ParseRecordStrict(cfg.Placeholders, cfg.FormatSep)
	lenient := ParseRecord(cfg.Placeholders, cfg.FormatSep)

	for _, line := range lines {
		rec, err := strict(line)
		if err != nil {
			if cfg.Strict {
				return nil, classifyInvocationError(err, mode, filePath)
			}
			e.logger.Warn("Git log line has unexpected field count",
				logfields.Mode(string(mode)),
				logfields.Path(filePath),
				logfields.Error(err))
			rec = lenient(line)
		}
		records = append(records, rec)
	}
	return records, nil
}

func (e *Extractor) record(mode Mode, result string) {
	if e.recorder != nil {
		e.recorder.IncGitInvocation(string(mode), result)
	}
}

func logArgs(mode Mode, format, filePath string) []string {
	args := []string{"log"}
	switch mode {
	case ModeInitial:
		args = append(args, "--diff-filter=A", "--max-count=1")
	case ModeLast:
		args = append(args, "--max-count=1")
	case ModeAll:
	}
	return append(args, "--pretty=format:"+format, "--", filePath)
}

func splitLines(out string) []string {
	out = strings.TrimRight(out, "\r\n")
	if out == "" {
		return nil
	}
	lines := strings.Split(out, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

func first(records []Record) Record {
	if len(records) == 0 {
		return nil
	}
	return records[0]
}
