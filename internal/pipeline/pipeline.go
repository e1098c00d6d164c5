package pipeline

import (
	stderrors "errors"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/mdmeta/internal/config"
	"git.home.luguber.info/inful/mdmeta/internal/foundation/errors"
	"git.home.luguber.info/inful/mdmeta/internal/frontmatter"
	"git.home.luguber.info/inful/mdmeta/internal/git"
	"git.home.luguber.info/inful/mdmeta/internal/logfields"
	"git.home.luguber.info/inful/mdmeta/internal/markdown"
	"git.home.luguber.info/inful/mdmeta/internal/metrics"
	"git.home.luguber.info/inful/mdmeta/internal/plugin"
	"git.home.luguber.info/inful/mdmeta/internal/transforms"
)

// Orchestrator turns a markdown source into a generated metadata module.
// It holds no per-run state and may be shared across goroutines.
type Orchestrator struct {
	registry  *plugin.Registry
	extractor *git.Extractor
	recorder  metrics.Recorder
	logger    *slog.Logger
	builtins  map[string]*plugin.Plugin
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithRegistry sets the registry string plugin identifiers resolve against.
// Built-ins are added to it unless a plugin with the same name exists.
func WithRegistry(reg *plugin.Registry) Option {
	return func(o *Orchestrator) { o.registry = reg }
}

// WithExtractor sets the git history extractor used by the git built-in.
func WithExtractor(e *git.Extractor) Option {
	return func(o *Orchestrator) { o.extractor = e }
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(o *Orchestrator) { o.recorder = r }
}

// WithLogger sets the fallback logger for runs whose context carries none.
func WithLogger(l *slog.Logger) Option {
	return func(o *Orchestrator) { o.logger = l }
}

// New creates an Orchestrator.
func New(opts ...Option) *Orchestrator {
	o := &Orchestrator{
		recorder: metrics.NoopRecorder{},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.registry == nil {
		o.registry = plugin.NewRegistry()
	}
	if o.extractor == nil {
		o.extractor = git.NewExtractor(git.WithLogger(o.logger), git.WithRecorder(o.recorder))
	}

	o.builtins = make(map[string]*plugin.Plugin)
	for _, p := range transforms.Builtins(o.extractor) {
		o.builtins[p.Name] = p
		if err := o.registry.Register(p); err != nil && !stderrors.Is(err, plugin.ErrAlreadyRegistered) {
			o.logger.Error("Failed to register built-in plugin", logfields.Plugin(p.Name), logfields.Error(err))
		}
	}
	return o
}

// Registry returns the registry plugin identifiers resolve against.
func (o *Orchestrator) Registry() *plugin.Registry {
	return o.registry
}

// Result is the outcome of one run.
type Result struct {
	Module    string
	Metadata  map[string]any
	Fragments []string
	Bindings  map[string]string
	Tree      *markdown.Tree
}

// Run processes source and returns the generated module text.
func (o *Orchestrator) Run(source []byte, opts *config.Options, rc *plugin.ResourceContext) (string, error) {
	res, err := o.Process(source, opts, rc)
	if err != nil {
		return "", err
	}
	return res.Module, nil
}

// Process runs the pipeline and returns the module together with the final
// state. A nil opts selects config.Defaults.
func (o *Orchestrator) Process(source []byte, opts *config.Options, rc *plugin.ResourceContext) (*Result, error) {
	start := time.Now()
	if rc == nil {
		return nil, errors.ConfigError("resource context is required").Build()
	}
	if opts == nil {
		opts = config.Defaults()
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	logger := rc.Logger
	if logger == nil {
		logger = o.logger
	}
	logger = logger.With(logfields.Path(rc.ResourcePath))
	if rc.RunID != "" {
		logger = logger.With(logfields.RunID(rc.RunID))
	}

	res, err := o.process(source, opts, rc, logger)
	o.recorder.ObserveRunDuration(time.Since(start))
	if err != nil {
		o.recorder.IncRunOutcome(metrics.ResultFailed)
		return nil, err
	}
	o.recorder.IncRunOutcome(metrics.ResultSuccess)
	logger.Debug("Pipeline run completed",
		logfields.DurationMS(float64(time.Since(start).Microseconds())/1000.0))
	return res, nil
}

type step struct {
	name      string
	transform plugin.Transform
	condition plugin.Condition
}

func (o *Orchestrator) process(source []byte, opts *config.Options, rc *plugin.ResourceContext, logger *slog.Logger) (*Result, error) {
	_, body, _, err := frontmatter.Split(source)
	if err != nil {
		logger.Debug("Front matter not terminated, parsing full source", logfields.Error(err))
		body = source
	}
	tree := markdown.Parse(body, markdown.Options{CommonMark: opts.Parse.CommonMark})

	steps, err := o.prepare(o.candidates(opts))
	if err != nil {
		return nil, err
	}

	st := plugin.NewState(tree, source, opts)
	for i, s := range steps {
		if !s.condition(opts) {
			logger.Debug("Transform skipped by condition", logfields.Plugin(s.name), logfields.Index(i))
			o.recorder.IncTransformResult(s.name, metrics.ResultSkipped)
			continue
		}

		t0 := time.Now()
		fragment, err := s.transform(rc, st)
		elapsed := time.Since(t0)
		o.recorder.ObserveTransformDuration(s.name, elapsed)
		if err != nil {
			logger.Error("Transform failed", logfields.Plugin(s.name), logfields.Index(i), logfields.Error(err))
			o.recorder.IncTransformResult(s.name, metrics.ResultFailed)
			return nil, err
		}
		o.recorder.IncTransformResult(s.name, metrics.ResultSuccess)
		st.Emit(fragment)

		logger.Debug("Transform completed",
			logfields.Plugin(s.name),
			logfields.Index(i),
			logfields.DurationMS(float64(elapsed.Microseconds())/1000.0))
	}

	module, err := Serialize(st)
	if err != nil {
		return nil, err
	}
	return &Result{
		Module:    module,
		Metadata:  st.Metadata,
		Fragments: st.Fragments(),
		Bindings:  st.Bindings(),
		Tree:      st.Tree,
	}, nil
}

// candidates lists the declarations for one run in execution order.
func (o *Orchestrator) candidates(opts *config.Options) []any {
	var out []any
	if opts.Resource.Enabled {
		out = append(out, []any{o.builtins[transforms.NameResource], opts.Resource.Value()})
	}
	if opts.Git.Enabled {
		out = append(out, []any{o.builtins[transforms.NameGit], opts.Git.Overrides})
	}
	if opts.Parse.FrontMatter {
		out = append(out, o.builtins[transforms.NameFrontMatter])
	}
	if opts.Parse.Heading {
		out = append(out, o.builtins[transforms.NameHeading])
	}
	if opts.ImportSource.Enabled {
		out = append(out, []any{o.builtins[transforms.NameImportSource], opts.ImportSource.Chain()})
	}
	return append(out, opts.Plugins...)
}

// prepare resolves and instantiates every declaration before any runs, so a
// configuration error never leaves a partially processed state behind.
func (o *Orchestrator) prepare(decls []any) ([]step, error) {
	steps := make([]step, 0, len(decls))
	for i, decl := range decls {
		d, err := plugin.Resolve(o.registry, decl)
		if err != nil {
			return nil, withIndex(err, i)
		}
		t, err := d.Use()
		if err != nil {
			return nil, withIndex(err, i)
		}
		steps = append(steps, step{name: d.Name(), transform: t, condition: d.Condition})
	}
	return steps, nil
}

func withIndex(err error, i int) error {
	if ce, ok := errors.AsClassified(err); ok {
		return ce.WithContext("index", i)
	}
	return err
}
