package plugin

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
)

// ResourceContext identifies the file being processed and carries run scoped
// services. It is passed to every transform of a run.
type ResourceContext struct {
	// Context is the standard Go context for cancellation and deadlines.
	Context context.Context

	// Logger provides structured logging for plugin operations.
	Logger *slog.Logger

	// ResourcePath is the absolute path of the markdown file.
	ResourcePath string

	// RootDir is the project root LocalPath is computed against.
	RootDir string

	// RunID uniquely identifies this run.
	RunID string
}

// NewResourceContext creates a context for resourcePath, made absolute.
// An empty rootDir defaults to the file's directory.
func NewResourceContext(ctx context.Context, logger *slog.Logger, resourcePath, rootDir, runID string) (*ResourceContext, error) {
	abs, err := filepath.Abs(resourcePath)
	if err != nil {
		return nil, err
	}
	if rootDir == "" {
		rootDir = filepath.Dir(abs)
	}
	root, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	if ctx == nil {
		ctx = context.Background()
	}
	return &ResourceContext{
		Context:      ctx,
		Logger:       logger,
		ResourcePath: abs,
		RootDir:      root,
		RunID:        runID,
	}, nil
}

// LocalPath returns the resource path relative to RootDir using forward
// slashes. Files outside RootDir yield their absolute path.
func (rc *ResourceContext) LocalPath() string {
	if rc.RootDir == "" {
		return filepath.ToSlash(rc.ResourcePath)
	}
	rel, err := filepath.Rel(rc.RootDir, rc.ResourcePath)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return filepath.ToSlash(rc.ResourcePath)
	}
	return filepath.ToSlash(rel)
}

// Ctx returns the run context, never nil.
func (rc *ResourceContext) Ctx() context.Context {
	if rc == nil || rc.Context == nil {
		return context.Background()
	}
	return rc.Context
}

// Log returns the run logger, never nil.
func (rc *ResourceContext) Log() *slog.Logger {
	if rc == nil || rc.Logger == nil {
		return slog.Default()
	}
	return rc.Logger
}
