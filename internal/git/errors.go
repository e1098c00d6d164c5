package git

import (
	"context"
	stderrors "errors"
	"os/exec"
	"strings"

	"git.home.luguber.info/inful/mdmeta/internal/foundation/errors"
)

// classifyInvocationError translates a failed git invocation into a ClassifiedError.
func classifyInvocationError(err error, mode Mode, path string) error {
	if err == nil {
		return nil
	}

	// Already classified
	if _, ok := errors.AsClassified(err); ok {
		return err
	}

	l := strings.ToLower(err.Error())

	builder := errors.GitError("git log failed").
		WithCause(err).
		WithContext("mode", string(mode)).
		WithContext("path", path)

	switch {
	case stderrors.Is(err, exec.ErrNotFound):
		builder.WithContext("reason", "git binary not found").UserAction()
	case stderrors.Is(err, context.DeadlineExceeded):
		builder.WithContext("reason", "timeout").Retryable()
	case strings.Contains(l, "not a git repository"):
		builder.WithCategory(errors.CategoryNotFound)
	case stderrors.Is(err, ErrFieldCount):
		builder.WithContext("reason", "unexpected field count")
	}

	return builder.Build()
}
