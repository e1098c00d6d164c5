// Package errors provides the classified error primitives used across mdmeta.
//
// Errors carry a category (config, validation, git, ...), a severity and a retry
// strategy, plus a free-form context map. The fluent ErrorBuilder keeps construction
// consistent:
//
//	err := errors.ConfigError("plugin is not registered").
//		WithContext("plugin", name).
//		WithCause(&plugin.NotFoundError{Name: name}).
//		Build()
//
// ClassifiedError implements Unwrap, so callers can still reach typed causes with
// errors.As and sentinel causes with errors.Is.
package errors
