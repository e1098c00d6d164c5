// Package transforms implements the built-in pipeline plugins: resource
// identity, git commit history, front matter, first heading and raw source
// re-import.
package transforms
