// Package git extracts commit provenance for a single file by invoking the git
// command line tool and parsing its pretty-format output.
//
// This package handles:
//   - Building `--pretty=format:` strings from placeholder names
//   - Parsing separator-delimited log lines into records
//   - Running the initial, last and all selection modes against one path
//   - Classifying subprocess failures as git errors in strict mode
//   - Detecting the enclosing worktree root via go-git
package git
