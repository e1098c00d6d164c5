// Package pipeline runs the ordered transform list for one markdown file and
// serializes the accumulated metadata into a generated module.
//
// A run parses the body once, builds the candidate list (built-ins gated by the
// options record in the order resource, git, front-matter, heading,
// import-source, then user plugins in declared order), resolves and
// instantiates every candidate, and only then invokes the transforms one after
// another against a shared plugin.State. The first transform error aborts the
// run and is returned unchanged.
package pipeline
