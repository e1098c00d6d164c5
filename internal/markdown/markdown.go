// Package markdown holds the parsed document tree shared by transforms.
package markdown

import (
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// Options controls how a markdown body is parsed.
type Options struct {
	// CommonMark restricts parsing to strict CommonMark. When false the GFM
	// extensions (tables, strikethrough, autolinks, task lists) are enabled.
	CommonMark bool
}

// Tree is a parsed markdown document. Transforms may mutate Root; Source backs
// the text segments referenced by the nodes.
type Tree struct {
	Root   gmast.Node
	Source []byte
}

// Parse parses a markdown body (front matter already removed) into a Tree.
func Parse(body []byte, opts Options) *Tree {
	var exts []goldmark.Extender
	if !opts.CommonMark {
		exts = append(exts, extension.GFM)
	}
	md := goldmark.New(goldmark.WithExtensions(exts...))
	root := md.Parser().Parse(text.NewReader(body))
	return &Tree{Root: root, Source: body}
}

// FirstHeading returns the first top-level heading of the given level, or nil.
// Only direct children of the document are considered.
func (t *Tree) FirstHeading(level int) *gmast.Heading {
	if t == nil || t.Root == nil {
		return nil
	}
	for n := t.Root.FirstChild(); n != nil; n = n.NextSibling() {
		if h, ok := n.(*gmast.Heading); ok && h.Level == level {
			return h
		}
	}
	return nil
}

// Remove detaches n from its parent. It is a no-op for a detached node.
func (t *Tree) Remove(n gmast.Node) {
	if n == nil || n.Parent() == nil {
		return
	}
	n.Parent().RemoveChild(n.Parent(), n)
}

// Clear drops every node under the root, leaving an empty document.
func (t *Tree) Clear() {
	if t == nil || t.Root == nil {
		return
	}
	t.Root.RemoveChildren(t.Root)
}

// Len reports the number of top-level nodes.
func (t *Tree) Len() int {
	if t == nil || t.Root == nil {
		return 0
	}
	return t.Root.ChildCount()
}

// Text returns the plain text content of n, concatenating every descendant
// text node. Soft line breaks become a single space.
func (t *Tree) Text(n gmast.Node) string {
	var b strings.Builder
	_ = gmast.Walk(n, func(node gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		switch v := node.(type) {
		case *gmast.Text:
			b.Write(v.Segment.Value(t.Source))
			if v.SoftLineBreak() || v.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *gmast.String:
			b.Write(v.Value)
		case *gmast.AutoLink:
			b.Write(v.Label(t.Source))
			return gmast.WalkSkipChildren, nil
		}
		return gmast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}
