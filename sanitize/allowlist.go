// Package sanitize filters style trees against declared schema and value
// safety rules.
package sanitize

import (
	"themec/presets"
	"themec/tree"
)

// Wildcard matches any single path segment.
const Wildcard = "*"

type nodeKind int

const (
	kindBranch nodeKind = iota
	// everything below is allowed, scalars checked by node validator
	kindOpen
	kindPresets
	kindRawCSS
)

type node struct {
	children map[string]*node
	kind     nodeKind
	leaf     bool
	validate Validator
	category *presets.Category
}

func newNode() *node {
	return &node{children: make(map[string]*node)}
}

func (n *node) child(key string) *node {
	if c, ok := n.children[key]; ok {
		return c
	}
	return n.children[Wildcard]
}

// AllowList is a trie of allowed paths, not safe for modification after
// being handed to Sanitize from several goroutines.
type AllowList struct {
	root *node
}

func NewAllowList() *AllowList {
	return &AllowList{root: newNode()}
}

func (a *AllowList) make(path string) *node {
	n := a.root
	for _, seg := range tree.SplitPath(path) {
		c, ok := n.children[seg]
		if !ok {
			c = newNode()
			n.children[seg] = c
		}
		n = c
	}
	return n
}

// Add allows leaf at dotted path, values are checked with v. Path segments
// may be "*". Adding children to a leaf makes it accept both scalar and
// per-side map values.
func (a *AllowList) Add(path string, v Validator) *AllowList {
	n := a.make(path)
	n.leaf = true
	n.validate = v
	return a
}

// AddOpen allows any subtree at path, scalars inside are checked with v.
func (a *AllowList) AddOpen(path string, v Validator) *AllowList {
	n := a.make(path)
	n.kind = kindOpen
	n.validate = v
	return a
}

// AddPresets declares preset collection of category c at path.
func (a *AllowList) AddPresets(path string, c *presets.Category) *AllowList {
	n := a.make(path)
	n.kind = kindPresets
	n.category = c
	return a
}

// AddRawCSS declares custom CSS leaf, kept only when raw CSS is allowed.
func (a *AllowList) AddRawCSS(path string) *AllowList {
	n := a.make(path)
	n.kind = kindRawCSS
	return a
}

// Allowed reports whether path (which may point inside open subtree or
// preset collection) is declared.
func (a *AllowList) Allowed(path ...string) bool {
	n := a.root
	for _, seg := range path {
		if n.kind != kindBranch {
			return true
		}
		if n = n.child(seg); n == nil {
			return false
		}
	}
	return true
}
