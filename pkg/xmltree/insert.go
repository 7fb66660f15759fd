package xmltree

import (
	"fmt"
	"strings"

	"github.com/antchfx/xmlquery"
)

// InsertFunc materializes the missing node a value write targets, attaching
// it to the tree under root at the correct position, and returns it.
//
// Strategies are a small closed set selected per identifier path at
// configuration time, so placement rules stay auditable and testable.
type InsertFunc func(root *xmlquery.Node) (*xmlquery.Node, error)

// InsertAsFirstChild builds the elements named by the relative path,
// attaching the first newly created element as the first child of its
// parent. Existing intermediate elements are reused, never duplicated.
func InsertAsFirstChild(path string) InsertFunc {
	return func(root *xmlquery.Node) (*xmlquery.Node, error) {
		return materialize(path, root, prependChild)
	}
}

// InsertAsLastChild is like InsertAsFirstChild but appends the first newly
// created element after its parent's existing children.
func InsertAsLastChild(path string) InsertFunc {
	return func(root *xmlquery.Node) (*xmlquery.Node, error) {
		return materialize(path, root, appendChild)
	}
}

// InsertAfterAnyOf attaches the first newly created element directly after
// the last existing child whose tag is one of anchors, falling back to the
// first-child position when no anchor is present. Schema-ordered content
// models use this to keep inserted identifier containers in a valid slot.
func InsertAfterAnyOf(path string, anchors ...string) InsertFunc {
	return func(root *xmlquery.Node) (*xmlquery.Node, error) {
		attach := func(parent, n *xmlquery.Node) {
			if after := lastChildNamed(parent, anchors); after != nil {
				insertAfter(after, n)
				return
			}
			prependChild(parent, n)
		}
		return materialize(path, root, attach)
	}
}

// materialize walks the relative element path, reusing existing elements and
// creating the rest. The first created element is placed by attach; elements
// created below it are appended to their (new) parent.
func materialize(path string, root *xmlquery.Node, attach func(parent, n *xmlquery.Node)) (*xmlquery.Node, error) {
	current := root
	created := false
	for _, step := range steps(path) {
		if strings.HasPrefix(step, "@") {
			return nil, fmt.Errorf("attribute step %q cannot be inserted", step)
		}
		if !created {
			next, err := FindOne("./"+step, current, true)
			if err != nil {
				return nil, err
			}
			if next != nil {
				current = next
				continue
			}
		}
		n := &xmlquery.Node{Type: xmlquery.ElementNode, Data: step}
		if created {
			appendChild(current, n)
		} else {
			attach(current, n)
			created = true
		}
		current = n
	}
	if current == root {
		return nil, fmt.Errorf("empty insertion path %q", path)
	}
	return current, nil
}

func steps(path string) []string {
	p := stripAnchor(firstAlternative(path))
	var out []string
	for _, s := range strings.Split(p, "/") {
		if s = strings.TrimSpace(s); s != "" && s != "." {
			out = append(out, s)
		}
	}
	return out
}

func lastChildNamed(parent *xmlquery.Node, names []string) *xmlquery.Node {
	var found *xmlquery.Node
	for c := parent.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != xmlquery.ElementNode {
			continue
		}
		for _, name := range names {
			if c.Data == name {
				found = c
			}
		}
	}
	return found
}

func prependChild(parent, n *xmlquery.Node) {
	n.Parent = parent
	n.NextSibling = parent.FirstChild
	if parent.FirstChild != nil {
		parent.FirstChild.PrevSibling = n
	} else {
		parent.LastChild = n
	}
	parent.FirstChild = n
}

func appendChild(parent, n *xmlquery.Node) {
	xmlquery.AddChild(parent, n)
}

func insertAfter(sibling, n *xmlquery.Node) {
	n.Parent = sibling.Parent
	n.PrevSibling = sibling
	n.NextSibling = sibling.NextSibling
	if sibling.NextSibling != nil {
		sibling.NextSibling.PrevSibling = n
	} else if sibling.Parent != nil {
		sibling.Parent.LastChild = n
	}
	sibling.NextSibling = n
}
