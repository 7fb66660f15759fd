package xmltree

import (
	"fmt"
	"io"
	"strings"

	"github.com/antchfx/xmlquery"
)

// Parse reads a whole document into an xmlquery tree.
func Parse(r io.Reader) (*xmlquery.Node, error) {
	doc, err := xmlquery.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}
	return doc, nil
}

// ParseString parses a document held in memory.
func ParseString(s string) (*xmlquery.Node, error) {
	return Parse(strings.NewReader(s))
}

// RootElement returns the document's root element, skipping the declaration
// and any comments.
func RootElement(doc *xmlquery.Node) (*xmlquery.Node, error) {
	for n := doc.FirstChild; n != nil; n = n.NextSibling {
		if n.Type == xmlquery.ElementNode {
			return n, nil
		}
	}
	return nil, fmt.Errorf("document has no root element: %w", ErrNotFound)
}

// FindOne evaluates path against root and returns the single matching node.
// With optional set, a miss returns (nil, nil); otherwise ErrNotFound. More
// than one match is always ErrAmbiguous.
func FindOne(path string, root *xmlquery.Node, optional bool) (*xmlquery.Node, error) {
	nodes, err := FindAll(path, root)
	if err != nil {
		return nil, err
	}
	switch len(nodes) {
	case 0:
		if optional {
			return nil, nil
		}
		return nil, fmt.Errorf("path %q: %w", path, ErrNotFound)
	case 1:
		return nodes[0], nil
	default:
		return nil, fmt.Errorf("path %q matched %d nodes: %w", path, len(nodes), ErrAmbiguous)
	}
}

// FindAll evaluates path against root and returns every match, possibly none.
func FindAll(path string, root *xmlquery.Node) ([]*xmlquery.Node, error) {
	nodes, err := xmlquery.QueryAll(root, path)
	if err != nil {
		return nil, fmt.Errorf("path %q: %w", path, err)
	}
	return nodes, nil
}

// Value resolves path to either an attribute value or an element's text.
// A missing node, or a node holding no value, returns ErrNotFound or
// ErrMissingValue respectively unless optional is set, in which case the
// empty string is returned.
func Value(path string, root *xmlquery.Node, optional bool) (string, error) {
	node, err := FindOne(path, root, optional)
	if err != nil {
		return "", err
	}
	if node == nil {
		return "", nil
	}
	v := strings.TrimSpace(node.InnerText())
	if v == "" && !optional {
		return "", fmt.Errorf("path %q: %w", path, ErrMissingValue)
	}
	return v, nil
}

// SetValue writes value at path under root. An existing target is
// overwritten in place. A missing element target is materialized through the
// insert strategy; with no strategy the write fails with ErrNotFound. A
// missing attribute is set on its owning element, which must pre-exist.
func SetValue(path string, root *xmlquery.Node, value string, insert InsertFunc) error {
	node, err := FindOne(path, root, true)
	if err != nil {
		return err
	}
	if node != nil {
		setNodeValue(node, value)
		return nil
	}

	// Attribute selectors never insert elements: locate the owning element
	// and create the attribute on it.
	if parent, attr, ok := SplitAttribute(firstAlternative(path)); ok {
		owner, err := FindOne(parent, root, false)
		if err != nil {
			return fmt.Errorf("attribute %q: %w", attr, err)
		}
		owner.SetAttr(attr, value)
		return nil
	}

	if insert == nil {
		return fmt.Errorf("path %q: %w", path, ErrNotFound)
	}
	node, err = insert(root)
	if err != nil {
		return fmt.Errorf("inserting node for path %q: %w", path, err)
	}
	setNodeValue(node, value)
	return nil
}

// setNodeValue overwrites the value held by node. Attribute query results
// are synthesized by xmlquery, so the write goes to the owning element.
func setNodeValue(node *xmlquery.Node, value string) {
	if node.Type == xmlquery.AttributeNode {
		node.Parent.SetAttr(node.Data, value)
		if node.FirstChild != nil {
			node.FirstChild.Data = value
		}
		return
	}
	setElementText(node, value)
}

// setElementText replaces the text content of an element with value,
// dropping any pre-existing text nodes beyond the first.
func setElementText(n *xmlquery.Node, value string) {
	var text *xmlquery.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.TextNode || c.Type == xmlquery.CharDataNode {
			if text == nil {
				text = c
				continue
			}
			c.Data = ""
		}
	}
	if text != nil {
		text.Data = value
		return
	}
	xmlquery.AddChild(n, &xmlquery.Node{Type: xmlquery.TextNode, Data: value})
}

func firstAlternative(path string) string {
	alts := Alternatives(path)
	if len(alts) == 0 {
		return path
	}
	return alts[0]
}
