// Package pathconfig holds the declarative path configuration describing
// where metadata objects live inside XML documents: per object type, the
// tree path to its root node, the alternate locations of its name and
// accession, its cross-object reference declarations, and the submission
// cardinality rules. A Config is compiled once into a Registry of typed
// handles so the processing layers never re-derive anything per call.
package pathconfig

import (
	"strings"

	"github.com/metaforge/metalink/pkg/xmltree"
)

// IdentifierPath is one alternate location, relative to an object or
// reference root node, where the name and accession may be stored as element
// text or attribute value. All configured paths that hold a value must agree;
// reconciliation writes the resolved value back through every path.
type IdentifierPath struct {
	NamePath string
	IDPath   string

	// NameInsert and IDInsert materialize a missing target element on
	// write. Nil means the element must pre-exist.
	NameInsert xmltree.InsertFunc
	IDInsert   xmltree.InsertFunc
}

// ObjectPathSpec declares one configured metadata object type.
type ObjectPathSpec struct {
	SchemaType string
	ObjectType string
	RootPath   string

	// Mandatory and Single are submission-wide cardinality rules, checked
	// only once the whole submission is assembled.
	Mandatory bool
	Single    bool

	IdentifierPaths []IdentifierPath

	TitlePath       string
	DescriptionPath string
}

// RootTag returns the element tag of the object's root node.
func (s *ObjectPathSpec) RootTag() string {
	return lastSegment(s.RootPath)
}

// ReferencePathSpec declares a typed cross-object reference embedded inside
// an owning object's subtree. RootPath locates the reference node itself and
// may match any number of occurrences; RefRootPath is the root path of the
// referenced object type.
type ReferencePathSpec struct {
	SchemaType string
	ObjectType string

	RefSchemaType string
	RefObjectType string

	RootPath    string
	RefRootPath string

	Paths []IdentifierPath
}

// SchemaPathSpec declares per schema type how to detect a set-wrapper
// document and which root paths belong to the schema type.
type SchemaPathSpec struct {
	SchemaType string
	SetPath    string
	RootPaths  []string
}

// SetTag returns the element tag of the set wrapper, or "" when the schema
// type has no set form.
func (s *SchemaPathSpec) SetTag() string {
	if s.SetPath == "" {
		return ""
	}
	return lastSegment(s.SetPath)
}

// Config is the full path configuration for one workflow.
type Config struct {
	Workflow   string
	Objects    []*ObjectPathSpec
	References []*ReferencePathSpec
	Schemas    []*SchemaPathSpec
}

func lastSegment(path string) string {
	path = strings.TrimSpace(path)
	if i := strings.LastIndex(path, "/"); i >= 0 {
		return path[i+1:]
	}
	return path
}
