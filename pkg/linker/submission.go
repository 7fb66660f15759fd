package linker

import (
	"fmt"

	"github.com/antchfx/xmlquery"
	"github.com/hashicorp/go-multierror"

	"github.com/metaforge/metalink/pkg/pathconfig"
)

// Submission aggregates every document of one submission and runs the
// submission-wide linking pass: a single merged lookup, cross-document
// duplicate rejection, cardinality enforcement over the complete set of
// documents, and accession propagation into every document's references.
type Submission struct {
	reg    *pathconfig.Registry
	docs   []*Document
	lookup map[Key]*Object
}

// NewSubmission builds one document processor per parsed document and merges
// them. Document integrity failures, cross-document duplicates, and
// cardinality violations are all collected and reported together, so a
// submitter sees every problem at once.
func NewSubmission(docs []*xmlquery.Node, reg *pathconfig.Registry, opts ...Option) (*Submission, error) {
	s := &Submission{reg: reg, lookup: make(map[Key]*Object)}

	var result *multierror.Error
	for i, doc := range docs {
		d, err := NewDocument(doc, reg, opts...)
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("document %d: %w", i+1, err))
			continue
		}
		s.docs = append(s.docs, d)
		for _, obj := range d.Objects() {
			key := obj.Identifier().Key()
			if _, ok := s.lookup[key]; ok {
				result = multierror.Append(result, &DuplicateNameError{
					SchemaType: key.SchemaType,
					Name:       key.Name,
				})
				continue
			}
			s.lookup[key] = obj
		}
	}

	// Cardinality is a whole-submission property, checked only now that
	// every document has been merged.
	for _, spec := range reg.Objects() {
		if err := s.checkCardinality(spec); err != nil {
			result = multierror.Append(result, err)
		}
	}

	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Submission) checkCardinality(spec *pathconfig.ObjectPathSpec) error {
	found := 0
	for key := range s.lookup {
		if key.SchemaType == spec.SchemaType && key.RootPath == spec.RootPath {
			found++
		}
	}
	switch {
	case spec.Mandatory && spec.Single && found != 1:
		return &ExpectedExactlyOneError{SchemaType: spec.SchemaType, Found: found}
	case spec.Mandatory && !spec.Single && found < 1:
		return &ExpectedAtLeastOneError{SchemaType: spec.SchemaType}
	case !spec.Mandatory && spec.Single && found > 1:
		return &ExpectedAtMostOneError{SchemaType: spec.SchemaType, Found: found}
	}
	return nil
}

// Documents returns the contained document processors in load order.
func (s *Submission) Documents() []*Document {
	return s.docs
}

// Processor resolves the processor for one instance anywhere in the
// submission.
func (s *Submission) Processor(schemaType, rootPath, name string) (*Object, error) {
	obj, ok := s.lookup[Key{SchemaType: schemaType, RootPath: rootPath, Name: name}]
	if !ok {
		return nil, &UnknownObjectError{SchemaType: schemaType, Name: name}
	}
	return obj, nil
}

// SetID assigns the accession carried by ident to the matching instance and
// propagates it into every reference in every document of the submission
// that points at the instance by name.
func (s *Submission) SetID(ident Identifier) error {
	if !ident.Resolved() {
		return fmt.Errorf("identifier for %s %q carries no accession", ident.SchemaType, ident.Name)
	}
	obj, err := s.Processor(ident.SchemaType, ident.RootPath, ident.Name)
	if err != nil {
		return err
	}
	if err := obj.SetID(ident.ID); err != nil {
		return err
	}
	for _, d := range s.docs {
		if err := d.SetReferenceIDs([]Identifier{ident}); err != nil {
			return err
		}
	}
	return nil
}

// Identifiers returns every instance identity in the submission, optionally
// filtered by schema type. Pass "" for all.
func (s *Submission) Identifiers(schemaType string) []Identifier {
	var out []Identifier
	for _, d := range s.docs {
		for _, obj := range d.Objects() {
			ident := obj.Identifier()
			if schemaType == "" || ident.SchemaType == schemaType {
				out = append(out, ident)
			}
		}
	}
	return out
}

// References is the submission-wide union of every document's references.
func (s *Submission) References() []Identifier {
	var out []Identifier
	for _, d := range s.docs {
		out = append(out, d.References()...)
	}
	return out
}

// UnresolvedReferences is the submission-wide union of references still
// missing an accession. A non-empty result after the caller believes every
// assignment is done means dangling relations; the engine reports the list
// and leaves the verdict to the caller.
func (s *Submission) UnresolvedReferences() []Identifier {
	var out []Identifier
	for _, d := range s.docs {
		out = append(out, d.UnresolvedReferences()...)
	}
	return out
}
