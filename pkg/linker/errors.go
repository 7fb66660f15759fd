package linker

import (
	"fmt"
	"strings"
)

// UnknownTypeError reports a document root tag no configured object type
// matches. This is a configuration-level mistake, not bad submitted data.
type UnknownTypeError struct {
	RootTag string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("no configured object type for root tag %q", e.RootTag)
}

// NoNameError reports an object instance with no name in any of its
// configured identifier paths.
type NoNameError struct {
	SchemaType string
	RootPath   string
}

func (e *NoNameError) Error() string {
	return fmt.Sprintf("%s object at %s has no name in any identifier path",
		e.SchemaType, e.RootPath)
}

// ConflictingNameError reports disagreeing names across the identifier
// paths of one object or reference occurrence.
type ConflictingNameError struct {
	SchemaType string
	Names      []string
}

func (e *ConflictingNameError) Error() string {
	return fmt.Sprintf("%s holds conflicting names: %s",
		e.SchemaType, strings.Join(e.Names, ", "))
}

// ConflictingIDError reports disagreeing accessions across the identifier
// paths of one object or reference occurrence.
type ConflictingIDError struct {
	SchemaType string
	IDs        []string
}

func (e *ConflictingIDError) Error() string {
	return fmt.Sprintf("%s holds conflicting accessions: %s",
		e.SchemaType, strings.Join(e.IDs, ", "))
}

// IDReassignedError reports a second accession assignment with a different
// value. Accessions are immutable once set.
type IDReassignedError struct {
	SchemaType string
	Name       string
	Current    string
	Proposed   string
}

func (e *IDReassignedError) Error() string {
	return fmt.Sprintf("%s %q already holds accession %s, refusing %s",
		e.SchemaType, e.Name, e.Current, e.Proposed)
}

// DuplicateNameError reports two instances sharing one
// (schema type, root path, name) triple, within one document or across the
// documents of one submission.
type DuplicateNameError struct {
	SchemaType string
	Name       string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("duplicate %s object named %q", e.SchemaType, e.Name)
}

// MixedSchemaError reports a document holding instances of more than one
// schema type.
type MixedSchemaError struct {
	Want string
	Got  string
}

func (e *MixedSchemaError) Error() string {
	return fmt.Sprintf("document mixes schema types %s and %s", e.Want, e.Got)
}

// UnknownObjectError reports a lookup for an object the submission does not
// contain.
type UnknownObjectError struct {
	SchemaType string
	Name       string
}

func (e *UnknownObjectError) Error() string {
	return fmt.Sprintf("no %s object named %q in submission", e.SchemaType, e.Name)
}

// ExpectedExactlyOneError reports a mandatory, singular object type with a
// submission-wide instance count other than one.
type ExpectedExactlyOneError struct {
	SchemaType string
	Found      int
}

func (e *ExpectedExactlyOneError) Error() string {
	return fmt.Sprintf("expected exactly one %s object, found %d", e.SchemaType, e.Found)
}

// ExpectedAtLeastOneError reports a mandatory object type absent from the
// submission.
type ExpectedAtLeastOneError struct {
	SchemaType string
}

func (e *ExpectedAtLeastOneError) Error() string {
	return fmt.Sprintf("expected at least one %s object, found none", e.SchemaType)
}

// ExpectedAtMostOneError reports a singular object type with more than one
// instance in the submission.
type ExpectedAtMostOneError struct {
	SchemaType string
	Found      int
}

func (e *ExpectedAtMostOneError) Error() string {
	return fmt.Sprintf("expected at most one %s object, found %d", e.SchemaType, e.Found)
}
