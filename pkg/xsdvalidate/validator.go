// Package xsdvalidate defines the boundary to structural (schema-file)
// validation. The engine consumes validation as a pass/fail check carrying a
// list of violations; any compliant validator may be plugged in. The package
// also provides the process-wide compiled-schema cache shared by concurrent
// submissions.
package xsdvalidate

import (
	"fmt"
	"strings"

	"github.com/antchfx/xmlquery"
)

// Violation is one structural rule failure, with the source line when the
// validator knows it.
type Violation struct {
	Line    int
	Message string
}

func (v Violation) String() string {
	if v.Line > 0 {
		return fmt.Sprintf("line %d: %s", v.Line, v.Message)
	}
	return v.Message
}

// SchemaError reports every violation found in one document at once, so a
// caller can present the full list rather than one failure at a time.
type SchemaError struct {
	SchemaType string
	Violations []Violation
}

func (e *SchemaError) Error() string {
	msgs := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		msgs[i] = v.String()
	}
	return fmt.Sprintf("document is not a valid %s: %s",
		e.SchemaType, strings.Join(msgs, "; "))
}

// Validator checks a parsed document against the structural schema for
// schemaType. A failed check returns a *SchemaError.
type Validator interface {
	Validate(doc *xmlquery.Node, schemaType string) error
}

// ValidatorFunc adapts a function to the Validator interface.
type ValidatorFunc func(doc *xmlquery.Node, schemaType string) error

// Validate implements Validator.
func (f ValidatorFunc) Validate(doc *xmlquery.Node, schemaType string) error {
	return f(doc, schemaType)
}

// Schema is one compiled structural schema.
type Schema interface {
	Validate(doc *xmlquery.Node) []Violation
}

// CompileFunc compiles schema-file source into a reusable Schema. The
// compiled form must be safe for concurrent use.
type CompileFunc func(source []byte) (Schema, error)
