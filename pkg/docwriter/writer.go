// Package docwriter reassembles processed object fragments into an output
// document: one declaration line, the schema's configured set wrapper when
// more than one instance is written, and consistent two-space indentation.
// Fragments may be supplied eagerly or as a lazily produced sequence, so a
// caller can stream a submission's output without buffering all of it; an
// error produced mid-sequence aborts the write with whatever partial output
// has already been flushed.
package docwriter

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/metaforge/metalink/pkg/pathconfig"
)

// Declaration is the single declaration line every output document starts
// with.
const Declaration = `<?xml version="1.0" encoding="UTF-8"?>`

// ErrAmbiguousCardinality is returned when a caller passes neither, or both,
// of object type and schema type.
var ErrAmbiguousCardinality = errors.New("exactly one of object type or schema type must be given")

// Writer serializes processed fragments using the set-wrapper configuration
// of a compiled registry.
type Writer struct {
	reg *pathconfig.Registry
}

// New builds a writer over reg.
func New(reg *pathconfig.Registry) *Writer {
	return &Writer{reg: reg}
}

// WriteAll writes an already materialized list of fragments.
func (w *Writer) WriteAll(out io.Writer, objectType, schemaType string, fragments []string) error {
	return w.Write(out, objectType, schemaType, func(yield func(string, error) bool) {
		for _, f := range fragments {
			if !yield(f, nil) {
				return
			}
		}
	})
}

// Write consumes fragments in production order and writes the assembled
// document to out. A single fragment is written bare under the declaration;
// two or more are wrapped in the schema's set tag and indented. Exactly one
// of objectType and schemaType selects the schema configuration.
func (w *Writer) Write(out io.Writer, objectType, schemaType string, fragments iter.Seq2[string, error]) error {
	schemaType, err := w.resolveSchemaType(objectType, schemaType)
	if err != nil {
		return err
	}

	next, stop := iter.Pull2(fragments)
	defer stop()

	first, err, ok := next()
	if err != nil {
		return err
	}
	if _, err := io.WriteString(out, Declaration+"\n"); err != nil {
		return err
	}
	if !ok {
		return nil
	}

	second, err, multiple := next()
	if err != nil {
		return err
	}
	if !multiple {
		_, err := io.WriteString(out, ensureNewline(first))
		return err
	}

	sch, ok := w.reg.Schema(schemaType)
	if !ok || sch.SetTag() == "" {
		return fmt.Errorf("schema type %q declares no set wrapper for multiple instances", schemaType)
	}
	tag := sch.SetTag()

	if _, err := fmt.Fprintf(out, "<%s>\n", tag); err != nil {
		return err
	}
	if _, err := io.WriteString(out, indent(first)); err != nil {
		return err
	}
	if _, err := io.WriteString(out, indent(second)); err != nil {
		return err
	}
	for {
		fragment, err, ok := next()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		if _, err := io.WriteString(out, indent(fragment)); err != nil {
			return err
		}
	}
	_, err = fmt.Fprintf(out, "</%s>\n", tag)
	return err
}

func (w *Writer) resolveSchemaType(objectType, schemaType string) (string, error) {
	if (objectType == "") == (schemaType == "") {
		return "", ErrAmbiguousCardinality
	}
	if schemaType != "" {
		return schemaType, nil
	}
	for _, spec := range w.reg.Objects() {
		if spec.ObjectType == objectType {
			return spec.SchemaType, nil
		}
	}
	return "", fmt.Errorf("no configured object type %q", objectType)
}

// indent prefixes every line of the fragment with the two-space unit,
// appending a trailing newline when the fragment lacks one.
func indent(fragment string) string {
	fragment = strings.TrimSuffix(fragment, "\n")
	lines := strings.Split(fragment, "\n")
	for i, line := range lines {
		lines[i] = "  " + line
	}
	return strings.Join(lines, "\n") + "\n"
}

func ensureNewline(s string) string {
	if strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}
