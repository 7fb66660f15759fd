// Package linker is the two-pass resolution engine over configuration-
// described XML documents: it identifies which configured object type an
// instance represents, reconciles each instance's name and accession across
// its alternate identifier paths, discovers typed cross-object references,
// and propagates externally assigned accessions into every reference that
// points at an object by name. Cardinality rules are enforced once a whole
// submission is assembled.
package linker

// Identifier is the resolved identity of one object instance or of one
// reference occurrence's target. Until an accession is assigned the triple
// (SchemaType, RootPath, Name) identifies the instance; afterwards ID is
// authoritative and immutable.
type Identifier struct {
	SchemaType string
	ObjectType string
	RootPath   string
	Name       string
	ID         string
}

// Key is the pre-accession lookup key of an instance.
type Key struct {
	SchemaType string
	RootPath   string
	Name       string
}

// Key returns the identifier's lookup key.
func (i Identifier) Key() Key {
	return Key{SchemaType: i.SchemaType, RootPath: i.RootPath, Name: i.Name}
}

// Resolved reports whether an accession has been assigned.
func (i Identifier) Resolved() bool {
	return i.ID != ""
}
