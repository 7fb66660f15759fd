package linker

import (
	"github.com/antchfx/xmlquery"

	"github.com/metaforge/metalink/pkg/pathconfig"
	"github.com/metaforge/metalink/pkg/xmltree"
)

// Document wraps one parsed document holding either a single object
// instance or a set wrapper of instances sharing one schema type. It splits
// the document into per-instance processors and indexes them by
// (schema type, root path, name).
type Document struct {
	schemaType string
	objects    []*Object
	lookup     map[Key]*Object
}

// NewDocument splits doc into object processors. Documents whose root tag
// matches a configured set path are split on the wrapper's direct children;
// anything else is treated as a single instance.
func NewDocument(doc *xmlquery.Node, reg *pathconfig.Registry, opts ...Option) (*Document, error) {
	root := doc
	if root.Type == xmlquery.DocumentNode {
		elem, err := xmltree.RootElement(root)
		if err != nil {
			return nil, err
		}
		root = elem
	}

	d := &Document{lookup: make(map[Key]*Object)}

	if _, ok := reg.SchemaForSetTag(root.Data); ok {
		for child := root.FirstChild; child != nil; child = child.NextSibling {
			if child.Type != xmlquery.ElementNode {
				continue
			}
			obj, err := NewObject(child, reg, opts...)
			if err != nil {
				return nil, err
			}
			if err := d.add(obj); err != nil {
				return nil, err
			}
		}
		return d, nil
	}

	obj, err := NewObject(root, reg, opts...)
	if err != nil {
		return nil, err
	}
	if err := d.add(obj); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Document) add(obj *Object) error {
	ident := obj.Identifier()
	if d.schemaType == "" {
		d.schemaType = ident.SchemaType
	} else if d.schemaType != ident.SchemaType {
		return &MixedSchemaError{Want: d.schemaType, Got: ident.SchemaType}
	}
	key := ident.Key()
	if _, ok := d.lookup[key]; ok {
		return &DuplicateNameError{SchemaType: ident.SchemaType, Name: ident.Name}
	}
	d.lookup[key] = obj
	d.objects = append(d.objects, obj)
	return nil
}

// SchemaType returns the schema type shared by every instance in the
// document.
func (d *Document) SchemaType() string {
	return d.schemaType
}

// Objects returns the contained processors in document order.
func (d *Document) Objects() []*Object {
	return d.objects
}

// Processor resolves the processor for one instance, failing with
// UnknownObjectError when the document holds no such instance.
func (d *Document) Processor(schemaType, rootPath, name string) (*Object, error) {
	obj, ok := d.lookup[Key{SchemaType: schemaType, RootPath: rootPath, Name: name}]
	if !ok {
		return nil, &UnknownObjectError{SchemaType: schemaType, Name: name}
	}
	return obj, nil
}

// Identifier resolves one instance's identity.
func (d *Document) Identifier(schemaType, rootPath, name string) (Identifier, error) {
	obj, err := d.Processor(schemaType, rootPath, name)
	if err != nil {
		return Identifier{}, err
	}
	return obj.Identifier(), nil
}

// References aggregates the reference occurrences of every contained
// instance.
func (d *Document) References() []Identifier {
	var out []Identifier
	for _, obj := range d.objects {
		out = append(out, obj.References()...)
	}
	return out
}

// SetReferenceIDs propagates resolved accessions into every contained
// instance's matching references.
func (d *Document) SetReferenceIDs(resolved []Identifier) error {
	for _, obj := range d.objects {
		if err := obj.SetReferenceIDs(resolved); err != nil {
			return err
		}
	}
	return nil
}

// UnresolvedReferences aggregates the still-unresolved references of every
// contained instance.
func (d *Document) UnresolvedReferences() []Identifier {
	var out []Identifier
	for _, obj := range d.objects {
		out = append(out, obj.UnresolvedReferences()...)
	}
	return out
}
