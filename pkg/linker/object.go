package linker

import (
	"fmt"

	"github.com/antchfx/xmlquery"
	"github.com/hashicorp/go-hclog"

	"github.com/metaforge/metalink/pkg/pathconfig"
	"github.com/metaforge/metalink/pkg/xmltree"
	"github.com/metaforge/metalink/pkg/xsdvalidate"
)

// State tracks how far an object instance has progressed through the
// processing pipeline.
type State int

const (
	StateUnvalidated State = iota
	StateValidated
	StateSynchronized
	StateAccessioned
)

func (s State) String() string {
	switch s {
	case StateUnvalidated:
		return "unvalidated"
	case StateValidated:
		return "validated"
	case StateSynchronized:
		return "synchronized"
	case StateAccessioned:
		return "accessioned"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Option configures object, document, and submission processors.
type Option func(*options)

type options struct {
	validator xsdvalidate.Validator
	log       hclog.Logger
}

// WithValidator enables structural validation of every instance during
// construction.
func WithValidator(v xsdvalidate.Validator) Option {
	return func(o *options) { o.validator = v }
}

// WithLogger sets the processor logger.
func WithLogger(log hclog.Logger) Option {
	return func(o *options) { o.log = log }
}

func newOptions(opts []Option) *options {
	o := &options{log: hclog.NewNullLogger()}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Object wraps one parsed object instance: a root node plus its subtree.
// Construction identifies the instance's configured type from its root tag,
// optionally validates it structurally, reconciles its identity across all
// configured identifier paths, and reconciles every populated reference
// occurrence the same way. After construction the synchronization invariant
// holds: every configured path that stores a value stores the same value.
type Object struct {
	spec  *pathconfig.ObjectPathSpec
	reg   *pathconfig.Registry
	root  *xmlquery.Node
	log   hclog.Logger
	state State

	name string
	id   string
	refs []*refOccurrence
}

// refOccurrence is one matched reference node with its reconciled target
// identity. id stays empty until the target's accession is propagated in.
type refOccurrence struct {
	spec *pathconfig.ReferencePathSpec
	node *xmlquery.Node
	name string
	id   string
}

// NewObject builds the processor for one instance rooted at root. root may
// be a whole parsed document or an element node cut out of a set wrapper.
func NewObject(root *xmlquery.Node, reg *pathconfig.Registry, opts ...Option) (*Object, error) {
	o := newOptions(opts)

	if root.Type == xmlquery.DocumentNode {
		elem, err := xmltree.RootElement(root)
		if err != nil {
			return nil, err
		}
		root = elem
	}

	spec, ok := reg.SpecForRootTag(root.Data)
	if !ok {
		return nil, &UnknownTypeError{RootTag: root.Data}
	}

	obj := &Object{
		spec: spec,
		reg:  reg,
		root: root,
		log:  o.log.With("schema_type", spec.SchemaType),
	}

	if o.validator != nil {
		if err := o.validator.Validate(root, spec.SchemaType); err != nil {
			return nil, err
		}
	}
	obj.state = StateValidated

	if err := obj.syncIdentifiers(); err != nil {
		return nil, err
	}
	if err := obj.syncReferences(); err != nil {
		return nil, err
	}
	obj.state = StateSynchronized
	if obj.id != "" {
		obj.state = StateAccessioned
	}
	return obj, nil
}

// syncIdentifiers reads the name and accession from every configured
// identifier path, asserts they agree, and writes the resolved values back
// through every path, self-healing any path where a value was absent.
func (o *Object) syncIdentifiers() error {
	names, ids, err := collectIdentity(o.spec.IdentifierPaths, o.root)
	if err != nil {
		return err
	}
	switch len(names) {
	case 0:
		return &NoNameError{SchemaType: o.spec.SchemaType, RootPath: o.spec.RootPath}
	case 1:
		o.name = names[0]
	default:
		return &ConflictingNameError{SchemaType: o.spec.SchemaType, Names: names}
	}
	switch len(ids) {
	case 0:
	case 1:
		o.id = ids[0]
	default:
		return &ConflictingIDError{SchemaType: o.spec.SchemaType, IDs: ids}
	}
	return writeIdentity(o.spec.IdentifierPaths, o.root, o.name, o.id)
}

// syncReferences enumerates every reference node declared for this object
// type and reconciles each occurrence's identity across its paths. An
// occurrence holding no value in any path is not a reference yet (an
// optional relation never populated) and is left untouched.
func (o *Object) syncReferences() error {
	for _, refSpec := range o.reg.ReferencesFor(o.spec) {
		rel := xmltree.RelativeTo(refSpec.RootPath, o.spec.RootPath)
		nodes, err := xmltree.FindAll(rel, o.root)
		if err != nil {
			return err
		}
		for _, node := range nodes {
			names, ids, err := collectIdentity(refSpec.Paths, node)
			if err != nil {
				return err
			}
			if len(names) == 0 && len(ids) == 0 {
				continue
			}
			occ := &refOccurrence{spec: refSpec, node: node}
			switch len(names) {
			case 0:
			case 1:
				occ.name = names[0]
			default:
				return &ConflictingNameError{SchemaType: refSpec.RefSchemaType, Names: names}
			}
			switch len(ids) {
			case 0:
			case 1:
				occ.id = ids[0]
			default:
				return &ConflictingIDError{SchemaType: refSpec.RefSchemaType, IDs: ids}
			}
			if err := writeIdentity(refSpec.Paths, node, occ.name, occ.id); err != nil {
				return err
			}
			o.refs = append(o.refs, occ)
		}
	}
	return nil
}

// collectIdentity gathers the distinct non-empty names and accessions stored
// across paths under node, in path order.
func collectIdentity(paths []pathconfig.IdentifierPath, node *xmlquery.Node) (names, ids []string, err error) {
	for _, p := range paths {
		name, err := xmltree.Value(xmltree.ToRelative(p.NamePath), node, true)
		if err != nil {
			return nil, nil, err
		}
		id, err := xmltree.Value(xmltree.ToRelative(p.IDPath), node, true)
		if err != nil {
			return nil, nil, err
		}
		names = appendDistinct(names, name)
		ids = appendDistinct(ids, id)
	}
	return names, ids, nil
}

// writeIdentity writes the resolved name and accession through every path.
// Empty values are not written: a path never loses a value here, and an
// unassigned accession leaves id paths untouched.
func writeIdentity(paths []pathconfig.IdentifierPath, node *xmlquery.Node, name, id string) error {
	for _, p := range paths {
		if name != "" {
			if err := xmltree.SetValue(xmltree.ToRelative(p.NamePath), node, name, p.NameInsert); err != nil {
				return err
			}
		}
		if id != "" {
			if err := xmltree.SetValue(xmltree.ToRelative(p.IDPath), node, id, p.IDInsert); err != nil {
				return err
			}
		}
	}
	return nil
}

func appendDistinct(values []string, v string) []string {
	if v == "" {
		return values
	}
	for _, have := range values {
		if have == v {
			return values
		}
	}
	return append(values, v)
}

// Identifier returns the object's resolved identity. Name is always present
// after construction; ID only once assigned.
func (o *Object) Identifier() Identifier {
	return Identifier{
		SchemaType: o.spec.SchemaType,
		ObjectType: o.spec.ObjectType,
		RootPath:   o.spec.RootPath,
		Name:       o.name,
		ID:         o.id,
	}
}

// Spec returns the configuration spec the instance resolved to.
func (o *Object) Spec() *pathconfig.ObjectPathSpec {
	return o.spec
}

// State returns the processing state of the instance.
func (o *Object) State() State {
	return o.state
}

// SetID assigns the externally generated accession, writing it through
// every configured identifier path. Assigning a different accession twice
// fails with IDReassignedError; repeating the same assignment is a no-op
// write-through.
func (o *Object) SetID(id string) error {
	if o.id != "" && o.id != id {
		return &IDReassignedError{
			SchemaType: o.spec.SchemaType,
			Name:       o.name,
			Current:    o.id,
			Proposed:   id,
		}
	}
	o.id = id
	if err := writeIdentity(o.spec.IdentifierPaths, o.root, o.name, o.id); err != nil {
		return err
	}
	o.state = StateAccessioned
	o.log.Debug("assigned accession", "name", o.name, "id", id)
	return nil
}

// References returns one identifier per reference occurrence, carrying the
// target's schema and object type, its root path, and the name and accession
// currently reconciled for that occurrence. An empty ID means not yet
// resolved.
func (o *Object) References() []Identifier {
	out := make([]Identifier, 0, len(o.refs))
	for _, ref := range o.refs {
		out = append(out, ref.identifier())
	}
	return out
}

func (r *refOccurrence) identifier() Identifier {
	return Identifier{
		SchemaType: r.spec.RefSchemaType,
		ObjectType: r.spec.RefObjectType,
		RootPath:   r.spec.RefRootPath,
		Name:       r.name,
		ID:         r.id,
	}
}

// SetReferenceIDs writes the accession of every matching resolved target
// through each matching reference occurrence's configured paths. Entries
// without an accession are ignored.
func (o *Object) SetReferenceIDs(resolved []Identifier) error {
	byKey := make(map[Key]string, len(resolved))
	for _, ident := range resolved {
		if ident.Resolved() {
			byKey[ident.Key()] = ident.ID
		}
	}
	for _, ref := range o.refs {
		id, ok := byKey[ref.identifier().Key()]
		if !ok {
			continue
		}
		if err := writeIdentity(ref.spec.Paths, ref.node, ref.name, id); err != nil {
			return err
		}
		ref.id = id
	}
	return nil
}

// UnresolvedReferences returns the reference occurrences still missing an
// accession.
func (o *Object) UnresolvedReferences() []Identifier {
	var out []Identifier
	for _, ref := range o.refs {
		if ref.id == "" {
			out = append(out, ref.identifier())
		}
	}
	return out
}

// Title returns the object's title, or "" when the object type declares no
// title path or the document omits it.
func (o *Object) Title() (string, error) {
	return o.optionalValue(o.spec.TitlePath)
}

// Description returns the object's description, or "" when the object type
// declares no description path or the document omits it.
func (o *Object) Description() (string, error) {
	return o.optionalValue(o.spec.DescriptionPath)
}

func (o *Object) optionalValue(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	return xmltree.Value(xmltree.ToRelative(path), o.root, true)
}

// XML serializes the instance's subtree, root tag included.
func (o *Object) XML() string {
	return o.root.OutputXML(true)
}
