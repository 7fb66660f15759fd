package pathconfig

import (
	"fmt"
	"strings"
)

// Registry is a Config compiled into lookup tables: root tags to object
// specs, set-wrapper tags to schema specs, and reference declarations
// grouped by owning object. Compilation happens once at configuration load,
// so type identification is a map lookup rather than a per-call scan.
type Registry struct {
	cfg *Config

	byTag    map[string]*ObjectPathSpec
	byKey    map[specKey]*ObjectPathSpec
	setByTag map[string]*SchemaPathSpec
	schemas  map[string]*SchemaPathSpec
	refs     map[specKey][]*ReferencePathSpec
}

type specKey struct {
	schemaType string
	rootPath   string
}

// Compile validates cfg and builds the registry. Root tags must be unique
// across object specs: the tag is what identifies an instance's type.
func Compile(cfg *Config) (*Registry, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid path configuration: %w", err)
	}

	r := &Registry{
		cfg:      cfg,
		byTag:    make(map[string]*ObjectPathSpec),
		byKey:    make(map[specKey]*ObjectPathSpec),
		setByTag: make(map[string]*SchemaPathSpec),
		schemas:  make(map[string]*SchemaPathSpec),
		refs:     make(map[specKey][]*ReferencePathSpec),
	}

	for _, obj := range cfg.Objects {
		tag := obj.RootTag()
		if prev, ok := r.byTag[tag]; ok {
			return nil, fmt.Errorf("root tag %q declared by both %s and %s",
				tag, prev.SchemaType, obj.SchemaType)
		}
		r.byTag[tag] = obj
		r.byKey[specKey{obj.SchemaType, obj.RootPath}] = obj
	}

	for _, sch := range cfg.Schemas {
		r.schemas[sch.SchemaType] = sch
		if tag := sch.SetTag(); tag != "" {
			if prev, ok := r.setByTag[tag]; ok {
				return nil, fmt.Errorf("set tag %q declared by both %s and %s",
					tag, prev.SchemaType, sch.SchemaType)
			}
			r.setByTag[tag] = sch
		}
	}

	// A reference declaration applies to the object spec whose root path is
	// a prefix of the reference node's location.
	for _, ref := range cfg.References {
		owner, ok := r.ownerOf(ref)
		if !ok {
			return nil, fmt.Errorf("reference at %q has no owning object spec", ref.RootPath)
		}
		key := specKey{owner.SchemaType, owner.RootPath}
		r.refs[key] = append(r.refs[key], ref)
	}

	return r, nil
}

func (r *Registry) ownerOf(ref *ReferencePathSpec) (*ObjectPathSpec, bool) {
	for _, obj := range r.cfg.Objects {
		if obj.SchemaType != ref.SchemaType || obj.ObjectType != ref.ObjectType {
			continue
		}
		if strings.HasPrefix(ref.RootPath, obj.RootPath) {
			return obj, true
		}
	}
	return nil, false
}

// Workflow returns the workflow name the configuration belongs to.
func (r *Registry) Workflow() string {
	return r.cfg.Workflow
}

// Objects returns every configured object spec, in declaration order.
func (r *Registry) Objects() []*ObjectPathSpec {
	return r.cfg.Objects
}

// SpecForRootTag resolves the object spec whose root path ends in tag.
// ok is false when no configured type matches.
func (r *Registry) SpecForRootTag(tag string) (*ObjectPathSpec, bool) {
	spec, ok := r.byTag[tag]
	return spec, ok
}

// Spec resolves an object spec by schema type and root path.
func (r *Registry) Spec(schemaType, rootPath string) (*ObjectPathSpec, bool) {
	spec, ok := r.byKey[specKey{schemaType, rootPath}]
	return spec, ok
}

// SchemaForSetTag resolves the schema spec whose set-wrapper tag is tag.
func (r *Registry) SchemaForSetTag(tag string) (*SchemaPathSpec, bool) {
	sch, ok := r.setByTag[tag]
	return sch, ok
}

// Schema resolves a schema spec by schema type.
func (r *Registry) Schema(schemaType string) (*SchemaPathSpec, bool) {
	sch, ok := r.schemas[schemaType]
	return sch, ok
}

// ReferencesFor returns the reference declarations owned by spec.
func (r *Registry) ReferencesFor(spec *ObjectPathSpec) []*ReferencePathSpec {
	return r.refs[specKey{spec.SchemaType, spec.RootPath}]
}
