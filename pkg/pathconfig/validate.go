package pathconfig

import (
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/metaforge/metalink/pkg/xmltree"
)

// Validate checks the configuration for programmer mistakes: missing fields,
// wrongly anchored paths, empty identifier path lists. These are fatal and
// never retried.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Workflow, validation.Required),
		validation.Field(&c.Objects, validation.Required),
		validation.Field(&c.References),
		validation.Field(&c.Schemas),
	)
}

// Validate implements validation.Validatable.
func (s *ObjectPathSpec) Validate() error {
	return validation.ValidateStruct(s,
		validation.Field(&s.SchemaType, validation.Required),
		validation.Field(&s.ObjectType, validation.Required),
		validation.Field(&s.RootPath, validation.Required, validation.By(absolutePath)),
		validation.Field(&s.IdentifierPaths, validation.Required),
		validation.Field(&s.TitlePath, validation.By(anchoredPath)),
		validation.Field(&s.DescriptionPath, validation.By(anchoredPath)),
	)
}

// Validate implements validation.Validatable.
func (p IdentifierPath) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.NamePath, validation.Required, validation.By(anchoredPath)),
		validation.Field(&p.IDPath, validation.Required, validation.By(anchoredPath)),
	)
}

// Validate implements validation.Validatable.
func (s *ReferencePathSpec) Validate() error {
	return validation.ValidateStruct(s,
		validation.Field(&s.SchemaType, validation.Required),
		validation.Field(&s.ObjectType, validation.Required),
		validation.Field(&s.RefSchemaType, validation.Required),
		validation.Field(&s.RefObjectType, validation.Required),
		validation.Field(&s.RootPath, validation.Required, validation.By(absolutePath)),
		validation.Field(&s.RefRootPath, validation.Required, validation.By(absolutePath)),
		validation.Field(&s.Paths, validation.Required),
	)
}

// Validate implements validation.Validatable.
func (s *SchemaPathSpec) Validate() error {
	return validation.ValidateStruct(s,
		validation.Field(&s.SchemaType, validation.Required),
		validation.Field(&s.SetPath, validation.By(absolutePath)),
	)
}

// absolutePath requires every alternative of a non-empty path to be anchored
// at the document root.
func absolutePath(value interface{}) error {
	path, _ := value.(string)
	if path == "" {
		return nil
	}
	for _, alt := range xmltree.Alternatives(path) {
		if !strings.HasPrefix(alt, "/") {
			return errors.New("must be an absolute path")
		}
	}
	return nil
}

// anchoredPath accepts either anchoring; the processing layers re-anchor at
// evaluation time. It only rejects paths with no steps at all.
func anchoredPath(value interface{}) error {
	path, _ := value.(string)
	if path == "" {
		return nil
	}
	if len(xmltree.Alternatives(path)) == 0 {
		return errors.New("must contain at least one path expression")
	}
	return nil
}
