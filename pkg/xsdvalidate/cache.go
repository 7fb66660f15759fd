package xsdvalidate

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/antchfx/xmlquery"
	"github.com/hashicorp/go-hclog"
	"github.com/spf13/afero"
)

// Cache resolves schema types to schema files, compiles each file once, and
// validates documents against the compiled form. Population is lazy and
// idempotent: compiling the same schema twice is wasteful but not incorrect,
// so one Cache may be shared by concurrent submissions behind its read-mostly
// lock. A Cache is never torn down mid-run.
type Cache struct {
	fs      afero.Fs
	dir     string
	compile CompileFunc
	log     hclog.Logger

	mu      sync.RWMutex
	schemas map[string]Schema
}

// CacheOption configures a Cache.
type CacheOption func(*Cache)

// WithLogger sets the cache logger.
func WithLogger(log hclog.Logger) CacheOption {
	return func(c *Cache) { c.log = log }
}

// NewCache builds a cache reading schema files from dir on fs. Schema types
// resolve to files as <dir>/<schema_type>.xsd.
func NewCache(fs afero.Fs, dir string, compile CompileFunc, opts ...CacheOption) *Cache {
	c := &Cache{
		fs:      fs,
		dir:     dir,
		compile: compile,
		log:     hclog.NewNullLogger(),
		schemas: make(map[string]Schema),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Validate implements Validator.
func (c *Cache) Validate(doc *xmlquery.Node, schemaType string) error {
	schema, err := c.schema(schemaType)
	if err != nil {
		return err
	}
	if violations := schema.Validate(doc); len(violations) > 0 {
		return &SchemaError{SchemaType: schemaType, Violations: violations}
	}
	return nil
}

func (c *Cache) schema(schemaType string) (Schema, error) {
	path := filepath.Join(c.dir, schemaType+".xsd")

	c.mu.RLock()
	schema, ok := c.schemas[path]
	c.mu.RUnlock()
	if ok {
		return schema, nil
	}

	source, err := afero.ReadFile(c.fs, path)
	if err != nil {
		return nil, fmt.Errorf("reading schema for %s: %w", schemaType, err)
	}
	schema, err = c.compile(source)
	if err != nil {
		return nil, fmt.Errorf("compiling schema %s: %w", path, err)
	}
	c.log.Debug("compiled schema", "schema_type", schemaType, "path", path)

	c.mu.Lock()
	// Another goroutine may have compiled the same schema meanwhile; keep
	// the first stored copy so callers always see one instance.
	if prev, ok := c.schemas[path]; ok {
		schema = prev
	} else {
		c.schemas[path] = schema
	}
	c.mu.Unlock()
	return schema, nil
}
