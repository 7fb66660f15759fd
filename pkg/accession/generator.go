// Package accession supplies externally generated unique identifier strings
// for metadata objects. The linking engine never mints accessions itself; it
// consumes whatever a Generator produces, so deployments can substitute a
// registry-backed supplier without touching the engine.
package accession

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Generator produces one unique accession per call. Implementations must be
// collision-free within a submission and safe for concurrent use.
type Generator interface {
	Generate(workflow, objectType string) (string, error)
}

// GeneratorFunc adapts a function to the Generator interface.
type GeneratorFunc func(workflow, objectType string) (string, error)

// Generate implements Generator.
func (f GeneratorFunc) Generate(workflow, objectType string) (string, error) {
	return f(workflow, objectType)
}

// UUIDGenerator mints accessions of the form WORKFLOW-OBJECTTYPE-<uuid4>.
// Uniqueness comes from the UUID, so no coordination is needed.
type UUIDGenerator struct{}

// NewUUIDGenerator builds a UUID-backed generator.
func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate implements Generator.
func (g *UUIDGenerator) Generate(workflow, objectType string) (string, error) {
	if workflow == "" || objectType == "" {
		return "", fmt.Errorf("workflow and object type are required")
	}
	return fmt.Sprintf("%s-%s-%s",
		strings.ToUpper(workflow), strings.ToUpper(objectType), uuid.NewString()), nil
}

// SequenceGenerator mints deterministic accessions PREFIX-OBJECTTYPE-NNNNNN
// with a per-object-type counter. Deterministic output makes it the fixture
// generator of choice in tests.
type SequenceGenerator struct {
	prefix string

	mu   sync.Mutex
	next map[string]int
}

// NewSequenceGenerator builds a sequence generator with the given accession
// prefix.
func NewSequenceGenerator(prefix string) *SequenceGenerator {
	return &SequenceGenerator{prefix: prefix, next: make(map[string]int)}
}

// Generate implements Generator.
func (g *SequenceGenerator) Generate(workflow, objectType string) (string, error) {
	if objectType == "" {
		return "", fmt.Errorf("object type is required")
	}
	g.mu.Lock()
	g.next[objectType]++
	n := g.next[objectType]
	g.mu.Unlock()
	return fmt.Sprintf("%s-%s-%06d", g.prefix, strings.ToUpper(objectType), n), nil
}
