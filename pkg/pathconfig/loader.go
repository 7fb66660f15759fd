package pathconfig

import (
	"fmt"
	"io"
	"os"

	"github.com/iancoleman/strcase"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/metaforge/metalink/pkg/xmltree"
)

// The YAML shape of a workflow configuration file. Raw structs carry only
// data; insertion strategies are referenced by name and bound to functions
// when the raw form is compiled into a Config.
type rawConfig struct {
	Workflow   string      `mapstructure:"workflow"`
	Objects    []rawObject `mapstructure:"objects"`
	References []rawRef    `mapstructure:"references"`
	Schemas    []rawSchema `mapstructure:"schemas"`
}

type rawObject struct {
	SchemaType      string    `mapstructure:"schema_type"`
	ObjectType      string    `mapstructure:"object_type"`
	RootPath        string    `mapstructure:"root_path"`
	Mandatory       bool      `mapstructure:"mandatory"`
	Single          bool      `mapstructure:"single"`
	IdentifierPaths []rawPath `mapstructure:"identifier_paths"`
	TitlePath       string    `mapstructure:"title_path"`
	DescriptionPath string    `mapstructure:"description_path"`
}

type rawRef struct {
	SchemaType    string    `mapstructure:"schema_type"`
	ObjectType    string    `mapstructure:"object_type"`
	RefSchemaType string    `mapstructure:"ref_schema_type"`
	RefObjectType string    `mapstructure:"ref_object_type"`
	RootPath      string    `mapstructure:"root_path"`
	RefRootPath   string    `mapstructure:"ref_root_path"`
	Paths         []rawPath `mapstructure:"paths"`
}

type rawSchema struct {
	SchemaType string   `mapstructure:"schema_type"`
	SetPath    string   `mapstructure:"set_path"`
	RootPaths  []string `mapstructure:"root_paths"`
}

type rawPath struct {
	NamePath   string     `mapstructure:"name_path"`
	IDPath     string     `mapstructure:"id_path"`
	NameInsert *rawInsert `mapstructure:"name_insert"`
	IDInsert   *rawInsert `mapstructure:"id_insert"`
}

type rawInsert struct {
	Strategy string   `mapstructure:"strategy"`
	Anchors  []string `mapstructure:"after"`
}

// Insertion strategy names accepted in configuration files.
const (
	StrategyFirstChild = "first_child"
	StrategyLastChild  = "last_child"
	StrategyAfterAnyOf = "after_any_of"
)

// LoadFile reads and compiles a workflow configuration file.
func LoadFile(path string) (*Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening workflow config: %w", err)
	}
	defer f.Close()
	reg, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("workflow config %s: %w", path, err)
	}
	return reg, nil
}

// Load decodes a YAML workflow configuration and compiles it into a
// Registry. The YAML is decoded generically first and mapped onto typed
// structs with mapstructure, so unknown keys are reported instead of
// silently dropped.
func Load(r io.Reader) (*Registry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var generic map[string]interface{}
	if err := yaml.Unmarshal(data, &generic); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}

	var raw rawConfig
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &raw,
		ErrorUnused: true,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(generic); err != nil {
		return nil, fmt.Errorf("decoding configuration: %w", err)
	}

	cfg, err := raw.toConfig()
	if err != nil {
		return nil, err
	}
	return Compile(cfg)
}

func (raw *rawConfig) toConfig() (*Config, error) {
	cfg := &Config{Workflow: raw.Workflow}

	for _, o := range raw.Objects {
		objectType := o.ObjectType
		if objectType == "" {
			// Default the object type from the root tag: SAMPLE_SET -> sample_set.
			objectType = strcase.ToSnake(lastSegment(o.RootPath))
		}
		spec := &ObjectPathSpec{
			SchemaType:      o.SchemaType,
			ObjectType:      objectType,
			RootPath:        o.RootPath,
			Mandatory:       o.Mandatory,
			Single:          o.Single,
			TitlePath:       o.TitlePath,
			DescriptionPath: o.DescriptionPath,
		}
		for _, p := range o.IdentifierPaths {
			ip, err := p.toIdentifierPath()
			if err != nil {
				return nil, fmt.Errorf("object %s: %w", o.SchemaType, err)
			}
			spec.IdentifierPaths = append(spec.IdentifierPaths, ip)
		}
		cfg.Objects = append(cfg.Objects, spec)
	}

	for _, rr := range raw.References {
		ref := &ReferencePathSpec{
			SchemaType:    rr.SchemaType,
			ObjectType:    rr.ObjectType,
			RefSchemaType: rr.RefSchemaType,
			RefObjectType: rr.RefObjectType,
			RootPath:      rr.RootPath,
			RefRootPath:   rr.RefRootPath,
		}
		for _, p := range rr.Paths {
			ip, err := p.toIdentifierPath()
			if err != nil {
				return nil, fmt.Errorf("reference at %s: %w", rr.RootPath, err)
			}
			ref.Paths = append(ref.Paths, ip)
		}
		cfg.References = append(cfg.References, ref)
	}

	for _, s := range raw.Schemas {
		cfg.Schemas = append(cfg.Schemas, &SchemaPathSpec{
			SchemaType: s.SchemaType,
			SetPath:    s.SetPath,
			RootPaths:  s.RootPaths,
		})
	}

	return cfg, nil
}

func (p rawPath) toIdentifierPath() (IdentifierPath, error) {
	ip := IdentifierPath{NamePath: p.NamePath, IDPath: p.IDPath}

	var err error
	if ip.NameInsert, err = p.NameInsert.toFunc(p.NamePath); err != nil {
		return IdentifierPath{}, err
	}
	if ip.IDInsert, err = p.IDInsert.toFunc(p.IDPath); err != nil {
		return IdentifierPath{}, err
	}
	return ip, nil
}

func (i *rawInsert) toFunc(path string) (xmltree.InsertFunc, error) {
	if i == nil {
		return nil, nil
	}
	rel := xmltree.ToRelative(path)
	switch i.Strategy {
	case StrategyFirstChild:
		return xmltree.InsertAsFirstChild(rel), nil
	case StrategyLastChild:
		return xmltree.InsertAsLastChild(rel), nil
	case StrategyAfterAnyOf:
		if len(i.Anchors) == 0 {
			return nil, fmt.Errorf("strategy %s on path %q needs an 'after' list", i.Strategy, path)
		}
		return xmltree.InsertAfterAnyOf(rel, i.Anchors...), nil
	default:
		return nil, fmt.Errorf("unknown insertion strategy %q on path %q", i.Strategy, path)
	}
}
