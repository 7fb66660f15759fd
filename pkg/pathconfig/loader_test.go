package pathconfig

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const workflowYAML = `
workflow: image-archive
schemas:
  - schema_type: study
    set_path: /STUDY_SET
    root_paths: [/STUDY]
  - schema_type: image
    set_path: /IMAGE_SET
    root_paths: [/IMAGE]
objects:
  - schema_type: study
    root_path: /STUDY
    mandatory: true
    single: true
    identifier_paths:
      - name_path: ./@alias
        id_path: ./@accession
      - name_path: ./IDENTIFIERS/SUBMITTER_ID
        id_path: ./IDENTIFIERS/PRIMARY_ID
        name_insert:
          strategy: first_child
        id_insert:
          strategy: after_any_of
          after: [SUBMITTER_ID]
    title_path: ./DESCRIPTOR/STUDY_TITLE
  - schema_type: image
    object_type: image
    root_path: /IMAGE
    mandatory: true
    identifier_paths:
      - name_path: ./@alias
        id_path: ./@accession
references:
  - schema_type: study
    object_type: study
    ref_schema_type: image
    ref_object_type: image
    root_path: /STUDY/IMAGE_REF
    ref_root_path: /IMAGE
    paths:
      - name_path: ./@refname
        id_path: ./@accession
`

func TestLoad(t *testing.T) {
	reg, err := Load(strings.NewReader(workflowYAML))
	require.NoError(t, err)

	assert.Equal(t, "image-archive", reg.Workflow())

	study, ok := reg.SpecForRootTag("STUDY")
	require.True(t, ok)
	assert.Equal(t, "study", study.SchemaType)
	// object_type omitted in YAML: defaulted from the root tag.
	assert.Equal(t, "study", study.ObjectType)
	assert.True(t, study.Mandatory)
	assert.True(t, study.Single)
	require.Len(t, study.IdentifierPaths, 2)
	assert.Nil(t, study.IdentifierPaths[0].IDInsert)
	assert.NotNil(t, study.IdentifierPaths[1].NameInsert)
	assert.NotNil(t, study.IdentifierPaths[1].IDInsert)

	sch, ok := reg.SchemaForSetTag("STUDY_SET")
	require.True(t, ok)
	assert.Equal(t, "study", sch.SchemaType)

	refs := reg.ReferencesFor(study)
	require.Len(t, refs, 1)
	assert.Equal(t, "image", refs[0].RefSchemaType)
	assert.Equal(t, "/IMAGE", refs[0].RefRootPath)
}

func TestLoadUnknownStrategy(t *testing.T) {
	yaml := strings.Replace(workflowYAML, "strategy: first_child", "strategy: sideways", 1)
	_, err := Load(strings.NewReader(yaml))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown insertion strategy")
}

func TestLoadUnknownKey(t *testing.T) {
	yaml := workflowYAML + "\nsurprise: true\n"
	_, err := Load(strings.NewReader(yaml))
	assert.Error(t, err)
}

func TestLoadRejectsRelativeRootPath(t *testing.T) {
	yaml := strings.Replace(workflowYAML, "root_path: /STUDY\n", "root_path: ./STUDY\n", 1)
	_, err := Load(strings.NewReader(yaml))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "absolute")
}

func TestCompileRejectsDuplicateRootTag(t *testing.T) {
	cfg := &Config{
		Workflow: "w",
		Objects: []*ObjectPathSpec{
			{
				SchemaType:      "a",
				ObjectType:      "a",
				RootPath:        "/THING",
				IdentifierPaths: []IdentifierPath{{NamePath: "./@alias", IDPath: "./@accession"}},
			},
			{
				SchemaType:      "b",
				ObjectType:      "b",
				RootPath:        "/THING",
				IdentifierPaths: []IdentifierPath{{NamePath: "./@alias", IDPath: "./@accession"}},
			},
		},
	}
	_, err := Compile(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "root tag")
}

func TestCompileRejectsOrphanReference(t *testing.T) {
	cfg := &Config{
		Workflow: "w",
		Objects: []*ObjectPathSpec{
			{
				SchemaType:      "a",
				ObjectType:      "a",
				RootPath:        "/A",
				IdentifierPaths: []IdentifierPath{{NamePath: "./@alias", IDPath: "./@accession"}},
			},
		},
		References: []*ReferencePathSpec{
			{
				SchemaType:    "b",
				ObjectType:    "b",
				RefSchemaType: "a",
				RefObjectType: "a",
				RootPath:      "/B/A_REF",
				RefRootPath:   "/A",
				Paths:         []IdentifierPath{{NamePath: "./@refname", IDPath: "./@accession"}},
			},
		},
	}
	_, err := Compile(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no owning object spec")
}

func TestConfigValidate(t *testing.T) {
	cfg := &Config{
		Workflow: "w",
		Objects: []*ObjectPathSpec{
			{SchemaType: "a", ObjectType: "a", RootPath: "/A"},
		},
	}
	// Missing identifier paths.
	assert.Error(t, cfg.Validate())
}
