package docwriter

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metaforge/metalink/pkg/pathconfig"
	"github.com/metaforge/metalink/pkg/xmltree"
)

func testWriter(t *testing.T) *Writer {
	t.Helper()
	reg, err := pathconfig.Compile(&pathconfig.Config{
		Workflow: "imaging",
		Schemas: []*pathconfig.SchemaPathSpec{
			{SchemaType: "image", SetPath: "/IMAGE_SET", RootPaths: []string{"/IMAGE"}},
			{SchemaType: "policy", RootPaths: []string{"/POLICY"}},
		},
		Objects: []*pathconfig.ObjectPathSpec{
			{
				SchemaType: "image",
				ObjectType: "image",
				RootPath:   "/IMAGE",
				IdentifierPaths: []pathconfig.IdentifierPath{
					{NamePath: "./@alias", IDPath: "./@accession"},
				},
			},
			{
				SchemaType: "policy",
				ObjectType: "policy",
				RootPath:   "/POLICY",
				IdentifierPaths: []pathconfig.IdentifierPath{
					{NamePath: "./@alias", IDPath: "./@accession"},
				},
			},
		},
	})
	require.NoError(t, err)
	return New(reg)
}

func TestWriteSingleFragment(t *testing.T) {
	w := testWriter(t)
	var out strings.Builder

	err := w.WriteAll(&out, "", "image", []string{`<IMAGE alias="1"></IMAGE>`})
	require.NoError(t, err)
	assert.Equal(t,
		Declaration+"\n"+`<IMAGE alias="1"></IMAGE>`+"\n",
		out.String())
}

func TestWriteMultipleFragmentsWrapped(t *testing.T) {
	w := testWriter(t)
	var out strings.Builder

	err := w.WriteAll(&out, "", "image", []string{
		`<IMAGE alias="1"></IMAGE>`,
		"<IMAGE alias=\"2\">\n  <FILE>f.tif</FILE>\n</IMAGE>",
	})
	require.NoError(t, err)
	assert.Equal(t, Declaration+`
<IMAGE_SET>
  <IMAGE alias="1"></IMAGE>
  <IMAGE alias="2">
    <FILE>f.tif</FILE>
  </IMAGE>
</IMAGE_SET>
`, out.String())
}

func TestWriteByObjectType(t *testing.T) {
	w := testWriter(t)
	var out strings.Builder

	err := w.WriteAll(&out, "image", "", []string{`<IMAGE alias="1"></IMAGE>`})
	require.NoError(t, err)
	assert.Contains(t, out.String(), `<IMAGE alias="1">`)
}

func TestWriteAmbiguousCardinality(t *testing.T) {
	w := testWriter(t)
	var out strings.Builder

	err := w.WriteAll(&out, "", "", []string{"<IMAGE/>"})
	assert.ErrorIs(t, err, ErrAmbiguousCardinality)

	err = w.WriteAll(&out, "image", "image", []string{"<IMAGE/>"})
	assert.ErrorIs(t, err, ErrAmbiguousCardinality)
}

func TestWriteMultipleWithoutSetWrapper(t *testing.T) {
	w := testWriter(t)
	var out strings.Builder

	err := w.WriteAll(&out, "", "policy", []string{"<POLICY/>", "<POLICY/>"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "set wrapper")
}

func TestWriteLazySequenceAbortsOnError(t *testing.T) {
	w := testWriter(t)
	var out strings.Builder

	boom := errors.New("fragment source failed")
	err := w.Write(&out, "", "image", func(yield func(string, error) bool) {
		if !yield(`<IMAGE alias="1"></IMAGE>`, nil) {
			return
		}
		if !yield(`<IMAGE alias="2"></IMAGE>`, nil) {
			return
		}
		yield("", boom)
	})
	assert.ErrorIs(t, err, boom)
	// Partial output was already flushed; callers needing atomicity buffer
	// downstream.
	assert.Contains(t, out.String(), `<IMAGE alias="1">`)
}

func TestWriteRoundTrip(t *testing.T) {
	w := testWriter(t)

	fragments := []string{
		`<IMAGE alias="1" accession="img-1"></IMAGE>`,
		`<IMAGE alias="2" accession="img-2"></IMAGE>`,
	}

	var first strings.Builder
	require.NoError(t, w.WriteAll(&first, "", "image", fragments))

	// Parse the written document, pull the instances back out, write again:
	// structurally identical output.
	doc, err := xmltree.ParseString(first.String())
	require.NoError(t, err)
	root, err := xmltree.RootElement(doc)
	require.NoError(t, err)
	images, err := xmltree.FindAll("./IMAGE", root)
	require.NoError(t, err)
	require.Len(t, images, 2)

	reparsed := make([]string, 0, len(images))
	for _, img := range images {
		reparsed = append(reparsed, img.OutputXML(true))
	}
	var second strings.Builder
	require.NoError(t, w.WriteAll(&second, "", "image", reparsed))
	assert.Equal(t, first.String(), second.String())
}
