// Package link implements the command that assembles a submission, assigns
// accessions, propagates them into every cross-object reference, and writes
// the linked documents back out.
package link

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/antchfx/xmlquery"
	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"

	"github.com/metaforge/metalink/internal/cmd/base"
	"github.com/metaforge/metalink/pkg/accession"
	"github.com/metaforge/metalink/pkg/docwriter"
	"github.com/metaforge/metalink/pkg/linker"
	"github.com/metaforge/metalink/pkg/pathconfig"
	"github.com/metaforge/metalink/pkg/xmltree"
)

type Command struct {
	*base.Command

	flagConfig string
	flagOut    string
	flagPrefix string
}

func (c *Command) Synopsis() string {
	return "Link a submission: assign accessions and resolve references"
}

func (c *Command) Help() string {
	return `Usage: metalink link -config <workflow.yaml> [options] <document.xml>...

  Loads the workflow path configuration, assembles the given documents into
  one submission, assigns an accession to every object that lacks one,
  propagates accessions into all cross-object references, and writes one
  linked document per schema type into the output directory. Dangling
  references fail the run.` +
		c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("link", flag.ExitOnError))
	f.StringVar(&c.flagConfig, "config", "", "(Required) Path to the workflow path configuration.")
	f.StringVar(&c.flagOut, "out", "linked", "Directory the linked documents are written to.")
	f.StringVar(&c.flagPrefix, "accession-prefix", "",
		"Use a deterministic sequence generator with this prefix instead of UUID accessions.")
	return f
}

func (c *Command) Run(args []string) int {
	flags := c.Flags()
	if err := flags.Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}
	if c.flagConfig == "" {
		c.UI.Error("config flag is required")
		return 1
	}
	files := flags.Args()
	if len(files) == 0 {
		c.UI.Error("at least one document file is required")
		return 1
	}

	reg, err := pathconfig.LoadFile(c.flagConfig)
	if err != nil {
		c.UI.Error(fmt.Sprintf("error loading workflow configuration: %v", err))
		return 1
	}

	sub, err := loadSubmission(files, reg, c.Log)
	if err != nil {
		c.UI.Error(fmt.Sprintf("submission rejected:\n%v", err))
		return 1
	}

	var gen accession.Generator = accession.NewUUIDGenerator()
	if c.flagPrefix != "" {
		gen = accession.NewSequenceGenerator(c.flagPrefix)
	}

	for _, ident := range sub.Identifiers("") {
		if ident.Resolved() {
			continue
		}
		id, err := gen.Generate(reg.Workflow(), ident.ObjectType)
		if err != nil {
			c.UI.Error(fmt.Sprintf("error generating accession: %v", err))
			return 1
		}
		ident.ID = id
		if err := sub.SetID(ident); err != nil {
			c.UI.Error(fmt.Sprintf("error assigning accession: %v", err))
			return 1
		}
		c.UI.Output(fmt.Sprintf("%s %q -> %s", ident.SchemaType, ident.Name, id))
	}

	if dangling := sub.UnresolvedReferences(); len(dangling) > 0 {
		var result *multierror.Error
		for _, ref := range dangling {
			result = multierror.Append(result, fmt.Errorf(
				"dangling reference to %s %q", ref.SchemaType, ref.Name))
		}
		c.UI.Error(fmt.Sprintf("submission has unresolved references:\n%v", result))
		return 1
	}

	if err := c.writeOutputs(sub, reg); err != nil {
		c.UI.Error(fmt.Sprintf("error writing linked documents: %v", err))
		return 1
	}
	return 0
}

func (c *Command) writeOutputs(sub *linker.Submission, reg *pathconfig.Registry) error {
	if err := os.MkdirAll(c.flagOut, 0o755); err != nil {
		return err
	}

	bySchema := make(map[string][]string)
	var order []string
	for _, d := range sub.Documents() {
		for _, obj := range d.Objects() {
			st := obj.Identifier().SchemaType
			if _, ok := bySchema[st]; !ok {
				order = append(order, st)
			}
			bySchema[st] = append(bySchema[st], obj.XML())
		}
	}

	w := docwriter.New(reg)
	for _, schemaType := range order {
		path := filepath.Join(c.flagOut, schemaType+".xml")
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := w.WriteAll(f, "", schemaType, bySchema[schemaType]); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		c.UI.Output(fmt.Sprintf("wrote %s", path))
	}
	return nil
}

// loadSubmission parses every document file and assembles the submission.
func loadSubmission(files []string, reg *pathconfig.Registry, log hclog.Logger) (*linker.Submission, error) {
	var docs []*xmlquery.Node
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", file, err)
		}
		doc, err := xmltree.ParseString(string(data))
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", file, err)
		}
		docs = append(docs, doc)
	}
	return linker.NewSubmission(docs, reg, linker.WithLogger(log))
}
