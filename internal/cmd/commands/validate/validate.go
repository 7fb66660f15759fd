// Package validate implements the command that checks a submission without
// mutating anything on disk: configuration errors, identity conflicts,
// duplicates, and cardinality violations are all reported in one pass.
package validate

import (
	"flag"
	"fmt"
	"os"

	"github.com/antchfx/xmlquery"

	"github.com/metaforge/metalink/internal/cmd/base"
	"github.com/metaforge/metalink/pkg/linker"
	"github.com/metaforge/metalink/pkg/pathconfig"
	"github.com/metaforge/metalink/pkg/xmltree"
)

type Command struct {
	*base.Command

	flagConfig string
}

func (c *Command) Synopsis() string {
	return "Validate a submission against its workflow configuration"
}

func (c *Command) Help() string {
	return `Usage: metalink validate -config <workflow.yaml> <document.xml>...

  Assembles the given documents into one submission and reports every
  integrity and cardinality failure at once. Nothing is written; documents
  that pass can be linked with 'metalink link'.` +
		c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("validate", flag.ExitOnError))
	f.StringVar(&c.flagConfig, "config", "", "(Required) Path to the workflow path configuration.")
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

	var docs []*xmlquery.Node
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			c.UI.Error(fmt.Sprintf("error reading %s: %v", file, err))
			return 1
		}
		doc, err := xmltree.ParseString(string(data))
		if err != nil {
			c.UI.Error(fmt.Sprintf("error parsing %s: %v", file, err))
			return 1
		}
		docs = append(docs, doc)
	}

	sub, err := linker.NewSubmission(docs, reg, linker.WithLogger(c.Log))
	if err != nil {
		c.UI.Error(fmt.Sprintf("submission is invalid:\n%v", err))
		return 1
	}

	idents := sub.Identifiers("")
	c.UI.Output(fmt.Sprintf("submission is valid: %d object(s) across %d document(s)",
		len(idents), len(sub.Documents())))
	for _, ref := range sub.UnresolvedReferences() {
		c.UI.Warn(fmt.Sprintf("unresolved reference to %s %q (resolved at link time)",
			ref.SchemaType, ref.Name))
	}
	return 0
}
