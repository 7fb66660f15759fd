// Package base carries the state shared by every CLI command.
package base

import (
	"flag"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
)

// Command is embedded by all commands to provide common logging and UI.
type Command struct {
	Log hclog.Logger
	UI  cli.Ui
}

// FlagSet wraps a standard flag set with help rendering.
type FlagSet struct {
	*flag.FlagSet
}

// NewFlagSet wraps f.
func NewFlagSet(f *flag.FlagSet) *FlagSet {
	return &FlagSet{FlagSet: f}
}

// Help renders the flag defaults for inclusion in a command's help text.
func (f *FlagSet) Help() string {
	var b strings.Builder
	b.WriteString("\n\nOptions:\n\n")
	f.SetOutput(&b)
	f.PrintDefaults()
	return b.String()
}
