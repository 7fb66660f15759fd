package cmd

import (
	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"

	"github.com/metaforge/metalink/internal/cmd/base"
	"github.com/metaforge/metalink/internal/cmd/commands/link"
	"github.com/metaforge/metalink/internal/cmd/commands/validate"
	"github.com/metaforge/metalink/internal/version"
)

// Commands is the mapping of all available CLI commands.
var Commands map[string]cli.CommandFactory

func initCommands(log hclog.Logger, ui cli.Ui) {
	b := &base.Command{Log: log, UI: ui}

	Commands = map[string]cli.CommandFactory{
		"link": func() (cli.Command, error) {
			return &link.Command{Command: b}, nil
		},
		"validate": func() (cli.Command, error) {
			return &validate.Command{Command: b}, nil
		},
		"version": func() (cli.Command, error) {
			return &versionCommand{ui: ui}, nil
		},
	}
}

type versionCommand struct {
	ui cli.Ui
}

func (c *versionCommand) Synopsis() string { return "Print the version" }
func (c *versionCommand) Help() string     { return "Usage: metalink version" }

func (c *versionCommand) Run([]string) int {
	c.ui.Output(version.Version)
	return 0
}
