package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
)

var (
	oo = &base.OutputOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "statictable",
		Short: base.Wrap80("Declarative tables for the terminal, described as YAML or JSON documents."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addShow(topLevel)
	addPrint(topLevel)
	addDemo(topLevel)
	addCatalog(topLevel)
	addKeys(topLevel)
	addDocs(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}
