package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/statictable/pkg/commands/options"
	"tableflip.dev/statictable/pkg/runner/render"
)

func addPrint(topLevel *cobra.Command) {
	po := &options.PrintOptions{}

	cmd := &cobra.Command{
		Use:   "print <file|catalog-name>",
		Short: "Print a table document without the terminal UI",
		Example: `
statictable print settings.yaml
statictable print demo --paths
statictable print settings.yaml --json
`,
		Args: cobra.ExactArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return catalogCompletions(cmd, toComplete), cobra.ShellCompDirectiveDefault
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			r := render.Render{
				Source:    args[0],
				JSON:      oo.JSON,
				ShowPaths: po.ShowPaths,
			}
			err := r.Do(cmd.Context())
			return oo.HandleError(err)
		},
	}

	options.AddPrintArgs(cmd, po)
	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
