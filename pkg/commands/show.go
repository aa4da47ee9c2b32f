package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/statictable/pkg/commands/options"
	"tableflip.dev/statictable/pkg/runner/show"
)

func addShow(topLevel *cobra.Command) {
	so := &options.ShowOptions{}

	cmd := &cobra.Command{
		Use:   "show [file|catalog-name]",
		Short: "Open a table document in the terminal",
		Example: `
statictable show settings.yaml
statictable show settings.yaml --watch
statictable show demo --host tuigo
statictable show
`,
		Args: cobra.MaximumNArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return catalogCompletions(cmd, toComplete), cobra.ShellCompDirectiveDefault
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			s := show.Show{
				Host:     so.Host,
				Watch:    so.Watch,
				DebugLog: so.DebugLog,
			}
			if len(args) > 0 {
				s.Source = args[0]
			}
			return s.Do(cmd.Context())
		},
	}

	options.AddShowArgs(cmd, so)
	_ = cmd.RegisterFlagCompletionFunc("host", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{show.HostBubbleTea, show.HostTuiGo}, cobra.ShellCompDirectiveNoFileComp
	})
	topLevel.AddCommand(cmd)
}
