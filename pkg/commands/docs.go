package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/statictable/pkg/runner/docs"
)

func addDocs(topLevel *cobra.Command) {
	d := &docs.Docs{}
	cmd := &cobra.Command{
		Use:     "docs",
		Aliases: []string{"guide"},
		Short:   "Explain the table document format",
		Example: `
statictable docs
statictable docs --width 100
statictable docs --raw > guide.md
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return d.Do(cmd.Context())
		},
	}
	cmd.Flags().IntVar(&d.Width, "width", 80, "Wrap the guide at this many columns.")
	cmd.Flags().BoolVar(&d.Raw, "raw", false, "Print the markdown source.")

	topLevel.AddCommand(cmd)
}
