package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/statictable/pkg/runner/keys"
)

func addKeys(topLevel *cobra.Command) {
	var class string
	cmd := &cobra.Command{
		Use:     "keys",
		Aliases: []string{"key"},
		Short:   "Print the descriptor keys and image names",
		Example: `
statictable keys
statictable keys --class Slider
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			k := keys.Keys{Class: class}
			return k.Do(cmd.Context())
		},
	}
	cmd.Flags().StringVarP(&class, "class", "c", "", "Only list the cell keys of this item class.")

	topLevel.AddCommand(cmd)
}
