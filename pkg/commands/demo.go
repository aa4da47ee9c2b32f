package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/statictable/pkg/commands/options"
	"tableflip.dev/statictable/pkg/runner/catalog"
	"tableflip.dev/statictable/pkg/runner/demo"
	"tableflip.dev/statictable/pkg/runner/render"
	"tableflip.dev/statictable/pkg/runner/show"
	"tableflip.dev/statictable/pkg/store"
)

func addDemo(topLevel *cobra.Command) {
	so := &options.ShowOptions{}
	var printOnly, save bool

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Show the built-in settings document",
		Example: `
statictable demo
statictable demo --host tuigo
statictable demo --print
statictable demo --save
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch {
			case save:
				c, err := store.Load(nil)
				if err != nil {
					return err
				}
				s := catalog.Save{Catalog: c, Name: demo.Name, Doc: demo.Document()}
				return s.Do(cmd.Context())
			case printOnly:
				r := render.Render{Source: demo.Name, Load: demo.Load}
				return r.Do(cmd.Context())
			}
			s := show.Show{
				Source:   demo.Name,
				Load:     demo.Load,
				Host:     so.Host,
				DebugLog: so.DebugLog,
			}
			return s.Do(cmd.Context())
		},
	}

	options.AddShowArgs(cmd, so)
	_ = cmd.Flags().MarkHidden("watch")
	cmd.Flags().BoolVar(&printOnly, "print", false, "Print the demo instead of opening it.")
	cmd.Flags().BoolVar(&save, "save", false, "Store the demo in the catalog as 'demo'.")
	topLevel.AddCommand(cmd)
}
