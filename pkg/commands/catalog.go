package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/statictable/pkg/commands/options"
	"tableflip.dev/statictable/pkg/prompt"
	"tableflip.dev/statictable/pkg/runner/catalog"
	"tableflip.dev/statictable/pkg/store"
	"tableflip.dev/statictable/pkg/timeutil"
)

func addCatalog(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "catalog",
		Aliases: []string{"cat"},
		Short:   base.Wrap80("Manage the library of named table documents."),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	addCatalogImport(cmd)
	addCatalogList(cmd)
	addCatalogRemove(cmd)
	topLevel.AddCommand(cmd)
}

func addCatalogImport(parent *cobra.Command) {
	co := &options.CatalogOptions{}
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Store a document file in the catalog",
		Example: `
statictable catalog import settings.yaml
statictable catalog import ./docs/a.yaml --name work/a
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := store.Load(nil)
			if err != nil {
				return err
			}
			i := catalog.Import{Catalog: c, Path: args[0], Name: co.Name}
			return i.Do(cmd.Context())
		},
	}
	options.AddImportArgs(cmd, co)
	parent.AddCommand(cmd)
}

func addCatalogList(parent *cobra.Command) {
	co := &options.CatalogOptions{}
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the stored documents",
		Example: `
statictable catalog list
statictable catalog list --prefix work/ --since 1w
statictable catalog list --json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			since, err := timeutil.ParseWindow(co.Since)
			if err != nil {
				return oo.HandleError(err)
			}
			c, err := store.Load(nil)
			if err != nil {
				return oo.HandleError(err)
			}
			l := catalog.List{Catalog: c, Prefix: co.Prefix, Since: since, JSON: oo.JSON}
			err = l.Do(cmd.Context())
			return oo.HandleError(err)
		},
	}
	options.AddListArgs(cmd, co)
	base.AddOutputArg(cmd, oo)
	parent.AddCommand(cmd)
}

func addCatalogRemove(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "remove [name]...",
		Aliases: []string{"rm"},
		Short:   "Remove documents from the catalog",
		Long:    "Remove documents from the catalog. Without names, pick one interactively.",
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return catalogCompletions(cmd, toComplete), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := store.Load(nil)
			if err != nil {
				return err
			}
			names := args
			if len(names) == 0 {
				name, err := pickForRemoval(cmd, c)
				if err != nil || name == "" {
					return err
				}
				names = []string{name}
			}
			r := catalog.Remove{Catalog: c, Names: names}
			return r.Do(cmd.Context())
		},
	}
	parent.AddCommand(cmd)
}

func pickForRemoval(cmd *cobra.Command, c store.Catalog) (string, error) {
	p := &prompt.Prompter{In: cmd.InOrStdin(), Out: cmd.OutOrStdout()}
	name, err := p.PickDocument("Remove", c.List(cmd.Context(), ""))
	if err != nil {
		return "", err
	}
	ok, err := p.Confirm(fmt.Sprintf("Remove %s", name))
	if err != nil || !ok {
		return "", err
	}
	return name, nil
}

func catalogCompletions(cmd *cobra.Command, toComplete string) []string {
	c, err := store.Load(nil)
	if err != nil {
		return nil
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	metas := c.List(ctx, toComplete)
	names := make([]string, len(metas))
	for i, m := range metas {
		names[i] = m.Name
	}
	return names
}
