package options

import (
	"github.com/spf13/cobra"
)

// ShowOptions
type ShowOptions struct {
	Host     string
	Watch    bool
	DebugLog string
}

func AddShowArgs(cmd *cobra.Command, o *ShowOptions) {
	cmd.Flags().StringVar(&o.Host, "host", "bubbletea",
		"Widget host to run. One of 'bubbletea' or 'tuigo'.")
	cmd.Flags().BoolVarP(&o.Watch, "watch", "w", false,
		"Reload the document when it changes on disk.")
	cmd.Flags().StringVar(&o.DebugLog, "debug-log", "",
		"Append component traces to this file.")
}

// PrintOptions
type PrintOptions struct {
	ShowPaths bool
}

func AddPrintArgs(cmd *cobra.Command, o *PrintOptions) {
	cmd.Flags().BoolVarP(&o.ShowPaths, "paths", "p", false,
		"Prefix rows with their (section,row) address.")
}

// CatalogOptions
type CatalogOptions struct {
	Name   string
	Prefix string
	Since  string
}

func AddImportArgs(cmd *cobra.Command, o *CatalogOptions) {
	cmd.Flags().StringVarP(&o.Name, "name", "n", "",
		"Catalog name. Defaults to the file name without its extension.")
}

func AddListArgs(cmd *cobra.Command, o *CatalogOptions) {
	cmd.Flags().StringVar(&o.Prefix, "prefix", "",
		"Only list names starting with prefix.")
	cmd.Flags().StringVar(&o.Since, "since", "",
		"Only list documents updated within this window, e.g. '3d' or '1w2d'.")
}
