package main

import (
	"fmt"
	"strings"

	"emotecat/catalog"
	"emotecat/types"

	"github.com/spf13/cobra"
)

var (
	catalogPath string
	query       catalog.Query
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print catalog entries",
	Long: `Prints the catalog the way the emote picker sees it: a missing or
unreadable catalog is shown as empty. Columns are tab separated:
text, name, group, tags.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print entry counts per group",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func addCatalogFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&catalogPath, "catalog", "", "Catalog file to read (default: the emote picker's catalog)")
}

func loadCatalog() ([]types.EmoteEntry, error) {
	path := catalogPath
	if path == "" {
		var err error
		path, err = catalog.DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	return catalog.Load(path)
}

func runList(cmd *cobra.Command, args []string) error {
	entries, err := loadCatalog()
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	for _, e := range catalog.Filter(entries, query) {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.Text, e.Name, e.Group, strings.Join(e.Tags, ","))
	}
	return nil
}

func runStats(cmd *cobra.Command, args []string) error {
	entries, err := loadCatalog()
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	counts := catalog.Summarize(entries)
	for _, c := range counts {
		fmt.Fprintf(w, "%-28s %5d\n", c.Group, c.Count)
	}
	fmt.Fprintf(w, "%-28s %5d\n", "total", len(entries))
	return nil
}
