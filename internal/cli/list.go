// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"fmt"
	"io"

	"github.com/ik5/soundboard/catalog"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func listCmd(a *app) *cobra.Command {
	var (
		src      sourceFlags
		sortBy   string
		category string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the sounds on a board",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sounds, _, err := src.open(cmd.Context(), a)
			if err != nil {
				return err
			}

			if category != "" {
				sounds = lo.Filter(sounds, func(s catalog.Sound, _ int) bool {
					return s.Category() == category
				})
			}

			switch sortBy {
			case "path":
				catalog.SortByPath(sounds)
			case "name":
				catalog.SortByName(sounds)
			case "category":
				catalog.SortByPath(sounds)
				renderGroupedList(cmd.OutOrStdout(), sounds)
				return nil
			default:
				return fmt.Errorf("unknown sort %q, use path, name or category", sortBy)
			}

			renderList(cmd.OutOrStdout(), sounds)
			return nil
		},
	}

	src.register(cmd)
	cmd.Flags().StringVar(&sortBy, "sort", "path", "order by path, name or category (grouped)")
	cmd.Flags().StringVar(&category, "category", "", "only show this top-level folder")

	return cmd
}

func renderList(w io.Writer, sounds []catalog.Sound) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	t.AppendHeader(table.Row{"#", "Category", "Name", "Path"})
	for i, s := range sounds {
		t.AppendRow(table.Row{i + 1, s.Category(), s.DisplayName(), s.Path})
	}
	t.AppendFooter(table.Row{"", "", "Total", len(sounds)})

	t.Render()
}

// renderGroupedList prints one block per category, in path order, with a
// separator between blocks.
func renderGroupedList(w io.Writer, sounds []catalog.Sound) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	groups := catalog.GroupByCategory(sounds)
	n := 0

	t.AppendHeader(table.Row{"#", "Category", "Name", "Path"})
	for i, cat := range catalog.Categories(sounds) {
		if i > 0 {
			t.AppendSeparator()
		}
		for _, s := range groups[cat] {
			n++
			t.AppendRow(table.Row{n, cat, s.DisplayName(), s.Path})
		}
	}
	t.AppendFooter(table.Row{"", "", "Total", n})

	t.Render()
}
