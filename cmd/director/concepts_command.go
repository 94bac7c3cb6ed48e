package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/BigBrown10/director-v2/internal/concepts"
)

func newConceptsCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "concepts",
		Short:       "List the built-in creative concepts",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog := concepts.Catalog()
			rows := make([][]string, 0, len(catalog))
			for _, concept := range catalog {
				rows = append(rows, []string{
					concept.ID,
					concept.Name,
					string(concept.Pacing),
					fmt.Sprintf("%d", concept.ZoomAggression),
					strings.Join(concept.Tags, ", "),
				})
			}
			table := renderTable(
				[]string{"ID", "Name", "Pacing", "Zoom", "Tags"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
			)
			fmt.Fprintln(cmd.OutOrStdout(), table)
			return nil
		},
	}
}
