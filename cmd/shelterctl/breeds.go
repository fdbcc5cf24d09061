package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"shelter-dashboard/internal/dashboard"
	"shelter-dashboard/internal/domain/animals"
)

func breedsCmd() *cobra.Command {
	var (
		mode   string
		topN   int
		filter string
		sortBy string
	)

	cmd := &cobra.Command{
		Use:   "breeds",
		Short: "Conteo de animales por raza",
		Long: `mode=top devuelve las N razas más frecuentes más "Other".
mode=all devuelve todas; --filter y --sort aplican a esa tabla de detalle.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}

			m := animals.ParseMode(mode)
			rows, err := client.BreedPie(cmd.Context(), m, topN)
			if err != nil {
				return err
			}

			table := dashboard.NewBreedTable(rows).WithFilter(filter)
			if sortBy != "" {
				table = table.ToggleSort(dashboard.BreedSortField(sortBy))
			}
			return renderBreeds(cmd.OutOrStdout(), m, table)
		},
	}

	cmd.Flags().StringVar(&mode, "mode", string(animals.ModeTopN), "top | all")
	cmd.Flags().IntVar(&topN, "top", animals.DefaultTopN, "cantidad de razas en modo top")
	cmd.Flags().StringVar(&filter, "filter", "", "substring de raza")
	cmd.Flags().StringVar(&sortBy, "sort", "", "breed | count (asc)")

	return cmd
}

func renderBreeds(out io.Writer, mode animals.AggregationMode, t dashboard.BreedTable) error {
	if _, err := fmt.Fprintln(out, TitleStyle.Render(fmt.Sprintf("Breeds · %s", mode))); err != nil {
		return err
	}

	rows := t.Rows()
	if len(rows) == 0 {
		_, err := fmt.Fprintln(out, SubtleStyle.Render("No breeds."))
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(w, "%s\t%s\n", HeaderStyle.Render("breed"), HeaderStyle.Render("count")); err != nil {
		return err
	}
	for _, r := range rows {
		if _, err := fmt.Fprintf(w, "%s\t%d\n", r.Breed, r.Count); err != nil {
			return err
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintln(out, SubtleStyle.Render(fmt.Sprintf("total %d", t.Total())))
	return err
}
