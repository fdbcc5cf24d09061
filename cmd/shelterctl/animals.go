package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"shelter-dashboard/internal/dashboard"
	"shelter-dashboard/internal/domain/animals"
)

// Columnas visibles de la tabla principal, en orden.
var recordColumns = []string{
	animals.FieldAnimalID,
	animals.FieldName,
	animals.FieldAnimalType,
	animals.FieldBreed,
	animals.FieldSexUponOutcome,
	animals.FieldAgeInWeeks,
	animals.FieldOutcomeType,
}

func animalsCmd() *cobra.Command {
	var (
		preset   string
		filters  []string
		sortBy   string
		sortDir  string
		page     int
		pageSize int
	)

	cmd := &cobra.Command{
		Use:   "animals",
		Short: "Lista registros por preset de rescate",
		Long: `Carga los registros del preset y aplica en el cliente los filtros por columna,
el orden y la paginación, igual que la tabla del dashboard.

Filtros: --filter breed=retriever (substring, sin distinguir mayúsculas).`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}

			board := dashboard.NewBoard()
			if _, err := board.Load(cmd.Context(), client, animals.ParsePreset(preset)); err != nil {
				return err
			}

			view, err := applyViewFlags(board.Snapshot().View, filters, sortBy, sortDir, pageSize, page)
			if err != nil {
				return err
			}
			board.Update(func(dashboard.ViewState) dashboard.ViewState { return view })

			snap := board.Snapshot()
			return renderRecords(cmd.OutOrStdout(), snap.View.RescueType(), snap.Page)
		},
	}

	cmd.Flags().StringVar(&preset, "preset", string(animals.PresetAll), "All | water_rescue | mountain_wilderness_rescue | disaster_individual_tracking")
	cmd.Flags().StringArrayVar(&filters, "filter", nil, "filtro columna=texto (repetible)")
	cmd.Flags().StringVar(&sortBy, "sort", "", "columna de orden")
	cmd.Flags().StringVar(&sortDir, "dir", string(dashboard.Asc), "asc | desc")
	cmd.Flags().IntVar(&page, "page", 1, "número de página")
	cmd.Flags().IntVar(&pageSize, "page-size", dashboard.DefaultPageSize, "filas por página")

	return cmd
}

// applyViewFlags arma la vista en el mismo orden que el dashboard: filtros y orden
// vuelven a página 1, así que la página va al final.
func applyViewFlags(v dashboard.ViewState, filters []string, sortBy, sortDir string, pageSize, page int) (dashboard.ViewState, error) {
	for _, f := range filters {
		col, term, ok := strings.Cut(f, "=")
		if !ok || strings.TrimSpace(col) == "" {
			return v, fmt.Errorf("invalid filter %q, expected column=text", f)
		}
		v = v.WithColumnFilter(strings.TrimSpace(col), term)
	}
	if sortBy != "" {
		v = v.WithSort(sortBy, dashboard.ParseSortDirection(sortDir))
	}
	if pageSize > 0 {
		v = v.WithPageSize(pageSize)
	}
	return v.WithPage(page), nil
}

func renderRecords(out io.Writer, preset animals.RescuePreset, p dashboard.Page) error {
	if _, err := fmt.Fprintln(out, TitleStyle.Render(fmt.Sprintf("Animals · %s", preset))); err != nil {
		return err
	}
	if p.Total == 0 {
		_, err := fmt.Fprintln(out, SubtleStyle.Render("No records."))
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	header := make([]string, len(recordColumns))
	for i, c := range recordColumns {
		header[i] = HeaderStyle.Render(c)
	}
	if _, err := fmt.Fprintln(w, strings.Join(header, "\t")); err != nil {
		return err
	}

	for _, r := range p.Items {
		row := make([]string, len(recordColumns))
		for i, c := range recordColumns {
			if v, ok := r.Lookup(c); ok {
				row[i] = animals.Stringify(v)
			}
		}
		if _, err := fmt.Fprintln(w, strings.Join(row, "\t")); err != nil {
			return err
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintln(out, SubtleStyle.Render(fmt.Sprintf("page %d/%d · %d records", p.Number, p.TotalPages, p.Total)))
	return err
}
