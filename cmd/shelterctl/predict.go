package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"shelter-dashboard/internal/dashboard"
	"shelter-dashboard/internal/domain/animals"
	"shelter-dashboard/internal/domain/predictions"
)

func predictCmd() *cobra.Command {
	var (
		animalID string
		preset   string
		form     = dashboard.DefaultForm()
	)

	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Predice la probabilidad de adopción",
		Long: `Parte del formulario por defecto. Con --animal se autocompleta desde ese registro
(como al seleccionar una fila del dashboard); los flags explícitos pisan lo autocompletado.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}

			board := dashboard.NewBoard()
			if animalID != "" {
				if _, err := board.Load(cmd.Context(), client, animals.ParsePreset(preset)); err != nil {
					return err
				}
				rec, ok := findRecord(board.Snapshot().Records, animalID)
				if !ok {
					return fmt.Errorf("animal %q not found in preset %s", animalID, preset)
				}
				board.Select(rec)
			}

			board.SetForm(overrideForm(cmd, board.Snapshot().Form, form))

			if _, err := board.Predict(cmd.Context(), client); err != nil {
				return err
			}
			snap := board.Snapshot()
			return renderPrediction(cmd.OutOrStdout(), snap.Form, snap.Prediction)
		},
	}

	cmd.Flags().StringVar(&animalID, "animal", "", "animal_id para autocompletar el formulario")
	cmd.Flags().StringVar(&preset, "preset", string(animals.PresetAll), "preset donde buscar --animal")
	cmd.Flags().StringVar(&form.AnimalType, "type", form.AnimalType, predictions.FieldAnimalType)
	cmd.Flags().StringVar(&form.SexUponOutcome, "sex", form.SexUponOutcome, predictions.FieldSexUponOutcome)
	cmd.Flags().StringVar(&form.PrimaryBreed, "breed", form.PrimaryBreed, predictions.FieldPrimaryBreed)
	cmd.Flags().Float64Var(&form.AgeWeeks, "age-weeks", form.AgeWeeks, predictions.FieldAgeWeeks)
	cmd.Flags().IntVar(&form.OutcomeMonth, "month", form.OutcomeMonth, predictions.FieldOutcomeMonth+" (1-12)")

	return cmd
}

// overrideForm aplica solo los flags que el usuario pasó explícitamente.
func overrideForm(cmd *cobra.Command, base, flags predictions.Request) predictions.Request {
	set := cmd.Flags().Changed
	if set("type") {
		base.AnimalType = flags.AnimalType
	}
	if set("sex") {
		base.SexUponOutcome = flags.SexUponOutcome
	}
	if set("breed") {
		base.PrimaryBreed = flags.PrimaryBreed
	}
	if set("age-weeks") {
		base.AgeWeeks = flags.AgeWeeks
	}
	if set("month") {
		base.OutcomeMonth = flags.OutcomeMonth
	}
	return base
}

func findRecord(recs []animals.Record, id string) (animals.Record, bool) {
	for _, r := range recs {
		if v, ok := r.Text(animals.FieldAnimalID); ok && v == id {
			return r, true
		}
	}
	return nil, false
}

func renderPrediction(out io.Writer, form predictions.Request, p dashboard.PredictionPanel) error {
	if _, err := fmt.Fprintln(out, TitleStyle.Render("Adoption prediction")); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(out, SubtleStyle.Render(fmt.Sprintf("%s · %s · %s · %.1f weeks · month %d",
		form.AnimalType, form.SexUponOutcome, form.PrimaryBreed, form.AgeWeeks, form.OutcomeMonth))); err != nil {
		return err
	}

	switch {
	case p.Err != nil:
		_, err := fmt.Fprintln(out, ErrorStyle.Render(p.Err.Error()))
		return err
	case p.Probability == nil:
		_, err := fmt.Fprintln(out, SubtleStyle.Render("no prediction"))
		return err
	default:
		_, err := fmt.Fprintln(out, SuccessStyle.Render(fmt.Sprintf("%.1f%%", *p.Probability*100)))
		return err
	}
}
