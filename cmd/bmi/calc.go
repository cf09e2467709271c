package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mmynk/bmitracker/internal/bmi"
	"github.com/mmynk/bmitracker/internal/form"
	"github.com/mmynk/bmitracker/internal/models"
)

func calcCommand(a *app) *cobra.Command {
	var weight, height string

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Calculate BMI without saving it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := bmi.Calculate(weight, height)
			printResult(cmd.OutOrStdout(), res, err)
			return err
		},
	}

	cmd.Flags().StringVarP(&weight, "weight", "w", "", "Weight in kilograms")
	cmd.Flags().StringVarP(&height, "height", "H", "", "Height in centimeters")

	return cmd
}

func addCommand(a *app) *cobra.Command {
	var name, weight, height string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Calculate BMI and save it as a record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			f := form.New(store)
			res, err := f.Calculate(weight, height)
			printResult(cmd.OutOrStdout(), res, err)
			if err != nil {
				return err
			}

			record, err := f.Save(cmd.Context(), name)
			if err != nil {
				return err
			}
			printSaved(cmd.OutOrStdout(), record)
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Name stored with the record")
	cmd.Flags().StringVarP(&weight, "weight", "w", "", "Weight in kilograms")
	cmd.Flags().StringVarP(&height, "height", "H", "", "Height in centimeters")

	return cmd
}

// printResult shows a calculation the way the form displays it.
func printResult(w io.Writer, res bmi.Result, err error) {
	if err != nil {
		if errors.Is(err, bmi.ErrInvalidInput) {
			fmt.Fprintf(w, "BMI: %s\n", bmi.InvalidInputText)
			return
		}
		fmt.Fprintf(w, "BMI: error: %v\n", err)
		return
	}
	fmt.Fprintf(w, "BMI: %s\n", res.Display())
	fmt.Fprintf(w, "Result: %s\n", res.Category)
}

func printSaved(w io.Writer, r *models.Record) {
	fmt.Fprintf(w, "Saved record #%d\n", r.ID)
}
