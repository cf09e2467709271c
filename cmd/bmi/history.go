package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mmynk/bmitracker/internal/bmi"
	"github.com/mmynk/bmitracker/internal/form"
)

func historyCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List saved records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			records, err := form.New(store).History(cmd.Context())
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No records yet")
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tWEIGHT\tHEIGHT\tBMI\tCATEGORY")
			for _, r := range records {
				fmt.Fprintf(tw, "%d\t%s\t%g\t%g\t%s\t%s\n",
					r.ID, r.Name, r.Weight, r.Height, bmi.Format(r.BMI), r.Category())
			}
			return tw.Flush()
		},
	}
}
