package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mmynk/bmitracker/internal/form"
	"github.com/mmynk/bmitracker/internal/trend"
)

func trendCommand(a *app) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "trend",
		Short: "Write the height/BMI chart as an HTML page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			store, err := a.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			chart, err := form.New(store).Trend(cmd.Context())
			if err != nil {
				return err
			}

			width, height := a.settings.Trend.Width, a.settings.Trend.Height
			if out == "-" {
				return trend.Render(cmd.OutOrStdout(), chart, width, height)
			}

			file, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", out, err)
			}
			defer func() {
				if cerr := file.Close(); cerr != nil && err == nil {
					err = fmt.Errorf("failed to close %s: %w", out, cerr)
				}
			}()

			if err := trend.Render(file, chart, width, height); err != nil {
				return err
			}
			slog.Info("Trend chart written", "path", out, "points", chart.Len())
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "bmi_trend.html", `Output file, "-" for stdout`)

	return cmd
}
