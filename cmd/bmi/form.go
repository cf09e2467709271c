package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mmynk/bmitracker/internal/form"
)

func formCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "form",
		Short: "Enter records interactively",
		Long: `Prompts for name, weight and height, shows the BMI and asks whether to
save it. Enter "q" as the name or send EOF to quit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			f := form.New(store)
			in := bufio.NewScanner(cmd.InOrStdin())
			out := cmd.OutOrStdout()

			for {
				name, ok := prompt(in, out, "Name: ")
				if !ok || name == "q" {
					return in.Err()
				}
				weight, ok := prompt(in, out, "Weight (kg): ")
				if !ok {
					return in.Err()
				}
				height, ok := prompt(in, out, "Height (cm): ")
				if !ok {
					return in.Err()
				}

				res, err := f.Calculate(weight, height)
				printResult(out, res, err)
				if err != nil {
					continue
				}

				answer, ok := prompt(in, out, "Save this record? [y/N]: ")
				if !ok {
					return in.Err()
				}
				if !isYes(answer) {
					f.Clear()
					continue
				}

				record, err := f.Save(cmd.Context(), name)
				if err != nil {
					fmt.Fprintf(out, "Save failed: %v\n", err)
					continue
				}
				printSaved(out, record)
			}
		},
	}
}

func prompt(in *bufio.Scanner, out io.Writer, label string) (string, bool) {
	fmt.Fprint(out, label)
	if !in.Scan() {
		fmt.Fprintln(out)
		return "", false
	}
	return strings.TrimSpace(in.Text()), true
}

func isYes(s string) bool {
	switch strings.ToLower(s) {
	case "y", "yes":
		return true
	}
	return false
}
