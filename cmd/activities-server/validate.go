// cmd/activities-server/validate.go
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mergington-activities/pkg/registry"
)

func newValidateSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate-seed [path]",
		Short: "Validate a seed file, or the built-in fixture when no path is given",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			seed, err := registry.LoadOrDefault(path)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			participants := 0
			for _, a := range seed.Activities {
				participants += len(a.Participants)
			}
			fmt.Fprintf(out, "seed ok: %d activities, %d participants\n", len(seed.Activities), participants)
			return nil
		},
	}
}
