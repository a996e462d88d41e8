// cmd/tools/seed-updater/main.go
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"mergington-activities/pkg/registry"
)

var seedPath string

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "seed-updater",
		Short: "Edit and validate activity seed files",
		Example: `  seed-updater add --name "Chess Club" --description "Learn strategies" --schedule "Fridays, 3:30 PM - 5:00 PM" --max 12
  seed-updater update --name "Chess Club" --field max_participants --value 16
  seed-updater validate --path configs/seed.yaml`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&seedPath, "path", "configs/seed.yaml", "path to seed file (.yaml or .json)")

	root.AddCommand(newAddCmd(), newUpdateCmd(), newValidateCmd())
	return root
}

func newAddCmd() *cobra.Command {
	var a registry.Activity
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a new activity to the seed",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := addActivity(seedPath, a); err != nil {
				return fmt.Errorf("error adding activity: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added activity: %s\n", a.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&a.Name, "name", "", "activity name (e.g. Chess Club)")
	cmd.Flags().StringVar(&a.Description, "description", "", "description")
	cmd.Flags().StringVar(&a.Schedule, "schedule", "", "schedule (e.g. Fridays, 3:30 PM - 5:00 PM)")
	cmd.Flags().IntVar(&a.MaxParticipants, "max", 0, "maximum participants")
	cmd.Flags().StringSliceVar(&a.Participants, "participant", nil, "initial participant email (repeatable)")
	for _, f := range []string{"name", "description", "schedule", "max"} {
		_ = cmd.MarkFlagRequired(f)
	}
	return cmd
}

func newUpdateCmd() *cobra.Command {
	var name, field, value string
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update a field of an existing activity",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := updateActivity(seedPath, name, field, value); err != nil {
				return fmt.Errorf("error updating activity: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated activity %s, field %s to %s\n", name, field, value)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "activity name to update")
	cmd.Flags().StringVar(&field, "field", "", "field to update (description, schedule, max_participants, add_participant, remove_participant)")
	cmd.Flags().StringVar(&value, "value", "", "new value for the field")
	for _, f := range []string{"name", "field", "value"} {
		_ = cmd.MarkFlagRequired(f)
	}
	return cmd
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the seed file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			seed, err := registry.LoadRegistry(seedPath)
			if err != nil {
				return fmt.Errorf("seed validation failed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Seed validation passed. Found %d activities.\n", len(seed.Activities))
			return nil
		},
	}
}

func addActivity(path string, activity registry.Activity) error {
	seed, err := registry.LoadRegistry(path)
	if err != nil {
		// If file doesn't exist, start a new seed
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to load seed: %w", err)
		}
		seed = &registry.SeedFile{Version: "1.0.0"}
	}

	if seed.Find(activity.Name) >= 0 {
		return fmt.Errorf("activity %s already exists", activity.Name)
	}
	seed.Activities = append(seed.Activities, activity)

	if err := registry.Validate(seed); err != nil {
		return err
	}
	return registry.SaveRegistry(seed, path)
}

func updateActivity(path, name, field, value string) error {
	seed, err := registry.LoadRegistry(path)
	if err != nil {
		return fmt.Errorf("failed to load seed: %w", err)
	}

	i := seed.Find(name)
	if i < 0 {
		return fmt.Errorf("activity %s not found", name)
	}
	a := &seed.Activities[i]

	switch field {
	case "description":
		a.Description = value
	case "schedule":
		a.Schedule = value
	case "max_participants":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("invalid max_participants value: %q", value)
		}
		a.MaxParticipants = n
	case "add_participant":
		a.Participants = append(a.Participants, value)
	case "remove_participant":
		kept := a.Participants[:0]
		for _, p := range a.Participants {
			if p != value {
				kept = append(kept, p)
			}
		}
		if len(kept) == len(a.Participants) {
			return fmt.Errorf("%s is not signed up for %s", value, name)
		}
		a.Participants = kept
	default:
		return fmt.Errorf("unknown field: %s", field)
	}

	if err := registry.Validate(seed); err != nil {
		return err
	}
	return registry.SaveRegistry(seed, path)
}
