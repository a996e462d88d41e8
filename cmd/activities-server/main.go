// cmd/activities-server/main.go
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mergington-activities/internal/common/config"
)

var configPath string

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "activities-server",
		Short:        "Mergington High School extracurricular activities API",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default: configs/config.yaml)")

	root.AddCommand(newServeCmd(), newValidateSeedCmd())
	return root
}

func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadFromFile(configPath)
	}
	return config.Load()
}
