package commands

import (
	"github.com/spf13/cobra"

	"github.com/fleetform/fleetform/cmd/fleetform/handlers"
)

// Init returns the command for interactively creating a fleet configuration.
//
// Flags:
//
//	--output, -o: Path to output file (default "fleetform.yaml")
//	--defaults:   Skip the wizard and write the default configuration
func Init() *cobra.Command {
	var outputPath string
	var useDefaults bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Interactively create a fleet configuration",
		Long: `Interactively create a fleet configuration file.

This command guides you through configuring your fleet step by step.
It will ask about:

  - Project name and region
  - Availability zone spread
  - Machine image and instance type
  - Fleet capacity
  - Instance placement (private subnets behind NAT, or public)

Everything not asked gets a sensible default and can be edited in the
generated YAML afterwards. In a non-interactive session the wizard is
skipped and a default configuration is written instead.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Init(cmd.Context(), outputPath, useDefaults)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "fleetform.yaml", "Output file path")
	cmd.Flags().BoolVar(&useDefaults, "defaults", false, "Skip the wizard and write the default configuration")

	return cmd
}
