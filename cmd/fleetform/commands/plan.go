package commands

import (
	"github.com/spf13/cobra"

	"github.com/fleetform/fleetform/cmd/fleetform/handlers"
)

// Plan returns the command that prints the ordered provisioning steps
// without touching the provider.
//
// Optional flags:
//
//	--config, -c: Path to fleet configuration YAML file (default: auto-detect fleetform.yaml)
func Plan() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show the provisioning steps without creating anything",
		Long: `Show the ordered provisioning steps for the configured fleet.

The plan is computed entirely offline: no credentials are needed and no
provider calls are made. Zone names shown are the region's conventional
names; the actual zones are resolved from the provider during apply.

Examples:
  # Plan using fleetform.yaml in the current directory
  fleetform plan

  # Plan a specific configuration
  fleetform plan -c production.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Plan(cmd.Context(), configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: fleetform.yaml)")

	return cmd
}
