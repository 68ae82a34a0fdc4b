package commands

import (
	"github.com/spf13/cobra"

	"github.com/fleetform/fleetform/cmd/fleetform/handlers"
)

// Apply returns the command for provisioning the fleet.
//
// Optional flags:
//
//	--config, -c: Path to fleet configuration YAML file (default: auto-detect fleetform.yaml)
//
// Environment variables:
//
//	AWS credentials come from the default chain (env, shared config, IAM role).
//	FLEETFORM_TIMEOUT_READINESS and FLEETFORM_POLL_INTERVAL tune the waiters.
func Apply() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Create or adopt the fleet's resources",
		Long: `Create or adopt everything the configured fleet needs.

This command provisions the network (VPC, subnets, routing, NAT), the
edge (load balancer, target group, listener) and the fleet (launch
template, auto scaling group) in dependency order. Resources that
already exist under their expected names are adopted instead of
recreated, so re-running apply after a partial failure picks up where
it left off.

If no config file is specified, it looks for fleetform.yaml in the
current directory. Use 'fleetform init' to create one.

Examples:
  # Provision using fleetform.yaml in the current directory
  fleetform apply

  # Provision a specific configuration
  fleetform apply -c production.yaml

  # Re-apply after a partial failure
  fleetform apply`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Apply(cmd.Context(), configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: fleetform.yaml)")

	return cmd
}
