package handlers

import (
	"context"
	"fmt"

	"github.com/fleetform/fleetform/internal/config"
	"github.com/fleetform/fleetform/internal/provisioning"
	"github.com/fleetform/fleetform/internal/provisioning/fleet"
	"github.com/fleetform/fleetform/internal/provisioning/network"
)

// Factory function variables for plan - can be replaced in tests.
var (
	loadConfigFile = config.LoadFile
	findConfigFile = config.FindConfigFile
)

// Plan prints the ordered provisioning steps without any provider calls.
// Zone names are synthesized from the region's conventional suffixes; the
// real zones are resolved from the provider during apply.
func Plan(ctx context.Context, configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	zones := conventionalZones(cfg.Region, cfg.ZoneCount)

	merged, err := buildPlan(cfg, zones)
	if err != nil {
		return err
	}

	fmt.Printf("Plan for project %q in %s (%d zones):\n\n", cfg.Project, cfg.Region, cfg.ZoneCount)
	for i, step := range merged.Steps {
		fmt.Printf("  %2d. %-22s %s\n", i+1, step.Kind, step.Name)
		for _, in := range step.Inputs {
			fmt.Printf("      needs %s\n", in.Name)
		}
	}
	fmt.Printf("\n%d steps. Run 'fleetform apply' to provision.\n", len(merged.Steps))
	return nil
}

// loadConfig loads and validates the fleet configuration. If configPath is
// empty, it looks for fleetform.yaml in the current directory.
func loadConfig(configPath string) (*config.Config, error) {
	if configPath == "" {
		path, err := findConfigFile()
		if err != nil {
			return nil, fmt.Errorf("no config file found: %w\nRun 'fleetform init' to create one", err)
		}
		configPath = path
	}
	cfg, err := loadConfigFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// buildPlan assembles the network and fleet plans in dependency order.
func buildPlan(cfg *config.Config, zones []string) (provisioning.Plan, error) {
	networkPlan, err := network.BuildPlan(cfg, zones)
	if err != nil {
		return provisioning.Plan{}, err
	}
	fleetPlan := fleet.BuildPlan(cfg, zones)

	merged, err := provisioning.Merge(networkPlan, fleetPlan)
	if err != nil {
		return provisioning.Plan{}, fmt.Errorf("assembling plan: %w", err)
	}
	if err := merged.Validate(); err != nil {
		return provisioning.Plan{}, fmt.Errorf("invalid plan: %w", err)
	}
	return merged, nil
}

// conventionalZones synthesizes zone names like us-east-1a, us-east-1b.
func conventionalZones(region string, n int) []string {
	letters := "abcdef"
	zones := make([]string, 0, n)
	for i := 0; i < n && i < len(letters); i++ {
		zones = append(zones, region+string(letters[i]))
	}
	return zones
}
