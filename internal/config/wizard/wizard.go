// Package wizard implements the interactive configuration wizard behind
// the init command.
package wizard

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/fleetform/fleetform/internal/config"
)

// Result holds the user's choices from the wizard.
type Result struct {
	Project      string
	Region       string
	ZoneCount    int
	ImageID      string
	InstanceType string
	Desired      int
	Placement    config.Placement
}

// Run walks the user through the essential fleet choices. Everything not
// asked here falls back to the config defaults.
func Run(ctx context.Context) (*Result, error) {
	result := &Result{
		Region:       "us-east-1",
		ZoneCount:    2,
		InstanceType: "t3.medium",
		Desired:      1,
		Placement:    config.PlacementPrivate,
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Project name").
				Description("Prefixes every resource name (lowercase, DNS-safe)").
				Placeholder("my-fleet").
				Value(&result.Project).
				Validate(validateProjectName),
		),

		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Region").
				Description("AWS region for all resources").
				Options(
					huh.NewOption("N. Virginia (us-east-1)", "us-east-1"),
					huh.NewOption("Oregon (us-west-2)", "us-west-2"),
					huh.NewOption("Ireland (eu-west-1)", "eu-west-1"),
					huh.NewOption("Frankfurt (eu-central-1)", "eu-central-1"),
					huh.NewOption("Singapore (ap-southeast-1)", "ap-southeast-1"),
				).
				Value(&result.Region),

			huh.NewSelect[int]().
				Title("Availability zones").
				Description("Subnets and instances spread over this many zones").
				Options(
					huh.NewOption("2 zones", 2),
					huh.NewOption("3 zones", 3),
				).
				Value(&result.ZoneCount),
		),

		huh.NewGroup(
			huh.NewInput().
				Title("Machine image ID").
				Description("AMI the instances boot from (region specific)").
				Placeholder("ami-0123456789abcdef0").
				Value(&result.ImageID).
				Validate(validateImageID),

			huh.NewSelect[string]().
				Title("Instance type").
				Options(
					huh.NewOption("t3.micro - 2 vCPU, 1GB RAM", "t3.micro"),
					huh.NewOption("t3.small - 2 vCPU, 2GB RAM", "t3.small"),
					huh.NewOption("t3.medium - 2 vCPU, 4GB RAM", "t3.medium"),
					huh.NewOption("t3.large - 2 vCPU, 8GB RAM", "t3.large"),
					huh.NewOption("m5.large - 2 vCPU, 8GB RAM", "m5.large"),
				).
				Value(&result.InstanceType),

			huh.NewSelect[int]().
				Title("Desired capacity").
				Description("Instances the scaling group keeps running").
				Options(
					huh.NewOption("1 instance", 1),
					huh.NewOption("2 instances", 2),
					huh.NewOption("3 instances", 3),
					huh.NewOption("4 instances", 4),
				).
				Value(&result.Desired),
		),

		huh.NewGroup(
			huh.NewSelect[config.Placement]().
				Title("Instance placement").
				Description("private: instances reach out via NAT | public: instances get public addresses").
				Options(
					huh.NewOption("Private subnets (recommended)", config.PlacementPrivate),
					huh.NewOption("Public subnets", config.PlacementPublic),
				).
				Value(&result.Placement),
		),
	)

	if err := form.RunWithContext(ctx); err != nil {
		return nil, fmt.Errorf("wizard canceled: %w", err)
	}
	return result, nil
}

// ToConfig converts the wizard result to a Config with defaults applied.
func (r *Result) ToConfig() *config.Config {
	cfg := &config.Config{
		Project:   r.Project,
		Region:    r.Region,
		ZoneCount: r.ZoneCount,
		Fleet: config.FleetConfig{
			ImageID:         r.ImageID,
			InstanceType:    r.InstanceType,
			DesiredCapacity: r.Desired,
			MinSize:         1,
			MaxSize:         r.Desired + 1,
			Placement:       r.Placement,
		},
	}
	cfg.ApplyDefaults()
	return cfg
}

func validateProjectName(s string) error {
	if s == "" {
		return fmt.Errorf("project name is required")
	}
	if len(s) > 32 {
		return fmt.Errorf("project name must be 32 characters or less")
	}
	for _, c := range s {
		if !((c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') || c == '-') {
			return fmt.Errorf("project name can only contain lowercase letters, numbers, and hyphens")
		}
	}
	if s[0] == '-' || s[len(s)-1] == '-' {
		return fmt.Errorf("project name cannot start or end with a hyphen")
	}
	return nil
}

func validateImageID(s string) error {
	if s == "" {
		return fmt.Errorf("image ID is required")
	}
	if !strings.HasPrefix(s, "ami-") {
		return fmt.Errorf("image ID must start with ami-")
	}
	return nil
}
