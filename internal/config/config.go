// Package config defines the fleetform configuration surface: the project
// YAML file consumed by the plan builders and the environment-driven
// timeout knobs.
package config

import (
	"fmt"
	"net"
	"regexp"
)

// projectNameRegex validates project name format: 1-32 lowercase
// alphanumeric characters with inner hyphens. Project names seed every
// resource name, and ELB names reject most other characters.
var projectNameRegex = regexp.MustCompile(`^[a-z0-9](?:[a-z0-9-]{0,30}[a-z0-9])?$`)

// Placement selects which subnets the scaling group launches into.
type Placement string

const (
	// PlacementPrivate launches instances in the private subnets; they
	// reach the internet outbound through the NAT gateway only.
	PlacementPrivate Placement = "private"
	// PlacementPublic launches instances in the public subnets with
	// public addresses.
	PlacementPublic Placement = "public"
)

// Config is the root configuration for a provisioning run.
type Config struct {
	// Project is the logical project name; every resource name is
	// derived from it deterministically.
	Project string `mapstructure:"project"`

	// Region is the provider region to provision into.
	Region string `mapstructure:"region"`

	// ZoneCount is the number of availability zones to spread subnets
	// across. The first ZoneCount zones of the region are used.
	ZoneCount int `mapstructure:"zone_count"`

	Network NetworkConfig `mapstructure:"network"`
	Fleet   FleetConfig   `mapstructure:"fleet"`
}

// NetworkConfig holds the address layout of the virtual network.
type NetworkConfig struct {
	VPCCIDR            string   `mapstructure:"vpc_cidr"`
	PublicSubnetCIDRs  []string `mapstructure:"public_subnet_cidrs"`
	PrivateSubnetCIDRs []string `mapstructure:"private_subnet_cidrs"`
}

// FleetConfig sizes and shapes the load-balanced compute fleet.
type FleetConfig struct {
	ImageID         string `mapstructure:"image_id"`
	InstanceType    string `mapstructure:"instance_type"`
	MinSize         int    `mapstructure:"min_size"`
	MaxSize         int    `mapstructure:"max_size"`
	DesiredCapacity int    `mapstructure:"desired_capacity"`

	// ListenerPort is the HTTP port the load balancer listens on and
	// forwards to the fleet.
	ListenerPort int `mapstructure:"listener_port"`

	HealthCheckPath            string `mapstructure:"health_check_path"`
	HealthCheckIntervalSeconds int    `mapstructure:"health_check_interval_seconds"`

	// Placement chooses private (behind NAT) or public subnets for the
	// scaling group.
	Placement Placement `mapstructure:"placement"`

	// BootScript is the instance bootstrap script. It is base64-encoded
	// into the launch template. Empty selects the built-in web server
	// script.
	BootScript string `mapstructure:"boot_script"`

	// SSHIngressCIDR is the source range allowed to reach the fleet on
	// port 22. HTTP ingress is never CIDR-based; it always references
	// the load balancer's security group.
	SSHIngressCIDR string `mapstructure:"ssh_ingress_cidr"`
}

// Validate checks the configuration for internal consistency. It does not
// talk to the provider; zone availability is checked at plan-build time.
func (c *Config) Validate() error {
	if !projectNameRegex.MatchString(c.Project) {
		return fmt.Errorf("project name %q is invalid: 1-32 lowercase alphanumeric characters or hyphens", c.Project)
	}
	if c.Region == "" {
		return fmt.Errorf("region must be set")
	}
	if c.ZoneCount < 1 || c.ZoneCount > 6 {
		return fmt.Errorf("zone_count must be between 1 and 6, got %d", c.ZoneCount)
	}

	if _, _, err := net.ParseCIDR(c.Network.VPCCIDR); err != nil {
		return fmt.Errorf("network.vpc_cidr: %w", err)
	}
	if len(c.Network.PublicSubnetCIDRs) < c.ZoneCount {
		return fmt.Errorf("network.public_subnet_cidrs has %d entries, need at least %d (one per zone)",
			len(c.Network.PublicSubnetCIDRs), c.ZoneCount)
	}
	if len(c.Network.PrivateSubnetCIDRs) < c.ZoneCount {
		return fmt.Errorf("network.private_subnet_cidrs has %d entries, need at least %d (one per zone)",
			len(c.Network.PrivateSubnetCIDRs), c.ZoneCount)
	}
	for _, cidr := range append(append([]string{}, c.Network.PublicSubnetCIDRs...), c.Network.PrivateSubnetCIDRs...) {
		if _, _, err := net.ParseCIDR(cidr); err != nil {
			return fmt.Errorf("subnet cidr %q: %w", cidr, err)
		}
	}

	if c.Fleet.ImageID == "" {
		return fmt.Errorf("fleet.image_id must be set")
	}
	if c.Fleet.InstanceType == "" {
		return fmt.Errorf("fleet.instance_type must be set")
	}
	if c.Fleet.MinSize < 0 || c.Fleet.MaxSize < 1 {
		return fmt.Errorf("fleet sizes must be positive, got min=%d max=%d", c.Fleet.MinSize, c.Fleet.MaxSize)
	}
	if c.Fleet.MinSize > c.Fleet.MaxSize {
		return fmt.Errorf("fleet.min_size %d exceeds fleet.max_size %d", c.Fleet.MinSize, c.Fleet.MaxSize)
	}
	if c.Fleet.DesiredCapacity < c.Fleet.MinSize || c.Fleet.DesiredCapacity > c.Fleet.MaxSize {
		return fmt.Errorf("fleet.desired_capacity %d is outside [%d, %d]",
			c.Fleet.DesiredCapacity, c.Fleet.MinSize, c.Fleet.MaxSize)
	}
	if c.Fleet.ListenerPort < 1 || c.Fleet.ListenerPort > 65535 {
		return fmt.Errorf("fleet.listener_port %d is out of range", c.Fleet.ListenerPort)
	}
	if c.Fleet.Placement != PlacementPrivate && c.Fleet.Placement != PlacementPublic {
		return fmt.Errorf("fleet.placement must be %q or %q, got %q", PlacementPrivate, PlacementPublic, c.Fleet.Placement)
	}
	if _, _, err := net.ParseCIDR(c.Fleet.SSHIngressCIDR); err != nil {
		return fmt.Errorf("fleet.ssh_ingress_cidr: %w", err)
	}
	return nil
}
