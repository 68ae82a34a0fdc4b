package config

import (
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the config file name looked up in the working
// directory when none is given on the command line.
const DefaultConfigFile = "fleetform.yaml"

// defaultBootScript installs a web server answering the target group's
// health check on /. Used when the config supplies no boot script.
const defaultBootScript = `#!/bin/bash
yum update -y
yum install -y httpd
systemctl enable httpd
systemctl start httpd
echo "<h1>Healthy from $(hostname)</h1>" > /var/www/html/index.html
`

// LoadFile reads and parses the configuration from a YAML file, applies
// defaults and validates the result.
func LoadFile(path string) (*Config, error) {
	// #nosec G304
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var rawConfig map[string]interface{}
	if err := yaml.Unmarshal(data, &rawConfig); err != nil {
		return nil, fmt.Errorf("failed to unmarshal yaml: %w", err)
	}

	var cfg Config
	if err := mapstructure.Decode(rawConfig, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

// FindConfigFile returns the default config file path if it exists in the
// working directory.
func FindConfigFile() (string, error) {
	if _, err := os.Stat(DefaultConfigFile); err != nil {
		return "", fmt.Errorf("%s not found in current directory", DefaultConfigFile)
	}
	return DefaultConfigFile, nil
}

// ApplyDefaults fills zero-valued fields with the stock layout: two zones,
// a /16 network with one public and one private /24 per zone, a small
// fleet behind an HTTP listener on port 80.
func (c *Config) ApplyDefaults() {
	if c.ZoneCount == 0 {
		c.ZoneCount = 2
	}
	if c.Network.VPCCIDR == "" {
		c.Network.VPCCIDR = "10.201.0.0/16"
	}
	if len(c.Network.PublicSubnetCIDRs) == 0 {
		for i := 0; i < c.ZoneCount; i++ {
			c.Network.PublicSubnetCIDRs = append(c.Network.PublicSubnetCIDRs, fmt.Sprintf("10.201.%d.0/24", i+1))
		}
	}
	if len(c.Network.PrivateSubnetCIDRs) == 0 {
		for i := 0; i < c.ZoneCount; i++ {
			c.Network.PrivateSubnetCIDRs = append(c.Network.PrivateSubnetCIDRs, fmt.Sprintf("10.201.%d.0/24", i+101))
		}
	}
	if c.Fleet.InstanceType == "" {
		c.Fleet.InstanceType = "t3.medium"
	}
	if c.Fleet.MaxSize == 0 {
		c.Fleet.MaxSize = 2
	}
	if c.Fleet.MinSize == 0 {
		c.Fleet.MinSize = 1
	}
	if c.Fleet.DesiredCapacity == 0 {
		c.Fleet.DesiredCapacity = c.Fleet.MinSize
	}
	if c.Fleet.ListenerPort == 0 {
		c.Fleet.ListenerPort = 80
	}
	if c.Fleet.HealthCheckPath == "" {
		c.Fleet.HealthCheckPath = "/"
	}
	if c.Fleet.HealthCheckIntervalSeconds == 0 {
		c.Fleet.HealthCheckIntervalSeconds = 15
	}
	if c.Fleet.Placement == "" {
		c.Fleet.Placement = PlacementPrivate
	}
	if c.Fleet.BootScript == "" {
		c.Fleet.BootScript = defaultBootScript
	}
	if c.Fleet.SSHIngressCIDR == "" {
		c.Fleet.SSHIngressCIDR = "0.0.0.0/0"
	}
}

// WriteYAML marshals the config and writes it to path.
func WriteYAML(cfg *Config, path string) error {
	out := map[string]interface{}{
		"project":    cfg.Project,
		"region":     cfg.Region,
		"zone_count": cfg.ZoneCount,
		"network": map[string]interface{}{
			"vpc_cidr":             cfg.Network.VPCCIDR,
			"public_subnet_cidrs":  cfg.Network.PublicSubnetCIDRs,
			"private_subnet_cidrs": cfg.Network.PrivateSubnetCIDRs,
		},
		"fleet": map[string]interface{}{
			"image_id":                      cfg.Fleet.ImageID,
			"instance_type":                 cfg.Fleet.InstanceType,
			"min_size":                      cfg.Fleet.MinSize,
			"max_size":                      cfg.Fleet.MaxSize,
			"desired_capacity":              cfg.Fleet.DesiredCapacity,
			"listener_port":                 cfg.Fleet.ListenerPort,
			"health_check_path":             cfg.Fleet.HealthCheckPath,
			"health_check_interval_seconds": cfg.Fleet.HealthCheckIntervalSeconds,
			"placement":                     string(cfg.Fleet.Placement),
			"ssh_ingress_cidr":              cfg.Fleet.SSHIngressCIDR,
		},
	}

	data, err := yaml.Marshal(out)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
