// Package network builds the provisioning plan for the network layer:
// virtual network, internet gateway, public/private subnets across
// availability zones, NAT gateway and route tables.
package network

import (
	"context"
	"fmt"

	"github.com/fleetform/fleetform/internal/config"
	"github.com/fleetform/fleetform/internal/provisioning"
	"github.com/fleetform/fleetform/internal/util/naming"
)

// ZoneLister is the slice of the cloud driver the builder needs.
type ZoneLister interface {
	Zones(ctx context.Context) ([]string, error)
}

// SelectZones asks the provider for the region's availability zones and
// deterministically picks the first n distinct ones. Fewer than n zones is
// a fatal precondition, not a retryable fault.
func SelectZones(ctx context.Context, lister ZoneLister, region string, n int) ([]string, error) {
	zones, err := lister.Zones(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing availability zones: %w", err)
	}

	seen := make(map[string]bool, len(zones))
	distinct := make([]string, 0, len(zones))
	for _, z := range zones {
		if !seen[z] {
			seen[z] = true
			distinct = append(distinct, z)
		}
	}

	if len(distinct) < n {
		return nil, &provisioning.InsufficientZonesError{Region: region, Need: n, Have: len(distinct)}
	}
	return distinct[:n], nil
}

// BuildPlan produces the ordered network-layer plan for the given zones:
// virtual network, then gateway, then the public route table, then per-zone
// subnet pairs with public route associations, then the NAT gateway in the
// first public subnet, then the private route table and its associations.
//
// CIDR assignment is positional: zone i takes the i-th public and private
// CIDR from the configuration.
func BuildPlan(cfg *config.Config, zones []string) (provisioning.Plan, error) {
	if len(cfg.Network.PublicSubnetCIDRs) < len(zones) || len(cfg.Network.PrivateSubnetCIDRs) < len(zones) {
		return provisioning.Plan{}, fmt.Errorf("need %d public and private subnet CIDRs, have %d and %d",
			len(zones), len(cfg.Network.PublicSubnetCIDRs), len(cfg.Network.PrivateSubnetCIDRs))
	}

	project := cfg.Project
	vpc := naming.VPC(project)
	igw := naming.InternetGateway(project)
	publicRT := naming.PublicRouteTable(project)
	privateRT := naming.PrivateRouteTable(project)
	nat := naming.NATGateway(project)

	var plan provisioning.Plan
	add := func(spec provisioning.ResourceSpec) {
		plan.Steps = append(plan.Steps, spec)
	}

	add(provisioning.ResourceSpec{
		Name:       vpc,
		Kind:       provisioning.KindVirtualNetwork,
		Parameters: map[string]string{"cidr": cfg.Network.VPCCIDR},
	})

	add(provisioning.ResourceSpec{
		Name:   igw,
		Kind:   provisioning.KindGateway,
		Inputs: []provisioning.Input{{Name: vpc, As: "vpc_id"}},
	})

	add(provisioning.ResourceSpec{
		Name:       publicRT,
		Kind:       provisioning.KindRouteTable,
		Parameters: map[string]string{"destination": "0.0.0.0/0"},
		Inputs: []provisioning.Input{
			{Name: vpc, As: "vpc_id"},
			{Name: igw, As: "gateway_id"},
		},
	})

	var publicSubnets, privateSubnets []string
	for i, zone := range zones {
		pub := naming.PublicSubnet(project, zone)
		priv := naming.PrivateSubnet(project, zone)
		publicSubnets = append(publicSubnets, pub)
		privateSubnets = append(privateSubnets, priv)

		add(provisioning.ResourceSpec{
			Name: pub,
			Kind: provisioning.KindSubnet,
			Parameters: map[string]string{
				"cidr":   cfg.Network.PublicSubnetCIDRs[i],
				"zone":   zone,
				"public": "true",
			},
			Inputs: []provisioning.Input{{Name: vpc, As: "vpc_id"}},
		})
		add(provisioning.ResourceSpec{
			Name: priv,
			Kind: provisioning.KindSubnet,
			Parameters: map[string]string{
				"cidr":   cfg.Network.PrivateSubnetCIDRs[i],
				"zone":   zone,
				"public": "false",
			},
			Inputs: []provisioning.Input{{Name: vpc, As: "vpc_id"}},
		})
		add(provisioning.ResourceSpec{
			Name: naming.RouteAssociation(pub),
			Kind: provisioning.KindRouteAssociation,
			Inputs: []provisioning.Input{
				{Name: publicRT, As: "route_table_id"},
				{Name: pub, As: "subnet_id"},
			},
		})
	}

	// NAT lives in the first public subnet and carries outbound traffic
	// for every private subnet.
	add(provisioning.ResourceSpec{
		Name:   nat,
		Kind:   provisioning.KindAddressTranslator,
		Inputs: []provisioning.Input{{Name: publicSubnets[0], As: "subnet_id"}},
	})

	add(provisioning.ResourceSpec{
		Name:       privateRT,
		Kind:       provisioning.KindRouteTable,
		Parameters: map[string]string{"destination": "0.0.0.0/0"},
		Inputs: []provisioning.Input{
			{Name: vpc, As: "vpc_id"},
			{Name: nat, As: "nat_gateway_id"},
		},
	})

	for _, priv := range privateSubnets {
		add(provisioning.ResourceSpec{
			Name: naming.RouteAssociation(priv),
			Kind: provisioning.KindRouteAssociation,
			Inputs: []provisioning.Input{
				{Name: privateRT, As: "route_table_id"},
				{Name: priv, As: "subnet_id"},
			},
		})
	}

	return plan, nil
}

// PublicSubnetNames returns the logical names of the public subnets the
// plan creates for the given zones, in zone order.
func PublicSubnetNames(project string, zones []string) []string {
	names := make([]string, 0, len(zones))
	for _, zone := range zones {
		names = append(names, naming.PublicSubnet(project, zone))
	}
	return names
}

// PrivateSubnetNames returns the logical names of the private subnets the
// plan creates for the given zones, in zone order.
func PrivateSubnetNames(project string, zones []string) []string {
	names := make([]string, 0, len(zones))
	for _, zone := range zones {
		names = append(names, naming.PrivateSubnet(project, zone))
	}
	return names
}
