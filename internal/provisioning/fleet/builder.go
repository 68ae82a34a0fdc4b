// Package fleet builds the provisioning plan for the compute layer:
// security groups, key pair, launch template, load balancer, target group,
// listener and the auto-scaling group. It consumes the logical names the
// network plan binds, so its plan is only valid merged after the network
// plan.
package fleet

import (
	"strconv"

	"github.com/fleetform/fleetform/internal/config"
	"github.com/fleetform/fleetform/internal/provisioning"
	"github.com/fleetform/fleetform/internal/provisioning/network"
	"github.com/fleetform/fleetform/internal/util/naming"
)

// BuildPlan produces the ordered compute-layer plan. zones must be the
// same selection the network plan was built with.
func BuildPlan(cfg *config.Config, zones []string) provisioning.Plan {
	project := cfg.Project
	vpc := naming.VPC(project)
	lbSG := naming.LoadBalancerSecurityGroup(project)
	computeSG := naming.ComputeSecurityGroup(project)
	keyPair := naming.KeyPair(project)
	template := naming.LaunchTemplate(project)
	lb := naming.LoadBalancer(project)
	targetGroup := naming.TargetGroup(project)
	listener := naming.Listener(project)
	scalingGroup := naming.ScalingGroup(project)

	port := strconv.Itoa(cfg.Fleet.ListenerPort)
	publicSubnets := network.PublicSubnetNames(project, zones)
	privateSubnets := network.PrivateSubnetNames(project, zones)

	var plan provisioning.Plan
	add := func(spec provisioning.ResourceSpec) {
		plan.Steps = append(plan.Steps, spec)
	}

	add(provisioning.ResourceSpec{
		Name: lbSG,
		Kind: provisioning.KindSecurityGroup,
		Parameters: map[string]string{
			"description": "load balancer security group",
			"rule.0":      "tcp:" + port + ":cidr:0.0.0.0/0",
		},
		Inputs: []provisioning.Input{{Name: vpc, As: "vpc_id"}},
	})

	// The fleet's HTTP ingress references the load balancer's security
	// group, never an open CIDR: only traffic that traversed the load
	// balancer reaches the instances. SSH stays CIDR-scoped.
	add(provisioning.ResourceSpec{
		Name: computeSG,
		Kind: provisioning.KindSecurityGroup,
		Parameters: map[string]string{
			"description": "compute fleet security group",
			"rule.0":      "tcp:" + port + ":sgref:lb_security_group_id",
			"rule.1":      "tcp:22:cidr:" + cfg.Fleet.SSHIngressCIDR,
		},
		Inputs: []provisioning.Input{
			{Name: vpc, As: "vpc_id"},
			{Name: lbSG, As: "lb_security_group_id"},
		},
	})

	add(provisioning.ResourceSpec{
		Name:       keyPair,
		Kind:       provisioning.KindKeyPair,
		Parameters: map[string]string{"material_path": keyPair + ".pem"},
	})

	add(provisioning.ResourceSpec{
		Name: template,
		Kind: provisioning.KindLaunchTemplate,
		Parameters: map[string]string{
			"image_id":            cfg.Fleet.ImageID,
			"instance_type":       cfg.Fleet.InstanceType,
			"user_data":           cfg.Fleet.BootScript,
			"version_description": "v1",
		},
		Inputs: []provisioning.Input{
			{Name: computeSG, As: "security_group_id"},
			{Name: keyPair, As: "key_name"},
		},
	})

	lbInputs := []provisioning.Input{}
	for _, sub := range publicSubnets {
		lbInputs = append(lbInputs, provisioning.Input{Name: sub, As: "subnet_ids"})
	}
	lbInputs = append(lbInputs, provisioning.Input{Name: lbSG, As: "security_group_id"})
	add(provisioning.ResourceSpec{
		Name: lb,
		Kind: provisioning.KindLoadBalancer,
		Parameters: map[string]string{
			"scheme":          "internet-facing",
			"type":            "application",
			"ip_address_type": "ipv4",
		},
		Inputs: lbInputs,
	})

	add(provisioning.ResourceSpec{
		Name: targetGroup,
		Kind: provisioning.KindTargetGroup,
		Parameters: map[string]string{
			"protocol":              "HTTP",
			"port":                  port,
			"target_type":           "instance",
			"health_check_path":     cfg.Fleet.HealthCheckPath,
			"health_check_interval": strconv.Itoa(cfg.Fleet.HealthCheckIntervalSeconds),
			"health_check_matcher":  "200",
		},
		Inputs: []provisioning.Input{{Name: vpc, As: "vpc_id"}},
	})

	add(provisioning.ResourceSpec{
		Name: listener,
		Kind: provisioning.KindListener,
		Parameters: map[string]string{
			"protocol": "HTTP",
			"port":     port,
		},
		Inputs: []provisioning.Input{
			{Name: lb, As: "load_balancer_arn"},
			{Name: targetGroup, As: "target_group_arn"},
		},
	})

	fleetSubnets := privateSubnets
	if cfg.Fleet.Placement == config.PlacementPublic {
		fleetSubnets = publicSubnets
	}
	asgInputs := []provisioning.Input{
		{Name: template, As: "launch_template_id"},
		{Name: targetGroup, As: "target_group_arn"},
	}
	for _, sub := range fleetSubnets {
		asgInputs = append(asgInputs, provisioning.Input{Name: sub, As: "subnet_ids"})
	}
	add(provisioning.ResourceSpec{
		Name: scalingGroup,
		Kind: provisioning.KindScalingGroup,
		Parameters: map[string]string{
			"min_size":          strconv.Itoa(cfg.Fleet.MinSize),
			"max_size":          strconv.Itoa(cfg.Fleet.MaxSize),
			"desired_capacity":  strconv.Itoa(cfg.Fleet.DesiredCapacity),
			"instance_tag_name": naming.Instance(project),
		},
		Inputs: asgInputs,
	})

	return plan
}
