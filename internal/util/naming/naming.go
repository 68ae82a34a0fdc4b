// Package naming derives the logical names of all provisioned resources
// from the project name. Every name is deterministic so a re-run of the
// same project resolves to the same provider-side resources, which is what
// makes name-keyed reuse work.
package naming

import "fmt"

// VPC returns the logical name of the project's virtual network.
func VPC(project string) string {
	return fmt.Sprintf("%s-vpc", project)
}

// InternetGateway returns the logical name of the internet gateway.
func InternetGateway(project string) string {
	return fmt.Sprintf("%s-igw", project)
}

// PublicRouteTable returns the logical name of the route table serving the
// public subnets.
func PublicRouteTable(project string) string {
	return fmt.Sprintf("%s-public-rt", project)
}

// PrivateRouteTable returns the logical name of the route table serving the
// private subnets.
func PrivateRouteTable(project string) string {
	return fmt.Sprintf("%s-private-rt", project)
}

// PublicSubnet returns the logical name of the public subnet in a zone.
func PublicSubnet(project, zone string) string {
	return fmt.Sprintf("%s-pub-%s", project, zone)
}

// PrivateSubnet returns the logical name of the private subnet in a zone.
func PrivateSubnet(project, zone string) string {
	return fmt.Sprintf("%s-priv-%s", project, zone)
}

// RouteAssociation returns the logical name of a subnet's route table
// association.
func RouteAssociation(subnetName string) string {
	return fmt.Sprintf("%s-assoc", subnetName)
}

// NATGateway returns the logical name of the NAT gateway.
func NATGateway(project string) string {
	return fmt.Sprintf("%s-nat", project)
}

// LoadBalancerSecurityGroup returns the logical name of the security group
// attached to the load balancer.
func LoadBalancerSecurityGroup(project string) string {
	return fmt.Sprintf("%s-alb-sg", project)
}

// ComputeSecurityGroup returns the logical name of the security group
// attached to the fleet's instances.
func ComputeSecurityGroup(project string) string {
	return fmt.Sprintf("%s-ec2-sg", project)
}

// KeyPair returns the logical name of the fleet's SSH key pair.
func KeyPair(project string) string {
	return fmt.Sprintf("%s-key", project)
}

// LaunchTemplate returns the logical name of the launch template.
func LaunchTemplate(project string) string {
	return fmt.Sprintf("%s-lt", project)
}

// LoadBalancer returns the logical name of the application load balancer.
func LoadBalancer(project string) string {
	return fmt.Sprintf("%s-alb", project)
}

// TargetGroup returns the logical name of the target group.
func TargetGroup(project string) string {
	return fmt.Sprintf("%s-tg", project)
}

// Listener returns the logical name of the load balancer listener.
func Listener(project string) string {
	return fmt.Sprintf("%s-listener", project)
}

// ScalingGroup returns the logical name of the auto scaling group.
func ScalingGroup(project string) string {
	return fmt.Sprintf("%s-asg", project)
}

// Instance returns the Name tag propagated to instances the scaling group
// launches.
func Instance(project string) string {
	return fmt.Sprintf("%s-instance", project)
}
