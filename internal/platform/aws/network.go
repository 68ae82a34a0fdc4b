package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/fleetform/fleetform/internal/provisioning"
)

// nameTags builds a create-time Name tag specification so every resource
// is findable by its logical name later.
func nameTags(resourceType ec2types.ResourceType, name string) []ec2types.TagSpecification {
	return []ec2types.TagSpecification{{
		ResourceType: resourceType,
		Tags: []ec2types.Tag{
			{Key: aws.String("Name"), Value: aws.String(name)},
			{Key: aws.String("ManagedBy"), Value: aws.String("fleetform")},
		},
	}}
}

func filter(name string, values ...string) ec2types.Filter {
	return ec2types.Filter{Name: aws.String(name), Values: values}
}

func (d *Driver) createVPC(ctx context.Context, name string, params map[string]string) (string, error) {
	out, err := d.ec2.CreateVpc(ctx, &ec2.CreateVpcInput{
		CidrBlock:         aws.String(params["cidr"]),
		TagSpecifications: nameTags(ec2types.ResourceTypeVpc, name),
	})
	if err != nil {
		return "", err
	}
	return aws.ToString(out.Vpc.VpcId), nil
}

// lookupVPC finds a VPC by Name tag, falling back to the first non-default
// VPC of the account. The fallback exists for the VpcLimitExceeded reuse
// path: an account at its VPC limit usually has the project's network
// already, but possibly under a different tag from an older tool.
func (d *Driver) lookupVPC(ctx context.Context, name string) (string, error) {
	byName, err := d.ec2.DescribeVpcs(ctx, &ec2.DescribeVpcsInput{
		Filters: []ec2types.Filter{filter("tag:Name", name)},
	})
	if err != nil {
		return "", err
	}
	if len(byName.Vpcs) > 0 {
		return aws.ToString(byName.Vpcs[0].VpcId), nil
	}

	nonDefault, err := d.ec2.DescribeVpcs(ctx, &ec2.DescribeVpcsInput{
		Filters: []ec2types.Filter{filter("isDefault", "false")},
	})
	if err != nil {
		return "", err
	}
	if len(nonDefault.Vpcs) == 0 {
		return "", fmt.Errorf("no reusable virtual network: %w", provisioning.ErrNotFound)
	}
	return aws.ToString(nonDefault.Vpcs[0].VpcId), nil
}

func (d *Driver) vpcReady(ctx context.Context, id string) (bool, error) {
	out, err := d.ec2.DescribeVpcs(ctx, &ec2.DescribeVpcsInput{VpcIds: []string{id}})
	if err != nil {
		return false, nil // transient describe failure, keep polling
	}
	if len(out.Vpcs) == 0 {
		return false, nil
	}
	return out.Vpcs[0].State == ec2types.VpcStateAvailable, nil
}

// createInternetGateway creates and attaches the gateway in one step. When
// the VPC already has a gateway the attach call fails with
// Resource.AlreadyAssociated; the fresh gateway is deleted again so the
// reuse lookup adopts the attached one.
func (d *Driver) createInternetGateway(ctx context.Context, name string, params map[string]string) (string, error) {
	out, err := d.ec2.CreateInternetGateway(ctx, &ec2.CreateInternetGatewayInput{
		TagSpecifications: nameTags(ec2types.ResourceTypeInternetGateway, name),
	})
	if err != nil {
		return "", err
	}
	igwID := aws.ToString(out.InternetGateway.InternetGatewayId)

	_, err = d.ec2.AttachInternetGateway(ctx, &ec2.AttachInternetGatewayInput{
		InternetGatewayId: aws.String(igwID),
		VpcId:             aws.String(params["vpc_id"]),
	})
	if err != nil {
		// Best-effort cleanup of the unattached gateway.
		_, _ = d.ec2.DeleteInternetGateway(ctx, &ec2.DeleteInternetGatewayInput{
			InternetGatewayId: aws.String(igwID),
		})
		return "", err
	}
	return igwID, nil
}

func (d *Driver) lookupInternetGateway(ctx context.Context, name string, params map[string]string) (string, error) {
	filters := []ec2types.Filter{filter("attachment.vpc-id", params["vpc_id"])}
	if params["vpc_id"] == "" {
		filters = []ec2types.Filter{filter("tag:Name", name)}
	}
	out, err := d.ec2.DescribeInternetGateways(ctx, &ec2.DescribeInternetGatewaysInput{Filters: filters})
	if err != nil {
		return "", err
	}
	if len(out.InternetGateways) == 0 {
		return "", fmt.Errorf("no gateway attached to %s: %w", params["vpc_id"], provisioning.ErrNotFound)
	}
	return aws.ToString(out.InternetGateways[0].InternetGatewayId), nil
}

func (d *Driver) createSubnet(ctx context.Context, name string, params map[string]string) (string, error) {
	out, err := d.ec2.CreateSubnet(ctx, &ec2.CreateSubnetInput{
		VpcId:             aws.String(params["vpc_id"]),
		CidrBlock:         aws.String(params["cidr"]),
		AvailabilityZone:  aws.String(params["zone"]),
		TagSpecifications: nameTags(ec2types.ResourceTypeSubnet, name),
	})
	if err != nil {
		return "", err
	}
	subnetID := aws.ToString(out.Subnet.SubnetId)

	// Public subnets hand out public addresses at launch.
	if params["public"] == "true" {
		_, err = d.ec2.ModifySubnetAttribute(ctx, &ec2.ModifySubnetAttributeInput{
			SubnetId:            aws.String(subnetID),
			MapPublicIpOnLaunch: &ec2types.AttributeBooleanValue{Value: aws.Bool(true)},
		})
		if err != nil {
			return "", fmt.Errorf("enabling public addressing on subnet %s: %w", subnetID, err)
		}
	}
	return subnetID, nil
}

func (d *Driver) lookupSubnet(ctx context.Context, name string, params map[string]string) (string, error) {
	out, err := d.ec2.DescribeSubnets(ctx, &ec2.DescribeSubnetsInput{
		Filters: []ec2types.Filter{
			filter("vpc-id", params["vpc_id"]),
			filter("tag:Name", name),
		},
	})
	if err != nil {
		return "", err
	}
	if len(out.Subnets) == 0 {
		return "", fmt.Errorf("no subnet named %q: %w", name, provisioning.ErrNotFound)
	}
	return aws.ToString(out.Subnets[0].SubnetId), nil
}

// createRouteTable creates the table and immediately installs its default
// route, pointing at the internet gateway or the NAT gateway depending on
// which input the spec carried.
func (d *Driver) createRouteTable(ctx context.Context, name string, params map[string]string) (string, error) {
	out, err := d.ec2.CreateRouteTable(ctx, &ec2.CreateRouteTableInput{
		VpcId:             aws.String(params["vpc_id"]),
		TagSpecifications: nameTags(ec2types.ResourceTypeRouteTable, name),
	})
	if err != nil {
		return "", err
	}
	rtID := aws.ToString(out.RouteTable.RouteTableId)

	route := &ec2.CreateRouteInput{
		RouteTableId:         aws.String(rtID),
		DestinationCidrBlock: aws.String(params["destination"]),
	}
	switch {
	case params["gateway_id"] != "":
		route.GatewayId = aws.String(params["gateway_id"])
	case params["nat_gateway_id"] != "":
		route.NatGatewayId = aws.String(params["nat_gateway_id"])
	default:
		return "", fmt.Errorf("route table %q has neither gateway_id nor nat_gateway_id", name)
	}
	if _, err := d.ec2.CreateRoute(ctx, route); err != nil {
		return "", fmt.Errorf("installing default route on %s: %w", rtID, err)
	}
	return rtID, nil
}

func (d *Driver) lookupRouteTable(ctx context.Context, name string, params map[string]string) (string, error) {
	out, err := d.ec2.DescribeRouteTables(ctx, &ec2.DescribeRouteTablesInput{
		Filters: []ec2types.Filter{
			filter("vpc-id", params["vpc_id"]),
			filter("tag:Name", name),
		},
	})
	if err != nil {
		return "", err
	}
	if len(out.RouteTables) == 0 {
		return "", fmt.Errorf("no route table named %q: %w", name, provisioning.ErrNotFound)
	}
	return aws.ToString(out.RouteTables[0].RouteTableId), nil
}

func (d *Driver) associateRouteTable(ctx context.Context, params map[string]string) (string, error) {
	out, err := d.ec2.AssociateRouteTable(ctx, &ec2.AssociateRouteTableInput{
		RouteTableId: aws.String(params["route_table_id"]),
		SubnetId:     aws.String(params["subnet_id"]),
	})
	if err != nil {
		return "", err
	}
	return aws.ToString(out.AssociationId), nil
}

func (d *Driver) lookupRouteAssociation(ctx context.Context, params map[string]string) (string, error) {
	out, err := d.ec2.DescribeRouteTables(ctx, &ec2.DescribeRouteTablesInput{
		Filters: []ec2types.Filter{filter("association.subnet-id", params["subnet_id"])},
	})
	if err != nil {
		return "", err
	}
	for _, rt := range out.RouteTables {
		for _, assoc := range rt.Associations {
			if aws.ToString(assoc.SubnetId) == params["subnet_id"] {
				return aws.ToString(assoc.RouteTableAssociationId), nil
			}
		}
	}
	return "", fmt.Errorf("subnet %s has no route table association: %w", params["subnet_id"], provisioning.ErrNotFound)
}

// createNATGateway allocates an elastic IP and creates the NAT gateway in
// the given public subnet. The gateway is asynchronous; the engine waits
// for it before routing private subnets through it.
func (d *Driver) createNATGateway(ctx context.Context, name string, params map[string]string) (string, error) {
	eip, err := d.ec2.AllocateAddress(ctx, &ec2.AllocateAddressInput{
		Domain:            ec2types.DomainTypeVpc,
		TagSpecifications: nameTags(ec2types.ResourceTypeElasticIp, name+"-eip"),
	})
	if err != nil {
		return "", err
	}

	out, err := d.ec2.CreateNatGateway(ctx, &ec2.CreateNatGatewayInput{
		SubnetId:          aws.String(params["subnet_id"]),
		AllocationId:      eip.AllocationId,
		TagSpecifications: nameTags(ec2types.ResourceTypeNatgateway, name),
	})
	if err != nil {
		return "", err
	}
	return aws.ToString(out.NatGateway.NatGatewayId), nil
}

func (d *Driver) lookupNATGateway(ctx context.Context, name string) (string, error) {
	out, err := d.ec2.DescribeNatGateways(ctx, &ec2.DescribeNatGatewaysInput{
		Filter: []ec2types.Filter{
			filter("tag:Name", name),
			filter("state", "pending", "available"),
		},
	})
	if err != nil {
		return "", err
	}
	if len(out.NatGateways) == 0 {
		return "", fmt.Errorf("no NAT gateway named %q: %w", name, provisioning.ErrNotFound)
	}
	return aws.ToString(out.NatGateways[0].NatGatewayId), nil
}

func (d *Driver) natGatewayReady(ctx context.Context, id string) (bool, error) {
	out, err := d.ec2.DescribeNatGateways(ctx, &ec2.DescribeNatGatewaysInput{
		NatGatewayIds: []string{id},
	})
	if err != nil {
		return false, nil // transient describe failure, keep polling
	}
	if len(out.NatGateways) == 0 {
		return false, nil
	}
	switch out.NatGateways[0].State {
	case ec2types.NatGatewayStateAvailable:
		return true, nil
	case ec2types.NatGatewayStatePending:
		return false, nil
	default:
		return false, fmt.Errorf("NAT gateway %s entered terminal state %q: %s",
			id, out.NatGateways[0].State, aws.ToString(out.NatGateways[0].FailureMessage))
	}
}
