package aws

import (
	"context"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/autoscaling"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	elbv2 "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2"
)

// mockEC2 is a function-field mock of EC2API. Nil fields return empty
// outputs, which reads as "nothing found" on the describe paths.
type mockEC2 struct {
	describeAvailabilityZonesFunc func(ctx context.Context, in *ec2.DescribeAvailabilityZonesInput) (*ec2.DescribeAvailabilityZonesOutput, error)

	createVpcFunc    func(ctx context.Context, in *ec2.CreateVpcInput) (*ec2.CreateVpcOutput, error)
	describeVpcsFunc func(ctx context.Context, in *ec2.DescribeVpcsInput) (*ec2.DescribeVpcsOutput, error)

	createInternetGatewayFunc    func(ctx context.Context, in *ec2.CreateInternetGatewayInput) (*ec2.CreateInternetGatewayOutput, error)
	attachInternetGatewayFunc    func(ctx context.Context, in *ec2.AttachInternetGatewayInput) (*ec2.AttachInternetGatewayOutput, error)
	deleteInternetGatewayFunc    func(ctx context.Context, in *ec2.DeleteInternetGatewayInput) (*ec2.DeleteInternetGatewayOutput, error)
	describeInternetGatewaysFunc func(ctx context.Context, in *ec2.DescribeInternetGatewaysInput) (*ec2.DescribeInternetGatewaysOutput, error)

	createSubnetFunc          func(ctx context.Context, in *ec2.CreateSubnetInput) (*ec2.CreateSubnetOutput, error)
	modifySubnetAttributeFunc func(ctx context.Context, in *ec2.ModifySubnetAttributeInput) (*ec2.ModifySubnetAttributeOutput, error)
	describeSubnetsFunc       func(ctx context.Context, in *ec2.DescribeSubnetsInput) (*ec2.DescribeSubnetsOutput, error)

	createRouteTableFunc    func(ctx context.Context, in *ec2.CreateRouteTableInput) (*ec2.CreateRouteTableOutput, error)
	createRouteFunc         func(ctx context.Context, in *ec2.CreateRouteInput) (*ec2.CreateRouteOutput, error)
	associateRouteTableFunc func(ctx context.Context, in *ec2.AssociateRouteTableInput) (*ec2.AssociateRouteTableOutput, error)
	describeRouteTablesFunc func(ctx context.Context, in *ec2.DescribeRouteTablesInput) (*ec2.DescribeRouteTablesOutput, error)

	allocateAddressFunc     func(ctx context.Context, in *ec2.AllocateAddressInput) (*ec2.AllocateAddressOutput, error)
	createNatGatewayFunc    func(ctx context.Context, in *ec2.CreateNatGatewayInput) (*ec2.CreateNatGatewayOutput, error)
	describeNatGatewaysFunc func(ctx context.Context, in *ec2.DescribeNatGatewaysInput) (*ec2.DescribeNatGatewaysOutput, error)

	createSecurityGroupFunc           func(ctx context.Context, in *ec2.CreateSecurityGroupInput) (*ec2.CreateSecurityGroupOutput, error)
	authorizeSecurityGroupIngressFunc func(ctx context.Context, in *ec2.AuthorizeSecurityGroupIngressInput) (*ec2.AuthorizeSecurityGroupIngressOutput, error)
	describeSecurityGroupsFunc        func(ctx context.Context, in *ec2.DescribeSecurityGroupsInput) (*ec2.DescribeSecurityGroupsOutput, error)

	createKeyPairFunc    func(ctx context.Context, in *ec2.CreateKeyPairInput) (*ec2.CreateKeyPairOutput, error)
	describeKeyPairsFunc func(ctx context.Context, in *ec2.DescribeKeyPairsInput) (*ec2.DescribeKeyPairsOutput, error)

	createLaunchTemplateFunc    func(ctx context.Context, in *ec2.CreateLaunchTemplateInput) (*ec2.CreateLaunchTemplateOutput, error)
	describeLaunchTemplatesFunc func(ctx context.Context, in *ec2.DescribeLaunchTemplatesInput) (*ec2.DescribeLaunchTemplatesOutput, error)
}

var _ EC2API = (*mockEC2)(nil)

func (m *mockEC2) DescribeAvailabilityZones(ctx context.Context, in *ec2.DescribeAvailabilityZonesInput, _ ...func(*ec2.Options)) (*ec2.DescribeAvailabilityZonesOutput, error) {
	if m.describeAvailabilityZonesFunc != nil {
		return m.describeAvailabilityZonesFunc(ctx, in)
	}
	return &ec2.DescribeAvailabilityZonesOutput{}, nil
}

func (m *mockEC2) CreateVpc(ctx context.Context, in *ec2.CreateVpcInput, _ ...func(*ec2.Options)) (*ec2.CreateVpcOutput, error) {
	if m.createVpcFunc != nil {
		return m.createVpcFunc(ctx, in)
	}
	return &ec2.CreateVpcOutput{}, nil
}

func (m *mockEC2) DescribeVpcs(ctx context.Context, in *ec2.DescribeVpcsInput, _ ...func(*ec2.Options)) (*ec2.DescribeVpcsOutput, error) {
	if m.describeVpcsFunc != nil {
		return m.describeVpcsFunc(ctx, in)
	}
	return &ec2.DescribeVpcsOutput{}, nil
}

func (m *mockEC2) CreateInternetGateway(ctx context.Context, in *ec2.CreateInternetGatewayInput, _ ...func(*ec2.Options)) (*ec2.CreateInternetGatewayOutput, error) {
	if m.createInternetGatewayFunc != nil {
		return m.createInternetGatewayFunc(ctx, in)
	}
	return &ec2.CreateInternetGatewayOutput{}, nil
}

func (m *mockEC2) AttachInternetGateway(ctx context.Context, in *ec2.AttachInternetGatewayInput, _ ...func(*ec2.Options)) (*ec2.AttachInternetGatewayOutput, error) {
	if m.attachInternetGatewayFunc != nil {
		return m.attachInternetGatewayFunc(ctx, in)
	}
	return &ec2.AttachInternetGatewayOutput{}, nil
}

func (m *mockEC2) DeleteInternetGateway(ctx context.Context, in *ec2.DeleteInternetGatewayInput, _ ...func(*ec2.Options)) (*ec2.DeleteInternetGatewayOutput, error) {
	if m.deleteInternetGatewayFunc != nil {
		return m.deleteInternetGatewayFunc(ctx, in)
	}
	return &ec2.DeleteInternetGatewayOutput{}, nil
}

func (m *mockEC2) DescribeInternetGateways(ctx context.Context, in *ec2.DescribeInternetGatewaysInput, _ ...func(*ec2.Options)) (*ec2.DescribeInternetGatewaysOutput, error) {
	if m.describeInternetGatewaysFunc != nil {
		return m.describeInternetGatewaysFunc(ctx, in)
	}
	return &ec2.DescribeInternetGatewaysOutput{}, nil
}

func (m *mockEC2) CreateSubnet(ctx context.Context, in *ec2.CreateSubnetInput, _ ...func(*ec2.Options)) (*ec2.CreateSubnetOutput, error) {
	if m.createSubnetFunc != nil {
		return m.createSubnetFunc(ctx, in)
	}
	return &ec2.CreateSubnetOutput{}, nil
}

func (m *mockEC2) ModifySubnetAttribute(ctx context.Context, in *ec2.ModifySubnetAttributeInput, _ ...func(*ec2.Options)) (*ec2.ModifySubnetAttributeOutput, error) {
	if m.modifySubnetAttributeFunc != nil {
		return m.modifySubnetAttributeFunc(ctx, in)
	}
	return &ec2.ModifySubnetAttributeOutput{}, nil
}

func (m *mockEC2) DescribeSubnets(ctx context.Context, in *ec2.DescribeSubnetsInput, _ ...func(*ec2.Options)) (*ec2.DescribeSubnetsOutput, error) {
	if m.describeSubnetsFunc != nil {
		return m.describeSubnetsFunc(ctx, in)
	}
	return &ec2.DescribeSubnetsOutput{}, nil
}

func (m *mockEC2) CreateRouteTable(ctx context.Context, in *ec2.CreateRouteTableInput, _ ...func(*ec2.Options)) (*ec2.CreateRouteTableOutput, error) {
	if m.createRouteTableFunc != nil {
		return m.createRouteTableFunc(ctx, in)
	}
	return &ec2.CreateRouteTableOutput{}, nil
}

func (m *mockEC2) CreateRoute(ctx context.Context, in *ec2.CreateRouteInput, _ ...func(*ec2.Options)) (*ec2.CreateRouteOutput, error) {
	if m.createRouteFunc != nil {
		return m.createRouteFunc(ctx, in)
	}
	return &ec2.CreateRouteOutput{}, nil
}

func (m *mockEC2) AssociateRouteTable(ctx context.Context, in *ec2.AssociateRouteTableInput, _ ...func(*ec2.Options)) (*ec2.AssociateRouteTableOutput, error) {
	if m.associateRouteTableFunc != nil {
		return m.associateRouteTableFunc(ctx, in)
	}
	return &ec2.AssociateRouteTableOutput{}, nil
}

func (m *mockEC2) DescribeRouteTables(ctx context.Context, in *ec2.DescribeRouteTablesInput, _ ...func(*ec2.Options)) (*ec2.DescribeRouteTablesOutput, error) {
	if m.describeRouteTablesFunc != nil {
		return m.describeRouteTablesFunc(ctx, in)
	}
	return &ec2.DescribeRouteTablesOutput{}, nil
}

func (m *mockEC2) AllocateAddress(ctx context.Context, in *ec2.AllocateAddressInput, _ ...func(*ec2.Options)) (*ec2.AllocateAddressOutput, error) {
	if m.allocateAddressFunc != nil {
		return m.allocateAddressFunc(ctx, in)
	}
	return &ec2.AllocateAddressOutput{}, nil
}

func (m *mockEC2) CreateNatGateway(ctx context.Context, in *ec2.CreateNatGatewayInput, _ ...func(*ec2.Options)) (*ec2.CreateNatGatewayOutput, error) {
	if m.createNatGatewayFunc != nil {
		return m.createNatGatewayFunc(ctx, in)
	}
	return &ec2.CreateNatGatewayOutput{}, nil
}

func (m *mockEC2) DescribeNatGateways(ctx context.Context, in *ec2.DescribeNatGatewaysInput, _ ...func(*ec2.Options)) (*ec2.DescribeNatGatewaysOutput, error) {
	if m.describeNatGatewaysFunc != nil {
		return m.describeNatGatewaysFunc(ctx, in)
	}
	return &ec2.DescribeNatGatewaysOutput{}, nil
}

func (m *mockEC2) CreateSecurityGroup(ctx context.Context, in *ec2.CreateSecurityGroupInput, _ ...func(*ec2.Options)) (*ec2.CreateSecurityGroupOutput, error) {
	if m.createSecurityGroupFunc != nil {
		return m.createSecurityGroupFunc(ctx, in)
	}
	return &ec2.CreateSecurityGroupOutput{}, nil
}

func (m *mockEC2) AuthorizeSecurityGroupIngress(ctx context.Context, in *ec2.AuthorizeSecurityGroupIngressInput, _ ...func(*ec2.Options)) (*ec2.AuthorizeSecurityGroupIngressOutput, error) {
	if m.authorizeSecurityGroupIngressFunc != nil {
		return m.authorizeSecurityGroupIngressFunc(ctx, in)
	}
	return &ec2.AuthorizeSecurityGroupIngressOutput{}, nil
}

func (m *mockEC2) DescribeSecurityGroups(ctx context.Context, in *ec2.DescribeSecurityGroupsInput, _ ...func(*ec2.Options)) (*ec2.DescribeSecurityGroupsOutput, error) {
	if m.describeSecurityGroupsFunc != nil {
		return m.describeSecurityGroupsFunc(ctx, in)
	}
	return &ec2.DescribeSecurityGroupsOutput{}, nil
}

func (m *mockEC2) CreateKeyPair(ctx context.Context, in *ec2.CreateKeyPairInput, _ ...func(*ec2.Options)) (*ec2.CreateKeyPairOutput, error) {
	if m.createKeyPairFunc != nil {
		return m.createKeyPairFunc(ctx, in)
	}
	return &ec2.CreateKeyPairOutput{}, nil
}

func (m *mockEC2) DescribeKeyPairs(ctx context.Context, in *ec2.DescribeKeyPairsInput, _ ...func(*ec2.Options)) (*ec2.DescribeKeyPairsOutput, error) {
	if m.describeKeyPairsFunc != nil {
		return m.describeKeyPairsFunc(ctx, in)
	}
	return &ec2.DescribeKeyPairsOutput{}, nil
}

func (m *mockEC2) CreateLaunchTemplate(ctx context.Context, in *ec2.CreateLaunchTemplateInput, _ ...func(*ec2.Options)) (*ec2.CreateLaunchTemplateOutput, error) {
	if m.createLaunchTemplateFunc != nil {
		return m.createLaunchTemplateFunc(ctx, in)
	}
	return &ec2.CreateLaunchTemplateOutput{}, nil
}

func (m *mockEC2) DescribeLaunchTemplates(ctx context.Context, in *ec2.DescribeLaunchTemplatesInput, _ ...func(*ec2.Options)) (*ec2.DescribeLaunchTemplatesOutput, error) {
	if m.describeLaunchTemplatesFunc != nil {
		return m.describeLaunchTemplatesFunc(ctx, in)
	}
	return &ec2.DescribeLaunchTemplatesOutput{}, nil
}

// mockELB is a function-field mock of ELBAPI.
type mockELB struct {
	createLoadBalancerFunc    func(ctx context.Context, in *elbv2.CreateLoadBalancerInput) (*elbv2.CreateLoadBalancerOutput, error)
	describeLoadBalancersFunc func(ctx context.Context, in *elbv2.DescribeLoadBalancersInput) (*elbv2.DescribeLoadBalancersOutput, error)
	createTargetGroupFunc     func(ctx context.Context, in *elbv2.CreateTargetGroupInput) (*elbv2.CreateTargetGroupOutput, error)
	describeTargetGroupsFunc  func(ctx context.Context, in *elbv2.DescribeTargetGroupsInput) (*elbv2.DescribeTargetGroupsOutput, error)
	createListenerFunc        func(ctx context.Context, in *elbv2.CreateListenerInput) (*elbv2.CreateListenerOutput, error)
	describeListenersFunc     func(ctx context.Context, in *elbv2.DescribeListenersInput) (*elbv2.DescribeListenersOutput, error)
}

var _ ELBAPI = (*mockELB)(nil)

func (m *mockELB) CreateLoadBalancer(ctx context.Context, in *elbv2.CreateLoadBalancerInput, _ ...func(*elbv2.Options)) (*elbv2.CreateLoadBalancerOutput, error) {
	if m.createLoadBalancerFunc != nil {
		return m.createLoadBalancerFunc(ctx, in)
	}
	return &elbv2.CreateLoadBalancerOutput{}, nil
}

func (m *mockELB) DescribeLoadBalancers(ctx context.Context, in *elbv2.DescribeLoadBalancersInput, _ ...func(*elbv2.Options)) (*elbv2.DescribeLoadBalancersOutput, error) {
	if m.describeLoadBalancersFunc != nil {
		return m.describeLoadBalancersFunc(ctx, in)
	}
	return &elbv2.DescribeLoadBalancersOutput{}, nil
}

func (m *mockELB) CreateTargetGroup(ctx context.Context, in *elbv2.CreateTargetGroupInput, _ ...func(*elbv2.Options)) (*elbv2.CreateTargetGroupOutput, error) {
	if m.createTargetGroupFunc != nil {
		return m.createTargetGroupFunc(ctx, in)
	}
	return &elbv2.CreateTargetGroupOutput{}, nil
}

func (m *mockELB) DescribeTargetGroups(ctx context.Context, in *elbv2.DescribeTargetGroupsInput, _ ...func(*elbv2.Options)) (*elbv2.DescribeTargetGroupsOutput, error) {
	if m.describeTargetGroupsFunc != nil {
		return m.describeTargetGroupsFunc(ctx, in)
	}
	return &elbv2.DescribeTargetGroupsOutput{}, nil
}

func (m *mockELB) CreateListener(ctx context.Context, in *elbv2.CreateListenerInput, _ ...func(*elbv2.Options)) (*elbv2.CreateListenerOutput, error) {
	if m.createListenerFunc != nil {
		return m.createListenerFunc(ctx, in)
	}
	return &elbv2.CreateListenerOutput{}, nil
}

func (m *mockELB) DescribeListeners(ctx context.Context, in *elbv2.DescribeListenersInput, _ ...func(*elbv2.Options)) (*elbv2.DescribeListenersOutput, error) {
	if m.describeListenersFunc != nil {
		return m.describeListenersFunc(ctx, in)
	}
	return &elbv2.DescribeListenersOutput{}, nil
}

// mockASG is a function-field mock of ASGAPI.
type mockASG struct {
	createAutoScalingGroupFunc    func(ctx context.Context, in *autoscaling.CreateAutoScalingGroupInput) (*autoscaling.CreateAutoScalingGroupOutput, error)
	describeAutoScalingGroupsFunc func(ctx context.Context, in *autoscaling.DescribeAutoScalingGroupsInput) (*autoscaling.DescribeAutoScalingGroupsOutput, error)
}

var _ ASGAPI = (*mockASG)(nil)

func (m *mockASG) CreateAutoScalingGroup(ctx context.Context, in *autoscaling.CreateAutoScalingGroupInput, _ ...func(*autoscaling.Options)) (*autoscaling.CreateAutoScalingGroupOutput, error) {
	if m.createAutoScalingGroupFunc != nil {
		return m.createAutoScalingGroupFunc(ctx, in)
	}
	return &autoscaling.CreateAutoScalingGroupOutput{}, nil
}

func (m *mockASG) DescribeAutoScalingGroups(ctx context.Context, in *autoscaling.DescribeAutoScalingGroupsInput, _ ...func(*autoscaling.Options)) (*autoscaling.DescribeAutoScalingGroupsOutput, error) {
	if m.describeAutoScalingGroupsFunc != nil {
		return m.describeAutoScalingGroupsFunc(ctx, in)
	}
	return &autoscaling.DescribeAutoScalingGroupsOutput{}, nil
}

// newTestDriver wires a driver to the given mocks with a fast lookup retry
// and a no-op key material writer.
func newTestDriver(ec2m *mockEC2, elbm *mockELB, asgm *mockASG) *Driver {
	if ec2m == nil {
		ec2m = &mockEC2{}
	}
	if elbm == nil {
		elbm = &mockELB{}
	}
	if asgm == nil {
		asgm = &mockASG{}
	}
	d := newDriver("us-east-1", ec2m, elbm, asgm, WithLookupRetry(1, time.Millisecond))
	d.writeFile = func(string, []byte, os.FileMode) error { return nil }
	return d
}
