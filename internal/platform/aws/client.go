package aws

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/autoscaling"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	elbv2 "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2"

	"github.com/fleetform/fleetform/internal/provisioning"
	"github.com/fleetform/fleetform/internal/util/retry"
)

// EC2API is the slice of the EC2 client the driver uses.
type EC2API interface {
	DescribeAvailabilityZones(ctx context.Context, params *ec2.DescribeAvailabilityZonesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeAvailabilityZonesOutput, error)

	CreateVpc(ctx context.Context, params *ec2.CreateVpcInput, optFns ...func(*ec2.Options)) (*ec2.CreateVpcOutput, error)
	DescribeVpcs(ctx context.Context, params *ec2.DescribeVpcsInput, optFns ...func(*ec2.Options)) (*ec2.DescribeVpcsOutput, error)

	CreateInternetGateway(ctx context.Context, params *ec2.CreateInternetGatewayInput, optFns ...func(*ec2.Options)) (*ec2.CreateInternetGatewayOutput, error)
	AttachInternetGateway(ctx context.Context, params *ec2.AttachInternetGatewayInput, optFns ...func(*ec2.Options)) (*ec2.AttachInternetGatewayOutput, error)
	DeleteInternetGateway(ctx context.Context, params *ec2.DeleteInternetGatewayInput, optFns ...func(*ec2.Options)) (*ec2.DeleteInternetGatewayOutput, error)
	DescribeInternetGateways(ctx context.Context, params *ec2.DescribeInternetGatewaysInput, optFns ...func(*ec2.Options)) (*ec2.DescribeInternetGatewaysOutput, error)

	CreateSubnet(ctx context.Context, params *ec2.CreateSubnetInput, optFns ...func(*ec2.Options)) (*ec2.CreateSubnetOutput, error)
	ModifySubnetAttribute(ctx context.Context, params *ec2.ModifySubnetAttributeInput, optFns ...func(*ec2.Options)) (*ec2.ModifySubnetAttributeOutput, error)
	DescribeSubnets(ctx context.Context, params *ec2.DescribeSubnetsInput, optFns ...func(*ec2.Options)) (*ec2.DescribeSubnetsOutput, error)

	CreateRouteTable(ctx context.Context, params *ec2.CreateRouteTableInput, optFns ...func(*ec2.Options)) (*ec2.CreateRouteTableOutput, error)
	CreateRoute(ctx context.Context, params *ec2.CreateRouteInput, optFns ...func(*ec2.Options)) (*ec2.CreateRouteOutput, error)
	AssociateRouteTable(ctx context.Context, params *ec2.AssociateRouteTableInput, optFns ...func(*ec2.Options)) (*ec2.AssociateRouteTableOutput, error)
	DescribeRouteTables(ctx context.Context, params *ec2.DescribeRouteTablesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeRouteTablesOutput, error)

	AllocateAddress(ctx context.Context, params *ec2.AllocateAddressInput, optFns ...func(*ec2.Options)) (*ec2.AllocateAddressOutput, error)
	CreateNatGateway(ctx context.Context, params *ec2.CreateNatGatewayInput, optFns ...func(*ec2.Options)) (*ec2.CreateNatGatewayOutput, error)
	DescribeNatGateways(ctx context.Context, params *ec2.DescribeNatGatewaysInput, optFns ...func(*ec2.Options)) (*ec2.DescribeNatGatewaysOutput, error)

	CreateSecurityGroup(ctx context.Context, params *ec2.CreateSecurityGroupInput, optFns ...func(*ec2.Options)) (*ec2.CreateSecurityGroupOutput, error)
	AuthorizeSecurityGroupIngress(ctx context.Context, params *ec2.AuthorizeSecurityGroupIngressInput, optFns ...func(*ec2.Options)) (*ec2.AuthorizeSecurityGroupIngressOutput, error)
	DescribeSecurityGroups(ctx context.Context, params *ec2.DescribeSecurityGroupsInput, optFns ...func(*ec2.Options)) (*ec2.DescribeSecurityGroupsOutput, error)

	CreateKeyPair(ctx context.Context, params *ec2.CreateKeyPairInput, optFns ...func(*ec2.Options)) (*ec2.CreateKeyPairOutput, error)
	DescribeKeyPairs(ctx context.Context, params *ec2.DescribeKeyPairsInput, optFns ...func(*ec2.Options)) (*ec2.DescribeKeyPairsOutput, error)

	CreateLaunchTemplate(ctx context.Context, params *ec2.CreateLaunchTemplateInput, optFns ...func(*ec2.Options)) (*ec2.CreateLaunchTemplateOutput, error)
	DescribeLaunchTemplates(ctx context.Context, params *ec2.DescribeLaunchTemplatesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeLaunchTemplatesOutput, error)
}

// ELBAPI is the slice of the ELBv2 client the driver uses.
type ELBAPI interface {
	CreateLoadBalancer(ctx context.Context, params *elbv2.CreateLoadBalancerInput, optFns ...func(*elbv2.Options)) (*elbv2.CreateLoadBalancerOutput, error)
	DescribeLoadBalancers(ctx context.Context, params *elbv2.DescribeLoadBalancersInput, optFns ...func(*elbv2.Options)) (*elbv2.DescribeLoadBalancersOutput, error)
	CreateTargetGroup(ctx context.Context, params *elbv2.CreateTargetGroupInput, optFns ...func(*elbv2.Options)) (*elbv2.CreateTargetGroupOutput, error)
	DescribeTargetGroups(ctx context.Context, params *elbv2.DescribeTargetGroupsInput, optFns ...func(*elbv2.Options)) (*elbv2.DescribeTargetGroupsOutput, error)
	CreateListener(ctx context.Context, params *elbv2.CreateListenerInput, optFns ...func(*elbv2.Options)) (*elbv2.CreateListenerOutput, error)
	DescribeListeners(ctx context.Context, params *elbv2.DescribeListenersInput, optFns ...func(*elbv2.Options)) (*elbv2.DescribeListenersOutput, error)
}

// ASGAPI is the slice of the Auto Scaling client the driver uses.
type ASGAPI interface {
	CreateAutoScalingGroup(ctx context.Context, params *autoscaling.CreateAutoScalingGroupInput, optFns ...func(*autoscaling.Options)) (*autoscaling.CreateAutoScalingGroupOutput, error)
	DescribeAutoScalingGroups(ctx context.Context, params *autoscaling.DescribeAutoScalingGroupsInput, optFns ...func(*autoscaling.Options)) (*autoscaling.DescribeAutoScalingGroupsOutput, error)
}

// Driver implements provisioning.CloudDriver against AWS.
type Driver struct {
	ec2 EC2API
	elb ELBAPI
	asg ASGAPI

	region        string
	retryAttempts int
	retryDelay    time.Duration

	// writeFile is swapped in tests so key pair creation does not touch
	// the filesystem.
	writeFile func(name string, data []byte, perm os.FileMode) error
}

// Ensure interface compliance
var _ provisioning.CloudDriver = (*Driver)(nil)

// Option customizes a Driver.
type Option func(*Driver)

// WithLookupRetry tunes the retry behaviour of lookup-by-name calls, which
// are eventually consistent right after a failed create.
func WithLookupRetry(attempts int, initialDelay time.Duration) Option {
	return func(d *Driver) {
		d.retryAttempts = attempts
		d.retryDelay = initialDelay
	}
}

// NewDriver builds a driver using the default AWS credential chain.
func NewDriver(ctx context.Context, region string, opts ...Option) (*Driver, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS configuration: %w", err)
	}
	return newDriver(region, ec2.NewFromConfig(cfg), elbv2.NewFromConfig(cfg), autoscaling.NewFromConfig(cfg), opts...), nil
}

// NewDriverWithStaticCredentials builds a driver from an explicit key pair,
// bypassing the default credential chain.
func NewDriverWithStaticCredentials(ctx context.Context, region, accessKeyID, secretAccessKey string, opts ...Option) (*Driver, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(accessKeyID, secretAccessKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("loading AWS configuration: %w", err)
	}
	return newDriver(region, ec2.NewFromConfig(cfg), elbv2.NewFromConfig(cfg), autoscaling.NewFromConfig(cfg), opts...), nil
}

func newDriver(region string, ec2Client EC2API, elbClient ELBAPI, asgClient ASGAPI, opts ...Option) *Driver {
	d := &Driver{
		ec2:           ec2Client,
		elb:           elbClient,
		asg:           asgClient,
		region:        region,
		retryAttempts: 4,
		retryDelay:    500 * time.Millisecond,
		writeFile:     os.WriteFile,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Zones lists the region's availability zone names in the provider's order.
func (d *Driver) Zones(ctx context.Context) ([]string, error) {
	out, err := d.ec2.DescribeAvailabilityZones(ctx, &ec2.DescribeAvailabilityZonesInput{})
	if err != nil {
		return nil, fmt.Errorf("describing availability zones: %w", err)
	}
	zones := make([]string, 0, len(out.AvailabilityZones))
	for _, az := range out.AvailabilityZones {
		if az.ZoneName != nil {
			zones = append(zones, *az.ZoneName)
		}
	}
	return zones, nil
}

// Create dispatches the creation call for the spec's kind. params is the
// spec's parameter map with all inputs resolved by the engine.
func (d *Driver) Create(ctx context.Context, spec provisioning.ResourceSpec, params map[string]string) (string, error) {
	switch spec.Kind {
	case provisioning.KindVirtualNetwork:
		return d.createVPC(ctx, spec.Name, params)
	case provisioning.KindGateway:
		return d.createInternetGateway(ctx, spec.Name, params)
	case provisioning.KindSubnet:
		return d.createSubnet(ctx, spec.Name, params)
	case provisioning.KindRouteTable:
		return d.createRouteTable(ctx, spec.Name, params)
	case provisioning.KindRouteAssociation:
		return d.associateRouteTable(ctx, params)
	case provisioning.KindAddressTranslator:
		return d.createNATGateway(ctx, spec.Name, params)
	case provisioning.KindSecurityGroup:
		return d.createSecurityGroup(ctx, spec.Name, params)
	case provisioning.KindKeyPair:
		return d.createKeyPair(ctx, spec.Name, params)
	case provisioning.KindLaunchTemplate:
		return d.createLaunchTemplate(ctx, spec.Name, params)
	case provisioning.KindLoadBalancer:
		return d.createLoadBalancer(ctx, spec.Name, params)
	case provisioning.KindTargetGroup:
		return d.createTargetGroup(ctx, spec.Name, params)
	case provisioning.KindListener:
		return d.createListener(ctx, params)
	case provisioning.KindScalingGroup:
		return d.createScalingGroup(ctx, spec.Name, params)
	default:
		return "", fmt.Errorf("unsupported resource kind %q", spec.Kind)
	}
}

// Lookup finds an existing resource under the spec's logical name. Lookups
// retry on not-found for a short window because describe calls are
// eventually consistent relative to the create call that just reported the
// name as taken.
func (d *Driver) Lookup(ctx context.Context, spec provisioning.ResourceSpec, params map[string]string) (provisioning.ResourceHandle, error) {
	var id string
	err := retry.WithExponentialBackoff(ctx, func() error {
		found, lookupErr := d.lookupID(ctx, spec, params)
		if lookupErr != nil {
			if errors.Is(lookupErr, provisioning.ErrNotFound) {
				return lookupErr
			}
			return retry.Fatal(lookupErr)
		}
		id = found
		return nil
	}, retry.WithMaxRetries(d.retryAttempts), retry.WithInitialDelay(d.retryDelay))
	if err != nil {
		return provisioning.ResourceHandle{}, fmt.Errorf("looking up %s %q: %w", spec.Kind, spec.Name, err)
	}
	return provisioning.ResourceHandle{Name: spec.Name, Kind: spec.Kind, ID: id}, nil
}

func (d *Driver) lookupID(ctx context.Context, spec provisioning.ResourceSpec, params map[string]string) (string, error) {
	switch spec.Kind {
	case provisioning.KindVirtualNetwork:
		return d.lookupVPC(ctx, spec.Name)
	case provisioning.KindGateway:
		return d.lookupInternetGateway(ctx, spec.Name, params)
	case provisioning.KindSubnet:
		return d.lookupSubnet(ctx, spec.Name, params)
	case provisioning.KindRouteTable:
		return d.lookupRouteTable(ctx, spec.Name, params)
	case provisioning.KindRouteAssociation:
		return d.lookupRouteAssociation(ctx, params)
	case provisioning.KindAddressTranslator:
		return d.lookupNATGateway(ctx, spec.Name)
	case provisioning.KindSecurityGroup:
		return d.lookupSecurityGroup(ctx, spec.Name, params)
	case provisioning.KindKeyPair:
		return d.lookupKeyPair(ctx, spec.Name)
	case provisioning.KindLaunchTemplate:
		return d.lookupLaunchTemplate(ctx, spec.Name)
	case provisioning.KindLoadBalancer:
		return d.lookupLoadBalancer(ctx, spec.Name)
	case provisioning.KindTargetGroup:
		return d.lookupTargetGroup(ctx, spec.Name)
	case provisioning.KindListener:
		return d.lookupListener(ctx, params)
	case provisioning.KindScalingGroup:
		return d.lookupScalingGroup(ctx, spec.Name)
	default:
		return "", fmt.Errorf("unsupported resource kind %q", spec.Kind)
	}
}

// ReuseEligible consults the per-kind table of provider error codes that
// mean an equivalent resource already exists.
func (d *Driver) ReuseEligible(kind provisioning.ResourceKind, err error) bool {
	codes, ok := reuseEligibleCodes[kind]
	if !ok {
		return false
	}
	return isErrorCode(err, codes...)
}

// Asynchronous reports the kinds with a provider-side pending phase.
func (d *Driver) Asynchronous(kind provisioning.ResourceKind) bool {
	return kind == provisioning.KindVirtualNetwork || kind == provisioning.KindAddressTranslator
}

// Ready probes the provider state of an asynchronously provisioned
// resource. Terminal failure states return an error, which aborts the wait.
func (d *Driver) Ready(ctx context.Context, handle provisioning.ResourceHandle) (bool, error) {
	switch handle.Kind {
	case provisioning.KindVirtualNetwork:
		return d.vpcReady(ctx, handle.ID)
	case provisioning.KindAddressTranslator:
		return d.natGatewayReady(ctx, handle.ID)
	default:
		return true, nil
	}
}
