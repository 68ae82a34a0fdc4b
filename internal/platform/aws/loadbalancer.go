package aws

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	elbv2 "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2"
	elbtypes "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2/types"

	"github.com/fleetform/fleetform/internal/provisioning"
)

func (d *Driver) createLoadBalancer(ctx context.Context, name string, params map[string]string) (string, error) {
	out, err := d.elb.CreateLoadBalancer(ctx, &elbv2.CreateLoadBalancerInput{
		Name:           aws.String(name),
		Scheme:         elbtypes.LoadBalancerSchemeEnum(params["scheme"]),
		Type:           elbtypes.LoadBalancerTypeEnum(params["type"]),
		IpAddressType:  elbtypes.IpAddressType(params["ip_address_type"]),
		Subnets:        strings.Split(params["subnet_ids"], ","),
		SecurityGroups: []string{params["security_group_id"]},
		Tags: []elbtypes.Tag{
			{Key: aws.String("Name"), Value: aws.String(name)},
			{Key: aws.String("ManagedBy"), Value: aws.String("fleetform")},
		},
	})
	if err != nil {
		return "", err
	}
	if len(out.LoadBalancers) == 0 {
		return "", fmt.Errorf("provider returned no load balancer for %q", name)
	}
	return aws.ToString(out.LoadBalancers[0].LoadBalancerArn), nil
}

func (d *Driver) lookupLoadBalancer(ctx context.Context, name string) (string, error) {
	out, err := d.elb.DescribeLoadBalancers(ctx, &elbv2.DescribeLoadBalancersInput{
		Names: []string{name},
	})
	if err != nil {
		return "", err
	}
	if len(out.LoadBalancers) == 0 {
		return "", fmt.Errorf("no load balancer named %q: %w", name, provisioning.ErrNotFound)
	}
	return aws.ToString(out.LoadBalancers[0].LoadBalancerArn), nil
}

// LoadBalancerDNSName resolves the public DNS name of a balancer by ARN,
// for the apply summary.
func (d *Driver) LoadBalancerDNSName(ctx context.Context, arn string) (string, error) {
	out, err := d.elb.DescribeLoadBalancers(ctx, &elbv2.DescribeLoadBalancersInput{
		LoadBalancerArns: []string{arn},
	})
	if err != nil {
		return "", err
	}
	if len(out.LoadBalancers) == 0 {
		return "", fmt.Errorf("no load balancer with ARN %q: %w", arn, provisioning.ErrNotFound)
	}
	return aws.ToString(out.LoadBalancers[0].DNSName), nil
}

func (d *Driver) createTargetGroup(ctx context.Context, name string, params map[string]string) (string, error) {
	port, err := strconv.ParseInt(params["port"], 10, 32)
	if err != nil {
		return "", fmt.Errorf("malformed target group port %q: %w", params["port"], err)
	}
	interval, err := strconv.ParseInt(params["health_check_interval"], 10, 32)
	if err != nil {
		return "", fmt.Errorf("malformed health check interval %q: %w", params["health_check_interval"], err)
	}

	out, err := d.elb.CreateTargetGroup(ctx, &elbv2.CreateTargetGroupInput{
		Name:                       aws.String(name),
		Protocol:                   elbtypes.ProtocolEnum(params["protocol"]),
		Port:                       aws.Int32(int32(port)),
		VpcId:                      aws.String(params["vpc_id"]),
		TargetType:                 elbtypes.TargetTypeEnum(params["target_type"]),
		HealthCheckProtocol:        elbtypes.ProtocolEnum(params["protocol"]),
		HealthCheckPath:            aws.String(params["health_check_path"]),
		HealthCheckIntervalSeconds: aws.Int32(int32(interval)),
		Matcher:                    &elbtypes.Matcher{HttpCode: aws.String(params["health_check_matcher"])},
	})
	if err != nil {
		return "", err
	}
	if len(out.TargetGroups) == 0 {
		return "", fmt.Errorf("provider returned no target group for %q", name)
	}
	return aws.ToString(out.TargetGroups[0].TargetGroupArn), nil
}

func (d *Driver) lookupTargetGroup(ctx context.Context, name string) (string, error) {
	out, err := d.elb.DescribeTargetGroups(ctx, &elbv2.DescribeTargetGroupsInput{
		Names: []string{name},
	})
	if err != nil {
		return "", err
	}
	if len(out.TargetGroups) == 0 {
		return "", fmt.Errorf("no target group named %q: %w", name, provisioning.ErrNotFound)
	}
	return aws.ToString(out.TargetGroups[0].TargetGroupArn), nil
}

func (d *Driver) createListener(ctx context.Context, params map[string]string) (string, error) {
	port, err := strconv.ParseInt(params["port"], 10, 32)
	if err != nil {
		return "", fmt.Errorf("malformed listener port %q: %w", params["port"], err)
	}

	out, err := d.elb.CreateListener(ctx, &elbv2.CreateListenerInput{
		LoadBalancerArn: aws.String(params["load_balancer_arn"]),
		Protocol:        elbtypes.ProtocolEnum(params["protocol"]),
		Port:            aws.Int32(int32(port)),
		DefaultActions: []elbtypes.Action{{
			Type:           elbtypes.ActionTypeEnumForward,
			TargetGroupArn: aws.String(params["target_group_arn"]),
		}},
	})
	if err != nil {
		return "", err
	}
	if len(out.Listeners) == 0 {
		return "", fmt.Errorf("provider returned no listener")
	}
	return aws.ToString(out.Listeners[0].ListenerArn), nil
}

// lookupListener finds the listener on the balancer matching the requested
// port. Listeners have no names of their own.
func (d *Driver) lookupListener(ctx context.Context, params map[string]string) (string, error) {
	out, err := d.elb.DescribeListeners(ctx, &elbv2.DescribeListenersInput{
		LoadBalancerArn: aws.String(params["load_balancer_arn"]),
	})
	if err != nil {
		return "", err
	}
	for _, l := range out.Listeners {
		if l.Port != nil && strconv.FormatInt(int64(*l.Port), 10) == params["port"] {
			return aws.ToString(l.ListenerArn), nil
		}
	}
	return "", fmt.Errorf("no listener on port %s: %w", params["port"], provisioning.ErrNotFound)
}
