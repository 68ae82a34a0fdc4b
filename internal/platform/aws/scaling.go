package aws

import (
	"context"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/autoscaling"
	asgtypes "github.com/aws/aws-sdk-go-v2/service/autoscaling/types"

	"github.com/fleetform/fleetform/internal/provisioning"
)

// createScalingGroup creates the auto scaling group from the launch
// template's latest version, registered against the target group and spread
// over the placement subnets. The provider returns no identifier, so the
// group name doubles as the handle ID.
func (d *Driver) createScalingGroup(ctx context.Context, name string, params map[string]string) (string, error) {
	minSize, err := strconv.ParseInt(params["min_size"], 10, 32)
	if err != nil {
		return "", fmt.Errorf("malformed min_size %q: %w", params["min_size"], err)
	}
	maxSize, err := strconv.ParseInt(params["max_size"], 10, 32)
	if err != nil {
		return "", fmt.Errorf("malformed max_size %q: %w", params["max_size"], err)
	}
	desired, err := strconv.ParseInt(params["desired_capacity"], 10, 32)
	if err != nil {
		return "", fmt.Errorf("malformed desired_capacity %q: %w", params["desired_capacity"], err)
	}

	input := &autoscaling.CreateAutoScalingGroupInput{
		AutoScalingGroupName: aws.String(name),
		MinSize:              aws.Int32(int32(minSize)),
		MaxSize:              aws.Int32(int32(maxSize)),
		DesiredCapacity:      aws.Int32(int32(desired)),
		VPCZoneIdentifier:    aws.String(params["subnet_ids"]),
		LaunchTemplate: &asgtypes.LaunchTemplateSpecification{
			LaunchTemplateId: aws.String(params["launch_template_id"]),
			Version:          aws.String("$Latest"),
		},
		TargetGroupARNs: []string{params["target_group_arn"]},
	}
	if tagName := params["instance_tag_name"]; tagName != "" {
		input.Tags = []asgtypes.Tag{{
			Key:               aws.String("Name"),
			Value:             aws.String(tagName),
			PropagateAtLaunch: aws.Bool(true),
		}}
	}
	if _, err := d.asg.CreateAutoScalingGroup(ctx, input); err != nil {
		return "", err
	}
	return name, nil
}

func (d *Driver) lookupScalingGroup(ctx context.Context, name string) (string, error) {
	out, err := d.asg.DescribeAutoScalingGroups(ctx, &autoscaling.DescribeAutoScalingGroupsInput{
		AutoScalingGroupNames: []string{name},
	})
	if err != nil {
		return "", err
	}
	if len(out.AutoScalingGroups) == 0 {
		return "", fmt.Errorf("no scaling group named %q: %w", name, provisioning.ErrNotFound)
	}
	return aws.ToString(out.AutoScalingGroups[0].AutoScalingGroupName), nil
}
