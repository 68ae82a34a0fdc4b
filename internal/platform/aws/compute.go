package aws

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/fleetform/fleetform/internal/provisioning"
)

// createLaunchTemplate registers the instance blueprint the scaling group
// launches from. User data goes over the wire base64 encoded.
func (d *Driver) createLaunchTemplate(ctx context.Context, name string, params map[string]string) (string, error) {
	data := &ec2types.RequestLaunchTemplateData{
		ImageId:          aws.String(params["image_id"]),
		InstanceType:     ec2types.InstanceType(params["instance_type"]),
		SecurityGroupIds: []string{params["security_group_id"]},
	}
	if params["key_name"] != "" {
		data.KeyName = aws.String(params["key_name"])
	}
	if params["user_data"] != "" {
		data.UserData = aws.String(base64.StdEncoding.EncodeToString([]byte(params["user_data"])))
	}

	out, err := d.ec2.CreateLaunchTemplate(ctx, &ec2.CreateLaunchTemplateInput{
		LaunchTemplateName: aws.String(name),
		VersionDescription: aws.String(params["version_description"]),
		LaunchTemplateData: data,
		TagSpecifications:  nameTags(ec2types.ResourceTypeLaunchTemplate, name),
	})
	if err != nil {
		return "", err
	}
	return aws.ToString(out.LaunchTemplate.LaunchTemplateId), nil
}

func (d *Driver) lookupLaunchTemplate(ctx context.Context, name string) (string, error) {
	out, err := d.ec2.DescribeLaunchTemplates(ctx, &ec2.DescribeLaunchTemplatesInput{
		LaunchTemplateNames: []string{name},
	})
	if err != nil {
		return "", err
	}
	if len(out.LaunchTemplates) == 0 {
		return "", fmt.Errorf("no launch template named %q: %w", name, provisioning.ErrNotFound)
	}
	return aws.ToString(out.LaunchTemplates[0].LaunchTemplateId), nil
}
