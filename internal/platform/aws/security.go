package aws

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/fleetform/fleetform/internal/provisioning"
)

// ingressRule is one parsed "rule.N" parameter. Rules come in two shapes:
//
//	proto:port:cidr:<range>      open the port to an address range
//	proto:port:sgref:<param>     open the port to members of another group,
//	                             whose ID is carried in params[<param>]
type ingressRule struct {
	protocol      string
	port          int32
	cidr          string
	sourceGroupID string
}

func parseIngressRules(params map[string]string) ([]ingressRule, error) {
	keys := make([]string, 0, 2)
	for k := range params {
		if strings.HasPrefix(k, "rule.") {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	rules := make([]ingressRule, 0, len(keys))
	for _, k := range keys {
		parts := strings.SplitN(params[k], ":", 4)
		if len(parts) != 4 {
			return nil, fmt.Errorf("malformed ingress rule %q: want proto:port:cidr|sgref:value", params[k])
		}
		port, err := strconv.ParseInt(parts[1], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("malformed ingress rule port %q: %w", parts[1], err)
		}
		rule := ingressRule{protocol: parts[0], port: int32(port)}
		switch parts[2] {
		case "cidr":
			rule.cidr = parts[3]
		case "sgref":
			groupID := params[parts[3]]
			if groupID == "" {
				return nil, fmt.Errorf("ingress rule references %q but no such input was resolved", parts[3])
			}
			rule.sourceGroupID = groupID
		default:
			return nil, fmt.Errorf("unknown ingress rule source kind %q", parts[2])
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

// createSecurityGroup creates the group and installs its ingress rules.
// Group-to-group rules let compute instances accept traffic only from the
// load balancer without pinning any addresses.
func (d *Driver) createSecurityGroup(ctx context.Context, name string, params map[string]string) (string, error) {
	rules, err := parseIngressRules(params)
	if err != nil {
		return "", err
	}

	out, err := d.ec2.CreateSecurityGroup(ctx, &ec2.CreateSecurityGroupInput{
		GroupName:         aws.String(name),
		Description:       aws.String(params["description"]),
		VpcId:             aws.String(params["vpc_id"]),
		TagSpecifications: nameTags(ec2types.ResourceTypeSecurityGroup, name),
	})
	if err != nil {
		return "", err
	}
	groupID := aws.ToString(out.GroupId)

	permissions := make([]ec2types.IpPermission, 0, len(rules))
	for _, rule := range rules {
		perm := ec2types.IpPermission{
			IpProtocol: aws.String(rule.protocol),
			FromPort:   aws.Int32(rule.port),
			ToPort:     aws.Int32(rule.port),
		}
		if rule.cidr != "" {
			perm.IpRanges = []ec2types.IpRange{{CidrIp: aws.String(rule.cidr)}}
		} else {
			perm.UserIdGroupPairs = []ec2types.UserIdGroupPair{{GroupId: aws.String(rule.sourceGroupID)}}
		}
		permissions = append(permissions, perm)
	}
	if len(permissions) > 0 {
		_, err = d.ec2.AuthorizeSecurityGroupIngress(ctx, &ec2.AuthorizeSecurityGroupIngressInput{
			GroupId:       aws.String(groupID),
			IpPermissions: permissions,
		})
		if err != nil {
			return "", fmt.Errorf("authorizing ingress on %s: %w", groupID, err)
		}
	}
	return groupID, nil
}

func (d *Driver) lookupSecurityGroup(ctx context.Context, name string, params map[string]string) (string, error) {
	filters := []ec2types.Filter{filter("group-name", name)}
	if params["vpc_id"] != "" {
		filters = append(filters, filter("vpc-id", params["vpc_id"]))
	}
	out, err := d.ec2.DescribeSecurityGroups(ctx, &ec2.DescribeSecurityGroupsInput{Filters: filters})
	if err != nil {
		return "", err
	}
	if len(out.SecurityGroups) == 0 {
		return "", fmt.Errorf("no security group named %q: %w", name, provisioning.ErrNotFound)
	}
	return aws.ToString(out.SecurityGroups[0].GroupId), nil
}

// createKeyPair creates the key and writes the private key material to
// params["material_path"] with owner-only permissions. The material is
// returned exactly once by the provider; on the reuse path the existing key
// is adopted and no file is written.
func (d *Driver) createKeyPair(ctx context.Context, name string, params map[string]string) (string, error) {
	out, err := d.ec2.CreateKeyPair(ctx, &ec2.CreateKeyPairInput{
		KeyName:           aws.String(name),
		TagSpecifications: nameTags(ec2types.ResourceTypeKeyPair, name),
	})
	if err != nil {
		return "", err
	}
	if path := params["material_path"]; path != "" {
		if err := d.writeFile(path, []byte(aws.ToString(out.KeyMaterial)), 0o600); err != nil {
			return "", fmt.Errorf("writing private key to %s: %w", path, err)
		}
	}
	return aws.ToString(out.KeyName), nil
}

func (d *Driver) lookupKeyPair(ctx context.Context, name string) (string, error) {
	out, err := d.ec2.DescribeKeyPairs(ctx, &ec2.DescribeKeyPairsInput{
		KeyNames: []string{name},
	})
	if err != nil {
		return "", err
	}
	if len(out.KeyPairs) == 0 {
		return "", fmt.Errorf("no key pair named %q: %w", name, provisioning.ErrNotFound)
	}
	return aws.ToString(out.KeyPairs[0].KeyName), nil
}
