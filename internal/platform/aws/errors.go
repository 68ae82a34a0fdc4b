package aws

import (
	"errors"

	smithy "github.com/aws/smithy-go"

	"github.com/fleetform/fleetform/internal/provisioning"
)

// reuseEligibleCodes maps each resource kind to the provider error codes
// that mean "an equivalent resource already exists, adopt it". Everything
// not listed here is fatal. This table is the single place reuse policy
// lives; call sites never branch on codes themselves.
var reuseEligibleCodes = map[provisioning.ResourceKind][]string{
	provisioning.KindVirtualNetwork: {"VpcLimitExceeded"},
	// Creating a second gateway for a VPC fails at the attach call.
	provisioning.KindGateway:          {"Resource.AlreadyAssociated", "InternetGatewayLimitExceeded"},
	provisioning.KindSubnet:           {"InvalidSubnet.Conflict"},
	provisioning.KindRouteTable:       {"RouteTableLimitExceeded"},
	provisioning.KindRouteAssociation: {"Resource.AlreadyAssociated"},
	provisioning.KindAddressTranslator: {
		"NatGatewayLimitExceeded",
		"AddressLimitExceeded",
	},
	provisioning.KindSecurityGroup:  {"InvalidGroup.Duplicate"},
	provisioning.KindKeyPair:        {"InvalidKeyPair.Duplicate"},
	provisioning.KindLaunchTemplate: {"InvalidLaunchTemplateName.AlreadyExistsException"},
	provisioning.KindLoadBalancer:   {"DuplicateLoadBalancerName"},
	provisioning.KindTargetGroup:    {"DuplicateTargetGroupName"},
	provisioning.KindListener:       {"DuplicateListener"},
	provisioning.KindScalingGroup:   {"AlreadyExists"},
}

// isErrorCode reports whether err is an AWS API error with one of the
// given codes.
func isErrorCode(err error, codes ...string) bool {
	if err == nil {
		return false
	}
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	for _, code := range codes {
		if apiErr.ErrorCode() == code {
			return true
		}
	}
	return false
}
