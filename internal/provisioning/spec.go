package provisioning

import "time"

// ResourceKind identifies a provisionable resource type.
type ResourceKind string

const (
	KindVirtualNetwork    ResourceKind = "virtual-network"
	KindGateway           ResourceKind = "gateway"
	KindSubnet            ResourceKind = "subnet"
	KindRouteTable        ResourceKind = "route-table"
	KindRouteAssociation  ResourceKind = "route-association"
	KindAddressTranslator ResourceKind = "address-translator"
	KindSecurityGroup     ResourceKind = "security-group"
	KindKeyPair           ResourceKind = "key-pair"
	KindLaunchTemplate    ResourceKind = "launch-template"
	KindLoadBalancer      ResourceKind = "load-balancer"
	KindTargetGroup       ResourceKind = "target-group"
	KindListener          ResourceKind = "listener"
	KindScalingGroup      ResourceKind = "scaling-group"
)

// Input declares that a step consumes the identifier bound under Name by an
// earlier step. The identifier is injected into the step's parameter map
// under the key As before the create call. When several inputs share the
// same As key, their identifiers are joined with commas in declaration
// order (subnet lists and the like).
type Input struct {
	Name string
	As   string
}

// ResourceSpec describes a single resource to create. Specs are immutable
// once built; builders produce them, the executor consumes them.
type ResourceSpec struct {
	Name       string
	Kind       ResourceKind
	Parameters map[string]string
	Inputs     []Input
}

// ResourceHandle is the provider-assigned identifier for a completed step.
// It is the only thing passed between steps.
type ResourceHandle struct {
	Name   string
	Kind   ResourceKind
	ID     string
	Reused bool
}

// StepResult records the outcome of executing one ResourceSpec.
// Err is non-nil only on the final, failing result of an aborted run.
type StepResult struct {
	Spec    ResourceSpec
	Handle  ResourceHandle
	Err     error
	Elapsed time.Duration
}
