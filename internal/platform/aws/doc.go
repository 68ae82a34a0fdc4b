// Package aws implements the provisioning CloudDriver against the AWS
// APIs: EC2 for the network layer, security groups, key pairs and launch
// templates, ELBv2 for the load balancing layer and Auto Scaling for the
// fleet. Create calls are dispatched per resource kind; each kind also
// carries its lookup-by-name operation and the set of provider error codes
// that mean "already exists, adopt it".
package aws
