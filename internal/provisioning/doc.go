// Package provisioning implements the provisioning engine: typed resource
// specs, ordered plans, the idempotent create step, the readiness waiter and
// the sequential plan executor.
//
// A run executes a Plan (an ordered list of ResourceSpec) and accumulates
// ResourceHandles in a Bindings map as steps complete. Steps never talk to
// the cloud directly; all provider access goes through the CloudDriver
// interface so the engine can be exercised against a mock.
package provisioning
