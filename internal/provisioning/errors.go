package provisioning

import (
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned by CloudDriver.Lookup when no resource with the
// requested logical name exists at the provider.
var ErrNotFound = errors.New("no matching resource found")

// UnresolvedDependencyError indicates a step declared an input that is not
// bound at the point the step is reached. This is a plan ordering bug, not
// a runtime fault.
type UnresolvedDependencyError struct {
	Step  string
	Input string
}

func (e *UnresolvedDependencyError) Error() string {
	return fmt.Sprintf("step %q requires input %q which is not bound: plan ordering is broken", e.Step, e.Input)
}

// ProviderRejectedError indicates the provider returned an error that is not
// reuse-eligible for the resource kind. Fatal to the run.
type ProviderRejectedError struct {
	Step string
	Kind ResourceKind
	Err  error
}

func (e *ProviderRejectedError) Error() string {
	return fmt.Sprintf("provider rejected %s %q: %v", e.Kind, e.Step, e.Err)
}

func (e *ProviderRejectedError) Unwrap() error { return e.Err }

// ReadinessTimeoutError indicates an asynchronously provisioned resource
// never reached its ready state within the wait budget.
type ReadinessTimeoutError struct {
	Name    string
	Kind    ResourceKind
	Elapsed time.Duration
}

func (e *ReadinessTimeoutError) Error() string {
	return fmt.Sprintf("%s %q not ready after %v", e.Kind, e.Name, e.Elapsed.Round(time.Second))
}

// InsufficientZonesError indicates the region does not offer enough
// availability zones for the requested topology. Fatal precondition.
type InsufficientZonesError struct {
	Region string
	Need   int
	Have   int
}

func (e *InsufficientZonesError) Error() string {
	return fmt.Sprintf("region %s has %d availability zones, need %d", e.Region, e.Have, e.Need)
}

// ReuseConflictError indicates a lookup found an existing resource of a
// different kind under the logical name a step wants to bind. Fatal, as it
// signals a naming collision with unrelated infrastructure.
type ReuseConflictError struct {
	Name string
	Want ResourceKind
	Got  ResourceKind
}

func (e *ReuseConflictError) Error() string {
	return fmt.Sprintf("logical name %q is already taken by a %s, expected a %s", e.Name, e.Got, e.Want)
}
