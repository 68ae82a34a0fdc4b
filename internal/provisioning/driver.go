package provisioning

import "context"

// CloudDriver is the provider-facing surface the engine drives. The AWS
// implementation lives in internal/platform/aws; tests use MockDriver.
type CloudDriver interface {
	// Zones lists the availability zone names of the target region.
	Zones(ctx context.Context) ([]string, error)

	// Create provisions the resource described by spec. params is the
	// spec's parameter map with all declared inputs already resolved.
	// It returns the provider-assigned identifier.
	Create(ctx context.Context, spec ResourceSpec, params map[string]string) (string, error)

	// Lookup finds an existing resource matching the spec's logical name.
	// Returns ErrNotFound (possibly wrapped) when nothing matches.
	Lookup(ctx context.Context, spec ResourceSpec, params map[string]string) (ResourceHandle, error)

	// ReuseEligible reports whether err, returned by Create for the given
	// kind, means an equivalent resource already exists and should be
	// looked up instead of failing the run.
	ReuseEligible(kind ResourceKind, err error) bool

	// Asynchronous reports whether resources of this kind have a
	// provider-side pending phase that must complete before dependents
	// may attach to them.
	Asynchronous(kind ResourceKind) bool

	// Ready probes the current state of an asynchronously provisioned
	// resource. A non-nil error means the resource can never become
	// ready (terminal provider state) and aborts the wait.
	Ready(ctx context.Context, handle ResourceHandle) (bool, error)
}
