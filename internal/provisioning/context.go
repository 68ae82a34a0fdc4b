package provisioning

import (
	"context"
	"time"
)

// Timeouts bounds the blocking operations of a run.
type Timeouts struct {
	// Readiness is the total wait budget per asynchronously provisioned
	// resource.
	Readiness time.Duration
	// PollInterval caps the delay between readiness probes.
	PollInterval time.Duration
}

// DefaultTimeouts returns the stock wait budgets. NAT gateways routinely
// take over a minute to provision, so the readiness budget is generous.
func DefaultTimeouts() Timeouts {
	return Timeouts{
		Readiness:    5 * time.Minute,
		PollInterval: 5 * time.Second,
	}
}

// Context wraps everything a provisioning run needs: the cancellation
// context, the provider driver, the observer and the run's bindings.
type Context struct {
	context.Context
	Driver   CloudDriver
	Observer Observer
	Timeouts Timeouts
	Bindings *Bindings
}

// NewContext creates a run context with empty bindings.
func NewContext(ctx context.Context, driver CloudDriver, observer Observer, timeouts Timeouts) *Context {
	if observer == nil {
		observer = NewConsoleObserver()
	}
	return &Context{
		Context:  ctx,
		Driver:   driver,
		Observer: observer,
		Timeouts: timeouts,
		Bindings: NewBindings(),
	}
}
