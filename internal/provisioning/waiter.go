package provisioning

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// errNotReady is the internal sentinel that keeps the readiness poll going.
var errNotReady = errors.New("resource still pending")

// waitUntilReady polls the driver until the resource reaches its ready
// state or the wait budget elapses. The poll interval backs off
// exponentially up to Timeouts.PollInterval. Cancelling the run context
// aborts the wait immediately.
//
// All-or-nothing from the caller's perspective: either the resource is
// ready, or the run dies with a ReadinessTimeoutError (or the terminal
// provider error).
func waitUntilReady(ctx *Context, handle ResourceHandle) error {
	ctx.Observer.Event(Event{
		Type:    EventResourceWaiting,
		Step:    handle.Name,
		Message: string(handle.Kind) + " is provisioning",
		Fields:  map[string]string{"id": handle.ID},
	})

	// backoff treats MaxElapsedTime == 0 as "no limit"; a non-positive
	// budget means no waiting is allowed at all.
	if ctx.Timeouts.Readiness <= 0 {
		return &ReadinessTimeoutError{Name: handle.Name, Kind: handle.Kind}
	}

	start := time.Now()

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = time.Second
	if ctx.Timeouts.PollInterval < b.InitialInterval {
		b.InitialInterval = ctx.Timeouts.PollInterval
	}
	b.MaxInterval = ctx.Timeouts.PollInterval
	b.MaxElapsedTime = ctx.Timeouts.Readiness

	probe := func() error {
		ready, err := ctx.Driver.Ready(ctx, handle)
		if err != nil {
			return backoff.Permanent(err)
		}
		if !ready {
			return errNotReady
		}
		return nil
	}

	err := backoff.Retry(probe, backoff.WithContext(b, ctx))
	switch {
	case err == nil:
		ctx.Observer.Event(Event{
			Type:    EventResourceReady,
			Step:    handle.Name,
			Message: string(handle.Kind) + " is ready",
			Fields:  map[string]string{"elapsed": time.Since(start).Round(time.Second).String()},
		})
		return nil
	case errors.Is(err, errNotReady) || errors.Is(err, context.DeadlineExceeded):
		return &ReadinessTimeoutError{Name: handle.Name, Kind: handle.Kind, Elapsed: time.Since(start)}
	case errors.Is(err, context.Canceled):
		return err
	default:
		return &ProviderRejectedError{Step: handle.Name, Kind: handle.Kind, Err: err}
	}
}
