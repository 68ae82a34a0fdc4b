package provisioning

import (
	"fmt"
	"time"
)

// RunResult is what a run hands back: every step outcome in execution
// order, plus the bindings accumulated up to the point the run stopped.
// On failure the bindings list everything that was created or adopted
// before the fatal step, for manual cleanup or re-run.
type RunResult struct {
	Results  []StepResult
	Bindings *Bindings
}

// Run executes the plan strictly in order. Steps whose kind is
// asynchronously provisioned are not considered complete until the
// readiness waiter confirms them. The first fatal failure aborts the run;
// nothing already created is rolled back.
//
// Run assumes the plan is already topologically ordered (Plan.Validate
// enforces this); it only re-checks that each step's inputs are bound when
// the step is reached and fails fast with UnresolvedDependencyError if not.
func Run(ctx *Context, plan Plan) (*RunResult, error) {
	result := &RunResult{Bindings: ctx.Bindings}
	runStart := time.Now()

	for i, spec := range plan.Steps {
		ctx.Observer.Event(Event{
			Type:    EventStepStarted,
			Step:    spec.Name,
			Message: fmt.Sprintf("%s (%d/%d)", spec.Kind, i+1, len(plan.Steps)),
		})

		stepStart := time.Now()
		handle, err := executeStep(ctx, spec)
		if err == nil && ctx.Driver.Asynchronous(spec.Kind) {
			err = waitUntilReady(ctx, handle)
		}
		elapsed := time.Since(stepStart)

		if err != nil {
			result.Results = append(result.Results, StepResult{Spec: spec, Err: err, Elapsed: elapsed})
			ctx.Observer.Event(Event{
				Type:    EventStepFailed,
				Step:    spec.Name,
				Message: err.Error(),
			})
			return result, err
		}

		result.Results = append(result.Results, StepResult{Spec: spec, Handle: handle, Elapsed: elapsed})
		logHandleBound(ctx.Observer, handle, elapsed)
	}

	ctx.Observer.Event(Event{
		Type:    EventRunCompleted,
		Message: fmt.Sprintf("%d steps in %v", len(plan.Steps), time.Since(runStart).Round(time.Millisecond)),
	})
	return result, nil
}
