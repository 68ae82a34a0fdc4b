package provisioning

import (
	"errors"
	"fmt"
)

// executeStep performs the idempotent create for a single spec: resolve the
// declared inputs from the bindings, attempt the provider create, and fall
// back to a lookup when the provider reports a reuse-eligible condition.
// Exactly one resource is created or adopted per call; the resulting handle
// is bound under the spec's logical name.
func executeStep(ctx *Context, spec ResourceSpec) (ResourceHandle, error) {
	params, err := resolveInputs(ctx.Bindings, spec)
	if err != nil {
		return ResourceHandle{}, err
	}

	handle, err := createOrAdopt(ctx, spec, params)
	if err != nil {
		return ResourceHandle{}, err
	}

	if err := ctx.Bindings.Bind(handle); err != nil {
		// Duplicate logical names are a builder bug.
		return ResourceHandle{}, fmt.Errorf("binding result of step %q: %w", spec.Name, err)
	}
	return handle, nil
}

// resolveInputs merges the spec's declared inputs into a copy of its
// parameter map. Inputs sharing a parameter key are comma-joined in
// declaration order.
func resolveInputs(bindings *Bindings, spec ResourceSpec) (map[string]string, error) {
	params := make(map[string]string, len(spec.Parameters)+len(spec.Inputs))
	for k, v := range spec.Parameters {
		params[k] = v
	}
	for _, in := range spec.Inputs {
		h, ok := bindings.Lookup(in.Name)
		if !ok {
			return nil, &UnresolvedDependencyError{Step: spec.Name, Input: in.Name}
		}
		if existing, ok := params[in.As]; ok && existing != "" {
			params[in.As] = existing + "," + h.ID
		} else {
			params[in.As] = h.ID
		}
	}
	return params, nil
}

func createOrAdopt(ctx *Context, spec ResourceSpec, params map[string]string) (ResourceHandle, error) {
	id, createErr := ctx.Driver.Create(ctx, spec, params)
	if createErr == nil {
		return ResourceHandle{Name: spec.Name, Kind: spec.Kind, ID: id}, nil
	}

	if !ctx.Driver.ReuseEligible(spec.Kind, createErr) {
		return ResourceHandle{}, &ProviderRejectedError{Step: spec.Name, Kind: spec.Kind, Err: createErr}
	}

	found, lookupErr := ctx.Driver.Lookup(ctx, spec, params)
	if lookupErr != nil {
		if errors.Is(lookupErr, ErrNotFound) {
			// The create failure said "already exists" but nothing
			// matches the logical name; surface the original error.
			return ResourceHandle{}, &ProviderRejectedError{Step: spec.Name, Kind: spec.Kind, Err: createErr}
		}
		return ResourceHandle{}, &ProviderRejectedError{Step: spec.Name, Kind: spec.Kind, Err: lookupErr}
	}
	if found.Kind != spec.Kind {
		return ResourceHandle{}, &ReuseConflictError{Name: spec.Name, Want: spec.Kind, Got: found.Kind}
	}

	return ResourceHandle{Name: spec.Name, Kind: spec.Kind, ID: found.ID, Reused: true}, nil
}
