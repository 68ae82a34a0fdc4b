package provisioning

import (
	"errors"
	"fmt"

	"github.com/dominikbraun/graph"
)

// Plan is an ordered sequence of resource specs. The invariant is that
// every spec's declared inputs are produced by specs earlier in the
// sequence; a plan violating it is a builder bug, caught by Validate.
type Plan struct {
	Steps []ResourceSpec
}

// Validate checks that logical names are unique, that every declared input
// names a step of the plan, and that the sequence is a valid topological
// order of the dependency graph (which also rules out cycles).
func (p Plan) Validate() error {
	if _, err := p.dependencyGraph(); err != nil {
		return err
	}

	bound := make(map[string]bool, len(p.Steps))
	for _, spec := range p.Steps {
		for _, in := range spec.Inputs {
			if !bound[in.Name] {
				return &UnresolvedDependencyError{Step: spec.Name, Input: in.Name}
			}
		}
		bound[spec.Name] = true
	}
	return nil
}

// Merge concatenates plans and reorders the combined steps into a stable
// topological order: dependencies first, original position breaking ties.
// Cross-plan inputs (the fleet plan consuming network outputs) become valid
// here even when the fragments are invalid on their own.
func Merge(plans ...Plan) (Plan, error) {
	var merged Plan
	for _, p := range plans {
		merged.Steps = append(merged.Steps, p.Steps...)
	}

	g, err := merged.dependencyGraph()
	if err != nil {
		return Plan{}, err
	}

	position := make(map[string]int, len(merged.Steps))
	byName := make(map[string]ResourceSpec, len(merged.Steps))
	for i, spec := range merged.Steps {
		position[spec.Name] = i
		byName[spec.Name] = spec
	}

	order, err := graph.StableTopologicalSort(g, func(a, b string) bool {
		return position[a] < position[b]
	})
	if err != nil {
		return Plan{}, fmt.Errorf("ordering merged plan: %w", err)
	}

	sorted := Plan{Steps: make([]ResourceSpec, 0, len(order))}
	for _, name := range order {
		sorted.Steps = append(sorted.Steps, byName[name])
	}
	return sorted, nil
}

// dependencyGraph builds the directed input graph of the plan. Duplicate
// names, inputs referencing unknown steps and dependency cycles all
// surface as errors here.
func (p Plan) dependencyGraph() (graph.Graph[string, string], error) {
	g := graph.New(graph.StringHash, graph.Directed(), graph.PreventCycles())

	for _, spec := range p.Steps {
		if err := g.AddVertex(spec.Name); err != nil {
			if errors.Is(err, graph.ErrVertexAlreadyExists) {
				return nil, fmt.Errorf("duplicate logical name %q in plan", spec.Name)
			}
			return nil, err
		}
	}

	for _, spec := range p.Steps {
		for _, in := range spec.Inputs {
			err := g.AddEdge(in.Name, spec.Name)
			switch {
			case err == nil, errors.Is(err, graph.ErrEdgeAlreadyExists):
			case errors.Is(err, graph.ErrVertexNotFound):
				return nil, fmt.Errorf("step %q declares input %q which no step produces", spec.Name, in.Name)
			case errors.Is(err, graph.ErrEdgeCreatesCycle):
				return nil, fmt.Errorf("dependency cycle through %q and %q", in.Name, spec.Name)
			default:
				return nil, err
			}
		}
	}
	return g, nil
}
