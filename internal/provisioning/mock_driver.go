package provisioning

import (
	"context"
	"fmt"
)

// MockDriver is a function-field mock of CloudDriver for tests.
type MockDriver struct {
	ZonesFunc         func(ctx context.Context) ([]string, error)
	CreateFunc        func(ctx context.Context, spec ResourceSpec, params map[string]string) (string, error)
	LookupFunc        func(ctx context.Context, spec ResourceSpec, params map[string]string) (ResourceHandle, error)
	ReuseEligibleFunc func(kind ResourceKind, err error) bool
	AsynchronousFunc  func(kind ResourceKind) bool
	ReadyFunc         func(ctx context.Context, handle ResourceHandle) (bool, error)
}

// Ensure interface compliance
var _ CloudDriver = (*MockDriver)(nil)

// Zones mocks availability zone listing.
func (m *MockDriver) Zones(ctx context.Context) ([]string, error) {
	if m.ZonesFunc != nil {
		return m.ZonesFunc(ctx)
	}
	return []string{"zone-a", "zone-b"}, nil
}

// Create mocks resource creation.
func (m *MockDriver) Create(ctx context.Context, spec ResourceSpec, params map[string]string) (string, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, spec, params)
	}
	return fmt.Sprintf("mock-%s-id", spec.Name), nil
}

// Lookup mocks lookup-by-name.
func (m *MockDriver) Lookup(ctx context.Context, spec ResourceSpec, params map[string]string) (ResourceHandle, error) {
	if m.LookupFunc != nil {
		return m.LookupFunc(ctx, spec, params)
	}
	return ResourceHandle{}, ErrNotFound
}

// ReuseEligible mocks the reuse-eligibility table.
func (m *MockDriver) ReuseEligible(kind ResourceKind, err error) bool {
	if m.ReuseEligibleFunc != nil {
		return m.ReuseEligibleFunc(kind, err)
	}
	return false
}

// Asynchronous mocks the async-kind table.
func (m *MockDriver) Asynchronous(kind ResourceKind) bool {
	if m.AsynchronousFunc != nil {
		return m.AsynchronousFunc(kind)
	}
	return false
}

// Ready mocks the readiness probe.
func (m *MockDriver) Ready(ctx context.Context, handle ResourceHandle) (bool, error) {
	if m.ReadyFunc != nil {
		return m.ReadyFunc(ctx, handle)
	}
	return true, nil
}
