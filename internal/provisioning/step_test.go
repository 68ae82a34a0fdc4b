package provisioning

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingObserver collects events for assertions.
type recordingObserver struct {
	events []Event
}

func (o *recordingObserver) Printf(format string, v ...interface{}) {}

func (o *recordingObserver) Event(event Event) {
	o.events = append(o.events, event)
}

func (o *recordingObserver) types() []EventType {
	out := make([]EventType, 0, len(o.events))
	for _, e := range o.events {
		out = append(out, e.Type)
	}
	return out
}

func newTestContext(driver CloudDriver) (*Context, *recordingObserver) {
	obs := &recordingObserver{}
	return NewContext(context.Background(), driver, obs, DefaultTimeouts()), obs
}

func TestResolveInputs_InjectsBoundIdentifiers(t *testing.T) {
	bindings := NewBindings()
	require.NoError(t, bindings.Bind(ResourceHandle{Name: "net", ID: "vpc-1"}))

	spec := ResourceSpec{
		Name:       "gw",
		Kind:       KindGateway,
		Parameters: map[string]string{"fixed": "value"},
		Inputs:     []Input{{Name: "net", As: "vpc_id"}},
	}

	params, err := resolveInputs(bindings, spec)
	require.NoError(t, err)
	assert.Equal(t, "vpc-1", params["vpc_id"])
	assert.Equal(t, "value", params["fixed"])

	// The spec's own parameter map is untouched.
	_, ok := spec.Parameters["vpc_id"]
	assert.False(t, ok)
}

func TestResolveInputs_CommaJoinsSharedKey(t *testing.T) {
	bindings := NewBindings()
	require.NoError(t, bindings.Bind(ResourceHandle{Name: "subnet-a", ID: "subnet-1"}))
	require.NoError(t, bindings.Bind(ResourceHandle{Name: "subnet-b", ID: "subnet-2"}))

	spec := ResourceSpec{
		Name: "lb",
		Kind: KindLoadBalancer,
		Inputs: []Input{
			{Name: "subnet-a", As: "subnet_ids"},
			{Name: "subnet-b", As: "subnet_ids"},
		},
	}

	params, err := resolveInputs(bindings, spec)
	require.NoError(t, err)
	assert.Equal(t, "subnet-1,subnet-2", params["subnet_ids"])
}

func TestResolveInputs_UnboundInputFails(t *testing.T) {
	spec := ResourceSpec{
		Name:   "gw",
		Kind:   KindGateway,
		Inputs: []Input{{Name: "net", As: "vpc_id"}},
	}

	_, err := resolveInputs(NewBindings(), spec)
	var unresolved *UnresolvedDependencyError
	require.ErrorAs(t, err, &unresolved)
	assert.Equal(t, "gw", unresolved.Step)
	assert.Equal(t, "net", unresolved.Input)
}

func TestCreateOrAdopt_CreatesFresh(t *testing.T) {
	driver := &MockDriver{
		CreateFunc: func(_ context.Context, spec ResourceSpec, _ map[string]string) (string, error) {
			return "vpc-new", nil
		},
	}
	ctx, _ := newTestContext(driver)

	h, err := createOrAdopt(ctx, ResourceSpec{Name: "net", Kind: KindVirtualNetwork}, nil)
	require.NoError(t, err)
	assert.Equal(t, "vpc-new", h.ID)
	assert.False(t, h.Reused)
}

func TestCreateOrAdopt_AdoptsOnReuseEligibleError(t *testing.T) {
	limitErr := errors.New("VpcLimitExceeded")
	driver := &MockDriver{
		CreateFunc: func(_ context.Context, _ ResourceSpec, _ map[string]string) (string, error) {
			return "", limitErr
		},
		ReuseEligibleFunc: func(kind ResourceKind, err error) bool {
			return errors.Is(err, limitErr)
		},
		LookupFunc: func(_ context.Context, spec ResourceSpec, _ map[string]string) (ResourceHandle, error) {
			return ResourceHandle{Name: spec.Name, Kind: spec.Kind, ID: "vpc-existing"}, nil
		},
	}
	ctx, _ := newTestContext(driver)

	h, err := createOrAdopt(ctx, ResourceSpec{Name: "net", Kind: KindVirtualNetwork}, nil)
	require.NoError(t, err)
	assert.Equal(t, "vpc-existing", h.ID)
	assert.True(t, h.Reused)
}

func TestCreateOrAdopt_IneligibleErrorIsFatal(t *testing.T) {
	driver := &MockDriver{
		CreateFunc: func(_ context.Context, _ ResourceSpec, _ map[string]string) (string, error) {
			return "", errors.New("UnauthorizedOperation")
		},
	}
	ctx, _ := newTestContext(driver)

	_, err := createOrAdopt(ctx, ResourceSpec{Name: "net", Kind: KindVirtualNetwork}, nil)
	var rejected *ProviderRejectedError
	require.ErrorAs(t, err, &rejected)
	assert.Equal(t, "net", rejected.Step)
}

func TestCreateOrAdopt_NotFoundSurfacesOriginalError(t *testing.T) {
	limitErr := errors.New("InvalidGroup.Duplicate")
	driver := &MockDriver{
		CreateFunc: func(_ context.Context, _ ResourceSpec, _ map[string]string) (string, error) {
			return "", limitErr
		},
		ReuseEligibleFunc: func(ResourceKind, error) bool { return true },
		// Default LookupFunc returns ErrNotFound.
	}
	ctx, _ := newTestContext(driver)

	_, err := createOrAdopt(ctx, ResourceSpec{Name: "sg", Kind: KindSecurityGroup}, nil)
	var rejected *ProviderRejectedError
	require.ErrorAs(t, err, &rejected)
	assert.ErrorIs(t, rejected.Err, limitErr)
}

func TestCreateOrAdopt_KindMismatchIsConflict(t *testing.T) {
	driver := &MockDriver{
		CreateFunc: func(_ context.Context, _ ResourceSpec, _ map[string]string) (string, error) {
			return "", errors.New("already exists")
		},
		ReuseEligibleFunc: func(ResourceKind, error) bool { return true },
		LookupFunc: func(_ context.Context, spec ResourceSpec, _ map[string]string) (ResourceHandle, error) {
			return ResourceHandle{Name: spec.Name, Kind: KindSubnet, ID: "subnet-1"}, nil
		},
	}
	ctx, _ := newTestContext(driver)

	_, err := createOrAdopt(ctx, ResourceSpec{Name: "net", Kind: KindVirtualNetwork}, nil)
	var conflict *ReuseConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, KindVirtualNetwork, conflict.Want)
	assert.Equal(t, KindSubnet, conflict.Got)
}
