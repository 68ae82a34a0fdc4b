package handlers

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetform/fleetform/internal/config"
	"github.com/fleetform/fleetform/internal/provisioning"
)

// saveAndRestoreApplyFactories saves and restores apply factory functions.
func saveAndRestoreApplyFactories(t *testing.T) {
	origNewCloudDriver := newCloudDriver
	origLoadTimeouts := loadTimeouts
	origNewObserver := newObserver

	t.Cleanup(func() {
		newCloudDriver = origNewCloudDriver
		loadTimeouts = origLoadTimeouts
		newObserver = origNewObserver
	})
}

// quietObserver discards all output during tests.
type quietObserver struct{}

func (quietObserver) Printf(string, ...interface{}) {}
func (quietObserver) Event(provisioning.Event)      {}

// dnsDriver is a MockDriver that can also resolve the balancer's DNS name.
type dnsDriver struct {
	provisioning.MockDriver
	dnsName string
}

func (d *dnsDriver) LoadBalancerDNSName(context.Context, string) (string, error) {
	return d.dnsName, nil
}

func useDriver(t *testing.T, driver provisioning.CloudDriver) {
	t.Helper()
	saveAndRestoreApplyFactories(t)
	newCloudDriver = func(context.Context, string, *config.Timeouts) (provisioning.CloudDriver, error) {
		return driver, nil
	}
	newObserver = func() provisioning.Observer { return quietObserver{} }
}

func TestApply_ProvisionsWholeFleet(t *testing.T) {
	var created []string
	driver := &dnsDriver{
		MockDriver: provisioning.MockDriver{
			ZonesFunc: func(context.Context) ([]string, error) {
				return []string{"us-east-1a", "us-east-1b"}, nil
			},
			CreateFunc: func(_ context.Context, spec provisioning.ResourceSpec, _ map[string]string) (string, error) {
				created = append(created, spec.Name)
				return "id-" + spec.Name, nil
			},
		},
		dnsName: "demo-alb-123.us-east-1.elb.amazonaws.com",
	}
	useDriver(t, driver)

	path := writeTestConfig(t)
	output := captureOutput(func() {
		err := Apply(context.Background(), path)
		require.NoError(t, err)
	})

	assert.Contains(t, created, "demo-vpc")
	assert.Contains(t, created, "demo-alb")
	assert.Contains(t, created, "demo-asg")
	assert.Contains(t, output, "demo-alb-123.us-east-1.elb.amazonaws.com")
	assert.Contains(t, output, "Created:")
}

func TestApply_FailurePrintsPartialProgress(t *testing.T) {
	driver := &provisioning.MockDriver{
		ZonesFunc: func(context.Context) ([]string, error) {
			return []string{"us-east-1a", "us-east-1b"}, nil
		},
		CreateFunc: func(_ context.Context, spec provisioning.ResourceSpec, _ map[string]string) (string, error) {
			if spec.Kind == provisioning.KindAddressTranslator {
				return "", errors.New("NatGatewayLimitExceeded: simulated")
			}
			return "id-" + spec.Name, nil
		},
	}
	useDriver(t, driver)

	path := writeTestConfig(t)
	output := captureOutput(func() {
		err := Apply(context.Background(), path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "apply failed")
	})

	assert.Contains(t, output, "Provisioned before failure:")
	assert.Contains(t, output, "demo-vpc")
	assert.Contains(t, output, "Re-run 'fleetform apply'")
}

func TestApply_AdoptsExistingResources(t *testing.T) {
	driver := &provisioning.MockDriver{
		ZonesFunc: func(context.Context) ([]string, error) {
			return []string{"us-east-1a", "us-east-1b"}, nil
		},
		CreateFunc: func(_ context.Context, spec provisioning.ResourceSpec, _ map[string]string) (string, error) {
			if spec.Kind == provisioning.KindVirtualNetwork {
				return "", errors.New("VpcLimitExceeded: simulated")
			}
			return "id-" + spec.Name, nil
		},
		ReuseEligibleFunc: func(kind provisioning.ResourceKind, _ error) bool {
			return kind == provisioning.KindVirtualNetwork
		},
		LookupFunc: func(_ context.Context, spec provisioning.ResourceSpec, _ map[string]string) (provisioning.ResourceHandle, error) {
			return provisioning.ResourceHandle{
				Name: spec.Name, Kind: spec.Kind, ID: "vpc-existing", Reused: true,
			}, nil
		},
	}
	useDriver(t, driver)

	path := writeTestConfig(t)
	output := captureOutput(func() {
		err := Apply(context.Background(), path)
		require.NoError(t, err)
	})

	assert.Contains(t, output, "Adopted:  1")
}

func TestApply_DriverInitFailure(t *testing.T) {
	saveAndRestoreApplyFactories(t)
	newCloudDriver = func(context.Context, string, *config.Timeouts) (provisioning.CloudDriver, error) {
		return nil, fmt.Errorf("no credentials")
	}

	path := writeTestConfig(t)
	err := Apply(context.Background(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "initializing provider")
}

func TestApply_TooFewZones(t *testing.T) {
	driver := &provisioning.MockDriver{
		ZonesFunc: func(context.Context) ([]string, error) {
			return []string{"us-east-1a"}, nil
		},
	}
	useDriver(t, driver)

	path := writeTestConfig(t)
	err := Apply(context.Background(), path)
	require.Error(t, err)

	var insufficientErr *provisioning.InsufficientZonesError
	assert.ErrorAs(t, err, &insufficientErr)
}

func TestRenderSummary(t *testing.T) {
	cfg := &config.Config{Project: "demo", Region: "us-east-1"}
	cfg.Fleet.ImageID = "ami-0abc"
	cfg.ApplyDefaults()

	bindings := provisioning.NewBindings()
	require.NoError(t, bindings.Bind(provisioning.ResourceHandle{
		Name: "demo-vpc", Kind: provisioning.KindVirtualNetwork, ID: "vpc-1",
	}))
	require.NoError(t, bindings.Bind(provisioning.ResourceHandle{
		Name: "demo-alb", Kind: provisioning.KindLoadBalancer, ID: "arn:lb-1", Reused: true,
	}))
	result := &provisioning.RunResult{Bindings: bindings}

	out := renderSummary(cfg, result, "demo.elb.amazonaws.com")

	assert.Contains(t, out, "demo-vpc")
	assert.Contains(t, out, "demo-alb")
	assert.Contains(t, out, "Created:  1")
	assert.Contains(t, out, "Adopted:  1")
	assert.Contains(t, out, "http://demo.elb.amazonaws.com")

	noEndpoint := renderSummary(cfg, result, "")
	assert.NotContains(t, noEndpoint, "Fleet endpoint")
}
