package handlers

import (
	"context"
	"fmt"
	"log"

	"github.com/fleetform/fleetform/internal/config"
	"github.com/fleetform/fleetform/internal/platform/aws"
	"github.com/fleetform/fleetform/internal/provisioning"
	"github.com/fleetform/fleetform/internal/provisioning/network"
	"github.com/fleetform/fleetform/internal/util/naming"
)

// dnsResolver is implemented by drivers that can resolve a load balancer's
// public DNS name for the summary.
type dnsResolver interface {
	LoadBalancerDNSName(ctx context.Context, arn string) (string, error)
}

// Factory function variables for apply - can be replaced in tests.
var (
	// newCloudDriver creates the provider driver.
	newCloudDriver = func(ctx context.Context, region string, timeouts *config.Timeouts) (provisioning.CloudDriver, error) {
		return aws.NewDriver(ctx, region,
			aws.WithLookupRetry(timeouts.RetryMaxAttempts, timeouts.RetryInitialDelay))
	}

	// loadTimeouts reads waiter and retry tuning from the environment.
	loadTimeouts = config.LoadTimeouts

	// newObserver creates the run observer.
	newObserver = func() provisioning.Observer {
		return provisioning.NewConsoleObserver()
	}
)

// Apply provisions the configured fleet.
//
// The workflow:
//  1. Loads and validates the fleet configuration
//  2. Resolves the region's availability zones from the provider
//  3. Builds the network and fleet plans and merges them in dependency order
//  4. Executes the plan, adopting resources that already exist
//  5. Prints a summary, including everything bound so far when a step fails
func Apply(ctx context.Context, configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	timeouts := loadTimeouts()

	log.Printf("Applying configuration for project: %s", cfg.Project)

	driver, err := newCloudDriver(ctx, cfg.Region, timeouts)
	if err != nil {
		return fmt.Errorf("initializing provider: %w", err)
	}

	zones, err := network.SelectZones(ctx, driver, cfg.Region, cfg.ZoneCount)
	if err != nil {
		return err
	}
	log.Printf("Using availability zones: %v", zones)

	merged, err := buildPlan(cfg, zones)
	if err != nil {
		return err
	}

	pctx := provisioning.NewContext(ctx, driver, newObserver(), provisioning.Timeouts{
		Readiness:    timeouts.Readiness,
		PollInterval: timeouts.PollInterval,
	})

	result, err := provisioning.Run(pctx, merged)
	if err != nil {
		printPartialProgress(result)
		return fmt.Errorf("apply failed: %w", err)
	}

	fmt.Print(renderSummary(cfg, result, resolveEndpoint(ctx, driver, cfg, result)))
	return nil
}

// printPartialProgress lists everything that was bound before the failure,
// so a partially provisioned fleet can be inspected or cleaned up by hand.
// Re-running apply adopts these resources instead of recreating them.
func printPartialProgress(result *provisioning.RunResult) {
	if result == nil || result.Bindings.Len() == 0 {
		return
	}
	fmt.Println("\nProvisioned before failure:")
	for _, h := range result.Bindings.Ordered() {
		marker := "created"
		if h.Reused {
			marker = "adopted"
		}
		fmt.Printf("  %-22s %-40s %s (%s)\n", h.Kind, h.Name, h.ID, marker)
	}
	fmt.Println("\nRe-run 'fleetform apply' to continue from here.")
}

// resolveEndpoint looks up the load balancer's DNS name when the driver
// supports it. An empty result just omits the endpoint from the summary.
func resolveEndpoint(ctx context.Context, driver provisioning.CloudDriver, cfg *config.Config, result *provisioning.RunResult) string {
	resolver, ok := driver.(dnsResolver)
	if !ok {
		return ""
	}
	lb, ok := result.Bindings.Lookup(naming.LoadBalancer(cfg.Project))
	if !ok {
		return ""
	}
	dns, err := resolver.LoadBalancerDNSName(ctx, lb.ID)
	if err != nil {
		log.Printf("Could not resolve load balancer DNS name: %v", err)
		return ""
	}
	return dns
}
