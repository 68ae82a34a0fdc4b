package config

import (
	"os"
	"strconv"
	"time"
)

// Timeouts holds the configurable wait and retry budgets.
// These values can be customized via environment variables.
type Timeouts struct {
	Readiness         time.Duration // Total wait budget per asynchronously provisioned resource
	PollInterval      time.Duration // Cap on the delay between readiness probes
	RetryMaxAttempts  int           // Maximum retries for eventually-consistent lookups
	RetryInitialDelay time.Duration // Initial delay between lookup retries
}

// LoadTimeouts loads timeout configuration from environment variables.
// If a variable is not set or invalid, its default is used.
//
// Environment Variables:
//   - FLEETFORM_TIMEOUT_READINESS (default: 5m)
//   - FLEETFORM_POLL_INTERVAL (default: 5s)
//   - FLEETFORM_RETRY_MAX_ATTEMPTS (default: 4)
//   - FLEETFORM_RETRY_INITIAL_DELAY (default: 500ms)
func LoadTimeouts() *Timeouts {
	return &Timeouts{
		Readiness:         parseDuration("FLEETFORM_TIMEOUT_READINESS", 5*time.Minute),
		PollInterval:      parseDuration("FLEETFORM_POLL_INTERVAL", 5*time.Second),
		RetryMaxAttempts:  parseInt("FLEETFORM_RETRY_MAX_ATTEMPTS", 4),
		RetryInitialDelay: parseDuration("FLEETFORM_RETRY_INITIAL_DELAY", 500*time.Millisecond),
	}
}

func parseDuration(envVar string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return defaultVal
	}
	return d
}

func parseInt(envVar string, defaultVal int) int {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return i
}
