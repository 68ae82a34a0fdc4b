// Package main is the entry point for the fleetform CLI.
//
// fleetform provisions a load-balanced, auto-scaled instance fleet on AWS
// from a single declarative YAML file. It builds the network (VPC, subnets,
// routing, NAT), the edge (application load balancer, target group,
// listener) and the fleet (launch template, auto scaling group), adopting
// any resources that already exist instead of failing.
//
// Commands: init, plan, apply, version, completion.
//
// For detailed usage information, run:
//
//	fleetform --help
package main

import (
	"fmt"
	"os"

	"github.com/fleetform/fleetform/cmd/fleetform/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
