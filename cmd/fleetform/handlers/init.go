// Package handlers implements the business logic for CLI commands.
//
// This package contains handler functions that are called by command
// definitions in the commands package. Handlers are framework-agnostic and
// can be tested independently of the CLI framework.
package handlers

import (
	"context"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/fleetform/fleetform/internal/config"
	"github.com/fleetform/fleetform/internal/config/wizard"
)

// Factory function variables - can be replaced in tests for dependency injection.
var (
	// fileExists checks if a file exists.
	fileExists = func(path string) bool {
		_, err := os.Stat(path)
		return err == nil
	}

	// isInteractive reports whether stdin is a terminal.
	isInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	// runWizard runs the interactive configuration wizard.
	runWizard = wizard.Run

	// writeConfig writes the config to a file.
	writeConfig = config.WriteYAML
)

// Init creates a fleet configuration file. In an interactive session it
// runs the wizard; with --defaults or without a terminal it writes the
// defaults and lets the user edit the YAML.
func Init(ctx context.Context, outputPath string, useDefaults bool) error {
	if fileExists(outputPath) {
		fmt.Printf("Warning: %s already exists and will be overwritten.\n\n", outputPath)
	}

	var cfg *config.Config
	if !useDefaults && isInteractive() {
		printWelcome()
		result, err := runWizard(ctx)
		if err != nil {
			return err
		}
		cfg = result.ToConfig()
	} else {
		cfg = &config.Config{Project: "my-fleet", Region: "us-east-1"}
		cfg.ApplyDefaults()
	}

	if err := writeConfig(cfg, outputPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	printInitSuccess(outputPath, cfg)
	return nil
}

func printWelcome() {
	fmt.Println()
	fmt.Println("fleetform - load-balanced fleets on AWS")
	fmt.Println("=======================================")
	fmt.Println()
	fmt.Println("This wizard creates a fleet configuration with sensible defaults.")
	fmt.Println("Just answer a few questions; everything else can be edited in the")
	fmt.Println("generated YAML afterwards.")
	fmt.Println()
}

func printInitSuccess(outputPath string, cfg *config.Config) {
	fmt.Println()
	fmt.Println("Configuration saved!")
	fmt.Println()
	fmt.Printf("  File: %s\n", outputPath)
	fmt.Println()

	fmt.Println("Fleet Summary")
	fmt.Println("-------------")
	fmt.Printf("  Project:   %s\n", cfg.Project)
	fmt.Printf("  Region:    %s\n", cfg.Region)
	fmt.Printf("  Zones:     %d\n", cfg.ZoneCount)
	fmt.Printf("  Capacity:  %d x %s (min %d, max %d)\n",
		cfg.Fleet.DesiredCapacity, cfg.Fleet.InstanceType, cfg.Fleet.MinSize, cfg.Fleet.MaxSize)
	fmt.Printf("  Placement: %s subnets\n", cfg.Fleet.Placement)
	fmt.Println()

	fmt.Println("Next Steps")
	fmt.Println("----------")
	fmt.Println("  1. Make AWS credentials available (env, shared config, or IAM role)")
	fmt.Println()
	fmt.Printf("  2. Review %s if needed\n", outputPath)
	fmt.Println()
	fmt.Println("  3. Preview and provision the fleet:")
	fmt.Println("     fleetform plan")
	fmt.Println("     fleetform apply")
	fmt.Println()
}
