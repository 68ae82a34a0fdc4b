package handlers

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/fleetform/fleetform/internal/config"
	"github.com/fleetform/fleetform/internal/provisioning"
)

var (
	summaryColorGreen = lipgloss.Color("#22c55e")
	summaryColorBlue  = lipgloss.Color("#3b82f6")
	summaryColorDim   = lipgloss.Color("#6b7280")
	summaryColorWhite = lipgloss.Color("#f9fafb")
)

var (
	summaryTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(summaryColorWhite)

	summarySectionStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(summaryColorBlue)

	summaryDimStyle = lipgloss.NewStyle().
			Foreground(summaryColorDim)

	summaryGreenStyle = lipgloss.NewStyle().
				Foreground(summaryColorGreen)
)

// renderSummary produces a lipgloss-styled apply summary string.
func renderSummary(cfg *config.Config, result *provisioning.RunResult, endpoint string) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(summaryTitleStyle.Render(fmt.Sprintf("  fleetform apply: %s", cfg.Project)))
	b.WriteString("\n")
	b.WriteString(summaryDimStyle.Render("  " + strings.Repeat("═", 40)))
	b.WriteString("\n\n")

	b.WriteString(summarySectionStyle.Render("  Resources"))
	b.WriteString("\n")
	b.WriteString(summaryDimStyle.Render("  " + strings.Repeat("─", 40)))
	b.WriteString("\n")

	created, adopted := 0, 0
	for _, h := range result.Bindings.Ordered() {
		marker := summaryGreenStyle.Render("created")
		if h.Reused {
			marker = summaryDimStyle.Render("adopted")
			adopted++
		} else {
			created++
		}
		b.WriteString(fmt.Sprintf("    %-22s %-38s %s\n", h.Kind, h.Name, marker))
	}

	b.WriteString("\n")
	b.WriteString(summarySectionStyle.Render("  Summary"))
	b.WriteString("\n")
	b.WriteString(summaryDimStyle.Render("  " + strings.Repeat("─", 40)))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("    Created:  %d\n", created))
	b.WriteString(fmt.Sprintf("    Adopted:  %d\n", adopted))
	b.WriteString(fmt.Sprintf("    Capacity: %d x %s\n", cfg.Fleet.DesiredCapacity, cfg.Fleet.InstanceType))

	if endpoint != "" {
		b.WriteString("\n")
		b.WriteString(summaryGreenStyle.Render(fmt.Sprintf("  Fleet endpoint: http://%s", endpoint)))
		b.WriteString("\n")
		b.WriteString(summaryDimStyle.Render("  Instances may take a few minutes to pass health checks."))
	}
	b.WriteString("\n")

	return b.String()
}
