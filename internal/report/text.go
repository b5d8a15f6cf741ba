// Copyright (c) 2026 RebelOps. All rights reserved.
// SPDX-License-Identifier: MIT

// Package report renders read-only analysis results as text, JSON,
// Markdown, Mermaid, and DOT. Renderers only read the result; every number
// they print was computed by the metric engine.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rebelopsio/boundary/internal/graph"
	"github.com/rebelopsio/boundary/pkg/types"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true)
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
	warnStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3"))
	infoStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("4"))
	successStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	dimStyle     = lipgloss.NewStyle().Faint(true)
)

// Text renders the full terminal report.
func Text(result *types.Result) string {
	var b strings.Builder

	b.WriteString("\n" + headerStyle.Render("Boundary - Architecture Analysis") + "\n")
	b.WriteString(strings.Repeat("=", 40) + "\n\n")

	writeScores(&b, result)

	fmt.Fprintf(&b, "\n%s: %d components, %d dependencies, %d files\n",
		headerStyle.Render("Summary"),
		result.ComponentCount, result.DependencyCount, result.Project.FilesAnalyzed)

	writePatterns(&b, result)
	writeLayerCounts(&b, result)
	writeKindCounts(&b, result)
	writeLayerCoupling(&b, result)
	writeUnclassified(&b, result)
	writeViolations(&b, result)

	return b.String()
}

// Check renders the report plus a pass/fail line and reports whether the
// check passed.
func Check(result *types.Result, failOn types.Severity, minScore *float64) (string, bool) {
	out := Text(result)

	failing := result.FailingViolations(failOn)
	passed := failing == 0

	if minScore != nil {
		if !result.Score.Overall.Defined || float64(result.Score.Overall.Percent()) < *minScore {
			passed = false
		}
	}

	if passed {
		out += "\n" + successStyle.Render("CHECK PASSED") + "\n"
	} else {
		out += "\n" + errorStyle.Render("CHECK FAILED") +
			fmt.Sprintf(" (%d violation(s) at or above %s)\n", failing, failOn)
	}
	return out, passed
}

func writeScores(b *strings.Builder, result *types.Result) {
	b.WriteString(headerStyle.Render("Scores") + "\n")

	if result.Score.Overall.Defined {
		fmt.Fprintf(b, "  Overall Score: %d%%\n", result.Score.Overall.Percent())
	} else {
		fmt.Fprintf(b, "  Overall Score: not available (%s)\n", result.Score.OverallReason)
	}

	dims := []struct {
		label string
		m     types.Metric
	}{
		{"Structural Presence", result.Score.StructuralPresence},
		{"Layer Conformance", result.Score.LayerConformance},
		{"Dependency Compliance", result.Score.DependencyCompliance},
		{"Interface Coverage", result.Score.InterfaceCoverage},
	}
	for _, d := range dims {
		if !d.m.Defined {
			continue
		}
		fmt.Fprintf(b, "  %s: %d%%\n", d.label, d.m.Percent())
	}
}

func writePatterns(b *strings.Builder, result *types.Result) {
	b.WriteString("\n" + headerStyle.Render("Pattern Confidence") + "\n")
	for _, p := range result.Patterns {
		marker := "  "
		if p.Pattern == result.TopPattern {
			marker = "> "
		}
		fmt.Fprintf(b, "  %s%s: %.0f%%\n", marker, p.Pattern, p.Confidence*100)
	}
}

func writeLayerCounts(b *strings.Builder, result *types.Result) {
	writeCountSection(b, "Components By Layer", result.ComponentsByLayer)
}

func writeKindCounts(b *strings.Builder, result *types.Result) {
	writeCountSection(b, "Components By Kind", result.ComponentsByKind)
}

func writeCountSection(b *strings.Builder, title string, counts map[string]int) {
	if len(counts) == 0 {
		return
	}
	b.WriteString("\n" + headerStyle.Render(title) + "\n")
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(b, "  %s: %d\n", k, counts[k])
	}
}

// writeLayerCoupling prints the non-zero cells of the layer coupling
// matrix in fixed layer order.
func writeLayerCoupling(b *strings.Builder, result *types.Result) {
	matrix := result.LayerCoupling.Matrix
	if len(matrix) == 0 {
		return
	}

	order := []types.Layer{
		types.LayerDomain, types.LayerApplication,
		types.LayerInfrastructure, types.LayerPresentation,
	}
	var lines []string
	for _, from := range order {
		for _, to := range order {
			if n := matrix[from.String()][to.String()]; n > 0 {
				lines = append(lines, fmt.Sprintf("  %s -> %s: %d", from, to, n))
			}
		}
	}
	if len(lines) == 0 {
		return
	}

	b.WriteString("\n" + headerStyle.Render("Layer Coupling") + "\n")
	for _, line := range lines {
		b.WriteString(line + "\n")
	}
}

func writeUnclassified(b *strings.Builder, result *types.Result) {
	seen := make(map[string]bool)
	var paths []string
	for _, comp := range result.Project.Components {
		if comp.Synthetic || comp.CrossCutting || comp.Layer.Classified() {
			continue
		}
		if comp.Layer == types.LayerExternal || seen[comp.Package] {
			continue
		}
		seen[comp.Package] = true
		paths = append(paths, comp.Package)
	}
	if len(paths) == 0 {
		return
	}
	sort.Strings(paths)
	if len(paths) > 10 {
		paths = paths[:10]
	}

	b.WriteString("\n" + warnStyle.Render("Unclassified Paths") + " " +
		dimStyle.Render("(add patterns to .boundary.yaml layers)") + "\n")
	for _, p := range paths {
		fmt.Fprintf(b, "  %s\n", p)
	}
}

func writeViolations(b *strings.Builder, result *types.Result) {
	if len(result.Violations) == 0 {
		b.WriteString("\n" + successStyle.Render("No violations found!") + "\n")
		return
	}

	fmt.Fprintf(b, "\n%s (%d found)\n%s\n",
		errorStyle.Render("Violations"), len(result.Violations), strings.Repeat("-", 40))

	for _, v := range result.Violations {
		var sev string
		switch v.Severity {
		case types.SeverityError:
			sev = errorStyle.Render("ERROR")
		case types.SeverityWarning:
			sev = warnStyle.Render("WARN")
		default:
			sev = infoStyle.Render("INFO")
		}
		fmt.Fprintf(b, "  %s %s:%d:%d %s\n", sev,
			v.Location.File, v.Location.Line, v.Location.Column, v.Message)
		if v.Suggestion != "" {
			fmt.Fprintf(b, "        %s\n", dimStyle.Render(v.Suggestion))
		}
	}
}

// hubLimit caps the hub-package list in the Markdown report.
const hubLimit = 5

// Markdown renders a summary document with a coupling-hub list from
// package centrality.
func Markdown(result *types.Result) string {
	var b strings.Builder

	b.WriteString("# Architecture Analysis\n\n")

	b.WriteString("## Scores\n\n")
	if result.Score.Overall.Defined {
		fmt.Fprintf(&b, "- Overall Score: %d%%\n", result.Score.Overall.Percent())
	} else {
		fmt.Fprintf(&b, "- Overall Score: not available (%s)\n", result.Score.OverallReason)
	}
	dims := []struct {
		label string
		m     types.Metric
	}{
		{"Structural Presence", result.Score.StructuralPresence},
		{"Layer Conformance", result.Score.LayerConformance},
		{"Dependency Compliance", result.Score.DependencyCompliance},
		{"Interface Coverage", result.Score.InterfaceCoverage},
	}
	for _, d := range dims {
		if d.m.Defined {
			fmt.Fprintf(&b, "- %s: %d%%\n", d.label, d.m.Percent())
		}
	}

	fmt.Fprintf(&b, "\nTop pattern: **%s**\n", result.TopPattern)

	if hubs := graph.BuildPackageGraph(result.Project).Centrality(); len(hubs) > 0 {
		b.WriteString("\n## Coupling Hubs\n\n")
		limit := hubLimit
		if len(hubs) < limit {
			limit = len(hubs)
		}
		for _, h := range hubs[:limit] {
			fmt.Fprintf(&b, "- `%s` (centrality %.3f)\n", h.Path, h.Score)
		}
	}

	if len(result.PackageMetrics) > 0 {
		b.WriteString("\n## Package Metrics\n\n")
		b.WriteString("| Package | Layer | A | I | D |\n|---|---|---|---|---|\n")
		for _, pm := range result.PackageMetrics {
			fmt.Fprintf(&b, "| `%s` | %s | %.2f | %.2f | %.2f |\n",
				pm.Path, pm.Layer, pm.Abstractness, pm.Instability, pm.Distance)
		}
	}

	if len(result.Violations) > 0 {
		b.WriteString("\n## Violations\n\n")
		for _, v := range result.Violations {
			fmt.Fprintf(&b, "- **%s** `%s:%d` %s\n", v.Severity, v.Location.File, v.Location.Line, v.Message)
		}
	}

	return b.String()
}
