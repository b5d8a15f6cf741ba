// Copyright (c) 2026 RebelOps. All rights reserved.
// SPDX-License-Identifier: MIT

package report

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rebelopsio/boundary/internal/forensics"
	"github.com/rebelopsio/boundary/pkg/types"
)

// Forensics renders the deep-dive module report as text.
func Forensics(a *forensics.Analysis) string {
	var b strings.Builder

	fmt.Fprintf(&b, "\n%s\n%s\n",
		headerStyle.Render("Forensics: "+a.ModuleName), strings.Repeat("=", 40))

	if a.Score.Overall.Defined {
		fmt.Fprintf(&b, "Overall Score: %d%%\n", a.Score.Overall.Percent())
	} else {
		fmt.Fprintf(&b, "Overall Score: not available (%s)\n", a.Score.OverallReason)
	}

	writeAggregates(&b, a)
	writeComponentList(&b, "Domain Events", a.DomainEvents)
	writeComponentList(&b, "Ports", a.Ports)
	writeComponentList(&b, "Application Services", a.ApplicationServices)
	writeAdapterMappings(&b, a)
	writeImprovements(&b, a)

	return b.String()
}

// ForensicsJSON renders the forensics analysis as JSON.
func ForensicsJSON(a *forensics.Analysis, compact bool) string {
	var (
		out []byte
		err error
	)
	if compact {
		out, err = json.Marshal(a)
	} else {
		out, err = json.MarshalIndent(a, "", "  ")
	}
	if err != nil {
		return `{"error":"failed to serialize forensics report"}`
	}
	return string(out)
}

func writeAggregates(b *strings.Builder, a *forensics.Analysis) {
	if len(a.Aggregates) == 0 {
		return
	}
	b.WriteString("\n" + headerStyle.Render("Aggregates") + "\n")
	for _, agg := range a.Aggregates {
		fmt.Fprintf(b, "  %s (%s)\n", agg.Entity.Name, agg.Entity.Location)

		for _, p := range agg.Patterns {
			mark := "-"
			if p.Detected {
				mark = "+"
			}
			fmt.Fprintf(b, "    [%s] %s\n", mark, p.Name)
		}

		for _, vo := range agg.ValueObjects {
			fmt.Fprintf(b, "    value object: %s\n", vo.Name)
		}

		if agg.Audit.Clean {
			fmt.Fprintf(b, "    dependencies: %s\n", successStyle.Render("clean"))
		} else {
			for _, leak := range agg.Audit.InfrastructureLeaks {
				fmt.Fprintf(b, "    %s %s\n", errorStyle.Render("leak:"), leak)
			}
		}
	}
}

func writeComponentList(b *strings.Builder, title string, comps []*types.Component) {
	if len(comps) == 0 {
		return
	}
	b.WriteString("\n" + headerStyle.Render(title) + "\n")
	for _, c := range comps {
		fmt.Fprintf(b, "  %s (%s)\n", c.Name, c.Location)
	}
}

func writeAdapterMappings(b *strings.Builder, a *forensics.Analysis) {
	if len(a.Adapters) == 0 {
		return
	}
	b.WriteString("\n" + headerStyle.Render("Infrastructure Adapters") + "\n")
	for _, mapping := range a.Adapters {
		if len(mapping.Ports) == 0 {
			fmt.Fprintf(b, "  %s -> %s\n", mapping.Adapter.Name, warnStyle.Render("no port"))
			continue
		}
		fmt.Fprintf(b, "  %s -> %s\n", mapping.Adapter.Name, strings.Join(mapping.Ports, ", "))
	}
}

func writeImprovements(b *strings.Builder, a *forensics.Analysis) {
	if len(a.Improvements) == 0 {
		return
	}
	b.WriteString("\n" + headerStyle.Render("Suggested Improvements") + "\n")
	for _, s := range a.Improvements {
		fmt.Fprintf(b, "  - %s\n", s)
	}
}
