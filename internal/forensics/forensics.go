// Copyright (c) 2026 RebelOps. All rights reserved.
// SPDX-License-Identifier: MIT

// Package forensics builds the deep-dive module report: per-aggregate
// pattern detection, dependency audits, port/adapter mappings, and
// improvement suggestions. It only reads an analysis result; nothing here
// feeds back into scores or violations.
package forensics

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rebelopsio/boundary/pkg/types"
)

// Analysis is the forensics view over one analyzed project.
type Analysis struct {
	ModuleName          string               `json:"module_name"`
	Root                string               `json:"root"`
	Aggregates          []AggregateAnalysis  `json:"aggregates"`
	DomainEvents        []*types.Component   `json:"domain_events"`
	Ports               []*types.Component   `json:"ports"`
	ApplicationServices []*types.Component   `json:"application_services"`
	Adapters            []AdapterMapping     `json:"adapters"`
	Violations          []types.Violation    `json:"violations"`
	Score               types.Score          `json:"-"`
	Improvements        []string             `json:"improvements"`
}

// AggregateAnalysis examines one domain entity.
type AggregateAnalysis struct {
	Entity       *types.Component   `json:"entity"`
	ValueObjects []*types.Component `json:"value_objects"`
	Audit        DependencyAudit    `json:"audit"`
	Patterns     []Pattern          `json:"patterns"`
}

// Pattern is one detected (or absent) tactical DDD pattern on an entity.
type Pattern struct {
	Name     string `json:"name"`
	Detected bool   `json:"detected"`
}

// DependencyAudit categorizes an entity's outgoing edges.
type DependencyAudit struct {
	DomainImports       []string `json:"domain_imports"`
	ExternalImports     []string `json:"external_imports"`
	InfrastructureLeaks []string `json:"infrastructure_leaks"`
	Clean               bool     `json:"clean"`
}

// AdapterMapping pairs an infrastructure adapter with the ports it serves.
type AdapterMapping struct {
	Adapter *types.Component `json:"adapter"`
	Ports   []string         `json:"ports"`
}

// Build assembles the forensics analysis from a finished result.
func Build(result *types.Result) *Analysis {
	project := result.Project
	a := &Analysis{
		ModuleName: filepath.Base(project.Root),
		Root:       project.Root,
		Violations: result.Violations,
		Score:      result.Score,
	}

	var entities, valueObjects []*types.Component
	var portNames []string
	for _, comp := range project.Components {
		if comp.Synthetic || comp.CrossCutting {
			continue
		}
		switch {
		case comp.Kind == types.KindEvent && comp.Layer == types.LayerDomain:
			a.DomainEvents = append(a.DomainEvents, comp)
		case comp.Kind == types.KindPort && comp.Layer == types.LayerDomain:
			a.Ports = append(a.Ports, comp)
			portNames = append(portNames, comp.Name)
		case comp.Kind == types.KindEntity && comp.Layer == types.LayerDomain:
			entities = append(entities, comp)
		case comp.Kind == types.KindValueObject && comp.Layer == types.LayerDomain:
			valueObjects = append(valueObjects, comp)
		case comp.Layer == types.LayerApplication &&
			(comp.Kind == types.KindService || comp.Kind == types.KindStruct || comp.Kind == types.KindClass):
			a.ApplicationServices = append(a.ApplicationServices, comp)
		}
	}

	for _, comp := range project.Components {
		if comp.Synthetic || comp.CrossCutting || comp.Layer != types.LayerInfrastructure {
			continue
		}
		if comp.Kind != types.KindAdapter && comp.Kind != types.KindRepository {
			continue
		}
		a.Adapters = append(a.Adapters, AdapterMapping{
			Adapter: comp,
			Ports:   servedPorts(comp, portNames),
		})
	}

	for _, entity := range entities {
		a.Aggregates = append(a.Aggregates, AggregateAnalysis{
			Entity:       entity,
			ValueObjects: associatedValueObjects(entity, valueObjects),
			Audit:        auditDependencies(project, entity),
			Patterns:     detectPatterns(entity),
		})
	}

	a.Improvements = suggestImprovements(a, entities)
	return a
}

// servedPorts resolves which ports an adapter covers: declared
// implementations first, name matching as fallback.
func servedPorts(adapter *types.Component, portNames []string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, impl := range adapter.Implements {
		for _, port := range portNames {
			if impl == port && !seen[port] {
				seen[port] = true
				out = append(out, port)
			}
		}
	}
	for _, port := range portNames {
		if !seen[port] && types.AdapterMatchesPort(adapter.Name, port) {
			seen[port] = true
			out = append(out, port)
		}
	}
	sort.Strings(out)
	return out
}

// associatedValueObjects pairs an entity with the value objects its field
// types reference.
func associatedValueObjects(entity *types.Component, valueObjects []*types.Component) []*types.Component {
	var out []*types.Component
	for _, vo := range valueObjects {
		for _, f := range entity.Fields {
			if strings.Contains(f.Type, vo.Name) {
				out = append(out, vo)
				break
			}
		}
	}
	return out
}

// auditDependencies categorizes the entity's outgoing edges by target.
func auditDependencies(project *types.Project, entity *types.Component) DependencyAudit {
	audit := DependencyAudit{}
	for _, e := range project.Edges {
		if e.From != entity.ID {
			continue
		}
		if e.TargetKind == types.TargetExternal {
			audit.ExternalImports = append(audit.ExternalImports, e.ImportPath)
			continue
		}
		tgt, ok := project.Component(e.To)
		if !ok || tgt.CrossCutting {
			continue
		}
		switch tgt.Layer {
		case types.LayerDomain:
			audit.DomainImports = append(audit.DomainImports, e.ImportPath)
		case types.LayerInfrastructure:
			audit.InfrastructureLeaks = append(audit.InfrastructureLeaks, e.ImportPath)
		}
	}
	sort.Strings(audit.DomainImports)
	sort.Strings(audit.ExternalImports)
	sort.Strings(audit.InfrastructureLeaks)
	audit.Clean = len(audit.InfrastructureLeaks) == 0
	return audit
}

// detectPatterns checks the tactical patterns an aggregate should show.
func detectPatterns(entity *types.Component) []Pattern {
	methodCount := len(entity.Methods)

	hasFactory := false
	for _, m := range entity.Methods {
		if strings.HasPrefix(m.Name, "New") || strings.HasPrefix(m.Name, "Create") {
			hasFactory = true
			break
		}
	}

	hasIdentity := false
	for _, f := range entity.Fields {
		switch strings.ToLower(f.Name) {
		case "id", "uuid", "_id":
			hasIdentity = true
		}
	}

	return []Pattern{
		{Name: fmt.Sprintf("Rich domain model (%d methods)", methodCount), Detected: methodCount > 0},
		{Name: "Factory method", Detected: hasFactory},
		{Name: "Identity field", Detected: hasIdentity},
		{Name: "Encapsulation (methods)", Detected: methodCount >= 2},
	}
}

// suggestImprovements collects concrete follow-ups for the module.
func suggestImprovements(a *Analysis, entities []*types.Component) []string {
	var out []string

	for _, entity := range entities {
		if len(entity.Methods) == 0 {
			out = append(out, fmt.Sprintf(
				"Anemic domain model: `%s` has no business methods. Consider adding domain logic.",
				entity.Name))
		}
		if len(entity.Fields) > 10 {
			out = append(out, fmt.Sprintf(
				"`%s` has %d fields. Consider breaking it into smaller value objects.",
				entity.Name, len(entity.Fields)))
		}
	}

	if len(a.DomainEvents) == 0 && len(entities) > 0 {
		out = append(out,
			"No domain events found. Consider adding domain events for aggregate state changes.")
	}

	for _, mapping := range a.Adapters {
		if len(mapping.Ports) == 0 {
			out = append(out, fmt.Sprintf(
				"Missing port interface for adapter `%s`.", mapping.Adapter.Name))
		}
	}

	served := make(map[string]bool)
	for _, mapping := range a.Adapters {
		for _, port := range mapping.Ports {
			served[port] = true
		}
	}
	for _, port := range a.Ports {
		if !served[port.Name] {
			out = append(out, fmt.Sprintf(
				"Port `%s` has no known adapter implementation.", port.Name))
		}
	}

	for _, agg := range a.Aggregates {
		for _, leak := range agg.Audit.InfrastructureLeaks {
			out = append(out, fmt.Sprintf(
				"Infrastructure leak: `%s` imports %s.", agg.Entity.Name, leak))
		}
	}

	return out
}
