// Copyright (c) 2026 RebelOps. All rights reserved.
// SPDX-License-Identifier: MIT

// Package violations scans the project for layer-boundary breaks, package
// cycles, missing ports, init coupling, anemic domain entities, and
// custom deny-rules. Violations are result records, never errors, and the
// returned list is totally ordered by (file, line, column, kind).
package violations

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/rebelopsio/boundary/internal/config"
	"github.com/rebelopsio/boundary/internal/graph"
	"github.com/rebelopsio/boundary/pkg/types"
)

// Detect runs every check and returns the sorted violation list.
func Detect(project *types.Project, pg *graph.PackageGraph, cfg *config.Config) []types.Violation {
	d := detector{project: project, cfg: cfg}

	var out []types.Violation
	out = append(out, d.layerBoundaries()...)
	out = append(out, d.circularDependencies(pg)...)
	out = append(out, d.missingPorts()...)
	out = append(out, d.initCoupling()...)
	out = append(out, d.anemicDomain()...)
	out = append(out, d.customRules()...)

	types.SortViolations(out)
	return out
}

type detector struct {
	project *types.Project
	cfg     *config.Config
}

// edgeLayers resolves an edge to its endpoint components, skipping external
// targets and cross-cutting endpoints. Cross-cutting components never
// produce or receive violations.
func (d *detector) edgeLayers(e types.Edge) (src, tgt *types.Component, ok bool) {
	if e.TargetKind == types.TargetExternal || e.TargetKind == types.TargetCrossCutting {
		return nil, nil, false
	}
	src, found := d.project.Component(e.From)
	if !found || src.CrossCutting {
		return nil, nil, false
	}
	tgt, found = d.project.Component(e.To)
	if !found || tgt.CrossCutting {
		return nil, nil, false
	}
	return src, tgt, true
}

// layerBoundaries flags edges whose direction breaks the layer ordering,
// honoring architecture-mode exemptions.
func (d *detector) layerBoundaries() []types.Violation {
	severity := d.cfg.SeverityFor(types.ViolationLayerBoundary, types.SeverityError)

	var out []types.Violation
	for _, e := range d.project.Edges {
		if e.Init {
			// Init edges are reported by the init-coupling check.
			continue
		}
		src, tgt, ok := d.edgeLayers(e)
		if !ok || src.Synthetic {
			continue
		}
		from, to := src.Layer, tgt.Layer
		if !from.ViolatesDependencyOn(to) {
			continue
		}
		if d.exempt(src, from, to) {
			continue
		}

		out = append(out, types.Violation{
			Kind:      types.ViolationLayerBoundary,
			Severity:  severity,
			Location:  e.Location,
			FromLayer: from,
			ToLayer:   to,
			Message:   fmt.Sprintf("%s layer depends on %s layer (import: %s)", from, to, e.ImportPath),
			Suggestion: fmt.Sprintf(
				"The %s layer should not depend on the %s layer. Consider introducing a port interface in the %s layer and an adapter in the %s layer.",
				from, to, from, to),
		})
	}
	return out
}

// exempt applies the architecture-mode relaxations for one edge.
func (d *detector) exempt(src *types.Component, from, to types.Layer) bool {
	switch src.Mode {
	case types.ModeActiveRecord:
		// Annotated domain records may talk to infrastructure directly.
		return from == types.LayerDomain && to == types.LayerInfrastructure && src.ActiveRecord
	case types.ModeServiceOriented:
		return from == types.LayerApplication && to == types.LayerInfrastructure
	}
	return false
}

// circularDependencies reports each package-level strongly connected
// component once, with the full cycle path.
func (d *detector) circularDependencies(pg *graph.PackageGraph) []types.Violation {
	severity := d.cfg.SeverityFor(types.ViolationCircularDependency, types.SeverityError)

	var out []types.Violation
	for _, cycle := range pg.Cycles() {
		out = append(out, types.Violation{
			Kind:     types.ViolationCircularDependency,
			Severity: severity,
			Location: d.packageLocation(cycle[0]),
			Cycle:    cycle,
			Message:  "Circular dependency detected: " + strings.Join(cycle, " -> "),
			Suggestion: "Break the cycle by introducing an interface or " +
				"reorganizing dependencies.",
		})
	}
	return out
}

// packageLocation finds a stable location for a package: its first real
// component in id order.
func (d *detector) packageLocation(pkgPath string) types.Location {
	pkg, ok := d.project.Package(pkgPath)
	if !ok {
		return types.Location{File: pkgPath}
	}
	for _, id := range pkg.Components {
		if comp, found := d.project.Component(id); found && !comp.Synthetic {
			return comp.Location
		}
	}
	return types.Location{File: pkgPath}
}

// missingPorts flags infrastructure adapters and repositories with no
// matching domain port. Suppressed entirely under active-record mode.
func (d *detector) missingPorts() []types.Violation {
	severity := d.cfg.SeverityFor(types.ViolationMissingPort, types.SeverityWarning)

	var portNames []string
	for _, comp := range d.project.Components {
		if comp.Kind == types.KindPort && comp.Layer == types.LayerDomain && !comp.Synthetic {
			portNames = append(portNames, comp.Name)
		}
	}

	var out []types.Violation
	for _, comp := range d.project.Components {
		if comp.Synthetic || comp.CrossCutting {
			continue
		}
		if comp.Layer != types.LayerInfrastructure {
			continue
		}
		if comp.Kind != types.KindAdapter && comp.Kind != types.KindRepository {
			continue
		}
		if comp.Mode == types.ModeActiveRecord {
			continue
		}
		if types.AdapterHasPort(comp.Name, portNames) {
			continue
		}
		out = append(out, types.Violation{
			Kind:     types.ViolationMissingPort,
			Severity: severity,
			Location: comp.Location,
			Message:  fmt.Sprintf("Adapter '%s' has no matching port interface", comp.Name),
			Suggestion: "Create a port interface in the domain layer that " +
				"this adapter implements.",
		})
	}
	return out
}

// initCoupling flags Go init() bodies in domain packages that reach into
// infrastructure.
func (d *detector) initCoupling() []types.Violation {
	severity := d.cfg.SeverityFor(types.ViolationInitCoupling, types.SeverityWarning)

	var out []types.Violation
	for _, e := range d.project.Edges {
		if !e.Init {
			continue
		}
		src, tgt, ok := d.edgeLayers(e)
		if !ok {
			continue
		}
		if src.Layer != types.LayerDomain || tgt.Layer != types.LayerInfrastructure {
			continue
		}
		out = append(out, types.Violation{
			Kind:      types.ViolationInitCoupling,
			Severity:  severity,
			Location:  e.Location,
			FromLayer: src.Layer,
			ToLayer:   tgt.Layer,
			Message: fmt.Sprintf(
				"init() function in domain package %s references infrastructure package %s",
				src.Package, tgt.Package),
			Suggestion: "Move initialization out of init() or inject the " +
				"dependency explicitly.",
		})
	}
	return out
}

// anemicDomain flags domain entities whose methods never take a parameter.
// Active-record entities are exempt; they are a different finding.
func (d *detector) anemicDomain() []types.Violation {
	severity := d.cfg.SeverityFor(types.ViolationAnemicDomain, types.SeverityInfo)

	var out []types.Violation
	for _, comp := range d.project.Components {
		if comp.Synthetic || comp.CrossCutting {
			continue
		}
		if comp.Kind != types.KindEntity || comp.Layer != types.LayerDomain {
			continue
		}
		if comp.ActiveRecord {
			continue
		}
		anemic := true
		for _, m := range comp.Methods {
			if m.Arity >= 1 {
				anemic = false
				break
			}
		}
		if !anemic {
			continue
		}
		out = append(out, types.Violation{
			Kind:     types.ViolationAnemicDomain,
			Severity: severity,
			Location: comp.Location,
			Message:  fmt.Sprintf("Domain entity '%s' has no behavior beyond data access", comp.Name),
			Suggestion: "Move the business logic operating on this entity " +
				"from the application layer into the entity itself.",
		})
	}
	return out
}

// customRules evaluates configured deny-rules: source file glob against
// target path glob.
func (d *detector) customRules() []types.Violation {
	var out []types.Violation
	for _, rule := range d.cfg.Rules.Custom {
		severity := types.SeverityError
		if rule.Severity != "" {
			severity, _ = types.ParseSeverity(rule.Severity)
		}

		for _, e := range d.project.Edges {
			if e.TargetKind == types.TargetCrossCutting {
				continue
			}
			src, ok := d.project.Component(e.From)
			if !ok || src.CrossCutting {
				continue
			}
			fromMatch, _ := doublestar.Match(rule.FromPattern, e.Location.File)
			if !fromMatch {
				continue
			}
			target := e.ImportPath
			if target == "" {
				target = string(e.To)
			}
			toMatch, _ := doublestar.Match(rule.ToPattern, target)
			if !toMatch {
				continue
			}

			message := rule.Message
			if message == "" {
				message = fmt.Sprintf("Custom rule '%s' violated: %s -> %s", rule.Name, e.Location.File, target)
			}
			out = append(out, types.Violation{
				Kind:       types.ViolationCustom,
				Rule:       rule.Name,
				Severity:   severity,
				Location:   e.Location,
				Message:    message,
				Suggestion: fmt.Sprintf("This dependency is forbidden by rule '%s'.", rule.Name),
			})
		}
	}
	return out
}
