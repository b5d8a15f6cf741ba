// Copyright (c) 2026 RebelOps. All rights reserved.
// SPDX-License-Identifier: MIT

// Package metrics computes the deterministic score model: per-package
// instability/abstractness/distance, layer conformance against expected
// regions, pattern fingerprints, and the four score dimensions with their
// presence-gated overall. Every number derives from a formula over the
// project graph; nothing here is tuned.
package metrics

import (
	"math"
	"sort"

	"github.com/rebelopsio/boundary/internal/config"
	"github.com/rebelopsio/boundary/internal/graph"
	"github.com/rebelopsio/boundary/pkg/types"
)

// centroid is the expected (A, I) region midpoint for a layer.
type centroid struct{ a, i float64 }

// Expected regions: domain is abstract and stable, the outer layers are
// concrete and unstable.
var centroids = map[types.Layer]centroid{
	types.LayerDomain:         {a: 0.75, i: 0.15},
	types.LayerApplication:    {a: 0.4, i: 0.5},
	types.LayerInfrastructure: {a: 0.15, i: 0.75},
	types.LayerPresentation:   {a: 0.15, i: 0.75},
}

// PackageMetrics computes A, I, D and conformance for every internal,
// non-cross-cutting package holding at least one real component.
func PackageMetrics(project *types.Project, pg *graph.PackageGraph) []types.PackageMetrics {
	coupling := pg.BuildCoupling()

	var out []types.PackageMetrics
	for _, pkg := range project.Packages {
		if pkg.CrossCutting {
			continue
		}
		abstract, concrete := 0, 0
		for _, id := range pkg.Components {
			comp, ok := project.Component(id)
			if !ok || comp.Synthetic {
				continue
			}
			if comp.Abstract() {
				abstract++
			}
			concrete++
		}
		if concrete == 0 {
			// Packages with no real components are excluded from scoring.
			continue
		}

		ca := coupling.Ca[pkg.Path]
		ce := coupling.Ce[pkg.Path]
		instability := 0.0
		if ca+ce > 0 {
			instability = float64(ce) / float64(ca+ce)
		}
		abstractness := float64(abstract) / float64(concrete)
		distance := math.Abs(abstractness + instability - 1)

		pm := types.PackageMetrics{
			Path:         pkg.Path,
			Layer:        pkg.Layer,
			Abstract:     abstract,
			Concrete:     concrete,
			AfferentCa:   ca,
			EfferentCe:   ce,
			Instability:  instability,
			Abstractness: abstractness,
			Distance:     distance,
		}
		if c, ok := centroids[pkg.Layer]; ok {
			pm.Conformance = conformance(abstractness, instability, c)
		}
		out = append(out, pm)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

// conformance is 1 minus the Euclidean distance to the layer centroid,
// normalized so the unit-square diagonal equals 1.
func conformance(a, i float64, c centroid) types.Metric {
	dist := math.Hypot(a-c.a, i-c.i) / math.Sqrt2
	return types.DefinedMetric(1 - dist)
}

// Dimensions computes the four score dimensions.
func Dimensions(project *types.Project, pkgMetrics []types.PackageMetrics) types.Score {
	var score types.Score
	score.StructuralPresence = presence(project)
	score.LayerConformance = meanConformance(pkgMetrics)
	score.DependencyCompliance = compliance(project)
	score.InterfaceCoverage = coverage(project)
	return score
}

// presence is the fraction of real components that landed in a layer
// (classified or cross-cutting). Zero, not undefined, for empty projects.
func presence(project *types.Project) types.Metric {
	total, placed := 0, 0
	for _, comp := range project.Components {
		if comp.Synthetic {
			continue
		}
		total++
		if comp.CrossCutting || comp.Layer.Classified() {
			placed++
		}
	}
	if total == 0 {
		return types.DefinedMetric(0)
	}
	return types.DefinedMetric(float64(placed) / float64(total))
}

// meanConformance averages per-package conformance over classified
// packages; undefined when there are none.
func meanConformance(pkgMetrics []types.PackageMetrics) types.Metric {
	sum, n := 0.0, 0
	for _, pm := range pkgMetrics {
		if !pm.Conformance.Defined {
			continue
		}
		sum += pm.Conformance.Value
		n++
	}
	if n == 0 {
		return types.Metric{}
	}
	return types.DefinedMetric(sum / float64(n))
}

// compliance is the fraction of cross-layer edges flowing in an allowed
// direction, over edges whose endpoints are internal, classified, and not
// cross-cutting. Undefined when no such edge exists.
func compliance(project *types.Project) types.Metric {
	total, correct := 0, 0
	for _, e := range project.Edges {
		from, to, ok := classifiedEndpoints(project, e)
		if !ok || from == to {
			continue
		}
		total++
		if !from.ViolatesDependencyOn(to) {
			correct++
		}
	}
	if total == 0 {
		return types.Metric{}
	}
	return types.DefinedMetric(float64(correct) / float64(total))
}

// classifiedEndpoints resolves an edge to layer endpoints, filtering out
// external targets, cross-cutting endpoints, unclassified endpoints, and
// synthetic sources.
func classifiedEndpoints(project *types.Project, e types.Edge) (types.Layer, types.Layer, bool) {
	if e.TargetKind == types.TargetExternal || e.TargetKind == types.TargetCrossCutting {
		return 0, 0, false
	}
	src, ok := project.Component(e.From)
	if !ok || src.Synthetic || src.CrossCutting || !src.Layer.Classified() {
		return 0, 0, false
	}
	tgt, ok := project.Component(e.To)
	if !ok || tgt.CrossCutting || !tgt.Layer.Classified() {
		return 0, 0, false
	}
	return src.Layer, tgt.Layer, true
}

// coverage is min(ports, adapters) / max(ports, adapters). Undefined with
// no adapters; zero with adapters but no ports.
func coverage(project *types.Project) types.Metric {
	ports, adapters := portAdapterCounts(project)
	if adapters == 0 {
		return types.Metric{}
	}
	if ports == 0 {
		return types.DefinedMetric(0)
	}
	minC, maxC := float64(ports), float64(adapters)
	if minC > maxC {
		minC, maxC = maxC, minC
	}
	return types.DefinedMetric(minC / maxC)
}

func portAdapterCounts(project *types.Project) (ports, adapters int) {
	for _, comp := range project.Components {
		if comp.Synthetic || comp.CrossCutting {
			continue
		}
		switch {
		case comp.Kind == types.KindPort && comp.Layer == types.LayerDomain:
			ports++
		case (comp.Kind == types.KindAdapter || comp.Kind == types.KindRepository) &&
			comp.Layer == types.LayerInfrastructure:
			adapters++
		}
	}
	return ports, adapters
}

// Overall gates the weighted dimension mean behind pattern confidence and
// structural presence. An ungated or empty score is absent, never 0.
func Overall(score *types.Score, patterns []types.PatternConfidence, cfg *config.Config) {
	top := 0.0
	if len(patterns) > 0 {
		top = patterns[0].Confidence
	}

	if top < 0.5 {
		score.OverallReason = "no architectural pattern detected with confidence >= 0.5"
		return
	}
	if !score.StructuralPresence.Defined || score.StructuralPresence.Value <= 0 {
		score.OverallReason = "no components classified into layers"
		return
	}

	type weighted struct {
		m types.Metric
		w float64
	}
	dims := []weighted{
		{score.LayerConformance, cfg.Scoring.LayerIsolationWeight},
		{score.DependencyCompliance, cfg.Scoring.DependencyDirectionWeight},
		{score.InterfaceCoverage, cfg.Scoring.InterfaceCoverageWeight},
	}

	sum, wsum := 0.0, 0.0
	for _, d := range dims {
		if !d.m.Defined {
			continue
		}
		sum += d.m.Value * d.w
		wsum += d.w
	}
	if wsum == 0 {
		score.OverallReason = "no score dimensions defined"
		return
	}
	score.Overall = types.DefinedMetric(score.StructuralPresence.Value * (sum / wsum))
}
