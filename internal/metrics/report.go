// Copyright (c) 2026 RebelOps. All rights reserved.
// SPDX-License-Identifier: MIT

package metrics

import (
	"github.com/rebelopsio/boundary/pkg/types"
)

// ComponentsByLayer counts real components per layer name, cross-cutting
// included under its own key.
func ComponentsByLayer(project *types.Project) map[string]int {
	counts := make(map[string]int)
	for _, comp := range project.Components {
		if comp.Synthetic {
			continue
		}
		if comp.CrossCutting {
			counts[types.LayerCrossCutting.String()]++
			continue
		}
		counts[comp.Layer.String()]++
	}
	return counts
}

// ComponentsByKind counts real components per architectural kind.
func ComponentsByKind(project *types.Project) map[string]int {
	counts := make(map[string]int)
	for _, comp := range project.Components {
		if comp.Synthetic {
			continue
		}
		counts[string(comp.Kind)]++
	}
	return counts
}

// LayerCoupling counts every edge between two classified layers, including
// same-layer edges; external targets and cross-cutting endpoints stay out.
func LayerCoupling(project *types.Project) types.LayerCouplingMatrix {
	matrix := types.NewLayerCouplingMatrix()
	for _, e := range project.Edges {
		if e.TargetKind == types.TargetExternal || e.TargetKind == types.TargetCrossCutting {
			continue
		}
		src, ok := project.Component(e.From)
		if !ok || src.CrossCutting || !src.Layer.Classified() {
			continue
		}
		tgt, ok := project.Component(e.To)
		if !ok || tgt.CrossCutting || !tgt.Layer.Classified() {
			continue
		}
		matrix.Increment(src.Layer, tgt.Layer)
	}
	return matrix
}
