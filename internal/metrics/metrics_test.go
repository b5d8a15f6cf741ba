// Copyright (c) 2026 RebelOps. All rights reserved.
// SPDX-License-Identifier: MIT

package metrics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rebelopsio/boundary/internal/config"
	"github.com/rebelopsio/boundary/internal/graph"
	"github.com/rebelopsio/boundary/pkg/types"
)

// projectBuilder assembles a small in-memory project for formula tests.
type projectBuilder struct {
	packages   map[string]*types.Package
	components []*types.Component
	edges      []types.Edge
}

func newBuilder() *projectBuilder {
	return &projectBuilder{packages: make(map[string]*types.Package)}
}

func (b *projectBuilder) pkg(path string, layer types.Layer) *projectBuilder {
	b.packages[path] = &types.Package{Path: path, Layer: layer}
	return b
}

func (b *projectBuilder) comp(pkg, name string, kind types.ComponentKind, layer types.Layer) *types.Component {
	c := &types.Component{
		ID:      types.NewComponentID(pkg, name),
		Name:    name,
		Package: pkg,
		Kind:    kind,
		Layer:   layer,
		Location: types.Location{
			File: pkg + "/" + name + ".go", Line: 1, Column: 1,
		},
	}
	b.components = append(b.components, c)
	if p, ok := b.packages[pkg]; ok {
		p.Components = append(p.Components, c.ID)
	}
	return c
}

func (b *projectBuilder) edge(from, to types.ComponentID, kind types.TargetKind) {
	b.edges = append(b.edges, types.Edge{From: from, To: to, TargetKind: kind})
}

func (b *projectBuilder) build() *types.Project {
	var pkgs []*types.Package
	for _, p := range b.packages {
		pkgs = append(pkgs, p)
	}
	return types.NewProject(".", pkgs, b.components, b.edges, nil, 0)
}

func TestInstabilityAbstractnessDistance(t *testing.T) {
	b := newBuilder()
	b.pkg("domain", types.LayerDomain)
	b.pkg("app", types.LayerApplication)
	b.pkg("infra", types.LayerInfrastructure)

	port := b.comp("domain", "UserRepository", types.KindPort, types.LayerDomain)
	entity := b.comp("domain", "User", types.KindEntity, types.LayerDomain)
	svc := b.comp("app", "UserService", types.KindStruct, types.LayerApplication)
	repo := b.comp("infra", "PostgresUserRepository", types.KindRepository, types.LayerInfrastructure)

	b.edge(svc.ID, entity.ID, types.TargetComponent)
	b.edge(repo.ID, port.ID, types.TargetComponent)

	project := b.build()
	pg := graph.BuildPackageGraph(project)
	pms := PackageMetrics(project, pg)
	require.Len(t, pms, 3)

	byPath := make(map[string]types.PackageMetrics)
	for _, pm := range pms {
		byPath[pm.Path] = pm
	}

	domain := byPath["domain"]
	// Two components, one abstract: A = 0.5. Ca = 2, Ce = 0: I = 0.
	assert.InDelta(t, 0.5, domain.Abstractness, 1e-9)
	assert.InDelta(t, 0.0, domain.Instability, 1e-9)
	assert.InDelta(t, 0.5, domain.Distance, 1e-9)

	app := byPath["app"]
	// Ca = 0, Ce = 1: I = 1. A = 0. D = 0 (on the main sequence).
	assert.InDelta(t, 1.0, app.Instability, 1e-9)
	assert.InDelta(t, 0.0, app.Abstractness, 1e-9)
	assert.InDelta(t, 0.0, app.Distance, 1e-9)

	// D = |A + I - 1| for every scored package.
	for _, pm := range pms {
		assert.InDelta(t, math.Abs(pm.Abstractness+pm.Instability-1), pm.Distance, 1e-9, pm.Path)
	}
}

func TestIsolatedPackageInstabilityZero(t *testing.T) {
	b := newBuilder()
	b.pkg("domain", types.LayerDomain)
	b.comp("domain", "User", types.KindEntity, types.LayerDomain)

	project := b.build()
	pms := PackageMetrics(project, graph.BuildPackageGraph(project))
	require.Len(t, pms, 1)
	assert.Zero(t, pms[0].Instability, "Ca+Ce = 0 means I = 0")
}

func TestEmptyPackageExcluded(t *testing.T) {
	b := newBuilder()
	b.pkg("domain", types.LayerDomain)
	b.pkg("empty", types.LayerApplication)
	b.comp("domain", "User", types.KindEntity, types.LayerDomain)

	project := b.build()
	pms := PackageMetrics(project, graph.BuildPackageGraph(project))
	require.Len(t, pms, 1)
	assert.Equal(t, "domain", pms[0].Path)
}

func TestConformanceAtCentroidIsPerfect(t *testing.T) {
	m := conformance(0.75, 0.15, centroids[types.LayerDomain])
	require.True(t, m.Defined)
	assert.InDelta(t, 1.0, m.Value, 1e-9)

	// Opposite corner of the region is still within [0,1].
	m = conformance(0.0, 1.0, centroids[types.LayerDomain])
	require.True(t, m.Defined)
	assert.Greater(t, m.Value, 0.0)
	assert.Less(t, m.Value, 1.0)
}

func TestPresence(t *testing.T) {
	b := newBuilder()
	b.pkg("domain", types.LayerDomain)
	b.pkg("util", types.LayerUnclassified)
	b.comp("domain", "User", types.KindEntity, types.LayerDomain)
	cc := b.comp("util", "Logger", types.KindStruct, types.LayerCrossCutting)
	cc.CrossCutting = true
	b.comp("util", "Helper", types.KindStruct, types.LayerUnclassified)
	syn := b.comp("external", "<package>", types.KindStruct, types.LayerExternal)
	syn.Synthetic = true

	score := Dimensions(b.build(), nil)
	require.True(t, score.StructuralPresence.Defined)
	// 2 of 3 real components placed; the synthetic node does not count.
	assert.Equal(t, 67, score.StructuralPresence.Percent())
}

func TestPresenceZeroForEmptyProject(t *testing.T) {
	score := Dimensions(newBuilder().build(), nil)
	require.True(t, score.StructuralPresence.Defined)
	assert.Equal(t, 0, score.StructuralPresence.Percent())
}

func TestComplianceCountsOnlyCrossLayerEdges(t *testing.T) {
	b := newBuilder()
	b.pkg("domain", types.LayerDomain)
	b.pkg("app", types.LayerApplication)
	b.pkg("infra", types.LayerInfrastructure)

	entity := b.comp("domain", "User", types.KindEntity, types.LayerDomain)
	other := b.comp("domain", "Order", types.KindEntity, types.LayerDomain)
	svc := b.comp("app", "UserService", types.KindStruct, types.LayerApplication)
	repo := b.comp("infra", "Repo", types.KindRepository, types.LayerInfrastructure)

	b.edge(svc.ID, entity.ID, types.TargetComponent)    // app -> domain: correct
	b.edge(repo.ID, entity.ID, types.TargetComponent)   // infra -> domain: correct
	b.edge(entity.ID, repo.ID, types.TargetComponent)   // domain -> infra: violation
	b.edge(entity.ID, other.ID, types.TargetComponent)  // same layer: not counted

	score := Dimensions(b.build(), nil)
	require.True(t, score.DependencyCompliance.Defined)
	assert.Equal(t, 67, score.DependencyCompliance.Percent())
}

func TestComplianceUndefinedWithoutCrossLayerEdges(t *testing.T) {
	b := newBuilder()
	b.pkg("domain", types.LayerDomain)
	b.comp("domain", "User", types.KindEntity, types.LayerDomain)

	score := Dimensions(b.build(), nil)
	assert.False(t, score.DependencyCompliance.Defined)
}

func TestExternalEdgesNeverCounted(t *testing.T) {
	b := newBuilder()
	b.pkg("domain", types.LayerDomain)
	entity := b.comp("domain", "User", types.KindEntity, types.LayerDomain)
	ext := b.comp("github.com/google/uuid", "<package>", types.KindStruct, types.LayerExternal)
	ext.Synthetic = true
	b.edge(entity.ID, ext.ID, types.TargetExternal)

	score := Dimensions(b.build(), nil)
	assert.False(t, score.DependencyCompliance.Defined,
		"external targets contribute to no denominator")
}

func TestInterfaceCoverage(t *testing.T) {
	build := func(ports, adapters int) *types.Project {
		b := newBuilder()
		b.pkg("domain", types.LayerDomain)
		b.pkg("infra", types.LayerInfrastructure)
		for i := 0; i < ports; i++ {
			b.comp("domain", "Port"+string(rune('A'+i)), types.KindPort, types.LayerDomain)
		}
		for i := 0; i < adapters; i++ {
			b.comp("infra", "Adapter"+string(rune('A'+i)), types.KindAdapter, types.LayerInfrastructure)
		}
		return b.build()
	}

	score := Dimensions(build(1, 1), nil)
	require.True(t, score.InterfaceCoverage.Defined)
	assert.Equal(t, 100, score.InterfaceCoverage.Percent())

	score = Dimensions(build(1, 2), nil)
	assert.Equal(t, 50, score.InterfaceCoverage.Percent())

	score = Dimensions(build(2, 1), nil)
	assert.Equal(t, 50, score.InterfaceCoverage.Percent())

	// No adapters: absent, never 0 or 100.
	score = Dimensions(build(3, 0), nil)
	assert.False(t, score.InterfaceCoverage.Defined)

	// Adapters but no ports: defined zero.
	score = Dimensions(build(0, 2), nil)
	require.True(t, score.InterfaceCoverage.Defined)
	assert.Equal(t, 0, score.InterfaceCoverage.Percent())
}

func TestOverallGatedByConfidence(t *testing.T) {
	cfg := config.Default()
	score := types.Score{
		StructuralPresence:   types.DefinedMetric(1),
		LayerConformance:     types.DefinedMetric(0.8),
		DependencyCompliance: types.DefinedMetric(1),
		InterfaceCoverage:    types.DefinedMetric(1),
	}

	low := []types.PatternConfidence{{Pattern: PatternDDD, Confidence: 0.4}}
	Overall(&score, low, cfg)
	assert.False(t, score.Overall.Defined)
	assert.NotEmpty(t, score.OverallReason)

	score.OverallReason = ""
	high := []types.PatternConfidence{{Pattern: PatternDDD, Confidence: 0.8}}
	Overall(&score, high, cfg)
	require.True(t, score.Overall.Defined)
	// 1.0 * (0.8*0.4 + 1*0.4 + 1*0.2) = 0.92
	assert.Equal(t, 92, score.Overall.Percent())
}

func TestOverallGatedByPresence(t *testing.T) {
	cfg := config.Default()
	score := types.Score{
		StructuralPresence:   types.DefinedMetric(0),
		DependencyCompliance: types.DefinedMetric(1),
	}
	Overall(&score, []types.PatternConfidence{{Pattern: PatternActiveRecord, Confidence: 1}}, cfg)
	assert.False(t, score.Overall.Defined)
}

func TestOverallReweightsUndefinedDimensions(t *testing.T) {
	cfg := config.Default()
	score := types.Score{
		StructuralPresence:   types.DefinedMetric(1),
		LayerConformance:     types.DefinedMetric(0.5),
		DependencyCompliance: types.Metric{},
		InterfaceCoverage:    types.Metric{},
	}
	Overall(&score, []types.PatternConfidence{{Pattern: PatternDDD, Confidence: 0.6}}, cfg)
	require.True(t, score.Overall.Defined)
	// Only conformance defined: overall = presence * conformance.
	assert.Equal(t, 50, score.Overall.Percent())
}
