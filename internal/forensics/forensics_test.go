// Copyright (c) 2026 RebelOps. All rights reserved.
// SPDX-License-Identifier: MIT

package forensics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rebelopsio/boundary/pkg/types"
)

type builder struct {
	packages   map[string]*types.Package
	components []*types.Component
	edges      []types.Edge
}

func newBuilder() *builder {
	return &builder{packages: make(map[string]*types.Package)}
}

func (b *builder) comp(pkg, name string, kind types.ComponentKind, layer types.Layer) *types.Component {
	if _, ok := b.packages[pkg]; !ok {
		b.packages[pkg] = &types.Package{Path: pkg, Layer: layer}
	}
	c := &types.Component{
		ID:       types.NewComponentID(pkg, name),
		Name:     name,
		Package:  pkg,
		Kind:     kind,
		Layer:    layer,
		Location: types.Location{File: pkg + "/" + name + ".go", Line: 1, Column: 1},
	}
	b.components = append(b.components, c)
	b.packages[pkg].Components = append(b.packages[pkg].Components, c.ID)
	return c
}

func (b *builder) result() *types.Result {
	var pkgs []*types.Package
	for _, p := range b.packages {
		pkgs = append(pkgs, p)
	}
	project := types.NewProject("/work/shop", pkgs, b.components, b.edges, nil, len(b.components))
	return &types.Result{Project: project}
}

func TestBuildGroupsComponents(t *testing.T) {
	b := newBuilder()
	b.comp("internal/domain/user", "UserRepository", types.KindPort, types.LayerDomain)
	entity := b.comp("internal/domain/user", "User", types.KindEntity, types.LayerDomain)
	entity.Fields = []types.Field{{Name: "ID", Type: "string"}, {Name: "Price", Type: "Money"}}
	entity.Methods = []types.Method{{Name: "Rename", Arity: 1}, {Name: "Validate", Arity: 0}}
	b.comp("internal/domain/money", "Money", types.KindValueObject, types.LayerDomain)
	b.comp("internal/domain/events", "UserRegisteredEvent", types.KindEvent, types.LayerDomain)
	b.comp("internal/application/user", "UserService", types.KindStruct, types.LayerApplication)
	b.comp("internal/infrastructure/postgres", "PostgresUserRepository", types.KindRepository, types.LayerInfrastructure)

	a := Build(b.result())

	assert.Equal(t, "shop", a.ModuleName)
	require.Len(t, a.Aggregates, 1)
	require.Len(t, a.Ports, 1)
	require.Len(t, a.DomainEvents, 1)
	require.Len(t, a.ApplicationServices, 1)
	require.Len(t, a.Adapters, 1)
	assert.Equal(t, []string{"UserRepository"}, a.Adapters[0].Ports)

	agg := a.Aggregates[0]
	require.Len(t, agg.ValueObjects, 1)
	assert.Equal(t, "Money", agg.ValueObjects[0].Name)
}

func TestDetectPatterns(t *testing.T) {
	entity := &types.Component{
		Name: "Order",
		Fields: []types.Field{
			{Name: "ID", Type: "string"},
		},
		Methods: []types.Method{
			{Name: "NewOrder", Arity: 1},
			{Name: "AddLine", Arity: 2},
		},
	}

	byName := make(map[string]bool)
	for _, p := range detectPatterns(entity) {
		byName[p.Name] = p.Detected
	}

	assert.True(t, byName["Rich domain model (2 methods)"])
	assert.True(t, byName["Factory method"])
	assert.True(t, byName["Identity field"])
	assert.True(t, byName["Encapsulation (methods)"])

	bare := &types.Component{Name: "Tag"}
	for _, p := range detectPatterns(bare) {
		assert.False(t, p.Detected, p.Name)
	}
}

func TestAuditCategorizesDependencies(t *testing.T) {
	b := newBuilder()
	entity := b.comp("internal/domain/user", "User", types.KindEntity, types.LayerDomain)
	other := b.comp("internal/domain/money", "Money", types.KindValueObject, types.LayerDomain)
	infra := b.comp("internal/infrastructure/postgres", "DB", types.KindStruct, types.LayerInfrastructure)
	ext := b.comp("github.com/google/uuid", types.PackageSentinel, types.KindStruct, types.LayerExternal)
	ext.Synthetic = true

	b.edges = []types.Edge{
		{From: entity.ID, To: other.ID, TargetKind: types.TargetComponent, ImportPath: "shop/internal/domain/money"},
		{From: entity.ID, To: infra.ID, TargetKind: types.TargetComponent, ImportPath: "shop/internal/infrastructure/postgres"},
		{From: entity.ID, To: ext.ID, TargetKind: types.TargetExternal, ImportPath: "github.com/google/uuid"},
	}

	a := Build(b.result())
	require.Len(t, a.Aggregates, 1)

	audit := a.Aggregates[0].Audit
	assert.Equal(t, []string{"shop/internal/domain/money"}, audit.DomainImports)
	assert.Equal(t, []string{"github.com/google/uuid"}, audit.ExternalImports)
	assert.Equal(t, []string{"shop/internal/infrastructure/postgres"}, audit.InfrastructureLeaks)
	assert.False(t, audit.Clean)
}

func TestImprovements(t *testing.T) {
	b := newBuilder()
	anemic := b.comp("internal/domain/user", "User", types.KindEntity, types.LayerDomain)
	anemic.Fields = []types.Field{{Name: "ID", Type: "string"}}
	b.comp("internal/domain/pay", "PaymentProcessor", types.KindPort, types.LayerDomain)
	b.comp("internal/infrastructure/kafka", "EventBusAdapter", types.KindAdapter, types.LayerInfrastructure)

	a := Build(b.result())

	joined := ""
	for _, s := range a.Improvements {
		joined += s + "\n"
	}
	assert.Contains(t, joined, "Anemic domain model: `User`")
	assert.Contains(t, joined, "No domain events found")
	assert.Contains(t, joined, "Missing port interface for adapter `EventBusAdapter`")
	assert.Contains(t, joined, "Port `PaymentProcessor` has no known adapter")
}

func TestCleanProjectFewImprovements(t *testing.T) {
	b := newBuilder()
	entity := b.comp("internal/domain/user", "User", types.KindEntity, types.LayerDomain)
	entity.Methods = []types.Method{{Name: "Rename", Arity: 1}}
	b.comp("internal/domain/events", "UserRenamedEvent", types.KindEvent, types.LayerDomain)
	b.comp("internal/domain/user", "UserRepository", types.KindPort, types.LayerDomain)
	b.comp("internal/infrastructure/postgres", "PostgresUserRepository", types.KindRepository, types.LayerInfrastructure)

	a := Build(b.result())
	assert.Empty(t, a.Improvements)
}
