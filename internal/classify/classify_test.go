// Copyright (c) 2026 RebelOps. All rights reserved.
// SPDX-License-Identifier: MIT

package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rebelopsio/boundary/internal/config"
	"github.com/rebelopsio/boundary/pkg/types"
)

func defaultClassifier(t *testing.T) *Classifier {
	t.Helper()
	return New(config.Default())
}

func TestClassifyDefaultPatterns(t *testing.T) {
	c := defaultClassifier(t)

	tests := []struct {
		path string
		want types.Layer
	}{
		{"internal/domain/user/entity.go", types.LayerDomain},
		{"internal/application/user/service.go", types.LayerApplication},
		{"internal/infrastructure/postgres/repo.go", types.LayerInfrastructure},
		{"internal/handler/http.go", types.LayerPresentation},
		{"cmd/app/main.go", types.LayerPresentation},
		{"main.go", types.LayerUnclassified},
		{"util/helpers.go", types.LayerUnclassified},
	}
	for _, tt := range tests {
		layer, cc := c.ClassifyPath(tt.path)
		assert.Equal(t, tt.want, layer, tt.path)
		assert.False(t, cc, tt.path)
	}
}

func TestCrossCuttingWinsOverLayers(t *testing.T) {
	cfg := config.Default()
	cfg.Layers.CrossCutting = []string{"**/pkg/log/**"}
	// Matches both a domain glob and cross-cutting; cross-cutting wins.
	cfg.Layers.Domain = append(cfg.Layers.Domain, "**/pkg/log/**")
	c := New(cfg)

	layer, cc := c.ClassifyPath("internal/pkg/log/logger.go")
	assert.True(t, cc)
	assert.Equal(t, types.LayerCrossCutting, layer)
}

func TestOverrideScopedClassification(t *testing.T) {
	cfg := config.Default()
	cfg.Layers.Overrides = []config.LayerOverride{{
		Scope:          "services/auth/**",
		Domain:         []string{"services/auth/core/**"},
		Infrastructure: []string{"services/auth/server/**", "services/auth/adapters/**"},
	}}
	c := New(cfg)

	layer, _ := c.ClassifyPath("services/auth/core/user.go")
	assert.Equal(t, types.LayerDomain, layer)

	layer, _ = c.ClassifyPath("services/auth/server/http.go")
	assert.Equal(t, types.LayerInfrastructure, layer)

	// Outside the scope, global patterns apply.
	layer, _ = c.ClassifyPath("internal/domain/user/entity.go")
	assert.Equal(t, types.LayerDomain, layer)

	// Omitted layers fall back to the global globs inside the scope.
	layer, _ = c.ClassifyPath("services/auth/application/login.go")
	assert.Equal(t, types.LayerApplication, layer)
}

func TestFirstMatchingOverrideWins(t *testing.T) {
	cfg := config.Default()
	cfg.Layers.Domain = nil
	cfg.Layers.Overrides = []config.LayerOverride{
		{Scope: "services/auth/**", Domain: []string{"services/auth/core/**"}},
		{Scope: "services/**", Domain: []string{"services/*/models/**"}},
	}
	c := New(cfg)

	layer, _ := c.ClassifyPath("services/auth/core/user.go")
	assert.Equal(t, types.LayerDomain, layer)

	// The second override's pattern would match, but the first override
	// already claimed the scope.
	layer, _ = c.ClassifyPath("services/auth/models/user.go")
	assert.Equal(t, types.LayerUnclassified, layer)
}

func TestClassifyImport(t *testing.T) {
	c := defaultClassifier(t)

	assert.Equal(t, types.LayerDomain,
		c.ClassifyImport("github.com/example/app/internal/domain/user"))
	assert.Equal(t, types.LayerInfrastructure,
		c.ClassifyImport("github.com/example/app/internal/infrastructure/postgres"))
	assert.Equal(t, types.LayerDomain,
		c.ClassifyImport("crate::domain::user"))
	assert.Equal(t, types.LayerApplication,
		c.ClassifyImport("com.example.application"))
	assert.Equal(t, types.LayerUnclassified,
		c.ClassifyImport("github.com/google/uuid"))
}

func TestModeForOverrides(t *testing.T) {
	cfg := config.Default()
	cfg.Layers.ArchitectureMode = "ddd"
	cfg.Layers.Overrides = []config.LayerOverride{
		{Scope: "legacy/**", ArchitectureMode: "active-record"},
		{Scope: "legacy/billing/**", ArchitectureMode: "service-oriented"},
	}
	c := New(cfg)

	assert.Equal(t, types.ModeDDD, c.ModeFor("internal/domain/user.go"))
	assert.Equal(t, types.ModeActiveRecord, c.ModeFor("legacy/models/user.go"))
	// Deepest matching scope wins.
	assert.Equal(t, types.ModeServiceOriented, c.ModeFor("legacy/billing/invoice.go"))
}

func makeComponent(name, pkg string, kind types.ComponentKind, layer types.Layer) *types.Component {
	return &types.Component{
		ID:      types.NewComponentID(pkg, name),
		Name:    name,
		Package: pkg,
		Kind:    kind,
		Layer:   layer,
	}
}

func TestDeriveKindsPortPromotion(t *testing.T) {
	iface := makeComponent("UserRepository", "internal/domain/user", types.KindInterface, types.LayerDomain)
	appIface := makeComponent("Mailer", "internal/application", types.KindInterface, types.LayerApplication)

	DeriveKinds([]*types.Component{iface, appIface})

	assert.Equal(t, types.KindPort, iface.Kind)
	assert.Equal(t, types.KindInterface, appIface.Kind, "only domain abstractions become ports")
}

func TestDeriveKindsInfrastructure(t *testing.T) {
	port := makeComponent("PaymentProcessor", "internal/domain/pay", types.KindInterface, types.LayerDomain)
	repo := makeComponent("PostgresUserRepository", "internal/infrastructure/postgres", types.KindStruct, types.LayerInfrastructure)
	adapterByImpl := makeComponent("StripeGateway", "internal/infrastructure/stripe", types.KindClass, types.LayerInfrastructure)
	adapterByImpl.Implements = []string{"PaymentProcessor"}
	adapterBySuffix := makeComponent("KafkaAdapter", "internal/infrastructure/kafka", types.KindStruct, types.LayerInfrastructure)
	service := makeComponent("EmailService", "internal/infrastructure/email", types.KindStruct, types.LayerInfrastructure)
	plain := makeComponent("Row", "internal/infrastructure/postgres", types.KindStruct, types.LayerInfrastructure)

	DeriveKinds([]*types.Component{port, repo, adapterByImpl, adapterBySuffix, service, plain})

	assert.Equal(t, types.KindRepository, repo.Kind)
	assert.Equal(t, types.KindAdapter, adapterByImpl.Kind)
	assert.Equal(t, types.KindAdapter, adapterBySuffix.Kind)
	assert.Equal(t, types.KindService, service.Kind)
	assert.Equal(t, types.KindStruct, plain.Kind)
}

func TestDeriveKindsDomain(t *testing.T) {
	entity := makeComponent("User", "internal/domain/user", types.KindStruct, types.LayerDomain)
	entity.Fields = []types.Field{{Name: "ID", Type: "string"}}
	vo := makeComponent("Money", "internal/domain/money", types.KindStruct, types.LayerDomain)
	vo.Fields = []types.Field{{Name: "Amount", Type: "float64"}, {Name: "Currency", Type: "string"}}
	event := makeComponent("PaymentSucceededEvent", "internal/domain/events", types.KindStruct, types.LayerDomain)
	event.Fields = []types.Field{{Name: "PaymentID", Type: "string"}}

	DeriveKinds([]*types.Component{entity, vo, event})

	assert.Equal(t, types.KindEntity, entity.Kind)
	assert.Equal(t, types.KindValueObject, vo.Kind)
	assert.Equal(t, types.KindEvent, event.Kind)
}

func TestDeriveKindsActiveRecord(t *testing.T) {
	tagged := makeComponent("User", "models", types.KindStruct, types.LayerUnclassified)
	tagged.Fields = []types.Field{{Name: "ID", Type: "string", Tags: []string{`db:"id"`}}}

	crud := makeComponent("Order", "models", types.KindStruct, types.LayerUnclassified)
	crud.Methods = []types.Method{{Name: "Save"}, {Name: "Delete"}, {Name: "FindByID", Arity: 1}}

	clean := makeComponent("Report", "internal/domain/report", types.KindStruct, types.LayerDomain)
	clean.Fields = []types.Field{{Name: "ID", Type: "string"}}
	clean.Methods = []types.Method{{Name: "Validate"}}

	DeriveKinds([]*types.Component{tagged, crud, clean})

	assert.True(t, tagged.ActiveRecord)
	assert.True(t, crud.ActiveRecord)
	assert.False(t, clean.ActiveRecord)
}
