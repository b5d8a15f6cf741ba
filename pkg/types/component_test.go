// Copyright (c) 2026 RebelOps. All rights reserved.
// SPDX-License-Identifier: MIT

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayerDepth(t *testing.T) {
	assert.Equal(t, 0, LayerDomain.Depth())
	assert.Equal(t, 1, LayerApplication.Depth())
	assert.Equal(t, 2, LayerInfrastructure.Depth())
	assert.Equal(t, 3, LayerPresentation.Depth())
	assert.Equal(t, -1, LayerCrossCutting.Depth())
	assert.Equal(t, -1, LayerUnclassified.Depth())
}

func TestViolatesDependencyOn(t *testing.T) {
	// Inner depending on outer is a violation.
	assert.True(t, LayerDomain.ViolatesDependencyOn(LayerApplication))
	assert.True(t, LayerDomain.ViolatesDependencyOn(LayerInfrastructure))
	assert.True(t, LayerDomain.ViolatesDependencyOn(LayerPresentation))
	assert.True(t, LayerApplication.ViolatesDependencyOn(LayerInfrastructure))
	assert.True(t, LayerApplication.ViolatesDependencyOn(LayerPresentation))
	assert.True(t, LayerInfrastructure.ViolatesDependencyOn(LayerPresentation))

	// Same layer is fine.
	assert.False(t, LayerDomain.ViolatesDependencyOn(LayerDomain))
	assert.False(t, LayerInfrastructure.ViolatesDependencyOn(LayerInfrastructure))

	// Outer depending on inner is the intended direction.
	assert.False(t, LayerInfrastructure.ViolatesDependencyOn(LayerDomain))
	assert.False(t, LayerApplication.ViolatesDependencyOn(LayerDomain))
	assert.False(t, LayerPresentation.ViolatesDependencyOn(LayerDomain))

	// Unclassified endpoints never violate.
	assert.False(t, LayerUnclassified.ViolatesDependencyOn(LayerPresentation))
	assert.False(t, LayerDomain.ViolatesDependencyOn(LayerExternal))
}

func TestSeverityOrderingAndParse(t *testing.T) {
	assert.True(t, SeverityInfo < SeverityWarning)
	assert.True(t, SeverityWarning < SeverityError)

	for input, want := range map[string]Severity{
		"info":    SeverityInfo,
		"warning": SeverityWarning,
		"warn":    SeverityWarning,
		"error":   SeverityError,
		"ERROR":   SeverityError,
	} {
		got, err := ParseSeverity(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	_, err := ParseSeverity("critical")
	assert.Error(t, err)
}

func TestComponentID(t *testing.T) {
	id := NewComponentID("internal/domain/user", "User")
	assert.Equal(t, ComponentID("internal/domain/user::User"), id)
	assert.Equal(t, ComponentID("internal/domain/user::<package>"), PackageID("internal/domain/user"))
}

func TestKindAbstract(t *testing.T) {
	assert.True(t, KindInterface.Abstract())
	assert.True(t, KindTrait.Abstract())
	assert.True(t, KindAbstractClass.Abstract())
	assert.True(t, KindPort.Abstract())
	assert.False(t, KindStruct.Abstract())
	assert.False(t, KindClass.Abstract())
	assert.False(t, KindEnum.Abstract())
	assert.False(t, KindRepository.Abstract())
}

func TestPersistenceTags(t *testing.T) {
	c := &Component{Fields: []Field{{Name: "ID", Type: "string", Tags: []string{`bson:"_id"`}}}}
	assert.True(t, c.HasPersistenceTags())

	c = &Component{Fields: []Field{{Name: "Name", Type: "string", Tags: []string{`json:"name"`}}}}
	assert.False(t, c.HasPersistenceTags())

	c = &Component{Annotations: []string{"@Entity"}}
	assert.True(t, c.HasPersistenceTags())
}

func TestSortViolationsTotalOrder(t *testing.T) {
	vs := []Violation{
		{Kind: ViolationMissingPort, Location: Location{File: "b.go", Line: 2, Column: 1}},
		{Kind: ViolationLayerBoundary, Location: Location{File: "a.go", Line: 9, Column: 1}},
		{Kind: ViolationCircularDependency, Location: Location{File: "a.go", Line: 9, Column: 1}},
		{Kind: ViolationLayerBoundary, Location: Location{File: "a.go", Line: 3, Column: 4}},
	}
	SortViolations(vs)

	assert.Equal(t, "a.go", vs[0].Location.File)
	assert.Equal(t, 3, vs[0].Location.Line)
	// Same location sorts by kind name.
	assert.Equal(t, ViolationCircularDependency, vs[1].Kind)
	assert.Equal(t, ViolationLayerBoundary, vs[2].Kind)
	assert.Equal(t, "b.go", vs[3].Location.File)
}

func TestParseArchitectureMode(t *testing.T) {
	for _, valid := range []string{"ddd", "active-record", "service-oriented", ""} {
		_, err := ParseArchitectureMode(valid)
		assert.NoError(t, err, valid)
	}
	_, err := ParseArchitectureMode("microservices")
	assert.Error(t, err)
}

func TestMetricPercentAndJSON(t *testing.T) {
	m := DefinedMetric(0.666)
	assert.Equal(t, 67, m.Percent())

	clamped := DefinedMetric(1.2)
	assert.Equal(t, 100, clamped.Percent())

	var undef Metric
	b, err := undef.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, "null", string(b))
}
