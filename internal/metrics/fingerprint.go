// Copyright (c) 2026 RebelOps. All rights reserved.
// SPDX-License-Identifier: MIT

package metrics

import (
	"sort"

	"github.com/rebelopsio/boundary/pkg/types"
)

// Pattern names as reported.
const (
	PatternDDD          = "DDD/Hexagonal"
	PatternActiveRecord = "Active Record"
	PatternFlatCRUD     = "Flat CRUD"
	PatternAnemicDomain = "Anemic Domain"
	PatternServiceLayer = "Service Layer"
)

// fingerprintFacts is everything the pattern signals consume, computed in
// one pass over the project.
type fingerprintFacts struct {
	packagesByLayer map[types.Layer]int
	realPackages    int
	domainMeanA     float64
	domainPackages  int
	ports           int
	portNames       []string
	adapters        []string
	abstractTypes   int
	classified      int
	activeRecords   int
	domainActive    int
	inwardBad       int
	appBusiness     int
	domainBusiness  int
	appToInfraEdges int
}

func gatherFacts(project *types.Project, pkgMetrics []types.PackageMetrics) fingerprintFacts {
	f := fingerprintFacts{packagesByLayer: make(map[types.Layer]int)}

	aSum := 0.0
	for _, pm := range pkgMetrics {
		f.realPackages++
		f.packagesByLayer[pm.Layer]++
		if pm.Layer == types.LayerDomain {
			aSum += pm.Abstractness
			f.domainPackages++
		}
	}
	if f.domainPackages > 0 {
		f.domainMeanA = aSum / float64(f.domainPackages)
	}

	for _, comp := range project.Components {
		if comp.Synthetic || comp.CrossCutting {
			continue
		}
		if comp.Abstract() {
			f.abstractTypes++
		}
		if comp.Layer.Classified() {
			f.classified++
		}
		if comp.Kind == types.KindPort && comp.Layer == types.LayerDomain {
			f.ports++
			f.portNames = append(f.portNames, comp.Name)
		}
		if (comp.Kind == types.KindAdapter || comp.Kind == types.KindRepository) &&
			comp.Layer == types.LayerInfrastructure {
			f.adapters = append(f.adapters, comp.Name)
		}
		if comp.ActiveRecord {
			f.activeRecords++
			if comp.Layer == types.LayerDomain {
				f.domainActive++
			}
		}
		businessMethods := 0
		for _, m := range comp.Methods {
			if m.Arity >= 1 {
				businessMethods++
			}
		}
		switch comp.Layer {
		case types.LayerApplication:
			f.appBusiness += businessMethods
		case types.LayerDomain:
			f.domainBusiness += businessMethods
		}
	}

	for _, e := range project.Edges {
		from, to, ok := classifiedEndpoints(project, e)
		if !ok {
			continue
		}
		if from.ViolatesDependencyOn(to) {
			f.inwardBad++
		}
		if from == types.LayerApplication && to == types.LayerInfrastructure {
			f.appToInfraEdges++
		}
	}

	return f
}

// Fingerprints scores every pattern and returns them sorted by confidence,
// highest first, with a stable name tie-break.
func Fingerprints(project *types.Project, pkgMetrics []types.PackageMetrics) []types.PatternConfidence {
	f := gatherFacts(project, pkgMetrics)

	patterns := []types.PatternConfidence{
		{Pattern: PatternDDD, Confidence: f.dddConfidence()},
		{Pattern: PatternActiveRecord, Confidence: f.activeRecordConfidence()},
		{Pattern: PatternFlatCRUD, Confidence: f.flatCRUDConfidence()},
		{Pattern: PatternAnemicDomain, Confidence: f.anemicConfidence()},
		{Pattern: PatternServiceLayer, Confidence: f.serviceLayerConfidence()},
	}

	sort.SliceStable(patterns, func(i, j int) bool {
		if patterns[i].Confidence != patterns[j].Confidence {
			return patterns[i].Confidence > patterns[j].Confidence
		}
		return patterns[i].Pattern < patterns[j].Pattern
	})
	return patterns
}

func (f *fingerprintFacts) dddConfidence() float64 {
	c := 0.0
	if f.packagesByLayer[types.LayerDomain] > 0 {
		c += 0.2
	}
	if f.packagesByLayer[types.LayerApplication] > 0 {
		c += 0.2
	}
	if f.packagesByLayer[types.LayerInfrastructure] > 0 {
		c += 0.2
	}
	if f.domainPackages > 0 && f.domainMeanA >= 0.5 {
		c += 0.2
	}
	if f.portWithAdapter() {
		c += 0.2
	}
	if f.inwardBad == 0 {
		c += 0.2
	}
	return min(c, 1.0)
}

func (f *fingerprintFacts) portWithAdapter() bool {
	for _, adapter := range f.adapters {
		if types.AdapterHasPort(adapter, f.portNames) {
			return true
		}
	}
	return false
}

func (f *fingerprintFacts) activeRecordConfidence() float64 {
	c := 0.0
	// Persistence-annotated components count as domain bearers when they sit
	// in the domain layer, or when the project has no classified structure
	// at all (a bare models/ directory).
	if f.domainActive > 0 || (f.classified == 0 && f.activeRecords > 0) {
		c += 0.5
	}
	if f.ports == 0 {
		c += 0.3
	}
	if f.packagesByLayer[types.LayerInfrastructure] == 0 {
		c += 0.2
	}
	return c
}

func (f *fingerprintFacts) flatCRUDConfidence() float64 {
	c := 0.0
	if f.realPackages <= 2 {
		c += 0.5
	}
	if f.abstractTypes == 0 {
		c += 0.3
	}
	if f.classified == 0 {
		c += 0.2
	}
	return c
}

func (f *fingerprintFacts) anemicConfidence() float64 {
	c := 0.0
	if f.domainPackages > 0 {
		c += 0.2
	}
	if f.domainPackages > 0 && f.domainMeanA == 0 {
		c += 0.4
	}
	if f.appBusiness > 0 && f.appBusiness > f.domainBusiness {
		c += 0.4
	}
	return c
}

func (f *fingerprintFacts) serviceLayerConfidence() float64 {
	c := 0.0
	layers := 0
	for _, l := range []types.Layer{
		types.LayerDomain, types.LayerApplication,
		types.LayerInfrastructure, types.LayerPresentation,
	} {
		if f.packagesByLayer[l] > 0 {
			layers++
		}
	}
	if layers >= 2 {
		c += 0.3
	}
	if f.ports == 0 {
		c += 0.4
	}
	if f.appToInfraEdges > 0 {
		c += 0.3
	}
	return c
}
