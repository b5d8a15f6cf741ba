// Copyright (c) 2026 RebelOps. All rights reserved.
// SPDX-License-Identifier: MIT

// Package classify assigns layers to components and packages from glob
// configuration, and derives architectural kinds once layers are known.
//
// Precedence, first match wins: cross-cutting globs, then the first
// scope-matched override (consulting its layer globs in the order domain,
// application, infrastructure, presentation, falling back to the global
// globs for layers the override omits), then the global globs, then
// external/unclassified.
package classify

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/rebelopsio/boundary/internal/config"
	"github.com/rebelopsio/boundary/pkg/types"
)

// Classifier matches project-root-relative paths (forward slashes) against
// the configured globs.
type Classifier struct {
	layers config.LayersConfig
	mode   types.ArchitectureMode
}

// New builds a classifier from validated configuration.
func New(cfg *config.Config) *Classifier {
	return &Classifier{
		layers: cfg.Layers,
		mode:   cfg.Mode(),
	}
}

func matchAny(patterns []string, path string) bool {
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, path); ok {
			return true
		}
	}
	return false
}

// ClassifyPath classifies a file path. The second result reports
// cross-cutting status, which takes precedence over every layer glob.
func (c *Classifier) ClassifyPath(path string) (types.Layer, bool) {
	path = strings.ReplaceAll(path, "\\", "/")

	if matchAny(c.layers.CrossCutting, path) {
		return types.LayerCrossCutting, true
	}

	for _, o := range c.layers.Overrides {
		if ok, _ := doublestar.Match(o.Scope, path); !ok {
			continue
		}
		return c.classifyWithOverride(&o, path), false
	}

	return c.classifyGlobal(path), false
}

func (c *Classifier) classifyGlobal(path string) types.Layer {
	switch {
	case matchAny(c.layers.Domain, path):
		return types.LayerDomain
	case matchAny(c.layers.Application, path):
		return types.LayerApplication
	case matchAny(c.layers.Infrastructure, path):
		return types.LayerInfrastructure
	case matchAny(c.layers.Presentation, path):
		return types.LayerPresentation
	}
	return types.LayerUnclassified
}

func (c *Classifier) classifyWithOverride(o *config.LayerOverride, path string) types.Layer {
	pick := func(override, global []string) []string {
		if len(override) > 0 {
			return override
		}
		return global
	}
	switch {
	case matchAny(pick(o.Domain, c.layers.Domain), path):
		return types.LayerDomain
	case matchAny(pick(o.Application, c.layers.Application), path):
		return types.LayerApplication
	case matchAny(pick(o.Infrastructure, c.layers.Infrastructure), path):
		return types.LayerInfrastructure
	case matchAny(pick(o.Presentation, c.layers.Presentation), path):
		return types.LayerPresentation
	}
	return types.LayerUnclassified
}

// ClassifyImport classifies an import path string, used for synthetic
// package nodes. Globs are tried against the raw path and against
// prefix/suffix-extended candidates; a lowercase segment heuristic catches
// paths the globs miss.
func (c *Classifier) ClassifyImport(importPath string) types.Layer {
	candidates := []string{
		importPath,
		"**/" + importPath,
		importPath + "/**",
	}
	for _, cand := range candidates {
		if layer, cc := c.ClassifyPath(cand); cc || layer.Classified() {
			if cc {
				return types.LayerCrossCutting
			}
			return layer
		}
	}

	lower := strings.ToLower(strings.NewReplacer("::", "/", ".", "/").Replace(importPath))
	switch {
	case containsSegment(lower, "domain", "entity", "model"):
		return types.LayerDomain
	case containsSegment(lower, "application", "usecase", "service"):
		return types.LayerApplication
	case containsSegment(lower, "infrastructure", "adapter", "repository", "persistence"):
		return types.LayerInfrastructure
	case containsSegment(lower, "presentation", "handler", "api", "cmd"):
		return types.LayerPresentation
	}
	return types.LayerUnclassified
}

func containsSegment(path string, names ...string) bool {
	for _, seg := range strings.Split(path, "/") {
		for _, n := range names {
			if seg == n || seg == n+"s" {
				return true
			}
		}
	}
	return false
}

// ModeFor resolves the architecture mode for a file path: the deepest
// matching override scope that sets one wins, otherwise the global mode.
func (c *Classifier) ModeFor(path string) types.ArchitectureMode {
	path = strings.ReplaceAll(path, "\\", "/")
	mode := c.mode
	depth := -1
	for _, o := range c.layers.Overrides {
		if o.ArchitectureMode == "" {
			continue
		}
		if ok, _ := doublestar.Match(o.Scope, path); !ok {
			continue
		}
		if d := len(o.Scope); d > depth {
			if m, err := types.ParseArchitectureMode(o.ArchitectureMode); err == nil {
				mode, depth = m, d
			}
		}
	}
	return mode
}

// crudMethodNames mark persistence-flavored methods; a concrete type with
// two or more of them behaves as an active record even without field tags.
var crudMethodNames = []string{
	"Load", "Save", "Update", "Delete", "Insert", "Create", "FindByID",
	"FindBy", "Get", "GetAll", "List", "Upsert", "Remove", "Persist", "Fetch",
}

func hasCRUDMethodSet(methods []types.Method) bool {
	count := 0
	for _, m := range methods {
		for _, crud := range crudMethodNames {
			if m.Name == crud || strings.HasPrefix(m.Name, crud) {
				count++
				break
			}
		}
	}
	return count >= 2
}

// DeriveKinds rewrites language kinds into architectural kinds once every
// component has a layer. Operates on the full component set because adapter
// promotion consults the project-wide port list.
func DeriveKinds(components []*types.Component) {
	// First pass: abstract domain types become ports.
	portNames := make(map[string]bool)
	for _, comp := range components {
		if comp.Synthetic {
			continue
		}
		if comp.Abstract() && comp.Layer == types.LayerDomain {
			comp.Kind = types.KindPort
		}
		if comp.Kind == types.KindPort {
			portNames[comp.Name] = true
		}
	}

	for _, comp := range components {
		if comp.Synthetic || comp.Abstract() {
			continue
		}
		if comp.HasPersistenceTags() || hasCRUDMethodSet(comp.Methods) {
			comp.ActiveRecord = true
		}

		switch comp.Layer {
		case types.LayerInfrastructure:
			deriveInfrastructureKind(comp, portNames)
		case types.LayerDomain:
			deriveDomainKind(comp)
		}
	}
}

func deriveInfrastructureKind(comp *types.Component, portNames map[string]bool) {
	if comp.Kind != types.KindStruct && comp.Kind != types.KindClass && comp.Kind != types.KindEnum {
		return
	}
	name := comp.Name
	switch {
	case strings.HasSuffix(name, "Repository") || strings.HasSuffix(name, "Repo"):
		comp.Kind = types.KindRepository
	case implementsAny(comp, portNames) || strings.HasSuffix(name, "Adapter"):
		comp.Kind = types.KindAdapter
	case strings.HasSuffix(name, "Service") || strings.HasSuffix(name, "Svc") ||
		strings.Contains(comp.Package+"/", "/service/"):
		comp.Kind = types.KindService
	}
}

func deriveDomainKind(comp *types.Component) {
	if comp.Kind != types.KindStruct && comp.Kind != types.KindClass {
		return
	}
	switch {
	case strings.HasSuffix(comp.Name, "Event"):
		comp.Kind = types.KindEvent
	case len(comp.Fields) > 0 && !hasIdentityField(comp.Fields):
		comp.Kind = types.KindValueObject
	default:
		comp.Kind = types.KindEntity
	}
}

func implementsAny(comp *types.Component, names map[string]bool) bool {
	for _, impl := range comp.Implements {
		if names[impl] {
			return true
		}
	}
	return false
}

func hasIdentityField(fields []types.Field) bool {
	for _, f := range fields {
		switch strings.ToLower(f.Name) {
		case "id", "uuid", "_id":
			return true
		}
	}
	return false
}
