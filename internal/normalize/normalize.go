// Copyright (c) 2026 RebelOps. All rights reserved.
// SPDX-License-Identifier: MIT

// Package normalize merges per-file parse results into a single immutable
// Project: canonical component ids, package aggregation, synthetic nodes
// for targets that were imported but never extracted, and deduplicated
// edges. Files are sorted by path before merging so the output is
// independent of discovery order.
package normalize

import (
	"path"
	"sort"
	"strings"

	"github.com/rebelopsio/boundary/internal/classify"
	"github.com/rebelopsio/boundary/internal/parser"
	"github.com/rebelopsio/boundary/pkg/types"
)

// Merge builds a Project from parsed files. diags carries per-file parse
// failures recorded by the engine; they are attached to the project as data.
func Merge(root string, files []*parser.ParsedFile, cls *classify.Classifier, diags []types.Diagnostic) *types.Project {
	sorted := make([]*parser.ParsedFile, len(files))
	copy(sorted, files)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Path < sorted[j].Path })

	n := &merger{
		cls:        cls,
		components: make(map[types.ComponentID]*types.Component),
		packages:   make(map[string]*pkgAccum),
		edgeSeen:   make(map[[2]types.ComponentID]bool),
	}

	for _, f := range sorted {
		n.addComponents(f)
	}
	classify.DeriveKinds(n.ordered)
	for _, f := range sorted {
		n.addEdges(f)
	}

	return n.finish(root, len(sorted), diags)
}

type pkgAccum struct {
	pkg     *types.Package
	imports map[string]bool
}

type merger struct {
	cls        *classify.Classifier
	components map[types.ComponentID]*types.Component
	ordered    []*types.Component
	packages   map[string]*pkgAccum
	edges      []types.Edge
	edgeSeen   map[[2]types.ComponentID]bool
}

// addComponents registers every component of a file under its canonical id.
// The first declaration of an id wins; later duplicates merge their methods.
func (n *merger) addComponents(f *parser.ParsedFile) {
	layer, cc := n.cls.ClassifyPath(f.Path)
	mode := n.cls.ModeFor(f.Path)
	pkg := n.ensurePackage(f.Package, layer, cc, mode)

	for _, raw := range f.Components {
		id := types.NewComponentID(f.Package, raw.Name)
		if existing, ok := n.components[id]; ok {
			existing.Methods = append(existing.Methods, raw.Methods...)
			continue
		}
		comp := &types.Component{
			ID:           id,
			Name:         raw.Name,
			Package:      f.Package,
			Kind:         raw.Kind,
			Layer:        layer,
			CrossCutting: cc,
			Mode:         mode,
			Location:     raw.Location,
			Methods:      raw.Methods,
			Fields:       raw.Fields,
			Annotations:  raw.Annotations,
			Implements:   raw.Implements,
		}
		n.components[id] = comp
		n.ordered = append(n.ordered, comp)
		pkg.pkg.Components = append(pkg.pkg.Components, id)
	}
}

func (n *merger) ensurePackage(pkgPath string, layer types.Layer, cc bool, mode types.ArchitectureMode) *pkgAccum {
	if p, ok := n.packages[pkgPath]; ok {
		return p
	}
	p := &pkgAccum{
		pkg: &types.Package{
			Path:         pkgPath,
			Layer:        layer,
			CrossCutting: cc,
			Mode:         mode,
		},
		imports: make(map[string]bool),
	}
	n.packages[pkgPath] = p
	return p
}

// addEdges resolves each import of a file and emits one deduplicated edge
// per (source component, target).
func (n *merger) addEdges(f *parser.ParsedFile) {
	pkg := n.packages[f.Package]

	sources := make([]types.ComponentID, 0, len(f.Components))
	for _, raw := range f.Components {
		sources = append(sources, types.NewComponentID(f.Package, raw.Name))
	}

	for _, imp := range f.Imports {
		pkg.imports[imp.Path] = true

		target, kind := n.resolveTarget(f, imp)
		if target == "" {
			continue
		}

		if imp.Init {
			initID := n.ensureInit(f.Package)
			n.emit(initID, target, kind, imp)
			continue
		}

		for _, src := range sources {
			// A component importing its own package is not a dependency.
			if comp := n.components[target]; comp != nil && comp.Package == f.Package {
				continue
			}
			n.emit(src, target, kind, imp)
		}
	}
}

func (n *merger) emit(src, target types.ComponentID, kind types.TargetKind, imp parser.RawImport) {
	key := [2]types.ComponentID{src, target}
	if n.edgeSeen[key] {
		return
	}
	n.edgeSeen[key] = true
	n.edges = append(n.edges, types.Edge{
		From:       src,
		To:         target,
		TargetKind: kind,
		ImportPath: imp.Path,
		Init:       imp.Init,
		Location:   imp.Location,
	})
}

// resolveTarget maps an import to a component id plus target kind, creating
// synthetic nodes on demand. Returns "" to drop the edge (self-import).
func (n *merger) resolveTarget(f *parser.ParsedFile, imp parser.RawImport) (types.ComponentID, types.TargetKind) {
	pkgPath, ok := n.resolveInternalPackage(f, imp.Path)
	if ok {
		if pkgPath == f.Package && imp.Symbol == "" {
			return "", types.TargetPackage
		}
		acc := n.packages[pkgPath]

		if imp.Symbol != "" {
			if comp, found := n.components[types.NewComponentID(pkgPath, imp.Symbol)]; found {
				if comp.Package == f.Package {
					return "", types.TargetComponent
				}
				if comp.CrossCutting {
					return comp.ID, types.TargetCrossCutting
				}
				return comp.ID, types.TargetComponent
			}
		}

		id := n.ensureSynthetic(pkgPath, acc.pkg.Layer, acc.pkg.CrossCutting)
		if acc.pkg.CrossCutting {
			return id, types.TargetCrossCutting
		}
		return id, types.TargetPackage
	}

	if projectInternal(imp.Path) {
		// Points into the project but nothing was extracted there.
		id := n.ensureSynthetic(normalizeImportPath(imp.Path), types.LayerUnclassified, false)
		return id, types.TargetPackage
	}

	id := n.ensureSynthetic(imp.Path, types.LayerExternal, false)
	return id, types.TargetExternal
}

// ensureSynthetic creates the <package> placeholder node for a path.
func (n *merger) ensureSynthetic(pkgPath string, layer types.Layer, cc bool) types.ComponentID {
	id := types.PackageID(pkgPath)
	if _, ok := n.components[id]; ok {
		return id
	}
	comp := &types.Component{
		ID:           id,
		Name:         types.PackageSentinel,
		Package:      pkgPath,
		Layer:        layer,
		CrossCutting: cc,
		Synthetic:    true,
	}
	if layer == types.LayerUnclassified && !cc {
		// Give unresolved internal targets their best-effort layer so layer
		// checks still see domain -> infrastructure through them.
		comp.Layer = n.cls.ClassifyImport(pkgPath)
	}
	n.components[id] = comp
	n.ordered = append(n.ordered, comp)
	return id
}

// ensureInit creates the <init> sentinel component for a package.
func (n *merger) ensureInit(pkgPath string) types.ComponentID {
	id := types.NewComponentID(pkgPath, types.InitSentinel)
	if _, ok := n.components[id]; ok {
		return id
	}
	acc := n.packages[pkgPath]
	comp := &types.Component{
		ID:           id,
		Name:         types.InitSentinel,
		Package:      pkgPath,
		Kind:         types.KindFunction,
		Layer:        acc.pkg.Layer,
		CrossCutting: acc.pkg.CrossCutting,
		Mode:         acc.pkg.Mode,
		Synthetic:    true,
	}
	n.components[id] = comp
	n.ordered = append(n.ordered, comp)
	return id
}

// resolveInternalPackage maps an import path onto a known package path.
// Handles Go module prefixes (import ends with the package path), Java and
// Rust roots (package path ends with the mapped import), and TypeScript
// relative specifiers resolved against the importing file.
func (n *merger) resolveInternalPackage(f *parser.ParsedFile, importPath string) (string, bool) {
	candidates := []string{normalizeImportPath(importPath)}

	if strings.HasPrefix(importPath, ".") {
		resolved := path.Clean(path.Join(path.Dir(f.Path), importPath))
		candidates = []string{resolved, path.Dir(resolved)}
	}

	best := ""
	for _, cand := range candidates {
		if cand == "" || cand == "." {
			continue
		}
		for pkgPath := range n.packages {
			if !matchesPackage(cand, pkgPath) {
				continue
			}
			if len(pkgPath) > len(best) || (len(pkgPath) == len(best) && pkgPath < best) {
				best = pkgPath
			}
		}
		if best != "" {
			return best, true
		}
	}
	return "", false
}

func matchesPackage(cand, pkgPath string) bool {
	return cand == pkgPath ||
		strings.HasSuffix(cand, "/"+pkgPath) ||
		strings.HasSuffix(pkgPath, "/"+cand)
}

// normalizeImportPath converts language separators to slashes and strips
// crate/self roots.
func normalizeImportPath(importPath string) string {
	p := strings.NewReplacer("::", "/", ".", "/").Replace(importPath)
	for _, prefix := range []string{"crate/", "self/", "super/"} {
		p = strings.TrimPrefix(p, prefix)
	}
	return strings.Trim(p, "/")
}

// projectInternal reports whether an unresolved import still points inside
// the project (relative specifiers and crate-local paths).
func projectInternal(importPath string) bool {
	return strings.HasPrefix(importPath, ".") ||
		strings.HasPrefix(importPath, "crate::") ||
		strings.HasPrefix(importPath, "super::") ||
		strings.HasPrefix(importPath, "self::")
}

// finish sorts everything and freezes the project.
func (n *merger) finish(root string, fileCount int, diags []types.Diagnostic) *types.Project {
	pkgPaths := make([]string, 0, len(n.packages))
	for p := range n.packages {
		pkgPaths = append(pkgPaths, p)
	}
	sort.Strings(pkgPaths)

	packages := make([]*types.Package, 0, len(pkgPaths))
	for _, p := range pkgPaths {
		acc := n.packages[p]
		sort.Slice(acc.pkg.Components, func(i, j int) bool {
			return acc.pkg.Components[i] < acc.pkg.Components[j]
		})
		imports := make([]string, 0, len(acc.imports))
		for imp := range acc.imports {
			imports = append(imports, imp)
		}
		sort.Strings(imports)
		acc.pkg.Imports = imports
		packages = append(packages, acc.pkg)
	}

	components := make([]*types.Component, len(n.ordered))
	copy(components, n.ordered)
	sort.Slice(components, func(i, j int) bool { return components[i].ID < components[j].ID })

	sort.Slice(n.edges, func(i, j int) bool {
		if n.edges[i].From != n.edges[j].From {
			return n.edges[i].From < n.edges[j].From
		}
		return n.edges[i].To < n.edges[j].To
	})

	return types.NewProject(root, packages, components, n.edges, diags, fileCount)
}
