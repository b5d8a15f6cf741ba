// Copyright (c) 2026 RebelOps. All rights reserved.
// SPDX-License-Identifier: MIT

package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rebelopsio/boundary/pkg/types"
)

// layerOrder fixes the rendering order for diagrams.
var layerOrder = []types.Layer{
	types.LayerPresentation,
	types.LayerApplication,
	types.LayerInfrastructure,
	types.LayerDomain,
}

// packageEdges collapses component edges to distinct internal package
// pairs, sorted.
func packageEdges(project *types.Project) [][2]string {
	seen := make(map[[2]string]bool)
	var out [][2]string
	for _, e := range project.Edges {
		if e.TargetKind == types.TargetExternal {
			continue
		}
		src, ok := project.Component(e.From)
		if !ok {
			continue
		}
		tgt, ok := project.Component(e.To)
		if !ok || src.Package == tgt.Package {
			continue
		}
		key := [2]string{src.Package, tgt.Package}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, key)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i][0] != out[j][0] {
			return out[i][0] < out[j][0]
		}
		return out[i][1] < out[j][1]
	})
	return out
}

// MermaidLayers renders a layer diagram with per-layer package subgraphs.
func MermaidLayers(project *types.Project) string {
	var b strings.Builder
	b.WriteString("graph TD\n")

	byLayer := make(map[types.Layer][]string)
	for _, pkg := range project.Packages {
		if pkg.CrossCutting {
			continue
		}
		byLayer[pkg.Layer] = append(byLayer[pkg.Layer], pkg.Path)
	}

	for _, layer := range layerOrder {
		pkgs := byLayer[layer]
		if len(pkgs) == 0 {
			continue
		}
		sort.Strings(pkgs)
		fmt.Fprintf(&b, "    subgraph %s\n", layer)
		for _, p := range pkgs {
			fmt.Fprintf(&b, "        %s[%q]\n", mermaidID(p), p)
		}
		b.WriteString("    end\n")
	}

	for _, e := range packageEdges(project) {
		fmt.Fprintf(&b, "    %s --> %s\n", mermaidID(e[0]), mermaidID(e[1]))
	}
	return b.String()
}

// MermaidDependencies renders the raw package dependency flow.
func MermaidDependencies(project *types.Project) string {
	var b strings.Builder
	b.WriteString("graph LR\n")
	for _, e := range packageEdges(project) {
		fmt.Fprintf(&b, "    %s[%q] --> %s[%q]\n",
			mermaidID(e[0]), e[0], mermaidID(e[1]), e[1])
	}
	return b.String()
}

func mermaidID(path string) string {
	r := strings.NewReplacer("/", "_", ".", "_", "-", "_", ":", "_")
	return "p_" + r.Replace(path)
}

// DOT renders the package graph for Graphviz, clustered by layer.
func DOT(project *types.Project) string {
	var b strings.Builder
	b.WriteString("digraph boundary {\n")
	b.WriteString("    rankdir=TB;\n    node [shape=box];\n")

	byLayer := make(map[types.Layer][]string)
	for _, pkg := range project.Packages {
		if pkg.CrossCutting {
			continue
		}
		byLayer[pkg.Layer] = append(byLayer[pkg.Layer], pkg.Path)
	}

	for i, layer := range layerOrder {
		pkgs := byLayer[layer]
		if len(pkgs) == 0 {
			continue
		}
		sort.Strings(pkgs)
		fmt.Fprintf(&b, "    subgraph cluster_%d {\n        label=%q;\n", i, layer.String())
		for _, p := range pkgs {
			fmt.Fprintf(&b, "        %q;\n", p)
		}
		b.WriteString("    }\n")
	}

	for _, e := range packageEdges(project) {
		fmt.Fprintf(&b, "    %q -> %q;\n", e[0], e[1])
	}
	b.WriteString("}\n")
	return b.String()
}
