// Copyright (c) 2026 RebelOps. All rights reserved.
// SPDX-License-Identifier: MIT

// Package graph builds the package-level projection of a project's
// component edges and finds strongly connected components on it. The
// projection is small (hundreds of nodes at most), so an array-indexed
// adjacency list and Tarjan's algorithm are enough.
package graph

import (
	"sort"

	"github.com/rebelopsio/boundary/pkg/types"
)

// PackageGraph is the directed graph of internal, non-cross-cutting
// packages.
type PackageGraph struct {
	Nodes []string
	index map[string]int
	adj   [][]int
}

// BuildPackageGraph projects component edges onto their packages,
// restricted to internal non-cross-cutting packages. Self edges are
// dropped.
func BuildPackageGraph(project *types.Project) *PackageGraph {
	g := &PackageGraph{index: make(map[string]int)}

	for _, pkg := range project.Packages {
		if pkg.CrossCutting {
			continue
		}
		g.index[pkg.Path] = len(g.Nodes)
		g.Nodes = append(g.Nodes, pkg.Path)
	}
	g.adj = make([][]int, len(g.Nodes))

	seen := make(map[[2]int]bool)
	for _, e := range project.Edges {
		src, ok := project.Component(e.From)
		if !ok {
			continue
		}
		tgt, ok := project.Component(e.To)
		if !ok {
			continue
		}
		if e.TargetKind == types.TargetExternal || e.TargetKind == types.TargetCrossCutting {
			continue
		}
		from, ok := g.index[src.Package]
		if !ok {
			continue
		}
		to, ok := g.index[tgt.Package]
		if !ok || from == to {
			continue
		}
		key := [2]int{from, to}
		if seen[key] {
			continue
		}
		seen[key] = true
		g.adj[from] = append(g.adj[from], to)
	}

	for i := range g.adj {
		sort.Ints(g.adj[i])
	}
	return g
}

// Cycles returns every strongly connected component of size >= 2, one entry
// per cycle. The cycle path keeps the DFS visit order, so consecutive
// members follow real adjacency; only the starting point is normalized by
// rotating to the lexicographically smallest package. The cycle list is
// sorted by that starting package.
func (g *PackageGraph) Cycles() [][]string {
	sccs := g.tarjan()

	var cycles [][]string
	for _, scc := range sccs {
		if len(scc) < 2 {
			continue
		}
		// Tarjan pops in reverse DFS order; reverse back to the visit order.
		names := make([]string, len(scc))
		for i, idx := range scc {
			names[len(scc)-1-i] = g.Nodes[idx]
		}
		cycles = append(cycles, rotateToSmallest(names))
	}

	sort.Slice(cycles, func(i, j int) bool { return cycles[i][0] < cycles[j][0] })
	return cycles
}

// tarjan computes strongly connected components iteratively over the
// array-indexed adjacency list.
func (g *PackageGraph) tarjan() [][]int {
	n := len(g.Nodes)
	const unvisited = -1

	ids := make([]int, n)
	low := make([]int, n)
	onStack := make([]bool, n)
	for i := range ids {
		ids[i] = unvisited
	}

	var (
		stack   []int
		sccs    [][]int
		nextID  int
		visitFn func(at int)
	)

	visitFn = func(at int) {
		ids[at] = nextID
		low[at] = nextID
		nextID++
		stack = append(stack, at)
		onStack[at] = true

		for _, to := range g.adj[at] {
			if ids[to] == unvisited {
				visitFn(to)
			}
			if onStack[to] && low[to] < low[at] {
				low[at] = low[to]
			}
		}

		if ids[at] == low[at] {
			var scc []int
			for {
				node := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				onStack[node] = false
				scc = append(scc, node)
				if node == at {
					break
				}
			}
			sccs = append(sccs, scc)
		}
	}

	for i := 0; i < n; i++ {
		if ids[i] == unvisited {
			visitFn(i)
		}
	}
	return sccs
}

// rotateToSmallest rotates a cycle to begin at its smallest member without
// disturbing the traversal order of the remaining members.
func rotateToSmallest(names []string) []string {
	start := 0
	for i, n := range names {
		if n < names[start] {
			start = i
		}
	}
	out := make([]string, 0, len(names))
	out = append(out, names[start:]...)
	out = append(out, names[:start]...)
	return out
}

// Coupling holds afferent and efferent counts per package, over distinct
// internal package pairs.
type Coupling struct {
	Ca map[string]int // incoming: packages that depend on this one
	Ce map[string]int // outgoing: packages this one depends on
}

// BuildCoupling counts distinct package-level dependencies both ways.
func (g *PackageGraph) BuildCoupling() Coupling {
	c := Coupling{Ca: make(map[string]int), Ce: make(map[string]int)}
	for from, tos := range g.adj {
		c.Ce[g.Nodes[from]] = len(tos)
		for _, to := range tos {
			c.Ca[g.Nodes[to]]++
		}
	}
	return c
}
