// Copyright (c) 2026 RebelOps. All rights reserved.
// SPDX-License-Identifier: MIT

package graph

import (
	"math"
	"sort"
)

const (
	defaultDamping   = 0.85
	defaultMaxIter   = 100
	defaultTolerance = 1e-6
)

// PackageRank is a package with its centrality score.
type PackageRank struct {
	Path  string
	Score float64
}

// Centrality ranks packages by a PageRank-style walk over the package
// graph, highest first. Reports use it to surface coupling hubs; it feeds
// no score dimension.
func (g *PackageGraph) Centrality() []PackageRank {
	n := len(g.Nodes)
	if n == 0 {
		return nil
	}

	rank := make([]float64, n)
	for i := range rank {
		rank[i] = 1.0 / float64(n)
	}

	newRank := make([]float64, n)
	for iter := 0; iter < defaultMaxIter; iter++ {
		base := (1.0 - defaultDamping) / float64(n)
		for i := range newRank {
			newRank[i] = base
		}

		for i := 0; i < n; i++ {
			if len(g.adj[i]) == 0 {
				// Dangling node: redistribute evenly.
				share := defaultDamping * rank[i] / float64(n)
				for j := range newRank {
					newRank[j] += share
				}
				continue
			}
			share := defaultDamping * rank[i] / float64(len(g.adj[i]))
			for _, to := range g.adj[i] {
				newRank[to] += share
			}
		}

		diff := 0.0
		for i := range rank {
			diff += math.Abs(newRank[i] - rank[i])
		}
		copy(rank, newRank)
		if diff < defaultTolerance {
			break
		}
	}

	ranked := make([]PackageRank, n)
	for i, node := range g.Nodes {
		ranked[i] = PackageRank{Path: node, Score: rank[i]}
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Path < ranked[j].Path
	})
	return ranked
}
