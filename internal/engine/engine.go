// Copyright (c) 2026 RebelOps. All rights reserved.
// SPDX-License-Identifier: MIT

// Package engine runs the analysis pipeline: discover source files, parse
// them on a bounded worker pool, then merge, classify, score, and detect
// violations single-threaded on the merged project. Parsing is the only
// parallel stage; everything downstream is a deterministic function of the
// sorted merge.
package engine

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"

	"github.com/rebelopsio/boundary/internal/classify"
	"github.com/rebelopsio/boundary/internal/config"
	"github.com/rebelopsio/boundary/internal/graph"
	"github.com/rebelopsio/boundary/internal/log"
	"github.com/rebelopsio/boundary/internal/metrics"
	"github.com/rebelopsio/boundary/internal/normalize"
	"github.com/rebelopsio/boundary/internal/parser"
	"github.com/rebelopsio/boundary/internal/violations"
	"github.com/rebelopsio/boundary/pkg/types"
)

// skipDirs are never descended into during discovery.
var skipDirs = map[string]bool{
	".git":         true,
	"vendor":       true,
	"node_modules": true,
	"target":       true,
	"dist":         true,
	"build":        true,
	".idea":        true,
	".vscode":      true,
}

// Engine analyzes one project root with a fixed configuration.
type Engine struct {
	cfg     *config.Config
	workers int
}

// New builds an engine. The worker count defaults to the CPU count.
func New(cfg *config.Config) *Engine {
	return &Engine{cfg: cfg, workers: runtime.NumCPU()}
}

// Analyze runs the full pipeline over root and returns the immutable
// result. Per-file parse failures become diagnostics, not errors; only an
// unreadable root (ErrIO), an unknown configured language (ErrConfig), or a
// failed file walk fails the run.
func (e *Engine) Analyze(ctx context.Context, root string) (*types.Result, error) {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", types.ErrIO, root)
	}

	parsers, err := parser.All(e.cfg.Project.Languages)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrConfig, err)
	}

	files, err := e.discover(root, parsers)
	if err != nil {
		return nil, err
	}

	parsed, diags := e.parseAll(ctx, root, files)

	cls := classify.New(e.cfg)
	project := normalize.Merge(root, parsed, cls, diags)

	pg := graph.BuildPackageGraph(project)
	pkgMetrics := metrics.PackageMetrics(project, pg)
	patterns := metrics.Fingerprints(project, pkgMetrics)
	score := metrics.Dimensions(project, pkgMetrics)
	metrics.Overall(&score, patterns, e.cfg)

	realComponents := 0
	for _, c := range project.Components {
		if !c.Synthetic {
			realComponents++
		}
	}

	return &types.Result{
		Project:           project,
		Score:             score,
		Patterns:          patterns,
		TopPattern:        patterns[0].Pattern,
		Violations:        violations.Detect(project, pg, e.cfg),
		PackageMetrics:    pkgMetrics,
		ComponentsByLayer: metrics.ComponentsByLayer(project),
		ComponentsByKind:  metrics.ComponentsByKind(project),
		LayerCoupling:     metrics.LayerCoupling(project),
		ComponentCount:    realComponents,
		DependencyCount:   len(project.Edges),
	}, nil
}

// discovered pairs a root-relative path with its parser.
type discovered struct {
	rel string
	p   parser.Parser
}

// discover walks the root collecting files whose extension maps to an
// enabled parser, applying exclude globs. When languages are auto-detected,
// every supported extension is eligible.
func (e *Engine) discover(root string, parsers []parser.Parser) ([]discovered, error) {
	var files []discovered

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable entries are skipped, not fatal
		}
		if d.IsDir() {
			if skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if strings.HasSuffix(rel, ".d.ts") {
			return nil
		}
		for _, pattern := range e.cfg.Project.ExcludePatterns {
			if ok, _ := doublestar.Match(pattern, rel); ok {
				return nil
			}
		}

		p, ok := parser.ForExtension(parsers, filepath.Ext(rel))
		if !ok {
			return nil
		}
		files = append(files, discovered{rel: rel, p: p})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: walking %s: %v", types.ErrIO, root, err)
	}

	sort.Slice(files, func(i, j int) bool { return files[i].rel < files[j].rel })
	return files, nil
}

// parseAll fans file parsing out over the worker pool. Worker outputs stay
// separate until the single-threaded collector merges them; the normalizer
// re-sorts, so completion order is irrelevant.
func (e *Engine) parseAll(ctx context.Context, root string, files []discovered) ([]*parser.ParsedFile, []types.Diagnostic) {
	var (
		mu     sync.Mutex
		parsed []*parser.ParsedFile
		diags  []types.Diagnostic
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	for _, f := range files {
		g.Go(func() error {
			src, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(f.rel)))
			if err != nil {
				log.Warn("failed to read %s: %v", f.rel, err)
				mu.Lock()
				diags = append(diags, types.Diagnostic{File: f.rel, Message: err.Error()})
				mu.Unlock()
				return nil
			}
			if isBinary(src) {
				return nil
			}

			pf, err := f.p.Parse(ctx, f.rel, src)
			if err != nil {
				log.Warn("failed to parse %s: %v", f.rel, err)
				mu.Lock()
				diags = append(diags, types.Diagnostic{File: f.rel, Message: err.Error()})
				mu.Unlock()
				return nil
			}

			mu.Lock()
			parsed = append(parsed, pf)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	sort.Slice(diags, func(i, j int) bool { return diags[i].File < diags[j].File })
	return parsed, diags
}

// isBinary applies the classic NUL-byte sniff to skip binary files.
func isBinary(src []byte) bool {
	limit := len(src)
	if limit > 8000 {
		limit = 8000
	}
	for _, b := range src[:limit] {
		if b == 0 {
			return true
		}
	}
	return false
}
