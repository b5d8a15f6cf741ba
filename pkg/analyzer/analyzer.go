// Copyright (c) 2026 RebelOps. All rights reserved.
// SPDX-License-Identifier: MIT

// Package analyzer is the public entry point: a thin facade over the
// engine for CLI, editor hosts, and report renderers.
package analyzer

import (
	"context"

	"github.com/rebelopsio/boundary/internal/config"
	"github.com/rebelopsio/boundary/internal/engine"
	"github.com/rebelopsio/boundary/pkg/types"
)

// Analyzer runs analyses with one loaded configuration.
type Analyzer struct {
	cfg *config.Config
}

// New creates an analyzer from a validated configuration.
func New(cfg *config.Config) *Analyzer {
	return &Analyzer{cfg: cfg}
}

// NewFromDir loads .boundary.yaml from the project root (or defaults) and
// creates an analyzer.
func NewFromDir(root string) (*Analyzer, error) {
	cfg, err := config.LoadOrDefault(root)
	if err != nil {
		return nil, err
	}
	return &Analyzer{cfg: cfg}, nil
}

// Config exposes the effective configuration to collaborators.
func (a *Analyzer) Config() *config.Config {
	return a.cfg
}

// Analyze runs the pipeline over the project root.
func (a *Analyzer) Analyze(ctx context.Context, root string) (*types.Result, error) {
	return engine.New(a.cfg).Analyze(ctx, root)
}

// Diagnostics analyzes the project and returns violations for editor
// hosts, keyed to the import statement that caused each one. The host maps
// files to documents; this stays transport-agnostic.
func (a *Analyzer) Diagnostics(ctx context.Context, root string) ([]types.Violation, error) {
	result, err := a.Analyze(ctx, root)
	if err != nil {
		return nil, err
	}
	return result.Violations, nil
}
