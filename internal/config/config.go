// Copyright (c) 2026 RebelOps. All rights reserved.
// SPDX-License-Identifier: MIT

// Package config defines the analyzer configuration loaded from
// .boundary.yaml, its defaults, and load-time validation. Validation
// failures are fatal and wrap types.ErrConfig.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/rebelopsio/boundary/pkg/types"
)

// ConfigFileName is looked up at the project root.
const ConfigFileName = ".boundary.yaml"

// Config is the top-level analyzer configuration.
type Config struct {
	Project ProjectConfig `yaml:"project"`
	Layers  LayersConfig  `yaml:"layers"`
	Scoring ScoringConfig `yaml:"scoring"`
	Rules   RulesConfig   `yaml:"rules"`
}

// ProjectConfig scopes discovery.
type ProjectConfig struct {
	// Languages to analyze; auto-detected from file extensions when empty.
	Languages       []string `yaml:"languages"`
	ExcludePatterns []string `yaml:"exclude_patterns"`
	// ServicesPattern is consumed by the monorepo orchestrator, not by the
	// core engine.
	ServicesPattern string `yaml:"services_pattern"`
}

// LayersConfig maps file paths to architectural layers via globs.
type LayersConfig struct {
	Domain           []string        `yaml:"domain"`
	Application      []string        `yaml:"application"`
	Infrastructure   []string        `yaml:"infrastructure"`
	Presentation     []string        `yaml:"presentation"`
	CrossCutting     []string        `yaml:"cross_cutting"`
	ArchitectureMode string          `yaml:"architecture_mode"`
	Overrides        []LayerOverride `yaml:"overrides"`
}

// LayerOverride scopes alternative layer globs (and optionally a different
// architecture mode) to a subtree matched by Scope.
type LayerOverride struct {
	Scope            string   `yaml:"scope"`
	Domain           []string `yaml:"domain"`
	Application      []string `yaml:"application"`
	Infrastructure   []string `yaml:"infrastructure"`
	Presentation     []string `yaml:"presentation"`
	ArchitectureMode string   `yaml:"architecture_mode"`
}

// ScoringConfig weights the score dimensions; the three weights must sum
// to 1.0.
type ScoringConfig struct {
	LayerIsolationWeight      float64 `yaml:"layer_isolation_weight"`
	DependencyDirectionWeight float64 `yaml:"dependency_direction_weight"`
	InterfaceCoverageWeight   float64 `yaml:"interface_coverage_weight"`
}

// RulesConfig tunes violation reporting.
type RulesConfig struct {
	FailOn     string            `yaml:"fail_on"`
	MinScore   *float64          `yaml:"min_score"`
	Severities map[string]string `yaml:"severities"`
	Custom     []CustomRule      `yaml:"custom_rules"`
}

// CustomRule denies edges whose source file matches FromPattern and whose
// target path matches ToPattern.
type CustomRule struct {
	Name        string `yaml:"name"`
	FromPattern string `yaml:"from_pattern"`
	ToPattern   string `yaml:"to_pattern"`
	Action      string `yaml:"action"`
	Severity    string `yaml:"severity"`
	Message     string `yaml:"message"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Project: ProjectConfig{
			ExcludePatterns: []string{
				"vendor/**",
				"**/*_test.go",
				"**/testdata/**",
				"**/node_modules/**",
				"**/target/**",
			},
		},
		Layers: LayersConfig{
			Domain:           []string{"**/domain/**", "**/entity/**", "**/model/**"},
			Application:      []string{"**/application/**", "**/usecase/**", "**/service/**"},
			Infrastructure:   []string{"**/infrastructure/**", "**/adapter/**", "**/repository/**", "**/persistence/**"},
			Presentation:     []string{"**/presentation/**", "**/handler/**", "**/api/**", "**/cmd/**"},
			ArchitectureMode: string(types.ModeDDD),
		},
		Scoring: ScoringConfig{
			LayerIsolationWeight:      0.4,
			DependencyDirectionWeight: 0.4,
			InterfaceCoverageWeight:   0.2,
		},
		Rules: RulesConfig{
			FailOn: "error",
		},
	}
}

// Load reads and validates a config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", types.ErrConfig, path, err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", types.ErrConfig, path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault loads .boundary.yaml from dir if present, otherwise returns
// the validated defaults.
func LoadOrDefault(dir string) (*Config, error) {
	path := filepath.Join(dir, ConfigFileName)
	if _, err := os.Stat(path); err != nil {
		cfg := Default()
		return cfg, cfg.Validate()
	}
	return Load(path)
}

// Validate checks weights, modes, severities, and glob syntax.
func (c *Config) Validate() error {
	sum := c.Scoring.LayerIsolationWeight +
		c.Scoring.DependencyDirectionWeight +
		c.Scoring.InterfaceCoverageWeight
	if sum < 1.0-1e-9 || sum > 1.0+1e-9 {
		return fmt.Errorf("%w: scoring weights sum to %.3f, want 1.0", types.ErrConfig, sum)
	}

	if _, err := types.ParseArchitectureMode(c.Layers.ArchitectureMode); err != nil {
		return fmt.Errorf("%w: %v", types.ErrConfig, err)
	}
	for _, o := range c.Layers.Overrides {
		if o.Scope == "" {
			return fmt.Errorf("%w: layer override missing scope", types.ErrConfig)
		}
		if _, err := types.ParseArchitectureMode(o.ArchitectureMode); err != nil {
			return fmt.Errorf("%w: override %q: %v", types.ErrConfig, o.Scope, err)
		}
	}

	if c.Rules.FailOn != "" {
		if _, err := types.ParseSeverity(c.Rules.FailOn); err != nil {
			return fmt.Errorf("%w: fail_on: %v", types.ErrConfig, err)
		}
	}
	for kind, sev := range c.Rules.Severities {
		if !isBuiltinKind(kind) {
			return fmt.Errorf("%w: severity override for unknown violation kind %q", types.ErrConfig, kind)
		}
		if _, err := types.ParseSeverity(sev); err != nil {
			return fmt.Errorf("%w: severity for %s: %v", types.ErrConfig, kind, err)
		}
	}
	for _, r := range c.Rules.Custom {
		if r.Action != "" && r.Action != "deny" {
			return fmt.Errorf("%w: custom rule %q: unsupported action %q", types.ErrConfig, r.Name, r.Action)
		}
		if _, err := types.ParseSeverity(r.Severity); r.Severity != "" && err != nil {
			return fmt.Errorf("%w: custom rule %q: %v", types.ErrConfig, r.Name, err)
		}
		for _, p := range []string{r.FromPattern, r.ToPattern} {
			if !doublestar.ValidatePattern(p) {
				return fmt.Errorf("%w: custom rule %q: malformed glob %q", types.ErrConfig, r.Name, p)
			}
		}
	}

	for _, p := range c.allGlobs() {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("%w: malformed glob %q", types.ErrConfig, p)
		}
	}
	return nil
}

func (c *Config) allGlobs() []string {
	var globs []string
	globs = append(globs, c.Project.ExcludePatterns...)
	globs = append(globs, c.Layers.Domain...)
	globs = append(globs, c.Layers.Application...)
	globs = append(globs, c.Layers.Infrastructure...)
	globs = append(globs, c.Layers.Presentation...)
	globs = append(globs, c.Layers.CrossCutting...)
	for _, o := range c.Layers.Overrides {
		globs = append(globs, o.Scope)
		globs = append(globs, o.Domain...)
		globs = append(globs, o.Application...)
		globs = append(globs, o.Infrastructure...)
		globs = append(globs, o.Presentation...)
	}
	return globs
}

func isBuiltinKind(kind string) bool {
	for _, k := range types.BuiltinViolationKinds {
		if string(k) == kind {
			return true
		}
	}
	return false
}

// Mode returns the parsed global architecture mode.
func (c *Config) Mode() types.ArchitectureMode {
	mode, _ := types.ParseArchitectureMode(c.Layers.ArchitectureMode)
	return mode
}

// FailOn returns the parsed failure threshold.
func (c *Config) FailOn() types.Severity {
	if c.Rules.FailOn == "" {
		return types.SeverityError
	}
	sev, _ := types.ParseSeverity(c.Rules.FailOn)
	return sev
}

// SeverityFor resolves a violation kind to its effective severity,
// honoring overrides.
func (c *Config) SeverityFor(kind types.ViolationKind, fallback types.Severity) types.Severity {
	if s, ok := c.Rules.Severities[string(kind)]; ok {
		if sev, err := types.ParseSeverity(s); err == nil {
			return sev
		}
	}
	return fallback
}

// DefaultYAML is the commented config written by `boundary init`.
const DefaultYAML = `# boundary - architecture analysis configuration

project:
  # Languages to analyze; auto-detected from file extensions when empty.
  languages: []
  exclude_patterns:
    - "vendor/**"
    - "**/*_test.go"
    - "**/testdata/**"

layers:
  # Glob patterns classifying files into architectural layers.
  domain: ["**/domain/**", "**/entity/**", "**/model/**"]
  application: ["**/application/**", "**/usecase/**", "**/service/**"]
  infrastructure: ["**/infrastructure/**", "**/adapter/**", "**/repository/**", "**/persistence/**"]
  presentation: ["**/presentation/**", "**/handler/**", "**/api/**", "**/cmd/**"]
  # Files exempt from layer checks (logging, shared errors).
  cross_cutting: []
  # One of: ddd, active-record, service-oriented.
  architecture_mode: ddd

scoring:
  # Dimension weights; must sum to 1.0.
  layer_isolation_weight: 0.4
  dependency_direction_weight: 0.4
  interface_coverage_weight: 0.2

rules:
  # Severity threshold for check failure: error, warning, or info.
  fail_on: error
  # min_score: 70
  severities:
    layer_boundary: error
    circular_dependency: error
    missing_port: warning
`
