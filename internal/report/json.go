// Copyright (c) 2026 RebelOps. All rights reserved.
// SPDX-License-Identifier: MIT

package report

import (
	"encoding/json"

	"github.com/rebelopsio/boundary/pkg/types"
)

// jsonScore serializes defined dimensions as integer percents and drops
// undefined ones entirely.
type jsonScore struct {
	Overall              *int   `json:"overall,omitempty"`
	OverallReason        string `json:"overall_reason,omitempty"`
	StructuralPresence   *int   `json:"structural_presence,omitempty"`
	LayerConformance     *int   `json:"layer_conformance,omitempty"`
	DependencyCompliance *int   `json:"dependency_compliance,omitempty"`
	InterfaceCoverage    *int   `json:"interface_coverage,omitempty"`
}

type jsonViolation struct {
	Kind       types.ViolationKind `json:"kind"`
	Rule       string              `json:"rule,omitempty"`
	Severity   types.Severity      `json:"severity"`
	Location   types.Location      `json:"location"`
	Message    string              `json:"message"`
	Suggestion string              `json:"suggestion,omitempty"`
}

type jsonCheck struct {
	Passed                bool           `json:"passed"`
	FailOn                types.Severity `json:"fail_on"`
	FailingViolationCount int            `json:"failing_violation_count"`
}

type jsonReport struct {
	Score             jsonScore                 `json:"score"`
	TopPattern        string                    `json:"top_pattern"`
	Patterns          []types.PatternConfidence `json:"patterns"`
	ComponentCount    int                       `json:"component_count"`
	DependencyCount   int                       `json:"dependency_count"`
	FilesAnalyzed     int                       `json:"files_analyzed"`
	ComponentsByLayer map[string]int            `json:"components_by_layer,omitempty"`
	ComponentsByKind  map[string]int            `json:"components_by_kind,omitempty"`
	LayerCoupling     map[string]map[string]int `json:"layer_coupling,omitempty"`
	PackageMetrics    []types.PackageMetrics    `json:"package_metrics,omitempty"`
	Violations        []jsonViolation           `json:"violations"`
	Diagnostics       []types.Diagnostic        `json:"diagnostics,omitempty"`
	Check             *jsonCheck                `json:"check,omitempty"`
}

func metricPtr(m types.Metric) *int {
	if !m.Defined {
		return nil
	}
	v := m.Percent()
	return &v
}

func buildJSON(result *types.Result) jsonReport {
	r := jsonReport{
		Score: jsonScore{
			Overall:              metricPtr(result.Score.Overall),
			StructuralPresence:   metricPtr(result.Score.StructuralPresence),
			LayerConformance:     metricPtr(result.Score.LayerConformance),
			DependencyCompliance: metricPtr(result.Score.DependencyCompliance),
			InterfaceCoverage:    metricPtr(result.Score.InterfaceCoverage),
		},
		TopPattern:        result.TopPattern,
		Patterns:          result.Patterns,
		ComponentCount:    result.ComponentCount,
		DependencyCount:   result.DependencyCount,
		FilesAnalyzed:     result.Project.FilesAnalyzed,
		ComponentsByLayer: result.ComponentsByLayer,
		ComponentsByKind:  result.ComponentsByKind,
		LayerCoupling:     result.LayerCoupling.Matrix,
		PackageMetrics:    result.PackageMetrics,
		Violations:        make([]jsonViolation, 0, len(result.Violations)),
		Diagnostics:       result.Project.Diagnostics,
	}
	if !result.Score.Overall.Defined {
		r.Score.OverallReason = result.Score.OverallReason
	}
	for _, v := range result.Violations {
		r.Violations = append(r.Violations, jsonViolation{
			Kind:       v.Kind,
			Rule:       v.Rule,
			Severity:   v.Severity,
			Location:   v.Location,
			Message:    v.Message,
			Suggestion: v.Suggestion,
		})
	}
	return r
}

// JSON renders the analysis report; compact selects single-line output.
func JSON(result *types.Result, compact bool) string {
	return marshal(buildJSON(result), compact)
}

// JSONCheck renders the check variant with the check block, and reports
// whether the check passed.
func JSONCheck(result *types.Result, failOn types.Severity, minScore *float64, compact bool) (string, bool) {
	failing := result.FailingViolations(failOn)
	passed := failing == 0
	if minScore != nil {
		if !result.Score.Overall.Defined || float64(result.Score.Overall.Percent()) < *minScore {
			passed = false
		}
	}

	r := buildJSON(result)
	r.Check = &jsonCheck{
		Passed:                passed,
		FailOn:                failOn,
		FailingViolationCount: failing,
	}
	return marshal(r, compact), passed
}

func marshal(r jsonReport, compact bool) string {
	var (
		out []byte
		err error
	)
	if compact {
		out, err = json.Marshal(r)
	} else {
		out, err = json.MarshalIndent(r, "", "  ")
	}
	if err != nil {
		return `{"error":"failed to serialize report"}`
	}
	return string(out)
}
