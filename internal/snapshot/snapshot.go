// Copyright (c) 2026 RebelOps. All rights reserved.
// SPDX-License-Identifier: MIT

// Package snapshot appends analysis scores to .boundary/history.ndjson and
// checks new runs against the last recorded one for regressions.
package snapshot

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	gogit "github.com/go-git/go-git/v5"

	"github.com/rebelopsio/boundary/internal/log"
	"github.com/rebelopsio/boundary/pkg/types"
)

// HistoryFile is the NDJSON history path relative to the project root.
const HistoryFile = ".boundary/history.ndjson"

// Record is one snapshot line. Undefined scores serialize as null so a
// later run never regresses against an absent number.
type Record struct {
	Timestamp            string `json:"timestamp"`
	Root                 string `json:"root"`
	GitCommit            string `json:"git_commit,omitempty"`
	GitBranch            string `json:"git_branch,omitempty"`
	Overall              *int   `json:"overall"`
	StructuralPresence   *int   `json:"structural_presence"`
	LayerConformance     *int   `json:"layer_conformance"`
	DependencyCompliance *int   `json:"dependency_compliance"`
	InterfaceCoverage    *int   `json:"interface_coverage"`
	ViolationCount       int    `json:"violation_count"`
}

// Trend compares the last snapshot with the current run.
type Trend struct {
	Previous int
	Current  int
	Delta    int
}

func metricPtr(m types.Metric) *int {
	if !m.Defined {
		return nil
	}
	v := m.Percent()
	return &v
}

// Save appends one snapshot line for the result.
func Save(root string, result *types.Result) error {
	dir := filepath.Join(root, filepath.Dir(HistoryFile))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}

	rec := Record{
		Timestamp:            time.Now().UTC().Format(time.RFC3339),
		Root:                 root,
		Overall:              metricPtr(result.Score.Overall),
		StructuralPresence:   metricPtr(result.Score.StructuralPresence),
		LayerConformance:     metricPtr(result.Score.LayerConformance),
		DependencyCompliance: metricPtr(result.Score.DependencyCompliance),
		InterfaceCoverage:    metricPtr(result.Score.InterfaceCoverage),
		ViolationCount:       len(result.Violations),
	}
	rec.GitCommit, rec.GitBranch = gitHead(root)

	line, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("serializing snapshot: %w", err)
	}

	path := filepath.Join(root, filepath.FromSlash(HistoryFile))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	if _, err := f.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	log.Info("snapshot saved to %s", path)
	return nil
}

// CheckRegression compares the current result with the last snapshot.
// Returns a trend only when the previous overall score exceeds the current
// one; absent scores on either side never regress.
func CheckRegression(root string, result *types.Result) (*Trend, error) {
	last, err := loadLast(filepath.Join(root, filepath.FromSlash(HistoryFile)))
	if err != nil || last == nil {
		return nil, err
	}
	if last.Overall == nil || !result.Score.Overall.Defined {
		return nil, nil
	}

	current := result.Score.Overall.Percent()
	if current >= *last.Overall {
		return nil, nil
	}
	return &Trend{
		Previous: *last.Overall,
		Current:  current,
		Delta:    current - *last.Overall,
	}, nil
}

// loadLast reads the final well-formed snapshot line, skipping malformed
// ones.
func loadLast(path string) (*Record, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var last *Record
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var rec Record
		if err := json.Unmarshal(line, &rec); err != nil {
			log.Warn("skipping malformed history line: %v", err)
			continue
		}
		last = &rec
	}
	return last, scanner.Err()
}

// gitHead reads the current commit hash and branch via go-git. Both are
// empty outside a repository.
func gitHead(root string) (commit, branch string) {
	repo, err := gogit.PlainOpenWithOptions(root, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", ""
	}
	head, err := repo.Head()
	if err != nil {
		return "", ""
	}
	return head.Hash().String(), head.Name().Short()
}
