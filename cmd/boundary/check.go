// Copyright (c) 2026 RebelOps. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rebelopsio/boundary/internal/report"
	"github.com/rebelopsio/boundary/internal/snapshot"
	"github.com/rebelopsio/boundary/pkg/types"
)

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [path]",
		Short: "Analyze and exit 0 (pass) or 1 (fail)",
		Long:  "Check runs the analysis and fails on violations at or above the fail-on threshold, on a min-score breach, or on a score regression.",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runCheck,
	}
	cmd.Flags().String("fail-on", "", "Severity threshold: error, warning, info (default from config)")
	cmd.Flags().Float64("min-score", 0, "Minimum overall score")
	cmd.Flags().Bool("track", false, "Append this run to .boundary/history.ndjson")
	cmd.Flags().Bool("no-regression", false, "Fail when the overall score drops below the last snapshot")
	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	setupLogging()

	a, root, err := loadAnalyzer(args)
	if err != nil {
		return err
	}

	failOn := a.Config().FailOn()
	if s, _ := cmd.Flags().GetString("fail-on"); s != "" {
		failOn, err = types.ParseSeverity(s)
		if err != nil {
			return fmt.Errorf("%w: %v", types.ErrConfig, err)
		}
	}

	var minScore *float64
	if cmd.Flags().Changed("min-score") {
		v, _ := cmd.Flags().GetFloat64("min-score")
		minScore = &v
	} else if a.Config().Rules.MinScore != nil {
		minScore = a.Config().Rules.MinScore
	}

	result, err := a.Analyze(cmd.Context(), root)
	if err != nil {
		return err
	}

	if track, _ := cmd.Flags().GetBool("track"); track {
		if err := snapshot.Save(root, result); err != nil {
			return err
		}
	}

	var out string
	var passed bool
	switch viper.GetString("format") {
	case "json":
		out, passed = report.JSONCheck(result, failOn, minScore, viper.GetBool("compact"))
	default:
		out, passed = report.Check(result, failOn, minScore)
	}
	fmt.Println(out)

	if noRegression, _ := cmd.Flags().GetBool("no-regression"); noRegression {
		trend, err := snapshot.CheckRegression(root, result)
		if err != nil {
			return err
		}
		if trend != nil {
			fmt.Fprintf(os.Stderr, "Score regression detected: %d -> %d (delta: %d)\n",
				trend.Previous, trend.Current, trend.Delta)
			return fmt.Errorf("%w: %d -> %d", types.ErrRegression, trend.Previous, trend.Current)
		}
	}

	if !passed {
		return &checkFailedError{reason: "check failed"}
	}
	return nil
}
