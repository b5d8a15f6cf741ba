// Copyright (c) 2026 RebelOps. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rebelopsio/boundary/internal/forensics"
	"github.com/rebelopsio/boundary/internal/report"
)

func newForensicsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "forensics [path]",
		Short: "Deep-dive report: aggregates, ports, adapters, improvements",
		Long:  "Forensics examines each domain aggregate for tactical patterns, audits its dependencies, maps adapters to ports, and suggests concrete improvements.",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runForensics,
	}
}

func runForensics(cmd *cobra.Command, args []string) error {
	setupLogging()

	a, root, err := loadAnalyzer(args)
	if err != nil {
		return err
	}

	result, err := a.Analyze(cmd.Context(), root)
	if err != nil {
		return err
	}

	analysis := forensics.Build(result)
	switch viper.GetString("format") {
	case "json":
		fmt.Println(report.ForensicsJSON(analysis, viper.GetBool("compact")))
	default:
		fmt.Println(report.Forensics(analysis))
	}
	return nil
}
