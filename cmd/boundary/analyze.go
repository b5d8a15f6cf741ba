// Copyright (c) 2026 RebelOps. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rebelopsio/boundary/internal/config"
	"github.com/rebelopsio/boundary/internal/report"
	"github.com/rebelopsio/boundary/pkg/analyzer"
	"github.com/rebelopsio/boundary/pkg/types"
)

func newAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [path]",
		Short: "Analyze a project and print the report",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runAnalyze,
	}
	cmd.Flags().Bool("score-only", false, "Print only the score line")
	return cmd
}

// loadAnalyzer resolves the project root and configuration shared by
// analyze and check.
func loadAnalyzer(args []string) (*analyzer.Analyzer, string, error) {
	root := "."
	if len(args) > 0 {
		root = args[0]
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %s", types.ErrIO, root)
	}

	var cfg *config.Config
	if path := viper.GetString("config"); path != "" {
		cfg, err = config.Load(path)
	} else {
		cfg, err = config.LoadOrDefault(abs)
	}
	if err != nil {
		return nil, "", err
	}
	if langs := viper.GetStringSlice("languages"); len(langs) > 0 {
		cfg.Project.Languages = langs
	}

	return analyzer.New(cfg), abs, nil
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	setupLogging()

	a, root, err := loadAnalyzer(args)
	if err != nil {
		return err
	}

	result, err := a.Analyze(cmd.Context(), root)
	if err != nil {
		return err
	}

	if scoreOnly, _ := cmd.Flags().GetBool("score-only"); scoreOnly {
		printScoreLine(root, result)
		return nil
	}

	switch viper.GetString("format") {
	case "json":
		fmt.Println(report.JSON(result, viper.GetBool("compact")))
	case "markdown":
		fmt.Println(report.Markdown(result))
	default:
		fmt.Println(report.Text(result))
	}
	return nil
}

func printScoreLine(root string, result *types.Result) {
	name := filepath.Base(root)
	if result.Score.Overall.Defined {
		fmt.Fprintf(os.Stdout, "%s: %d/100\n", name, result.Score.Overall.Percent())
		return
	}
	fmt.Fprintf(os.Stdout, "%s: n/a (%s)\n", name, result.Score.OverallReason)
}
