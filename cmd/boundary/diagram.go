// Copyright (c) 2026 RebelOps. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rebelopsio/boundary/internal/config"
	"github.com/rebelopsio/boundary/internal/report"
	"github.com/rebelopsio/boundary/pkg/types"
)

func newDiagramCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diagram [path]",
		Short: "Render the project as a Mermaid or DOT diagram",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runDiagram,
	}
	cmd.Flags().String("type", "layers", "Diagram type: layers, dependencies, dot")
	return cmd
}

func runDiagram(cmd *cobra.Command, args []string) error {
	setupLogging()

	a, root, err := loadAnalyzer(args)
	if err != nil {
		return err
	}

	result, err := a.Analyze(cmd.Context(), root)
	if err != nil {
		return err
	}

	diagramType, _ := cmd.Flags().GetString("type")
	switch diagramType {
	case "layers":
		fmt.Println(report.MermaidLayers(result.Project))
	case "dependencies":
		fmt.Println(report.MermaidDependencies(result.Project))
	case "dot":
		fmt.Println(report.DOT(result.Project))
	default:
		return fmt.Errorf("%w: unknown diagram type %q", types.ErrConfig, diagramType)
	}
	return nil
}

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default .boundary.yaml",
		RunE: func(cmd *cobra.Command, args []string) error {
			force, _ := cmd.Flags().GetBool("force")
			if _, err := os.Stat(config.ConfigFileName); err == nil && !force {
				return fmt.Errorf("%w: %s already exists, use --force to overwrite",
					types.ErrConfig, config.ConfigFileName)
			}
			if err := os.WriteFile(config.ConfigFileName, []byte(config.DefaultYAML), 0o644); err != nil {
				return fmt.Errorf("%w: %v", types.ErrIO, err)
			}
			fmt.Printf("Created %s with default configuration.\n", config.ConfigFileName)
			return nil
		},
	}
	cmd.Flags().Bool("force", false, "Overwrite an existing config file")
	return cmd
}
