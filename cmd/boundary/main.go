// Copyright (c) 2026 RebelOps. All rights reserved.
// SPDX-License-Identifier: MIT

// Command boundary is a static architecture analyzer: it extracts a
// component graph from Go, Rust, TypeScript, and Java sources, classifies
// layers, scores the structure, and reports violations.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rebelopsio/boundary/internal/log"
	"github.com/rebelopsio/boundary/pkg/types"
)

const version = "0.3.0"

func main() {
	rootCmd := &cobra.Command{
		Use:           "boundary",
		Short:         "Static architecture analyzer",
		Long:          "boundary parses a multi-language source tree, classifies components into architectural layers, scores the structure, and reports boundary violations.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().String("config", "", "Path to .boundary.yaml (default: project root)")
	rootCmd.PersistentFlags().String("format", "text", "Output format: text, json, markdown")
	rootCmd.PersistentFlags().Bool("compact", false, "Compact JSON output")
	rootCmd.PersistentFlags().StringSlice("languages", nil, "Languages to analyze (default: auto-detect)")
	rootCmd.PersistentFlags().Bool("verbose", false, "Verbose logging to stderr")

	// Bind flags to viper.
	viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	viper.BindPFlag("format", rootCmd.PersistentFlags().Lookup("format"))
	viper.BindPFlag("compact", rootCmd.PersistentFlags().Lookup("compact"))
	viper.BindPFlag("languages", rootCmd.PersistentFlags().Lookup("languages"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	// Env vars: BOUNDARY_FORMAT, BOUNDARY_CONFIG, etc.
	viper.SetEnvPrefix("BOUNDARY")
	viper.AutomaticEnv()

	rootCmd.AddCommand(newAnalyzeCmd())
	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newDiagramCmd())
	rootCmd.AddCommand(newForensicsCmd())
	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		// Check failures and regressions already printed their report; fatal
		// errors get one concise line on stderr and exit 2.
		var check *checkFailedError
		if errors.As(err, &check) || errors.Is(err, types.ErrRegression) {
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
}

// checkFailedError signals a failing check without a stack of wrapping.
type checkFailedError struct{ reason string }

func (e *checkFailedError) Error() string { return e.reason }

func setupLogging() {
	if viper.GetBool("verbose") {
		log.SetLevel(slog.LevelDebug)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print boundary version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("boundary %s\n", version)
		},
	}
}
