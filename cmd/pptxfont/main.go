// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

// pptxfont replaces every typeface in one office package with a single font.
//
//	pptxfont deck.pptx                      # in place, Noto Sans KR
//	pptxfont -f "Nanum Gothic" -o out.pptx deck.pptx
package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/google/contentkit/pkg/act/cli"
	"github.com/google/contentkit/tools/ctl/command/convertfonts"
	"github.com/spf13/cobra"
)

var cfg = convertfonts.Config{}

var rootCmd = &cobra.Command{
	Use:           "pptxfont <source> [-f <font>] [-o <output>]",
	Short:         "Replace every typeface in an office package with one font",
	Args:          cobra.ExactArgs(1),
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: cli.RunE(
		&cfg,
		convertfonts.ParseArgs,
		convertfonts.InitDeps,
		convertfonts.Handler,
	),
}

func init() {
	rootCmd.Flags().AddGoFlagSet(convertfonts.FlagSet(rootCmd.Name(), &cfg))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		color.New(color.FgRed).Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
