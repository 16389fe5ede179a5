// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/google/contentkit/tools/ctl/command/convertfonts"
	"github.com/google/contentkit/tools/ctl/command/createshots"
	"github.com/google/contentkit/tools/ctl/command/createwardrobe"
	"github.com/google/contentkit/tools/ctl/command/deletelevel"
	"github.com/google/contentkit/tools/ctl/command/lightsmovable"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "ctl",
	Short:         "Batch tools for office documents and editor projects",
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	rootCmd.AddCommand(convertfonts.Command())
	rootCmd.AddCommand(deletelevel.Command())
	rootCmd.AddCommand(lightsmovable.Command())
	rootCmd.AddCommand(createshots.Command())
	rootCmd.AddCommand(createwardrobe.Command())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		color.New(color.FgRed).Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
