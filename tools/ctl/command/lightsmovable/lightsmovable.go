// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

// Package lightsmovable implements the lights-movable command.
package lightsmovable

import (
	"context"
	"flag"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/google/contentkit/pkg/act"
	"github.com/google/contentkit/pkg/act/cli"
	"github.com/google/contentkit/pkg/lights"
	"github.com/google/contentkit/tools/ctl/session"
	"github.com/spf13/cobra"
)

// Config holds all configuration for the lights-movable command.
type Config struct {
	session.Flags
}

// Deps holds dependencies for the command.
type Deps struct {
	IO cli.IO
	FS billy.Filesystem
}

func (d *Deps) SetIO(cio cli.IO) { d.IO = cio }

// InitDeps initializes Deps.
func InitDeps(context.Context) (*Deps, error) {
	return &Deps{FS: osfs.New("/")}, nil
}

// Handler sets every light component in the project's levels to Movable.
func Handler(ctx context.Context, cfg Config, deps *Deps) (*act.NoOutput, error) {
	s, err := session.Open(deps.FS, cfg.Flags, deps.IO.Err)
	if err != nil {
		return nil, err
	}
	sum, err := lights.ConvertAllToMovable(ctx, s)
	if err != nil {
		return nil, err
	}
	deps.IO.Printf("%d of %d light components on %d actors set to Movable\n", sum.Updated, sum.Components, sum.Actors)
	if len(sum.DirtyPackages) > 0 {
		deps.IO.Printf("modified levels: %s\n", strings.Join(sum.DirtyPackages, ", "))
	}
	if !cfg.DryRun {
		if _, err := s.Save(); err != nil {
			return nil, err
		}
	}
	return &act.NoOutput{}, nil
}

// Command creates a new lights-movable command instance.
func Command() *cobra.Command {
	cfg := Config{}
	cmd := &cobra.Command{
		Use:   "lights-movable --project <project.yaml> [--dry-run]",
		Short: "Set every light component in the project's levels to Movable",
		Args:  cobra.NoArgs,
		RunE: cli.RunE(
			&cfg,
			cli.SkipArgs[Config],
			InitDeps,
			Handler,
		),
	}
	cmd.Flags().AddGoFlagSet(flagSet(cmd.Name(), &cfg))
	return cmd
}

// flagSet returns the command-line flags for the Config struct.
func flagSet(name string, cfg *Config) *flag.FlagSet {
	set := flag.NewFlagSet(name, flag.ContinueOnError)
	cfg.Flags.Register(set)
	return set
}
