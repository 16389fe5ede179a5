// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

// Package createwardrobe implements the create-wardrobe command.
package createwardrobe

import (
	"context"
	"flag"

	"github.com/fatih/color"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/google/contentkit/pkg/act"
	"github.com/google/contentkit/pkg/act/cli"
	"github.com/google/contentkit/pkg/wardrobe"
	"github.com/google/contentkit/tools/ctl/session"
	"github.com/spf13/cobra"
)

// Config holds all configuration for the create-wardrobe command.
type Config struct {
	session.Flags
	Body         string
	Clothing     []string
	TargetFolder string
}

func (c Config) apply(base wardrobe.Config) wardrobe.Config {
	if c.Body != "" {
		base.BodyMesh = c.Body
	}
	if len(c.Clothing) > 0 {
		base.ClothingMeshes = c.Clothing
	}
	if c.TargetFolder != "" {
		base.TargetFolder = c.TargetFolder
	}
	return base
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

// ParseArgs takes the positional arguments as clothing meshes.
func ParseArgs(cfg *Config, args []string) error {
	cfg.Clothing = args
	return nil
}

// Handler builds the cloth asset, outfit and wardrobe item.
func Handler(ctx context.Context, cfg Config, deps *Deps) (*act.NoOutput, error) {
	s, err := session.Open(deps.FS, cfg.Flags, deps.IO.Err)
	if err != nil {
		return nil, err
	}
	wc := cfg.apply(s.Tasks.WardrobeConfig())
	if err := wc.Validate(); err != nil {
		return nil, err
	}
	res, err := wardrobe.Build(ctx, s, wc)
	if err != nil {
		return nil, err
	}
	green := color.New(color.FgGreen).SprintFunc()
	for _, p := range []string{res.Cloth, res.Outfit, res.Item} {
		deps.IO.Printf("%s %s\n", green("created"), p)
	}
	if !cfg.DryRun {
		if _, err := s.Save(); err != nil {
			return nil, err
		}
	}
	return &act.NoOutput{}, nil
}

// Command creates a new create-wardrobe command instance.
func Command() *cobra.Command {
	cfg := Config{}
	cmd := &cobra.Command{
		Use:   "create-wardrobe --project <project.yaml> [--body <mesh>] [--target <folder>] [--config <tasks.toml>] [--dry-run] [<clothing mesh>...]",
		Short: "Build a cloth asset, outfit and wardrobe item from skeletal meshes",
		RunE: cli.RunE(
			&cfg,
			ParseArgs,
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
	cfg.Flags.RegisterConfig(set)
	set.StringVar(&cfg.Body, "body", "", "the body skeletal mesh that wears the outfit")
	set.StringVar(&cfg.TargetFolder, "target", "", "the folder receiving the new assets (default \""+wardrobe.DefaultTargetFolder+"\")")
	return set
}
