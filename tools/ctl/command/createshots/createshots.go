// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

// Package createshots implements the create-shots command.
package createshots

import (
	"context"
	"flag"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/google/contentkit/pkg/act"
	"github.com/google/contentkit/pkg/act/cli"
	"github.com/google/contentkit/pkg/shots"
	"github.com/google/contentkit/tools/ctl/session"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// Config holds all configuration for the create-shots command.
// Negative numbers leave the task config or default value in place.
type Config struct {
	session.Flags
	Root  string
	Start int
	End   int
	Step  int
}

// Validate ensures the configuration is valid.
func (c Config) Validate() error {
	if err := c.Flags.Validate(); err != nil {
		return err
	}
	if c.Step == 0 || c.Step < -1 {
		return errors.Errorf("--step must be positive, got %d", c.Step)
	}
	return nil
}

func (c Config) apply(base shots.Config) shots.Config {
	if c.Root != "" {
		base.Root = c.Root
	}
	if c.Start >= 0 {
		base.Start = c.Start
	}
	if c.End >= 0 {
		base.End = c.End
	}
	if c.Step > 0 {
		base.Step = c.Step
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

// Handler creates the shot folders and level sequences.
func Handler(ctx context.Context, cfg Config, deps *Deps) (*act.NoOutput, error) {
	s, err := session.Open(deps.FS, cfg.Flags, deps.IO.Err)
	if err != nil {
		return nil, err
	}
	sc := cfg.apply(s.Tasks.ShotsConfig())
	res, err := shots.Create(ctx, s, sc)
	if err != nil {
		return nil, err
	}
	for _, p := range res.Created {
		deps.IO.Printf("%s\n", p)
	}
	deps.IO.Printf("%d shots under %s: %d created, %d already present\n", len(res.Shots), sc.Root, len(res.Created), len(res.Existing))
	if !cfg.DryRun {
		if _, err := s.Save(); err != nil {
			return nil, err
		}
	}
	return &act.NoOutput{}, nil
}

// Command creates a new create-shots command instance.
func Command() *cobra.Command {
	cfg := Config{}
	cmd := &cobra.Command{
		Use:   "create-shots --project <project.yaml> [--root <folder>] [--start <n>] [--end <n>] [--step <n>] [--config <tasks.toml>] [--dry-run]",
		Short: "Create numbered shot folders, each with a level sequence",
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
	cfg.Flags.RegisterConfig(set)
	set.StringVar(&cfg.Root, "root", "", "the folder holding the shot folders (default \""+shots.DefaultRoot+"\")")
	set.IntVar(&cfg.Start, "start", -1, "the first shot number (default 10)")
	set.IntVar(&cfg.End, "end", -1, "the last shot number, inclusive (default 80)")
	set.IntVar(&cfg.Step, "step", -1, "the increment between shot numbers (default 10)")
	return set
}
