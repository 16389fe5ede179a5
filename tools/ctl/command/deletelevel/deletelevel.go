// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

// Package deletelevel implements the delete-level command.
package deletelevel

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/google/contentkit/internal/glob"
	"github.com/google/contentkit/pkg/act"
	"github.com/google/contentkit/pkg/act/cli"
	"github.com/google/contentkit/pkg/editor"
	"github.com/google/contentkit/pkg/levelprune"
	"github.com/google/contentkit/tools/ctl/session"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// Config holds all configuration for the delete-level command.
type Config struct {
	session.Flags
	// Keep is a comma-separated list of package globs that are never deleted.
	Keep string
	// Follow is a comma-separated list of dependency kinds.
	Follow string
}

func splitList(s string) []string {
	var out []string
	for _, v := range strings.Split(s, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func (c Config) kinds() []editor.DependencyKind {
	var kinds []editor.DependencyKind
	for _, k := range splitList(c.Follow) {
		kinds = append(kinds, editor.DependencyKind(k))
	}
	return kinds
}

// Validate ensures the configuration is valid.
func (c Config) Validate() error {
	if err := c.Flags.Validate(); err != nil {
		return err
	}
	if _, err := glob.Compile(splitList(c.Keep)...); err != nil {
		return errors.Wrap(err, "--keep")
	}
	for _, k := range c.kinds() {
		if !k.Valid() {
			return errors.Errorf("--follow: unknown dependency kind %q", k)
		}
	}
	return nil
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

// Handler deletes the selected level and the packages only it references.
func Handler(ctx context.Context, cfg Config, deps *Deps) (*act.NoOutput, error) {
	s, err := session.Open(deps.FS, cfg.Flags, deps.IO.Err)
	if err != nil {
		return nil, err
	}
	opts := s.Tasks.LevelPruneOptions()
	if keep := splitList(cfg.Keep); len(keep) > 0 {
		opts.Keep = keep
	}
	if kinds := cfg.kinds(); len(kinds) > 0 {
		opts.Dependencies = editor.FollowKinds(kinds...)
	}
	opts.DryRun = cfg.DryRun
	res, err := levelprune.DeleteLevel(ctx, s, opts)
	if err != nil {
		return nil, err
	}
	yellow := color.New(color.FgYellow).SprintFunc()
	if cfg.DryRun {
		for _, pkg := range res.Exclusive {
			deps.IO.Printf("%s\n", pkg)
		}
		deps.IO.Printf("%s: %d exclusive packages, %d shared, %d kept\n", yellow("dry run"), len(res.Exclusive), len(res.Shared), len(res.Kept))
		return &act.NoOutput{}, nil
	}
	if _, err := s.Save(); err != nil {
		return nil, err
	}
	deps.IO.Printf("deleted %d assets from %s (%d shared packages skipped, %d kept)\n", len(res.Deleted), res.Level.PackageName, len(res.Shared), len(res.Kept))
	if len(res.Failed) > 0 {
		return nil, errors.Errorf("failed to delete %d assets: %s", len(res.Failed), strings.Join(res.Failed, ", "))
	}
	return &act.NoOutput{}, nil
}

// Command creates a new delete-level command instance.
func Command() *cobra.Command {
	cfg := Config{}
	cmd := &cobra.Command{
		Use:   "delete-level --project <project.yaml> [--keep <glob,...>] [--follow <kind,...>] [--config <tasks.toml>] [--dry-run]",
		Short: "Delete the selected level and the assets only it uses",
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
	set.StringVar(&cfg.Keep, "keep", "", "comma-separated package globs that are never deleted")
	set.StringVar(&cfg.Follow, "follow", "", fmt.Sprintf("comma-separated dependency kinds to follow (%s, %s, %s, %s; default %s)",
		editor.HardDependency, editor.SoftDependency, editor.SearchableDependency, editor.ManageDependency, editor.HardDependency))
	return set
}
