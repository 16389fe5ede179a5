// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

// Package convertfonts implements the convert-fonts command.
package convertfonts

import (
	"context"
	"flag"
	"fmt"
	"slices"
	"strings"

	"github.com/cheggaaa/pb"
	"github.com/fatih/color"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/google/contentkit/internal/glob"
	"github.com/google/contentkit/internal/taskconfig"
	"github.com/google/contentkit/pkg/act"
	"github.com/google/contentkit/pkg/act/cli"
	"github.com/google/contentkit/pkg/archive"
	"github.com/google/contentkit/pkg/fontswap"
	"github.com/google/contentkit/tools/ctl/session"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
)

// Config holds all configuration for the convert-fonts command.
type Config struct {
	Sources []string
	// Output is the destination of a single source. Empty converts in place.
	Output string
	// Font overrides the font from the task config.
	Font string
	// Parts is a comma-separated list of part patterns.
	Parts      string
	ConfigPath string
	Check      bool
	Quiet      bool
}

// Validate ensures the configuration is valid.
func (c Config) Validate() error {
	if len(c.Sources) == 0 {
		return errors.New("at least one source package is required")
	}
	if c.Output != "" && len(c.Sources) > 1 {
		return errors.New("--output requires a single source")
	}
	if c.Output != "" && c.Check {
		return errors.New("--output cannot be combined with --check")
	}
	for _, p := range append(slices.Clone(c.Sources), c.Output) {
		if p == "" {
			continue
		}
		if f := archive.PackageFormat(p); f != archive.ZipFormat {
			return errors.Errorf("%s: unsupported package format %v", p, f)
		}
	}
	if _, err := glob.Compile(c.partList()...); err != nil {
		return errors.Wrap(err, "--parts")
	}
	return nil
}

// resolve makes every path absolute.
func (c Config) resolve() (Config, error) {
	var err error
	sources := make([]string, len(c.Sources))
	for i, src := range c.Sources {
		if sources[i], err = session.Abs(src); err != nil {
			return c, err
		}
	}
	c.Sources = sources
	if c.Output, err = session.Abs(c.Output); err != nil {
		return c, err
	}
	if c.ConfigPath, err = session.Abs(c.ConfigPath); err != nil {
		return c, err
	}
	return c, nil
}

func (c Config) partList() []string {
	var parts []string
	for _, p := range strings.Split(c.Parts, ",") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

// options merges the task config with the command-line overrides.
func (c Config) options(file *taskconfig.File) fontswap.Options {
	opts := file.FontOptions()
	if c.Font != "" {
		opts.Font = c.Font
	}
	if parts := c.partList(); len(parts) > 0 {
		opts.Parts = parts
	}
	return opts
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

// ParseArgs takes every positional argument as a source package.
func ParseArgs(cfg *Config, args []string) error {
	cfg.Sources = args
	return nil
}

// Handler converts or checks every source package.
func Handler(ctx context.Context, cfg Config, deps *Deps) (*act.NoOutput, error) {
	cfg, err := cfg.resolve()
	if err != nil {
		return nil, err
	}
	file, err := taskconfig.Load(deps.FS, cfg.ConfigPath)
	if err != nil {
		return nil, err
	}
	opts := cfg.options(file)
	var bar *pb.ProgressBar
	if len(cfg.Sources) > 1 && !cfg.Quiet {
		bar = pb.New(len(cfg.Sources))
		bar.Output = deps.IO.Err
		bar.ShowTimeLeft = true
		bar.Start()
	}
	var failed, mismatched int
	for _, src := range cfg.Sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if cfg.Check {
			n, err := check(deps, src, opts, cfg.Quiet)
			if err != nil {
				return nil, err
			}
			if n > 0 {
				mismatched++
			}
		} else if err := convert(deps, src, cfg.Output, opts, cfg.Quiet); err != nil {
			if len(cfg.Sources) == 1 {
				return nil, err
			}
			fmt.Fprintf(deps.IO.Err, "%s %v\n", yellow("failed"), err)
			failed++
		}
		if bar != nil {
			bar.Increment()
		}
	}
	if bar != nil {
		bar.Finish()
	}
	switch {
	case failed > 0:
		return nil, errors.Errorf("%d of %d packages failed to convert", failed, len(cfg.Sources))
	case mismatched > 0:
		return nil, errors.Errorf("%d of %d packages use fonts other than %q", mismatched, len(cfg.Sources), opts.Font)
	}
	return &act.NoOutput{}, nil
}

func convert(deps *Deps, src, output string, opts fontswap.Options, quiet bool) error {
	report, err := fontswap.ConvertFile(deps.FS, src, output, opts)
	if err != nil {
		return err
	}
	if output == "" {
		output = src
	}
	for _, p := range report.Parts {
		if p.Skipped {
			fmt.Fprintf(deps.IO.Err, "%s %s in %s: %s\n", yellow("skipped"), p.Name, src, p.Reason)
		}
	}
	if !quiet {
		fmt.Fprintf(deps.IO.Out, "%s %s -> %s: %d typeface attributes in %d parts (%d skipped)\n",
			green("converted"), src, output, report.Replaced(), report.Changed(), len(report.SkippedParts()))
	}
	return nil
}

func check(deps *Deps, src string, opts fontswap.Options, quiet bool) (int, error) {
	bad, err := fontswap.VerifyFile(deps.FS, src, opts)
	if err != nil {
		return 0, err
	}
	for _, m := range bad {
		fmt.Fprintf(deps.IO.Out, "%s %s: %s=%q\n", yellow("mismatch"), src, m.Part, m.Value)
	}
	if len(bad) == 0 && !quiet {
		fmt.Fprintf(deps.IO.Out, "%s %s\n", green("ok"), src)
	}
	return len(bad), nil
}

// Command creates a new convert-fonts command instance.
func Command() *cobra.Command {
	cfg := Config{}
	cmd := &cobra.Command{
		Use:   "convert-fonts <package>... [--font <name>] [--output <path>] [--parts <glob,...>] [--config <tasks.toml>] [--check] [--quiet]",
		Short: "Replace every typeface in office packages with one font",
		Args:  cobra.MinimumNArgs(1),
		RunE: cli.RunE(
			&cfg,
			ParseArgs,
			InitDeps,
			Handler,
		),
	}
	cmd.Flags().AddGoFlagSet(FlagSet(cmd.Name(), &cfg))
	return cmd
}

// FlagSet returns the command-line flags for the Config struct.
func FlagSet(name string, cfg *Config) *flag.FlagSet {
	set := flag.NewFlagSet(name, flag.ContinueOnError)
	set.StringVar(&cfg.Font, "font", "", "the font written into every typeface attribute (default from --config, else \""+fontswap.DefaultFont+"\")")
	set.StringVar(&cfg.Font, "f", "", "shorthand for --font")
	set.StringVar(&cfg.Output, "output", "", "where to write the converted package (default: overwrite the source)")
	set.StringVar(&cfg.Output, "o", "", "shorthand for --output")
	set.StringVar(&cfg.Parts, "parts", "", "comma-separated globs selecting the parts to rewrite (default \""+strings.Join(fontswap.DefaultParts, ",")+"\")")
	set.StringVar(&cfg.ConfigPath, "config", "", "a TOML task config with a [fonts] section")
	set.BoolVar(&cfg.Check, "check", false, "report typefaces that differ from the font without writing")
	set.BoolVar(&cfg.Quiet, "quiet", false, "only report problems")
	return set
}
