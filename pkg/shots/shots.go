// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

// Package shots lays out shot folders with one level sequence each.
package shots

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/google/contentkit/pkg/editor"
	"github.com/pkg/errors"
)

const (
	DefaultRoot  = "/Game/Sequences/Shot"
	DefaultStart = 10
	DefaultEnd   = 80
	DefaultStep  = 10

	SequenceClass   = "LevelSequence"
	SequenceFactory = "LevelSequenceFactoryNew"
	AnimationsDir   = "Animations"
)

// Config selects the shot numbers start, start+step, ... up to end inclusive.
type Config struct {
	Root  string
	Start int
	End   int
	Step  int
}

// DefaultConfig returns Shot010 through Shot080 under /Game/Sequences/Shot.
func DefaultConfig() Config {
	return Config{Root: DefaultRoot, Start: DefaultStart, End: DefaultEnd, Step: DefaultStep}
}

func (c Config) Validate() error {
	switch {
	case c.Step <= 0:
		return errors.Errorf("step must be positive, got %d", c.Step)
	case c.Start < 0:
		return errors.Errorf("start must not be negative, got %d", c.Start)
	case c.Start > c.End:
		return errors.Errorf("start %d is after end %d", c.Start, c.End)
	case c.Root == "" || path.Clean(c.Root) != strings.TrimSuffix(c.Root, "/"):
		return errors.Errorf("invalid root %q", c.Root)
	case c.Root != "/Game" && !strings.HasPrefix(c.Root, "/Game/"):
		return errors.Errorf("root %q is not under /Game", c.Root)
	}
	return nil
}

// Shot is the layout of a single shot.
type Shot struct {
	Number     int
	Name       string
	Folder     string
	Animations string
	Sequence   string
}

// SequencePath is the package path of the shot's level sequence.
func (s Shot) SequencePath() string { return s.Folder + "/" + s.Sequence }

// Plan returns the shots selected by cfg. cfg must be valid.
func Plan(cfg Config) []Shot {
	root := strings.TrimSuffix(cfg.Root, "/")
	var shots []Shot
	for n := cfg.Start; n <= cfg.End; n += cfg.Step {
		name := fmt.Sprintf("Shot%03d", n)
		folder := root + "/" + name
		shots = append(shots, Shot{
			Number:     n,
			Name:       name,
			Folder:     folder,
			Animations: folder + "/" + AnimationsDir,
			Sequence:   name + "_01",
		})
	}
	return shots
}

// Editor is the part of the editor host used to create shots.
type Editor interface {
	editor.AssetLibrary
	editor.AssetTools
	editor.ClassRegistry
	editor.Logger
}

// Result lists the level sequences created and those already present.
type Result struct {
	Shots    []Shot
	Created  []string
	Existing []string
}

// Create makes the root folder and, for each planned shot, its folders and
// level sequence. Existing sequences are left alone, so repeated runs only
// fill in what is missing.
func Create(ctx context.Context, ed Editor, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := editor.RequireClass(ed, SequenceClass, "the Level Sequence module"); err != nil {
		return nil, err
	}
	if err := editor.RequireClass(ed, SequenceFactory, "the Level Sequence Editor module"); err != nil {
		return nil, err
	}
	if err := ed.MakeDirectory(cfg.Root); err != nil {
		return nil, errors.Wrapf(err, "making %s", cfg.Root)
	}
	res := &Result{Shots: Plan(cfg)}
	for _, s := range res.Shots {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		for _, dir := range []string{s.Folder, s.Animations} {
			if err := ed.MakeDirectory(dir); err != nil {
				return res, errors.Wrapf(err, "making %s", dir)
			}
		}
		if ed.DoesAssetExist(s.SequencePath()) {
			res.Existing = append(res.Existing, s.SequencePath())
			continue
		}
		if _, err := ed.CreateAsset(s.Sequence, s.Folder, SequenceClass, SequenceFactory); err != nil {
			return res, errors.Wrapf(err, "creating %s", s.SequencePath())
		}
		ed.Logf("Created level sequence: %s", s.SequencePath())
		res.Created = append(res.Created, s.SequencePath())
	}
	ed.Logf("Prepared %d shots under %s: %d sequences created, %d already present.", len(res.Shots), cfg.Root, len(res.Created), len(res.Existing))
	return res, nil
}
