// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

// Package taskconfig reads the TOML file that configures ctl tasks.
//
//	[fonts]
//	font = "Noto Sans KR"
//	parts = ["ppt/**/*.xml"]
//
//	[shots]
//	root = "/Game/Sequences/Shot"
//	start = 10
//	end = 80
//	step = 10
//
//	[wardrobe]
//	body_mesh = "/Game/MetaHumans/Common/Body/Medium/MH_Medium_Body"
//	clothing_meshes = ["/Game/Characters/Outfits/SM_Top_A"]
//
//	[levelprune]
//	keep = ["/Game/Shared/**"]
//	dependencies = ["hard"]
//
// Every key is optional. Unset keys take the task's defaults.
package taskconfig

import (
	"io"
	"os"

	"github.com/go-git/go-billy/v5"
	"github.com/google/contentkit/pkg/editor"
	"github.com/google/contentkit/pkg/fontswap"
	"github.com/google/contentkit/pkg/levelprune"
	"github.com/google/contentkit/pkg/shots"
	"github.com/google/contentkit/pkg/wardrobe"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
)

type File struct {
	Fonts      Fonts      `toml:"fonts"`
	Shots      Shots      `toml:"shots"`
	Wardrobe   Wardrobe   `toml:"wardrobe"`
	LevelPrune LevelPrune `toml:"levelprune"`
}

type Fonts struct {
	Font  string   `toml:"font"`
	Parts []string `toml:"parts"`
}

type Shots struct {
	Root  string `toml:"root"`
	Start *int   `toml:"start"`
	End   *int   `toml:"end"`
	Step  *int   `toml:"step"`
}

type Wardrobe struct {
	BodyMesh       string   `toml:"body_mesh"`
	ClothingMeshes []string `toml:"clothing_meshes"`
	TargetFolder   string   `toml:"target_folder"`
	ClothName      string   `toml:"cloth_name"`
	OutfitName     string   `toml:"outfit_name"`
	ItemName       string   `toml:"item_name"`
}

type LevelPrune struct {
	Keep         []string                `toml:"keep"`
	Dependencies []editor.DependencyKind `toml:"dependencies"`
}

// Decode parses a task file. Unknown keys are rejected.
func Decode(r io.Reader) (*File, error) {
	var f File
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		var sme *toml.StrictMissingError
		if errors.As(err, &sme) {
			return nil, errors.Errorf("decoding task config: %s", sme.String())
		}
		return nil, errors.Wrap(err, "decoding task config")
	}
	for _, k := range f.LevelPrune.Dependencies {
		if !k.Valid() {
			return nil, errors.Errorf("levelprune.dependencies: unknown kind %q", k)
		}
	}
	return &f, nil
}

// Load reads the task file at path. An empty path yields an empty File; a
// named file that does not exist is an error.
func Load(fs billy.Filesystem, path string) (*File, error) {
	if path == "" {
		return &File{}, nil
	}
	r, err := fs.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Errorf("task config %s does not exist", path)
		}
		return nil, errors.Wrapf(err, "opening %s", path)
	}
	defer r.Close()
	f, err := Decode(r)
	return f, errors.Wrap(err, path)
}

// FontOptions returns the conversion options, defaults included.
func (f *File) FontOptions() fontswap.Options {
	opts := fontswap.Options{Font: fontswap.DefaultFont, Parts: fontswap.DefaultParts}
	if f.Fonts.Font != "" {
		opts.Font = f.Fonts.Font
	}
	if len(f.Fonts.Parts) > 0 {
		opts.Parts = f.Fonts.Parts
	}
	return opts
}

// ShotsConfig returns the shot layout, defaults included.
func (f *File) ShotsConfig() shots.Config {
	cfg := shots.DefaultConfig()
	if f.Shots.Root != "" {
		cfg.Root = f.Shots.Root
	}
	if f.Shots.Start != nil {
		cfg.Start = *f.Shots.Start
	}
	if f.Shots.End != nil {
		cfg.End = *f.Shots.End
	}
	if f.Shots.Step != nil {
		cfg.Step = *f.Shots.Step
	}
	return cfg
}

// WardrobeConfig returns the wardrobe build inputs, defaults included.
func (f *File) WardrobeConfig() wardrobe.Config {
	w := f.Wardrobe
	return wardrobe.Config{
		BodyMesh:       w.BodyMesh,
		ClothingMeshes: w.ClothingMeshes,
		TargetFolder:   w.TargetFolder,
		ClothName:      w.ClothName,
		OutfitName:     w.OutfitName,
		ItemName:       w.ItemName,
	}.WithDefaults()
}

// LevelPruneOptions returns the pruning options. Hard references are followed
// when no dependency kinds are listed.
func (f *File) LevelPruneOptions() levelprune.Options {
	opts := levelprune.Options{Keep: f.LevelPrune.Keep, Dependencies: editor.HardDependencies}
	if len(f.LevelPrune.Dependencies) > 0 {
		opts.Dependencies = editor.FollowKinds(f.LevelPrune.Dependencies...)
	}
	return opts
}
