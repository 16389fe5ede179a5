// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package taskconfig

import (
	"strings"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/google/contentkit/pkg/editor"
	"github.com/google/contentkit/pkg/fontswap"
	"github.com/google/contentkit/pkg/levelprune"
	"github.com/google/contentkit/pkg/shots"
	"github.com/google/contentkit/pkg/wardrobe"
	"github.com/google/go-cmp/cmp"
)

const full = `
[fonts]
font = "Pretendard"
parts = ["ppt/slides/*.xml"]

[shots]
root = "/Game/Cinematics"
start = 0
step = 5

[wardrobe]
body_mesh = "/Game/Body/MH_Body"
clothing_meshes = ["/Game/Outfits/SM_Top", "/Game/Outfits/SM_Pants"]
cloth_name = "Cloth"

[levelprune]
keep = ["/Game/Shared/**"]
dependencies = ["hard", "soft"]
`

func TestDecode(t *testing.T) {
	f, err := Decode(strings.NewReader(full))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if diff := cmp.Diff(fontswap.Options{Font: "Pretendard", Parts: []string{"ppt/slides/*.xml"}}, f.FontOptions()); diff != "" {
		t.Errorf("FontOptions() (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(shots.Config{Root: "/Game/Cinematics", Start: 0, End: shots.DefaultEnd, Step: 5}, f.ShotsConfig()); diff != "" {
		t.Errorf("ShotsConfig() (-want +got):\n%s", diff)
	}
	wantWardrobe := wardrobe.Config{
		BodyMesh:       "/Game/Body/MH_Body",
		ClothingMeshes: []string{"/Game/Outfits/SM_Top", "/Game/Outfits/SM_Pants"},
		TargetFolder:   wardrobe.DefaultTargetFolder,
		ClothName:      "Cloth",
		OutfitName:     wardrobe.DefaultOutfitName,
		ItemName:       wardrobe.DefaultItemName,
	}
	if diff := cmp.Diff(wantWardrobe, f.WardrobeConfig()); diff != "" {
		t.Errorf("WardrobeConfig() (-want +got):\n%s", diff)
	}
	wantPrune := levelprune.Options{
		Keep:         []string{"/Game/Shared/**"},
		Dependencies: editor.DependencyOptions{IncludeHard: true, IncludeSoft: true},
	}
	if diff := cmp.Diff(wantPrune, f.LevelPruneOptions()); diff != "" {
		t.Errorf("LevelPruneOptions() (-want +got):\n%s", diff)
	}
}

func TestDefaults(t *testing.T) {
	f, err := Decode(strings.NewReader(""))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(shots.DefaultConfig(), f.ShotsConfig()); diff != "" {
		t.Errorf("ShotsConfig() (-want +got):\n%s", diff)
	}
	if got := f.FontOptions(); got.Font != fontswap.DefaultFont {
		t.Errorf("FontOptions().Font = %q", got.Font)
	}
	if got := f.LevelPruneOptions().Dependencies; got != editor.HardDependencies {
		t.Errorf("LevelPruneOptions().Dependencies = %+v", got)
	}
	if got := f.WardrobeConfig().TargetFolder; got != wardrobe.DefaultTargetFolder {
		t.Errorf("WardrobeConfig().TargetFolder = %q", got)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"unknown key", "[shots]\nfirst = 1\n", "first"},
		{"unknown kind", "[levelprune]\ndependencies = [\"weak\"]\n", "weak"},
		{"wrong type", "[shots]\nstart = \"ten\"\n", "decoding task config"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tc.doc))
			if err == nil {
				t.Fatal("Decode() succeeded, want error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("Decode() error = %v, want mention of %q", err, tc.want)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	fs := memfs.New()
	if err := util.WriteFile(fs, "/tasks.toml", []byte(full), 0o644); err != nil {
		t.Fatal(err)
	}
	f, err := Load(fs, "/tasks.toml")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if f.Fonts.Font != "Pretendard" {
		t.Errorf("Fonts.Font = %q", f.Fonts.Font)
	}
	empty, err := Load(fs, "")
	if err != nil || empty == nil {
		t.Errorf("Load(\"\") = %v, %v", empty, err)
	}
	if _, err := Load(fs, "/missing.toml"); err == nil {
		t.Error("Load() of a missing file succeeded")
	}
}
