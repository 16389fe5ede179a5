// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package lightsmovable

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/google/contentkit/pkg/act/cli"
	"github.com/google/contentkit/pkg/editor/snapshot"
	"github.com/google/contentkit/tools/ctl/session"
	"github.com/google/go-cmp/cmp"
)

const project = `
engine_version: 5.6.0
levels:
  - package: /Game/Maps/Forest
    actors:
      - name: Lamp
        class: PointLight
        light_component: LightComponent0
        components:
          - {name: LightComponent0, class: PointLightComponent, mobility: Static}
      - name: Sun
        class: DirectionalLight
        light_component: LightComponent0
        components:
          - {name: LightComponent0, class: DirectionalLightComponent, mobility: Movable}
`

func TestHandler(t *testing.T) {
	tests := []struct {
		name         string
		dryRun       bool
		wantMobility string
	}{
		{name: "write", wantMobility: "Movable"},
		{name: "dry run", dryRun: true, wantMobility: "Static"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fs := memfs.New()
			if err := util.WriteFile(fs, "/project.yaml", []byte(project), 0o644); err != nil {
				t.Fatal(err)
			}
			var out, log bytes.Buffer
			deps := &Deps{FS: fs, IO: cli.IO{Out: &out, Err: &log}}
			cfg := Config{Flags: session.Flags{Project: "/project.yaml", DryRun: tc.dryRun}}
			if _, err := Handler(context.Background(), cfg, deps); err != nil {
				t.Fatalf("Handler() error = %v", err)
			}
			want := "1 of 2 light components on 2 actors set to Movable\nmodified levels: /Game/Maps/Forest\n"
			if diff := cmp.Diff(want, out.String()); diff != "" {
				t.Errorf("output mismatch (-want +got):\n%s", diff)
			}
			p, err := snapshot.Load(fs, "/project.yaml")
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if got := p.Levels[0].Actors[0].Components[0].Mobility; got != tc.wantMobility {
				t.Errorf("Lamp mobility = %q, want %q", got, tc.wantMobility)
			}
		})
	}
}

func TestHandlerRelativeProject(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	if err := os.WriteFile(filepath.Join(dir, "project.yaml"), []byte(project), 0o644); err != nil {
		t.Fatal(err)
	}
	deps, err := InitDeps(context.Background())
	if err != nil {
		t.Fatalf("InitDeps() error = %v", err)
	}
	var out, log bytes.Buffer
	deps.SetIO(cli.IO{Out: &out, Err: &log})
	cfg := Config{Flags: session.Flags{Project: "project.yaml"}}
	if _, err := Handler(context.Background(), cfg, deps); err != nil {
		t.Fatalf("Handler() error = %v", err)
	}
	p, err := snapshot.Load(deps.FS, filepath.Join(dir, "project.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := p.Levels[0].Actors[0].Components[0].Mobility; got != "Movable" {
		t.Errorf("Lamp mobility = %q, want Movable", got)
	}
}

func TestValidation(t *testing.T) {
	if err := (Config{}).Validate(); err == nil {
		t.Error("Validate() without a project succeeded, want error")
	}
}
