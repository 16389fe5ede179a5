// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

// Package snapshot implements an editor host over a YAML project description.
//
// A Project lists the assets of a content tree, their reference graph and the
// actors of each level. A Host loaded from a Project answers every editor
// query from that model and applies edits to it, so the edited project can be
// saved back as YAML.
package snapshot

import (
	"io"
	"os"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/google/contentkit/internal/billyx"
	"github.com/google/contentkit/internal/semver"
	"github.com/google/contentkit/pkg/editor"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Project is the serialized editor state.
type Project struct {
	EngineVersion string   `yaml:"engine_version"`
	Plugins       []string `yaml:"plugins,omitempty"`
	// Classes declares project classes such as Blueprints, mapped to their parent class.
	Classes     map[string]string `yaml:"classes,omitempty"`
	Directories []string          `yaml:"directories,omitempty"`
	// Selection holds object paths selected in the content browser.
	Selection []string `yaml:"selection,omitempty"`
	Assets    []*Asset `yaml:"assets,omitempty"`
	Levels    []*Level `yaml:"levels,omitempty"`
}

type Asset struct {
	Package      string         `yaml:"package"`
	Name         string         `yaml:"name"`
	Class        string         `yaml:"class"`
	GUID         string         `yaml:"guid,omitempty"`
	ReadOnly     bool           `yaml:"read_only,omitempty"`
	Dependencies []Dependency   `yaml:"dependencies,omitempty"`
	Properties   map[string]any `yaml:"properties,omitempty"`
	Graph        *Graph         `yaml:"graph,omitempty"`
}

func (a *Asset) data() editor.AssetData {
	return editor.AssetData{PackageName: a.Package, AssetName: a.Name, AssetClass: a.Class}
}

type Dependency struct {
	Package string                `yaml:"package"`
	Kind    editor.DependencyKind `yaml:"kind,omitempty"`
}

// Graph is a cloth asset's node graph.
type Graph struct {
	Nodes []*Node `yaml:"nodes,omitempty"`
	Edges []Edge  `yaml:"edges,omitempty"`
}

type Node struct {
	ID         string         `yaml:"id"`
	Class      string         `yaml:"class"`
	X          float64        `yaml:"x"`
	Y          float64        `yaml:"y"`
	Properties map[string]any `yaml:"properties,omitempty"`
}

// Edge connects the output of node From to input Input of node To.
type Edge struct {
	From  string `yaml:"from"`
	To    string `yaml:"to"`
	Input int    `yaml:"input"`
}

type Level struct {
	Package string   `yaml:"package"`
	Actors  []*Actor `yaml:"actors,omitempty"`
}

type Actor struct {
	Name  string `yaml:"name"`
	Class string `yaml:"class"`
	// LightComponent names the component returned as the actor's primary light.
	LightComponent string       `yaml:"light_component,omitempty"`
	Components     []*Component `yaml:"components,omitempty"`
}

type Component struct {
	Name     string `yaml:"name"`
	Class    string `yaml:"class"`
	Mobility string `yaml:"mobility,omitempty"`
}

// Validate checks the structural consistency of the project.
func (p *Project) Validate() error {
	if _, err := semver.New(p.EngineVersion); err != nil {
		return errors.Wrap(err, "engine_version")
	}
	seen := make(map[string]bool)
	for i, a := range p.Assets {
		switch {
		case !strings.HasPrefix(a.Package, "/"):
			return errors.Errorf("assets[%d]: package %q is not absolute", i, a.Package)
		case a.Name == "":
			return errors.Errorf("assets[%d]: missing name", i)
		case a.Class == "":
			return errors.Errorf("assets[%d]: missing class", i)
		}
		if seen[a.data().ObjectPath()] {
			return errors.Errorf("assets[%d]: duplicate asset %s", i, a.data().ObjectPath())
		}
		seen[a.data().ObjectPath()] = true
		for _, d := range a.Dependencies {
			if d.Kind != "" && !d.Kind.Valid() {
				return errors.Errorf("assets[%d]: unknown dependency kind %q", i, d.Kind)
			}
		}
	}
	for i, l := range p.Levels {
		for j, a := range l.Actors {
			names := make(map[string]bool)
			for _, c := range a.Components {
				if names[c.Name] {
					return errors.Errorf("levels[%d].actors[%d]: duplicate component %q", i, j, c.Name)
				}
				names[c.Name] = true
			}
			if a.LightComponent != "" && !names[a.LightComponent] {
				return errors.Errorf("levels[%d].actors[%d]: light_component %q is not a component", i, j, a.LightComponent)
			}
		}
	}
	return nil
}

// Decode reads and validates a YAML project.
func Decode(r io.Reader) (*Project, error) {
	var p Project
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		return nil, errors.Wrap(err, "decoding project")
	}
	if err := p.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid project")
	}
	return &p, nil
}

// Encode writes p as YAML.
func (p *Project) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(p); err != nil {
		return errors.Wrap(err, "encoding project")
	}
	return enc.Close()
}

// Load reads the project at path from fs.
func Load(fs billy.Filesystem, path string) (*Project, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening project %s", path)
	}
	defer f.Close()
	p, err := Decode(f)
	return p, errors.Wrap(err, path)
}

// Save atomically replaces the project at path.
func (p *Project) Save(fs billy.Filesystem, path string) error {
	return billyx.WriteFileAtomic(fs, path, os.FileMode(0o644), p.Encode)
}
