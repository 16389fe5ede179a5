// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

// Package editor describes the scripting surface of a content-creation editor.
//
// Automation routines are written against the interfaces in this package and
// never against a concrete editor. See the snapshot package for a host backed
// by a YAML project description.
package editor

import (
	"fmt"
	"path"
	"strings"

	"github.com/pkg/errors"
)

// AssetData identifies an asset in the asset registry.
type AssetData struct {
	PackageName string
	AssetName   string
	AssetClass  string
}

// ObjectPath returns the fully qualified object path, e.g. "/Game/Maps/Forest.Forest".
func (a AssetData) ObjectPath() string {
	return a.PackageName + "." + a.AssetName
}

// SplitObjectPath splits an object path into its package and asset names.
// A bare package path names the asset with the package's last element.
func SplitObjectPath(p string) (pkg, name string) {
	if i := strings.LastIndexByte(p, '.'); i > strings.LastIndexByte(p, '/') {
		return p[:i], p[i+1:]
	}
	return p, path.Base(p)
}

// DependencyKind classifies an edge in the asset reference graph.
type DependencyKind string

const (
	HardDependency       DependencyKind = "hard"
	SoftDependency       DependencyKind = "soft"
	SearchableDependency DependencyKind = "searchable"
	ManageDependency     DependencyKind = "manage"
)

func (k DependencyKind) Valid() bool {
	switch k {
	case HardDependency, SoftDependency, SearchableDependency, ManageDependency:
		return true
	}
	return false
}

// DependencyOptions selects which kinds of edges a registry query follows.
type DependencyOptions struct {
	IncludeHard       bool
	IncludeSoft       bool
	IncludeSearchable bool
	IncludeManage     bool
}

// HardDependencies follows hard references only.
var HardDependencies = DependencyOptions{IncludeHard: true}

// FollowKinds returns the options selecting exactly kinds. Unknown kinds are
// ignored.
func FollowKinds(kinds ...DependencyKind) DependencyOptions {
	var o DependencyOptions
	for _, k := range kinds {
		switch k {
		case HardDependency:
			o.IncludeHard = true
		case SoftDependency:
			o.IncludeSoft = true
		case SearchableDependency:
			o.IncludeSearchable = true
		case ManageDependency:
			o.IncludeManage = true
		}
	}
	return o
}

// Includes reports whether edges of kind k are selected.
func (o DependencyOptions) Includes(k DependencyKind) bool {
	switch k {
	case HardDependency:
		return o.IncludeHard
	case SoftDependency:
		return o.IncludeSoft
	case SearchableDependency:
		return o.IncludeSearchable
	case ManageDependency:
		return o.IncludeManage
	}
	return false
}

// Mobility is a scene component's mobility setting.
type Mobility string

const (
	Static     Mobility = "Static"
	Stationary Mobility = "Stationary"
	Movable    Mobility = "Movable"
)

// ParseMobility accepts the canonical names case-insensitively.
func ParseMobility(s string) (Mobility, error) {
	for _, m := range []Mobility{Static, Stationary, Movable} {
		if strings.EqualFold(s, string(m)) {
			return m, nil
		}
	}
	return "", errors.Errorf("unknown mobility %q", s)
}

// Vector2D is a position in a node graph.
type Vector2D struct {
	X, Y float64
}

func (v Vector2D) String() string {
	return fmt.Sprintf("(%g, %g)", v.X, v.Y)
}

// Pin addresses an input or output of a graph node.
type Pin struct {
	// Node is the PathName of the node owning the pin.
	Node   string
	Output bool
	// Index is the input slot. Output pins always use 0.
	Index int
}
