// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package editor

import (
	"github.com/google/contentkit/internal/semver"
	"github.com/pkg/errors"
)

var (
	ErrAssetNotFound    = errors.New("asset not found")
	ErrPropertyNotFound = errors.New("property not found")
	ErrNoLightComponent = errors.New("actor has no light component")
)

// Object is a loaded editor object: an asset, a graph or a graph node.
type Object interface {
	PathName() string
	Class() string
	EditorProperty(name string) (any, error)
	// SetEditorProperty accepts scalars, Objects, slices of either and
	// map[string]any structs built from those.
	SetEditorProperty(name string, value any) error
}

// AssetLibrary loads, saves and deletes assets by path.
type AssetLibrary interface {
	LoadAsset(path string) (Object, error)
	DoesAssetExist(path string) bool
	DoesDirectoryExist(path string) bool
	MakeDirectory(path string) error
	DeleteAsset(objectPath string) error
	SaveAsset(path string) error
}

// AssetRegistry answers queries over the package reference graph.
type AssetRegistry interface {
	Dependencies(pkg string, opts DependencyOptions) ([]string, error)
	Referencers(pkg string, opts DependencyOptions) ([]string, error)
	AssetsByPackageName(pkg string) ([]AssetData, error)
}

// AssetTools creates new assets through a factory.
type AssetTools interface {
	CreateAsset(name, folder, class, factory string) (Object, error)
}

// Selection exposes the content browser selection.
type Selection interface {
	SelectedAssetData() ([]AssetData, error)
}

// LevelEditor exposes the actors of the loaded level.
type LevelEditor interface {
	AllLevelActors() ([]Actor, error)
}

type Package interface {
	Name() string
	MarkDirty()
}

type Actor interface {
	Name() string
	Class() string
	// LightComponent returns the actor's primary light component or an error
	// wrapping ErrNoLightComponent.
	LightComponent() (Component, error)
	ComponentsByClass(class string) ([]Component, error)
	Modify()
	PostEditChange()
	// Level returns the package of the level owning the actor, or nil.
	Level() Package
}

type Component interface {
	Name() string
	Class() string
	Mobility() (Mobility, error)
	SetMobility(Mobility) error
	Modify()
	PostEditChange()
	Outermost() Package
}

// ClassRegistry resolves classes by short name ("SkeletalMesh") or script
// path ("/Script/ClothEditor.ClothAsset").
type ClassRegistry interface {
	HasClass(name string) bool
	IsChildOf(class, parent string) bool
	EngineVersion() semver.Version
}

// ClothEditor is the cloth asset editor subsystem.
type ClothEditor interface {
	// HasMethod reports whether the subsystem exposes the named scripting method.
	HasMethod(name string) bool
	ResetGraph(asset Object) error
	Graph(asset Object) (Object, error)
	AddNode(graph Object, class string, pos Vector2D) (Object, error)
	OutputPin(node Object) (Pin, error)
	InputPin(node Object, index int) (Pin, error)
	ConnectPins(from, to Pin) error
	CompileClothAsset(asset Object) error
	TerminalNode(asset Object) (Object, error)
}

// Subsystems provides editor subsystems that may be absent.
type Subsystems interface {
	ClothEditor() (ClothEditor, error)
}

// Logger is the editor's output log.
type Logger interface {
	Logf(format string, args ...any)
	Warningf(format string, args ...any)
	Errorf(format string, args ...any)
}

// Host is the full scripting surface.
type Host interface {
	AssetLibrary
	AssetRegistry
	AssetTools
	Selection
	LevelEditor
	ClassRegistry
	Subsystems
	Logger
}
