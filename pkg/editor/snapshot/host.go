// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package snapshot

import (
	"fmt"
	"path"
	"slices"
	"sort"
	"strings"

	"github.com/google/contentkit/internal/semver"
	"github.com/google/contentkit/pkg/editor"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Host is an editor.Host operating on a Project in memory.
type Host struct {
	editor.Logger
	project *Project
	version semver.Version
	classes classes
	dirty   map[string]bool
	saved   []string
	// components keeps component handles stable across queries.
	components map[*Component]*component
	history    []string
	modified   bool
}

var _ editor.Host = &Host{}

// NewHost returns a host editing p. Log output goes to logger.
func NewHost(p *Project, logger editor.Logger) (*Host, error) {
	if err := p.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid project")
	}
	plugins := make(map[string]bool)
	for _, name := range p.Plugins {
		plugins[name] = true
	}
	return &Host{
		Logger:  logger,
		project: p,
		version: semver.MustNew(p.EngineVersion),
		classes: classes{plugins: plugins, project: p.Classes},
		dirty:   make(map[string]bool),

		components: make(map[*Component]*component),
	}, nil
}

// Project returns the edited project.
func (h *Host) Project() *Project { return h.project }

// DirtyPackages returns the packages modified and not saved since load, sorted.
func (h *Host) DirtyPackages() []string {
	var pkgs []string
	for p := range h.dirty {
		pkgs = append(pkgs, p)
	}
	sort.Strings(pkgs)
	return pkgs
}

// SavedAssets returns the object paths passed to SaveAsset, in call order.
func (h *Host) SavedAssets() []string { return slices.Clone(h.saved) }

// History returns the modify and post-edit-change calls made on scene objects.
func (h *Host) History() []string { return slices.Clone(h.history) }

// Modified reports whether any call changed the project.
func (h *Host) Modified() bool { return h.modified }

func (h *Host) markDirty(pkg string) {
	h.dirty[pkg] = true
	h.modified = true
}

func (h *Host) record(format string, args ...any) {
	h.history = append(h.history, fmt.Sprintf(format, args...))
}

// ClassRegistry

func (h *Host) HasClass(name string) bool           { return h.classes.has(name) }
func (h *Host) IsChildOf(class, parent string) bool { return h.classes.isChildOf(class, parent) }
func (h *Host) EngineVersion() semver.Version       { return h.version }

// AssetLibrary

func (h *Host) findAsset(p string) (int, *Asset) {
	pkg, name := editor.SplitObjectPath(p)
	for i, a := range h.project.Assets {
		if a.Package == pkg && a.Name == name {
			return i, a
		}
	}
	return -1, nil
}

func (h *Host) LoadAsset(p string) (editor.Object, error) {
	_, a := h.findAsset(p)
	if a == nil {
		return nil, errors.Wrap(editor.ErrAssetNotFound, p)
	}
	return &assetObject{h: h, a: a}, nil
}

func (h *Host) DoesAssetExist(p string) bool {
	_, a := h.findAsset(p)
	return a != nil
}

func (h *Host) DoesDirectoryExist(dir string) bool {
	dir = path.Clean(dir)
	if slices.Contains(h.project.Directories, dir) {
		return true
	}
	for _, a := range h.project.Assets {
		if strings.HasPrefix(a.Package, dir+"/") {
			return true
		}
	}
	return false
}

// MakeDirectory records dir and its missing parents.
func (h *Host) MakeDirectory(dir string) error {
	dir = path.Clean(dir)
	if !strings.HasPrefix(dir, "/") || dir == "/" {
		return errors.Errorf("invalid directory %q", dir)
	}
	var missing []string
	for d := dir; d != "/"; d = path.Dir(d) {
		if !slices.Contains(h.project.Directories, d) {
			missing = append(missing, d)
		}
	}
	slices.Reverse(missing)
	h.project.Directories = append(h.project.Directories, missing...)
	h.modified = h.modified || len(missing) > 0
	return nil
}

func (h *Host) DeleteAsset(objectPath string) error {
	i, a := h.findAsset(objectPath)
	if a == nil {
		return errors.Wrap(editor.ErrAssetNotFound, objectPath)
	}
	if a.ReadOnly {
		return errors.Errorf("asset %s is read-only", objectPath)
	}
	h.project.Assets = slices.Delete(h.project.Assets, i, i+1)
	h.project.Selection = slices.DeleteFunc(h.project.Selection, func(s string) bool {
		_, sel := h.findAsset(s)
		return sel == nil
	})
	if a.Class == "World" && !h.packageHasAssets(a.Package) {
		h.project.Levels = slices.DeleteFunc(h.project.Levels, func(l *Level) bool {
			return l.Package == a.Package
		})
	}
	delete(h.dirty, a.Package)
	h.modified = true
	return nil
}

func (h *Host) SaveAsset(p string) error {
	_, a := h.findAsset(p)
	if a == nil {
		return errors.Wrap(editor.ErrAssetNotFound, p)
	}
	if a.ReadOnly {
		return errors.Errorf("asset %s is read-only", p)
	}
	h.saved = append(h.saved, a.data().ObjectPath())
	delete(h.dirty, a.Package)
	return nil
}

func (h *Host) packageHasAssets(pkg string) bool {
	return slices.ContainsFunc(h.project.Assets, func(a *Asset) bool { return a.Package == pkg })
}

// AssetRegistry

func (h *Host) Dependencies(pkg string, opts editor.DependencyOptions) ([]string, error) {
	deps := make(map[string]bool)
	for _, a := range h.project.Assets {
		if a.Package != pkg {
			continue
		}
		for _, d := range a.Dependencies {
			if opts.Includes(kindOf(d)) {
				deps[d.Package] = true
			}
		}
	}
	return sortedKeys(deps), nil
}

func (h *Host) Referencers(pkg string, opts editor.DependencyOptions) ([]string, error) {
	refs := make(map[string]bool)
	for _, a := range h.project.Assets {
		for _, d := range a.Dependencies {
			if d.Package == pkg && opts.Includes(kindOf(d)) {
				refs[a.Package] = true
			}
		}
	}
	return sortedKeys(refs), nil
}

func (h *Host) AssetsByPackageName(pkg string) ([]editor.AssetData, error) {
	var assets []editor.AssetData
	for _, a := range h.project.Assets {
		if a.Package == pkg {
			assets = append(assets, a.data())
		}
	}
	return assets, nil
}

func kindOf(d Dependency) editor.DependencyKind {
	if d.Kind == "" {
		return editor.HardDependency
	}
	return d.Kind
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Selection

func (h *Host) SelectedAssetData() ([]editor.AssetData, error) {
	var sel []editor.AssetData
	for _, p := range h.project.Selection {
		_, a := h.findAsset(p)
		if a == nil {
			return nil, errors.Wrapf(editor.ErrAssetNotFound, "selected asset %s", p)
		}
		sel = append(sel, a.data())
	}
	return sel, nil
}

// AssetTools

// CreateAsset adds a new asset named name under folder. Both class and
// factory must resolve, and the asset must not exist yet.
func (h *Host) CreateAsset(name, folder, class, factory string) (editor.Object, error) {
	if err := editor.RequireClass(h, class, "plugin providing the class"); err != nil {
		return nil, err
	}
	if err := editor.RequireClass(h, factory, "plugin providing the factory"); err != nil {
		return nil, err
	}
	if !h.IsChildOf(factory, "Factory") {
		return nil, errors.Errorf("%s is not a factory", factory)
	}
	folder = path.Clean(folder)
	pkg := folder + "/" + name
	if h.DoesAssetExist(pkg) {
		return nil, errors.Errorf("asset %s already exists", pkg)
	}
	if err := h.MakeDirectory(folder); err != nil {
		return nil, err
	}
	short, _ := shortName(class)
	a := &Asset{Package: pkg, Name: name, Class: short, GUID: uuid.NewString()}
	if h.IsChildOf(short, "ClothAsset") {
		a.Graph = newClothGraph()
	}
	h.project.Assets = append(h.project.Assets, a)
	h.markDirty(pkg)
	return &assetObject{h: h, a: a}, nil
}

// LevelEditor

func (h *Host) AllLevelActors() ([]editor.Actor, error) {
	var actors []editor.Actor
	for _, l := range h.project.Levels {
		for _, a := range l.Actors {
			actors = append(actors, &actor{h: h, level: l, a: a})
		}
	}
	return actors, nil
}
