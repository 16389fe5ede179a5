// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

// Package levelprune deletes a level together with the assets only it uses.
package levelprune

import (
	"context"
	"sort"

	"github.com/google/contentkit/internal/glob"
	"github.com/google/contentkit/pkg/editor"
	"github.com/pkg/errors"
)

var (
	ErrNoLevelSelected        = errors.New("no level asset selected; select exactly one level in the content browser")
	ErrMultipleLevelsSelected = errors.New("multiple level assets selected; select only one level")
)

const worldClass = "World"

// Editor is the part of the editor host used to prune a level.
type Editor interface {
	editor.Selection
	editor.AssetRegistry
	editor.AssetLibrary
	editor.Logger
}

// SelectedLevel returns the single selected World asset. Selected assets of
// other classes are ignored.
func SelectedLevel(sel editor.Selection) (editor.AssetData, error) {
	assets, err := sel.SelectedAssetData()
	if err != nil {
		return editor.AssetData{}, errors.Wrap(err, "reading selection")
	}
	var levels []editor.AssetData
	for _, a := range assets {
		if a.AssetClass == worldClass {
			levels = append(levels, a)
		}
	}
	switch len(levels) {
	case 0:
		return editor.AssetData{}, ErrNoLevelSelected
	case 1:
		return levels[0], nil
	default:
		return editor.AssetData{}, ErrMultipleLevelsSelected
	}
}

// GatherDependencies returns every package reachable from root through edges
// selected by opts, excluding root itself.
func GatherDependencies(reg editor.AssetRegistry, root string, opts editor.DependencyOptions) (map[string]bool, error) {
	deps := make(map[string]bool)
	visited := make(map[string]bool)
	stack := []string{root}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[cur] {
			continue
		}
		visited[cur] = true
		direct, err := reg.Dependencies(cur, opts)
		if err != nil {
			return nil, errors.Wrapf(err, "dependencies of %s", cur)
		}
		for _, d := range direct {
			if d == root {
				continue
			}
			deps[d] = true
			if !visited[d] {
				stack = append(stack, d)
			}
		}
	}
	return deps, nil
}

// ComputeExclusive returns the candidates referenced only by root or by other
// exclusive candidates. Candidates are removed until no remaining one has an
// outside referencer.
func ComputeExclusive(reg editor.AssetRegistry, root string, candidates map[string]bool, opts editor.DependencyOptions) (map[string]bool, error) {
	exclusive := make(map[string]bool, len(candidates))
	for c := range candidates {
		exclusive[c] = true
	}
	for changed := true; changed && len(exclusive) > 0; {
		changed = false
		for _, pkg := range sortedSet(exclusive) {
			refs, err := reg.Referencers(pkg, opts)
			if err != nil {
				return nil, errors.Wrapf(err, "referencers of %s", pkg)
			}
			for _, r := range refs {
				if r != root && !exclusive[r] {
					delete(exclusive, pkg)
					changed = true
					break
				}
			}
		}
	}
	return exclusive, nil
}

type Options struct {
	// DryRun computes and logs the plan without deleting anything.
	DryRun bool
	// Keep lists package patterns that are never deleted. A kept package
	// counts as a referencer from outside the level, so the packages it
	// uses are never deleted either.
	Keep []string
	// Dependencies selects the reference edges to follow. The zero value
	// follows hard references only.
	Dependencies editor.DependencyOptions
}

func (o Options) Validate() error {
	_, err := glob.Compile(o.Keep...)
	return errors.Wrap(err, "keep")
}

// Result describes a pruning run. Package lists are sorted.
type Result struct {
	Level      editor.AssetData
	Candidates []string
	Exclusive  []string
	// Shared excludes kept packages.
	Shared []string
	// Kept lists the candidates matched by Options.Keep.
	Kept []string
	// Deleted and Failed list object paths.
	Deleted []string
	Failed  []string
}

// DeleteLevel deletes the selected level and the packages exclusive to it.
// Failing to delete one asset is logged and does not stop the run.
func DeleteLevel(ctx context.Context, ed Editor, opts Options) (*Result, error) {
	keep, err := glob.Compile(opts.Keep...)
	if err != nil {
		return nil, errors.Wrap(err, "keep")
	}
	depOpts := opts.Dependencies
	if depOpts == (editor.DependencyOptions{}) {
		depOpts = editor.HardDependencies
	}
	level, err := SelectedLevel(ed)
	if err != nil {
		ed.Errorf("%v", err)
		return nil, err
	}
	res := &Result{Level: level}
	ed.Logf("Gathering dependencies for level: %s", level.ObjectPath())
	candidates, err := GatherDependencies(ed, level.PackageName, depOpts)
	if err != nil {
		return nil, err
	}
	res.Candidates = sortedSet(candidates)
	if len(candidates) == 0 {
		ed.Logf("No dependent assets found for the selected level.")
	} else {
		ed.Logf("Found %d candidate dependent packages.", len(candidates))
	}
	pool := make(map[string]bool, len(candidates))
	for c := range candidates {
		if keep.Match(c) {
			res.Kept = append(res.Kept, c)
			continue
		}
		pool[c] = true
	}
	sort.Strings(res.Kept)
	if n := len(res.Kept); n > 0 {
		ed.Warningf("Keeping %d packages matched by keep patterns.", n)
	}
	// Kept packages stay out of the pool, so they count as outside
	// referencers and everything they use survives.
	exclusive, err := ComputeExclusive(ed, level.PackageName, pool, depOpts)
	if err != nil {
		return nil, err
	}
	for _, c := range sortedSet(pool) {
		if !exclusive[c] {
			res.Shared = append(res.Shared, c)
		}
	}
	if n := len(res.Shared); n > 0 {
		ed.Warningf("Skipping %d shared packages that are referenced outside the selected level.", n)
	}
	res.Exclusive = sortedSet(exclusive)
	if opts.DryRun {
		for _, pkg := range res.Exclusive {
			ed.Logf("Would delete package: %s", pkg)
		}
		ed.Logf("Would delete level asset: %s", level.ObjectPath())
		return res, nil
	}

	if len(res.Exclusive) > 0 {
		ed.Logf("Deleting %d exclusive dependent packages...", len(res.Exclusive))
	} else {
		ed.Logf("No exclusive dependent assets to delete.")
	}
	for _, pkg := range res.Exclusive {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		assets, err := ed.AssetsByPackageName(pkg)
		if err != nil {
			return res, errors.Wrapf(err, "assets of %s", pkg)
		}
		if len(assets) == 0 {
			ed.Warningf("No assets found in package '%s', skipping.", pkg)
			continue
		}
		for _, a := range assets {
			res.deleteAsset(ed, a.ObjectPath(), "Deleted asset", "Failed to delete asset")
		}
	}
	res.deleteAsset(ed, level.ObjectPath(), "Deleted level asset", "Failed to delete level asset")
	return res, nil
}

func (r *Result) deleteAsset(ed Editor, objectPath, ok, failed string) {
	if err := ed.DeleteAsset(objectPath); err != nil {
		ed.Errorf("%s: %s (%v)", failed, objectPath, err)
		r.Failed = append(r.Failed, objectPath)
		return
	}
	ed.Logf("%s: %s", ok, objectPath)
	r.Deleted = append(r.Deleted, objectPath)
}

func sortedSet(s map[string]bool) []string {
	out := make([]string, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
