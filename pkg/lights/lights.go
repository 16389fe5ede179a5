// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

// Package lights normalizes the mobility of light components in a level.
package lights

import (
	"context"
	"sort"

	"github.com/google/contentkit/pkg/editor"
	"github.com/pkg/errors"
)

// LightComponentBase is the root class of every light component.
const LightComponentBase = "LightComponentBase"

// Editor is the part of the editor host used to convert lights.
type Editor interface {
	editor.LevelEditor
	editor.ClassRegistry
	editor.Logger
}

// GatherLightComponents returns the actor's primary light component followed
// by every owned component deriving from LightComponentBase, without
// duplicates. Blueprint actors expose their lights through the owned
// components. Query failures count as no components.
func GatherLightComponents(actor editor.Actor, classes editor.ClassRegistry) []editor.Component {
	var found []editor.Component
	if c, err := actor.LightComponent(); err == nil && c != nil && classes.IsChildOf(c.Class(), LightComponentBase) {
		found = append(found, c)
	}
	if owned, err := actor.ComponentsByClass(LightComponentBase); err == nil {
		found = append(found, owned...)
	}
	seen := make(map[editor.Component]bool, len(found))
	unique := found[:0]
	for _, c := range found {
		if !seen[c] {
			seen[c] = true
			unique = append(unique, c)
		}
	}
	return unique
}

// SetMovable makes c Movable and dirties its package. It reports false when c
// is already Movable or its mobility cannot be read.
func SetMovable(c editor.Component) (bool, error) {
	if c == nil {
		return false, nil
	}
	m, err := c.Mobility()
	if err != nil || m == editor.Movable {
		return false, nil
	}
	c.Modify()
	if err := c.SetMobility(editor.Movable); err != nil {
		return false, errors.Wrapf(err, "setting mobility of %s", c.Name())
	}
	c.PostEditChange()
	if pkg := c.Outermost(); pkg != nil {
		pkg.MarkDirty()
	}
	return true, nil
}

// Summary counts the work done by ConvertAllToMovable.
type Summary struct {
	Actors     int
	Components int
	Updated    int
	// DirtyPackages lists the level packages of updated actors, sorted.
	DirtyPackages []string
}

// ConvertAllToMovable sets every light component of every level actor to
// Movable.
func ConvertAllToMovable(ctx context.Context, ed Editor) (*Summary, error) {
	actors, err := ed.AllLevelActors()
	if err != nil {
		return nil, errors.Wrap(err, "listing level actors")
	}
	s := &Summary{Actors: len(actors)}
	touched := make(map[string]editor.Package)
	for _, actor := range actors {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		components := GatherLightComponents(actor, ed)
		changed := false
		for _, c := range components {
			s.Components++
			ok, err := SetMovable(c)
			if err != nil {
				return nil, errors.Wrapf(err, "actor %s", actor.Name())
			}
			if ok {
				s.Updated++
				changed = true
			}
		}
		if !changed {
			continue
		}
		actor.Modify()
		actor.PostEditChange()
		if level := actor.Level(); level != nil {
			touched[level.Name()] = level
		}
	}
	for name, pkg := range touched {
		pkg.MarkDirty()
		s.DirtyPackages = append(s.DirtyPackages, name)
	}
	sort.Strings(s.DirtyPackages)
	ed.Logf("Scanned %d actors. Found %d light components and updated %d to Movable.", s.Actors, s.Components, s.Updated)
	return s, nil
}
