// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package snapshot

import (
	"fmt"

	"github.com/google/contentkit/pkg/editor"
	"github.com/pkg/errors"
)

type assetObject struct {
	h *Host
	a *Asset
}

func (o *assetObject) PathName() string { return o.a.data().ObjectPath() }
func (o *assetObject) Class() string    { return o.a.Class }

func (o *assetObject) EditorProperty(name string) (any, error) {
	v, ok := o.a.Properties[name]
	if !ok {
		return nil, errors.Wrapf(editor.ErrPropertyNotFound, "%s.%s", o.PathName(), name)
	}
	return v, nil
}

func (o *assetObject) SetEditorProperty(name string, value any) error {
	v, err := propertyValue(value)
	if err != nil {
		return errors.Wrapf(err, "setting %s.%s", o.PathName(), name)
	}
	if o.a.Properties == nil {
		o.a.Properties = make(map[string]any)
	}
	o.a.Properties[name] = v
	o.h.markDirty(o.a.Package)
	return nil
}

// propertyValue converts a scripting value into its YAML form. Objects are
// stored by path.
func propertyValue(value any) (any, error) {
	switch v := value.(type) {
	case nil, string, bool, int, int64, float64:
		return v, nil
	case editor.Mobility:
		return string(v), nil
	case editor.Vector2D:
		return map[string]any{"x": v.X, "y": v.Y}, nil
	case editor.Object:
		return v.PathName(), nil
	case []editor.Object:
		out := make([]any, len(v))
		for i, o := range v {
			out[i] = o.PathName()
		}
		return out, nil
	case []string:
		out := make([]any, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out, nil
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			c, err := propertyValue(e)
			if err != nil {
				return nil, errors.Wrapf(err, "[%d]", i)
			}
			out[i] = c
		}
		return out, nil
	case []map[string]any:
		out := make([]any, len(v))
		for i, e := range v {
			c, err := propertyValue(e)
			if err != nil {
				return nil, errors.Wrapf(err, "[%d]", i)
			}
			out[i] = c
		}
		return out, nil
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, e := range v {
			c, err := propertyValue(e)
			if err != nil {
				return nil, errors.Wrap(err, k)
			}
			out[k] = c
		}
		return out, nil
	default:
		return nil, errors.Errorf("unsupported property value of type %T", value)
	}
}

type pkgHandle struct {
	h    *Host
	name string
}

func (p *pkgHandle) Name() string { return p.name }
func (p *pkgHandle) MarkDirty()   { p.h.markDirty(p.name) }

type actor struct {
	h     *Host
	level *Level
	a     *Actor
}

func (a *actor) Name() string  { return a.a.Name }
func (a *actor) Class() string { return a.a.Class }

func (a *actor) path() string { return a.level.Package + ":" + a.a.Name }

// component returns the handle for c, the same one on every call.
func (a *actor) component(c *Component) editor.Component {
	if h, ok := a.h.components[c]; ok {
		return h
	}
	h := &component{owner: a, c: c}
	a.h.components[c] = h
	return h
}

func (a *actor) LightComponent() (editor.Component, error) {
	if a.a.LightComponent == "" {
		return nil, errors.Wrap(editor.ErrNoLightComponent, a.path())
	}
	for _, c := range a.a.Components {
		if c.Name == a.a.LightComponent {
			return a.component(c), nil
		}
	}
	return nil, errors.Errorf("%s: light component %q not found", a.path(), a.a.LightComponent)
}

func (a *actor) ComponentsByClass(class string) ([]editor.Component, error) {
	if !a.h.HasClass(class) {
		return nil, errors.Errorf("unknown class %q", class)
	}
	var out []editor.Component
	for _, c := range a.a.Components {
		if a.h.IsChildOf(c.Class, class) {
			out = append(out, a.component(c))
		}
	}
	return out, nil
}

func (a *actor) Modify()         { a.h.record("modify %s", a.path()) }
func (a *actor) PostEditChange() { a.h.record("post_edit_change %s", a.path()) }
func (a *actor) Level() editor.Package {
	return &pkgHandle{h: a.h, name: a.level.Package}
}

type component struct {
	owner *actor
	c     *Component
}

func (c *component) Name() string  { return c.c.Name }
func (c *component) Class() string { return c.c.Class }

func (c *component) path() string { return fmt.Sprintf("%s.%s", c.owner.path(), c.c.Name) }

func (c *component) Mobility() (editor.Mobility, error) {
	m, err := editor.ParseMobility(c.c.Mobility)
	return m, errors.Wrap(err, c.path())
}

func (c *component) SetMobility(m editor.Mobility) error {
	if _, err := editor.ParseMobility(string(m)); err != nil {
		return err
	}
	c.c.Mobility = string(m)
	c.owner.h.modified = true
	return nil
}

func (c *component) Modify()         { c.owner.h.record("modify %s", c.path()) }
func (c *component) PostEditChange() { c.owner.h.record("post_edit_change %s", c.path()) }
func (c *component) Outermost() editor.Package {
	return c.owner.Level()
}
