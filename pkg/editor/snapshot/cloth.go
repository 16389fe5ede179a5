// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package snapshot

import (
	"fmt"
	"slices"
	"strings"

	"github.com/google/contentkit/internal/semver"
	"github.com/google/contentkit/pkg/editor"
	"github.com/pkg/errors"
)

const (
	terminalNodeID    = "Terminal"
	terminalNodeClass = "/Script/ClothEditor.ClothAssetGraphNode_Terminal"
)

// clothEditorMethods are the scripting methods of the cloth editor
// subsystem, all introduced in engine 5.6.
var (
	clothEditorMethods = []string{
		"reset_graph",
		"get_graph",
		"add_node",
		"get_output_pin",
		"get_input_pin",
		"connect_pins",
		"compile_cloth_asset",
		"get_terminal_node",
	}
	clothEditorVersion = semver.MustNew("5.6")
)

func newClothGraph() *Graph {
	return &Graph{Nodes: []*Node{{ID: terminalNodeID, Class: terminalNodeClass}}}
}

// ClothEditor returns the cloth editor subsystem when its plugin is enabled.
func (h *Host) ClothEditor() (editor.ClothEditor, error) {
	if err := editor.RequireClass(h, "ClothAssetEditorSubsystem", "the Cloth Editor plugin"); err != nil {
		return nil, err
	}
	return &clothEditor{h: h}, nil
}

type clothEditor struct {
	h *Host
}

func (c *clothEditor) HasMethod(name string) bool {
	return c.h.version.AtLeast(clothEditorVersion) && slices.Contains(clothEditorMethods, name)
}

func (c *clothEditor) require(method string) error {
	if !c.HasMethod(method) {
		return editor.RequireVersion(c.h, clothEditorVersion, "ClothAssetEditorSubsystem."+method)
	}
	return nil
}

// clothAsset resolves obj to a cloth asset or its graph.
func (c *clothEditor) clothAsset(obj editor.Object) (*Asset, error) {
	if obj == nil {
		return nil, errors.New("nil cloth asset")
	}
	p := strings.TrimSuffix(obj.PathName(), ":Graph")
	_, a := c.h.findAsset(p)
	if a == nil {
		return nil, errors.Wrap(editor.ErrAssetNotFound, p)
	}
	if !c.h.IsChildOf(a.Class, "ClothAsset") {
		return nil, errors.Errorf("%s is a %s, not a cloth asset", obj.PathName(), a.Class)
	}
	if a.Graph == nil {
		a.Graph = newClothGraph()
	}
	return a, nil
}

func (c *clothEditor) ResetGraph(asset editor.Object) error {
	if err := c.require("reset_graph"); err != nil {
		return err
	}
	a, err := c.clothAsset(asset)
	if err != nil {
		return err
	}
	a.Graph = newClothGraph()
	c.h.markDirty(a.Package)
	return nil
}

func (c *clothEditor) Graph(asset editor.Object) (editor.Object, error) {
	if err := c.require("get_graph"); err != nil {
		return nil, err
	}
	a, err := c.clothAsset(asset)
	if err != nil {
		return nil, err
	}
	return &graphObject{h: c.h, a: a}, nil
}

func (c *clothEditor) AddNode(graph editor.Object, class string, pos editor.Vector2D) (editor.Object, error) {
	if err := c.require("add_node"); err != nil {
		return nil, err
	}
	a, err := c.clothAsset(graph)
	if err != nil {
		return nil, err
	}
	if !c.h.IsChildOf(class, "ClothAssetGraphNode") {
		return nil, errors.Errorf("%s is not a cloth graph node class", class)
	}
	short, _ := shortName(class)
	n := &Node{
		ID:    fmt.Sprintf("%s_%d", strings.TrimPrefix(short, "ClothAssetGraphNode_"), len(a.Graph.Nodes)),
		Class: class,
		X:     pos.X,
		Y:     pos.Y,
	}
	a.Graph.Nodes = append(a.Graph.Nodes, n)
	c.h.markDirty(a.Package)
	return &nodeObject{h: c.h, a: a, n: n}, nil
}

// node resolves a node object or a pin's node path.
func (c *clothEditor) node(p string) (*Asset, *Node, error) {
	assetPath, id, ok := strings.Cut(p, ":")
	if !ok {
		return nil, nil, errors.Errorf("%s is not a graph node", p)
	}
	_, a := c.h.findAsset(assetPath)
	if a == nil || a.Graph == nil {
		return nil, nil, errors.Wrap(editor.ErrAssetNotFound, assetPath)
	}
	for _, n := range a.Graph.Nodes {
		if n.ID == id {
			return a, n, nil
		}
	}
	return nil, nil, errors.Errorf("node %s not found", p)
}

func (c *clothEditor) OutputPin(node editor.Object) (editor.Pin, error) {
	if err := c.require("get_output_pin"); err != nil {
		return editor.Pin{}, err
	}
	_, n, err := c.node(node.PathName())
	if err != nil {
		return editor.Pin{}, err
	}
	if n.ID == terminalNodeID {
		return editor.Pin{}, errors.New("terminal node has no output pin")
	}
	return editor.Pin{Node: node.PathName(), Output: true}, nil
}

func (c *clothEditor) InputPin(node editor.Object, index int) (editor.Pin, error) {
	if err := c.require("get_input_pin"); err != nil {
		return editor.Pin{}, err
	}
	_, n, err := c.node(node.PathName())
	if err != nil {
		return editor.Pin{}, err
	}
	short, _ := shortName(n.Class)
	if index < 0 || index >= nodeInputs[short] {
		return editor.Pin{}, errors.Errorf("%s has no input %d", node.PathName(), index)
	}
	return editor.Pin{Node: node.PathName(), Index: index}, nil
}

// ConnectPins links an output pin to an input pin of the same graph,
// replacing any existing link into that input.
func (c *clothEditor) ConnectPins(from, to editor.Pin) error {
	if err := c.require("connect_pins"); err != nil {
		return err
	}
	if !from.Output || to.Output {
		return errors.New("pins must be connected from an output to an input")
	}
	fa, fn, err := c.node(from.Node)
	if err != nil {
		return err
	}
	ta, tn, err := c.node(to.Node)
	if err != nil {
		return err
	}
	if fa != ta {
		return errors.New("pins belong to different graphs")
	}
	if fn == tn {
		return errors.Errorf("cannot connect %s to itself", from.Node)
	}
	g := fa.Graph
	g.Edges = slices.DeleteFunc(g.Edges, func(e Edge) bool { return e.To == tn.ID && e.Input == to.Index })
	g.Edges = append(g.Edges, Edge{From: fn.ID, To: tn.ID, Input: to.Index})
	c.h.markDirty(fa.Package)
	return nil
}

// CompileClothAsset checks that every input is connected and every import
// node names a mesh, then records the meshes reaching the terminal in the
// asset's compiled_sources property.
func (c *clothEditor) CompileClothAsset(asset editor.Object) error {
	if err := c.require("compile_cloth_asset"); err != nil {
		return err
	}
	a, err := c.clothAsset(asset)
	if err != nil {
		return err
	}
	connected := make(map[string]int)
	for _, e := range a.Graph.Edges {
		connected[e.To]++
	}
	for _, n := range a.Graph.Nodes {
		short, _ := shortName(n.Class)
		if want := nodeInputs[short]; connected[n.ID] != want {
			return errors.Errorf("compiling %s: node %s has %d of %d inputs connected", asset.PathName(), n.ID, connected[n.ID], want)
		}
		if short == "ClothAssetGraphNode_SkeletalMeshImport" {
			if _, ok := n.Properties["skeletal_mesh"].(string); !ok {
				return errors.Errorf("compiling %s: node %s has no skeletal_mesh", asset.PathName(), n.ID)
			}
		}
	}
	if a.Properties == nil {
		a.Properties = make(map[string]any)
	}
	var meshes []any
	for _, n := range c.sources(a, terminalNodeID) {
		meshes = append(meshes, n.Properties["skeletal_mesh"])
	}
	a.Properties["compiled_sources"] = meshes
	c.h.markDirty(a.Package)
	return nil
}

// sources returns the import nodes feeding id, depth first by input.
func (c *clothEditor) sources(a *Asset, id string) []*Node {
	var out []*Node
	seen := make(map[string]bool)
	var walk func(string)
	walk = func(id string) {
		if seen[id] {
			return
		}
		seen[id] = true
		inputs := slices.Clone(a.Graph.Edges)
		slices.SortFunc(inputs, func(x, y Edge) int { return x.Input - y.Input })
		for _, e := range inputs {
			if e.To == id {
				walk(e.From)
			}
		}
		for _, n := range a.Graph.Nodes {
			if n.ID == id && strings.HasSuffix(n.Class, "SkeletalMeshImport") {
				out = append(out, n)
			}
		}
	}
	walk(id)
	return out
}

func (c *clothEditor) TerminalNode(asset editor.Object) (editor.Object, error) {
	if err := c.require("get_terminal_node"); err != nil {
		return nil, err
	}
	a, err := c.clothAsset(asset)
	if err != nil {
		return nil, err
	}
	for _, n := range a.Graph.Nodes {
		if n.ID == terminalNodeID {
			return &nodeObject{h: c.h, a: a, n: n}, nil
		}
	}
	return nil, errors.Errorf("%s has no terminal node", asset.PathName())
}

type graphObject struct {
	h *Host
	a *Asset
}

func (g *graphObject) PathName() string { return g.a.data().ObjectPath() + ":Graph" }
func (g *graphObject) Class() string    { return "ClothAssetGraph" }

func (g *graphObject) EditorProperty(name string) (any, error) {
	return nil, errors.Wrapf(editor.ErrPropertyNotFound, "%s.%s", g.PathName(), name)
}

func (g *graphObject) SetEditorProperty(name string, value any) error {
	return errors.Errorf("%s has no settable properties", g.PathName())
}

type nodeObject struct {
	h *Host
	a *Asset
	n *Node
}

func (o *nodeObject) PathName() string { return o.a.data().ObjectPath() + ":" + o.n.ID }
func (o *nodeObject) Class() string    { return o.n.Class }

func (o *nodeObject) EditorProperty(name string) (any, error) {
	v, ok := o.n.Properties[name]
	if !ok {
		return nil, errors.Wrapf(editor.ErrPropertyNotFound, "%s.%s", o.PathName(), name)
	}
	return v, nil
}

func (o *nodeObject) SetEditorProperty(name string, value any) error {
	v, err := propertyValue(value)
	if err != nil {
		return errors.Wrapf(err, "setting %s.%s", o.PathName(), name)
	}
	if o.n.Properties == nil {
		o.n.Properties = make(map[string]any)
	}
	o.n.Properties[name] = v
	o.h.markDirty(o.a.Package)
	return nil
}
