// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

// Package wardrobe builds a merged cloth asset from garment meshes and wraps
// it in an outfit asset and a wardrobe item for a character body.
package wardrobe

import (
	"context"
	"path"
	"strings"

	"github.com/google/contentkit/internal/semver"
	"github.com/google/contentkit/pkg/editor"
	"github.com/pkg/errors"
)

const (
	DefaultTargetFolder = "/Game/MetaHumans/Generated/Wardrobe"
	DefaultClothName    = "MH_Merged_Cloth"
	DefaultOutfitName   = "MH_Merged_Outfit"
	DefaultItemName     = "MH_Merged_WardrobeItem"

	ImportNodeClass = "/Script/ClothEditor.ClothAssetGraphNode_SkeletalMeshImport"
	MergeNodeClass  = "/Script/ClothEditor.ClothAssetGraphNode_MergeClothCollection"

	// Graph layout: imports in one column, merges in the next, one row per garment.
	ImportNodeX = -800.0
	MergeNodeX  = -300.0
	RowHeight   = 300.0
)

const (
	pluginsRequirement = "the MetaHuman and Cloth Editor plugins"
	clothRequirement   = "the Cloth Editor plugin"
)

// MinEngineVersion is the first engine release whose cloth editor subsystem
// exposes graph editing to scripts.
var MinEngineVersion = semver.MustNew("5.6")

// ClothEditorMethods are the cloth editor subsystem methods Build calls.
var ClothEditorMethods = []string{
	"reset_graph",
	"get_graph",
	"add_node",
	"get_output_pin",
	"get_input_pin",
	"connect_pins",
	"compile_cloth_asset",
	"get_terminal_node",
}

type Config struct {
	// BodyMesh is the skeletal mesh of the body that wears the outfit.
	BodyMesh string
	// ClothingMeshes are merged into one cloth asset, in order.
	ClothingMeshes []string
	TargetFolder   string
	ClothName      string
	OutfitName     string
	ItemName       string
}

// WithDefaults fills unset folder and asset names.
func (c Config) WithDefaults() Config {
	if c.TargetFolder == "" {
		c.TargetFolder = DefaultTargetFolder
	}
	if c.ClothName == "" {
		c.ClothName = DefaultClothName
	}
	if c.OutfitName == "" {
		c.OutfitName = DefaultOutfitName
	}
	if c.ItemName == "" {
		c.ItemName = DefaultItemName
	}
	return c
}

func (c Config) Validate() error {
	if c.BodyMesh == "" {
		return errors.New("body mesh is required")
	}
	if len(c.ClothingMeshes) == 0 {
		return errors.New("at least one clothing mesh is required")
	}
	for _, p := range append([]string{c.BodyMesh, c.TargetFolder}, c.ClothingMeshes...) {
		if p != "" && !strings.HasPrefix(p, "/") {
			return errors.Errorf("path %q is not absolute", p)
		}
	}
	names := map[string]bool{}
	for _, n := range []string{c.ClothName, c.OutfitName, c.ItemName} {
		if n == "" {
			continue
		}
		if strings.ContainsAny(n, "/. ") {
			return errors.Errorf("invalid asset name %q", n)
		}
		if names[n] {
			return errors.Errorf("asset name %q used twice", n)
		}
		names[n] = true
	}
	return nil
}

// Result holds the object paths of the created assets.
type Result struct {
	Cloth  string
	Outfit string
	Item   string
}

// Build creates the cloth asset, the outfit and the wardrobe item in order.
// The first failure aborts the build with an error naming its cause.
func Build(ctx context.Context, host editor.Host, cfg Config) (*Result, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if !host.DoesDirectoryExist(cfg.TargetFolder) {
		if err := host.MakeDirectory(cfg.TargetFolder); err != nil {
			return nil, errors.Wrapf(err, "making %s", cfg.TargetFolder)
		}
	}
	body, err := loadSkeletalMesh(host, cfg.BodyMesh)
	if err != nil {
		return nil, err
	}
	var garments []editor.Object
	for _, p := range cfg.ClothingMeshes {
		m, err := loadSkeletalMesh(host, p)
		if err != nil {
			return nil, err
		}
		garments = append(garments, m)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cloth, err := buildClothAsset(host, cfg, garments)
	if err != nil {
		return nil, errors.Wrap(err, "building cloth asset")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	outfit, err := buildOutfit(host, cfg, cloth, body)
	if err != nil {
		return nil, errors.Wrap(err, "building outfit asset")
	}
	item, err := buildWardrobeItem(host, cfg, outfit)
	if err != nil {
		return nil, errors.Wrap(err, "building wardrobe item")
	}
	res := &Result{Cloth: cloth.PathName(), Outfit: outfit.PathName(), Item: item.PathName()}
	host.Logf("Created cloth asset: %s", res.Cloth)
	host.Logf("Created outfit asset: %s", res.Outfit)
	host.Logf("Created wardrobe item: %s", res.Item)
	return res, nil
}

func loadSkeletalMesh(host editor.Host, p string) (editor.Object, error) {
	obj, err := host.LoadAsset(p)
	if err != nil {
		return nil, errors.Wrapf(err, "loading %s", p)
	}
	if !host.IsChildOf(obj.Class(), "SkeletalMesh") {
		return nil, errors.Errorf("asset %s is a %s, not a SkeletalMesh", p, obj.Class())
	}
	return obj, nil
}

func createAsset(host editor.Host, name, folder, class, factory string) (editor.Object, error) {
	if err := editor.RequireClass(host, factory, pluginsRequirement); err != nil {
		return nil, err
	}
	if err := editor.RequireClass(host, class, pluginsRequirement); err != nil {
		return nil, err
	}
	obj, err := host.CreateAsset(name, folder, class, factory)
	if err != nil {
		return nil, errors.Wrapf(err, "creating %s", path.Join(folder, name))
	}
	return obj, nil
}

func saveAsset(host editor.Host, obj editor.Object) error {
	return errors.Wrapf(host.SaveAsset(obj.PathName()), "saving %s", obj.PathName())
}

// clothEditor returns the cloth editor subsystem after checking that every
// method Build needs is exposed.
func clothEditor(host editor.Host) (editor.ClothEditor, error) {
	ce, err := host.ClothEditor()
	if err != nil {
		return nil, err
	}
	for _, m := range ClothEditorMethods {
		if !ce.HasMethod(m) {
			if err := editor.RequireVersion(host, MinEngineVersion, "ClothAssetEditorSubsystem."+m); err != nil {
				return nil, err
			}
			return nil, &editor.MissingCapabilityError{Capability: "ClothAssetEditorSubsystem." + m, Requirement: clothRequirement}
		}
	}
	return ce, nil
}

func buildClothAsset(host editor.Host, cfg Config, garments []editor.Object) (editor.Object, error) {
	ce, err := clothEditor(host)
	if err != nil {
		return nil, err
	}
	asset, err := createAsset(host, cfg.ClothName, cfg.TargetFolder, "ClothAsset", "ClothAssetFactory")
	if err != nil {
		return nil, err
	}
	if err := ce.ResetGraph(asset); err != nil {
		return nil, errors.Wrap(err, "resetting graph")
	}
	for _, class := range []string{ImportNodeClass, MergeNodeClass} {
		if err := editor.RequireClass(host, class, clothRequirement); err != nil {
			return nil, err
		}
	}
	terminal, err := ce.TerminalNode(asset)
	if err != nil {
		return nil, errors.Wrap(err, "locating terminal node")
	}
	graph, err := ce.Graph(asset)
	if err != nil {
		return nil, errors.Wrap(err, "retrieving graph")
	}
	var prev *editor.Pin
	for i, mesh := range garments {
		y := float64(i) * RowHeight
		node, err := ce.AddNode(graph, ImportNodeClass, editor.Vector2D{X: ImportNodeX, Y: y})
		if err != nil {
			return nil, errors.Wrapf(err, "adding import node for %s", mesh.PathName())
		}
		if err := node.SetEditorProperty("skeletal_mesh", mesh); err != nil {
			return nil, err
		}
		if err := node.SetEditorProperty("import_all_lods", true); err != nil {
			return nil, err
		}
		out, err := ce.OutputPin(node)
		if err != nil {
			return nil, err
		}
		if prev == nil {
			prev = &out
			continue
		}
		merge, err := ce.AddNode(graph, MergeNodeClass, editor.Vector2D{X: MergeNodeX, Y: y})
		if err != nil {
			return nil, errors.Wrap(err, "adding merge node")
		}
		if err := connect(ce, *prev, merge, 0); err != nil {
			return nil, err
		}
		if err := connect(ce, out, merge, 1); err != nil {
			return nil, err
		}
		merged, err := ce.OutputPin(merge)
		if err != nil {
			return nil, err
		}
		prev = &merged
	}
	if prev == nil {
		return nil, errors.New("no clothing meshes were processed")
	}
	if err := connect(ce, *prev, terminal, 0); err != nil {
		return nil, err
	}
	if err := ce.CompileClothAsset(asset); err != nil {
		return nil, errors.Wrap(err, "compiling")
	}
	if err := saveAsset(host, asset); err != nil {
		return nil, err
	}
	return asset, nil
}

func connect(ce editor.ClothEditor, from editor.Pin, node editor.Object, input int) error {
	to, err := ce.InputPin(node, input)
	if err != nil {
		return err
	}
	return errors.Wrapf(ce.ConnectPins(from, to), "connecting %s to %s input %d", from.Node, node.PathName(), input)
}

func buildOutfit(host editor.Host, cfg Config, cloth, body editor.Object) (editor.Object, error) {
	outfit, err := createAsset(host, cfg.OutfitName, cfg.TargetFolder, "MetaHumanOutfitAsset", "MetaHumanOutfitAssetFactory")
	if err != nil {
		return nil, err
	}
	if err := editor.RequireClass(host, "MetaHumanSizedOutfitSource", pluginsRequirement); err != nil {
		return nil, err
	}
	source := map[string]any{
		"source_asset":      cloth,
		"source_body_parts": []editor.Object{body},
	}
	if err := outfit.SetEditorProperty("sized_outfit_sources", []map[string]any{source}); err != nil {
		return nil, err
	}
	if err := saveAsset(host, outfit); err != nil {
		return nil, err
	}
	return outfit, nil
}

func buildWardrobeItem(host editor.Host, cfg Config, outfit editor.Object) (editor.Object, error) {
	item, err := createAsset(host, cfg.ItemName, cfg.TargetFolder, "MetaHumanWardrobeItem", "MetaHumanWardrobeItemFactory")
	if err != nil {
		return nil, err
	}
	if err := item.SetEditorProperty("outfit_asset", outfit); err != nil {
		return nil, err
	}
	if err := saveAsset(host, item); err != nil {
		return nil, err
	}
	return item, nil
}
