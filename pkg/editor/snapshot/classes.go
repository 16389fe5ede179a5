// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package snapshot

import "strings"

const (
	ClothEditorPlugin = "ClothEditor"
	MetaHumanPlugin   = "MetaHuman"
)

type classInfo struct {
	parent string
	module string
	plugin string
}

// builtinClasses is the slice of the engine class hierarchy the automation
// routines query. Classes owned by a plugin resolve only when it is enabled.
var builtinClasses = map[string]classInfo{
	"Object":        {"", "CoreUObject", ""},
	"Factory":       {"Object", "UnrealEd", ""},
	"World":         {"Object", "Engine", ""},
	"SkeletalMesh":  {"Object", "Engine", ""},
	"StaticMesh":    {"Object", "Engine", ""},
	"Material":      {"Object", "Engine", ""},
	"Texture2D":     {"Object", "Engine", ""},
	"LevelSequence": {"Object", "LevelSequence", ""},

	"LevelSequenceFactoryNew": {"Factory", "LevelSequenceEditor", ""},

	"Actor":                     {"Object", "Engine", ""},
	"Light":                     {"Actor", "Engine", ""},
	"PointLight":                {"Light", "Engine", ""},
	"SpotLight":                 {"Light", "Engine", ""},
	"RectLight":                 {"Light", "Engine", ""},
	"DirectionalLight":          {"Light", "Engine", ""},
	"SkyLight":                  {"Actor", "Engine", ""},
	"StaticMeshActor":           {"Actor", "Engine", ""},
	"ActorComponent":            {"Object", "Engine", ""},
	"SceneComponent":            {"ActorComponent", "Engine", ""},
	"PrimitiveComponent":        {"SceneComponent", "Engine", ""},
	"MeshComponent":             {"PrimitiveComponent", "Engine", ""},
	"StaticMeshComponent":       {"MeshComponent", "Engine", ""},
	"LightComponentBase":        {"SceneComponent", "Engine", ""},
	"LightComponent":            {"LightComponentBase", "Engine", ""},
	"LocalLightComponent":       {"LightComponent", "Engine", ""},
	"PointLightComponent":       {"LocalLightComponent", "Engine", ""},
	"SpotLightComponent":        {"PointLightComponent", "Engine", ""},
	"RectLightComponent":        {"LocalLightComponent", "Engine", ""},
	"DirectionalLightComponent": {"LightComponent", "Engine", ""},
	"SkyLightComponent":         {"LightComponentBase", "Engine", ""},

	"ClothAsset":                               {"Object", "ChaosClothAsset", ClothEditorPlugin},
	"ClothAssetFactory":                        {"Factory", "ChaosClothAssetEditor", ClothEditorPlugin},
	"ClothAssetEditorSubsystem":                {"Object", "ChaosClothAssetEditor", ClothEditorPlugin},
	"ClothAssetGraphNode":                      {"Object", "ClothEditor", ClothEditorPlugin},
	"ClothAssetGraphNode_Terminal":             {"ClothAssetGraphNode", "ClothEditor", ClothEditorPlugin},
	"ClothAssetGraphNode_SkeletalMeshImport":   {"ClothAssetGraphNode", "ClothEditor", ClothEditorPlugin},
	"ClothAssetGraphNode_MergeClothCollection": {"ClothAssetGraphNode", "ClothEditor", ClothEditorPlugin},

	"MetaHumanOutfitAsset":         {"Object", "MetaHumanCharacterPalette", MetaHumanPlugin},
	"MetaHumanOutfitAssetFactory":  {"Factory", "MetaHumanCharacterPaletteEditor", MetaHumanPlugin},
	"MetaHumanSizedOutfitSource":   {"", "MetaHumanCharacterPalette", MetaHumanPlugin},
	"MetaHumanWardrobeItem":        {"Object", "MetaHumanCharacterPalette", MetaHumanPlugin},
	"MetaHumanWardrobeItemFactory": {"Factory", "MetaHumanCharacterPaletteEditor", MetaHumanPlugin},
}

// graph node inputs by class
var nodeInputs = map[string]int{
	"ClothAssetGraphNode_Terminal":             1,
	"ClothAssetGraphNode_SkeletalMeshImport":   0,
	"ClothAssetGraphNode_MergeClothCollection": 2,
}

// classes resolves class names against the builtin hierarchy, the enabled
// plugins and the project's own classes.
type classes struct {
	plugins map[string]bool
	project map[string]string
}

// shortName strips a "/Script/Module." prefix, returning the module too.
func shortName(name string) (short, module string) {
	if rest, ok := strings.CutPrefix(name, "/Script/"); ok {
		if mod, cls, ok := strings.Cut(rest, "."); ok {
			return cls, mod
		}
	}
	return name, ""
}

func (c classes) lookup(name string) (classInfo, bool) {
	short, module := shortName(name)
	if info, ok := builtinClasses[short]; ok {
		if info.plugin != "" && !c.plugins[info.plugin] {
			return classInfo{}, false
		}
		if module != "" && module != info.module {
			return classInfo{}, false
		}
		return info, true
	}
	if parent, ok := c.project[short]; ok && module == "" {
		return classInfo{parent: parent}, true
	}
	return classInfo{}, false
}

func (c classes) has(name string) bool {
	_, ok := c.lookup(name)
	return ok
}

func (c classes) isChildOf(class, parent string) bool {
	parent, _ = shortName(parent)
	// Bound the walk in case project classes form a cycle.
	for range len(builtinClasses) + len(c.project) + 1 {
		info, ok := c.lookup(class)
		if !ok {
			return false
		}
		if short, _ := shortName(class); short == parent {
			return true
		}
		if info.parent == "" {
			return false
		}
		class = info.parent
	}
	return false
}
