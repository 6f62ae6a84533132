package sim

import "strings"

// Kind is the closed set of material behaviors.
type Kind uint8

const (
	KindEmpty Kind = iota
	KindMovableSolid
	KindLiquid
	KindImmovableSolid
	KindCount // Sentinel value for iteration
)

// String returns the string representation of a kind.
func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindMovableSolid:
		return "movable_solid"
	case KindLiquid:
		return "liquid"
	case KindImmovableSolid:
		return "immovable_solid"
	default:
		return "unknown"
	}
}

// Weight returns the relative weight used to decide displacement.
// A material only moves into a neighbor that is strictly lighter.
func (k Kind) Weight() int {
	switch k {
	case KindLiquid:
		return 1
	case KindMovableSolid:
		return 2
	case KindImmovableSolid:
		return 3
	default:
		return 0
	}
}

// AllKinds returns every kind in declaration order.
func AllKinds() []Kind {
	return []Kind{KindEmpty, KindMovableSolid, KindLiquid, KindImmovableSolid}
}

// Color is a display color understood by the renderer, e.g. "#c2b280".
type Color string

// Background is the color of empty space.
const Background Color = "#000000"

// Palettes for materials that vary per particle.
var (
	SandColors  = []Color{"#c2b280", "#d8c08f", "#e1bf92", "#cfae6e", "#bfa062"}
	WaterColors = []Color{"#1e90ff", "#2a7fd4", "#3a9ad9", "#4aa8e8"}
	RockColors  = []Color{"#5a5a5a", "#6b6b6b", "#7a7570", "#4e4a47"}
)

// GlassColor is the fixed color of glass.
const GlassColor Color = "#a7c7cb"

// Material is the payload of a grid cell: its behavior kind plus how it looks.
type Material struct {
	Kind  Kind
	Name  string
	Color Color
}

// Weight returns the material's weight.
func (m Material) Weight() int {
	return m.Kind.Weight()
}

// Ignorable reports whether the scan may skip this material outright.
func (m Material) Ignorable() bool {
	return m.Kind == KindEmpty
}

// Factory builds a fresh material, drawing any random color from r.
type Factory func(r *RNG) Material

// Empty returns the empty material.
func Empty() Material {
	return Material{Kind: KindEmpty, Name: "empty", Color: Background}
}

// NewEmpty is the Factory form of Empty.
func NewEmpty(*RNG) Material {
	return Empty()
}

// NewSand returns a movable solid with a random sand color.
func NewSand(r *RNG) Material {
	return Material{Kind: KindMovableSolid, Name: "sand", Color: pick(r, SandColors)}
}

// NewWater returns a liquid with a random water color.
func NewWater(r *RNG) Material {
	return Material{Kind: KindLiquid, Name: "water", Color: pick(r, WaterColors)}
}

// NewRock returns an immovable solid with a random rock color.
func NewRock(r *RNG) Material {
	return Material{Kind: KindImmovableSolid, Name: "rock", Color: pick(r, RockColors)}
}

// NewGlass returns an immovable solid with the glass color.
func NewGlass(*RNG) Material {
	return Material{Kind: KindImmovableSolid, Name: "glass", Color: GlassColor}
}

// KindFactory returns the default named material for a kind.
func KindFactory(k Kind) Factory {
	switch k {
	case KindMovableSolid:
		return NewSand
	case KindLiquid:
		return NewWater
	case KindImmovableSolid:
		return NewRock
	default:
		return NewEmpty
	}
}

// ParseMaterial converts a material or kind name to its factory.
// Returns false if the name is not recognized.
func ParseMaterial(name string) (Factory, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "empty", "air":
		return NewEmpty, true
	case "sand", "movable_solid", "movablesolid":
		return NewSand, true
	case "water", "liquid":
		return NewWater, true
	case "rock", "stone", "immovable_solid", "immovablesolid":
		return NewRock, true
	case "glass":
		return NewGlass, true
	default:
		return nil, false
	}
}

// MaterialNames returns the names accepted by ParseMaterial, one per material.
func MaterialNames() []string {
	return []string{"empty", "sand", "water", "rock", "glass"}
}

func pick(r *RNG, palette []Color) Color {
	if r == nil {
		return palette[0]
	}
	return palette[r.IntN(len(palette))]
}
