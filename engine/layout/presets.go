package layout

import (
	"fmt"

	"cogentcore.org/core/math32"
)

// PresetName identifies a layout preset.
type PresetName string

const (
	PresetEnsemble PresetName = "ensemble"
	PresetHeroic   PresetName = "heroic"
	PresetOverview PresetName = "overview"
)

// LayoutPreset is a named, complete parameter set. Presets are constants.
type LayoutPreset struct {
	Name        PresetName
	Description string
	Params      SceneParameterSet
}

// ResponsiveContext is the coarse device class used to adapt camera framing.
type ResponsiveContext int

const (
	ContextDesktop ResponsiveContext = iota
	ContextCompact
)

func (c ResponsiveContext) String() string {
	switch c {
	case ContextDesktop:
		return "desktop"
	case ContextCompact:
		return "compact"
	default:
		return fmt.Sprintf("context(%d)", int(c))
	}
}

// ContextForWidth classifies a viewport width against a breakpoint in pixels.
func ContextForWidth(width, breakpoint int) ResponsiveContext {
	if width < breakpoint {
		return ContextCompact
	}
	return ContextDesktop
}

// Compact framing pulls the camera back along its view direction and widens the lens.
const (
	CompactDistanceScale float32 = 1.35
	CompactFOVScale      float32 = 1.2
)

// base holds the object layout shared by the presets; presets vary the
// camera and a few emphasis values on top of it.
var base = SceneParameterSet{
	Medallion: MedallionParams{Position: math32.Vec3(0, 4.6, 0), Scale: 1.4},
	Plaza:     PlazaParams{Position: math32.Vec3(0, 0, 0), Radius: 9},
	Columns:   ColumnParams{RingRadius: 7, BaseHeight: 3.2, ArcSpan: 306, ArcCenter: 0},
	Coins: CoinParams{
		Radius:        0.55,
		Thickness:     0.12,
		GlowIntensity: 1.2,
		FaceVisible:   true,
		HeightOffset:  0.9,
	},
	Layers:  LayerToggles{Ribbons: true, Fog: true, Sparkles: true},
	Effects: effectBundles[EffectFull],
}

var presets = func() []LayoutPreset {
	ensemble := base
	ensemble.Camera = CameraDefinition{Position: math32.Vec3(0, 6, 18), Target: math32.Vec3(0, 2.6, 0), FOV: 50}

	heroic := base
	heroic.Medallion.Scale = 1.8
	heroic.Coins.HeightOffset = 1.1
	heroic.Coins.GlowIntensity = 1.6
	heroic.Camera = CameraDefinition{Position: math32.Vec3(0, 1.2, 11), Target: math32.Vec3(0, 4.2, 0), FOV: 62}

	overview := base
	overview.Coins.Radius = 0.65
	overview.Camera = CameraDefinition{Position: math32.Vec3(0, 20, 12), Target: math32.Vec3(0, 0, 0), FOV: 45}

	return []LayoutPreset{
		{Name: PresetEnsemble, Description: "Wide ensemble: the whole horseshoe of columns framed at eye level.", Params: ensemble},
		{Name: PresetHeroic, Description: "Heroic low angle: looking up at the medallion through the columns.", Params: heroic},
		{Name: PresetOverview, Description: "Elevated overview: the plaza seen from above like a map.", Params: overview},
	}
}()

// Presets returns the defined presets, the first one being the fallback.
func Presets() []LayoutPreset {
	out := make([]LayoutPreset, len(presets))
	copy(out, presets)
	return out
}

// LookupPreset finds a preset by name.
func LookupPreset(name PresetName) (LayoutPreset, bool) {
	for _, p := range presets {
		if p.Name == name {
			return p, true
		}
	}
	return LayoutPreset{}, false
}

// compactCamera pulls the eye back along the target-to-eye direction and widens the FOV.
func compactCamera(c CameraDefinition) CameraDefinition {
	offset := c.Position.Sub(c.Target).MulScalar(CompactDistanceScale)
	c.Position = c.Target.Add(offset)
	c.FOV = FieldCameraFOV.Range().Clamp(c.FOV * CompactFOVScale)
	return c
}
