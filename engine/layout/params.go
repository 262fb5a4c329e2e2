// Package layout resolves named presets and the responsive device context
// into the complete parameter set a scene is composed from.
package layout

import (
	"fmt"

	"cogentcore.org/core/math32"
)

// CameraDefinition is a camera placement. FOV is the vertical field of view in degrees.
type CameraDefinition struct {
	Position math32.Vector3
	Target   math32.Vector3
	FOV      float32
}

// Distance returns the eye-to-target distance.
func (c CameraDefinition) Distance() float32 {
	return c.Position.Sub(c.Target).Length()
}

// MedallionParams places and sizes the central medallion.
type MedallionParams struct {
	Position math32.Vector3
	Scale    float32
}

// PlazaParams places the plaza floor. Radius is in world units.
type PlazaParams struct {
	Position math32.Vector3
	Radius   float32
}

// ColumnParams places the columns on an arc around the plaza centre.
// Angles are in degrees; ArcCenter 0 points away from the default camera.
type ColumnParams struct {
	RingRadius float32
	BaseHeight float32
	ArcSpan    float32
	ArcCenter  float32
}

// CoinParams sizes the coins and sets their glow. HeightOffset lifts each
// coin above the top of its column; FaceVisible toggles the icon faces.
type CoinParams struct {
	Radius        float32
	Thickness     float32
	GlowIntensity float32
	FaceVisible   bool
	HeightOffset  float32
}

// LayerToggles switches the ambient effect layers on or off.
type LayerToggles struct {
	Ribbons  bool
	Fog      bool
	Sparkles bool
}

// EffectBundle is the particle density selected by an EffectPreset.
type EffectBundle struct {
	SparkleCount int
	SparkleSpeed float32
	RibbonCount  int
	RibbonSpeed  float32
	FogLayers    int
}

// SceneParameterSet is the full tunable state of one scene instantiation.
type SceneParameterSet struct {
	Medallion MedallionParams
	Plaza     PlazaParams
	Columns   ColumnParams
	Coins     CoinParams
	Layers    LayerToggles
	Effects   EffectBundle
	Camera    CameraDefinition
}

// Field names one numeric field of a SceneParameterSet that a control surface may override.
type Field int

const (
	FieldMedallionX Field = iota
	FieldMedallionY
	FieldMedallionZ
	FieldMedallionScale
	FieldPlazaY
	FieldPlazaRadius
	FieldColumnRingRadius
	FieldColumnBaseHeight
	FieldColumnArcSpan
	FieldColumnArcCenter
	FieldCoinRadius
	FieldCoinThickness
	FieldCoinGlowIntensity
	FieldCoinHeightOffset
	FieldCameraX
	FieldCameraY
	FieldCameraZ
	FieldTargetX
	FieldTargetY
	FieldTargetZ
	FieldCameraFOV

	fieldCount
)

// Range is a closed numeric interval.
type Range struct {
	Min, Max float32
}

// Clamp returns v limited to the range. NaN maps to Min.
func (r Range) Clamp(v float32) float32 {
	if math32.IsNaN(v) {
		return r.Min
	}
	return min(max(v, r.Min), r.Max)
}

var fieldNames = [fieldCount]string{
	"medallion.x", "medallion.y", "medallion.z", "medallion.scale",
	"plaza.y", "plaza.radius",
	"columns.ring_radius", "columns.base_height", "columns.arc_span", "columns.arc_center",
	"coins.radius", "coins.thickness", "coins.glow_intensity", "coins.height_offset",
	"camera.x", "camera.y", "camera.z",
	"camera.target_x", "camera.target_y", "camera.target_z",
	"camera.fov",
}

var fieldRanges = [fieldCount]Range{
	FieldMedallionX:        {-20, 20},
	FieldMedallionY:        {0, 20},
	FieldMedallionZ:        {-20, 20},
	FieldMedallionScale:    {0.1, 5},
	FieldPlazaY:            {-5, 5},
	FieldPlazaRadius:       {1, 40},
	FieldColumnRingRadius:  {1, 30},
	FieldColumnBaseHeight:  {0.5, 12},
	FieldColumnArcSpan:     {10, 360},
	FieldColumnArcCenter:   {-180, 180},
	FieldCoinRadius:        {0.1, 3},
	FieldCoinThickness:     {0.02, 1},
	FieldCoinGlowIntensity: {0, 4},
	FieldCoinHeightOffset:  {0, 5},
	FieldCameraX:           {-100, 100},
	FieldCameraY:           {-100, 100},
	FieldCameraZ:           {-100, 100},
	FieldTargetX:           {-50, 50},
	FieldTargetY:           {-50, 50},
	FieldTargetZ:           {-50, 50},
	FieldCameraFOV:         {20, 100},
}

func (f Field) String() string {
	if f < 0 || f >= fieldCount {
		return fmt.Sprintf("field(%d)", int(f))
	}
	return fieldNames[f]
}

// Range returns the valid closed range of the field.
func (f Field) Range() Range {
	if f < 0 || f >= fieldCount {
		return Range{}
	}
	return fieldRanges[f]
}

// ParseField looks a field up by its dotted name.
func ParseField(name string) (Field, bool) {
	for i, n := range fieldNames {
		if n == name {
			return Field(i), true
		}
	}
	return 0, false
}

func (p *SceneParameterSet) ref(f Field) *float32 {
	switch f {
	case FieldMedallionX:
		return &p.Medallion.Position.X
	case FieldMedallionY:
		return &p.Medallion.Position.Y
	case FieldMedallionZ:
		return &p.Medallion.Position.Z
	case FieldMedallionScale:
		return &p.Medallion.Scale
	case FieldPlazaY:
		return &p.Plaza.Position.Y
	case FieldPlazaRadius:
		return &p.Plaza.Radius
	case FieldColumnRingRadius:
		return &p.Columns.RingRadius
	case FieldColumnBaseHeight:
		return &p.Columns.BaseHeight
	case FieldColumnArcSpan:
		return &p.Columns.ArcSpan
	case FieldColumnArcCenter:
		return &p.Columns.ArcCenter
	case FieldCoinRadius:
		return &p.Coins.Radius
	case FieldCoinThickness:
		return &p.Coins.Thickness
	case FieldCoinGlowIntensity:
		return &p.Coins.GlowIntensity
	case FieldCoinHeightOffset:
		return &p.Coins.HeightOffset
	case FieldCameraX:
		return &p.Camera.Position.X
	case FieldCameraY:
		return &p.Camera.Position.Y
	case FieldCameraZ:
		return &p.Camera.Position.Z
	case FieldTargetX:
		return &p.Camera.Target.X
	case FieldTargetY:
		return &p.Camera.Target.Y
	case FieldTargetZ:
		return &p.Camera.Target.Z
	case FieldCameraFOV:
		return &p.Camera.FOV
	}
	return nil
}

// Get returns the current value of a field.
func (p SceneParameterSet) Get(f Field) float32 {
	if r := p.ref(f); r != nil {
		return *r
	}
	return 0
}

// With returns a copy with the field set to v clamped into its range.
// Unknown fields leave the set unchanged.
func (p SceneParameterSet) With(f Field, v float32) SceneParameterSet {
	if r := p.ref(f); r != nil {
		*r = f.Range().Clamp(v)
	}
	return p
}

// Clamp returns a copy with every numeric field inside its valid range.
func (p SceneParameterSet) Clamp() SceneParameterSet {
	for f := Field(0); f < fieldCount; f++ {
		r := p.ref(f)
		*r = f.Range().Clamp(*r)
	}
	p.Effects.SparkleCount = min(max(p.Effects.SparkleCount, 0), maxSparkles)
	p.Effects.RibbonCount = min(max(p.Effects.RibbonCount, 0), maxRibbons)
	p.Effects.FogLayers = min(max(p.Effects.FogLayers, 0), maxFogLayers)
	p.Effects.SparkleSpeed = Range{0, 4}.Clamp(p.Effects.SparkleSpeed)
	p.Effects.RibbonSpeed = Range{0, 4}.Clamp(p.Effects.RibbonSpeed)
	return p
}

// Toggle names one boolean parameter a control surface may override.
type Toggle int

const (
	ToggleRibbons Toggle = iota
	ToggleFog
	ToggleSparkles
	ToggleCoinFaces
)

func (p *SceneParameterSet) setToggle(t Toggle, on bool) {
	switch t {
	case ToggleRibbons:
		p.Layers.Ribbons = on
	case ToggleFog:
		p.Layers.Fog = on
	case ToggleSparkles:
		p.Layers.Sparkles = on
	case ToggleCoinFaces:
		p.Coins.FaceVisible = on
	}
}
