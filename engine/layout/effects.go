package layout

import "fmt"

// EffectPreset is the ambient effect density requested by the host.
type EffectPreset int

const (
	EffectFull EffectPreset = iota
	EffectMinimal
	EffectPerformance
)

const (
	maxSparkles  = 512
	maxRibbons   = 8
	maxFogLayers = 6
)

var effectBundles = map[EffectPreset]EffectBundle{
	EffectFull:        {SparkleCount: 160, SparkleSpeed: 1, RibbonCount: 4, RibbonSpeed: 1, FogLayers: 3},
	EffectMinimal:     {SparkleCount: 48, SparkleSpeed: 0.6, RibbonCount: 2, RibbonSpeed: 0.6, FogLayers: 1},
	EffectPerformance: {SparkleCount: 0, SparkleSpeed: 0, RibbonCount: 1, RibbonSpeed: 0.5, FogLayers: 0},
}

func (e EffectPreset) String() string {
	switch e {
	case EffectFull:
		return "full"
	case EffectMinimal:
		return "minimal"
	case EffectPerformance:
		return "performance"
	default:
		return fmt.Sprintf("effect(%d)", int(e))
	}
}

// ParseEffectPreset parses full, minimal or performance.
func ParseEffectPreset(s string) (EffectPreset, error) {
	switch s {
	case "full":
		return EffectFull, nil
	case "minimal":
		return EffectMinimal, nil
	case "performance":
		return EffectPerformance, nil
	}
	return EffectFull, fmt.Errorf("unknown effect preset %q", s)
}

// Bundle returns the fixed parameter bundle of the preset.
func (e EffectPreset) Bundle() (EffectBundle, bool) {
	b, ok := effectBundles[e]
	return b, ok
}
