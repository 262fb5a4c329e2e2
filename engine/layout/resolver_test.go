package layout

import (
	"bytes"
	"testing"

	"cogentcore.org/core/math32"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresetsAreComplete(t *testing.T) {
	ps := Presets()
	require.Len(t, ps, 3)
	for _, p := range ps {
		assert.NotEmpty(t, p.Description, string(p.Name))
		assert.Equal(t, p.Params.Clamp(), p.Params, "%s defaults are inside their ranges", p.Name)
	}
}

func TestResolveCompactChangesOnlyCameraFraming(t *testing.T) {
	r := NewResolver()
	for _, p := range Presets() {
		desktop := r.Resolve(p.Name, ContextDesktop)
		compact := r.Resolve(p.Name, ContextCompact)

		assert.Greater(t, compact.Camera.Distance(), desktop.Camera.Distance(), "%s pulled back", p.Name)
		assert.Greater(t, compact.Camera.FOV, desktop.Camera.FOV, "%s widened", p.Name)
		assert.Equal(t, desktop.Camera.Target, compact.Camera.Target, "%s keeps the look-at target", p.Name)
		assert.InDelta(t, desktop.Camera.Distance()*CompactDistanceScale, compact.Camera.Distance(), 1e-3)

		// direction is preserved, only the distance changes
		d := desktop.Camera.Position.Sub(desktop.Camera.Target).MulScalar(1 / desktop.Camera.Distance())
		c := compact.Camera.Position.Sub(compact.Camera.Target).MulScalar(1 / compact.Camera.Distance())
		assert.InDelta(t, d.X, c.X, 1e-5)
		assert.InDelta(t, d.Y, c.Y, 1e-5)
		assert.InDelta(t, d.Z, c.Z, 1e-5)

		compact.Camera = desktop.Camera
		assert.Equal(t, desktop, compact, "%s object layout is identical", p.Name)
	}
}

func TestResolveUnknownPresetFallsBackWithWarning(t *testing.T) {
	var buf bytes.Buffer
	r := NewResolver(WithLogger(zerolog.New(&buf)))

	got := r.Resolve("cinematic", ContextDesktop)
	want := r.Resolve(Presets()[0].Name, ContextDesktop)
	assert.Equal(t, want, got)
	assert.Contains(t, buf.String(), "unknown layout preset")
	assert.Contains(t, buf.String(), `"level":"warn"`)

	buf.Reset()
	got = r.Resolve(PresetHeroic, ResponsiveContext(42))
	assert.Equal(t, r.Resolve(PresetHeroic, ContextDesktop), got)
	assert.Contains(t, buf.String(), "unknown responsive context")
}

func TestOverrideClampsInsteadOfRejecting(t *testing.T) {
	r := NewResolver()

	applied := r.Override(FieldPlazaRadius, -4)
	assert.Equal(t, FieldPlazaRadius.Range().Min, applied)
	assert.Equal(t, FieldPlazaRadius.Range().Min, r.Current().Plaza.Radius)

	applied = r.Override(FieldCoinGlowIntensity, 99)
	assert.Equal(t, FieldCoinGlowIntensity.Range().Max, applied)

	applied = r.Override(FieldColumnArcSpan, math32.NaN())
	assert.Equal(t, FieldColumnArcSpan.Range().Min, applied)
}

func TestOverridesKeepTheRestOfTheSet(t *testing.T) {
	r := NewResolver()
	before := r.Current()

	r.Override(FieldCoinHeightOffset, 2)
	after := r.Current()
	assert.Equal(t, float32(2), after.Coins.HeightOffset)

	after.Coins.HeightOffset = before.Coins.HeightOffset
	assert.Equal(t, before, after)
}

func TestOverridesDiscardedOnPresetOrContextChange(t *testing.T) {
	r := NewResolver()
	r.Override(FieldMedallionScale, 3)
	r.OverrideToggle(ToggleFog, false)
	require.Equal(t, float32(3), r.Current().Medallion.Scale)

	assert.False(t, r.Select(r.Preset(), r.Context()), "same pair is not a change")
	assert.Equal(t, float32(3), r.Current().Medallion.Scale, "overrides persist without a change")

	require.True(t, r.SetContext(ContextCompact))
	cur := r.Current()
	assert.Equal(t, r.Resolve(PresetEnsemble, ContextCompact).Medallion.Scale, cur.Medallion.Scale)
	assert.True(t, cur.Layers.Fog)

	r.Override(FieldMedallionScale, 3)
	require.True(t, r.Select(PresetOverview, ContextCompact))
	assert.Equal(t, r.Resolve(PresetOverview, ContextCompact), r.Current())
}

func TestSelectUnknownPresetUsesFallback(t *testing.T) {
	r := NewResolver(WithPreset(PresetHeroic))
	assert.Equal(t, PresetHeroic, r.Preset())

	r.Select("nope", ContextDesktop)
	assert.Equal(t, Presets()[0].Name, r.Preset())
}

func TestEffectCommandsArriveOverChannel(t *testing.T) {
	r := NewResolver()
	rev := r.Revision()
	assert.False(t, r.ApplyCommands(), "nothing pending")

	r.Commands() <- EffectMinimal
	r.Commands() <- EffectPerformance
	assert.Equal(t, EffectFull, r.Effect(), "not applied until drained")

	assert.True(t, r.ApplyCommands())
	assert.Equal(t, EffectPerformance, r.Effect())
	assert.Greater(t, r.Revision(), rev)

	want, _ := EffectPerformance.Bundle()
	assert.Equal(t, want, r.Current().Effects)

	r.Commands() <- EffectPerformance
	assert.False(t, r.ApplyCommands(), "same preset is not a change")

	r.Commands() <- EffectPreset(7)
	assert.False(t, r.ApplyCommands())
	assert.Equal(t, EffectPerformance, r.Effect())
}

func TestEffectSurvivesPresetChange(t *testing.T) {
	r := NewResolver(WithEffect(EffectMinimal))
	r.Select(PresetHeroic, ContextDesktop)
	want, _ := EffectMinimal.Bundle()
	assert.Equal(t, want, r.Current().Effects)
}

func TestSyncCameraMirrorsWithoutRevision(t *testing.T) {
	r := NewResolver()
	rev := r.Revision()

	r.SyncCamera(math32.Vec3(1, 2, 3), math32.Vec3(0, 1, 0), 55)
	cam := r.Current().Camera
	assert.Equal(t, math32.Vec3(1, 2, 3), cam.Position)
	assert.Equal(t, float32(55), cam.FOV)
	assert.Equal(t, rev, r.Revision())
	assert.Equal(t, r.Resolve(r.Preset(), r.Context()).Camera, r.Layout().Camera, "layout ignores the mirror")

	r.Override(FieldCameraFOV, 40)
	assert.Equal(t, float32(40), r.Current().Camera.FOV, "explicit override replaces the mirror")
}

func TestContextForWidth(t *testing.T) {
	assert.Equal(t, ContextCompact, ContextForWidth(600, 768))
	assert.Equal(t, ContextDesktop, ContextForWidth(768, 768))
}

func TestParseField(t *testing.T) {
	f, ok := ParseField("coins.height_offset")
	require.True(t, ok)
	assert.Equal(t, FieldCoinHeightOffset, f)
	assert.Equal(t, "coins.height_offset", f.String())

	_, ok = ParseField("coins.shininess")
	assert.False(t, ok)
}
