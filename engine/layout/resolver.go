package layout

import (
	"sync"

	"cogentcore.org/core/math32"
	"github.com/rs/zerolog"

	"github.com/Carmen-Shannon/oxy-plaza/common"
)

type resolverImpl struct {
	mu *sync.Mutex

	preset  PresetName
	context ResponsiveContext
	effect  EffectPreset

	fieldOverrides  map[Field]float32
	toggleOverrides map[Toggle]bool

	// revision counts changes that affect scene composition; camera syncs do not count.
	revision uint64
	synced   *CameraDefinition

	commands chan EffectPreset
	log      zerolog.Logger
}

// Resolver maps a preset and a responsive context to a SceneParameterSet and
// keeps the control-surface overrides layered on top of it.
type Resolver interface {
	// Resolve computes the parameter set for a preset and context with no overrides.
	// Unknown presets or contexts fall back to the first preset and desktop
	// framing, logging a warning.
	//
	// Parameters:
	//   - preset: the preset name
	//   - ctx: the responsive context
	//
	// Returns:
	//   - SceneParameterSet: the resolved, clamped set
	Resolve(preset PresetName, ctx ResponsiveContext) SceneParameterSet

	// Select makes a preset and context active. If either differs from the
	// active pair, all overrides are discarded.
	//
	// Parameters:
	//   - preset: the preset name
	//   - ctx: the responsive context
	//
	// Returns:
	//   - bool: true if the active pair changed
	Select(preset PresetName, ctx ResponsiveContext) bool

	// SetContext is Select with the active preset.
	SetContext(ctx ResponsiveContext) bool

	// Preset returns the active preset name (after any fallback).
	Preset() PresetName

	// Context returns the active responsive context.
	Context() ResponsiveContext

	// Current returns the active preset resolved for the active context with
	// the effect bundle and every override applied.
	Current() SceneParameterSet

	// Layout is Current without the mirrored free-orbit camera. Composition
	// and the tour overview are derived from it.
	Layout() SceneParameterSet

	// Override sets one numeric field. Out-of-range values are clamped.
	//
	// Parameters:
	//   - f: the field
	//   - v: the requested value
	//
	// Returns:
	//   - float32: the value actually applied
	Override(f Field, v float32) float32

	// OverrideToggle switches one boolean parameter.
	OverrideToggle(t Toggle, on bool)

	// ClearOverrides drops every override and returns to the preset defaults.
	ClearOverrides()

	// SyncCamera mirrors the live camera into Current so a control surface
	// observing the set stays in step with free-orbit input. It does not
	// count as a composition change.
	SyncCamera(position, target math32.Vector3, fov float32)

	// Commands returns the channel effect density commands are sent on.
	// Commands are applied by ApplyCommands on the frame thread.
	Commands() chan<- EffectPreset

	// ApplyCommands drains pending effect commands without blocking.
	//
	// Returns:
	//   - bool: true if the active effect preset changed
	ApplyCommands() bool

	// Effect returns the active effect preset.
	Effect() EffectPreset

	// Revision increases whenever Current changes in a way that affects composition.
	Revision() uint64
}

var _ Resolver = &resolverImpl{}

// NewResolver creates a resolver with the first preset, desktop context and full effects active.
//
// Parameters:
//   - options: functional options
//
// Returns:
//   - Resolver: the resolver
func NewResolver(options ...ResolverBuilderOption) Resolver {
	r := &resolverImpl{
		mu:              &sync.Mutex{},
		preset:          presets[0].Name,
		context:         ContextDesktop,
		effect:          EffectFull,
		fieldOverrides:  make(map[Field]float32),
		toggleOverrides: make(map[Toggle]bool),
		commands:        make(chan EffectPreset, 16),
		log:             zerolog.Nop(),
	}
	for _, option := range options {
		option(r)
	}
	r.preset, r.context = r.normalize(r.preset, r.context)
	return r
}

func (r *resolverImpl) normalize(preset PresetName, ctx ResponsiveContext) (PresetName, ResponsiveContext) {
	if _, ok := LookupPreset(preset); !ok {
		r.log.Warn().
			Err(common.ErrResolutionConflict).
			Str("preset", string(preset)).
			Str("fallback", string(presets[0].Name)).
			Msg("unknown layout preset")
		preset = presets[0].Name
	}
	if ctx != ContextDesktop && ctx != ContextCompact {
		r.log.Warn().
			Err(common.ErrResolutionConflict).
			Stringer("context", ctx).
			Msg("unknown responsive context, using desktop framing")
		ctx = ContextDesktop
	}
	return preset, ctx
}

func (r *resolverImpl) Resolve(preset PresetName, ctx ResponsiveContext) SceneParameterSet {
	preset, ctx = r.normalize(preset, ctx)
	p, _ := LookupPreset(preset)
	params := p.Params
	if ctx == ContextCompact {
		params.Camera = compactCamera(params.Camera)
	}
	return params.Clamp()
}

func (r *resolverImpl) Select(preset PresetName, ctx ResponsiveContext) bool {
	preset, ctx = r.normalize(preset, ctx)

	r.mu.Lock()
	defer r.mu.Unlock()
	if preset == r.preset && ctx == r.context {
		return false
	}
	r.preset, r.context = preset, ctx
	r.discardOverrides()
	r.log.Debug().Str("preset", string(preset)).Stringer("context", ctx).Msg("layout selected")
	return true
}

func (r *resolverImpl) SetContext(ctx ResponsiveContext) bool {
	return r.Select(r.Preset(), ctx)
}

func (r *resolverImpl) discardOverrides() {
	clear(r.fieldOverrides)
	clear(r.toggleOverrides)
	r.synced = nil
	r.revision++
}

func (r *resolverImpl) Preset() PresetName {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.preset
}

func (r *resolverImpl) Context() ResponsiveContext {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.context
}

func (r *resolverImpl) Current() SceneParameterSet {
	return r.current(true)
}

func (r *resolverImpl) Layout() SceneParameterSet {
	return r.current(false)
}

func (r *resolverImpl) current(mirror bool) SceneParameterSet {
	r.mu.Lock()
	preset, ctx, effect := r.preset, r.context, r.effect
	fields := make(map[Field]float32, len(r.fieldOverrides))
	for f, v := range r.fieldOverrides {
		fields[f] = v
	}
	toggles := make(map[Toggle]bool, len(r.toggleOverrides))
	for t, on := range r.toggleOverrides {
		toggles[t] = on
	}
	synced := r.synced
	r.mu.Unlock()

	params := r.Resolve(preset, ctx)
	if b, ok := effect.Bundle(); ok {
		params.Effects = b
	}
	for f, v := range fields {
		params = params.With(f, v)
	}
	for t, on := range toggles {
		params.setToggle(t, on)
	}
	if mirror && synced != nil {
		params.Camera = *synced
	}
	return params.Clamp()
}

func (r *resolverImpl) Override(f Field, v float32) float32 {
	if f < 0 || f >= fieldCount {
		r.log.Warn().Stringer("field", f).Msg("ignoring override of unknown field")
		return 0
	}
	applied := f.Range().Clamp(v)
	if applied != v {
		r.log.Debug().Stringer("field", f).Float32("requested", v).Float32("applied", applied).Msg("override clamped")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.fieldOverrides[f] = applied
	if f >= FieldCameraX {
		// an explicit camera override wins over the mirrored free-orbit camera
		r.synced = nil
	}
	r.revision++
	return applied
}

func (r *resolverImpl) OverrideToggle(t Toggle, on bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.toggleOverrides[t] = on
	r.revision++
}

func (r *resolverImpl) ClearOverrides() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.discardOverrides()
}

func (r *resolverImpl) SyncCamera(position, target math32.Vector3, fov float32) {
	cam := CameraDefinition{
		Position: position,
		Target:   target,
		FOV:      FieldCameraFOV.Range().Clamp(fov),
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.synced = &cam
}

func (r *resolverImpl) Commands() chan<- EffectPreset {
	return r.commands
}

func (r *resolverImpl) ApplyCommands() bool {
	changed := false
	for {
		select {
		case e := <-r.commands:
			if _, ok := e.Bundle(); !ok {
				r.log.Warn().Stringer("effect", e).Msg("ignoring unknown effect preset")
				continue
			}
			r.mu.Lock()
			if r.effect != e {
				r.effect = e
				r.revision++
				changed = true
			}
			r.mu.Unlock()
		default:
			if changed {
				r.log.Debug().Stringer("effect", r.Effect()).Msg("effect density changed")
			}
			return changed
		}
	}
}

func (r *resolverImpl) Effect() EffectPreset {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.effect
}

func (r *resolverImpl) Revision() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.revision
}
