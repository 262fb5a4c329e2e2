package scene

import (
	"github.com/rs/zerolog"

	"github.com/Carmen-Shannon/oxy-plaza/engine/animator"
	"github.com/Carmen-Shannon/oxy-plaza/engine/asset"
	"github.com/Carmen-Shannon/oxy-plaza/engine/camera"
	"github.com/Carmen-Shannon/oxy-plaza/engine/hud"
	"github.com/Carmen-Shannon/oxy-plaza/engine/layout"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithLogger sets the base logger. The scene adds its session ID to it.
//
// Parameters:
//   - log: the logger
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithLogger(log zerolog.Logger) SceneBuilderOption {
	return func(s *scene) {
		s.log = log
	}
}

// WithResolver sets the layout resolver. Defaults to a resolver on the first preset.
//
// Parameters:
//   - r: the resolver
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithResolver(r layout.Resolver) SceneBuilderOption {
	return func(s *scene) {
		s.resolver = r
	}
}

// WithScheduler sets the animation scheduler.
func WithScheduler(sch animator.Scheduler) SceneBuilderOption {
	return func(s *scene) {
		s.scheduler = sch
	}
}

// WithAssets sets the asset manager used for coin and medallion icons.
// Without one every icon is drawn with the placeholder.
func WithAssets(m asset.Manager) SceneBuilderOption {
	return func(s *scene) {
		s.assets = m
	}
}

// WithOverlay sets the tooltip overlay.
func WithOverlay(o hud.Overlay) SceneBuilderOption {
	return func(s *scene) {
		s.overlay = o
	}
}

// WithViewport sets the initial framebuffer size in pixels.
//
// Parameters:
//   - width, height: size in pixels, non-positive values are ignored
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithViewport(width, height int) SceneBuilderOption {
	return func(s *scene) {
		if width > 0 && height > 0 {
			s.width, s.height = width, height
		}
	}
}

// WithCompactBreakpoint sets the width in pixels below which the compact framing applies.
func WithCompactBreakpoint(px int) SceneBuilderOption {
	return func(s *scene) {
		if px > 0 {
			s.breakpoint = px
		}
	}
}

// WithMedallionIcon sets the image shown on the medallion.
func WithMedallionIcon(ref string) SceneBuilderOption {
	return func(s *scene) {
		s.medallionIcon = ref
	}
}

// WithTourFraming sets how far from and above each column its tour stop sits.
//
// Parameters:
//   - distance: horizontal distance from the column focus
//   - lift: height above the focus
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithTourFraming(distance, lift float32) SceneBuilderOption {
	return func(s *scene) {
		if distance > 0 {
			s.tourDistance = distance
		}
		s.tourLift = lift
	}
}

// WithDirectorOptions passes options through to the camera director, for
// example camera.WithAutoplay or camera.WithAutoplayInterval.
func WithDirectorOptions(options ...camera.DirectorBuilderOption) SceneBuilderOption {
	return func(s *scene) {
		s.directorOptions = append(s.directorOptions, options...)
	}
}

// WithCullingDisabled turns off CPU frustum culling of draw items.
func WithCullingDisabled(disabled bool) SceneBuilderOption {
	return func(s *scene) {
		s.cullingDisabled = disabled
	}
}
