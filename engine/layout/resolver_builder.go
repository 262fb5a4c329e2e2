package layout

import "github.com/rs/zerolog"

// ResolverBuilderOption is a functional option for configuring a Resolver.
type ResolverBuilderOption func(*resolverImpl)

// WithLogger sets the logger used for resolution warnings.
func WithLogger(log zerolog.Logger) ResolverBuilderOption {
	return func(r *resolverImpl) {
		r.log = log
	}
}

// WithPreset sets the initially active preset. Unknown names fall back to the first preset.
func WithPreset(name PresetName) ResolverBuilderOption {
	return func(r *resolverImpl) {
		r.preset = name
	}
}

// WithContext sets the initially active responsive context.
func WithContext(ctx ResponsiveContext) ResolverBuilderOption {
	return func(r *resolverImpl) {
		r.context = ctx
	}
}

// WithEffect sets the initially active effect preset.
func WithEffect(e EffectPreset) ResolverBuilderOption {
	return func(r *resolverImpl) {
		if _, ok := e.Bundle(); ok {
			r.effect = e
		}
	}
}
