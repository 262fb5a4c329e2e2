package camera

import "github.com/rs/zerolog"

// DirectorBuilderOption is a functional option for configuring a Director.
type DirectorBuilderOption func(*directorImpl)

// WithAutoplayInterval sets the seconds between automatic advances.
//
// Parameters:
//   - seconds: the interval, non-positive values are ignored
//
// Returns:
//   - DirectorBuilderOption: the option
func WithAutoplayInterval(seconds float64) DirectorBuilderOption {
	return func(d *directorImpl) {
		if seconds > 0 {
			d.interval = seconds
		}
	}
}

// WithAutoplay starts the director with autoplay on.
func WithAutoplay(on bool) DirectorBuilderOption {
	return func(d *directorImpl) {
		d.autoplay = on
	}
}

// WithSmoothTime sets the approximate seconds a scripted move takes to settle.
func WithSmoothTime(seconds float32) DirectorBuilderOption {
	return func(d *directorImpl) {
		if seconds > 0 {
			d.smoothTime = seconds
		}
	}
}

// WithParamSink sets where the camera is mirrored while free.
func WithParamSink(sink ParamSink) DirectorBuilderOption {
	return func(d *directorImpl) {
		d.sink = sink
	}
}

// WithLogger sets the director's logger.
func WithLogger(log zerolog.Logger) DirectorBuilderOption {
	return func(d *directorImpl) {
		d.log = log
	}
}
