package animator

import "github.com/rs/zerolog"

// SchedulerBuilderOption is a functional option for configuring a Scheduler.
type SchedulerBuilderOption func(*schedulerImpl)

// WithMaxStep sets the largest frame delta the clock accepts.
//
// Parameters:
//   - seconds: the clamp, non-positive means DefaultMaxStep
func WithMaxStep(seconds float64) SchedulerBuilderOption {
	return func(s *schedulerImpl) {
		s.clock = NewClock(seconds)
	}
}

// WithHoverStyle overrides DefaultHoverStyle.
func WithHoverStyle(style HoverStyle) SchedulerBuilderOption {
	return func(s *schedulerImpl) {
		s.style = style
	}
}

// WithLogger sets the scheduler's logger.
func WithLogger(log zerolog.Logger) SchedulerBuilderOption {
	return func(s *schedulerImpl) {
		s.log = log
	}
}
