package asset

import "github.com/rs/zerolog"

// ManagerBuilderOption is a functional option for configuring a Manager.
type ManagerBuilderOption func(*managerImpl)

// WithWorkers sets the maximum number of concurrent decode workers.
//
// Parameters:
//   - n: worker count, values below 1 are ignored
//
// Returns:
//   - ManagerBuilderOption: the option
func WithWorkers(n int) ManagerBuilderOption {
	return func(m *managerImpl) {
		if n > 0 {
			m.workers = n
		}
	}
}

// WithIconSize sets the square pixel size every decoded image is scaled to.
func WithIconSize(px int) ManagerBuilderOption {
	return func(m *managerImpl) {
		if px > 0 {
			m.iconSize = px
		}
	}
}

// WithLogger sets the manager's logger.
func WithLogger(log zerolog.Logger) ManagerBuilderOption {
	return func(m *managerImpl) {
		m.log = log
	}
}
