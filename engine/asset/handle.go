package asset

import "image"

// State is the load state of one asset.
type State int

const (
	// StatePending assets are being decoded; the placeholder is shown.
	StatePending State = iota
	// StateReady assets have their decoded image.
	StateReady
	// StateFailed assets could not be loaded and keep the placeholder for the session.
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return "pending"
	}
}

// Handle is a snapshot of one asset. Image is the decoded icon when Ready
// and the shared placeholder otherwise, so callers can always draw it.
type Handle struct {
	Ref   string
	State State
	Image *image.RGBA
	Err   error
}

// Settled reports whether loading has finished, successfully or not.
func (h Handle) Settled() bool {
	return h.State != StatePending
}
