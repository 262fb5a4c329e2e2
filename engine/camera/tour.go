package camera

import (
	"cogentcore.org/core/math32"

	"github.com/Carmen-Shannon/oxy-plaza/common"
)

// TourStop is one named camera placement in the scripted sequence.
// FOV is in degrees.
type TourStop struct {
	Name     string
	Position math32.Vector3
	Target   math32.Vector3
	FOV      float32
}

// Tour is an immutable ordered sequence of stops.
type Tour struct {
	stops []TourStop
}

// NewTour creates a tour from its stops.
func NewTour(stops ...TourStop) Tour {
	return Tour{stops: append([]TourStop(nil), stops...)}
}

// Len returns the number of stops.
func (t Tour) Len() int {
	return len(t.stops)
}

// Wrap maps any index onto [0, Len) in both directions.
func (t Tour) Wrap(i int) int {
	return common.Wrap(i, len(t.stops))
}

// Stop returns the stop at the wrapped index. An empty tour yields the zero stop.
func (t Tour) Stop(i int) TourStop {
	if len(t.stops) == 0 {
		return TourStop{}
	}
	return t.stops[t.Wrap(i)]
}

// Stops returns a copy of the stops.
func (t Tour) Stops() []TourStop {
	return append([]TourStop(nil), t.stops...)
}

// StopAnchor is a point of interest for one entity stop.
type StopAnchor struct {
	Name string
	// Focus is what the camera looks at.
	Focus math32.Vector3
	// Outward points from the plaza centre toward the focus; the camera sits
	// on this side so the plaza stays in the background.
	Outward math32.Vector3
}

// BuildTour assembles the overview stop followed by one stop per anchor.
//
// Parameters:
//   - overview: the first stop
//   - anchors: entity anchors in column order
//   - distance: horizontal distance between camera and focus
//   - lift: height of the camera above the focus
//
// Returns:
//   - Tour: len(anchors)+1 stops
func BuildTour(overview TourStop, anchors []StopAnchor, distance, lift float32) Tour {
	stops := make([]TourStop, 0, len(anchors)+1)
	stops = append(stops, overview)
	for _, a := range anchors {
		out := math32.Vec3(a.Outward.X, 0, a.Outward.Z)
		if l := out.Length(); l > 1e-6 {
			out = out.MulScalar(1 / l)
		} else {
			out = math32.Vec3(0, 0, 1)
		}
		stops = append(stops, TourStop{
			Name:     a.Name,
			Position: a.Focus.Add(out.MulScalar(distance)).Add(math32.Vec3(0, lift, 0)),
			Target:   a.Focus,
			FOV:      overview.FOV,
		})
	}
	return Tour{stops: stops}
}
