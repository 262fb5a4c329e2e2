package camera

import (
	"fmt"
	"testing"

	"cogentcore.org/core/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	calls    int
	position math32.Vector3
	target   math32.Vector3
	fov      float32
}

func (s *recordingSink) SyncCamera(position, target math32.Vector3, fov float32) {
	s.calls++
	s.position, s.target, s.fov = position, target, fov
}

func testTour(n int) Tour {
	stops := make([]TourStop, n)
	for i := range stops {
		a := float32(i) * 0.7
		stops[i] = TourStop{
			Name:     fmt.Sprintf("stop-%d", i),
			Position: math32.Vec3(12*math32.Sin(a), 4, 12*math32.Cos(a)),
			Target:   math32.Vec3(0, 2, 0),
			FOV:      50,
		}
	}
	return NewTour(stops...)
}

func newTestDirector(t *testing.T, n int, options ...DirectorBuilderOption) (Director, Camera) {
	t.Helper()
	cam := NewCamera(WithController(NewCameraController()))
	return NewDirector(cam, testTour(n), options...), cam
}

func TestDirectorStartsScriptedOnFirstStop(t *testing.T) {
	d, cam := newTestDirector(t, 4)
	assert.Equal(t, ModeScripted, d.Mode())
	assert.Equal(t, 0, d.Index())
	assert.False(t, d.Autoplay())

	stop := d.Tour().Stop(0)
	assert.InDelta(t, 0, cam.Controller().Position().Sub(stop.Position).Length(), 1e-4)
}

func TestDirectorNextPrevWrap(t *testing.T) {
	d, _ := newTestDirector(t, 3)
	var visited []int
	d.SetStopChangedCallback(func(i int) { visited = append(visited, i) })

	d.Prev()
	assert.Equal(t, 2, d.Index())
	d.Next()
	d.Next()
	assert.Equal(t, 1, d.Index())
	d.End()
	assert.Equal(t, 2, d.Index())
	d.Home()
	assert.Equal(t, 0, d.Index())
	d.Goto(-4)
	assert.Equal(t, 2, d.Index())

	assert.Equal(t, []int{2, 0, 1, 2, 0, 2}, visited)
}

func TestDirectorAutoplayCyclesFullTour(t *testing.T) {
	d, _ := newTestDirector(t, 8, WithAutoplayInterval(3))
	var visited []int
	d.SetStopChangedCallback(func(i int) { visited = append(visited, i) })

	d.ToggleAutoplay()
	require.True(t, d.Autoplay())

	for range 96 {
		d.Update(0.25)
	}
	assert.Equal(t, 0, d.Index())
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 0}, visited)
	assert.Equal(t, ModeScripted, d.Mode())
}

func TestDirectorAutoplayOffStaysScripted(t *testing.T) {
	d, _ := newTestDirector(t, 4, WithAutoplay(true), WithAutoplayInterval(1))
	d.Update(1.0)
	require.Equal(t, 1, d.Index())

	d.ToggleAutoplay()
	assert.False(t, d.Autoplay())
	assert.Equal(t, ModeScripted, d.Mode())
	for range 10 {
		d.Update(0.5)
	}
	assert.Equal(t, 1, d.Index())
}

func TestDirectorScriptedConvergesOnStop(t *testing.T) {
	d, cam := newTestDirector(t, 4, WithSmoothTime(0.3))
	d.Goto(2)
	for range 240 {
		d.Update(1.0 / 60)
	}
	stop := d.Tour().Stop(2)
	assert.InDelta(t, 0, cam.Controller().Position().Sub(stop.Position).Length(), 1e-2)
	assert.InDelta(t, 0, cam.Controller().Target().Sub(stop.Target).Length(), 1e-2)
}

func TestDirectorDragReleasesToFree(t *testing.T) {
	sink := &recordingSink{}
	d, cam := newTestDirector(t, 4, WithAutoplay(true), WithParamSink(sink))

	d.BeginDrag()
	assert.Equal(t, ModeFree, d.Mode())
	assert.Equal(t, FreeIndex, d.Index())
	assert.False(t, d.Autoplay())
	assert.True(t, d.Dragging())

	d.Orbit(50, 10)
	d.EndDrag()
	assert.False(t, d.Dragging())

	before := cam.Controller().Position()
	for range 30 {
		d.Update(0.1)
	}
	// no scripted writer moves the camera while free
	assert.Equal(t, before, cam.Controller().Position())
	assert.Equal(t, 30, sink.calls)
	assert.Equal(t, before, sink.position)
	assert.InDelta(t, 50, sink.fov, 1e-3)
}

func TestDirectorNavigationFromFreeResumesScripted(t *testing.T) {
	d, _ := newTestDirector(t, 5)
	d.Goto(3)
	d.Zoom(2)
	require.Equal(t, ModeFree, d.Mode())

	d.Next()
	assert.Equal(t, ModeScripted, d.Mode())
	assert.Equal(t, 4, d.Index())

	d.Pan(1, 1)
	d.ToggleAutoplay()
	assert.Equal(t, ModeScripted, d.Mode())
	assert.Equal(t, 4, d.Index())
	assert.True(t, d.Autoplay())
}

func TestDirectorStopFreezes(t *testing.T) {
	d, cam := newTestDirector(t, 4, WithAutoplay(true), WithAutoplayInterval(0.5))
	calls := 0
	d.SetStopChangedCallback(func(int) { calls++ })
	d.Stop()

	before := cam.Controller().Position()
	for range 20 {
		d.Update(0.5)
	}
	d.Next()
	d.Orbit(10, 10)
	assert.Equal(t, 0, calls)
	assert.False(t, d.Autoplay())
	assert.Equal(t, 0, d.Index())
	assert.Equal(t, before, cam.Controller().Position())
}
