package profiler

import (
	"bytes"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestTickReportsOncePerInterval(t *testing.T) {
	var buf bytes.Buffer
	clock := &fakeClock{t: time.Unix(100, 0)}
	p := NewProfiler(zerolog.New(&buf).Level(zerolog.DebugLevel))
	p.now = clock.now
	p.lastTime, p.lastFrame = clock.t, clock.t

	for range 9 {
		clock.advance(100 * time.Millisecond)
		assert.False(t, p.Tick(Sample{DrawCalls: 3, Instances: 40}))
	}
	assert.Empty(t, buf.String())

	clock.advance(100 * time.Millisecond)
	require.True(t, p.Tick(Sample{DrawCalls: 4, Instances: 41}))

	r := p.Last()
	assert.InDelta(t, 10, r.FPS, 1e-9)
	assert.InDelta(t, 100, r.AvgFrameMs, 1e-9)
	assert.InDelta(t, 100, r.MaxFrameMs, 1e-9)
	assert.Equal(t, 4, r.DrawCalls)
	assert.Equal(t, 41, r.Instances)
	assert.Contains(t, buf.String(), `"message":"frame stats"`)
	assert.Contains(t, buf.String(), `"draw_calls":4`)
}

func TestSlowFrameShowsInMax(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	p := NewProfiler(zerolog.Nop())
	p.now = clock.now
	p.lastTime, p.lastFrame = clock.t, clock.t
	p.SetInterval(500 * time.Millisecond)

	clock.advance(50 * time.Millisecond)
	p.Tick(Sample{})
	clock.advance(450 * time.Millisecond)
	require.True(t, p.Tick(Sample{}))
	assert.InDelta(t, 450, p.Last().MaxFrameMs, 1e-9)

	clock.advance(500 * time.Millisecond)
	require.True(t, p.Tick(Sample{}))
	assert.InDelta(t, 500, p.Last().MaxFrameMs, 1e-9, "max resets each interval")
}

func TestSetIntervalIgnoresNonPositive(t *testing.T) {
	p := NewProfiler(zerolog.Nop())
	p.SetInterval(0)
	assert.Equal(t, time.Second, p.updateInterval)
}
