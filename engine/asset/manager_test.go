package asset

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/oxy-plaza/common"
)

func pngBytes(t *testing.T, w, h int, c color.RGBA) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func testFS(t *testing.T) fstest.MapFS {
	return fstest.MapFS{
		"icons/eth.png":  {Data: pngBytes(t, 32, 32, color.RGBA{R: 255, A: 255})},
		"icons/sol.png":  {Data: pngBytes(t, 300, 150, color.RGBA{G: 255, A: 255})},
		"icons/bad.png":  {Data: []byte("not an image")},
		"icons/note.txt": {Data: []byte("hello")},
	}
}

func settle(t *testing.T, m Manager) []Handle {
	t.Helper()
	var settled []Handle
	require.Eventually(t, func() bool {
		settled = append(settled, m.Poll()...)
		return m.Pending() == 0
	}, 2*time.Second, 5*time.Millisecond)
	return settled
}

func TestRequestStartsPendingWithPlaceholder(t *testing.T) {
	m := NewManager(testFS(t), WithIconSize(64))
	defer m.Close()

	h := m.Request("icons/eth.png")
	assert.Equal(t, StatePending, h.State)
	assert.Same(t, m.Placeholder(), h.Image)
	assert.Equal(t, 64, m.Placeholder().Bounds().Dx())

	again := m.Request("icons/eth.png")
	assert.Equal(t, h.Ref, again.Ref)
	settle(t, m)
}

func TestLoadsAreAppliedOnPoll(t *testing.T) {
	m := NewManager(testFS(t), WithIconSize(64), WithWorkers(3))
	defer m.Close()

	var readyCalls [][2]int
	m.SetReadyCallback(func(ready, failed int) { readyCalls = append(readyCalls, [2]int{ready, failed}) })

	m.Request("icons/eth.png")
	m.Request("icons/sol.png")
	settled := settle(t, m)
	require.Len(t, settled, 2)

	for _, ref := range []string{"icons/eth.png", "icons/sol.png"} {
		h, ok := m.Handle(ref)
		require.True(t, ok)
		assert.Equal(t, StateReady, h.State, ref)
		assert.NoError(t, h.Err)
		assert.Equal(t, image.Rect(0, 0, 64, 64), h.Image.Bounds())
	}
	eth, _ := m.Handle("icons/eth.png")
	assert.Greater(t, eth.Image.RGBAAt(32, 32).R, uint8(200))

	require.NotEmpty(t, readyCalls)
	assert.Equal(t, [2]int{2, 0}, readyCalls[len(readyCalls)-1])
}

func TestReadyAnnouncedOncePerSettle(t *testing.T) {
	m := NewManager(testFS(t))
	defer m.Close()

	var calls [][2]int
	m.SetReadyCallback(func(ready, failed int) { calls = append(calls, [2]int{ready, failed}) })

	assert.Empty(t, m.Poll())
	assert.Empty(t, m.Poll())
	assert.Equal(t, [][2]int{{0, 0}}, calls, "nothing requested still settles once")

	m.Request("icons/eth.png")
	settle(t, m)
	m.Poll()
	assert.Equal(t, [][2]int{{0, 0}, {1, 0}}, calls)
}

func TestFailuresKeepPlaceholder(t *testing.T) {
	m := NewManager(testFS(t))
	defer m.Close()

	for _, ref := range []string{"icons/missing.png", "icons/bad.png", "icons/note.txt"} {
		m.Request(ref)
	}
	settle(t, m)

	for _, ref := range []string{"icons/missing.png", "icons/bad.png", "icons/note.txt"} {
		h, ok := m.Handle(ref)
		require.True(t, ok)
		assert.Equal(t, StateFailed, h.State, ref)
		assert.ErrorIs(t, h.Err, common.ErrAssetLoadFailure)
		assert.Same(t, m.Placeholder(), h.Image)
	}
}

func TestEmptyRefFailsImmediately(t *testing.T) {
	m := NewManager(testFS(t))
	defer m.Close()

	h := m.Request("")
	assert.Equal(t, StateFailed, h.State)
	assert.ErrorIs(t, h.Err, common.ErrAssetLoadFailure)
	assert.Equal(t, 0, m.Pending())
}

func TestCloseDropsLateResults(t *testing.T) {
	m := NewManager(testFS(t))
	m.Request("icons/sol.png")
	m.Close()

	assert.Equal(t, 0, m.Pending())
	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, m.Poll())
	_, ok := m.Handle("icons/sol.png")
	assert.False(t, ok)

	h := m.Request("icons/eth.png")
	assert.Equal(t, StateFailed, h.State)
}
