package interaction

import (
	"fmt"
	"testing"

	"cogentcore.org/core/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/oxy-plaza/common"
	"github.com/Carmen-Shannon/oxy-plaza/engine/catalog"
)

const viewSize = 100

type recordingHighlighter struct {
	calls []string
	on    map[int]bool
}

func (h *recordingHighlighter) SetHovered(i int, hovered bool) {
	if h.on == nil {
		h.on = map[int]bool{}
	}
	h.calls = append(h.calls, fmt.Sprintf("%d:%v", i, hovered))
	h.on[i] = hovered
}

func (h *recordingHighlighter) count() int {
	n := 0
	for _, on := range h.on {
		if on {
			n++
		}
	}
	return n
}

func testCatalog(t *testing.T) catalog.Catalog {
	t.Helper()
	cat, err := catalog.NewCatalog([]catalog.ChainEntity{
		{Name: "Alpha", Status: catalog.StatusLive, DepositAmount: 100, NavigationTarget: "/mint/alpha"},
		{Name: "Beta", Status: catalog.StatusNext, DepositAmount: 50, NavigationTarget: "/mint/beta"},
		{Name: "Gamma", Status: catalog.StatusMystery, DepositAmount: 500, NavigationTarget: "/mint/gamma"},
	})
	require.NoError(t, err)
	return cat
}

// Camera at z=10 looking at the origin; entity 0 at the centre, entity 1
// directly behind it, entity 2 to the right.
func testTargets() []Target {
	return []Target{
		{EntityIndex: 0, Bounds: math32.B3(-1, -1, -1, 1, 1, 1), Visible: true},
		{EntityIndex: 1, Bounds: math32.B3(-1, -1, -6, 1, 1, -4), Visible: true},
		{EntityIndex: 2, Bounds: math32.B3(2.5, -0.5, -0.5, 3.5, 0.5, 0.5), Visible: true},
	}
}

func newTestPicker(t *testing.T, options ...PickerBuilderOption) (Picker, *recordingHighlighter) {
	t.Helper()
	h := &recordingHighlighter{}
	p := NewPicker(testCatalog(t), append([]PickerBuilderOption{WithHighlighter(h)}, options...)...)

	view := common.LookAt(math32.Vec3(0, 0, 10), math32.Vec3(0, 0, 0), math32.Vec3(0, 1, 0))
	vp := common.Perspective(math32.DegToRad(60), 1, 0.1, 100).Mul(view)
	inv, ok := vp.Inverse()
	require.True(t, ok)
	p.SetView(inv, viewSize, viewSize)
	p.SetTargets(testTargets())
	return p, h
}

// rightX is the pixel column through the centre of entity 2.
func rightX() float32 {
	ndc := 3 / (10 * math32.Tan(math32.DegToRad(30)))
	return (ndc + 1) * 0.5 * viewSize
}

func TestPickClosestHitWins(t *testing.T) {
	p, _ := newTestPicker(t)
	index, ok, err := p.Pick(50, 50)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 0, index)

	index, ok, err = p.Pick(rightX(), 50)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 2, index)

	_, ok, err = p.Pick(3, 3)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPickOutOfBounds(t *testing.T) {
	p, _ := newTestPicker(t)
	for _, pt := range [][2]float32{{-1, 50}, {50, -1}, {viewSize, 50}, {50, viewSize + 20}} {
		_, ok, err := p.Pick(pt[0], pt[1])
		assert.ErrorIs(t, err, common.ErrPickingOutOfBounds)
		assert.False(t, ok)
	}
}

func TestHoverExclusivity(t *testing.T) {
	p, h := newTestPicker(t)
	var published []HoverSelection
	p.SetHoverChangedCallback(func(s HoverSelection) {
		// the previous entity is already cleared when the new hover is published
		assert.LessOrEqual(t, h.count(), 1)
		published = append(published, s)
	})

	p.PointerMove(50, 50)
	p.PointerMove(51, 49)
	p.PointerMove(rightX(), 50)
	p.PointerMove(3, 3)

	assert.Equal(t, []string{"0:true", "0:false", "2:true", "2:false"}, h.calls)
	require.Len(t, published, 3)
	assert.Equal(t, "Alpha", published[0].Entity.Name)
	assert.Equal(t, "Gamma", published[1].Entity.Name)
	assert.False(t, published[2].Active)
	assert.Equal(t, math32.Vec2(3, 3), published[2].Cursor)
	assert.Equal(t, 0, h.count())
}

func TestHoverIgnoresOutOfBoundsPointer(t *testing.T) {
	p, h := newTestPicker(t)
	p.PointerMove(50, 50)
	p.PointerMove(-20, 50)

	sel := p.Hovered()
	assert.True(t, sel.Active)
	assert.Equal(t, "Alpha", sel.Entity.Name)
	assert.Equal(t, math32.Vec2(50, 50), sel.Cursor)
	assert.Equal(t, []string{"0:true"}, h.calls)
}

func TestInvisibleTargetsAreNotPickable(t *testing.T) {
	p, h := newTestPicker(t)
	p.PointerMove(50, 50)
	require.True(t, p.Hovered().Active)

	targets := testTargets()
	targets[0].Visible = false
	p.SetTargets(targets)
	assert.False(t, p.Hovered().Active, "hiding the hovered target clears the hover")
	assert.Equal(t, []string{"0:true", "0:false"}, h.calls)

	index, ok, err := p.Pick(50, 50)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 1, index)
}

func TestPointerLeaveClearsHover(t *testing.T) {
	p, h := newTestPicker(t)
	p.PointerMove(rightX(), 50)
	p.PointerLeave()
	assert.False(t, p.Hovered().Active)
	assert.Equal(t, 0, h.count())
}

func TestClickDispatch(t *testing.T) {
	tests := []struct {
		name   string
		x      float32
		kind   NavigationKind
		entity string
		target string
	}{
		{name: "live entity views mint detail", x: 50, kind: NavigateViewMintDetail, entity: "Alpha", target: "/mint/alpha"},
		{name: "mystery entity requests vote", x: rightX(), kind: NavigateRequestVote, entity: "Gamma", target: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _ := newTestPicker(t)
			var events []NavigateEvent
			p.SetNavigateCallback(func(ev NavigateEvent) { events = append(events, ev) })

			p.PointerMove(tt.x, 50)
			p.PointerDown(tt.x, 50)
			p.PointerUp(tt.x+1, 50)

			require.Len(t, events, 1)
			assert.Equal(t, tt.kind, events[0].Kind)
			assert.Equal(t, tt.entity, events[0].Entity.Name)
			assert.Equal(t, tt.target, events[0].Target)
		})
	}
}

func TestDragIsNotAClick(t *testing.T) {
	p, _ := newTestPicker(t, WithClickSlop(2))
	clicks := 0
	p.SetNavigateCallback(func(NavigateEvent) { clicks++ })

	p.PointerDown(50, 50)
	p.PointerUp(56, 50)
	p.PointerDown(50, 50)
	p.CancelClick()
	p.PointerUp(50, 50)
	p.PointerUp(50, 50)
	assert.Equal(t, 0, clicks)

	p.PointerDown(3, 3)
	p.PointerUp(3, 3)
	assert.Equal(t, 0, clicks, "click on empty space dispatches nothing")
}

func TestCloseStopsDispatch(t *testing.T) {
	p, h := newTestPicker(t)
	calls := 0
	p.SetHoverChangedCallback(func(HoverSelection) { calls++ })
	p.SetNavigateCallback(func(NavigateEvent) { calls++ })

	p.PointerMove(50, 50)
	require.Equal(t, 1, calls)
	p.Close()
	assert.Equal(t, 0, h.count())

	p.PointerMove(rightX(), 50)
	p.PointerDown(rightX(), 50)
	p.PointerUp(rightX(), 50)
	assert.Equal(t, 1, calls)
	assert.False(t, p.Hovered().Active)
}
