package scene

import (
	"testing"

	"cogentcore.org/core/math32"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/oxy-plaza/engine/animator"
	"github.com/Carmen-Shannon/oxy-plaza/engine/catalog"
	"github.com/Carmen-Shannon/oxy-plaza/engine/layout"
)

func testEntities() []catalog.ChainEntity {
	return []catalog.ChainEntity{
		{Name: "Alpha", Symbol: "ALP", Color: colorful.Color{R: 1}, IconRef: "icons/alp.png", Status: catalog.StatusLive, DepositAmount: 100, NavigationTarget: "/mint/alp"},
		{Name: "Delta", Symbol: "DEL", Color: colorful.Color{G: 1}, IconRef: "icons/del.png", Status: catalog.StatusLive, DepositAmount: 1000, NavigationTarget: "/mint/del"},
		{Name: "Gamma", Symbol: "GAM", Color: colorful.Color{B: 1}, Status: catalog.StatusMystery, DepositAmount: 500},
		{Name: "Beta", Symbol: "BET", Color: colorful.Color{R: 1, G: 1}, Status: catalog.StatusNext, DepositAmount: 300, NavigationTarget: "/mint/bet"},
	}
}

func testCatalog(t *testing.T, entities []catalog.ChainEntity) catalog.Catalog {
	t.Helper()
	cat, err := catalog.NewCatalog(entities)
	require.NoError(t, err)
	return cat
}

func defaultParams() layout.SceneParameterSet {
	return layout.NewResolver().Layout()
}

func build(t *testing.T, cat catalog.Catalog, params layout.SceneParameterSet) *Graph {
	t.Helper()
	g, err := Build(cat, params, BuildOptions{})
	require.NoError(t, err)
	g.UpdateWorld()
	return g
}

func TestBuildIsIdempotent(t *testing.T) {
	cat := testCatalog(t, testEntities())
	params := defaultParams()

	a := build(t, cat, params)
	b := build(t, cat, params)
	assert.Equal(t, a.Len(), b.Len())
	assert.Equal(t, a.Shape(), b.Shape())
	assert.Len(t, a.Tracks(), a.Len())
}

func TestBuildStructure(t *testing.T) {
	cat := testCatalog(t, testEntities())
	params := defaultParams()
	g := build(t, cat, params)

	require.Len(t, g.ByKind(KindRoot), 1)
	plazas := g.ByKind(KindPlaza)
	require.Len(t, plazas, 1)
	assert.Len(t, g.ByKind(KindMedallion), 1)
	assert.Len(t, g.ByKind(KindPortal), 1)
	assert.Equal(t, plazas[0], g.Node(g.ByKind(KindPortal)[0]).Parent)

	cols, coins := g.ByKind(KindColumn), g.ByKind(KindCoin)
	require.Len(t, cols, 4)
	require.Len(t, coins, 4)
	for _, id := range cols {
		assert.Equal(t, plazas[0], g.Node(id).Parent)
	}
	for _, id := range coins {
		col := g.Node(g.Node(id).Parent)
		require.Equal(t, KindColumn, col.Kind)
		assert.Equal(t, col.EntityIndex, g.Node(id).EntityIndex)
		// coin sits heightOffset above the top of its column
		assert.InDelta(t, col.MeshScale.Y+params.Coins.HeightOffset, g.Node(id).Track.Base.Position.Y, 1e-5)
	}

	assert.Len(t, g.ByKind(KindRibbon), params.Effects.RibbonCount)
	assert.Len(t, g.ByKind(KindFog), params.Effects.FogLayers)
	assert.Len(t, g.ByKind(KindSparkle), params.Effects.SparkleCount)
}

func TestAmbientLayersHangOffRoot(t *testing.T) {
	g := build(t, testCatalog(t, testEntities()), defaultParams())
	for _, kind := range []NodeKind{KindRibbonLayer, KindFogLayer, KindSparkleLayer} {
		ids := g.ByKind(kind)
		require.Len(t, ids, 1, kind.String())
		layer := g.Node(ids[0])
		assert.Equal(t, g.Root(), layer.Parent, kind.String())
		for _, child := range layer.Children {
			assert.False(t, g.Node(child).Track.Motion.Entrance.Active(), "ambient nodes have no entrance")
		}
	}
}

func TestColumnsFollowAscendingDeposit(t *testing.T) {
	params := defaultParams()
	g := build(t, testCatalog(t, testEntities()), params)

	cols := g.ByKind(KindColumn)
	var names []string
	for _, id := range cols {
		names = append(names, g.Node(id).Key)
	}
	assert.Equal(t, []string{"column/0/Alpha", "column/3/Beta", "column/2/Gamma", "column/1/Delta"}, names)

	// the largest deposit takes the rightmost end of the arc
	last := g.Node(cols[len(cols)-1])
	want := ringPosition(params.Columns.RingRadius, params.Columns.ArcCenter+params.Columns.ArcSpan/2)
	assert.InDelta(t, want.X, last.Track.Base.Position.X, 1e-4)
	assert.InDelta(t, want.Z, last.Track.Base.Position.Z, 1e-4)
	assert.Greater(t, last.WorldPosition().X, float32(0))
	first := g.Node(cols[0])
	assert.Less(t, first.WorldPosition().X, float32(0))

	// every column sits on its own arc slot, and slots advance clockwise
	angles := ColumnAngles(len(cols), params.Columns.ArcSpan, params.Columns.ArcCenter)
	for i, id := range cols {
		slot := ringPosition(params.Columns.RingRadius, angles[i])
		pos := g.Node(id).Track.Base.Position
		assert.InDelta(t, slot.X, pos.X, 1e-4, names[i])
		assert.InDelta(t, slot.Z, pos.Z, 1e-4, names[i])
		if i > 0 {
			assert.Greater(t, angles[i], angles[i-1])
		}
	}

	// tallest column for the largest deposit
	for _, id := range cols[:len(cols)-1] {
		assert.Less(t, g.Node(id).MeshScale.Y, last.MeshScale.Y)
	}
}

func TestMysteryDepositIsIgnored(t *testing.T) {
	params := defaultParams()
	with500 := testEntities()
	with0 := testEntities()
	with0[2].DepositAmount = 0

	a := build(t, testCatalog(t, with500), params)
	b := build(t, testCatalog(t, with0), params)

	colA, _ := a.Column(2)
	colB, _ := b.Column(2)
	coinA, _ := a.Coin(2)
	coinB, _ := b.Coin(2)
	assert.Equal(t, a.Node(colA).MeshScale, b.Node(colB).MeshScale)
	assert.Equal(t, a.Node(coinA).Track.Base.Emissive, b.Node(coinB).Track.Base.Emissive)
	assert.Equal(t, a.Node(coinA).Track.Base.Position.Y, b.Node(coinB).Track.Base.Position.Y)

	neutral := DepositVisual(catalog.ChainEntity{Status: catalog.StatusMystery, DepositAmount: 500}, 1000, 1)
	assert.Equal(t, DepositVisual(catalog.ChainEntity{Status: catalog.StatusMystery}, 1000, 1), neutral)
	assert.Equal(t, float32(0), neutral.Share)
}

func TestDepositVisual(t *testing.T) {
	v := DepositVisual(catalog.ChainEntity{Status: catalog.StatusLive, DepositAmount: 500}, 1000, 2)
	assert.InDelta(t, 0.5, v.Share, 1e-6)
	assert.InDelta(t, 1.0, v.HeightScale, 1e-6)
	assert.InDelta(t, 2.0, v.Glow, 1e-6)

	zero := DepositVisual(catalog.ChainEntity{Status: catalog.StatusLive, DepositAmount: 10}, 0, 1)
	assert.Equal(t, float32(0), zero.Share)
}

func TestColumnAngles(t *testing.T) {
	tests := []struct {
		name   string
		n      int
		span   float32
		center float32
		want   []float32
	}{
		{name: "none", n: 0, span: 306, want: nil},
		{name: "single at centre", n: 1, span: 306, center: 10, want: []float32{10}},
		{name: "horseshoe ends", n: 3, span: 306, want: []float32{-153, 0, 153}},
		{name: "full ring does not double the seam", n: 4, span: 360, want: []float32{-135, -45, 45, 135}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ColumnAngles(tt.n, tt.span, tt.center)
			require.Len(t, got, len(tt.want))
			for i := range got {
				assert.InDelta(t, tt.want[i], got[i], 1e-4)
			}
		})
	}
}

func TestEntranceSettlesAtSteadyScale(t *testing.T) {
	g := build(t, testCatalog(t, testEntities()), defaultParams())
	sch := animator.NewScheduler()

	sch.Apply(g.Tracks())
	coin, _ := g.Coin(1)
	assert.Less(t, g.Node(coin).Track.Out.Scale.X, float32(1), "coins start shrunk")

	for range 40 {
		sch.Advance(0.1)
		sch.Apply(g.Tracks())
	}
	steady := make([]math32.Vector3, g.Len())
	for i, tr := range g.Tracks() {
		require.True(t, tr.EntranceDone(), g.Node(i).Key)
		assert.InDelta(t, tr.Base.Scale.X, tr.Out.Scale.X, 1e-6, g.Node(i).Key)
		assert.InDelta(t, tr.Base.Scale.Y, tr.Out.Scale.Y, 1e-6, g.Node(i).Key)
		steady[i] = tr.Out.Scale
	}
	for range 10 {
		sch.Advance(0.1)
		sch.Apply(g.Tracks())
	}
	for i, tr := range g.Tracks() {
		assert.Equal(t, steady[i], tr.Out.Scale)
	}
}

func TestCarryEntrances(t *testing.T) {
	cat := testCatalog(t, testEntities())
	prev := build(t, cat, defaultParams())
	for _, tr := range prev.Tracks() {
		tr.MarkEntranceDone()
	}
	next, err := Build(cat, defaultParams(), BuildOptions{EntranceStart: 50})
	require.NoError(t, err)
	next.CarryEntrances(prev)
	for _, tr := range next.Tracks() {
		assert.True(t, tr.EntranceDone())
	}
}

func TestLayerTogglesHideSubtrees(t *testing.T) {
	params := defaultParams()
	params.Layers.Sparkles = false
	g := build(t, testCatalog(t, testEntities()), params)

	for _, id := range g.ByKind(KindSparkle) {
		assert.False(t, g.Node(id).Shown())
	}
	for _, id := range g.ByKind(KindRibbon) {
		assert.True(t, g.Node(id).Shown())
	}

	g.SetLayerVisible(LayerSparkles, true)
	g.UpdateWorld()
	for _, id := range g.ByKind(KindSparkle) {
		assert.True(t, g.Node(id).Shown())
	}
}

func TestTargetsCoverColumnAndCoin(t *testing.T) {
	meshes, err := NewMeshes()
	require.NoError(t, err)
	g := build(t, testCatalog(t, testEntities()), defaultParams())

	targets := g.Targets(meshes)
	require.Len(t, targets, 4)
	for _, tgt := range targets {
		assert.True(t, tgt.Visible)
		col, _ := g.Column(tgt.EntityIndex)
		coin, _ := g.Coin(tgt.EntityIndex)
		assert.True(t, tgt.Bounds.ContainsBox(g.WorldBounds(col, meshes)))
		assert.True(t, tgt.Bounds.ContainsBox(g.WorldBounds(coin, meshes)))
	}
}

func TestAnchorsFollowColumnOrder(t *testing.T) {
	g := build(t, testCatalog(t, testEntities()), defaultParams())
	anchors := g.Anchors()
	require.Len(t, anchors, 4)
	assert.Equal(t, "Alpha", anchors[0].Name)
	assert.Equal(t, "Delta", anchors[3].Name)
}

func TestBuildRejectsNilSource(t *testing.T) {
	_, err := Build(nil, defaultParams(), BuildOptions{})
	assert.Error(t, err)
}
