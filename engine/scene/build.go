package scene

import (
	"fmt"
	"math"

	"cogentcore.org/core/math32"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/Carmen-Shannon/oxy-plaza/engine/animator"
	"github.com/Carmen-Shannon/oxy-plaza/engine/camera"
	"github.com/Carmen-Shannon/oxy-plaza/engine/catalog"
	"github.com/Carmen-Shannon/oxy-plaza/engine/layout"
)

const (
	plazaThickness = 0.3
	columnRadius   = 0.38
	goldenAngle    = 2.39996323

	columnStagger     = 0.08
	columnEntrance    = 1.0
	coinDelay         = 0.35
	coinEntrance      = 1.2
	medallionDelay    = 0.2
	medallionEntrance = 1.6
	plazaEntrance     = 0.9
)

var (
	plazaColor     = colorful.Color{R: 0.16, G: 0.17, B: 0.24}
	portalColor    = colorful.Color{R: 0.56, G: 0.36, B: 1}
	medallionColor = colorful.Color{R: 0.96, G: 0.77, B: 0.26}
	columnColor    = colorful.Color{R: 0.86, G: 0.85, B: 0.9}
	ribbonColor    = colorful.Color{R: 0.35, G: 0.85, B: 1}
	fogColor       = colorful.Color{R: 0.55, G: 0.6, B: 0.8}
	sparkleColor   = colorful.Color{R: 1, G: 0.95, B: 0.75}
)

// Source is the entity data a graph is built from; catalog.Catalog satisfies it.
type Source interface {
	SortedByDeposit(ascending bool) []catalog.ChainEntity
	MaxDeposit() float64
}

// BuildOptions tunes a build without affecting its structure.
type BuildOptions struct {
	// EntranceStart offsets every entrance, usually the elapsed time of the rebuild.
	EntranceStart float64
	// MedallionIcon is the image shown on the medallion faces.
	MedallionIcon string
	// TourDistance and TourLift frame each column's tour stop.
	TourDistance float32
	TourLift     float32
}

func unitPose() animator.Pose {
	return animator.Pose{Scale: math32.Vec3(1, 1, 1)}
}

func pose(pos math32.Vector3, c colorful.Color, emissive float32) animator.Pose {
	return animator.Pose{Position: pos, Scale: math32.Vec3(1, 1, 1), Color: c, Emissive: emissive}
}

// Build composes the plaza hierarchy for the entities of src under params.
// Calling Build again with the same inputs yields a graph with the same shape.
//
// Parameters:
//   - src: entity data, columns are placed in ascending deposit order
//   - params: the resolved scene parameters
//   - opts: entrance timing and decoration
//
// Returns:
//   - *Graph: the new graph
//   - error: if the parameters produce no valid layout
func Build(src Source, params layout.SceneParameterSet, opts BuildOptions) (*Graph, error) {
	if src == nil {
		return nil, fmt.Errorf("scene build: nil entity source")
	}
	params = params.Clamp()
	if opts.TourDistance <= 0 {
		opts.TourDistance = 6
	}
	g := newGraph()
	t0 := opts.EntranceStart

	plaza := g.add(Node{
		Key:         "plaza",
		Kind:        KindPlaza,
		Parent:      g.Root(),
		Mesh:        MeshPlaza,
		MeshScale:   math32.Vec3(params.Plaza.Radius, plazaThickness, params.Plaza.Radius),
		EntityIndex: -1,
		Visible:     true,
		Track: animator.Track{
			Base: pose(params.Plaza.Position.Sub(math32.Vec3(0, plazaThickness/2, 0)), plazaColor, 0.15),
			Motion: animator.Motion{
				Pulse:    animator.Pulse{Amplitude: 0.2, Frequency: 0.08},
				Entrance: animator.Entrance{Start: t0, Duration: plazaEntrance, InitialScale: 0.6},
			},
		},
	})
	top := float32(plazaThickness / 2)

	g.add(Node{
		Key:         "portal",
		Kind:        KindPortal,
		Parent:      plaza,
		Mesh:        MeshPortal,
		MeshScale:   math32.Vec3(params.Plaza.Radius*0.55, 1, params.Plaza.Radius*0.55),
		EntityIndex: -1,
		Visible:     true,
		Track: animator.Track{
			Base: pose(math32.Vec3(0, top+0.02, 0), portalColor, 1.4),
			Motion: animator.Motion{
				Spin:     animator.Spin{Rate: math32.Vec3(0, 0.35, 0)},
				Pulse:    animator.Pulse{Amplitude: 0.3, Frequency: 0.25},
				Entrance: animator.Entrance{Start: t0 + 0.2, Duration: plazaEntrance, InitialScale: 0.1, InitialRotation: math32.Vec3(0, -math32.Pi, 0)},
			},
		},
	})

	g.addColumns(src, params, plaza, top, opts)

	medallionBase := pose(params.Medallion.Position, medallionColor, 1)
	g.add(Node{
		Key:         "medallion",
		Kind:        KindMedallion,
		Parent:      g.Root(),
		Mesh:        MeshMedallion,
		MeshScale:   math32.Vec3(params.Medallion.Scale, params.Medallion.Scale, params.Medallion.Scale),
		EntityIndex: -1,
		IconRef:     opts.MedallionIcon,
		Visible:     true,
		Track: animator.Track{
			Base: medallionBase,
			Motion: animator.Motion{
				Bob:      animator.Bob{Amplitude: 0.15, Frequency: 0.2},
				Spin:     animator.Spin{Rate: math32.Vec3(0, 0.4, 0)},
				Pulse:    animator.Pulse{Amplitude: 0.15, Frequency: 0.3},
				Entrance: animator.Entrance{Start: t0 + medallionDelay, Duration: medallionEntrance, InitialScale: 0.2, InitialRotation: math32.Vec3(0, -math32.Pi, 0)},
			},
		},
	})

	g.addAmbient(params)

	g.tracks = make([]*animator.Track, len(g.nodes))
	for i := range g.nodes {
		g.tracks[i] = &g.nodes[i].Track
	}
	return g, nil
}

// addColumns places one column and coin per entity and records their tour anchors.
func (g *Graph) addColumns(src Source, params layout.SceneParameterSet, plaza int, top float32, opts BuildOptions) {
	entities := src.SortedByDeposit(true)
	maxDeposit := src.MaxDeposit()
	angles := ColumnAngles(len(entities), params.Columns.ArcSpan, params.Columns.ArcCenter)
	t0 := opts.EntranceStart

	for order, e := range entities {
		vis := DepositVisual(e, maxDeposit, params.Coins.GlowIntensity)
		height := params.Columns.BaseHeight * vis.HeightScale
		local := ringPosition(params.Columns.RingRadius, angles[order])
		local.Y = top
		phase := animator.PhaseForIndex(e.Index)
		key := entityKey(e)

		col := g.add(Node{
			Key:         "column/" + key,
			Kind:        KindColumn,
			Parent:      plaza,
			Mesh:        MeshColumn,
			MeshScale:   math32.Vec3(columnRadius, height, columnRadius),
			EntityIndex: e.Index,
			Visible:     true,
			Track: animator.Track{
				Base: pose(local, columnColor.BlendLab(e.Color, 0.15).Clamped(), 0.25*vis.Glow),
				Motion: animator.Motion{
					Pulse:    animator.Pulse{Amplitude: 0.2, Frequency: 0.15},
					Entrance: animator.Entrance{Start: t0 + columnStagger*float64(order), Duration: columnEntrance, InitialScale: 0.05},
					Phase:    phase,
				},
			},
		})
		g.columns[e.Index] = col

		coinBase := pose(math32.Vec3(0, height+params.Coins.HeightOffset, 0), e.Color, vis.Glow)
		coinBase.Rotation.X = math32.Pi / 2
		icon := ""
		if params.Coins.FaceVisible {
			icon = e.IconRef
		}
		coin := g.add(Node{
			Key:         "coin/" + key,
			Kind:        KindCoin,
			Parent:      col,
			Mesh:        MeshCoin,
			MeshScale:   math32.Vec3(params.Coins.Radius, params.Coins.Thickness, params.Coins.Radius),
			EntityIndex: e.Index,
			IconRef:     icon,
			Visible:     true,
			Track: animator.Track{
				Base: coinBase,
				Motion: animator.Motion{
					Bob:   animator.Bob{Amplitude: 0.12, Frequency: 0.35},
					Spin:  animator.Spin{Rate: math32.Vec3(0, 0.9, 0)},
					Pulse: animator.Pulse{Amplitude: 0.25, Frequency: 0.5},
					Entrance: animator.Entrance{
						Start:           t0 + columnStagger*float64(order) + coinDelay,
						Duration:        coinEntrance,
						InitialScale:    0,
						InitialRotation: math32.Vec3(0, 2*math32.Pi, 0),
					},
					Phase: phase,
				},
			},
		})
		g.coins[e.Index] = coin

		world := params.Plaza.Position.Add(local)
		g.anchors = append(g.anchors, camera.StopAnchor{
			Name:    e.Name,
			Focus:   world.Add(math32.Vec3(0, height*0.5+params.Coins.HeightOffset, 0)),
			Outward: world.Sub(params.Plaza.Position),
		})
	}
}

// addAmbient adds the ribbon, fog and sparkle layers directly under the root.
// They have no entrance so they stay visible while the intro plays.
func (g *Graph) addAmbient(params layout.SceneParameterSet) {
	fx := params.Effects
	r := params.Plaza.Radius

	ribbons := g.add(Node{Key: "ribbons", Kind: KindRibbonLayer, Parent: g.Root(), EntityIndex: -1, Layer: LayerRibbons, Visible: params.Layers.Ribbons, Track: animator.Track{Base: unitPose()}})
	for i := range fx.RibbonCount {
		dir := float32(1)
		if i%2 == 1 {
			dir = -1
		}
		g.add(Node{
			Key:         fmt.Sprintf("ribbon/%d", i),
			Kind:        KindRibbon,
			Parent:      ribbons,
			Mesh:        MeshRibbon,
			MeshScale:   math32.Vec3(r*1.1, 1, r*1.1),
			Alpha:       0.7,
			EntityIndex: -1,
			Track: animator.Track{
				Base: pose(math32.Vec3(0, 0.5+1.2*float32(i), 0), ribbonColor, 0.8),
				Motion: animator.Motion{
					Spin:  animator.Spin{Rate: math32.Vec3(0, dir*0.2*fx.RibbonSpeed, 0)},
					Pulse: animator.Pulse{Amplitude: 0.3, Frequency: 0.2},
					Phase: animator.PhaseForIndex(i),
				},
			},
			Visible: true,
		})
	}

	fog := g.add(Node{Key: "fog", Kind: KindFogLayer, Parent: g.Root(), EntityIndex: -1, Layer: LayerFog, Visible: params.Layers.Fog, Track: animator.Track{Base: unitPose()}})
	for i := range fx.FogLayers {
		s := r * (1.3 + 0.25*float32(i))
		g.add(Node{
			Key:         fmt.Sprintf("fog/%d", i),
			Kind:        KindFog,
			Parent:      fog,
			Mesh:        MeshFog,
			MeshScale:   math32.Vec3(s, 0.02, s),
			Alpha:       0.12,
			EntityIndex: -1,
			Track: animator.Track{
				Base: pose(math32.Vec3(0, 0.3+0.45*float32(i), 0), fogColor, 0.2),
				Motion: animator.Motion{
					Bob:   animator.Bob{Amplitude: 0.08, Frequency: 0.05},
					Pulse: animator.Pulse{Amplitude: 0.3, Frequency: 0.1},
					Phase: animator.PhaseForIndex(i),
				},
			},
			Visible: true,
		})
	}

	sparkles := g.add(Node{Key: "sparkles", Kind: KindSparkleLayer, Parent: g.Root(), EntityIndex: -1, Layer: LayerSparkles, Visible: params.Layers.Sparkles, Track: animator.Track{Base: unitPose()}})
	n := fx.SparkleCount
	for i := range n {
		// golden-angle disc with a low-discrepancy height
		rad := r * 0.95 * float32(math.Sqrt((float64(i)+0.5)/float64(n)))
		a := float32(i) * goldenAngle
		h := 0.5 + 6*float32(math.Mod(float64(i)*0.6180339887, 1))
		g.add(Node{
			Key:         fmt.Sprintf("sparkle/%d", i),
			Kind:        KindSparkle,
			Parent:      sparkles,
			Mesh:        MeshSparkle,
			MeshScale:   math32.Vec3(0.06, 0.06, 0.06),
			EntityIndex: -1,
			Track: animator.Track{
				Base: pose(math32.Vec3(rad*math32.Cos(a), h, rad*math32.Sin(a)), sparkleColor, 1.5),
				Motion: animator.Motion{
					Bob:   animator.Bob{Amplitude: 0.25, Frequency: 0.3 * fx.SparkleSpeed},
					Spin:  animator.Spin{Rate: math32.Vec3(0.7, 1.1, 0).MulScalar(fx.SparkleSpeed)},
					Pulse: animator.Pulse{Amplitude: 0.5, Frequency: 0.8 * fx.SparkleSpeed},
					Phase: animator.PhaseForIndex(i),
				},
			},
			Visible: true,
		})
	}
}

// entityKey identifies an entity across rebuilds of the same catalog.
func entityKey(e catalog.ChainEntity) string {
	return fmt.Sprintf("%d/%s", e.Index, e.Name)
}
