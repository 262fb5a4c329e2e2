package scene

import (
	"cogentcore.org/core/math32"

	"github.com/Carmen-Shannon/oxy-plaza/common"
	"github.com/Carmen-Shannon/oxy-plaza/engine/animator"
)

// NodeKind identifies the role of a node in the plaza hierarchy.
type NodeKind int

const (
	KindRoot NodeKind = iota
	KindPlaza
	KindPortal
	KindColumn
	KindCoin
	KindMedallion
	KindRibbonLayer
	KindRibbon
	KindFogLayer
	KindFog
	KindSparkleLayer
	KindSparkle
)

var kindNames = [...]string{
	KindRoot:         "root",
	KindPlaza:        "plaza",
	KindPortal:       "portal",
	KindColumn:       "column",
	KindCoin:         "coin",
	KindMedallion:    "medallion",
	KindRibbonLayer:  "ribbons",
	KindRibbon:       "ribbon",
	KindFogLayer:     "fog",
	KindFog:          "fog_sheet",
	KindSparkleLayer: "sparkles",
	KindSparkle:      "sparkle",
}

func (k NodeKind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Layer groups ambient nodes that can be toggled as a unit.
type Layer int

const (
	LayerNone Layer = iota
	LayerRibbons
	LayerFog
	LayerSparkles
)

// MeshKind selects one of the shared unit meshes.
type MeshKind int

const (
	MeshNone MeshKind = iota
	MeshPlaza
	MeshPortal
	MeshColumn
	MeshCoin
	MeshMedallion
	MeshRibbon
	MeshFog
	MeshSparkle

	meshKindCount
)

// Node is one element of the composition graph. Nodes are plain data owned by
// the Graph; the animator writes Track.Out and the graph derives World from it.
type Node struct {
	// Key is stable across rebuilds with the same catalog, e.g. "coin/ETH".
	Key      string
	Kind     NodeKind
	Parent   int
	Children []int

	Mesh MeshKind
	// MeshScale sizes the unit mesh. It does not propagate to children.
	MeshScale math32.Vector3
	Alpha     float32

	// EntityIndex is the catalog index for column and coin nodes, -1 otherwise.
	EntityIndex int
	// IconRef is the image drawn on the node's faces, if any.
	IconRef string

	Layer   Layer
	Visible bool

	Track animator.Track

	// World is the node transform without MeshScale, refreshed by Graph.UpdateWorld.
	World common.Mat4
	// shown is Visible combined with every ancestor's visibility.
	shown bool
}

// Shown reports whether the node and all its ancestors are visible, as of the last UpdateWorld.
func (n *Node) Shown() bool {
	return n.shown
}

// MeshMatrix returns the full transform used to draw the node's mesh.
func (n *Node) MeshMatrix() common.Mat4 {
	return n.World.Mul(common.ModelMatrix(math32.Vector3{}, math32.Vector3{}, n.MeshScale))
}

// WorldPosition returns the node's origin in world space.
func (n *Node) WorldPosition() math32.Vector3 {
	return n.World.Translation()
}
