package scene

import (
	"cogentcore.org/core/math32"

	"github.com/Carmen-Shannon/oxy-plaza/common"
	"github.com/Carmen-Shannon/oxy-plaza/engine/animator"
	"github.com/Carmen-Shannon/oxy-plaza/engine/camera"
	"github.com/Carmen-Shannon/oxy-plaza/engine/interaction"
)

// Graph is a built plaza hierarchy. Node 0 is the root and parents always
// precede their children, so a single forward pass resolves world transforms.
// A Graph is owned by the frame thread and is not safe for concurrent use.
type Graph struct {
	nodes   []Node
	tracks  []*animator.Track
	anchors []camera.StopAnchor

	// entity index -> node ids
	columns map[int]int
	coins   map[int]int
}

// NodeShape is the structural identity of one node, used to compare builds.
type NodeShape struct {
	Key    string
	Kind   NodeKind
	Parent int
}

func newGraph() *Graph {
	g := &Graph{
		columns: make(map[int]int),
		coins:   make(map[int]int),
	}
	g.add(Node{Key: "root", Kind: KindRoot, Parent: -1, EntityIndex: -1, Visible: true, Track: animator.Track{Base: unitPose()}})
	return g
}

// add appends n under n.Parent and returns its id.
func (g *Graph) add(n Node) int {
	id := len(g.nodes)
	if n.Alpha == 0 {
		n.Alpha = 1
	}
	n.World = common.Identity4()
	n.Track.Out = n.Track.Base
	g.nodes = append(g.nodes, n)
	if n.Parent >= 0 {
		g.nodes[n.Parent].Children = append(g.nodes[n.Parent].Children, id)
	}
	return id
}

// Len returns the node count.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Root returns the root node id, always 0.
func (g *Graph) Root() int {
	return 0
}

// Node returns the node with the given id. The pointer stays valid until the
// next rebuild.
func (g *Graph) Node(id int) *Node {
	if id < 0 || id >= len(g.nodes) {
		return nil
	}
	return &g.nodes[id]
}

// ByKind returns the ids of every node of a kind, in build order.
func (g *Graph) ByKind(kind NodeKind) []int {
	var ids []int
	for i := range g.nodes {
		if g.nodes[i].Kind == kind {
			ids = append(ids, i)
		}
	}
	return ids
}

// Column returns the column node id of an entity.
func (g *Graph) Column(entityIndex int) (int, bool) {
	id, ok := g.columns[entityIndex]
	return id, ok
}

// Coin returns the coin node id of an entity.
func (g *Graph) Coin(entityIndex int) (int, bool) {
	id, ok := g.coins[entityIndex]
	return id, ok
}

// Shape lists the structural identity of every node in id order.
func (g *Graph) Shape() []NodeShape {
	out := make([]NodeShape, len(g.nodes))
	for i, n := range g.nodes {
		out[i] = NodeShape{Key: n.Key, Kind: n.Kind, Parent: n.Parent}
	}
	return out
}

// Tracks returns the animation tracks of all nodes, in id order.
func (g *Graph) Tracks() []*animator.Track {
	return g.tracks
}

// Anchors returns the tour anchor of every column in arc order.
func (g *Graph) Anchors() []camera.StopAnchor {
	return append([]camera.StopAnchor(nil), g.anchors...)
}

// CarryEntrances marks entrances that already completed in prev as completed
// here too, matching nodes by key, so a rebuild never replays an intro.
func (g *Graph) CarryEntrances(prev *Graph) {
	if prev == nil {
		return
	}
	done := make(map[string]bool, len(prev.nodes))
	for i := range prev.nodes {
		if prev.nodes[i].Track.EntranceDone() {
			done[prev.nodes[i].Key] = true
		}
	}
	for i := range g.nodes {
		if done[g.nodes[i].Key] {
			g.nodes[i].Track.MarkEntranceDone()
		}
	}
}

// SetLayerVisible shows or hides every top-level node of an ambient layer.
func (g *Graph) SetLayerVisible(layer Layer, visible bool) {
	for i := range g.nodes {
		if g.nodes[i].Layer == layer && layer != LayerNone {
			g.nodes[i].Visible = visible
		}
	}
}

// SetHovered flags the coin of an entity as hovered or not.
func (g *Graph) SetHovered(entityIndex int, hovered bool) {
	if id, ok := g.coins[entityIndex]; ok {
		g.nodes[id].Track.Hovered = hovered
	}
}

// UpdateWorld recomputes world transforms and effective visibility from
// each node's animated pose.
func (g *Graph) UpdateWorld() {
	for i := range g.nodes {
		n := &g.nodes[i]
		local := common.ModelMatrix(n.Track.Out.Position, n.Track.Out.Rotation, n.Track.Out.Scale)
		if n.Parent < 0 {
			n.World = local
			n.shown = n.Visible
			continue
		}
		p := &g.nodes[n.Parent]
		n.World = p.World.Mul(local)
		n.shown = n.Visible && p.shown
	}
}

// WorldBounds returns the world-space AABB of a node's mesh.
func (g *Graph) WorldBounds(id int, meshes *Meshes) math32.Box3 {
	n := g.Node(id)
	if n == nil || n.Mesh == MeshNone {
		return math32.B3Empty()
	}
	return common.TransformBox(n.MeshMatrix(), meshes.Bounds(n.Mesh))
}

// Targets returns one pick target per entity, enclosing its column and coin.
func (g *Graph) Targets(meshes *Meshes) []interaction.Target {
	out := make([]interaction.Target, 0, len(g.columns))
	for _, a := range g.anchorEntities() {
		colID, coinID := g.columns[a], g.coins[a]
		b := g.WorldBounds(colID, meshes)
		b.ExpandByBox(g.WorldBounds(coinID, meshes))
		out = append(out, interaction.Target{
			EntityIndex: a,
			Bounds:      b,
			Visible:     g.nodes[colID].shown || g.nodes[coinID].shown,
		})
	}
	return out
}

// anchorEntities returns entity indices in column (arc) order.
func (g *Graph) anchorEntities() []int {
	out := make([]int, 0, len(g.columns))
	for _, id := range g.ByKind(KindColumn) {
		out = append(out, g.nodes[id].EntityIndex)
	}
	return out
}
