package scene

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/Carmen-Shannon/oxy-plaza/common"
)

// DrawItem is one mesh instance to render this frame.
type DrawItem struct {
	Mesh     MeshKind
	Model    common.Mat4
	Color    colorful.Color
	Emissive float32
	Alpha    float32
	// IconUV is the atlas rectangle drawn on the instance's faces; a zero
	// rectangle means the mesh has no icon.
	IconUV [4]float32
}

// DrawList collects the visible, in-frustum mesh nodes of g, grouped by mesh kind.
//
// Parameters:
//   - g: the graph, with world transforms up to date
//   - meshes: shared unit meshes for bounds
//   - atlas: icon atlas, may be nil
//   - frustum: view frustum, nil disables culling
//
// Returns:
//   - []DrawItem: items ordered by mesh kind, then node id
func DrawList(g *Graph, meshes *Meshes, atlas *Atlas, frustum *common.Frustum) []DrawItem {
	buckets := make([][]DrawItem, meshKindCount)
	for id := range g.nodes {
		n := &g.nodes[id]
		if n.Mesh == MeshNone || !n.shown {
			continue
		}
		if frustum != nil && !frustum.IntersectsBox(g.WorldBounds(id, meshes)) {
			continue
		}
		item := DrawItem{
			Mesh:     n.Mesh,
			Model:    n.MeshMatrix(),
			Color:    n.Track.Out.Color,
			Emissive: n.Track.Out.Emissive,
			Alpha:    n.Alpha,
		}
		if n.IconRef != "" && atlas != nil {
			item.IconUV = atlas.UV(atlas.Slot(n.IconRef))
		}
		buckets[n.Mesh] = append(buckets[n.Mesh], item)
	}

	var out []DrawItem
	for _, b := range buckets {
		out = append(out, b...)
	}
	return out
}
