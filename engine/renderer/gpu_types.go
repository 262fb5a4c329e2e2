package renderer

import (
	_ "embed"
	"image"
	"unsafe"

	"cogentcore.org/core/math32"

	"github.com/Carmen-Shannon/oxy-plaza/common"
	"github.com/Carmen-Shannon/oxy-plaza/engine/scene"
)

//go:embed shaders/plaza.wgsl
var plazaShaderSource string

//go:embed shaders/overlay.wgsl
var overlayShaderSource string

const (
	// globals group bindings
	bindingGlobals = 0
	bindingAtlas   = 1
	bindingSampler = 2

	// instance group binding
	bindingInstances = 0

	// overlay group bindings
	bindingOverlayRect    = 0
	bindingOverlayTexture = 1
	bindingOverlaySampler = 2

	vertexStride = 32
)

// icon cap axes understood by plaza.wgsl
const (
	iconAxisNone float32 = 0
	iconAxisY    float32 = 1
	iconAxisZ    float32 = 2
)

// globalsUniform mirrors Globals in plaza.wgsl.
type globalsUniform struct {
	ViewProj common.Mat4
	Camera   [4]float32
	Light    [4]float32
}

// instanceData mirrors Instance in plaza.wgsl (112 bytes, 16-byte aligned).
type instanceData struct {
	Model  common.Mat4
	Color  [4]float32
	Params [4]float32
	IconUV [4]float32
}

// overlayUniform mirrors Overlay in overlay.wgsl.
type overlayUniform struct {
	Rect [4]float32
}

const (
	globalsSize  = uint64(unsafe.Sizeof(globalsUniform{}))
	instanceSize = uint64(unsafe.Sizeof(instanceData{}))
	overlaySize  = uint64(unsafe.Sizeof(overlayUniform{}))
)

// batch is a contiguous run of instances sharing a mesh and a blend mode.
type batch struct {
	Mesh        scene.MeshKind
	Translucent bool
	First       uint32
	Count       uint32
}

// FrameData is everything the renderer needs to draw one frame.
type FrameData struct {
	ViewProj  common.Mat4
	CameraPos math32.Vector3
	Elapsed   float64
	Items     []scene.DrawItem

	// Overlay is the HUD card image, nil when hidden. OverlayAt is its top-left pixel.
	Overlay   *image.RGBA
	OverlayAt image.Point
}

// FrameStats summarizes the work submitted for the last frame.
type FrameStats struct {
	DrawCalls int
	Instances int
}

func iconAxis(kind scene.MeshKind) float32 {
	switch kind {
	case scene.MeshCoin:
		return iconAxisY
	case scene.MeshMedallion:
		return iconAxisZ
	}
	return iconAxisNone
}

// reflectivity scales the specular and fresnel terms in plaza.wgsl.
func reflectivity(kind scene.MeshKind) float32 {
	switch kind {
	case scene.MeshPlaza:
		return 0.85
	case scene.MeshMedallion:
		return 0.5
	case scene.MeshCoin:
		return 0.35
	}
	return 0
}

func toInstance(item scene.DrawItem) instanceData {
	alpha := min(max(item.Alpha, 0), 1)
	hasIcon := float32(0)
	if item.IconUV != [4]float32{} {
		hasIcon = 1
	}
	return instanceData{
		Model:  item.Model,
		Color:  [4]float32{float32(item.Color.R), float32(item.Color.G), float32(item.Color.B), alpha},
		Params: [4]float32{item.Emissive, hasIcon, iconAxis(item.Mesh), reflectivity(item.Mesh)},
		IconUV: item.IconUV,
	}
}

// packInstances converts draw items into GPU instances, opaque items first,
// and returns the batches that draw them.
//
// Parameters:
//   - items: the frame's draw list, grouped by mesh kind
//
// Returns:
//   - []instanceData: instances in draw order
//   - []batch: contiguous ranges of instances per mesh and blend mode
func packInstances(items []scene.DrawItem) ([]instanceData, []batch) {
	out := make([]instanceData, 0, len(items))
	var batches []batch
	for _, translucent := range []bool{false, true} {
		for _, item := range items {
			if (item.Alpha < 1) != translucent {
				continue
			}
			n := len(batches)
			if n == 0 || batches[n-1].Mesh != item.Mesh || batches[n-1].Translucent != translucent {
				batches = append(batches, batch{Mesh: item.Mesh, Translucent: translucent, First: uint32(len(out))})
				n++
			}
			out = append(out, toInstance(item))
			batches[n-1].Count++
		}
	}
	return out, batches
}

// overlayRect converts a pixel rectangle to the NDC rectangle the overlay shader expects.
//
// Parameters:
//   - at: top-left corner in pixels
//   - size: card size in pixels
//   - width, height: surface size in pixels
//
// Returns:
//   - [4]float32: x0, y0 (top), x1, y1 (bottom) in NDC
func overlayRect(at, size image.Point, width, height int) [4]float32 {
	if width <= 0 || height <= 0 {
		return [4]float32{}
	}
	w, h := float32(width), float32(height)
	return [4]float32{
		float32(at.X)/w*2 - 1,
		1 - float32(at.Y)/h*2,
		float32(at.X+size.X)/w*2 - 1,
		1 - float32(at.Y+size.Y)/h*2,
	}
}

// growCapacity returns the allocation for at least need bytes, doubling from
// current so per-frame growth stays amortized.
func growCapacity(current, need uint64) uint64 {
	capacity := max(current, 4096)
	for capacity < need {
		capacity *= 2
	}
	return capacity
}
