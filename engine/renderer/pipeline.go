package renderer

import "github.com/cogentcore/webgpu/wgpu"

// pipelineKey names one of the renderer's fixed render pipelines.
type pipelineKey string

const (
	pipelineOpaque      pipelineKey = "plaza/opaque"
	pipelineTranslucent pipelineKey = "plaza/translucent"
	pipelineOverlay     pipelineKey = "hud/overlay"
)

// pipelineConfig describes a render pipeline before it is created on the device.
type pipelineConfig struct {
	key          pipelineKey
	source       string
	bindGroups   []*wgpu.BindGroupLayout
	vertexLayout []wgpu.VertexBufferLayout

	cullMode   wgpu.CullMode
	topology   wgpu.PrimitiveTopology
	frontFace  wgpu.FrontFace
	writeMask  wgpu.ColorWriteMask
	blendState *wgpu.BlendState

	depthTest  bool
	depthWrite bool
}

// premultipliedBlend composites premultiplied color over the target.
var premultipliedBlend = &wgpu.BlendState{
	Color: wgpu.BlendComponent{
		SrcFactor: wgpu.BlendFactorOne,
		DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
		Operation: wgpu.BlendOperationAdd,
	},
	Alpha: wgpu.BlendComponent{
		SrcFactor: wgpu.BlendFactorOne,
		DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
		Operation: wgpu.BlendOperationAdd,
	},
}

// meshVertexLayout matches geometry.Vertex: position, normal, uv.
var meshVertexLayout = []wgpu.VertexBufferLayout{{
	ArrayStride: vertexStride,
	StepMode:    wgpu.VertexStepModeVertex,
	Attributes: []wgpu.VertexAttribute{
		{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
		{Format: wgpu.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1},
		{Format: wgpu.VertexFormatFloat32x2, Offset: 24, ShaderLocation: 2},
	},
}}

// newPipelineConfig returns a config with the defaults shared by every plaza pipeline.
// Meshes are drawn double-sided.
func newPipelineConfig(key pipelineKey, source string, bindGroups ...*wgpu.BindGroupLayout) pipelineConfig {
	return pipelineConfig{
		key:        key,
		source:     source,
		bindGroups: bindGroups,
		cullMode:   wgpu.CullModeNone,
		topology:   wgpu.PrimitiveTopologyTriangleList,
		frontFace:  wgpu.FrontFaceCCW,
		writeMask:  wgpu.ColorWriteMaskAll,
		depthTest:  true,
		depthWrite: true,
	}
}

// plazaPipelines returns the three pipelines the renderer draws with.
//
// Parameters:
//   - globals: layout of the frame globals and atlas group
//   - instances: layout of the instance storage group
//   - overlay: layout of the HUD card group
//
// Returns:
//   - []pipelineConfig: opaque meshes, translucent meshes, HUD overlay
func plazaPipelines(globals, instances, overlay *wgpu.BindGroupLayout) []pipelineConfig {
	opaque := newPipelineConfig(pipelineOpaque, plazaShaderSource, globals, instances)
	opaque.vertexLayout = meshVertexLayout

	translucent := newPipelineConfig(pipelineTranslucent, plazaShaderSource, globals, instances)
	translucent.vertexLayout = meshVertexLayout
	translucent.blendState = premultipliedBlend
	translucent.depthWrite = false

	hud := newPipelineConfig(pipelineOverlay, overlayShaderSource, overlay)
	hud.blendState = premultipliedBlend
	hud.depthTest = false
	hud.depthWrite = false

	return []pipelineConfig{opaque, translucent, hud}
}
