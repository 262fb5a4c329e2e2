package bind_group_provider

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// bindGroupProvider is the unexported implementation of BindGroupProvider.
type bindGroupProvider struct {
	// label is a debug label prefixed to every GPU object created for this provider.
	label string

	// The following fields are GPU allocated resources populated by the Renderer and released by Release.

	bindGroup *wgpu.BindGroup
	// buffers holds the GPU buffers created for this provider, keyed by binding index.
	buffers map[int]*wgpu.Buffer
	// bufferSizes tracks each buffer's allocation so growable buffers know when to reallocate.
	bufferSizes map[int]uint64
	// textures and textureViews are keyed by binding index; the provider owns both.
	textures     map[int]*wgpu.Texture
	textureViews map[int]*wgpu.TextureView
	samplers     map[int]*wgpu.Sampler

	// The following fields are only used by mesh providers.

	vertexBuffer *wgpu.Buffer
	indexBuffer  *wgpu.Buffer
	// indexCount is the number of indices issued per instance.
	indexCount int
}

// BindGroupProvider owns the GPU resources behind one draw input of the plaza renderer:
// the frame globals and icon atlas, a single mesh kind's geometry, or the HUD overlay card.
//
// Usage pattern:
//  1. The renderer creates a provider with a debug label
//  2. Buffers, textures and samplers are created and stored on it by binding index
//  3. The bind group is (re)created whenever one of its resources is reallocated
//  4. Draw calls read BindGroup(), VertexBuffer() and IndexBuffer() back out
//  5. Release frees everything when the renderer shuts down
type BindGroupProvider interface {
	// Release releases every GPU resource held by this provider and forgets them.
	Release()

	// Label returns the debug label for this provider.
	//
	// Returns:
	//   - string: the debug label
	Label() string

	// BindGroup returns the bind group for shader binding, or nil if not yet created.
	BindGroup() *wgpu.BindGroup

	// SetBindGroup replaces the bind group, releasing the previous one.
	//
	// Parameters:
	//   - bg: the new bind group
	SetBindGroup(bg *wgpu.BindGroup)

	// Buffer returns the buffer at a binding, or nil.
	//
	// Parameters:
	//   - binding: the binding index
	//
	// Returns:
	//   - *wgpu.Buffer: the buffer or nil
	Buffer(binding int) *wgpu.Buffer

	// BufferSize returns the allocated size of the buffer at a binding, 0 when absent.
	BufferSize(binding int) uint64

	// SetBuffer stores a buffer and its allocated size, releasing any buffer it replaces.
	//
	// Parameters:
	//   - binding: the binding index
	//   - buf: the buffer
	//   - size: its allocation in bytes
	SetBuffer(binding int, buf *wgpu.Buffer, size uint64)

	// Texture returns the texture at a binding, or nil.
	Texture(binding int) *wgpu.Texture

	// TextureView returns the texture view at a binding, or nil.
	TextureView(binding int) *wgpu.TextureView

	// SetTexture stores a texture with its view, releasing any pair it replaces.
	//
	// Parameters:
	//   - binding: the binding index
	//   - tex: the texture
	//   - view: a view of tex
	SetTexture(binding int, tex *wgpu.Texture, view *wgpu.TextureView)

	// Sampler returns the sampler at a binding, or nil.
	Sampler(binding int) *wgpu.Sampler

	// SetSampler stores a sampler, releasing any sampler it replaces.
	SetSampler(binding int, s *wgpu.Sampler)

	// VertexBuffer returns the GPU vertex buffer, or nil if not initialized.
	VertexBuffer() *wgpu.Buffer

	// IndexBuffer returns the GPU index buffer, or nil if not initialized.
	IndexBuffer() *wgpu.Buffer

	// IndexCount returns the number of indices drawn per instance.
	IndexCount() int

	// SetMesh stores the vertex and index buffers of a mesh, releasing any previous pair.
	//
	// Parameters:
	//   - vertex: the vertex buffer
	//   - index: the uint32 index buffer
	//   - indexCount: number of indices in index
	SetMesh(vertex, index *wgpu.Buffer, indexCount int)
}

var _ BindGroupProvider = &bindGroupProvider{}

// NewBindGroupProvider creates an empty provider.
//
// Parameters:
//   - label: debug label for GPU objects created on behalf of the provider
//   - options: functional options
//
// Returns:
//   - BindGroupProvider: the new provider
func NewBindGroupProvider(label string, options ...BindGroupProviderOption) BindGroupProvider {
	p := &bindGroupProvider{
		label:        label,
		buffers:      make(map[int]*wgpu.Buffer),
		bufferSizes:  make(map[int]uint64),
		textures:     make(map[int]*wgpu.Texture),
		textureViews: make(map[int]*wgpu.TextureView),
		samplers:     make(map[int]*wgpu.Sampler),
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

func (p *bindGroupProvider) Label() string {
	return p.label
}

func (p *bindGroupProvider) BindGroup() *wgpu.BindGroup {
	return p.bindGroup
}

func (p *bindGroupProvider) SetBindGroup(bg *wgpu.BindGroup) {
	if p.bindGroup != nil && p.bindGroup != bg {
		p.bindGroup.Release()
	}
	p.bindGroup = bg
}

func (p *bindGroupProvider) Buffer(binding int) *wgpu.Buffer {
	return p.buffers[binding]
}

func (p *bindGroupProvider) BufferSize(binding int) uint64 {
	if p.buffers[binding] == nil {
		return 0
	}
	return p.bufferSizes[binding]
}

func (p *bindGroupProvider) SetBuffer(binding int, buf *wgpu.Buffer, size uint64) {
	if old := p.buffers[binding]; old != nil && old != buf {
		old.Release()
	}
	p.buffers[binding] = buf
	p.bufferSizes[binding] = size
}

func (p *bindGroupProvider) Texture(binding int) *wgpu.Texture {
	return p.textures[binding]
}

func (p *bindGroupProvider) TextureView(binding int) *wgpu.TextureView {
	return p.textureViews[binding]
}

func (p *bindGroupProvider) SetTexture(binding int, tex *wgpu.Texture, view *wgpu.TextureView) {
	if old := p.textureViews[binding]; old != nil && old != view {
		old.Release()
	}
	if old := p.textures[binding]; old != nil && old != tex {
		old.Release()
	}
	p.textures[binding] = tex
	p.textureViews[binding] = view
}

func (p *bindGroupProvider) Sampler(binding int) *wgpu.Sampler {
	return p.samplers[binding]
}

func (p *bindGroupProvider) SetSampler(binding int, s *wgpu.Sampler) {
	if old := p.samplers[binding]; old != nil && old != s {
		old.Release()
	}
	p.samplers[binding] = s
}

func (p *bindGroupProvider) VertexBuffer() *wgpu.Buffer {
	return p.vertexBuffer
}

func (p *bindGroupProvider) IndexBuffer() *wgpu.Buffer {
	return p.indexBuffer
}

func (p *bindGroupProvider) IndexCount() int {
	return p.indexCount
}

func (p *bindGroupProvider) SetMesh(vertex, index *wgpu.Buffer, indexCount int) {
	if p.vertexBuffer != nil && p.vertexBuffer != vertex {
		p.vertexBuffer.Release()
	}
	if p.indexBuffer != nil && p.indexBuffer != index {
		p.indexBuffer.Release()
	}
	p.vertexBuffer = vertex
	p.indexBuffer = index
	p.indexCount = indexCount
}

func (p *bindGroupProvider) Release() {
	// the bind group references the resources below, so it goes first
	if p.bindGroup != nil {
		p.bindGroup.Release()
		p.bindGroup = nil
	}
	for i, tv := range p.textureViews {
		if tv != nil {
			tv.Release()
		}
		delete(p.textureViews, i)
	}
	for i, tex := range p.textures {
		if tex != nil {
			tex.Release()
		}
		delete(p.textures, i)
	}
	for i, s := range p.samplers {
		if s != nil {
			s.Release()
		}
		delete(p.samplers, i)
	}
	for i, buf := range p.buffers {
		if buf != nil {
			buf.Release()
		}
		delete(p.buffers, i)
		delete(p.bufferSizes, i)
	}
	if p.vertexBuffer != nil {
		p.vertexBuffer.Release()
		p.vertexBuffer = nil
	}
	if p.indexBuffer != nil {
		p.indexBuffer.Release()
		p.indexBuffer = nil
	}
	p.indexCount = 0
}
