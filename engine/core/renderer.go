package core

// Buffer, Texture and Program are opaque GPU handles. Zero is never a live handle.
type (
	Buffer  uint32
	Texture uint32
	Program uint32
)

// Primitive selects how DrawIndexed assembles indices.
type Primitive int

const (
	PrimitiveTriangles Primitive = iota
	PrimitiveTriangleStrip
	PrimitiveLines
)

// VertexStride is the number of floats per vertex in the engine's quad layout:
// position (x, y, z) followed by texture coordinates (u, v).
const VertexStride = 5

// ShaderSource holds the GLSL stages of a program. Geometry is optional.
type ShaderSource struct {
	Vertex   string
	Fragment string
	Geometry string
}

// RendererInfo describes the active GPU context.
type RendererInfo struct {
	Vendor   string
	Renderer string
	Version  string
}

// Renderer is the graphics backend the engine draws through. Calls are only
// valid on the thread that owns the graphics context.
type Renderer interface {
	Init() error
	Resize(w, h int)
	Clear(r, g, b, a float32)
	Shutdown()
	Info() RendererInfo

	CreateBuffer() Buffer
	UploadVertexData(b Buffer, vertices []float32)
	UploadIndexData(b Buffer, indices []uint32)
	// BindVertexState binds vbo/ebo and the VertexStride attribute layout.
	BindVertexState(vbo, ebo Buffer)
	DeleteBuffer(b Buffer)

	CreateTexture() Texture
	UploadTexture(t Texture, width, height int, rgba []byte)
	BindTexture(t Texture)
	DeleteTexture(t Texture)

	CreateProgram(src ShaderSource) (Program, error)
	UseProgram(p Program)
	SetUniform(p Program, name string, value any)
	DeleteProgram(p Program)

	DrawIndexed(prim Primitive, count int)
}
