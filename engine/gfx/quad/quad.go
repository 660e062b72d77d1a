// Package quad stores the four-vertex, two-triangle mesh that backgrounds and
// sprites draw, and the UV windows that select part of a texture for it.
package quad

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/hubastard/layergrove/engine/core"
)

const (
	VertsPerQuad = 4
	IndsPerQuad  = 6
)

// Corner indices into the vertex array.
const (
	TopRight = iota
	TopLeft
	BottomLeft
	BottomRight
)

// Indices splits the quad into (TR, TL, BL) and (BL, BR, TR).
var Indices = [IndsPerQuad]uint32{0, 1, 2, 2, 3, 0}

// Statistics captures the counts generated during a frame.
type Statistics struct {
	DrawCalls int
	QuadCount int
}

// TotalVertexCount reports vertices submitted this frame.
func (s Statistics) TotalVertexCount() int { return s.QuadCount * VertsPerQuad }

// TotalIndexCount reports indices submitted this frame.
func (s Statistics) TotalIndexCount() int { return s.QuadCount * IndsPerQuad }

// Quad holds interleaved pos3+uv2 vertices and the GPU buffers they are
// uploaded to. The zero UV window covers the whole texture.
type Quad struct {
	r        core.Renderer
	vertices [VertsPerQuad * core.VertexStride]float32
	vbo, ebo core.Buffer
}

// New returns a full-screen quad with full UVs. No GPU buffers exist until
// Allocate.
func New(r core.Renderer) *Quad {
	q := &Quad{r: r}
	q.SetRect(-1, -1, 1, 1)
	q.SetU(0, 1)
	q.SetV(0, 1)
	return q
}

func (q *Quad) Allocated() bool { return q.vbo != 0 }

// Allocate creates the vertex and index buffers and uploads both.
func (q *Quad) Allocate() {
	if q.Allocated() {
		return
	}
	q.vbo = q.r.CreateBuffer()
	q.ebo = q.r.CreateBuffer()
	q.r.UploadIndexData(q.ebo, Indices[:])
	q.r.UploadVertexData(q.vbo, q.vertices[:])
}

// Upload pushes the current vertices; a no-op before Allocate.
func (q *Quad) Upload() {
	if !q.Allocated() {
		return
	}
	q.r.UploadVertexData(q.vbo, q.vertices[:])
}

// Draw binds the quad and issues one indexed draw. stats may be nil.
func (q *Quad) Draw(stats *Statistics) {
	if !q.Allocated() {
		return
	}
	q.r.BindVertexState(q.vbo, q.ebo)
	q.r.DrawIndexed(core.PrimitiveTriangles, IndsPerQuad)
	if stats != nil {
		stats.DrawCalls++
		stats.QuadCount++
	}
}

// Release deletes the GPU buffers. The quad can be allocated again.
func (q *Quad) Release() {
	if !q.Allocated() {
		return
	}
	q.r.DeleteBuffer(q.vbo)
	q.r.DeleteBuffer(q.ebo)
	q.vbo, q.ebo = 0, 0
}

func (q *Quad) Buffers() (vbo, ebo core.Buffer) { return q.vbo, q.ebo }

// Vertices returns a copy of the interleaved vertex data.
func (q *Quad) Vertices() []float32 {
	out := make([]float32, len(q.vertices))
	copy(out, q.vertices[:])
	return out
}

// SetPosition sets corner i's x and y; z stays 0.
func (q *Quad) SetPosition(i int, x, y float32) {
	o := i * core.VertexStride
	q.vertices[o] = x
	q.vertices[o+1] = y
}

func (q *Quad) Position(i int) mgl32.Vec2 {
	o := i * core.VertexStride
	return mgl32.Vec2{q.vertices[o], q.vertices[o+1]}
}

func (q *Quad) SetUV(i int, u, v float32) {
	o := i*core.VertexStride + 3
	q.vertices[o] = u
	q.vertices[o+1] = v
}

func (q *Quad) UV(i int) mgl32.Vec2 {
	o := i*core.VertexStride + 3
	return mgl32.Vec2{q.vertices[o], q.vertices[o+1]}
}

// SetRect places the corners on an axis-aligned rectangle.
func (q *Quad) SetRect(left, bottom, right, top float32) {
	q.SetPosition(TopRight, right, top)
	q.SetPosition(TopLeft, left, top)
	q.SetPosition(BottomLeft, left, bottom)
	q.SetPosition(BottomRight, right, bottom)
}

// SetU sets the left (u0) and right (u1) texture coordinates.
func (q *Quad) SetU(u0, u1 float32) {
	q.vertices[TopRight*core.VertexStride+3] = u1
	q.vertices[TopLeft*core.VertexStride+3] = u0
	q.vertices[BottomLeft*core.VertexStride+3] = u0
	q.vertices[BottomRight*core.VertexStride+3] = u1
}

// SetV sets the bottom and top texture coordinates.
func (q *Quad) SetV(bottom, top float32) {
	q.vertices[TopRight*core.VertexStride+4] = top
	q.vertices[TopLeft*core.VertexStride+4] = top
	q.vertices[BottomLeft*core.VertexStride+4] = bottom
	q.vertices[BottomRight*core.VertexStride+4] = bottom
}

// SetWindow maps w onto the quad. When flipV is set, w's top-down V is
// converted to GL's bottom-up convention.
func (q *Quad) SetWindow(w Window, flipV bool) {
	q.SetU(w.U0, w.U1)
	if flipV {
		q.SetV(1-w.V1, 1-w.V0)
		return
	}
	q.SetV(w.V1, w.V0)
}
