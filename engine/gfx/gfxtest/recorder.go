// Package gfxtest provides an in-memory core.Renderer for tests that need to
// observe GPU traffic without a graphics context.
package gfxtest

import (
	"fmt"

	"github.com/hubastard/layergrove/engine/core"
)

// Call is one recorded backend invocation.
type Call struct {
	Op   string
	Args []any
}

// Draw captures the state bound at a DrawIndexed call.
type Draw struct {
	Program  core.Program
	Texture  core.Texture
	VBO, EBO core.Buffer
	Count    int
	Uniforms map[string]any
}

// Image is the last upload made to a texture handle.
type Image struct {
	Width, Height int
	Pix           []byte
}

// Recorder implements core.Renderer by logging calls and keeping the last
// upload for every buffer and texture.
type Recorder struct {
	Calls    []Call
	Draws    []Draw
	Vertices map[core.Buffer][]float32
	Indices  map[core.Buffer][]uint32
	Images   map[core.Texture]Image
	Uniforms map[core.Program]map[string]any

	// FailProgram makes CreateProgram return an error.
	FailProgram bool

	next    uint32
	live    map[uint32]bool
	program core.Program
	texture core.Texture
	vbo     core.Buffer
	ebo     core.Buffer
}

var _ core.Renderer = (*Recorder)(nil)

func New() *Recorder {
	return &Recorder{
		Vertices: map[core.Buffer][]float32{},
		Indices:  map[core.Buffer][]uint32{},
		Images:   map[core.Texture]Image{},
		Uniforms: map[core.Program]map[string]any{},
		live:     map[uint32]bool{},
	}
}

func (r *Recorder) record(op string, args ...any) {
	r.Calls = append(r.Calls, Call{Op: op, Args: args})
}

func (r *Recorder) handle() uint32 {
	r.next++
	r.live[r.next] = true
	return r.next
}

// Live reports how many handles were created and not yet deleted.
func (r *Recorder) Live() int { return len(r.live) }

// Count returns how many times op was called.
func (r *Recorder) Count(op string) int {
	n := 0
	for _, c := range r.Calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

// Reset drops recorded calls and draws but keeps GPU state.
func (r *Recorder) Reset() {
	r.Calls = nil
	r.Draws = nil
}

func (r *Recorder) Init() error { r.record("Init"); return nil }

func (r *Recorder) Resize(w, h int) { r.record("Resize", w, h) }

func (r *Recorder) Clear(cr, g, b, a float32) { r.record("Clear", cr, g, b, a) }

func (r *Recorder) Shutdown() { r.record("Shutdown") }

func (r *Recorder) Info() core.RendererInfo {
	return core.RendererInfo{Vendor: "gfxtest", Renderer: "recorder", Version: "0"}
}

func (r *Recorder) CreateBuffer() core.Buffer {
	b := core.Buffer(r.handle())
	r.record("CreateBuffer", b)
	return b
}

func (r *Recorder) UploadVertexData(b core.Buffer, vertices []float32) {
	r.record("UploadVertexData", b, len(vertices))
	r.Vertices[b] = append([]float32(nil), vertices...)
}

func (r *Recorder) UploadIndexData(b core.Buffer, indices []uint32) {
	r.record("UploadIndexData", b, len(indices))
	r.Indices[b] = append([]uint32(nil), indices...)
}

func (r *Recorder) BindVertexState(vbo, ebo core.Buffer) {
	r.record("BindVertexState", vbo, ebo)
	r.vbo, r.ebo = vbo, ebo
}

func (r *Recorder) DeleteBuffer(b core.Buffer) {
	r.record("DeleteBuffer", b)
	delete(r.live, uint32(b))
	delete(r.Vertices, b)
	delete(r.Indices, b)
}

func (r *Recorder) CreateTexture() core.Texture {
	t := core.Texture(r.handle())
	r.record("CreateTexture", t)
	return t
}

func (r *Recorder) UploadTexture(t core.Texture, width, height int, rgba []byte) {
	r.record("UploadTexture", t, width, height)
	r.Images[t] = Image{Width: width, Height: height, Pix: append([]byte(nil), rgba...)}
}

func (r *Recorder) BindTexture(t core.Texture) {
	r.record("BindTexture", t)
	r.texture = t
}

func (r *Recorder) DeleteTexture(t core.Texture) {
	r.record("DeleteTexture", t)
	delete(r.live, uint32(t))
	delete(r.Images, t)
}

func (r *Recorder) CreateProgram(src core.ShaderSource) (core.Program, error) {
	if r.FailProgram {
		return 0, fmt.Errorf("gfxtest: link failed")
	}
	p := core.Program(r.handle())
	r.record("CreateProgram", p, src.Geometry != "")
	r.Uniforms[p] = map[string]any{}
	return p, nil
}

func (r *Recorder) UseProgram(p core.Program) {
	r.record("UseProgram", p)
	r.program = p
}

func (r *Recorder) SetUniform(p core.Program, name string, value any) {
	r.record("SetUniform", p, name, value)
	if r.Uniforms[p] == nil {
		r.Uniforms[p] = map[string]any{}
	}
	r.Uniforms[p][name] = value
}

func (r *Recorder) DeleteProgram(p core.Program) {
	r.record("DeleteProgram", p)
	delete(r.live, uint32(p))
	delete(r.Uniforms, p)
}

func (r *Recorder) DrawIndexed(prim core.Primitive, count int) {
	r.record("DrawIndexed", prim, count)
	snap := make(map[string]any, len(r.Uniforms[r.program]))
	for k, v := range r.Uniforms[r.program] {
		snap[k] = v
	}
	r.Draws = append(r.Draws, Draw{
		Program:  r.program,
		Texture:  r.texture,
		VBO:      r.vbo,
		EBO:      r.ebo,
		Count:    count,
		Uniforms: snap,
	})
}
