package glbackend

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/hubastard/layergrove/engine/core"
	"github.com/hubastard/layergrove/engine/logging"
	log "github.com/sirupsen/logrus"
)

const floatSize = 4

// RendererGL implements core.Renderer on an OpenGL 3.3 core context. Every
// call must come from the thread that owns the context.
type RendererGL struct {
	win     core.Window
	log     log.FieldLogger
	vao     uint32
	program core.Program
	// uniform locations per program
	locations map[core.Program]map[string]int32
}

var _ core.Renderer = (*RendererGL)(nil)

func NewRendererGL(win core.Window, _ core.Config, logger log.FieldLogger) (*RendererGL, error) {
	r := &RendererGL{
		win:       win,
		log:       logging.Or(logger).WithField("backend", "gl"),
		locations: map[core.Program]map[string]int32{},
	}
	if err := r.Init(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *RendererGL) Init() error {
	gl.GenVertexArrays(1, &r.vao)
	if r.vao == 0 {
		return fmt.Errorf("gl: vertex array allocation failed")
	}
	gl.BindVertexArray(r.vao)

	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	info := r.Info()
	r.log.WithFields(log.Fields{
		"vendor":   info.Vendor,
		"renderer": info.Renderer,
		"version":  info.Version,
	}).Info("renderer ready")
	return nil
}

func (r *RendererGL) Info() core.RendererInfo {
	return core.RendererInfo{
		Vendor:   gl.GoStr(gl.GetString(gl.VENDOR)),
		Renderer: gl.GoStr(gl.GetString(gl.RENDERER)),
		Version:  gl.GoStr(gl.GetString(gl.VERSION)),
	}
}

func (r *RendererGL) Shutdown() {
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
		r.vao = 0
	}
}

func (r *RendererGL) Resize(w, h int) {
	gl.Viewport(0, 0, int32(w), int32(h))
}

func (r *RendererGL) Clear(rf, gf, bf, af float32) {
	gl.ClearColor(rf, gf, bf, af)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// --- buffers ---

func (r *RendererGL) CreateBuffer() core.Buffer {
	var b uint32
	gl.GenBuffers(1, &b)
	return core.Buffer(b)
}

func (r *RendererGL) UploadVertexData(b core.Buffer, vertices []float32) {
	if len(vertices) == 0 {
		return
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, uint32(b))
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*floatSize, gl.Ptr(vertices), gl.DYNAMIC_DRAW)
}

func (r *RendererGL) UploadIndexData(b core.Buffer, indices []uint32) {
	if len(indices) == 0 {
		return
	}
	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, uint32(b))
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.STATIC_DRAW)
}

// BindVertexState binds the buffers and the pos3+uv2 layout:
// layout(location = 0) in vec3 aPos; layout(location = 1) in vec2 aUV.
func (r *RendererGL) BindVertexState(vbo, ebo core.Buffer) {
	const stride = core.VertexStride * floatSize
	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, uint32(vbo))
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, uint32(ebo))
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, stride, gl.PtrOffset(3*floatSize))
}

func (r *RendererGL) DeleteBuffer(b core.Buffer) {
	id := uint32(b)
	gl.DeleteBuffers(1, &id)
}

// --- textures ---

func (r *RendererGL) CreateTexture() core.Texture {
	var t uint32
	gl.GenTextures(1, &t)
	gl.BindTexture(gl.TEXTURE_2D, t)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	return core.Texture(t)
}

func (r *RendererGL) UploadTexture(t core.Texture, width, height int, rgba []byte) {
	if len(rgba) == 0 {
		return
	}
	gl.BindTexture(gl.TEXTURE_2D, uint32(t))
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(width), int32(height), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(rgba))
}

func (r *RendererGL) BindTexture(t core.Texture) {
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, uint32(t))
}

func (r *RendererGL) DeleteTexture(t core.Texture) {
	id := uint32(t)
	gl.DeleteTextures(1, &id)
}

// --- programs ---

func (r *RendererGL) CreateProgram(src core.ShaderSource) (core.Program, error) {
	p, err := makeProgram(src)
	if err != nil {
		return 0, err
	}
	return core.Program(p), nil
}

func (r *RendererGL) UseProgram(p core.Program) {
	gl.UseProgram(uint32(p))
	r.program = p
}

// SetUniform makes p current and writes value. Supported values are float32,
// float64, int, int32, bool, mgl32.Vec2/3/4 and mgl32.Mat4.
func (r *RendererGL) SetUniform(p core.Program, name string, value any) {
	if p != r.program {
		r.UseProgram(p)
	}
	loc := r.location(p, name)
	if loc < 0 {
		return
	}
	switch v := value.(type) {
	case float32:
		gl.Uniform1f(loc, v)
	case float64:
		gl.Uniform1f(loc, float32(v))
	case int:
		gl.Uniform1i(loc, int32(v))
	case int32:
		gl.Uniform1i(loc, v)
	case bool:
		var i int32
		if v {
			i = 1
		}
		gl.Uniform1i(loc, i)
	case mgl32.Vec2:
		gl.Uniform2f(loc, v[0], v[1])
	case mgl32.Vec3:
		gl.Uniform3f(loc, v[0], v[1], v[2])
	case mgl32.Vec4:
		gl.Uniform4f(loc, v[0], v[1], v[2], v[3])
	case mgl32.Mat4:
		gl.UniformMatrix4fv(loc, 1, false, &v[0])
	default:
		r.log.WithField("uniform", name).Warnf("unsupported uniform type %T", value)
	}
}

func (r *RendererGL) location(p core.Program, name string) int32 {
	locs := r.locations[p]
	if locs == nil {
		locs = map[string]int32{}
		r.locations[p] = locs
	}
	if loc, ok := locs[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(uint32(p), gl.Str(name+"\x00"))
	locs[name] = loc
	return loc
}

func (r *RendererGL) DeleteProgram(p core.Program) {
	gl.DeleteProgram(uint32(p))
	delete(r.locations, p)
	if r.program == p {
		r.program = 0
	}
}

func (r *RendererGL) DrawIndexed(prim core.Primitive, count int) {
	gl.DrawElements(primitiveMode(prim), int32(count), gl.UNSIGNED_INT, nil)
}

func primitiveMode(p core.Primitive) uint32 {
	switch p {
	case core.PrimitiveTriangleStrip:
		return gl.TRIANGLE_STRIP
	case core.PrimitiveLines:
		return gl.LINES
	default:
		return gl.TRIANGLES
	}
}

// --- Shader utilities ---

func makeShader(src string, shaderType uint32) (uint32, error) {
	sh := gl.CreateShader(shaderType)
	csrc, free := gl.Strs(src)
	defer free()
	gl.ShaderSource(sh, 1, csrc, nil)
	gl.CompileShader(sh)

	var status int32
	gl.GetShaderiv(sh, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(sh, gl.INFO_LOG_LENGTH, &logLen)
		infoLog := strings.Repeat("\x00", int(logLen))
		gl.GetShaderInfoLog(sh, logLen, nil, gl.Str(infoLog))
		gl.DeleteShader(sh)
		return 0, fmt.Errorf("shader compile error: %s", infoLog)
	}
	return sh, nil
}

func makeProgram(src core.ShaderSource) (uint32, error) {
	stages := []struct {
		src string
		typ uint32
	}{
		{src.Vertex, gl.VERTEX_SHADER},
		{src.Fragment, gl.FRAGMENT_SHADER},
		{src.Geometry, gl.GEOMETRY_SHADER},
	}

	var shaders []uint32
	defer func() {
		for _, sh := range shaders {
			gl.DeleteShader(sh)
		}
	}()
	for _, st := range stages {
		if st.src == "" {
			continue
		}
		sh, err := makeShader(terminated(st.src), st.typ)
		if err != nil {
			return 0, err
		}
		shaders = append(shaders, sh)
	}

	prog := gl.CreateProgram()
	for _, sh := range shaders {
		gl.AttachShader(prog, sh)
	}
	gl.LinkProgram(prog)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
		infoLog := strings.Repeat("\x00", int(logLen))
		gl.GetProgramInfoLog(prog, logLen, nil, gl.Str(infoLog))
		gl.DeleteProgram(prog)
		return 0, fmt.Errorf("program link error: %s", infoLog)
	}
	return prog, nil
}

func terminated(s string) string {
	if strings.HasSuffix(s, "\x00") {
		return s
	}
	return s + "\x00"
}
