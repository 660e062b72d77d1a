package gfx

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hubastard/layergrove/engine/assets"
	"github.com/hubastard/layergrove/engine/core"
	"github.com/hubastard/layergrove/engine/logging"
	"github.com/hubastard/layergrove/engine/object"
	log "github.com/sirupsen/logrus"
)

// Shader is a linked GPU program. Uniform writes go through a per-program
// cache so sharing one shader between layers does not resend equal values.
type Shader struct {
	object.Base

	r       core.Renderer
	log     log.FieldLogger
	program core.Program
	cache   map[string]any
}

func NewShader(r core.Renderer, name string, logger log.FieldLogger) *Shader {
	s := &Shader{Base: object.New("Shader", name), r: r, cache: map[string]any{}}
	s.log = logging.Or(logger).WithField("shader", s.Name())
	return s
}

func (s *Shader) Program() core.Program { return s.program }

// LoadFiles compiles the stages found under root/shaders. geom may be empty.
func (s *Shader) LoadFiles(root, vert, frag, geom string) error {
	src, err := assets.LoadShaderSource(root, vert, frag, geom)
	if err != nil {
		s.log.WithError(err).Error("shader source missing")
		return err
	}
	return s.Compile(src)
}

// Compile links src, replacing any previous program.
func (s *Shader) Compile(src core.ShaderSource) error {
	p, err := s.r.CreateProgram(src)
	if err != nil {
		s.log.WithError(err).Error("shader compile failed")
		return fmt.Errorf("shader %s: %w", s.Name(), err)
	}
	if s.program != 0 {
		s.r.DeleteProgram(s.program)
	}
	s.program = p
	clear(s.cache)
	s.log.Debug("shader linked")
	return nil
}

func (s *Shader) Use() {
	if s.program == 0 {
		return
	}
	s.r.UseProgram(s.program)
}

// SetUniform writes value unless the program already holds an equal one.
func (s *Shader) SetUniform(name string, value any) {
	if s.program == 0 {
		return
	}
	if prev, ok := s.cache[name]; ok && sameUniform(prev, value) {
		return
	}
	s.cache[name] = value
	s.r.SetUniform(s.program, name, value)
}

func (s *Shader) Delete() {
	if s.Deleted() {
		return
	}
	if s.program != 0 {
		s.r.DeleteProgram(s.program)
		s.program = 0
	}
	s.MarkDeleted()
}

func sameUniform(a, b any) bool {
	switch a.(type) {
	case float32, float64, int, int32, bool, mgl32.Vec2, mgl32.Vec3, mgl32.Vec4, mgl32.Mat4:
		return a == b
	}
	return false
}
