package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/hubastard/layergrove/engine/core"
)

// LoadShader reads root/shaders/name into a null-terminated string for OpenGL.
func LoadShader(root, name string) (string, error) {
	path := filepath.Join(root, "shaders", name)
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("load shader %q: %w", name, core.ErrAssetNotFound)
		}
		return "", fmt.Errorf("load shader %q: %w", name, err)
	}
	// Ensure null termination for gl.Strs
	if len(b) == 0 || b[len(b)-1] != 0 {
		b = append(b, 0)
	}
	return string(b), nil
}

// LoadShaderSource loads a program's stages. geom may be empty.
func LoadShaderSource(root, vert, frag, geom string) (core.ShaderSource, error) {
	var (
		src core.ShaderSource
		err error
	)
	if src.Vertex, err = LoadShader(root, vert); err != nil {
		return core.ShaderSource{}, err
	}
	if src.Fragment, err = LoadShader(root, frag); err != nil {
		return core.ShaderSource{}, err
	}
	if geom != "" {
		if src.Geometry, err = LoadShader(root, geom); err != nil {
			return core.ShaderSource{}, err
		}
	}
	return src, nil
}
