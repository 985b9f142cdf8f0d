package shader

import (
	_ "embed"
	"fmt"

	"github.com/Carmen-Shannon/oxy-scroll/engine/renderer/material"
)

//go:embed assets/torus.wgsl
var torusSource string

//go:embed assets/textured.wgsl
var texturedSource string

// builtinSources maps material pipeline keys to the WGSL programs bundled with the engine.
var builtinSources = map[string]string{
	material.PipelineKeyTorus:    torusSource,
	material.PipelineKeyTextured: texturedSource,
}

// Builtin returns the bundled shader for a material pipeline key.
//
// Parameters:
//   - key: material.PipelineKeyTorus or material.PipelineKeyTextured
//
// Returns:
//   - Shader: the parsed shader
//   - error: an error if the key is unknown or the source fails to parse
func Builtin(key string) (Shader, error) {
	src, ok := builtinSources[key]
	if !ok {
		return nil, fmt.Errorf("shader: no builtin shader for key %q", key)
	}
	return NewShader(key, src)
}
