// pre_processor.go implements the Oxy WGSL shader pre-processor. It replaces @oxy:
// annotations with injected struct sources or generated uniform declarations and
// records what it emitted, so a Shader knows which structs it uses.
package shader

import (
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/oxy-scroll/engine/camera"
	"github.com/Carmen-Shannon/oxy-scroll/engine/game_object"
	"github.com/Carmen-Shannon/oxy-scroll/engine/light"
	"github.com/Carmen-Shannon/oxy-scroll/engine/model"
	"github.com/Carmen-Shannon/oxy-scroll/engine/renderer/material"
)

// registryEntry pairs a WGSL struct source with its type name and the byte size of the matching Go type.
type registryEntry struct {
	Source string
	Type   string
	Size   uint64
}

// structRegistry maps struct type arguments to their embedded WGSL source.
var structRegistry = map[AnnotationArg]registryEntry{
	AnnotationArgCamera:   {Source: camera.GPUCameraUniformSource, Type: "CameraUniform", Size: uint64((&camera.GPUCameraUniform{}).Size())},
	AnnotationArgVertex:   {Source: model.GPUVertexSource, Type: "VertexInput", Size: uint64((&model.GPUVertex{}).Size())},
	AnnotationArgObject:   {Source: game_object.GPUObjectUniformSource, Type: "ObjectUniform", Size: uint64((&game_object.GPUObjectUniform{}).Size())},
	AnnotationArgLight:    {Source: light.GPULightUniformSource, Type: "LightUniform", Size: uint64((&light.GPULightUniform{}).Size())},
	AnnotationArgMaterial: {Source: material.GPUMaterialUniformSource, Type: "MaterialUniform", Size: uint64((&material.GPUMaterialUniform{}).Size())},
}

// preProcessor is the implementation of the PreProcessor interface.
type preProcessor struct {
	// declarations accumulates every annotation seen during a Process call.
	declarations []Annotation
}

// PreProcessor processes raw WGSL shader source code containing @oxy: annotations.
type PreProcessor interface {
	// Process replaces @oxy: annotations with their WGSL output. Includes are replaced
	// with the struct source, group annotations with a uniform variable declaration.
	// Each struct is injected at most once even if included repeatedly.
	//
	// Parameters:
	//   - source: the raw WGSL shader source code containing annotations to be processed
	//
	// Returns:
	//   - string: the processed WGSL shader source code
	//   - error: an error if any annotation is malformed
	Process(source string) (string, error)

	// Declarations returns the annotations collected during the most recent Process call, in source order.
	Declarations() []Annotation
}

var _ PreProcessor = &preProcessor{}

// NewPreProcessor creates a new PreProcessor.
func NewPreProcessor() PreProcessor {
	return &preProcessor{}
}

func (p *preProcessor) Process(source string) (string, error) {
	p.declarations = p.declarations[:0]
	included := make(map[AnnotationArg]bool)

	lines := strings.Split(source, "\n")
	out := make([]string, 0, len(lines))

	for i, line := range lines {
		a, err := parseAnnotation(line, i+1)
		if err != nil {
			return "", err
		}
		if a == nil {
			out = append(out, line)
			continue
		}
		p.declarations = append(p.declarations, *a)

		switch a.Type {
		case AnnotationTypeInclude:
			if included[a.Args[0]] {
				continue
			}
			included[a.Args[0]] = true
			out = append(out, structRegistry[a.Args[0]].Source)
		case AnnotationTypeBindingGroup:
			entry := structRegistry[a.Args[2]]
			if !included[a.Args[2]] {
				return "", fmt.Errorf("line %d: struct %q bound before it was included", i+1, a.Args[2])
			}
			out = append(out, fmt.Sprintf("@group(%d) @binding(%d) var<uniform> %s: %s;", *a.Group, *a.Binding, a.Args[1], entry.Type))
		}
	}
	return strings.Join(out, "\n"), nil
}

func (p *preProcessor) Declarations() []Annotation {
	return p.declarations
}
