package shader

import (
	"errors"
	"fmt"
	"slices"

	"github.com/Carmen-Shannon/oxy-scroll/engine/model"
	"github.com/cogentcore/webgpu/wgpu"
)

// ErrMissingEntryPoint is returned when a shader lacks a @vertex or @fragment function.
var ErrMissingEntryPoint = errors.New("shader: missing entry point")

// shader is the implementation of the Shader interface.
type shader struct {
	key                        string
	source                     string
	vertexEntryPoint           string
	fragmentEntryPoint         string
	bindGroupLayoutDescriptors []wgpu.BindGroupLayoutDescriptor
	vertexLayouts              []wgpu.VertexBufferLayout
	declarations               []Annotation
	module                     *wgpu.ShaderModuleDescriptor
}

// Shader is a pre-processed WGSL module holding both the vertex and fragment stages of one
// render pipeline, together with the layouts the pipeline needs.
type Shader interface {
	// Key retrieves the unique identifier for this shader.
	//
	// Returns:
	//   - string: the shader's unique key
	Key() string

	// Source retrieves the pre-processed WGSL source code.
	Source() string

	// VertexEntryPoint returns the name of the @vertex function.
	VertexEntryPoint() string

	// FragmentEntryPoint returns the name of the @fragment function.
	FragmentEntryPoint() string

	// BindGroupLayoutDescriptors returns one descriptor per bind group, indexed by group number.
	//
	// Returns:
	//   - []wgpu.BindGroupLayoutDescriptor: the parsed layouts
	BindGroupLayoutDescriptors() []wgpu.BindGroupLayoutDescriptor

	// VertexLayouts returns the vertex buffer layouts consumed by the vertex stage.
	VertexLayouts() []wgpu.VertexBufferLayout

	// Module returns the shader module descriptor.
	Module() *wgpu.ShaderModuleDescriptor

	// Declarations returns the @oxy: annotations found in the raw source.
	Declarations() []Annotation
}

var _ Shader = &shader{}

// NewShader pre-processes source and parses its entry points and binding layouts.
// Including the vertex struct gives the shader the standard mesh vertex layout.
//
// Parameters:
//   - key: a unique identifier for the shader, used as the module label
//   - source: raw WGSL source, optionally containing @oxy: annotations
//
// Returns:
//   - Shader: the parsed shader
//   - error: an annotation error or ErrMissingEntryPoint
func NewShader(key, source string) (Shader, error) {
	pp := NewPreProcessor()
	processed, err := pp.Process(source)
	if err != nil {
		return nil, fmt.Errorf("shader %s: %w", key, err)
	}

	cleaned := stripComments(processed)
	s := &shader{
		key:                        key,
		source:                     processed,
		vertexEntryPoint:           parseEntryPoint(cleaned, vertexEntryRegex),
		fragmentEntryPoint:         parseEntryPoint(cleaned, fragmentEntryRegex),
		bindGroupLayoutDescriptors: parseBindGroupLayouts(cleaned),
		declarations:               slices.Clone(pp.Declarations()),
	}
	if s.vertexEntryPoint == "" || s.fragmentEntryPoint == "" {
		return nil, fmt.Errorf("shader %s: %w", key, ErrMissingEntryPoint)
	}
	for _, d := range s.declarations {
		if d.Type == AnnotationTypeInclude && d.Args[0] == AnnotationArgVertex {
			s.vertexLayouts = []wgpu.VertexBufferLayout{model.VertexBufferLayout()}
			break
		}
	}
	s.module = &wgpu.ShaderModuleDescriptor{
		Label: s.key,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: s.source,
		},
	}
	return s, nil
}

func (s *shader) Key() string {
	return s.key
}

func (s *shader) Source() string {
	return s.source
}

func (s *shader) VertexEntryPoint() string {
	return s.vertexEntryPoint
}

func (s *shader) FragmentEntryPoint() string {
	return s.fragmentEntryPoint
}

func (s *shader) BindGroupLayoutDescriptors() []wgpu.BindGroupLayoutDescriptor {
	return s.bindGroupLayoutDescriptors
}

func (s *shader) VertexLayouts() []wgpu.VertexBufferLayout {
	return s.vertexLayouts
}

func (s *shader) Module() *wgpu.ShaderModuleDescriptor {
	return s.module
}

func (s *shader) Declarations() []Annotation {
	return s.declarations
}
