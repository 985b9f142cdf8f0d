// annotations.go defines the annotation types and parser for the Oxy WGSL shader
// pre-processor. Annotations are single-line WGSL comments prefixed with @oxy: that
// splice shared struct definitions into a shader and declare uniform bindings for them,
// so the Go GPU types and the WGSL structs come from one embedded source.
//
// Syntax:
//
//	//@oxy:include <struct_type>
//	//@oxy:group <group> <binding> uniform <var_name> <struct_type>
package shader

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// annotationPrefix is the marker that identifies an Oxy annotation within a WGSL comment line.
const annotationPrefix = "@oxy:"

// AnnotationType identifies the kind of annotation parsed from a WGSL comment line.
type AnnotationType string

const (
	// AnnotationTypeInclude injects the WGSL source of a registered struct at the annotation site.
	//
	// Example: //@oxy:include camera
	AnnotationTypeInclude AnnotationType = "include"

	// AnnotationTypeBindingGroup generates a @group/@binding uniform variable declaration for a
	// registered struct.
	//
	// Example: //@oxy:group 0 0 uniform camera camera
	AnnotationTypeBindingGroup AnnotationType = "group"
)

// AnnotationArg is a typed string used as an annotation argument.
type AnnotationArg string

// Struct type arguments. Each maps to a Go GPU type with an embedded .wgsl asset.
const (
	// AnnotationArgCamera identifies the CameraUniform struct (engine/camera/assets/camera_uniform.wgsl).
	AnnotationArgCamera AnnotationArg = "camera"

	// AnnotationArgVertex identifies the VertexInput struct (engine/model/assets/vertex.wgsl).
	// Including it gives the shader the standard mesh vertex buffer layout.
	AnnotationArgVertex AnnotationArg = "vertex"

	// AnnotationArgObject identifies the ObjectUniform struct (engine/game_object/assets/object_uniform.wgsl).
	AnnotationArgObject AnnotationArg = "object"

	// AnnotationArgLight identifies the LightUniform struct (engine/light/assets/light_uniform.wgsl).
	AnnotationArgLight AnnotationArg = "light"

	// AnnotationArgMaterial identifies the MaterialUniform struct (engine/renderer/material/assets/material_uniform.wgsl).
	AnnotationArgMaterial AnnotationArg = "material"
)

// annotationArgUniform is the only address space accepted by @oxy:group.
const annotationArgUniform AnnotationArg = "uniform"

var validStructTypes = []AnnotationArg{
	AnnotationArgCamera,
	AnnotationArgVertex,
	AnnotationArgObject,
	AnnotationArgLight,
	AnnotationArgMaterial,
}

// Annotation represents a single parsed @oxy: annotation.
type Annotation struct {
	// Type identifies which annotation was parsed.
	Type AnnotationType

	// Args holds the annotation's arguments:
	//   - include: [0] = struct type key
	//   - group:   [0] = address space, [1] = var name, [2] = struct type key
	Args []AnnotationArg

	// Line is the 1-based source line of the annotation.
	Line int

	// Group and Binding are set for group annotations only.
	Group   *int
	Binding *int
}

// parseAnnotation attempts to parse a single line of WGSL source as an @oxy: annotation.
// Returns nil with no error for lines that do not contain the annotation prefix.
//
// Parameters:
//   - line: the raw WGSL source line to parse
//   - lineNum: the 1-based line number for error reporting
//
// Returns:
//   - *Annotation: the parsed annotation, or nil if the line is not an annotation
//   - error: a descriptive error if the annotation is malformed
func parseAnnotation(line string, lineNum int) (*Annotation, error) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "//") {
		return nil, nil
	}
	_, after, ok := strings.Cut(trimmed, annotationPrefix)
	if !ok {
		return nil, nil
	}

	args := strings.Fields(after)
	if len(args) == 0 {
		return nil, fmt.Errorf("line %d: empty @oxy annotation", lineNum)
	}

	switch AnnotationType(args[0]) {
	case AnnotationTypeInclude:
		if len(args) != 2 {
			return nil, fmt.Errorf("line %d: @oxy include annotation requires exactly one argument", lineNum)
		}
		if !slices.Contains(validStructTypes, AnnotationArg(args[1])) {
			return nil, fmt.Errorf("line %d: unknown struct type %q in @oxy include annotation", lineNum, args[1])
		}
		return &Annotation{
			Type: AnnotationTypeInclude,
			Args: []AnnotationArg{AnnotationArg(args[1])},
			Line: lineNum,
		}, nil
	case AnnotationTypeBindingGroup:
		if len(args) != 6 {
			return nil, fmt.Errorf("line %d: @oxy group annotation requires five arguments (group, binding, address space, var name, struct type)", lineNum)
		}
		group, err := strconv.Atoi(args[1])
		if err != nil || group < 0 {
			return nil, fmt.Errorf("line %d: invalid group number %q in @oxy group annotation", lineNum, args[1])
		}
		binding, err := strconv.Atoi(args[2])
		if err != nil || binding < 0 {
			return nil, fmt.Errorf("line %d: invalid binding number %q in @oxy group annotation", lineNum, args[2])
		}
		if AnnotationArg(args[3]) != annotationArgUniform {
			return nil, fmt.Errorf("line %d: unsupported address space %q in @oxy group annotation", lineNum, args[3])
		}
		if !slices.Contains(validStructTypes, AnnotationArg(args[5])) || AnnotationArg(args[5]) == AnnotationArgVertex {
			return nil, fmt.Errorf("line %d: unknown uniform struct type %q in @oxy group annotation", lineNum, args[5])
		}
		return &Annotation{
			Type:    AnnotationTypeBindingGroup,
			Args:    []AnnotationArg{AnnotationArg(args[3]), AnnotationArg(args[4]), AnnotationArg(args[5])},
			Line:    lineNum,
			Group:   &group,
			Binding: &binding,
		}, nil
	default:
		return nil, fmt.Errorf("line %d: unknown @oxy annotation type %q", lineNum, args[0])
	}
}
