package shader

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"
)

var (
	// lineCommentRegex matches // comments to the end of the line.
	lineCommentRegex = regexp.MustCompile(`//[^\n]*`)

	// blockCommentRegex matches /* ... */ comments.
	blockCommentRegex = regexp.MustCompile(`(?s)/\*.*?\*/`)

	// vertexEntryRegex captures the function name following @vertex.
	vertexEntryRegex = regexp.MustCompile(`(?s)@vertex\b.*?\bfn\s+(\w+)`)

	// fragmentEntryRegex captures the function name following @fragment.
	fragmentEntryRegex = regexp.MustCompile(`(?s)@fragment\b.*?\bfn\s+(\w+)`)

	// bindGroupDeclRegex captures group, binding, address space, var name and type of a resource declaration.
	bindGroupDeclRegex = regexp.MustCompile(`@group\((\d+)\)\s*@binding\((\d+)\)\s*var(?:<([^>]*)>)?\s+(\w+)\s*:\s*([^;]+?)\s*;`)
)

// stripComments removes line and block comments from WGSL source.
func stripComments(source string) string {
	return lineCommentRegex.ReplaceAllString(blockCommentRegex.ReplaceAllString(source, ""), "")
}

// parseEntryPoint returns the name of the first function marked with the stage attribute, or "".
//
// Parameters:
//   - source: WGSL source with comments already stripped
//   - re: vertexEntryRegex or fragmentEntryRegex
//
// Returns:
//   - string: the entry point name
func parseEntryPoint(source string, re *regexp.Regexp) string {
	if match := re.FindStringSubmatch(source); match != nil {
		return match[1]
	}
	return ""
}

// parseBindGroupLayouts extracts all @group(N) @binding(M) resource declarations from WGSL
// source and returns one descriptor per group index from 0 to the highest declared group.
// Entries are sorted by binding and visible to both the vertex and fragment stages.
// Uniform buffers of registered struct types get their MinBindingSize from the registry.
//
// Parameters:
//   - source: WGSL source with comments already stripped
//
// Returns:
//   - []wgpu.BindGroupLayoutDescriptor: layout descriptors indexed by group
func parseBindGroupLayouts(source string) []wgpu.BindGroupLayoutDescriptor {
	sizes := make(map[string]uint64, len(structRegistry))
	for _, entry := range structRegistry {
		sizes[entry.Type] = entry.Size
	}

	groups := make(map[int][]wgpu.BindGroupLayoutEntry)
	maxGroup := -1
	for _, match := range bindGroupDeclRegex.FindAllStringSubmatch(source, -1) {
		group, _ := strconv.Atoi(match[1])
		binding, _ := strconv.Atoi(match[2])
		entry := classifyResource(uint32(binding), strings.TrimSpace(match[3]), strings.TrimSpace(match[5]))
		if entry.Buffer.Type != wgpu.BufferBindingTypeUndefined {
			entry.Buffer.MinBindingSize = sizes[strings.TrimSpace(match[5])]
		}
		groups[group] = append(groups[group], entry)
		maxGroup = max(maxGroup, group)
	}

	result := make([]wgpu.BindGroupLayoutDescriptor, maxGroup+1)
	for g, entries := range groups {
		sort.Slice(entries, func(i, j int) bool {
			return entries[i].Binding < entries[j].Binding
		})
		result[g] = wgpu.BindGroupLayoutDescriptor{Entries: entries}
	}
	return result
}

// classifyResource creates a layout entry from a resource declaration. Supports uniform
// buffers, filtering samplers and float 2D textures.
//
// Parameters:
//   - binding: the binding index from @binding(N)
//   - addressSpace: the address space qualifier, empty for handle types
//   - typeName: the WGSL type string (e.g. "CameraUniform", "texture_2d<f32>", "sampler")
//
// Returns:
//   - wgpu.BindGroupLayoutEntry: the populated layout entry
func classifyResource(binding uint32, addressSpace, typeName string) wgpu.BindGroupLayoutEntry {
	entry := wgpu.BindGroupLayoutEntry{
		Binding:    binding,
		Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
	}

	switch {
	case addressSpace == "uniform":
		entry.Buffer.Type = wgpu.BufferBindingTypeUniform
	case typeName == "sampler":
		entry.Sampler.Type = wgpu.SamplerBindingTypeFiltering
	case strings.HasPrefix(typeName, "texture_2d<"):
		entry.Texture.SampleType = wgpu.TextureSampleTypeFloat
		entry.Texture.ViewDimension = wgpu.TextureViewDimension2D
	}
	return entry
}
